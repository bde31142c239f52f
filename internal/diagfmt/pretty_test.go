package diagfmt

import (
	"strings"
	"testing"

	"cinder/internal/diag"
	"cinder/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.cn", []byte("void main() {\n    helper();\n}\n"))

	callee := source.Span{File: id, Start: 18, End: 24} // "helper"
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SemaCallBeforeDef, callee,
		"call to 'helper' before its definition").
		WithSymbol("helper").
		WithNote(source.Span{File: id, Start: 0, End: 4}, "'helper' is defined later").
		WithFix("emit the call as raw C with 'global.helper()'",
			diag.FixEdit{Span: callee, NewText: "global.helper"}))
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := sampleBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := sb.String()

	for _, want := range []string{
		"main.cn:2:5",
		"error[E0422]",
		"helper();",
		"^~~~~~",
		"note: 'helper' is defined later",
		"help: emit the call as raw C",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := sampleBag(t)
	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()
	if strings.Contains(out, "note:") || strings.Contains(out, "help:") {
		t.Fatalf("notes and fixes should be suppressed:\n%s", out)
	}
}

func TestPrettyEmptySpan(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("main.cn", []byte("void main() {}\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SemaSymbolConflict, source.Span{},
		"'init' is defined in multiple dialects (cinder, c)"))

	var sb strings.Builder
	Pretty(&sb, bag, fs, PrettyOpts{})
	out := sb.String()
	if !strings.Contains(out, "error[E0428]") {
		t.Fatalf("missing conflict line:\n%s", out)
	}
	if strings.Contains(out, "main.cn:") {
		t.Fatalf("spanless diagnostic must not carry a location:\n%s", out)
	}
}
