package lexer

import (
	"testing"

	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cn", []byte(src))
	bag := diag.NewBag(16)
	return Tokenize(fs.Get(id), bag), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeDeclaration(t *testing.T) {
	toks, bag := tokenize(t, "u8 counter = 0x1F;")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := []token.Kind{token.Ident, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if toks[3].Text != "0x1F" {
		t.Fatalf("literal text = %q", toks[3].Text)
	}
}

func TestTokenizeInclude(t *testing.T) {
	toks, bag := tokenize(t, "#include <stdio.h>\n#include \"app.h\"\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.Include || toks[0].Text != "stdio.h" {
		t.Fatalf("first include = %v %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.Include || toks[1].Text != "app.h" {
		t.Fatalf("second include = %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, bag := tokenize(t, "// line\n/* block\nstill */ scope")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.KwScope {
		t.Fatalf("first token = %v, want scope keyword", toks[0].Kind)
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks, _ := tokenize(t, "<= >= == != << >> && || < >")
	want := []token.Kind{
		token.LtEq, token.GtEq, token.EqEq, token.BangEq, token.Shl,
		token.Shr, token.AndAnd, token.OrOr, token.Lt, token.Gt, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := tokenize(t, `u8 s = "oops`)
	if !bag.HasErrors() {
		t.Fatalf("expected a lexical error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("code = %v", bag.Items()[0].Code)
	}
}
