package symtab

import (
	"fmt"
	"sort"
	"strings"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// Conflict is one definitional collision: either the same name defined in
// more than one dialect, or duplicate same-dialect definitions in the same
// lexical scope. Every conflicting definition's location is carried.
type Conflict struct {
	SymbolName  string
	Definitions []*Symbol
	Severity    diag.Severity
	Message     string
}

// Conflicts computes the list of naming conflicts across the whole table.
// Parameters and other nested symbols (non-empty Parent) never conflict:
// distinct functions may freely reuse parameter names.
func (t *Table) Conflicts() []Conflict {
	byName := make(map[string][]*Symbol)
	for d := range t.stores {
		for name, syms := range t.stores[d].byName {
			for _, sym := range syms {
				if !sym.IsGlobal() {
					continue
				}
				byName[name] = append(byName[name], sym)
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Conflict
	for _, name := range names {
		defs := byName[name]
		if len(defs) < 2 {
			continue
		}
		if conflict, ok := crossDialectConflict(name, defs); ok {
			out = append(out, conflict)
			continue
		}
		out = append(out, sameDialectConflicts(name, defs)...)
	}
	return out
}

// crossDialectConflict reports one conflict when the name's global
// definitions span more than one dialect.
func crossDialectConflict(name string, defs []*Symbol) (Conflict, bool) {
	seen := make(map[Dialect]bool)
	for _, sym := range defs {
		seen[sym.Dialect] = true
	}
	if len(seen) < 2 {
		return Conflict{}, false
	}
	labels := make([]string, 0, len(seen))
	for _, d := range Dialects {
		if seen[d] {
			labels = append(labels, d.String())
		}
	}
	return Conflict{
		SymbolName:  name,
		Definitions: defs,
		Severity:    diag.SevError,
		Message: fmt.Sprintf("'%s' is defined in multiple dialects (%s)",
			name, strings.Join(labels, ", ")),
	}, true
}

// sameDialectConflicts finds duplicate definitions within one dialect:
// two or more non-prototype symbols sharing name and signature at global
// scope. A prototype plus its definition is not a conflict, and differing
// signatures are overloads.
func sameDialectConflicts(name string, defs []*Symbol) []Conflict {
	bySig := make(map[string][]*Symbol)
	var sigs []string
	for _, sym := range defs {
		if sym.DeclOnly {
			continue
		}
		if _, ok := bySig[sym.Signature]; !ok {
			sigs = append(sigs, sym.Signature)
		}
		bySig[sym.Signature] = append(bySig[sym.Signature], sym)
	}

	var out []Conflict
	for _, sig := range sigs {
		group := bySig[sig]
		if len(group) < 2 {
			continue
		}
		out = append(out, Conflict{
			SymbolName:  name,
			Definitions: group,
			Severity:    diag.SevError,
			Message:     fmt.Sprintf("'%s' is defined more than once", name),
		})
	}
	return out
}

func noSpan() source.Span { return source.Span{} }

// ConflictDiagnostics converts conflicts into E0428 records. Conflict
// locations are file/line based (headers are never mapped into the FileSet),
// so the primary span is empty and every definition site rides along as a
// note.
func ConflictDiagnostics(conflicts []Conflict) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(conflicts))
	for _, c := range conflicts {
		d := diag.New(c.Severity, diag.SemaSymbolConflict, noSpan(), c.Message).
			WithSymbol(c.SymbolName)
		for _, def := range c.Definitions {
			d = d.WithNote(noSpan(), fmt.Sprintf("%s defined at %s:%d as %s",
				def.Name, def.File, def.Line, def.Kind))
		}
		out = append(out, d)
	}
	return out
}
