// Package testkit holds structural checks shared by fuzz and parser tests.
package testkit

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) every declaration span stays within the file content bounds
// 2) declaration spans are well formed (End >= Start, right file)
// 3) include spans obey the same rules
func CheckSpanInvariants(unit *ast.Unit, sf *source.File) error {
	if unit == nil || sf == nil {
		return fmt.Errorf("nil unit or file")
	}
	limit := uint32(len(sf.Content))

	for i, inc := range unit.Includes {
		if err := checkSpan(inc.Span, sf.ID, limit); err != nil {
			return fmt.Errorf("include %d (%s): %w", i, inc.Name, err)
		}
	}
	for i, decl := range unit.Decls {
		if decl == nil {
			return fmt.Errorf("decl %d is nil", i)
		}
		if err := checkSpan(decl.Span(), sf.ID, limit); err != nil {
			return fmt.Errorf("decl %d: %w", i, err)
		}
	}
	return nil
}

func checkSpan(sp source.Span, fileID source.FileID, limit uint32) error {
	if sp.File != fileID {
		return fmt.Errorf("span points at file %d, want %d", sp.File, fileID)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("span is inverted: %d..%d", sp.Start, sp.End)
	}
	if sp.End > limit {
		return fmt.Errorf("span %d..%d exceeds content length %d", sp.Start, sp.End, limit)
	}
	return nil
}
