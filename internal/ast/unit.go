package ast

import (
	"cinder/internal/source"
)

// Unit is one parsed translation unit (a single .cn file).
type Unit struct {
	File     source.FileID
	Path     string
	Includes []Include
	Decls    []Decl
}

// Include records one `#include` directive of the unit.
type Include struct {
	Name string // header name without delimiters, e.g. "stdio.h"
	Span source.Span
}

// Node is implemented by every AST node.
type Node interface {
	Span() source.Span
}

// Ident is a name with its location.
type Ident struct {
	Name string
	Pos  source.Span
}

func (id Ident) Span() source.Span { return id.Pos }
