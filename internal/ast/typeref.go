package ast

import (
	"cinder/internal/source"
)

// ArrayDim is one array dimension: either a literal length or a reference to
// a named constant that resolves later.
type ArrayDim struct {
	Length uint32 // valid when Name == ""
	Name   string // named constant, unresolved at parse time
	Pos    source.Span
}

// IsLiteral reports whether the dimension is a literal number.
func (d ArrayDim) IsLiteral() bool { return d.Name == "" }

// TypeRef is a parsed type reference: a named type with optional const
// qualifier, fixed string capacity, and array dimensions.
type TypeRef struct {
	Name     string
	Const    bool
	Capacity Expr       // string<N> capacity, nil otherwise
	Dims     []ArrayDim // array dimensions, outermost first
	Pos      source.Span
}

func (t TypeRef) Span() source.Span { return t.Pos }

// IsVoid reports whether the reference names the void type.
func (t TypeRef) IsVoid() bool { return t.Name == "void" }

// IsISR reports whether the reference names the interrupt-handler type.
func (t TypeRef) IsISR() bool { return t.Name == "isr" }

// IsFixedString reports whether the reference is a fixed-capacity string.
func (t TypeRef) IsFixedString() bool { return t.Name == "string" }
