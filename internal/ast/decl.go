package ast

import (
	"cinder/internal/source"
)

// Decl is a top-level or container-member declaration.
type Decl interface {
	Node
	declNode()
}

// Param is a single function parameter.
type Param struct {
	Name Ident
	Type TypeRef
}

func (p Param) Span() source.Span { return p.Name.Pos }

// FuncDecl is a function definition or prototype (nil Body).
type FuncDecl struct {
	Name   Ident
	Ret    TypeRef
	Params []Param
	Body   *BlockStmt
	Pos    source.Span
}

func (d *FuncDecl) Span() source.Span { return d.Pos }
func (d *FuncDecl) declNode()         {}

// IsPrototype reports whether the declaration has no body.
func (d *FuncDecl) IsPrototype() bool { return d.Body == nil }

// VarDecl is a variable declaration, global or local.
type VarDecl struct {
	Name  Ident
	Type  TypeRef
	Init  Expr // nil when absent
	Const bool
	Pos   source.Span
}

func (d *VarDecl) Span() source.Span { return d.Pos }
func (d *VarDecl) declNode()         {}

// Field is one struct field.
type Field struct {
	Name Ident
	Type TypeRef
}

func (f Field) Span() source.Span { return f.Name.Pos }

// StructDecl declares a structure type.
type StructDecl struct {
	Name   Ident
	Fields []Field
	Pos    source.Span
}

func (d *StructDecl) Span() source.Span { return d.Pos }
func (d *StructDecl) declNode()         {}

// EnumMember is one enumerator, with an optional explicit value.
type EnumMember struct {
	Name  Ident
	Value Expr // nil when implicit
}

func (m EnumMember) Span() source.Span { return m.Name.Pos }

// EnumDecl declares an enumeration, optionally with an explicit bit width
// (`enum Color : 8 { ... }`).
type EnumDecl struct {
	Name    Ident
	Bits    uint8 // 0 when unspecified
	Members []EnumMember
	Pos     source.Span
}

func (d *EnumDecl) Span() source.Span { return d.Pos }
func (d *EnumDecl) declNode()         {}

// ScopeDecl is a named container (`scope Name { ... }`) holding functions
// and variables. Member functions are emitted as Name_member in C.
type ScopeDecl struct {
	Name  Ident
	Decls []Decl
	Pos   source.Span
}

func (d *ScopeDecl) Span() source.Span { return d.Pos }
func (d *ScopeDecl) declNode()         {}

// TypeAliasDecl declares `type Name = Target;`.
type TypeAliasDecl struct {
	Name   Ident
	Target TypeRef
	Pos    source.Span
}

func (d *TypeAliasDecl) Span() source.Span { return d.Pos }
func (d *TypeAliasDecl) declNode()         {}
