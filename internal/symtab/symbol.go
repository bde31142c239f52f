package symtab

import "fmt"

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
	SymbolStruct
	SymbolEnum
	SymbolEnumMember
	SymbolContainer
	SymbolTypeAlias
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolStruct:
		return "struct"
	case SymbolEnum:
		return "enum"
	case SymbolEnumMember:
		return "enum member"
	case SymbolContainer:
		return "scope"
	case SymbolTypeAlias:
		return "type alias"
	default:
		return "invalid"
	}
}

// ParamInfo describes one function parameter in a signature payload.
type ParamInfo struct {
	Name    string `msgpack:"name"`
	Type    string `msgpack:"type"`
	Const   bool   `msgpack:"const,omitempty"`
	IsArray bool   `msgpack:"array,omitempty"`
}

// DimInfo is one array dimension: a literal length, or a named constant
// that has not been resolved yet.
type DimInfo struct {
	Length uint32 `msgpack:"len,omitempty"`
	Name   string `msgpack:"name,omitempty"`
}

// IsLiteral reports whether the dimension is a resolved literal.
func (d DimInfo) IsLiteral() bool { return d.Name == "" }

// Symbol is one declared name. The (Name, File, Line) triple is unique
// within the table; several symbols may share a Name.
type Symbol struct {
	Name    string     `msgpack:"name"`
	Kind    SymbolKind `msgpack:"kind"`
	Dialect Dialect    `msgpack:"dialect"`
	File    string     `msgpack:"file"`
	Line    uint32     `msgpack:"line"`
	// Exported marks symbols visible outside their own unit.
	Exported bool `msgpack:"exported,omitempty"`
	// DeclOnly marks pure declarations (prototypes, extern) that promise a
	// definition elsewhere.
	DeclOnly bool `msgpack:"decl_only,omitempty"`
	// Parent names the enclosing function or container; empty at global
	// scope. Parameters carry their function here, container members their
	// container.
	Parent string `msgpack:"parent,omitempty"`
	// Signature distinguishes overloads, e.g. "(u8,u8)".
	Signature string `msgpack:"signature,omitempty"`
	// Type is the declared type for variables and the return type for
	// functions.
	Type   string      `msgpack:"type,omitempty"`
	Params []ParamInfo `msgpack:"params,omitempty"`
	Dims   []DimInfo   `msgpack:"dims,omitempty"`
}

// Key returns the identity triple of the symbol.
func (s *Symbol) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%d", s.Name, s.File, s.Line)
}

// IsGlobal reports whether the symbol lives at global scope.
func (s *Symbol) IsGlobal() bool { return s.Parent == "" }

func (s *Symbol) String() string {
	return fmt.Sprintf("%s %s (%s) at %s:%d", s.Kind, s.Name, s.Dialect, s.File, s.Line)
}
