package ast

import (
	"cinder/internal/source"
	"cinder/internal/token"
)

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// IdentExpr is a bare identifier in expression position.
type IdentExpr struct {
	Name string
	Pos  source.Span
}

func (e *IdentExpr) Span() source.Span { return e.Pos }
func (e *IdentExpr) exprNode()         {}

// MemberExpr is `x.sel`; chains nest in X.
type MemberExpr struct {
	X   Expr
	Sel Ident
	Pos source.Span
}

func (e *MemberExpr) Span() source.Span { return e.Pos }
func (e *MemberExpr) exprNode()         {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Pos    source.Span
}

func (e *CallExpr) Span() source.Span { return e.Pos }
func (e *CallExpr) exprNode()         {}

// IndexExpr is `x[index]`.
type IndexExpr struct {
	X     Expr
	Index Expr
	Pos   source.Span
}

func (e *IndexExpr) Span() source.Span { return e.Pos }
func (e *IndexExpr) exprNode()         {}

// UnaryExpr is a prefix operator application.
type UnaryExpr struct {
	Op  token.Kind
	X   Expr
	Pos source.Span
}

func (e *UnaryExpr) Span() source.Span { return e.Pos }
func (e *UnaryExpr) exprNode()         {}

// BinaryExpr is `x op y`.
type BinaryExpr struct {
	Op   token.Kind
	X, Y Expr
	Pos  source.Span
}

func (e *BinaryExpr) Span() source.Span { return e.Pos }
func (e *BinaryExpr) exprNode()         {}

// LiteralExpr is a numeric, boolean, char, or string literal.
type LiteralExpr struct {
	Kind token.Kind
	Text string
	Pos  source.Span
}

func (e *LiteralExpr) Span() source.Span { return e.Pos }
func (e *LiteralExpr) exprNode()         {}

// RootIdent returns the leftmost identifier of a member/index chain, or nil.
func RootIdent(e Expr) *IdentExpr {
	for {
		switch x := e.(type) {
		case *IdentExpr:
			return x
		case *MemberExpr:
			e = x.X
		case *IndexExpr:
			e = x.X
		default:
			return nil
		}
	}
}

// IntLiteralValue reports the value of a non-negative decimal/hex/binary
// integer literal, when e is one.
func IntLiteralValue(e Expr) (uint64, bool) {
	lit, ok := e.(*LiteralExpr)
	if !ok || lit.Kind != token.IntLit {
		return 0, false
	}
	text := lit.Text
	base := uint64(10)
	switch {
	case len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X"):
		text, base = text[2:], 16
	case len(text) > 2 && (text[:2] == "0b" || text[:2] == "0B"):
		text, base = text[2:], 2
	}
	var v uint64
	for i := 0; i < len(text); i++ {
		var d uint64
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, false
		}
		if d >= base {
			return 0, false
		}
		v = v*base + d
	}
	return v, true
}
