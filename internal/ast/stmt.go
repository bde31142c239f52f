package ast

import (
	"cinder/internal/source"
)

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// BlockStmt is `{ ... }`; it opens a lexical scope.
type BlockStmt struct {
	Stmts []Stmt
	Pos   source.Span
}

func (s *BlockStmt) Span() source.Span { return s.Pos }
func (s *BlockStmt) stmtNode()         {}

// DeclStmt wraps a local variable declaration.
type DeclStmt struct {
	Decl *VarDecl
}

func (s *DeclStmt) Span() source.Span { return s.Decl.Pos }
func (s *DeclStmt) stmtNode()         {}

// AssignStmt is `target = value;` where target is an identifier, a member
// access, or an index expression.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Pos    source.Span
}

func (s *AssignStmt) Span() source.Span { return s.Pos }
func (s *AssignStmt) stmtNode()         {}

// IfStmt is `if (cond) { } else ...`; Else is nil, a *BlockStmt, or a
// chained *IfStmt.
type IfStmt struct {
	Cond Expr
	Then *BlockStmt
	Else Stmt
	Pos  source.Span
}

func (s *IfStmt) Span() source.Span { return s.Pos }
func (s *IfStmt) stmtNode()         {}

// WhileStmt is `while (cond) { }`.
type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	Pos  source.Span
}

func (s *WhileStmt) Span() source.Span { return s.Pos }
func (s *WhileStmt) stmtNode()         {}

// ForStmt is `for (init; cond; post) { }`; any header slot may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
	Pos  source.Span
}

func (s *ForStmt) Span() source.Span { return s.Pos }
func (s *ForStmt) stmtNode()         {}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	Value Expr // nil for bare return
	Pos   source.Span
}

func (s *ReturnStmt) Span() source.Span { return s.Pos }
func (s *ReturnStmt) stmtNode()         {}

// BreakStmt is `break;`.
type BreakStmt struct {
	Pos source.Span
}

func (s *BreakStmt) Span() source.Span { return s.Pos }
func (s *BreakStmt) stmtNode()         {}

// ContinueStmt is `continue;`.
type ContinueStmt struct {
	Pos source.Span
}

func (s *ContinueStmt) Span() source.Span { return s.Pos }
func (s *ContinueStmt) stmtNode()         {}

// ExprStmt is an expression in statement position (typically a call).
type ExprStmt struct {
	X   Expr
	Pos source.Span
}

func (s *ExprStmt) Span() source.Span { return s.Pos }
func (s *ExprStmt) stmtNode()         {}
