package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

func (p *parser) parseBlock() *ast.BlockStmt {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return nil
	}
	block := &ast.BlockStmt{}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt := p.parseStmt()
		if stmt == nil {
			p.syncStmt()
			continue
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "block is not closed")
	block.Pos = open.Span.Cover(end.Span)
	return block
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwBreak:
		tok := p.advance()
		end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after break")
		return &ast.BreakStmt{Pos: tok.Span.Cover(end.Span)}
	case token.KwContinue:
		tok := p.advance()
		end, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after continue")
		return &ast.ContinueStmt{Pos: tok.Span.Cover(end.Span)}
	case token.KwConst:
		return p.parseLocalDecl()
	case token.Ident:
		// `Type name ...` opens a local declaration; anything else is an
		// expression or assignment.
		if p.startsLocalDecl() {
			return p.parseLocalDecl()
		}
		return p.parseSimpleStmt()
	default:
		return p.parseSimpleStmt()
	}
}

// startsLocalDecl reports whether the current identifier begins a variable
// declaration: a primitive type name, or `Ident Ident` for user types.
func (p *parser) startsLocalDecl() bool {
	if token.IsPrimitiveType(p.cur().Text) {
		return true
	}
	return p.peek().Kind == token.Ident
}

func (p *parser) parseLocalDecl() ast.Stmt {
	typ, ok := p.parseTypeRef()
	if !ok {
		return nil
	}
	name, ok := p.ident()
	if !ok {
		return nil
	}
	decl := p.parseVarRest(typ, name)
	if decl == nil {
		return nil
	}
	varDecl, ok := decl.(*ast.VarDecl)
	if !ok {
		p.report(diag.SynUnexpectedToken, decl.Span(), "expected variable declaration")
		return nil
	}
	return &ast.DeclStmt{Decl: varDecl}
}

// parseSimpleStmt parses an assignment or a bare expression statement.
func (p *parser) parseSimpleStmt() ast.Stmt {
	start := p.cur().Span
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if _, ok := p.accept(token.Assign); ok {
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment")
		if !ok {
			return nil
		}
		return &ast.AssignStmt{Target: expr, Value: value, Pos: start.Cover(end.Span)}
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	if !ok {
		return nil
	}
	return &ast.ExprStmt{X: expr, Pos: start.Cover(end.Span)}
}

// parseSimpleNoSemi parses an assignment or expression without the trailing
// semicolon, for for-loop headers.
func (p *parser) parseSimpleNoSemi() ast.Stmt {
	start := p.cur().Span
	if p.at(token.Ident) && p.startsLocalDecl() {
		typ, ok := p.parseTypeRef()
		if !ok {
			return nil
		}
		name, ok := p.ident()
		if !ok {
			return nil
		}
		decl := &ast.VarDecl{Name: name, Type: typ, Const: typ.Const, Pos: start.Cover(name.Pos)}
		if _, ok := p.accept(token.Assign); ok {
			decl.Init = p.parseExpr()
		}
		return &ast.DeclStmt{Decl: decl}
	}
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	if _, ok := p.accept(token.Assign); ok {
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return &ast.AssignStmt{Target: expr, Value: value, Pos: start.Cover(value.Span())}
	}
	return &ast.ExprStmt{X: expr, Pos: start.Cover(expr.Span())}
}

func (p *parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after if"); !ok {
		return nil
	}
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after condition"); !ok {
		return nil
	}
	then := p.parseBlock()
	if then == nil {
		return nil
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then, Pos: start.Span.Cover(then.Pos)}
	if _, ok := p.accept(token.KwElse); ok {
		if p.at(token.KwIf) {
			stmt.Else = p.parseIf()
		} else {
			stmt.Else = p.parseBlock()
		}
		if stmt.Else != nil {
			stmt.Pos = stmt.Pos.Cover(stmt.Else.Span())
		}
	}
	return stmt
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.advance() // 'while'
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after while"); !ok {
		return nil
	}
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after condition"); !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Pos: start.Span.Cover(body.Pos)}
}

func (p *parser) parseFor() ast.Stmt {
	start := p.advance() // 'for'
	if _, ok := p.expect(token.LParen, diag.SynBadForHeader, "expected '(' after for"); !ok {
		return nil
	}
	stmt := &ast.ForStmt{}
	if !p.at(token.Semicolon) {
		stmt.Init = p.parseSimpleNoSemi()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynBadForHeader, "expected ';' in for header"); !ok {
		return nil
	}
	if !p.at(token.Semicolon) {
		stmt.Cond = p.parseExpr()
	}
	if _, ok := p.expect(token.Semicolon, diag.SynBadForHeader, "expected ';' in for header"); !ok {
		return nil
	}
	if !p.at(token.RParen) {
		stmt.Post = p.parseSimpleNoSemi()
	}
	if _, ok := p.expect(token.RParen, diag.SynBadForHeader, "expected ')' after for header"); !ok {
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	stmt.Body = body
	stmt.Pos = start.Span.Cover(body.Pos)
	return stmt
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	stmt := &ast.ReturnStmt{}
	if !p.at(token.Semicolon) {
		stmt.Value = p.parseExpr()
		if stmt.Value == nil {
			return nil
		}
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return")
	if !ok {
		return nil
	}
	stmt.Pos = start.Span.Cover(end.Span)
	return stmt
}
