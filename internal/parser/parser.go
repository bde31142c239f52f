// Package parser turns a token stream into an ast.Unit.
//
// The grammar is deliberately small: the semantic core downstream only
// observes declarations, statements, calls, and assignments. Errors are
// collected into a diag.Bag and the parser recovers at declaration and
// statement boundaries so one run reports as much as possible.
package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

type parser struct {
	toks []token.Token
	pos  int
	file source.FileID
	bag  *diag.Bag
}

// ParseFile lexes and parses one file into a Unit.
func ParseFile(file *source.File, bag *diag.Bag) *ast.Unit {
	toks := lexer.Tokenize(file, bag)
	p := &parser{toks: toks, file: file.ID, bag: bag}
	return p.parseUnit(file.Path)
}

func (p *parser) cur() token.Token { return p.toks[p.pos] }

func (p *parser) peek() token.Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *parser) advance() token.Token {
	tok := p.cur()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *parser) expect(kind token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	p.report(code, p.cur().Span, msg)
	return token.Token{}, false
}

func (p *parser) report(code diag.Code, span source.Span, msg string) {
	p.bag.Add(diag.NewError(code, span, msg))
}

// syncDecl skips ahead to a plausible declaration start after an error.
func (p *parser) syncDecl() {
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			p.advance()
			return
		case token.KwStruct, token.KwEnum, token.KwScope, token.KwType, token.KwConst, token.Include:
			return
		}
		p.advance()
	}
}

// syncStmt skips to the next statement boundary.
func (p *parser) syncStmt() {
	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace:
			return
		}
		p.advance()
	}
}

func (p *parser) parseUnit(path string) *ast.Unit {
	unit := &ast.Unit{File: p.file, Path: path}
	for !p.at(token.EOF) {
		if inc, ok := p.accept(token.Include); ok {
			unit.Includes = append(unit.Includes, ast.Include{Name: inc.Text, Span: inc.Span})
			continue
		}
		if p.at(token.Invalid) {
			p.advance()
			continue
		}
		decl := p.parseDecl()
		if decl == nil {
			p.syncDecl()
			continue
		}
		unit.Decls = append(unit.Decls, decl)
	}
	return unit
}

func (p *parser) ident() (ast.Ident, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier, found '"+p.cur().Kind.String()+"'")
	if !ok {
		return ast.Ident{}, false
	}
	return ast.Ident{Name: tok.Text, Pos: tok.Span}, true
}
