package parser

import (
	"fmt"

	"fortio.org/safecast"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

func (p *parser) parseDecl() ast.Decl {
	switch p.cur().Kind {
	case token.KwStruct:
		return p.parseStructDecl()
	case token.KwEnum:
		return p.parseEnumDecl()
	case token.KwScope:
		return p.parseScopeDecl()
	case token.KwType:
		return p.parseTypeAlias()
	case token.KwConst, token.Ident:
		return p.parseTypedDecl()
	default:
		p.report(diag.SynUnexpectedToken, p.cur().Span,
			"expected declaration, found '"+p.cur().Kind.String()+"'")
		return nil
	}
}

// parseTypedDecl handles declarations that open with a type reference:
// functions, prototypes, and variables.
func (p *parser) parseTypedDecl() ast.Decl {
	typ, ok := p.parseTypeRef()
	if !ok {
		return nil
	}
	name, ok := p.ident()
	if !ok {
		return nil
	}

	if p.at(token.LParen) {
		return p.parseFuncRest(typ, name)
	}
	return p.parseVarRest(typ, name)
}

func (p *parser) parseFuncRest(ret ast.TypeRef, name ast.Ident) ast.Decl {
	start := ret.Pos
	p.advance() // '('

	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		ptype, ok := p.parseTypeRef()
		if !ok {
			p.syncStmt()
			return nil
		}
		pname, ok := p.ident()
		if !ok {
			p.syncStmt()
			return nil
		}
		p.parseArrayDims(&ptype)
		params = append(params, ast.Param{Name: pname, Type: ptype})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after parameters"); !ok {
		return nil
	}

	fn := &ast.FuncDecl{Name: name, Ret: ret, Params: params}
	if _, ok := p.accept(token.Semicolon); ok {
		fn.Pos = start.Cover(name.Pos)
		return fn
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}
	fn.Body = body
	fn.Pos = start.Cover(body.Pos)
	return fn
}

func (p *parser) parseVarRest(typ ast.TypeRef, name ast.Ident) ast.Decl {
	decl := &ast.VarDecl{Name: name, Type: typ, Const: typ.Const}
	p.parseArrayDims(&decl.Type)

	if _, ok := p.accept(token.Assign); ok {
		init := p.parseExpr()
		if init == nil {
			p.syncStmt()
			return nil
		}
		decl.Init = init
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration")
	if !ok {
		p.syncStmt()
		return nil
	}
	decl.Pos = typ.Pos.Cover(end.Span)
	return decl
}

// parseArrayDims consumes `[lit]` / `[NAME]` suffixes into the type.
func (p *parser) parseArrayDims(typ *ast.TypeRef) {
	for p.at(token.LBracket) {
		open := p.advance()
		dim := ast.ArrayDim{Pos: open.Span}
		switch p.cur().Kind {
		case token.IntLit:
			lit := p.advance()
			v, ok := ast.IntLiteralValue(&ast.LiteralExpr{Kind: token.IntLit, Text: lit.Text, Pos: lit.Span})
			if !ok {
				p.report(diag.LexBadNumber, lit.Span, "bad array length")
				continue
			}
			length, err := safecast.Conv[uint32](v)
			if err != nil {
				p.report(diag.LexBadNumber, lit.Span, fmt.Sprintf("array length %d too large", v))
				continue
			}
			dim.Length = length
		case token.Ident:
			name := p.advance()
			dim.Name = name.Text
		default:
			p.report(diag.SynExpectExpression, p.cur().Span, "expected array length")
		}
		if _, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'"); !ok {
			return
		}
		typ.Dims = append(typ.Dims, dim)
	}
}

func (p *parser) parseTypeRef() (ast.TypeRef, bool) {
	var typ ast.TypeRef
	if tok, ok := p.accept(token.KwConst); ok {
		typ.Const = true
		typ.Pos = tok.Span
	}
	name, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name")
	if !ok {
		return typ, false
	}
	typ.Name = name.Text
	if typ.Pos.Empty() {
		typ.Pos = name.Span
	} else {
		typ.Pos = typ.Pos.Cover(name.Span)
	}

	// string<N> capacity
	if typ.Name == "string" && p.at(token.Lt) {
		p.advance()
		capExpr := p.parsePrimary()
		if capExpr == nil {
			return typ, false
		}
		typ.Capacity = capExpr
		if _, ok := p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' after string capacity"); !ok {
			return typ, false
		}
	}
	return typ, true
}

func (p *parser) parseStructDecl() ast.Decl {
	start := p.advance() // 'struct'
	name, ok := p.ident()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after struct name"); !ok {
		return nil
	}

	decl := &ast.StructDecl{Name: name}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		ftype, ok := p.parseTypeRef()
		if !ok {
			p.syncStmt()
			continue
		}
		fname, ok := p.ident()
		if !ok {
			p.syncStmt()
			continue
		}
		p.parseArrayDims(&ftype)
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field"); !ok {
			p.syncStmt()
			continue
		}
		decl.Fields = append(decl.Fields, ast.Field{Name: fname, Type: ftype})
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "struct body is not closed")
	p.accept(token.Semicolon)
	decl.Pos = start.Span.Cover(end.Span)
	return decl
}

func (p *parser) parseEnumDecl() ast.Decl {
	start := p.advance() // 'enum'
	name, ok := p.ident()
	if !ok {
		return nil
	}

	decl := &ast.EnumDecl{Name: name}
	if _, ok := p.accept(token.Colon); ok {
		bits, ok := p.expect(token.IntLit, diag.SynExpectExpression, "expected enum bit width")
		if !ok {
			return nil
		}
		v, litOK := ast.IntLiteralValue(&ast.LiteralExpr{Kind: token.IntLit, Text: bits.Text, Pos: bits.Span})
		width, err := safecast.Conv[uint8](v)
		if !litOK || err != nil || width == 0 {
			p.report(diag.LexBadNumber, bits.Span, "enum bit width must be a small positive integer")
		} else {
			decl.Bits = width
		}
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mname, ok := p.ident()
		if !ok {
			p.syncStmt()
			continue
		}
		member := ast.EnumMember{Name: mname}
		if _, ok := p.accept(token.Assign); ok {
			member.Value = p.parseExpr()
		}
		decl.Members = append(decl.Members, member)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "enum body is not closed")
	p.accept(token.Semicolon)
	decl.Pos = start.Span.Cover(end.Span)
	return decl
}

func (p *parser) parseScopeDecl() ast.Decl {
	start := p.advance() // 'scope'
	name, ok := p.ident()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after scope name"); !ok {
		return nil
	}

	decl := &ast.ScopeDecl{Name: name}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		member := p.parseDecl()
		if member == nil {
			p.syncDecl()
			continue
		}
		decl.Decls = append(decl.Decls, member)
	}
	end, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "scope body is not closed")
	decl.Pos = start.Span.Cover(end.Span)
	return decl
}

func (p *parser) parseTypeAlias() ast.Decl {
	start := p.advance() // 'type'
	name, ok := p.ident()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias"); !ok {
		return nil
	}
	target, ok := p.parseTypeRef()
	if !ok {
		return nil
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after type alias")
	if !ok {
		return nil
	}
	return &ast.TypeAliasDecl{Name: name, Target: target, Pos: start.Span.Cover(end.Span)}
}
