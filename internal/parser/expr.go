package parser

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/token"
)

// binaryPrec returns the binding power of a binary operator, 0 for none.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.OrOr:
		return 1
	case token.AndAnd:
		return 2
	case token.Pipe:
		return 3
	case token.Caret:
		return 4
	case token.Amp:
		return 5
	case token.EqEq, token.BangEq:
		return 6
	case token.Lt, token.Gt, token.LtEq, token.GtEq:
		return 7
	case token.Shl, token.Shr:
		return 8
	case token.Plus, token.Minus:
		return 9
	case token.Star, token.Slash, token.Percent:
		return 10
	default:
		return 0
	}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for {
		prec := binaryPrec(p.cur().Kind)
		if prec < minPrec {
			return left
		}
		op := p.advance()
		right := p.parseBinary(prec + 1)
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			Op: op.Kind, X: left, Y: right,
			Pos: left.Span().Cover(right.Span()),
		}
	}
}

func (p *parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.Minus, token.Bang, token.Tilde, token.Amp:
		op := p.advance()
		x := p.parseUnary()
		if x == nil {
			return nil
		}
		return &ast.UnaryExpr{Op: op.Kind, X: x, Pos: op.Span.Cover(x.Span())}
	default:
		return p.parsePostfix()
	}
}

func (p *parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch p.cur().Kind {
		case token.Dot:
			p.advance()
			sel, ok := p.ident()
			if !ok {
				return nil
			}
			expr = &ast.MemberExpr{X: expr, Sel: sel, Pos: expr.Span().Cover(sel.Pos)}
		case token.LParen:
			p.advance()
			call := &ast.CallExpr{Callee: expr}
			for !p.at(token.RParen) && !p.at(token.EOF) {
				arg := p.parseExpr()
				if arg == nil {
					return nil
				}
				call.Args = append(call.Args, arg)
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			end, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after arguments")
			if !ok {
				return nil
			}
			call.Pos = expr.Span().Cover(end.Span)
			expr = call
		case token.LBracket:
			p.advance()
			index := p.parseExpr()
			if index == nil {
				return nil
			}
			end, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']'")
			if !ok {
				return nil
			}
			expr = &ast.IndexExpr{X: expr, Index: index, Pos: expr.Span().Cover(end.Span)}
		default:
			return expr
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.cur().Kind {
	case token.Ident:
		tok := p.advance()
		return &ast.IdentExpr{Name: tok.Text, Pos: tok.Span}
	case token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.KwTrue, token.KwFalse:
		tok := p.advance()
		return &ast.LiteralExpr{Kind: tok.Kind, Text: tok.Text, Pos: tok.Span}
	case token.LParen:
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')'"); !ok {
			return nil
		}
		return expr
	default:
		p.report(diag.SynExpectExpression, p.cur().Span,
			"expected expression, found '"+p.cur().Kind.String()+"'")
		return nil
	}
}
