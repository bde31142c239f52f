package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// Lexer produces tokens for one Cinder source file. Lexical problems are
// collected into the bag; the lexer itself never stops early.
type Lexer struct {
	file   *source.File
	cursor Cursor
	bag    *diag.Bag
	look   *token.Token
}

func New(file *source.File, bag *diag.Bag) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		bag:    bag,
	}
}

// Tokenize scans the whole file into a slice, EOF token included.
func Tokenize(file *source.File, bag *diag.Bag) []token.Token {
	lx := New(file, bag)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.spanFrom(lx.cursor.Off)}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '#':
		return lx.scanInclude()
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	default:
		return lx.scanOperator()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.cursor.Bump()
		case ch == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				return
			}
			switch b1 {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case '*':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for !lx.cursor.EOF() {
					if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
						lx.cursor.Bump()
						lx.cursor.Bump()
						break
					}
					lx.cursor.Bump()
				}
			default:
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := string(lx.file.Content[start:lx.cursor.Off])
	span := lx.span(start)
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	kind := token.IntLit

	// Hex and binary literals.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X' || b1 == 'b' || b1 == 'B') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for !lx.cursor.EOF() && isHexDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		span := lx.span(start)
		text := string(lx.file.Content[start:lx.cursor.Off])
		if digits == 0 {
			lx.report(diag.LexBadNumber, span, "numeric literal has no digits")
			return token.Token{Kind: token.Invalid, Span: span, Text: text}
		}
		return token.Token{Kind: token.IntLit, Span: span, Text: text}
	}

	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDigit(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return token.Token{
		Kind: kind,
		Span: lx.span(start),
		Text: string(lx.file.Content[start:lx.cursor.Off]),
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if ch == '"' {
			return token.Token{
				Kind: token.StringLit,
				Span: lx.span(start),
				Text: string(lx.file.Content[start+1 : lx.cursor.Off-1]),
			}
		}
		if ch == '\n' {
			break
		}
	}
	span := lx.span(start)
	lx.report(diag.LexUnterminatedString, span, "string literal is not terminated")
	return token.Token{Kind: token.Invalid, Span: span}
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		ch := lx.cursor.Bump()
		if ch == '\\' && !lx.cursor.EOF() {
			lx.cursor.Bump()
			continue
		}
		if ch == '\'' {
			return token.Token{
				Kind: token.CharLit,
				Span: lx.span(start),
				Text: string(lx.file.Content[start+1 : lx.cursor.Off-1]),
			}
		}
		if ch == '\n' {
			break
		}
	}
	span := lx.span(start)
	lx.report(diag.LexUnterminatedString, span, "character literal is not terminated")
	return token.Token{Kind: token.Invalid, Span: span}
}

// scanInclude consumes a whole `#include <name>` / `#include "name"`
// directive and yields a single Include token whose Text is the header name.
func (lx *Lexer) scanInclude() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // '#'
	wordStart := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	word := string(lx.file.Content[wordStart:lx.cursor.Off])
	if word != "include" {
		span := lx.span(start)
		lx.report(diag.SynBadInclude, span, "unknown directive #"+word)
		return token.Token{Kind: token.Invalid, Span: span, Text: word}
	}
	for !lx.cursor.EOF() && (lx.cursor.Peek() == ' ' || lx.cursor.Peek() == '\t') {
		lx.cursor.Bump()
	}

	var closing byte
	switch lx.cursor.Peek() {
	case '<':
		closing = '>'
	case '"':
		closing = '"'
	default:
		span := lx.span(start)
		lx.report(diag.SynBadInclude, span, "#include expects <header> or \"header\"")
		return token.Token{Kind: token.Invalid, Span: span}
	}
	lx.cursor.Bump()
	nameStart := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != closing && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != closing {
		span := lx.span(start)
		lx.report(diag.SynBadInclude, span, "#include is not terminated")
		return token.Token{Kind: token.Invalid, Span: span}
	}
	name := string(lx.file.Content[nameStart:lx.cursor.Off])
	lx.cursor.Bump() // closing delimiter
	return token.Token{Kind: token.Include, Span: lx.span(start), Text: name}
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Bump()

	two := func(next byte, pair, single token.Kind) token.Token {
		if lx.cursor.Peek() == next {
			lx.cursor.Bump()
			return token.Token{Kind: pair, Span: lx.span(start)}
		}
		return token.Token{Kind: single, Span: lx.span(start)}
	}

	switch ch {
	case '(':
		return token.Token{Kind: token.LParen, Span: lx.span(start)}
	case ')':
		return token.Token{Kind: token.RParen, Span: lx.span(start)}
	case '{':
		return token.Token{Kind: token.LBrace, Span: lx.span(start)}
	case '}':
		return token.Token{Kind: token.RBrace, Span: lx.span(start)}
	case '[':
		return token.Token{Kind: token.LBracket, Span: lx.span(start)}
	case ']':
		return token.Token{Kind: token.RBracket, Span: lx.span(start)}
	case ';':
		return token.Token{Kind: token.Semicolon, Span: lx.span(start)}
	case ',':
		return token.Token{Kind: token.Comma, Span: lx.span(start)}
	case '.':
		return token.Token{Kind: token.Dot, Span: lx.span(start)}
	case ':':
		return token.Token{Kind: token.Colon, Span: lx.span(start)}
	case '+':
		return token.Token{Kind: token.Plus, Span: lx.span(start)}
	case '-':
		return token.Token{Kind: token.Minus, Span: lx.span(start)}
	case '*':
		return token.Token{Kind: token.Star, Span: lx.span(start)}
	case '/':
		return token.Token{Kind: token.Slash, Span: lx.span(start)}
	case '%':
		return token.Token{Kind: token.Percent, Span: lx.span(start)}
	case '~':
		return token.Token{Kind: token.Tilde, Span: lx.span(start)}
	case '^':
		return token.Token{Kind: token.Caret, Span: lx.span(start)}
	case '=':
		return two('=', token.EqEq, token.Assign)
	case '!':
		return two('=', token.BangEq, token.Bang)
	case '<':
		if lx.cursor.Peek() == '<' {
			lx.cursor.Bump()
			return token.Token{Kind: token.Shl, Span: lx.span(start)}
		}
		return two('=', token.LtEq, token.Lt)
	case '>':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			return token.Token{Kind: token.Shr, Span: lx.span(start)}
		}
		return two('=', token.GtEq, token.Gt)
	case '&':
		return two('&', token.AndAnd, token.Amp)
	case '|':
		return two('|', token.OrOr, token.Pipe)
	}

	span := lx.span(start)
	lx.report(diag.LexUnknownChar, span, "unknown character "+string(rune(ch)))
	return token.Token{Kind: token.Invalid, Span: span, Text: string(rune(ch))}
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off}
}

func (lx *Lexer) spanFrom(off uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: off, End: off}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.bag != nil {
		lx.bag.Add(diag.NewError(code, span, msg))
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
