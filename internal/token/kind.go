package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal (quotes stripped in Text).
	StringLit
	// CharLit represents a character literal.
	CharLit
	// Include represents a whole `#include <...>` or `#include "..."`
	// directive; Text carries the header name without delimiters.
	Include

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwScope represents the 'scope' keyword (container declaration).
	KwScope // scope
	// KwType represents the 'type' keyword (alias declaration).
	KwType // type
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Colon     // :
	Assign    // =
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Lt        // <
	Gt        // >
	LtEq      // <=
	GtEq      // >=
	EqEq      // ==
	BangEq    // !=
	Bang      // !
	Amp       // &
	Pipe      // |
	Caret     // ^
	Tilde     // ~
	AndAnd    // &&
	OrOr      // ||
	Shl       // <<
	Shr       // >>
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Ident:      "ident",
	IntLit:     "int",
	FloatLit:   "float",
	StringLit:  "string",
	CharLit:    "char",
	Include:    "include",
	KwConst:    "const",
	KwStruct:   "struct",
	KwEnum:     "enum",
	KwScope:    "scope",
	KwType:     "type",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwFor:      "for",
	KwReturn:   "return",
	KwBreak:    "break",
	KwContinue: "continue",
	KwTrue:     "true",
	KwFalse:    "false",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Colon:      ":",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Lt:         "<",
	Gt:         ">",
	LtEq:       "<=",
	GtEq:       ">=",
	EqEq:       "==",
	BangEq:     "!=",
	Bang:       "!",
	Amp:        "&",
	Pipe:       "|",
	Caret:      "^",
	Tilde:      "~",
	AndAnd:     "&&",
	OrOr:       "||",
	Shl:        "<<",
	Shr:        ">>",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
