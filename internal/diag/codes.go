package diag

import (
	"fmt"
)

// Code is a stable numeric diagnostic identifier. Codes below 1000 are
// semantic checks and keep the numbering the downstream tooling already
// recognizes (E0381, E0422, ...); lexer codes live in the 1000 range and
// parser codes in the 2000 range.
type Code uint16

const (
	UnknownCode Code = 0

	// Semantic analysis
	SemaUseBeforeInit  Code = 381 // read of possibly-uninitialized variable or field
	SemaCallBeforeDef  Code = 422 // call to a function not yet defined in this unit
	SemaSelfRecursion  Code = 423 // function calls itself
	SemaSymbolConflict Code = 428 // conflicting definitions for one name

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynUnclosedBrace    Code = 2006
	SynBadForHeader     Code = 2007
	SynBadInclude       Code = 2008

	// Driver
	IOLoadFile Code = 3001
)

var codeDescription = map[Code]string{
	UnknownCode:        "unknown diagnostic",
	SemaUseBeforeInit:  "use of possibly-uninitialized value",
	SemaCallBeforeDef:  "function called before its definition",
	SemaSelfRecursion:  "function calls itself",
	SemaSymbolConflict: "conflicting symbol definitions",

	LexUnknownChar:        "unknown character",
	LexUnterminatedString: "unterminated string literal",
	LexBadNumber:          "malformed numeric literal",

	SynUnexpectedToken:  "unexpected token",
	SynExpectSemicolon:  "expected ';'",
	SynExpectIdentifier: "expected identifier",
	SynExpectType:       "expected type",
	SynExpectExpression: "expected expression",
	SynUnclosedBrace:    "unclosed '{'",
	SynBadForHeader:     "malformed for-loop header",
	SynBadInclude:       "malformed #include directive",

	IOLoadFile: "failed to load source file",
}

// ID returns the stable machine-readable form, e.g. "E0422".
func (c Code) ID() string {
	return fmt.Sprintf("E%04d", uint16(c))
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
