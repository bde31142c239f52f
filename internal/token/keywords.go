package token

var keywords = map[string]Kind{
	"const":    KwConst,
	"struct":   KwStruct,
	"enum":     KwEnum,
	"scope":    KwScope,
	"type":     KwType,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

var primitiveTypes = map[string]bool{
	"void": true, "bool": true, "bit": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"i8": true, "i16": true, "i32": true, "i64": true,
	"f32": true, "f64": true,
	"string": true,
	"isr":    true,
}

// IsPrimitiveType reports whether name spells one of the built-in types.
// Type names are ordinary identifiers to the lexer; the parser consults this
// table when deciding whether an identifier starts a declaration.
func IsPrimitiveType(name string) bool {
	return primitiveTypes[name]
}
