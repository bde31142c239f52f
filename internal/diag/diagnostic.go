package diag

import (
	"cinder/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Symbol names the function or variable the diagnostic is about, when
	// there is one; analyzers fill it so tooling does not have to parse
	// Message.
	Symbol  string
	Primary source.Span
	Notes   []Note
	Fixes   []Fix
}
