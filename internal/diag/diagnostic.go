package diag

import (
	"obc/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// Loc is the line/column of Primary.Start as stamped by the lexer.
	Loc   source.Location
	Notes []Note
}
