package lexer

import (
	"obc/internal/diag"
	"obc/internal/source"
)

// Error is a lexical error: an unterminated string or comment, a malformed
// number or an oversized lexeme. Loc is the start of the offending construct.
type Error struct {
	Code   diag.Code
	Reason string
	Loc    source.Location
	Span   source.Span
}

func (e *Error) Error() string {
	return e.Loc.String() + ": " + e.Reason
}

// errLex запоминает первую ошибку и отдаёт диагностику в Reporter.
func (lx *Lexer) errLex(code diag.Code, m Mark, sp source.Span, msg string) {
	if lx.err == nil {
		lx.err = &Error{Code: code, Reason: msg, Loc: m.Loc(), Span: sp}
	}
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).At(m.Loc()).Emit()
	}
}
