package lexer

import (
	"obc/internal/diag"
	"obc/internal/token"
)

// scanString: всё до следующей '"' берётся как есть, escape-последовательностей нет.
// Payload — содержимое без кавычек.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	body := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			text := string(lx.file.Content[body:lx.cursor.Off])
			lx.cursor.Bump()
			return lx.makeTok(token.StringLit, start, text)
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, start, sp, "unterminated string literal")
	return lx.makeTok(token.Invalid, start, lx.lexeme(sp))
}
