package lexer

import (
	"obc/internal/diag"
	"obc/internal/token"
)

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() && isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) atCommentOpen() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '(' && b1 == '*'
}

// skipComment съедает "(* ... *)". Без NestedComments комментарий закрывает
// первая "*)". Возвращает Invalid и false, если файл кончился внутри комментария.
func (lx *Lexer) skipComment() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // (
	lx.cursor.Bump() // *
	depth := 1
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		switch {
		case ok && b0 == '*' && b1 == ')':
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			if depth == 0 {
				return token.Token{}, true
			}
		case ok && b0 == '(' && b1 == '*' && lx.opts.NestedComments:
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedComment, start, sp, "unterminated comment")
	return token.Make(token.Invalid, sp, start.Loc(), ""), false
}
