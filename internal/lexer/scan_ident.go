package lexer

import (
	"obc/internal/token"
)

// scanIdent сканирует букву, за которой идут буквы и цифры.
// Распознавание ключевых слов и OR/DIV/MOD/IN/IS делает token.Make.
// Руна, которая не может начинать идентификатор, даёт OTHER.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, _ := lx.peekRune()
	if !isLetterRune(r) {
		lx.bumpRune()
		return lx.makeTok(token.Other, start, "")
	}
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			// ASCII fast-path
			if lx.cursor.EOF() || !(isLetterByte(b) || isDec(b)) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if sz == 0 || !isAlnumRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Make(token.Ident, sp, start.Loc(), lx.lexeme(sp))
}
