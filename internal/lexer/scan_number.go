package lexer

import (
	"strconv"

	"obc/internal/diag"
	"obc/internal/token"
)

// scanNumber: цифры с не более чем одной точкой.
// Точка, за которой сразу идёт ещё одна точка, не поглощается: "1..5"
// это INTLITERAL, RANGE, INTLITERAL.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	hasDot := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDec(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '.' && !hasDot {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '.' {
				break
			}
			hasDot = true
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.lexeme(sp)
	tok := token.Make(token.IntLit, sp, start.Loc(), text)
	if hasDot {
		tok.Kind = token.FloatLit
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			lx.errLex(diag.LexBadNumber, start, sp, "malformed float literal "+text)
			return token.Make(token.Invalid, sp, start.Loc(), text)
		}
		tok.Float = v
		return tok
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, start, sp, "integer literal out of range: "+text)
		return token.Make(token.Invalid, sp, start.Loc(), text)
	}
	tok.Int = v
	return tok
}
