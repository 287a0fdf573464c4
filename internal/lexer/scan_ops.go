package lexer

import (
	"obc/internal/diag"
	"obc/internal/token"
)

// scanRun — maximal munch: вся серия символов класса становится одним токеном.
// Правильность написания ("<=" или ">=<") проверяет только парсер.
func (lx *Lexer) scanRun(kind token.Kind, class func(byte) bool) token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && class(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return lx.makeTok(kind, start, lx.lexeme(sp))
}

// scanPunct — одиночная пунктуация, ":=" и "..". "(*" сюда не попадает:
// комментарии снимаются в Next до выбора сканера.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	switch b {
	case ';':
		return lx.makeTok(token.Semicolon, start, "")
	case ',':
		return lx.makeTok(token.Comma, start, "")
	case '|':
		return lx.makeTok(token.Pipe, start, "")
	case '^':
		return lx.makeTok(token.Caret, start, "")
	case ':':
		if lx.cursor.Eat('=') {
			return lx.makeTok(token.Assign, start, "")
		}
		return lx.makeTok(token.Colon, start, "")
	case '.':
		if lx.cursor.Eat('.') {
			return lx.makeTok(token.Range, start, "")
		}
		return lx.makeTok(token.Dot, start, "")
	case '(':
		return lx.makeTok(token.LParen, start, "")
	case ')':
		return lx.makeTok(token.RParen, start, "")
	case '{':
		return lx.makeTok(token.LBrace, start, "")
	case '}':
		return lx.makeTok(token.RBrace, start, "")
	case '[':
		return lx.makeTok(token.LBracket, start, "")
	case ']':
		return lx.makeTok(token.RBracket, start, "")
	}
	// прочее: байт уже съеден
	return lx.makeTok(token.Other, start, "")
}

// limitToken enforces Options.MaxTokenLen.
func (lx *Lexer) limitToken(tok token.Token) token.Token {
	if lx.opts.MaxTokenLen == 0 || tok.Kind == token.Invalid || tok.Span.Len() <= lx.opts.MaxTokenLen {
		return tok
	}
	m := Mark{off: tok.Span.Start, loc: tok.Loc}
	lx.errLex(diag.LexTokenTooLong, m, tok.Span, "token too long")
	return token.Make(token.Invalid, tok.Span, tok.Loc, "")
}
