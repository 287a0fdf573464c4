package lexer

import (
	"obc/internal/source"
	"obc/internal/token"
)

// Lexer выдаёт токены по одному, по запросу парсера. Предварительного
// прохода по всему файлу нет.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	err    *Error       // первая лексическая ошибка
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен. Пробелы и комментарии
// пропускаются в цикле. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	// 1) Если есть look — вернуть его и очистить
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	// 2) пробелы и комментарии
	for {
		lx.skipSpace()
		if !lx.atCommentOpen() {
			break
		}
		if bad, ok := lx.skipComment(); !ok {
			return bad
		}
	}

	// 3) EOF
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Loc:  lx.cursor.Loc,
		}
	}

	// 4) Посмотреть текущий байт и выбрать сканер
	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isLetterByte(ch):
		tok = lx.scanIdent()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор; иначе OTHER
		tok = lx.scanIdent()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case isOperatorByte(ch):
		tok = lx.scanRun(token.Operator, isOperatorByte)

	case isRelationByte(ch):
		tok = lx.scanRun(token.Relation, isRelationByte)

	default:
		tok = lx.scanPunct()
	}

	return lx.limitToken(tok)
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the first lexical error seen so far, or nil.
func (lx *Lexer) Err() *Error {
	return lx.err
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the cursor.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) lexeme(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) makeTok(kind token.Kind, m Mark, text string) token.Token {
	return token.Make(kind, lx.cursor.SpanFrom(m), m.Loc(), text)
}
