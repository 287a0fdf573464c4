package lexer

import (
	"fmt"

	"obc/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле: байтовое смещение и
// человекочитаемую позицию (строка/колонка) следующего непрочитанного символа.
type Cursor struct {
	File *source.File
	Off  uint32
	Loc  source.Location
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file, primed at 1:1.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Off:   0,
		Loc:   source.StartLocation,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// Перевод строки начинает новую строку с колонки 1; байты продолжения UTF-8
// колонку не двигают, так что колонка считается в символах.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	switch {
	case b == '\n':
		c.Loc.Line++
		c.Loc.Column = 1
	case b&0xC0 != 0x80:
		c.Loc.Column++
	}
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Bump()
		return true
	}
	return false
}

// Mark это метка, что бы быстро получать Span и Location читаемого фрагмента
type Mark struct {
	off uint32
	loc source.Location
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, loc: c.Loc}
}

// Loc returns the location stamped at the mark.
func (m Mark) Loc() source.Location { return m.loc }

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: m.off,
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = m.off
	c.Loc = m.loc
}
