package lexer

import (
	"testing"

	"obc/internal/source"
)

func TestCursorTracksLocation(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.mod", []byte("ab\nй\n")))
	c := NewCursor(f)

	m := c.Mark()
	c.Bump()
	c.Bump()
	if c.Loc != (source.Location{Line: 1, Column: 3}) {
		t.Fatalf("got %v", c.Loc)
	}
	c.Bump() // \n
	if c.Loc != (source.Location{Line: 2, Column: 1}) {
		t.Fatalf("got %v", c.Loc)
	}
	c.Bump() // first byte of й
	c.Bump() // continuation byte
	if c.Loc != (source.Location{Line: 2, Column: 2}) {
		t.Fatalf("got %v", c.Loc)
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 5 {
		t.Fatalf("got span %v", sp)
	}

	c.Reset(m)
	if c.Off != 0 || c.Loc != source.StartLocation {
		t.Fatalf("reset failed: %d %v", c.Off, c.Loc)
	}
	if !c.Eat('a') || c.Eat('x') {
		t.Fatalf("eat mismatch")
	}
}

func TestCursorPeekAtEnd(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.mod", []byte("x")))
	c := NewCursor(f)
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
	c.Bump()
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatalf("expected EOF behaviour")
	}
}
