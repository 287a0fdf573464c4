package ast

import "obc/internal/source"

type SelectorKind uint8

const (
	SelField SelectorKind = iota // .name
	SelIndex                     // [i, j]
	SelDeref                     // ^
	SelGuard                     // (T)
)

func (k SelectorKind) String() string {
	switch k {
	case SelField:
		return "Field"
	case SelIndex:
		return "Index"
	case SelDeref:
		return "Deref"
	case SelGuard:
		return "Guard"
	}
	return "Selector?"
}

// Selector is one postfix step of a designator. Only the fields matching
// Kind are meaningful.
type Selector struct {
	Kind  SelectorKind
	Span  source.Span
	Field source.StringID
	Index []ExprID
	Guard Qualident
}

// Designator is a base identifier followed by selectors, e.g. a.b[i]^(T).
type Designator struct {
	Span      source.Span
	Base      source.StringID
	BaseSpan  source.Span
	Selectors []Selector
}

type Designators struct {
	Arena *Arena[Designator]
}

func NewDesignators(capHint uint) *Designators {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Designators{Arena: NewArena[Designator](capHint)}
}

func (d *Designators) New(sp source.Span, base source.StringID, baseSpan source.Span, sels []Selector) DesignatorID {
	return DesignatorID(d.Arena.Allocate(Designator{
		Span:      sp,
		Base:      base,
		BaseSpan:  baseSpan,
		Selectors: append([]Selector(nil), sels...),
	}))
}

func (d *Designators) Get(id DesignatorID) *Designator {
	return d.Arena.Get(uint32(id))
}
