package diag

import (
	"cmp"
	"math"
	"slices"

	"obc/internal/source"
)

// Bag collects diagnostics up to a fixed limit. One Bag per file; not
// safe for concurrent use.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag returns a Bag that keeps at most limit diagnostics; limit is
// clamped to [0, math.MaxUint16].
func NewBag(limit int) *Bag {
	limit = min(max(limit, 0), math.MaxUint16)
	return &Bag{
		items: make([]Diagnostic, 0, min(limit, 64)),
		max:   uint16(limit), //nolint:gosec // clamped above
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если лимит уже исчерпан.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

func (b *Bag) firstAtLeast(sev Severity) (Diagnostic, bool) {
	i := slices.IndexFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
	if i < 0 {
		return Diagnostic{}, false
	}
	return b.items[i], true
}

func (b *Bag) HasErrors() bool {
	_, ok := b.firstAtLeast(SevError)
	return ok
}

func (b *Bag) HasWarnings() bool {
	_, ok := b.firstAtLeast(SevWarning)
	return ok
}

// First returns the first error diagnostic in insertion order.
func (b *Bag) First() (Diagnostic, bool) {
	return b.firstAtLeast(SevError)
}

// Merge appends every diagnostic of other, raising the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	total := min(len(b.items)+len(other.items), math.MaxUint16)
	b.max = max(b.max, uint16(total))
	b.items = append(b.items, other.items[:min(len(other.items), total-len(b.items))]...)
}

// Sort orders by file, start, end, then severity (errors first) and code.
// Equal keys keep insertion order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeats of the same code at the same span, keeping the first.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
