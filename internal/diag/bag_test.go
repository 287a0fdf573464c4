package diag

import (
	"testing"

	"obc/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}

	ReportWarning(r, IOCacheError, source.Span{File: 1, Start: 4, End: 5}, "warn").Emit()
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatalf("expected warning")
	}

	ReportError(r, LexBadNumber, source.Span{File: 1, Start: 0, End: 1}, "bad").Emit()
	ReportError(r, LexBadNumber, source.Span{File: 1, Start: 9, End: 10}, "dropped").Emit()

	if b.Len() != 2 {
		t.Fatalf("expected capacity to cap items at 2, got %d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatalf("expected error")
	}
	first, ok := b.First()
	if !ok || first.Message != "bad" {
		t.Fatalf("unexpected first error: %+v", first)
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(8)
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 2, Start: 0, End: 1}, "c"))
	b.Add(NewError(SynUnexpectedToken, source.Span{File: 1, Start: 5, End: 6}, "b"))
	b.Add(NewError(LexBadNumber, source.Span{File: 1, Start: 5, End: 6}, "a"))
	b.Add(NewError(LexBadNumber, source.Span{File: 1, Start: 5, End: 6}, "a again"))

	b.Sort()
	b.Dedup()

	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SynNameMismatch, source.Span{}, "x").
		At(source.Location{Line: 3, Column: 7}).
		WithNote(source.Span{}, "declared here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", b.Len())
	}
	d := b.Items()[0]
	if d.Loc.Line != 3 || d.Loc.Column != 7 || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynNameMismatch:       "SYN2008",
		IOLoadFileError:       "IO4001",
		ProjInvalidConfig:     "PRJ5001",
		UnknownCode:           "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", c, got, want)
		}
	}
	if SynUnknownOperator.Title() != "Unknown operator or relation" {
		t.Errorf("unexpected title %q", SynUnknownOperator.Title())
	}
}
