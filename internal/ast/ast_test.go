package ast

import (
	"testing"

	"obc/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("zero id must be absent")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 {
		t.Fatalf("unexpected allocation %d", id)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range id must be absent")
	}
}

func TestTypedAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	lit := b.Exprs.NewLiteral(source.Span{}, ExprInt, ExprLiteralData{Raw: "1", Int: 1})
	bin := b.Exprs.NewBinary(source.Span{}, BinAdd, lit, lit)

	if _, ok := b.Exprs.Binary(lit); ok {
		t.Fatalf("literal must not read as binary")
	}
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Op != BinAdd || data.Left != lit {
		t.Fatalf("unexpected binary %+v", data)
	}
	if l, ok := b.Exprs.Literal(lit); !ok || l.Int != 1 {
		t.Fatalf("unexpected literal %+v", l)
	}

	w := b.Stmts.NewLoop(StmtWhile, source.Span{}, bin, nil)
	if loop, ok := b.Stmts.Loop(w); !ok || loop.Cond != bin {
		t.Fatalf("unexpected loop %+v", loop)
	}
	if _, ok := b.Stmts.If(w); ok {
		t.Fatalf("while must not read as if")
	}
}

func TestLookupBinaryOpRoundTrip(t *testing.T) {
	for op := BinEq; op <= BinAnd; op++ {
		got, ok := LookupBinaryOp(op.String())
		if !ok || got != op {
			t.Errorf("%v: round trip gave %v, %v", op, got, ok)
		}
	}
	if _, ok := LookupBinaryOp(">=<"); ok {
		t.Errorf(">=< must not be an operator")
	}
	if !BinIs.IsRelation() || BinAdd.IsRelation() {
		t.Errorf("relation tier misclassified")
	}
}

func TestQualidentString(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	q := Qualident{Module: b.Intern("Out"), Name: b.Intern("Int")}
	if got := b.QualidentString(q); got != "Out.Int" {
		t.Fatalf("got %q", got)
	}
	if got := b.QualidentString(Qualident{Name: b.Intern("T")}); got != "T" {
		t.Fatalf("got %q", got)
	}
}
