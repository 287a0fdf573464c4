package ast

import (
	"obc/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Literals    *Arena[ExprLiteralData]
	Designators *Arena[ExprDesignatorData]
	Calls       *Arena[ExprCallData]
	Unaries     *Arena[ExprUnaryData]
	Binaries    *Arena[ExprBinaryData]
	Sets        *Arena[ExprSetData]
	Groups      *Arena[ExprGroupData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Literals:    NewArena[ExprLiteralData](capHint),
		Designators: NewArena[ExprDesignatorData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		Unaries:     NewArena[ExprUnaryData](capHint),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Sets:        NewArena[ExprSetData](capHint),
		Groups:      NewArena[ExprGroupData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewLiteral creates a literal expression; kind must be one of
// ExprInt, ExprFloat, ExprString or ExprChar.
func (e *Exprs) NewLiteral(span source.Span, kind ExprKind, data ExprLiteralData) ExprID {
	payload := e.Literals.Allocate(data)
	return e.new(kind, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil {
		return nil, false
	}
	switch expr.Kind {
	case ExprInt, ExprFloat, ExprString, ExprChar:
		return e.Literals.Get(uint32(expr.Payload)), true
	}
	return nil, false
}

// NewNil creates a NIL expression.
func (e *Exprs) NewNil(span source.Span) ExprID {
	return e.new(ExprNil, span, NoPayloadID)
}

// NewDesignator wraps a designator used as a value.
func (e *Exprs) NewDesignator(span source.Span, d DesignatorID) ExprID {
	payload := e.Designators.Allocate(ExprDesignatorData{Designator: d})
	return e.new(ExprDesignator, span, PayloadID(payload))
}

func (e *Exprs) Designator(id ExprID) (*ExprDesignatorData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprDesignator {
		return nil, false
	}
	return e.Designators.Get(uint32(expr.Payload)), true
}

// NewCall creates a function call expression.
func (e *Exprs) NewCall(span source.Span, d DesignatorID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Designator: d,
		Args:       append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns the unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns the binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSet(span source.Span, elems []SetElem) ExprID {
	payload := e.Sets.Allocate(ExprSetData{Elems: append([]SetElem(nil), elems...)})
	return e.new(ExprSet, span, PayloadID(payload))
}

func (e *Exprs) Set(id ExprID) (*ExprSetData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSet {
		return nil, false
	}
	return e.Sets.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}
