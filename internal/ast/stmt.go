package ast

import (
	"obc/internal/source"
)

type StmtKind uint8

const (
	StmtAssign StmtKind = iota
	StmtCall
	StmtIf
	StmtCase
	StmtWhile
	StmtRepeat
	StmtFor
	StmtLoop
	StmtWith
	StmtExit
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtCall:
		return "Call"
	case StmtIf:
		return "If"
	case StmtCase:
		return "Case"
	case StmtWhile:
		return "While"
	case StmtRepeat:
		return "Repeat"
	case StmtFor:
		return "For"
	case StmtLoop:
		return "Loop"
	case StmtWith:
		return "With"
	case StmtExit:
		return "Exit"
	case StmtReturn:
		return "Return"
	}
	return "Stmt?"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtAssignData struct {
	Target DesignatorID
	Value  ExprID
}

// StmtCallData: HasArgs различает "P" и "P()".
type StmtCallData struct {
	Designator DesignatorID
	Args       []ExprID
	HasArgs    bool
}

// CondBranch is an IF or ELSIF arm.
type CondBranch struct {
	Cond ExprID
	Body []StmtID
}

type StmtIfData struct {
	Branches []CondBranch
	Else     []StmtID
	HasElse  bool
}

// CaseLabel: High is NoExprID for a single label, otherwise Low..High.
type CaseLabel struct {
	Low  ExprID
	High ExprID
}

type CaseClause struct {
	Labels []CaseLabel
	Body   []StmtID
	Span   source.Span
}

type StmtCaseData struct {
	Subject ExprID
	Clauses []CaseClause
	Else    []StmtID
	HasElse bool
}

// StmtLoopData covers WHILE, REPEAT and LOOP: Cond is NoExprID for LOOP.
type StmtLoopData struct {
	Cond ExprID
	Body []StmtID
}

type StmtForData struct {
	Var     source.StringID
	VarSpan source.Span
	From    ExprID
	To      ExprID
	By      ExprID // NoExprID when BY is omitted
	Body    []StmtID
}

// WithGuard is "v: T DO stmts" of a WITH statement.
type WithGuard struct {
	Var  Qualident
	Type Qualident
	Body []StmtID
	Span source.Span
}

type StmtWithData struct {
	Guards  []WithGuard
	Else    []StmtID
	HasElse bool
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare RETURN
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Assigns *Arena[StmtAssignData]
	Calls   *Arena[StmtCallData]
	Ifs     *Arena[StmtIfData]
	Cases   *Arena[StmtCaseData]
	Loops   *Arena[StmtLoopData]
	Fors    *Arena[StmtForData]
	Withs   *Arena[StmtWithData]
	Returns *Arena[StmtReturnData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Assigns: NewArena[StmtAssignData](capHint),
		Calls:   NewArena[StmtCallData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Cases:   NewArena[StmtCaseData](capHint),
		Loops:   NewArena[StmtLoopData](capHint),
		Fors:    NewArena[StmtForData](capHint),
		Withs:   NewArena[StmtWithData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payloadOf(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

func (s *Stmts) NewAssign(span source.Span, target DesignatorID, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Target: target, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payloadOf(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewCall(span source.Span, d DesignatorID, args []ExprID, hasArgs bool) StmtID {
	return s.new(StmtCall, span, s.Calls.Allocate(StmtCallData{
		Designator: d,
		Args:       append([]ExprID(nil), args...),
		HasArgs:    hasArgs,
	}))
}

func (s *Stmts) Call(id StmtID) (*StmtCallData, bool) {
	p, ok := s.payloadOf(id, StmtCall)
	if !ok {
		return nil, false
	}
	return s.Calls.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(data))
}

func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	p, ok := s.payloadOf(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewCase(span source.Span, data StmtCaseData) StmtID {
	return s.new(StmtCase, span, s.Cases.Allocate(data))
}

func (s *Stmts) Case(id StmtID) (*StmtCaseData, bool) {
	p, ok := s.payloadOf(id, StmtCase)
	if !ok {
		return nil, false
	}
	return s.Cases.Get(p), true
}

// NewLoop builds WHILE, REPEAT or LOOP depending on kind.
func (s *Stmts) NewLoop(kind StmtKind, span source.Span, cond ExprID, body []StmtID) StmtID {
	return s.new(kind, span, s.Loops.Allocate(StmtLoopData{Cond: cond, Body: append([]StmtID(nil), body...)}))
}

func (s *Stmts) Loop(id StmtID) (*StmtLoopData, bool) {
	p, ok := s.payloadOf(id, StmtWhile, StmtRepeat, StmtLoop)
	if !ok {
		return nil, false
	}
	return s.Loops.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	return s.new(StmtFor, span, s.Fors.Allocate(data))
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	p, ok := s.payloadOf(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewWith(span source.Span, data StmtWithData) StmtID {
	return s.new(StmtWith, span, s.Withs.Allocate(data))
}

func (s *Stmts) With(id StmtID) (*StmtWithData, bool) {
	p, ok := s.payloadOf(id, StmtWith)
	if !ok {
		return nil, false
	}
	return s.Withs.Get(p), true
}

func (s *Stmts) NewExit(span source.Span) StmtID {
	return s.new(StmtExit, span, 0)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	p, ok := s.payloadOf(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}
