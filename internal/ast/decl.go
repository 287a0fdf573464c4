package ast

import "obc/internal/source"

type DeclKind uint8

const (
	DeclConst DeclKind = iota
	DeclType
	DeclVar
	DeclExtern
	DeclForward
	DeclProc
)

func (k DeclKind) String() string {
	switch k {
	case DeclConst:
		return "Const"
	case DeclType:
		return "Type"
	case DeclVar:
		return "Var"
	case DeclExtern:
		return "Extern"
	case DeclForward:
		return "Forward"
	case DeclProc:
		return "Proc"
	}
	return "Decl?"
}

type Decl struct {
	Kind    DeclKind
	Span    source.Span
	Payload PayloadID
}

// Receiver binds a type-bound procedure: "(" [VAR] name ":" TypeName ")".
type Receiver struct {
	ByRef    bool
	Name     source.StringID
	TypeName source.StringID
	Span     source.Span
}

// ParamSection is "[VAR] a, b: T" inside formal parameters.
type ParamSection struct {
	ByRef bool
	Names []source.StringID
	Type  TypeID
	Span  source.Span
}

// FormalParams: Result is NoTypeID for proper procedures.
type FormalParams struct {
	Sections []ParamSection
	Result   TypeID
	Span     source.Span
}

type DeclConstData struct {
	Name  IdentDef
	Value ExprID
}

type DeclTypeData struct {
	Name IdentDef
	Type TypeID
}

type DeclVarData struct {
	Names []IdentDef
	Type  TypeID
}

// DeclExternData is a signature-only procedure linked from outside.
type DeclExternData struct {
	Name   IdentDef
	Params *FormalParams
}

type DeclForwardData struct {
	Receiver *Receiver
	Name     IdentDef
	Params   *FormalParams
}

type DeclProcData struct {
	Receiver *Receiver
	Name     IdentDef
	Params   *FormalParams
	Decls    []DeclID
	Body     []StmtID
	HasBody  bool
}

// ProcHeader is the part shared by forward and full procedure declarations.
type ProcHeader struct {
	Receiver *Receiver
	Name     IdentDef
	Params   *FormalParams
}

type Decls struct {
	Arena    *Arena[Decl]
	Consts   *Arena[DeclConstData]
	Types    *Arena[DeclTypeData]
	Vars     *Arena[DeclVarData]
	Externs  *Arena[DeclExternData]
	Forwards *Arena[DeclForwardData]
	Procs    *Arena[DeclProcData]
}

func NewDecls(capHint uint) *Decls {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Decls{
		Arena:    NewArena[Decl](capHint),
		Consts:   NewArena[DeclConstData](capHint),
		Types:    NewArena[DeclTypeData](capHint),
		Vars:     NewArena[DeclVarData](capHint),
		Externs:  NewArena[DeclExternData](capHint),
		Forwards: NewArena[DeclForwardData](capHint),
		Procs:    NewArena[DeclProcData](capHint),
	}
}

func (d *Decls) new(kind DeclKind, sp source.Span, payload uint32) DeclID {
	return DeclID(d.Arena.Allocate(Decl{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}

func (d *Decls) NewConst(sp source.Span, name IdentDef, value ExprID) DeclID {
	return d.new(DeclConst, sp, d.Consts.Allocate(DeclConstData{Name: name, Value: value}))
}

func (d *Decls) Const(id DeclID) (*DeclConstData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclConst {
		return nil, false
	}
	return d.Consts.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewType(sp source.Span, name IdentDef, typ TypeID) DeclID {
	return d.new(DeclType, sp, d.Types.Allocate(DeclTypeData{Name: name, Type: typ}))
}

func (d *Decls) Type(id DeclID) (*DeclTypeData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclType {
		return nil, false
	}
	return d.Types.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewVar(sp source.Span, names []IdentDef, typ TypeID) DeclID {
	return d.new(DeclVar, sp, d.Vars.Allocate(DeclVarData{
		Names: append([]IdentDef(nil), names...),
		Type:  typ,
	}))
}

func (d *Decls) Var(id DeclID) (*DeclVarData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclVar {
		return nil, false
	}
	return d.Vars.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewExtern(sp source.Span, name IdentDef, params *FormalParams) DeclID {
	return d.new(DeclExtern, sp, d.Externs.Allocate(DeclExternData{Name: name, Params: params}))
}

func (d *Decls) Extern(id DeclID) (*DeclExternData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclExtern {
		return nil, false
	}
	return d.Externs.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewForward(sp source.Span, h ProcHeader) DeclID {
	return d.new(DeclForward, sp, d.Forwards.Allocate(DeclForwardData{
		Receiver: h.Receiver,
		Name:     h.Name,
		Params:   h.Params,
	}))
}

func (d *Decls) Forward(id DeclID) (*DeclForwardData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclForward {
		return nil, false
	}
	return d.Forwards.Get(uint32(decl.Payload)), true
}

func (d *Decls) NewProc(sp source.Span, h ProcHeader, decls []DeclID, body []StmtID, hasBody bool) DeclID {
	return d.new(DeclProc, sp, d.Procs.Allocate(DeclProcData{
		Receiver: h.Receiver,
		Name:     h.Name,
		Params:   h.Params,
		Decls:    append([]DeclID(nil), decls...),
		Body:     append([]StmtID(nil), body...),
		HasBody:  hasBody,
	}))
}

func (d *Decls) Proc(id DeclID) (*DeclProcData, bool) {
	decl := d.Get(id)
	if decl == nil || decl.Kind != DeclProc {
		return nil, false
	}
	return d.Procs.Get(uint32(decl.Payload)), true
}
