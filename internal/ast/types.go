package ast

import "obc/internal/source"

type TypeKind uint8

const (
	TypeNamed TypeKind = iota
	TypeArray
	TypeRecord
	TypePointer
	TypeProc
)

func (k TypeKind) String() string {
	switch k {
	case TypeNamed:
		return "Named"
	case TypeArray:
		return "Array"
	case TypeRecord:
		return "Record"
	case TypePointer:
		return "Pointer"
	case TypeProc:
		return "Procedure"
	}
	return "Type?"
}

type TypeExpr struct {
	Kind    TypeKind
	Span    source.Span
	Payload PayloadID
}

type TypeNamedData struct {
	Name Qualident
}

// TypeArrayData: пустой Lengths — открытый массив.
type TypeArrayData struct {
	Lengths []ExprID
	Elem    TypeID
}

// FieldList is "a, b*: T" inside a RECORD.
type FieldList struct {
	Names []IdentDef
	Type  TypeID
}

type TypeRecordData struct {
	Base   TypeID // NoTypeID when the record extends nothing
	Fields []FieldList
}

type TypePointerData struct {
	Target TypeID
}

type TypeProcData struct {
	Params *FormalParams
}

type Types struct {
	Arena    *Arena[TypeExpr]
	Named    *Arena[TypeNamedData]
	Arrays   *Arena[TypeArrayData]
	Records  *Arena[TypeRecordData]
	Pointers *Arena[TypePointerData]
	Procs    *Arena[TypeProcData]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Types{
		Arena:    NewArena[TypeExpr](capHint),
		Named:    NewArena[TypeNamedData](capHint),
		Arrays:   NewArena[TypeArrayData](capHint),
		Records:  NewArena[TypeRecordData](capHint),
		Pointers: NewArena[TypePointerData](capHint),
		Procs:    NewArena[TypeProcData](capHint),
	}
}

func (t *Types) new(kind TypeKind, sp source.Span, payload uint32) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{Kind: kind, Span: sp, Payload: PayloadID(payload)}))
}

func (t *Types) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *Types) NewNamed(sp source.Span, name Qualident) TypeID {
	return t.new(TypeNamed, sp, t.Named.Allocate(TypeNamedData{Name: name}))
}

func (t *Types) NamedType(id TypeID) (*TypeNamedData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeNamed {
		return nil, false
	}
	return t.Named.Get(uint32(typ.Payload)), true
}

func (t *Types) NewArray(sp source.Span, lengths []ExprID, elem TypeID) TypeID {
	return t.new(TypeArray, sp, t.Arrays.Allocate(TypeArrayData{
		Lengths: append([]ExprID(nil), lengths...),
		Elem:    elem,
	}))
}

func (t *Types) Array(id TypeID) (*TypeArrayData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeArray {
		return nil, false
	}
	return t.Arrays.Get(uint32(typ.Payload)), true
}

func (t *Types) NewRecord(sp source.Span, base TypeID, fields []FieldList) TypeID {
	return t.new(TypeRecord, sp, t.Records.Allocate(TypeRecordData{
		Base:   base,
		Fields: append([]FieldList(nil), fields...),
	}))
}

func (t *Types) Record(id TypeID) (*TypeRecordData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeRecord {
		return nil, false
	}
	return t.Records.Get(uint32(typ.Payload)), true
}

func (t *Types) NewPointer(sp source.Span, target TypeID) TypeID {
	return t.new(TypePointer, sp, t.Pointers.Allocate(TypePointerData{Target: target}))
}

func (t *Types) Pointer(id TypeID) (*TypePointerData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypePointer {
		return nil, false
	}
	return t.Pointers.Get(uint32(typ.Payload)), true
}

func (t *Types) NewProc(sp source.Span, params *FormalParams) TypeID {
	return t.new(TypeProc, sp, t.Procs.Allocate(TypeProcData{Params: params}))
}

func (t *Types) Proc(id TypeID) (*TypeProcData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeProc {
		return nil, false
	}
	return t.Procs.Get(uint32(typ.Payload)), true
}
