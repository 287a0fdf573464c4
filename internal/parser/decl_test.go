package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"obc/internal/ast"
	"obc/internal/diag"
)

const declModule = `MODULE Shapes;
IMPORT Out;
CONST
  Max* = 10;
  Half = Max DIV 2;
TYPE
  Shape* = POINTER TO ShapeDesc;
  ShapeDesc* = RECORD
    x*, y-: INTEGER;
    name: ARRAY 32 OF CHAR
  END;
  Circle = RECORD (ShapeDesc) r: REAL END;
  Grid = ARRAY Max, Max OF Out.Cell;
  Open = ARRAY OF CHAR;
  Visitor = PROCEDURE (s: Shape): BOOLEAN;
  Empty = RECORD END;
VAR
  count*, total: INTEGER;
  shapes: ARRAY Max OF Shape;
EXTERN
  Abs(x: INTEGER): INTEGER;
  Halt;
PROCEDURE ^ Draw(s: Shape);
PROCEDURE Later*; FORWARD;
PROCEDURE (VAR c: Circle) Area*(): REAL;
  VAR a: REAL;
BEGIN
  a := c.r * c.r;
  RETURN a
END Area;
PROCEDURE Draw(s: Shape);
END Draw;
END Shapes.`

func TestDeclarations(t *testing.T) {
	res := mustParse(t, declModule)
	b := res.b
	mod := b.Module(res.mod)

	var kinds []string
	for _, id := range mod.Decls {
		kinds = append(kinds, b.Decls.Get(id).Kind.String())
	}
	want := []string{
		"Const", "Const",
		"Type", "Type", "Type", "Type", "Type", "Type", "Type",
		"Var", "Var",
		"Extern", "Extern",
		"Forward", "Forward",
		"Proc", "Proc",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("declaration kinds mismatch (-want +got):\n%s", diff)
	}

	maxDecl, _ := b.Decls.Const(mod.Decls[0])
	if b.Name(maxDecl.Name.Name) != "Max" || maxDecl.Name.Export != ast.ExportPublic {
		t.Errorf("Max: %+v", maxDecl.Name)
	}
	half, _ := b.Decls.Const(mod.Decls[1])
	if got := exprString(b, half.Value); got != "(DIV Max 2)" {
		t.Errorf("Half = %s", got)
	}

	shape, _ := b.Decls.Type(mod.Decls[2])
	ptr, ok := b.Types.Pointer(shape.Type)
	if !ok {
		t.Fatalf("Shape must be a pointer type")
	}
	target, _ := b.Types.NamedType(ptr.Target)
	if b.QualidentString(target.Name) != "ShapeDesc" {
		t.Errorf("pointer target %q", b.QualidentString(target.Name))
	}

	desc, _ := b.Decls.Type(mod.Decls[3])
	rec, ok := b.Types.Record(desc.Type)
	if !ok || rec.Base.IsValid() || len(rec.Fields) != 2 {
		t.Fatalf("ShapeDesc record: %+v", rec)
	}
	xy := rec.Fields[0].Names
	if len(xy) != 2 || xy[0].Export != ast.ExportPublic || xy[1].Export != ast.ExportReadOnly {
		t.Errorf("field export marks: %+v", xy)
	}
	nameArr, ok := b.Types.Array(rec.Fields[1].Type)
	if !ok || len(nameArr.Lengths) != 1 {
		t.Errorf("name field must be ARRAY 32 OF CHAR")
	}

	circle, _ := b.Decls.Type(mod.Decls[4])
	crec, _ := b.Types.Record(circle.Type)
	base, ok := b.Types.NamedType(crec.Base)
	if !ok || b.QualidentString(base.Name) != "ShapeDesc" {
		t.Errorf("Circle base type")
	}

	grid, _ := b.Decls.Type(mod.Decls[5])
	garr, _ := b.Types.Array(grid.Type)
	elem, _ := b.Types.NamedType(garr.Elem)
	if len(garr.Lengths) != 2 || b.QualidentString(elem.Name) != "Out.Cell" {
		t.Errorf("Grid: %d lengths, elem %q", len(garr.Lengths), b.QualidentString(elem.Name))
	}

	open, _ := b.Decls.Type(mod.Decls[6])
	if oarr, _ := b.Types.Array(open.Type); len(oarr.Lengths) != 0 {
		t.Errorf("open array must have no lengths")
	}

	visitor, _ := b.Decls.Type(mod.Decls[7])
	proc, ok := b.Types.Proc(visitor.Type)
	if !ok || proc.Params == nil || len(proc.Params.Sections) != 1 || !proc.Params.Result.IsValid() {
		t.Errorf("Visitor procedure type: %+v", proc)
	}

	empty, _ := b.Decls.Type(mod.Decls[8])
	if erec, _ := b.Types.Record(empty.Type); len(erec.Fields) != 0 {
		t.Errorf("empty record has fields")
	}

	vars, _ := b.Decls.Var(mod.Decls[9])
	if len(vars.Names) != 2 || vars.Names[0].Export != ast.ExportPublic || vars.Names[1].Export != ast.ExportNone {
		t.Errorf("VAR names: %+v", vars.Names)
	}

	abs, _ := b.Decls.Extern(mod.Decls[11])
	if abs.Params == nil || len(abs.Params.Sections) != 1 {
		t.Errorf("Abs params: %+v", abs.Params)
	}
	halt, _ := b.Decls.Extern(mod.Decls[12])
	if halt.Params != nil {
		t.Errorf("Halt must have no params")
	}

	fwd, _ := b.Decls.Forward(mod.Decls[13])
	if b.Name(fwd.Name.Name) != "Draw" || fwd.Params == nil {
		t.Errorf("caret forward: %+v", fwd)
	}
	later, _ := b.Decls.Forward(mod.Decls[14])
	if b.Name(later.Name.Name) != "Later" || later.Name.Export != ast.ExportPublic {
		t.Errorf("marker forward: %+v", later)
	}

	area, _ := b.Decls.Proc(mod.Decls[15])
	if area.Receiver == nil || !area.Receiver.ByRef || b.Name(area.Receiver.TypeName) != "Circle" {
		t.Fatalf("Area receiver: %+v", area.Receiver)
	}
	if area.Params == nil || len(area.Params.Sections) != 0 || !area.Params.Result.IsValid() {
		t.Errorf("Area params: %+v", area.Params)
	}
	if len(area.Decls) != 1 || !area.HasBody {
		t.Errorf("Area body: %d decls, body %v", len(area.Decls), area.HasBody)
	}
	if diff := cmp.Diff([]string{"Assign", "Return"}, stmtKinds(b, area.Body)); diff != "" {
		t.Errorf("Area statements (-want +got):\n%s", diff)
	}

	draw, _ := b.Decls.Proc(mod.Decls[16])
	if draw.HasBody || len(draw.Body) != 0 {
		t.Errorf("Draw has no BEGIN")
	}
}

func TestParamSections(t *testing.T) {
	res := mustParse(t, "MODULE M; PROCEDURE P(a, b: INTEGER; VAR c: ARRAY OF CHAR); END P; END M.")
	p, _ := res.b.Decls.Proc(res.b.Module(res.mod).Decls[0])
	secs := p.Params.Sections
	if len(secs) != 2 || secs[0].ByRef || !secs[1].ByRef || len(secs[0].Names) != 2 {
		t.Fatalf("unexpected sections %+v", secs)
	}
	if p.Params.Result.IsValid() {
		t.Fatalf("proper procedure must have no result")
	}
}

func TestNestedProcedures(t *testing.T) {
	res := mustParse(t, `MODULE M;
PROCEDURE Outer;
  PROCEDURE Inner; BEGIN END Inner;
BEGIN Inner
END Outer;
END M.`)
	outer, _ := res.b.Decls.Proc(res.b.Module(res.mod).Decls[0])
	if len(outer.Decls) != 1 {
		t.Fatalf("expected nested procedure")
	}
	if _, ok := res.b.Decls.Proc(outer.Decls[0]); !ok {
		t.Fatalf("nested declaration must be a procedure")
	}
}

func TestProcedureNameMismatch(t *testing.T) {
	res := parseSource(t, "MODULE M; PROCEDURE P; END Q; END M.")
	var perr *Error
	if !errors.As(res.err, &perr) || perr.Code != diag.SynNameMismatch {
		t.Fatalf("expected name mismatch, got %v", res.err)
	}
}

func TestDeclarationErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		code diag.Code
	}{
		{"missing type", "MODULE M; VAR x: ; END M.", diag.SynExpectType},
		{"missing semicolon", "MODULE M; VAR x: INTEGER END M.", diag.SynExpectSemicolon},
		{"const without equals", "MODULE M; CONST a 1; END M.", diag.SynUnexpectedToken},
		{"missing identifier", "MODULE M; TYPE = INTEGER; END M.", diag.SynExpectEnd},
		{"bad receiver", "MODULE M; PROCEDURE (r) P; END P; END M.", diag.SynUnexpectedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := parseSource(t, tc.in)
			var perr *Error
			if !errors.As(res.err, &perr) {
				t.Fatalf("expected syntax error, got %v", res.err)
			}
			if perr.Code != tc.code {
				t.Fatalf("got %s (%s), want %s", perr.Code.ID(), perr.Message, tc.code.ID())
			}
		})
	}
}
