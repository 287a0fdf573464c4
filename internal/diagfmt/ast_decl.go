package diagfmt

import (
	"fmt"
	"strings"

	"obc/internal/ast"
)

func (d dumper) decls(ids []ast.DeclID) []*ASTNodeOutput {
	out := make([]*ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.decl(id))
	}
	return out
}

func (d dumper) identDef(def ast.IdentDef) string {
	return d.b.Name(def.Name) + def.Export.String()
}

func (d dumper) decl(id ast.DeclID) *ASTNodeOutput {
	decl := d.b.Decls.Get(id)
	if decl == nil {
		return &ASTNodeOutput{Type: "Decl", Text: "<nil>"}
	}
	kind := decl.Kind.String()

	switch decl.Kind {
	case ast.DeclConst:
		c, _ := d.b.Decls.Const(id)
		return d.node("Decl", kind, d.identDef(c.Name), decl.Span).add(d.expr(c.Value))

	case ast.DeclType:
		t, _ := d.b.Decls.Type(id)
		return d.node("Decl", kind, d.identDef(t.Name), decl.Span).add(d.typ(t.Type))

	case ast.DeclVar:
		v, _ := d.b.Decls.Var(id)
		names := make([]string, len(v.Names))
		for i, n := range v.Names {
			names[i] = d.identDef(n)
		}
		return d.node("Decl", kind, strings.Join(names, ", "), decl.Span).add(d.typ(v.Type))

	case ast.DeclExtern:
		e, _ := d.b.Decls.Extern(id)
		return d.node("Decl", kind, d.identDef(e.Name), decl.Span).add(d.params(e.Params))

	case ast.DeclForward:
		f, _ := d.b.Decls.Forward(id)
		n := d.node("Decl", kind, d.identDef(f.Name), decl.Span)
		d.receiver(n, f.Receiver)
		return n.add(d.params(f.Params))

	case ast.DeclProc:
		p, _ := d.b.Decls.Proc(id)
		n := d.node("Decl", kind, d.identDef(p.Name), decl.Span)
		d.receiver(n, p.Receiver)
		n.add(d.params(p.Params))
		n.add(d.decls(p.Decls)...)
		if p.HasBody {
			n.add(d.body("Body", p.Body))
		}
		return n
	}
	return d.node("Decl", kind, "", decl.Span)
}

func (d dumper) receiver(n *ASTNodeOutput, r *ast.Receiver) {
	if r == nil {
		return
	}
	text := d.b.Name(r.Name) + ": " + d.b.Name(r.TypeName)
	if r.ByRef {
		text = "VAR " + text
	}
	n.field("receiver", text)
}

func (d dumper) params(fp *ast.FormalParams) *ASTNodeOutput {
	if fp == nil {
		return nil
	}
	n := d.node("Params", "", "", fp.Span)
	for _, sec := range fp.Sections {
		names := make([]string, len(sec.Names))
		for i, name := range sec.Names {
			names[i] = d.b.Name(name)
		}
		p := d.node("Param", "", strings.Join(names, ", "), sec.Span)
		if sec.ByRef {
			p.field("mode", "VAR")
		}
		n.add(p.add(d.typ(sec.Type)))
	}
	if fp.Result.IsValid() {
		n.field("result", d.typeInline(fp.Result))
	}
	return n
}

func (d dumper) typ(id ast.TypeID) *ASTNodeOutput {
	if !id.IsValid() {
		return nil
	}
	t := d.b.Types.Get(id)
	if t == nil {
		return &ASTNodeOutput{Type: "Type", Text: "<nil>"}
	}
	kind := t.Kind.String()

	switch t.Kind {
	case ast.TypeNamed:
		named, _ := d.b.Types.NamedType(id)
		return d.node("Type", kind, d.b.QualidentString(named.Name), t.Span)

	case ast.TypeArray:
		arr, _ := d.b.Types.Array(id)
		n := d.node("Type", kind, "", t.Span)
		if len(arr.Lengths) == 0 {
			n.field("open", "true")
		}
		for _, l := range arr.Lengths {
			n.add(d.expr(l))
		}
		return n.add(d.typ(arr.Elem))

	case ast.TypeRecord:
		rec, _ := d.b.Types.Record(id)
		n := d.node("Type", kind, "", t.Span)
		if rec.Base.IsValid() {
			n.field("base", d.typeInline(rec.Base))
		}
		for _, fl := range rec.Fields {
			names := make([]string, len(fl.Names))
			for i, name := range fl.Names {
				names[i] = d.identDef(name)
			}
			sp := t.Span
			if len(fl.Names) > 0 {
				sp = fl.Names[0].Span
			}
			n.add(d.node("Field", "", strings.Join(names, ", "), sp).add(d.typ(fl.Type)))
		}
		return n

	case ast.TypePointer:
		ptr, _ := d.b.Types.Pointer(id)
		return d.node("Type", kind, "", t.Span).add(d.typ(ptr.Target))

	case ast.TypeProc:
		pt, _ := d.b.Types.Proc(id)
		return d.node("Type", kind, "", t.Span).add(d.params(pt.Params))
	}
	return d.node("Type", kind, "", t.Span)
}

// typeInline рендерит тип одной строкой, для полей вроде result/base.
func (d dumper) typeInline(id ast.TypeID) string {
	t := d.b.Types.Get(id)
	if t == nil {
		return "<none>"
	}
	switch t.Kind {
	case ast.TypeNamed:
		named, _ := d.b.Types.NamedType(id)
		return d.b.QualidentString(named.Name)
	case ast.TypeArray:
		arr, _ := d.b.Types.Array(id)
		if len(arr.Lengths) == 0 {
			return "ARRAY OF " + d.typeInline(arr.Elem)
		}
		return "ARRAY " + d.exprList(arr.Lengths) + " OF " + d.typeInline(arr.Elem)
	case ast.TypeRecord:
		rec, _ := d.b.Types.Record(id)
		if rec.Base.IsValid() {
			return fmt.Sprintf("RECORD (%s) ... END", d.typeInline(rec.Base))
		}
		return "RECORD ... END"
	case ast.TypePointer:
		ptr, _ := d.b.Types.Pointer(id)
		return "POINTER TO " + d.typeInline(ptr.Target)
	case ast.TypeProc:
		return "PROCEDURE"
	}
	return "?"
}
