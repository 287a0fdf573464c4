package diagfmt

import (
	"strings"

	"obc/internal/ast"
)

func (d dumper) expr(id ast.ExprID) *ASTNodeOutput {
	if !id.IsValid() {
		return nil
	}
	e := d.b.Exprs.Get(id)
	if e == nil {
		return &ASTNodeOutput{Type: "Expr", Text: "<nil>"}
	}
	n := d.node("Expr", e.Kind.String(), "", e.Span)

	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat, ast.ExprString, ast.ExprChar, ast.ExprNil:
		n.Text = d.exprInline(id)
	case ast.ExprDesignator:
		des, _ := d.b.Exprs.Designator(id)
		n.Text = d.designator(des.Designator)
	case ast.ExprCall:
		call, _ := d.b.Exprs.Call(id)
		n.Text = d.designator(call.Designator)
		for _, arg := range call.Args {
			n.add(d.expr(arg))
		}
	case ast.ExprUnary:
		u, _ := d.b.Exprs.Unary(id)
		n.Text = u.Op.String()
		n.add(d.expr(u.Operand))
	case ast.ExprBinary:
		bin, _ := d.b.Exprs.Binary(id)
		n.Text = bin.Op.String()
		n.add(d.expr(bin.Left), d.expr(bin.Right))
	case ast.ExprSet:
		set, _ := d.b.Exprs.Set(id)
		for _, el := range set.Elems {
			if el.High.IsValid() {
				r := d.node("Range", "", "..", d.b.Exprs.Get(el.Low).Span.Cover(d.b.Exprs.Get(el.High).Span))
				n.add(r.add(d.expr(el.Low), d.expr(el.High)))
				continue
			}
			n.add(d.expr(el.Low))
		}
	case ast.ExprGroup:
		g, _ := d.b.Exprs.Group(id)
		n.add(d.expr(g.Inner))
	}
	return n
}

// exprInline рендерит выражение обратно в исходный синтаксис.
func (d dumper) exprInline(id ast.ExprID) string {
	e := d.b.Exprs.Get(id)
	if e == nil {
		return "<none>"
	}
	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat:
		lit, _ := d.b.Exprs.Literal(id)
		return lit.Raw
	case ast.ExprString, ast.ExprChar:
		lit, _ := d.b.Exprs.Literal(id)
		return `"` + lit.Raw + `"`
	case ast.ExprNil:
		return "NIL"
	case ast.ExprDesignator:
		des, _ := d.b.Exprs.Designator(id)
		return d.designator(des.Designator)
	case ast.ExprCall:
		call, _ := d.b.Exprs.Call(id)
		return d.designator(call.Designator) + "(" + d.exprList(call.Args) + ")"
	case ast.ExprUnary:
		u, _ := d.b.Exprs.Unary(id)
		return u.Op.String() + d.exprInline(u.Operand)
	case ast.ExprBinary:
		bin, _ := d.b.Exprs.Binary(id)
		return d.exprInline(bin.Left) + " " + bin.Op.String() + " " + d.exprInline(bin.Right)
	case ast.ExprSet:
		set, _ := d.b.Exprs.Set(id)
		parts := make([]string, len(set.Elems))
		for i, el := range set.Elems {
			parts[i] = d.exprInline(el.Low)
			if el.High.IsValid() {
				parts[i] += ".." + d.exprInline(el.High)
			}
		}
		return "{" + joinComma(parts) + "}"
	case ast.ExprGroup:
		g, _ := d.b.Exprs.Group(id)
		return "(" + d.exprInline(g.Inner) + ")"
	}
	return "?"
}

func (d dumper) exprList(ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = d.exprInline(id)
	}
	return joinComma(parts)
}

func (d dumper) designator(id ast.DesignatorID) string {
	des := d.b.Designators.Get(id)
	if des == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(d.b.Name(des.Base))
	for _, sel := range des.Selectors {
		switch sel.Kind {
		case ast.SelField:
			sb.WriteString("." + d.b.Name(sel.Field))
		case ast.SelIndex:
			sb.WriteString("[" + d.exprList(sel.Index) + "]")
		case ast.SelDeref:
			sb.WriteString("^")
		case ast.SelGuard:
			sb.WriteString("(" + d.b.QualidentString(sel.Guard) + ")")
		}
	}
	return sb.String()
}

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}
