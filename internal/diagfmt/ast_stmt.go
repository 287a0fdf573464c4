package diagfmt

import (
	"obc/internal/ast"
	"obc/internal/source"
)

// body собирает последовательность операторов под заголовком label.
func (d dumper) body(label string, ids []ast.StmtID) *ASTNodeOutput {
	n := &ASTNodeOutput{Type: label, Span: formatSpan(d.seqSpan(ids), d.fs)}
	for _, id := range ids {
		n.add(d.stmt(id))
	}
	return n
}

func (d dumper) seqSpan(ids []ast.StmtID) source.Span {
	var sp source.Span
	for i, id := range ids {
		st := d.b.Stmts.Get(id)
		if st == nil {
			continue
		}
		if i == 0 {
			sp = st.Span
			continue
		}
		sp = sp.Cover(st.Span)
	}
	return sp
}

func (d dumper) stmt(id ast.StmtID) *ASTNodeOutput {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return &ASTNodeOutput{Type: "Stmt", Text: "<nil>"}
	}
	kind := st.Kind.String()
	n := d.node("Stmt", kind, "", st.Span)

	switch st.Kind {
	case ast.StmtAssign:
		a, _ := d.b.Stmts.Assign(id)
		n.Text = d.designator(a.Target)
		n.add(d.expr(a.Value))

	case ast.StmtCall:
		c, _ := d.b.Stmts.Call(id)
		n.Text = d.designator(c.Designator)
		if c.HasArgs {
			n.Text += "(" + d.exprList(c.Args) + ")"
		}

	case ast.StmtIf:
		data, _ := d.b.Stmts.If(id)
		for i, br := range data.Branches {
			label := "Elsif"
			if i == 0 {
				label = "Then"
			}
			n.add(d.body(label, br.Body).field("cond", d.exprInline(br.Cond)))
		}
		if data.HasElse {
			n.add(d.body("Else", data.Else))
		}

	case ast.StmtCase:
		data, _ := d.b.Stmts.Case(id)
		n.Text = d.exprInline(data.Subject)
		for _, cl := range data.Clauses {
			labels := make([]string, len(cl.Labels))
			for i, l := range cl.Labels {
				labels[i] = d.exprInline(l.Low)
				if l.High.IsValid() {
					labels[i] += ".." + d.exprInline(l.High)
				}
			}
			clause := d.body("Clause", cl.Body)
			clause.Span = formatSpan(cl.Span, d.fs)
			clause.Text = joinComma(labels)
			n.add(clause)
		}
		if data.HasElse {
			n.add(d.body("Else", data.Else))
		}

	case ast.StmtWhile, ast.StmtRepeat, ast.StmtLoop:
		loop, _ := d.b.Stmts.Loop(id)
		if loop.Cond.IsValid() {
			n.field("cond", d.exprInline(loop.Cond))
		}
		n.add(d.body("Body", loop.Body))

	case ast.StmtFor:
		f, _ := d.b.Stmts.For(id)
		n.Text = d.b.Name(f.Var)
		n.field("from", d.exprInline(f.From))
		n.field("to", d.exprInline(f.To))
		if f.By.IsValid() {
			n.field("by", d.exprInline(f.By))
		}
		n.add(d.body("Body", f.Body))

	case ast.StmtWith:
		w, _ := d.b.Stmts.With(id)
		for _, g := range w.Guards {
			guard := d.body("Guard", g.Body)
			guard.Span = formatSpan(g.Span, d.fs)
			guard.Text = d.b.QualidentString(g.Var) + ": " + d.b.QualidentString(g.Type)
			n.add(guard)
		}
		if w.HasElse {
			n.add(d.body("Else", w.Else))
		}

	case ast.StmtReturn:
		r, _ := d.b.Stmts.Return(id)
		if r.Value.IsValid() {
			n.add(d.expr(r.Value))
		}
	}
	return n
}
