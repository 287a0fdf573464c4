package parser

import (
	"fmt"
	"strings"
	"testing"

	"obc/internal/ast"
	"obc/internal/diag"
	"obc/internal/lexer"
	"obc/internal/source"
)

type parsed struct {
	b   *ast.Builder
	mod ast.ModuleID
	err error
	bag *diag.Bag
}

func parseSource(t *testing.T, input string) parsed {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.mod", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	reporter := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	mod, err := ParseModule(lx, builder, Options{Reporter: reporter})
	return parsed{b: builder, mod: mod, err: err, bag: bag}
}

// mustParse fails the test on any error.
func mustParse(t *testing.T, input string) parsed {
	t.Helper()
	res := parseSource(t, input)
	if res.err != nil {
		t.Fatalf("unexpected error %v; diagnostics: %s", res.err, diagnosticsSummary(res.bag))
	}
	return res
}

// parseExprSource оборачивает выражение в объявление константы.
func parseExprSource(t *testing.T, expr string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	res := mustParse(t, "MODULE M; CONST c = "+expr+"; END M.")
	decls := res.b.Module(res.mod).Decls
	if len(decls) != 1 {
		t.Fatalf("expected one declaration, got %d", len(decls))
	}
	c, ok := res.b.Decls.Const(decls[0])
	if !ok {
		t.Fatalf("expected const declaration")
	}
	return res.b, c.Value
}

// bodyOf возвращает операторы тела модуля.
func bodyOf(t *testing.T, stmts string) (*ast.Builder, []ast.StmtID) {
	t.Helper()
	res := mustParse(t, "MODULE M; BEGIN "+stmts+" END M.")
	return res.b, res.b.Module(res.mod).Body
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// exprString рендерит выражение в префиксной форме: (+ 2 (* 3 4)).
func exprString(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprInt, ast.ExprFloat:
		lit, _ := b.Exprs.Literal(id)
		return lit.Raw
	case ast.ExprString, ast.ExprChar:
		lit, _ := b.Exprs.Literal(id)
		return `"` + lit.Raw + `"`
	case ast.ExprNil:
		return "NIL"
	case ast.ExprDesignator:
		d, _ := b.Exprs.Designator(id)
		return designatorString(b, d.Designator)
	case ast.ExprCall:
		c, _ := b.Exprs.Call(id)
		return designatorString(b, c.Designator) + "(" + exprList(b, c.Args) + ")"
	case ast.ExprUnary:
		u, _ := b.Exprs.Unary(id)
		return "(" + u.Op.String() + " " + exprString(b, u.Operand) + ")"
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		return "(" + bin.Op.String() + " " + exprString(b, bin.Left) + " " + exprString(b, bin.Right) + ")"
	case ast.ExprSet:
		s, _ := b.Exprs.Set(id)
		parts := make([]string, len(s.Elems))
		for i, el := range s.Elems {
			parts[i] = exprString(b, el.Low)
			if el.High.IsValid() {
				parts[i] += ".." + exprString(b, el.High)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ast.ExprGroup:
		g, _ := b.Exprs.Group(id)
		return exprString(b, g.Inner)
	}
	return "?"
}

func exprList(b *ast.Builder, ids []ast.ExprID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = exprString(b, id)
	}
	return strings.Join(parts, ", ")
}

func designatorString(b *ast.Builder, id ast.DesignatorID) string {
	d := b.Designators.Get(id)
	var sb strings.Builder
	sb.WriteString(b.Name(d.Base))
	for _, sel := range d.Selectors {
		switch sel.Kind {
		case ast.SelField:
			sb.WriteString("." + b.Name(sel.Field))
		case ast.SelIndex:
			sb.WriteString("[" + exprList(b, sel.Index) + "]")
		case ast.SelDeref:
			sb.WriteString("^")
		case ast.SelGuard:
			sb.WriteString("(" + b.QualidentString(sel.Guard) + ")")
		}
	}
	return sb.String()
}

func stmtKinds(b *ast.Builder, ids []ast.StmtID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = b.Stmts.Get(id).Kind.String()
	}
	return out
}
