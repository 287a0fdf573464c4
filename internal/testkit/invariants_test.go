package testkit

import (
	"strings"
	"testing"

	"obc/internal/ast"
	"obc/internal/lexer"
	"obc/internal/parser"
	"obc/internal/source"
)

func parse(t *testing.T, input string) (*ast.Builder, ast.ModuleID, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("inv.mod", []byte(input)))
	b := ast.NewBuilder(ast.Hints{}, nil)
	mod, err := parser.ParseModule(lexer.New(file, lexer.Options{}), b, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return b, mod, file
}

func TestCheckSpanInvariantsValid(t *testing.T) {
	b, mod, file := parse(t, `MODULE Inv;
IMPORT Out;
CONST k = 3;
VAR i, j: INTEGER;
PROCEDURE P(x: INTEGER): INTEGER;
BEGIN RETURN x * k
END P;
BEGIN
  i := P(2); j := i
END Inv.`)
	if err := CheckSpanInvariants(b, mod, file); err != nil {
		t.Fatalf("unexpected violation: %v", err)
	}
}

func TestCheckSpanInvariantsDetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *ast.Builder, mod *ast.Module)
		want   string
	}{
		{
			name:   "empty module span",
			mutate: func(_ *ast.Builder, mod *ast.Module) { mod.Span.End = mod.Span.Start },
			want:   "module span is empty",
		},
		{
			name: "decl outside module",
			mutate: func(b *ast.Builder, mod *ast.Module) {
				d := b.Decls.Get(mod.Decls[0])
				d.Span.End = mod.Span.End + 10
			},
			want: "outside module span",
		},
		{
			name: "decls out of order",
			mutate: func(_ *ast.Builder, mod *ast.Module) {
				mod.Decls[0], mod.Decls[1] = mod.Decls[1], mod.Decls[0]
			},
			want: "overlaps previous declaration",
		},
		{
			name: "foreign file",
			mutate: func(b *ast.Builder, mod *ast.Module) {
				st := b.Stmts.Get(mod.Body[0])
				st.Span.File++
			},
			want: "file mismatch",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, modID, file := parse(t, "MODULE M; CONST a = 1; b = 2; VAR x: INTEGER; BEGIN x := a END M.")
			tt.mutate(b, b.Module(modID))
			err := CheckSpanInvariants(b, modID, file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestCheckSpanInvariantsNilInputs(t *testing.T) {
	if err := CheckSpanInvariants(nil, ast.NoModuleID, nil); err == nil {
		t.Fatal("expected error for nil inputs")
	}
	b, _, file := parse(t, "MODULE M; END M.")
	if err := CheckSpanInvariants(b, ast.ModuleID(9), file); err == nil {
		t.Fatal("expected error for unknown module")
	}
}
