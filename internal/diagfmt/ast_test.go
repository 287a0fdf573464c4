package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"obc/internal/ast"
	"obc/internal/lexer"
	"obc/internal/parser"
	"obc/internal/source"
)

const demoModule = `MODULE Demo;
IMPORT Out, T := Texts;
CONST n* = 10;
TYPE
  P = POINTER TO R;
  R = RECORD (Base) x, y-: INTEGER END;
VAR a: ARRAY n OF INTEGER;
PROCEDURE (VAR r: R) Sum*(k: INTEGER): INTEGER;
BEGIN
  RETURN r.x + k
END Sum;
BEGIN
  a[0] := n * 2;
  IF a[0] > 1 THEN Out.Int(a[0], 0) ELSE a[1] := 3 END
END Demo.`

func parseDemo(t *testing.T, input string) (*ast.Builder, ast.ModuleID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("demo.mod", []byte(input))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	mod, err := parser.ParseModule(lexer.New(fs.Get(fileID), lexer.Options{}), builder, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return builder, mod, fs
}

func childLabels(n *ASTNodeOutput) []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.label()
	}
	return out
}

func TestBuildAST(t *testing.T) {
	b, mod, fs := parseDemo(t, demoModule)
	root, err := BuildAST(b, mod, fs)
	if err != nil {
		t.Fatalf("BuildAST: %v", err)
	}

	if root.label() != "Module Demo" {
		t.Errorf("root label = %q", root.label())
	}
	wantTop := []string{
		"Imports",
		"Decl:Const n*",
		"Decl:Type P",
		"Decl:Type R",
		"Decl:Var a",
		"Decl:Proc Sum*",
		"Body",
	}
	if diff := cmp.Diff(wantTop, childLabels(root)); diff != "" {
		t.Fatalf("top-level mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"Import Out", "Import T := Texts"}, childLabels(root.Children[0])); diff != "" {
		t.Errorf("imports mismatch (-want +got):\n%s", diff)
	}

	record := root.Children[3].Children[0]
	if record.Fields["base"] != "Base" {
		t.Errorf("record base = %q", record.Fields["base"])
	}
	if diff := cmp.Diff([]string{"Field x, y-"}, childLabels(record)); diff != "" {
		t.Errorf("record fields mismatch (-want +got):\n%s", diff)
	}

	proc := root.Children[5]
	if proc.Fields["receiver"] != "VAR r: R" {
		t.Errorf("receiver = %q", proc.Fields["receiver"])
	}
	if diff := cmp.Diff([]string{"Params", "Body"}, childLabels(proc)); diff != "" {
		t.Errorf("proc children mismatch (-want +got):\n%s", diff)
	}
	if proc.Children[0].Fields["result"] != "INTEGER" {
		t.Errorf("result = %q", proc.Children[0].Fields["result"])
	}

	body := root.Children[6]
	if diff := cmp.Diff([]string{"Stmt:Assign a[0]", "Stmt:If"}, childLabels(body)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
	assign := body.Children[0]
	if diff := cmp.Diff([]string{"Expr:Binary *"}, childLabels(assign)); diff != "" {
		t.Errorf("assign value mismatch (-want +got):\n%s", diff)
	}
	ifStmt := body.Children[1]
	if diff := cmp.Diff([]string{"Then", "Else"}, childLabels(ifStmt)); diff != "" {
		t.Fatalf("if arms mismatch (-want +got):\n%s", diff)
	}
	if got := ifStmt.Children[0].Fields["cond"]; got != "a[0] > 1" {
		t.Errorf("cond = %q", got)
	}
	if diff := cmp.Diff([]string{"Stmt:Call Out.Int(a[0], 0)"}, childLabels(ifStmt.Children[0])); diff != "" {
		t.Errorf("then arm mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildASTUnknownModule(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	if _, err := BuildAST(b, ast.ModuleID(7), nil); err == nil {
		t.Fatal("expected error for missing module")
	}
}

func TestFormatASTPretty(t *testing.T) {
	b, mod, fs := parseDemo(t, demoModule)

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, mod, fs); err != nil {
		t.Fatalf("FormatASTPretty: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Module Demo (span: 1:1-") {
		t.Errorf("unexpected header:\n%s", out)
	}
	for _, want := range []string{
		"├─ Imports (span: 2:8-2:23)\n",
		"│  ├─ Import Out (span: 2:8-2:11)\n",
		"├─ Decl:Const n* (span: 3:7-3:14)\n",
		"│  └─ Expr:Int 10 (span: 3:12-3:14)\n",
		"└─ Body (span: ",
		"   └─ Stmt:If (span: ",
		"      │  ├─ cond: a[0] > 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output lacks %q:\n%s", want, out)
		}
	}
}

func TestFormatASTJSONAndYAML(t *testing.T) {
	b, mod, fs := parseDemo(t, demoModule)
	want, err := BuildAST(b, mod, fs)
	if err != nil {
		t.Fatal(err)
	}

	var jsonBuf bytes.Buffer
	if err := FormatASTJSON(&jsonBuf, b, mod, fs); err != nil {
		t.Fatalf("FormatASTJSON: %v", err)
	}
	var fromJSON ASTNodeOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff(want, &fromJSON); diff != "" {
		t.Errorf("JSON dump mismatch (-want +got):\n%s", diff)
	}

	var yamlBuf bytes.Buffer
	if err := FormatASTYAML(&yamlBuf, b, mod, fs); err != nil {
		t.Fatalf("FormatASTYAML: %v", err)
	}
	if !strings.HasPrefix(yamlBuf.String(), "type: Module\ntext: Demo\n") {
		t.Errorf("unexpected YAML head:\n%s", yamlBuf.String())
	}
	var fromYAML ASTNodeOutput
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if diff := cmp.Diff(want, &fromYAML); diff != "" {
		t.Errorf("YAML dump mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatASTTree(t *testing.T) {
	b, mod, fs := parseDemo(t, "MODULE M; CONST c = 1 + 2; END M.")

	var buf bytes.Buffer
	if err := FormatASTTree(&buf, b, mod, fs); err != nil {
		t.Fatalf("FormatASTTree: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), buf.String())
	}
	checks := []struct {
		line int
		want []string
	}{
		{0, []string{"Module M"}},
		{2, []string{"Decl:Const c"}},
		{4, []string{"Expr:Binary +"}},
		{5, []string{"/", "\\"}},
		{6, []string{"Expr:Int 1", "Expr:Int 2"}},
	}
	for _, c := range checks {
		for _, w := range c.want {
			if !strings.Contains(lines[c.line], w) {
				t.Errorf("line %d %q lacks %q", c.line, lines[c.line], w)
			}
		}
	}
}

func TestRenderTreeLeaf(t *testing.T) {
	block := renderTree(&treeNode{label: "leaf"})
	if diff := cmp.Diff([]string{"leaf"}, block.lines); diff != "" {
		t.Errorf("leaf mismatch (-want +got):\n%s", diff)
	}
	if block.width != 4 || block.root != 2 {
		t.Errorf("width=%d root=%d", block.width, block.root)
	}
}
