package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"obc/internal/ast"
	"obc/internal/source"
)

var errModuleNotFound = errors.New("module not found")

// ASTNodeOutput is a uniform view of any tree node, shared by every AST dump format.
type ASTNodeOutput struct {
	Type     string            `json:"type" yaml:"type"`
	Kind     string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Span     string            `json:"span" yaml:"span"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Children []*ASTNodeOutput  `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *ASTNodeOutput) field(key, value string) *ASTNodeOutput {
	if value == "" {
		return n
	}
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return n
}

func (n *ASTNodeOutput) add(children ...*ASTNodeOutput) *ASTNodeOutput {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// label is the one-line header used by the pretty and tree renderers.
func (n *ASTNodeOutput) label() string {
	s := n.Type
	if n.Kind != "" {
		s += ":" + n.Kind
	}
	if n.Text != "" {
		s += " " + n.Text
	}
	return s
}

func (n *ASTNodeOutput) sortedFields() []string {
	keys := make([]string, 0, len(n.Fields))
	for k := range n.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dumper переводит арены Builder в ASTNodeOutput.
type dumper struct {
	b  *ast.Builder
	fs *source.FileSet
}

func (d dumper) node(typ, kind, text string, sp source.Span) *ASTNodeOutput {
	return &ASTNodeOutput{Type: typ, Kind: kind, Text: text, Span: formatSpan(sp, d.fs)}
}

// BuildAST converts the module rooted at modID into the dump tree.
func BuildAST(builder *ast.Builder, modID ast.ModuleID, fs *source.FileSet) (*ASTNodeOutput, error) {
	if builder == nil {
		return nil, errModuleNotFound
	}
	mod := builder.Module(modID)
	if mod == nil {
		return nil, fmt.Errorf("%w: id %d", errModuleNotFound, modID)
	}
	d := dumper{b: builder, fs: fs}
	root := d.node("Module", "", builder.Name(mod.Name), mod.Span)

	if len(mod.Imports) > 0 {
		imports := &ASTNodeOutput{Type: "Imports", Span: formatSpan(mod.Imports[0].Span.Cover(mod.Imports[len(mod.Imports)-1].Span), fs)}
		for _, imp := range mod.Imports {
			text := builder.Name(imp.Name)
			if imp.Alias != imp.Name {
				text = builder.Name(imp.Alias) + " := " + text
			}
			imports.add(d.node("Import", "", text, imp.Span))
		}
		root.add(imports)
	}
	root.add(d.decls(mod.Decls)...)
	if mod.HasBody {
		root.add(d.body("Body", mod.Body))
	}
	return root, nil
}

// FormatASTPretty печатает дерево с отступами вида ├─ / └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, modID ast.ModuleID, fs *source.FileSet) error {
	root, err := BuildAST(builder, modID, fs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s (span: %s)\n", root.label(), root.Span); err != nil {
		return err
	}
	return writePretty(w, root, "")
}

func writePretty(w io.Writer, n *ASTNodeOutput, prefix string) error {
	keys := n.sortedFields()
	total := len(keys) + len(n.Children)
	idx := 0
	marker := func() (string, string) {
		idx++
		if idx == total {
			return "└─", prefix + "   "
		}
		return "├─", prefix + "│  "
	}
	for _, k := range keys {
		m, _ := marker()
		if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", prefix, m, k, n.Fields[k]); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		m, childPrefix := marker()
		if _, err := fmt.Fprintf(w, "%s%s %s (span: %s)\n", prefix, m, c.label(), c.Span); err != nil {
			return err
		}
		if err := writePretty(w, c, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, modID ast.ModuleID, fs *source.FileSet) error {
	root, err := BuildAST(builder, modID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func FormatASTYAML(w io.Writer, builder *ast.Builder, modID ast.ModuleID, fs *source.FileSet) error {
	root, err := BuildAST(builder, modID, fs)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return err
	}
	return encoder.Close()
}
