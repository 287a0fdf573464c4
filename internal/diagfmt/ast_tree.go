package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"obc/internal/ast"
	"obc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

// toTreeNode переводит узел дампа в узел ASCII-дерева; поля становятся листьями.
func toTreeNode(n *ASTNodeOutput) *treeNode {
	node := &treeNode{label: n.label()}
	for _, k := range n.sortedFields() {
		node.children = append(node.children, &treeNode{label: k + ": " + n.Fields[k]})
	}
	for _, c := range n.Children {
		node.children = append(node.children, toTreeNode(c))
	}
	return node
}

// FormatASTTree рисует модуль деревом сверху вниз, корень над детьми.
func FormatASTTree(w io.Writer, builder *ast.Builder, modID ast.ModuleID, fs *source.FileSet) error {
	root, err := BuildAST(builder, modID, fs)
	if err != nil {
		return err
	}
	block := renderTree(toTreeNode(root))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// treeSpacing — пробелы между соседними поддеревьями.
const treeSpacing = 3

// renderTree lays node out top-down: the label is centred over the span
// between its first and last child, a connector row of / | \ links them,
// and child blocks follow side by side. root is the label's centre column.
func renderTree(node *treeNode) treeBlock {
	labelWidth := runewidth.StringWidth(node.label)
	if len(node.children) == 0 {
		return treeBlock{lines: []string{node.label}, width: labelWidth, root: labelWidth / 2}
	}

	kids := make([]treeBlock, len(node.children))
	anchors := make([]int, len(node.children))
	height, x := 0, 0
	for i, child := range node.children {
		kids[i] = renderTree(child)
		anchors[i] = x + kids[i].root
		x += kids[i].width + treeSpacing
		height = max(height, len(kids[i].lines))
	}
	kidsWidth := x - treeSpacing

	// метка центрируется над детьми; если не влезает слева, сдвигаем детей
	labelStart := (anchors[0]+anchors[len(anchors)-1])/2 - labelWidth/2
	indent := 0
	if labelStart < 0 {
		indent = -labelStart
		labelStart = 0
	}
	root := labelStart + labelWidth/2
	width := max(kidsWidth+indent, labelStart+labelWidth)

	connector := []byte(strings.Repeat(" ", width))
	connector[root] = '|'
	for _, a := range anchors {
		a += indent
		switch {
		case a < root:
			connector[a] = '/'
		case a > root:
			connector[a] = '\\'
		default:
			connector[a] = '|'
		}
	}

	lines := make([]string, 0, height+2)
	lines = append(lines,
		runewidth.FillRight(strings.Repeat(" ", labelStart)+node.label, width),
		string(connector))
	for row := range height {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", indent))
		for i, kid := range kids {
			if i > 0 {
				sb.WriteString(strings.Repeat(" ", treeSpacing))
			}
			line := ""
			if row < len(kid.lines) {
				line = kid.lines[row]
			}
			sb.WriteString(runewidth.FillRight(line, kid.width))
		}
		lines = append(lines, runewidth.FillRight(sb.String(), width))
	}
	return treeBlock{lines: lines, width: width, root: root}
}
