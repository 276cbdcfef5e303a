package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"code-analyzer/pkg/analyzer/ast"
)

func sliceContent(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := int(node.StartByte())
	end := int(node.EndByte())
	if start < 0 || end < start || end > len(source) {
		return ""
	}
	return string(source[start:end])
}

func isIgnorableNode(node *sitter.Node) bool {
	if node == nil {
		return true
	}
	switch node.Kind() {
	case "comment", "hash_bang_line", "html_comment":
		return true
	}
	return node.IsExtra()
}

// namedChildren lists named children, comments excluded.
func namedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, node.NamedChildCount())
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil || isIgnorableNode(child) {
			continue
		}
		children = append(children, child)
	}
	return children
}

func firstNamedChild(node *sitter.Node) *sitter.Node {
	children := namedChildren(node)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// firstChildKind is the kind of the first child, named or not. Keywords such
// as "let" or "async" are anonymous children.
func firstChildKind(node *sitter.Node) string {
	if node == nil || node.ChildCount() == 0 {
		return ""
	}
	return node.Child(0).Kind()
}

func spanFromNode(node *sitter.Node) ast.Span {
	if node == nil {
		return ast.Span{}
	}
	start := node.StartPosition()
	end := node.EndPosition()
	return ast.Span{
		Start: ast.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   ast.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
}

func annotateStatement(stmt ast.Statement, tsNode *sitter.Node) ast.Statement {
	ast.SetSpan(stmt, spanFromNode(tsNode))
	return stmt
}

func annotateExpression(expr ast.Expression, tsNode *sitter.Node) ast.Expression {
	ast.SetSpan(expr, spanFromNode(tsNode))
	return expr
}
