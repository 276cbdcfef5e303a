package parser

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"code-analyzer/pkg/analyzer/ast"
)

func (b *builder) identifier(node *sitter.Node) *ast.Identifier {
	id := ast.NewIdentifier(sliceContent(node, b.source))
	ast.SetSpan(id, spanFromNode(node))
	return id
}

func (b *builder) expression(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"private_property_identifier", "statement_identifier":
		return b.identifier(node)
	case "this":
		return annotateExpression(ast.NewThisExpression(), node)
	case "number":
		text := sliceContent(node, b.source)
		return annotateExpression(ast.NewLiteral(ast.LiteralNumber, text, text), node)
	case "string":
		return annotateExpression(ast.NewLiteral(ast.LiteralString, b.stringValue(node), sliceContent(node, b.source)), node)
	case "template_string":
		text := sliceContent(node, b.source)
		return annotateExpression(ast.NewLiteral(ast.LiteralTemplate, text, text), node)
	case "regex":
		text := sliceContent(node, b.source)
		return annotateExpression(ast.NewLiteral(ast.LiteralRegExp, text, text), node)
	case "true", "false":
		return annotateExpression(ast.NewLiteral(ast.LiteralBoolean, node.Kind(), node.Kind()), node)
	case "null":
		return annotateExpression(ast.NewLiteral(ast.LiteralNull, "null", "null"), node)
	case "undefined":
		return annotateExpression(ast.NewLiteral(ast.LiteralUndefined, "undefined", "undefined"), node)
	case "binary_expression":
		left := b.expression(node.ChildByFieldName("left"))
		right := b.expression(node.ChildByFieldName("right"))
		return annotateExpression(ast.NewBinaryExpression(b.operator(node), left, right), node)
	case "assignment_expression":
		left := b.expression(node.ChildByFieldName("left"))
		right := b.expression(node.ChildByFieldName("right"))
		return annotateExpression(ast.NewAssignmentExpression("=", left, right), node)
	case "augmented_assignment_expression":
		left := b.expression(node.ChildByFieldName("left"))
		right := b.expression(node.ChildByFieldName("right"))
		return annotateExpression(ast.NewAssignmentExpression(b.operator(node), left, right), node)
	case "update_expression":
		operator := b.operator(node)
		prefix := firstChildKind(node) == operator
		argument := b.expression(node.ChildByFieldName("argument"))
		return annotateExpression(ast.NewUpdateExpression(operator, prefix, argument), node)
	case "unary_expression":
		argument := b.expression(node.ChildByFieldName("argument"))
		return annotateExpression(ast.NewUnaryExpression(b.operator(node), argument), node)
	case "member_expression":
		object := b.expression(node.ChildByFieldName("object"))
		property := b.expression(node.ChildByFieldName("property"))
		return annotateExpression(ast.NewMemberExpression(object, property, false), node)
	case "subscript_expression":
		object := b.expression(node.ChildByFieldName("object"))
		index := b.expression(node.ChildByFieldName("index"))
		return annotateExpression(ast.NewMemberExpression(object, index, true), node)
	case "parenthesized_expression":
		return annotateExpression(ast.NewParenthesizedExpression(b.expression(firstNamedChild(node))), node)
	case "sequence_expression":
		return annotateExpression(ast.NewSequenceExpression(b.sequence(node, nil)), node)
	case "as_expression", "satisfies_expression", "non_null_expression", "type_assertion":
		// TypeScript 类型断言不影响渲染，取被断言的表达式
		if node.Kind() == "type_assertion" {
			children := namedChildren(node)
			if len(children) > 0 {
				return b.expression(children[len(children)-1])
			}
		}
		return b.expression(firstNamedChild(node))
	}
	return b.unsupportedExpression(node)
}

func (b *builder) unsupportedExpression(node *sitter.Node) ast.Expression {
	return annotateExpression(ast.NewUnsupportedExpression(node.Kind(), sliceContent(node, b.source)), node)
}

// sequence flattens nested sequence_expression nodes into one list.
func (b *builder) sequence(node *sitter.Node, acc []ast.Expression) []ast.Expression {
	for _, child := range namedChildren(node) {
		if child.Kind() == "sequence_expression" {
			acc = b.sequence(child, acc)
			continue
		}
		acc = append(acc, b.expression(child))
	}
	return acc
}

func (b *builder) operator(node *sitter.Node) string {
	if op := node.ChildByFieldName("operator"); op != nil {
		return sliceContent(op, b.source)
	}
	return ""
}

// stringValue is the literal's stored value: quotes removed, escapes decoded.
func (b *builder) stringValue(node *sitter.Node) string {
	var sb strings.Builder
	children := namedChildren(node)
	for i := 0; i < len(children); i++ {
		text := sliceContent(children[i], b.source)
		if children[i].Kind() != "escape_sequence" {
			sb.WriteString(text)
			continue
		}
		// \uD83D\uDE00 这类代理对合成一个码点
		if hi, ok := codeUnitEscape(text); ok && utf16.IsSurrogate(hi) && i+1 < len(children) &&
			children[i+1].Kind() == "escape_sequence" {
			if lo, ok := codeUnitEscape(sliceContent(children[i+1], b.source)); ok {
				if r := utf16.DecodeRune(hi, lo); r != utf8.RuneError {
					sb.WriteRune(r)
					i++
					continue
				}
			}
		}
		sb.WriteString(decodeEscape(text))
	}
	return sb.String()
}

// codeUnitEscape parses the four-digit form \uXXXX.
func codeUnitEscape(seq string) (rune, bool) {
	if len(seq) != 6 || !strings.HasPrefix(seq, `\u`) {
		return 0, false
	}
	v, err := strconv.ParseUint(seq[2:], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	body := seq[1:]
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r':
		// 续行
		return ""
	case 'x':
		if v, err := strconv.ParseUint(body[1:], 16, 8); err == nil {
			return string(rune(v))
		}
	case 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(v))
		}
	}
	return body
}
