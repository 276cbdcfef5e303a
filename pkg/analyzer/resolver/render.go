package resolver

import (
	"strings"

	"code-analyzer/pkg/analyzer/ast"
)

const thisPrefix = "this."

// RenderExpression renders expr with default options.
func RenderExpression(expr ast.Expression) string {
	return defaultResolver.RenderExpression(expr)
}

// RenderExpression returns the display text of expr. The rendering is lossy:
// grouping survives only where the AST kept a ParenthesizedExpression, and
// kinds outside the supported set render as "".
func (r *Resolver) RenderExpression(expr ast.Expression) string {
	return r.render(expr)
}

func (r *Resolver) render(expr ast.Expression) string {
	if ast.IsNil(expr) {
		return ""
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Literal:
		return e.Value
	case *ast.BinaryExpression:
		return r.render(e.Left) + " " + e.Operator + " " + r.render(e.Right)
	case *ast.AssignmentExpression:
		return r.render(e.Left) + " " + e.Operator + " " + r.render(e.Right)
	case *ast.UpdateExpression:
		if e.Prefix {
			return e.Operator + r.render(e.Argument)
		}
		return r.render(e.Argument) + e.Operator
	case *ast.UnaryExpression:
		return e.Operator + r.render(e.Argument)
	case *ast.MemberExpression:
		return r.renderMember(e)
	case *ast.ThisExpression:
		return thisPrefix
	case *ast.ParenthesizedExpression:
		return "(" + r.render(e.Expression) + ")"
	case *ast.SequenceExpression:
		parts := make([]string, 0, len(e.Expressions))
		for _, part := range e.Expressions {
			parts = append(parts, r.render(part))
		}
		return strings.Join(parts, ", ")
	case *ast.AssignmentPattern:
		return r.render(e.Left) + " = " + r.render(e.Right)
	case *ast.RestElement:
		return "..." + r.render(e.Argument)
	case *ast.UnsupportedExpression:
		r.report(e, e.Kind, "unsupported expression")
	default:
		r.report(e, string(e.NodeType()), "unsupported expression")
	}
	return ""
}

// renderMember uses bracket form for identifier objects whatever the source
// syntax, and dot form after this.
func (r *Resolver) renderMember(e *ast.MemberExpression) string {
	property := r.render(e.Property)
	if ast.IsNil(e.Object) {
		r.report(e, string(ast.NodeMemberExpression), "missing member object")
		return ""
	}
	switch e.Object.(type) {
	case *ast.Identifier:
		return r.render(e.Object) + "[" + property + "]"
	case *ast.ThisExpression:
		return thisPrefix + property
	}
	r.report(e, string(ast.NodeMemberExpression), "unsupported member object")
	return ""
}
