package resolver

import (
	"fmt"
	"strings"

	"code-analyzer/pkg/analyzer/ast"
	"code-analyzer/pkg/analyzer/types"
)

// Diagnostic reports a construct that resolved to a placeholder or to empty
// text. It never changes the resolved table.
type Diagnostic struct {
	Line     int    `json:"line"`
	NodeType string `json:"nodeType"`
	Message  string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.NodeType, d.Message)
}

type Options struct {
	// RenderInitializers fills Value of a declaration row with its initializer.
	// Off by default: declarations carry only the bound name.
	RenderInitializers bool
	// Diagnostics, when set, receives every unsupported construct.
	Diagnostics func(Diagnostic)
}

// Resolver flattens an AST into a types.Table. It holds no state between calls
// and never mutates its input, so one Resolver may serve many goroutines.
type Resolver struct {
	opts Options
}

func New(opts Options) *Resolver {
	return &Resolver{opts: opts}
}

var defaultResolver = New(Options{})

// Resolve flattens node with default options.
func Resolve(node ast.Node) types.Table {
	return defaultResolver.Resolve(node)
}

// Resolve returns the rows for node in depth-first source order. A nil node,
// typed or not, contributes nothing; an unsupported one contributes a single
// placeholder.
func (r *Resolver) Resolve(node ast.Node) types.Table {
	if ast.IsNil(node) {
		return nil
	}
	switch n := node.(type) {
	case *ast.Program:
		// 只解析第一条顶层语句
		if len(n.Body) == 0 {
			return types.Table{}
		}
		return r.Resolve(n.Body[0])
	case *ast.FunctionDeclaration:
		return r.resolveFunction(n)
	case *ast.BlockStatement:
		return r.resolveStatements(n.Body)
	case *ast.ExpressionStatement:
		return r.resolveExpression(n.Expression)
	case *ast.VariableDeclaration:
		return r.resolveVariableDeclaration(n)
	case *ast.IfStatement:
		return r.resolveIf(n, false)
	case *ast.WhileStatement:
		head := element(n, types.KindWhileStatement, "", r.render(n.Test), "")
		return r.withBody(head, n.Body)
	case *ast.DoWhileStatement:
		head := element(n, types.KindDoWhileStatement, "", r.render(n.Test), "")
		return r.withBody(head, n.Body)
	case *ast.ForStatement:
		return r.withBody(element(n, types.KindForStatement, "", r.forCondition(n), ""), n.Body)
	case *ast.ForInStatement:
		return r.resolveForIn(n)
	case *ast.ReturnStatement:
		return types.Table{element(n, types.KindReturnStatement, "", "", r.render(n.Argument))}
	case *ast.UnsupportedStatement:
		r.report(n, n.Kind, "unsupported statement")
		return types.Table{types.Placeholder()}
	case ast.Expression:
		return r.resolveExpression(n)
	}
	r.report(node, string(node.NodeType()), "unsupported node")
	return types.Table{types.Placeholder()}
}

func (r *Resolver) resolveStatements(statements []ast.Statement) types.Table {
	out := types.Table{}
	for _, statement := range statements {
		out = append(out, r.Resolve(statement)...)
	}
	return out
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDeclaration) types.Table {
	var name string
	if fn.ID != nil {
		name = fn.ID.Name
	}
	out := types.Table{element(fn, types.KindFunctionDeclaration, name, "", "")}
	for _, param := range fn.Params {
		out = append(out, element(param, types.KindVariableDeclaration, r.bindingName(param), "", ""))
	}
	if fn.Body != nil {
		out = append(out, r.resolveStatements(fn.Body.Body)...)
	}
	return out
}

func (r *Resolver) resolveVariableDeclaration(decl *ast.VariableDeclaration) types.Table {
	out := make(types.Table, 0, len(decl.Declarations))
	for _, declarator := range decl.Declarations {
		if declarator == nil {
			continue
		}
		var value string
		if r.opts.RenderInitializers {
			value = r.render(declarator.Init)
		}
		out = append(out, element(declarator, types.KindVariableDeclaration, r.bindingName(declarator.ID), "", value))
	}
	return out
}

// resolveExpression handles an expression in statement position.
func (r *Resolver) resolveExpression(expr ast.Expression) types.Table {
	if ast.IsNil(expr) {
		return nil
	}
	switch e := expr.(type) {
	case *ast.AssignmentExpression:
		return types.Table{element(e, types.KindAssignmentExpression, r.render(e.Left), "", r.render(e.Right))}
	case *ast.UpdateExpression:
		// i++ 作为语句时视为赋值，目标不单独列出
		return types.Table{element(e, types.KindAssignmentExpression, "", "", r.render(e))}
	case *ast.ParenthesizedExpression:
		return r.resolveExpression(e.Expression)
	case *ast.SequenceExpression:
		out := types.Table{}
		for _, part := range e.Expressions {
			out = append(out, r.resolveExpression(part)...)
		}
		return out
	case *ast.UnsupportedExpression:
		r.report(e, e.Kind, "unsupported expression statement")
	default:
		r.report(e, string(e.NodeType()), "unsupported expression statement")
	}
	return types.Table{types.Placeholder()}
}

// resolveIf emits the if row, its consequent, then the else-if chain. A plain
// else contributes its own rows with no row of its own.
func (r *Resolver) resolveIf(n *ast.IfStatement, isElseIf bool) types.Table {
	kind := types.KindIfStatement
	if isElseIf {
		kind = types.KindElseIfStatement
	}
	out := types.Table{element(n, kind, "", r.render(n.Test), "")}
	out = append(out, r.Resolve(n.Consequent)...)
	if ast.IsNil(n.Alternate) {
		return out
	}
	switch alternate := n.Alternate.(type) {
	case *ast.IfStatement:
		out = append(out, r.resolveIf(alternate, true)...)
	default:
		out = append(out, r.Resolve(alternate)...)
	}
	return out
}

func (r *Resolver) resolveForIn(n *ast.ForInStatement) types.Table {
	kind, keyword := types.KindForInStatement, "in"
	if n.Of {
		kind, keyword = types.KindForOfStatement, "of"
	}
	condition := r.render(n.Left) + " " + keyword + " " + r.render(n.Right)
	return r.withBody(element(n, kind, "", condition, ""), n.Body)
}

// forCondition joins the three clauses of a counting loop with "; ". Missing
// clauses render empty, so for(;;) yields "; ; ".
func (r *Resolver) forCondition(n *ast.ForStatement) string {
	return r.forInit(n.Init) + "; " + r.render(n.Test) + "; " + r.render(n.Update)
}

func (r *Resolver) forInit(init ast.Node) string {
	if ast.IsNil(init) {
		return ""
	}
	switch i := init.(type) {
	case *ast.VariableDeclaration:
		parts := make([]string, 0, len(i.Declarations))
		for _, declarator := range i.Declarations {
			if declarator == nil {
				continue
			}
			part := r.bindingName(declarator.ID)
			if !ast.IsNil(declarator.Init) {
				part += " = " + r.render(declarator.Init)
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, ", ")
	case ast.Expression:
		return r.render(i)
	}
	r.report(init, string(init.NodeType()), "unsupported loop initializer")
	return ""
}

func (r *Resolver) withBody(head types.Element, body ast.Statement) types.Table {
	out := types.Table{head}
	return append(out, r.Resolve(body)...)
}

// bindingName is the identifier bound by a declarator id or parameter.
func (r *Resolver) bindingName(target ast.Expression) string {
	if ast.IsNil(target) {
		return ""
	}
	switch t := target.(type) {
	case *ast.Identifier:
		return t.Name
	case *ast.AssignmentPattern:
		return r.bindingName(t.Left)
	case *ast.RestElement:
		return r.bindingName(t.Argument)
	case *ast.UnsupportedExpression:
		r.report(t, t.Kind, "unsupported binding pattern")
	default:
		r.report(t, string(t.NodeType()), "unsupported binding pattern")
	}
	return ""
}

func (r *Resolver) report(node ast.Node, nodeType, message string) {
	if r.opts.Diagnostics == nil {
		return
	}
	r.opts.Diagnostics(Diagnostic{Line: ast.Line(node), NodeType: nodeType, Message: message})
}

func element(node ast.Node, kind types.ElementKind, name, condition, value string) types.Element {
	return types.Element{
		Line:      ast.Line(node),
		Kind:      kind,
		Name:      name,
		Condition: condition,
		Value:     value,
	}
}
