package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"code-analyzer/pkg/analyzer/ast"
)

// builder converts a tree-sitter CST into the ast package's nodes. It keeps no
// references to the tree once done.
type builder struct {
	source []byte
}

func (b *builder) program(root *sitter.Node) *ast.Program {
	body := make([]ast.Statement, 0, root.NamedChildCount())
	for _, child := range namedChildren(root) {
		body = append(body, b.statement(child))
	}
	program := ast.NewProgram(body)
	if len(body) > 0 {
		ast.SetSpan(program, spanFromNode(root))
	}
	return program
}

func (b *builder) statement(node *sitter.Node) ast.Statement {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "statement_block":
		return annotateStatement(b.block(node), node)
	case "expression_statement":
		return annotateStatement(ast.NewExpressionStatement(b.expression(firstNamedChild(node))), node)
	case "function_declaration", "generator_function_declaration":
		return annotateStatement(b.function(node), node)
	case "lexical_declaration", "variable_declaration":
		return annotateStatement(b.variableDeclaration(node), node)
	case "if_statement":
		return annotateStatement(b.ifStatement(node), node)
	case "while_statement":
		test := b.condition(node.ChildByFieldName("condition"))
		body := b.statement(node.ChildByFieldName("body"))
		return annotateStatement(ast.NewWhileStatement(test, body), node)
	case "do_statement":
		body := b.statement(node.ChildByFieldName("body"))
		test := b.condition(node.ChildByFieldName("condition"))
		return annotateStatement(ast.NewDoWhileStatement(body, test), node)
	case "for_statement":
		return annotateStatement(b.forStatement(node), node)
	case "for_in_statement":
		return annotateStatement(b.forInStatement(node), node)
	case "return_statement":
		var argument ast.Expression
		if child := firstNamedChild(node); child != nil {
			argument = b.expression(child)
		}
		return annotateStatement(ast.NewReturnStatement(argument), node)
	case "export_statement":
		// export function f() {} 按内部声明处理
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			return b.statement(decl)
		}
	}
	return annotateStatement(ast.NewUnsupportedStatement(node.Kind(), sliceContent(node, b.source)), node)
}

func (b *builder) block(node *sitter.Node) *ast.BlockStatement {
	children := namedChildren(node)
	body := make([]ast.Statement, 0, len(children))
	for _, child := range children {
		body = append(body, b.statement(child))
	}
	block := ast.NewBlockStatement(body)
	ast.SetSpan(block, spanFromNode(node))
	return block
}

func (b *builder) function(node *sitter.Node) *ast.FunctionDeclaration {
	var id *ast.Identifier
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		id = b.identifier(nameNode)
	}

	var params []ast.Expression
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		for _, param := range namedChildren(paramsNode) {
			params = append(params, b.parameter(param))
		}
	}

	var body *ast.BlockStatement
	if bodyNode := node.ChildByFieldName("body"); bodyNode != nil {
		body = b.block(bodyNode)
	}

	fn := ast.NewFunctionDeclaration(id, params, body)
	fn.Generator = node.Kind() == "generator_function_declaration"
	fn.Async = firstChildKind(node) == "async"
	return fn
}

func (b *builder) parameter(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier":
		return b.expression(node)
	case "assignment_pattern":
		left := b.pattern(node.ChildByFieldName("left"))
		right := b.expression(node.ChildByFieldName("right"))
		return annotateExpression(ast.NewAssignmentPattern(left, right), node)
	case "rest_pattern":
		return annotateExpression(ast.NewRestElement(b.pattern(firstNamedChild(node))), node)
	case "required_parameter", "optional_parameter":
		// TypeScript: pattern 带可选的类型标注与默认值
		pattern := b.parameter(node.ChildByFieldName("pattern"))
		if value := node.ChildByFieldName("value"); value != nil {
			return annotateExpression(ast.NewAssignmentPattern(pattern, b.expression(value)), node)
		}
		return pattern
	}
	return b.pattern(node)
}

func (b *builder) pattern(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return b.identifier(node)
	case "rest_pattern":
		return annotateExpression(ast.NewRestElement(b.pattern(firstNamedChild(node))), node)
	case "assignment_pattern", "required_parameter", "optional_parameter":
		return b.parameter(node)
	}
	return b.unsupportedExpression(node)
}

func (b *builder) variableDeclaration(node *sitter.Node) *ast.VariableDeclaration {
	kind := firstChildKind(node)
	if kindNode := node.ChildByFieldName("kind"); kindNode != nil {
		kind = kindNode.Kind()
	}
	var declarators []*ast.VariableDeclarator
	for _, child := range namedChildren(node) {
		if child.Kind() != "variable_declarator" {
			continue
		}
		var init ast.Expression
		if value := child.ChildByFieldName("value"); value != nil {
			init = b.expression(value)
		}
		declarator := ast.NewVariableDeclarator(b.pattern(child.ChildByFieldName("name")), init)
		ast.SetSpan(declarator, spanFromNode(child))
		declarators = append(declarators, declarator)
	}
	return ast.NewVariableDeclaration(kind, declarators)
}

func (b *builder) ifStatement(node *sitter.Node) *ast.IfStatement {
	test := b.condition(node.ChildByFieldName("condition"))
	consequent := b.statement(node.ChildByFieldName("consequence"))

	var alternate ast.Statement
	if elseClause := node.ChildByFieldName("alternative"); elseClause != nil {
		// else_clause 只包一条语句
		alternate = b.statement(firstNamedChild(elseClause))
	}
	return ast.NewIfStatement(test, consequent, alternate)
}

func (b *builder) forStatement(node *sitter.Node) *ast.ForStatement {
	init := b.forClause(node.ChildByFieldName("initializer"))
	test, _ := b.forClause(node.ChildByFieldName("condition")).(ast.Expression)

	var update ast.Expression
	if updateNode := node.ChildByFieldName("increment"); updateNode != nil {
		update = b.expression(updateNode)
	}
	body := b.statement(node.ChildByFieldName("body"))
	return ast.NewForStatement(init, test, update, body)
}

// forClause reads the initializer or condition of a counting loop. Depending
// on the grammar version these arrive as bare expressions or wrapped in
// expression_statement / empty_statement nodes.
func (b *builder) forClause(node *sitter.Node) ast.Node {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "empty_statement", ";":
		return nil
	case "expression_statement":
		if child := firstNamedChild(node); child != nil {
			return b.expression(child)
		}
		return nil
	case "lexical_declaration", "variable_declaration":
		return annotateStatement(b.variableDeclaration(node), node)
	}
	return b.expression(node)
}

func (b *builder) forInStatement(node *sitter.Node) *ast.ForInStatement {
	var kind string
	if kindNode := node.ChildByFieldName("kind"); kindNode != nil {
		kind = kindNode.Kind()
	}
	of := false
	if operator := node.ChildByFieldName("operator"); operator != nil {
		of = operator.Kind() == "of"
	}
	left := b.expression(node.ChildByFieldName("left"))
	right := b.expression(node.ChildByFieldName("right"))
	body := b.statement(node.ChildByFieldName("body"))
	return ast.NewForInStatement(kind, left, right, body, of)
}

// condition unwraps the parentheses that belong to if/while syntax, keeping
// any grouping written inside them.
func (b *builder) condition(node *sitter.Node) ast.Expression {
	if node == nil {
		return nil
	}
	if node.Kind() == "parenthesized_expression" {
		if inner := firstNamedChild(node); inner != nil {
			return b.expression(inner)
		}
	}
	return b.expression(node)
}
