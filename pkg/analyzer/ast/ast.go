package ast

import "reflect"

// NodeType names a node kind, using the ESTree spelling.
type NodeType string

const (
	NodeProgram                 NodeType = "Program"
	NodeBlockStatement          NodeType = "BlockStatement"
	NodeExpressionStatement     NodeType = "ExpressionStatement"
	NodeFunctionDeclaration     NodeType = "FunctionDeclaration"
	NodeVariableDeclaration     NodeType = "VariableDeclaration"
	NodeVariableDeclarator      NodeType = "VariableDeclarator"
	NodeIfStatement             NodeType = "IfStatement"
	NodeWhileStatement          NodeType = "WhileStatement"
	NodeDoWhileStatement        NodeType = "DoWhileStatement"
	NodeForStatement            NodeType = "ForStatement"
	NodeForInStatement          NodeType = "ForInStatement"
	NodeForOfStatement          NodeType = "ForOfStatement"
	NodeReturnStatement         NodeType = "ReturnStatement"
	NodeUnsupportedStatement    NodeType = "UnsupportedStatement"
	NodeIdentifier              NodeType = "Identifier"
	NodeLiteral                 NodeType = "Literal"
	NodeBinaryExpression        NodeType = "BinaryExpression"
	NodeAssignmentExpression    NodeType = "AssignmentExpression"
	NodeUpdateExpression        NodeType = "UpdateExpression"
	NodeUnaryExpression         NodeType = "UnaryExpression"
	NodeMemberExpression        NodeType = "MemberExpression"
	NodeThisExpression          NodeType = "ThisExpression"
	NodeParenthesizedExpression NodeType = "ParenthesizedExpression"
	NodeSequenceExpression      NodeType = "SequenceExpression"
	NodeAssignmentPattern       NodeType = "AssignmentPattern"
	NodeRestElement             NodeType = "RestElement"
	NodeUnsupportedExpression   NodeType = "UnsupportedExpression"
)

// Position is a 1-based line/column pair.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is implemented by every AST node. The set of implementations is closed:
// only types in this package satisfy it.
type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"loc"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType { return n.Type }
func (n *nodeImpl) Span() Span         { return n.Loc }
func (n *nodeImpl) setSpan(span Span)  { n.Loc = span }
func (*nodeImpl) isNode()              {}

// SetSpan records the source location of node.
func SetSpan(node Node, span Span) {
	if IsNil(node) {
		return
	}
	if s, ok := node.(interface{ setSpan(Span) }); ok {
		s.setSpan(span)
	}
}

// IsNil reports whether node is nil, including a typed nil pointer held in
// the interface.
func IsNil(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Line returns the start line of node, 0 when node is nil.
func Line(node Node) int {
	if IsNil(node) {
		return 0
	}
	return node.Span().Start.Line
}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}
