package ast

// Program is the root of a parsed unit.
type Program struct {
	nodeImpl
	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Statements

type BlockStatement struct {
	nodeImpl
	statementMarker
	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker
	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type FunctionDeclaration struct {
	nodeImpl
	statementMarker
	ID        *Identifier     `json:"id"`
	Params    []Expression    `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
	Async     bool            `json:"async"`
}

func NewFunctionDeclaration(id *Identifier, params []Expression, body *BlockStatement) *FunctionDeclaration {
	return &FunctionDeclaration{
		nodeImpl: newNodeImpl(NodeFunctionDeclaration),
		ID:       id,
		Params:   params,
		Body:     body,
	}
}

// VariableDeclaration covers var, let and const.
type VariableDeclaration struct {
	nodeImpl
	statementMarker
	Kind         string                `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

func NewVariableDeclaration(kind string, declarations []*VariableDeclarator) *VariableDeclaration {
	return &VariableDeclaration{
		nodeImpl:     newNodeImpl(NodeVariableDeclaration),
		Kind:         kind,
		Declarations: declarations,
	}
}

type VariableDeclarator struct {
	nodeImpl
	ID   Expression `json:"id"`
	Init Expression `json:"init"`
}

func NewVariableDeclarator(id, init Expression) *VariableDeclarator {
	return &VariableDeclarator{nodeImpl: newNodeImpl(NodeVariableDeclarator), ID: id, Init: init}
}

type IfStatement struct {
	nodeImpl
	statementMarker
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
}

func NewIfStatement(test Expression, consequent, alternate Statement) *IfStatement {
	return &IfStatement{
		nodeImpl:   newNodeImpl(NodeIfStatement),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}
}

type WhileStatement struct {
	nodeImpl
	statementMarker
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func NewWhileStatement(test Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Test: test, Body: body}
}

type DoWhileStatement struct {
	nodeImpl
	statementMarker
	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

func NewDoWhileStatement(body Statement, test Expression) *DoWhileStatement {
	return &DoWhileStatement{nodeImpl: newNodeImpl(NodeDoWhileStatement), Body: body, Test: test}
}

// ForStatement is the counting loop. Init is either a *VariableDeclaration or
// an Expression; any clause may be nil.
type ForStatement struct {
	nodeImpl
	statementMarker
	Init   Node       `json:"init"`
	Test   Expression `json:"test"`
	Update Expression `json:"update"`
	Body   Statement  `json:"body"`
}

func NewForStatement(init Node, test, update Expression, body Statement) *ForStatement {
	return &ForStatement{
		nodeImpl: newNodeImpl(NodeForStatement),
		Init:     init,
		Test:     test,
		Update:   update,
		Body:     body,
	}
}

// ForInStatement covers both for-in and for-of; Of is set for the latter.
// Kind carries the declaration keyword of the loop variable, if any.
type ForInStatement struct {
	nodeImpl
	statementMarker
	Kind  string     `json:"kind"`
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
	Of    bool       `json:"of"`
}

func NewForInStatement(kind string, left, right Expression, body Statement, of bool) *ForInStatement {
	nodeType := NodeForInStatement
	if of {
		nodeType = NodeForOfStatement
	}
	return &ForInStatement{
		nodeImpl: newNodeImpl(nodeType),
		Kind:     kind,
		Left:     left,
		Right:    right,
		Body:     body,
		Of:       of,
	}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker
	Argument Expression `json:"argument"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

// UnsupportedStatement stands in for a grammar construct the adapter does not
// model. Kind is the grammar's node kind.
type UnsupportedStatement struct {
	nodeImpl
	statementMarker
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func NewUnsupportedStatement(kind, text string) *UnsupportedStatement {
	return &UnsupportedStatement{nodeImpl: newNodeImpl(NodeUnsupportedStatement), Kind: kind, Text: text}
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker
	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// ID is shorthand for NewIdentifier.
func ID(name string) *Identifier { return NewIdentifier(name) }

type LiteralKind string

const (
	LiteralString    LiteralKind = "string"
	LiteralNumber    LiteralKind = "number"
	LiteralBoolean   LiteralKind = "boolean"
	LiteralNull      LiteralKind = "null"
	LiteralUndefined LiteralKind = "undefined"
	LiteralRegExp    LiteralKind = "regexp"
	LiteralTemplate  LiteralKind = "template"
)

// Literal keeps both the stored value (strings without quotes, escapes
// decoded) and the raw source text.
type Literal struct {
	nodeImpl
	expressionMarker
	Kind  LiteralKind `json:"kind"`
	Value string      `json:"value"`
	Raw   string      `json:"raw"`
}

func NewLiteral(kind LiteralKind, value, raw string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Kind: kind, Value: value, Raw: raw}
}

// Num builds a number literal whose value and raw text are the same.
func Num(text string) *Literal { return NewLiteral(LiteralNumber, text, text) }

// Str builds a single-quoted string literal.
func Str(value string) *Literal { return NewLiteral(LiteralString, value, "'"+value+"'") }

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{
		nodeImpl: newNodeImpl(NodeBinaryExpression),
		Operator: operator,
		Left:     left,
		Right:    right,
	}
}

type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewAssignmentExpression(operator string, left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{
		nodeImpl: newNodeImpl(NodeAssignmentExpression),
		Operator: operator,
		Left:     left,
		Right:    right,
	}
}

type UpdateExpression struct {
	nodeImpl
	expressionMarker
	Operator string     `json:"operator"`
	Prefix   bool       `json:"prefix"`
	Argument Expression `json:"argument"`
}

func NewUpdateExpression(operator string, prefix bool, argument Expression) *UpdateExpression {
	return &UpdateExpression{
		nodeImpl: newNodeImpl(NodeUpdateExpression),
		Operator: operator,
		Prefix:   prefix,
		Argument: argument,
	}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
}

func NewUnaryExpression(operator string, argument Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Argument: argument}
}

// MemberExpression is both o.p (Computed false) and o[p] (Computed true).
type MemberExpression struct {
	nodeImpl
	expressionMarker
	Object   Expression `json:"object"`
	Property Expression `json:"property"`
	Computed bool       `json:"computed"`
}

func NewMemberExpression(object, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{
		nodeImpl: newNodeImpl(NodeMemberExpression),
		Object:   object,
		Property: property,
		Computed: computed,
	}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker
}

func NewThisExpression() *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression)}
}

// ParenthesizedExpression keeps explicit grouping from the source.
type ParenthesizedExpression struct {
	nodeImpl
	expressionMarker
	Expression Expression `json:"expression"`
}

func NewParenthesizedExpression(expr Expression) *ParenthesizedExpression {
	return &ParenthesizedExpression{nodeImpl: newNodeImpl(NodeParenthesizedExpression), Expression: expr}
}

type SequenceExpression struct {
	nodeImpl
	expressionMarker
	Expressions []Expression `json:"expressions"`
}

func NewSequenceExpression(exprs []Expression) *SequenceExpression {
	return &SequenceExpression{nodeImpl: newNodeImpl(NodeSequenceExpression), Expressions: exprs}
}

// AssignmentPattern is a parameter with a default value.
type AssignmentPattern struct {
	nodeImpl
	expressionMarker
	Left  Expression `json:"left"`
	Right Expression `json:"right"`
}

func NewAssignmentPattern(left, right Expression) *AssignmentPattern {
	return &AssignmentPattern{nodeImpl: newNodeImpl(NodeAssignmentPattern), Left: left, Right: right}
}

type RestElement struct {
	nodeImpl
	expressionMarker
	Argument Expression `json:"argument"`
}

func NewRestElement(argument Expression) *RestElement {
	return &RestElement{nodeImpl: newNodeImpl(NodeRestElement), Argument: argument}
}

// UnsupportedExpression stands in for an expression kind the adapter does not
// model, such as calls or object literals.
type UnsupportedExpression struct {
	nodeImpl
	expressionMarker
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func NewUnsupportedExpression(kind, text string) *UnsupportedExpression {
	return &UnsupportedExpression{nodeImpl: newNodeImpl(NodeUnsupportedExpression), Kind: kind, Text: text}
}
