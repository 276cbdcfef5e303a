package types

import (
	"bytes"
	"encoding/json"
)

const EmptyString = ""

// ElementKind 表示解析结果的元素类型，取值沿用 ESTree 的节点名
type ElementKind string

const (
	KindPlaceholder          ElementKind = ""
	KindFunctionDeclaration  ElementKind = "FunctionDeclaration"
	KindVariableDeclaration  ElementKind = "VariableDeclaration"
	KindAssignmentExpression ElementKind = "AssignmentExpression"
	KindWhileStatement       ElementKind = "WhileStatement"
	KindDoWhileStatement     ElementKind = "DoWhileStatement"
	KindForStatement         ElementKind = "ForStatement"
	KindForInStatement       ElementKind = "ForInStatement"
	KindForOfStatement       ElementKind = "ForOfStatement"
	KindIfStatement          ElementKind = "IfStatement"
	KindElseIfStatement      ElementKind = "ElseIfStatement"
	KindReturnStatement      ElementKind = "ReturnStatement"
)

// AllKinds lists every non-placeholder kind in display order.
var AllKinds = []ElementKind{
	KindFunctionDeclaration,
	KindVariableDeclaration,
	KindAssignmentExpression,
	KindWhileStatement,
	KindDoWhileStatement,
	KindForStatement,
	KindForInStatement,
	KindForOfStatement,
	KindIfStatement,
	KindElseIfStatement,
	KindReturnStatement,
}

// IsLoop reports whether k is one of the loop kinds.
func (k ElementKind) IsLoop() bool {
	switch k {
	case KindWhileStatement, KindDoWhileStatement, KindForStatement, KindForInStatement, KindForOfStatement:
		return true
	}
	return false
}

// IsBranch reports whether k opens a conditional branch.
func (k ElementKind) IsBranch() bool {
	return k == KindIfStatement || k == KindElseIfStatement
}

// Element is one row of the resolved table.
type Element struct {
	Line      int         `json:"line"`
	Kind      ElementKind `json:"type"`
	Name      string      `json:"name"`
	Condition string      `json:"condition"`
	Value     string      `json:"value"`
}

// Placeholder is the row produced for a construct the resolver does not model.
func Placeholder() Element {
	return Element{}
}

func (e Element) IsPlaceholder() bool {
	return e.Kind == KindPlaceholder
}

// elementJSON fixes the field order line, type, name, condition, value.
type elementJSON struct {
	Line      int         `json:"line"`
	Kind      ElementKind `json:"type"`
	Name      string      `json:"name"`
	Condition string      `json:"condition"`
	Value     string      `json:"value"`
}

// MarshalJSON writes a placeholder as the empty string "".
func (e Element) MarshalJSON() ([]byte, error) {
	if e.IsPlaceholder() {
		return []byte(`""`), nil
	}
	return marshalNoEscape(elementJSON(e))
}

func (e *Element) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte(`""`)) {
		*e = Placeholder()
		return nil
	}
	var v elementJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Element(v)
	return nil
}

// Table is the ordered output of one resolution.
type Table []Element

// MarshalJSON keeps an empty table as [] rather than null.
func (t Table) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return marshalNoEscape([]Element(t))
}

// marshalNoEscape keeps "<" and ">" readable in conditions such as "a < b".
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
