package parser

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"code-analyzer/pkg/analyzer/ast"
	"code-analyzer/pkg/analyzer/lang"
)

// ErrSyntax is matched by every *SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the first erroneous or missing node of a parse.
type SyntaxError struct {
	Line int
	// Column is 1-based and counts bytes from the start of the line.
	Column int
	// Near holds at most maxNearLength bytes of the offending text, cut on a
	// rune boundary.
	Near    string
	Missing bool
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("syntax error: line %d, column %d: missing %s", e.Line, e.Column, e.Near)
	}
	if e.Near == "" {
		return fmt.Sprintf("syntax error: line %d, column %d: unexpected end of input", e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error: line %d, column %d: unexpected %q", e.Line, e.Column, e.Near)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

const maxNearLength = 24

// Parser turns source text into an ast.Program. It wraps a tree-sitter parser
// and is not safe for concurrent use.
type Parser struct {
	language lang.Language
	parser   *sitter.Parser
}

// New creates a parser for language.
func New(language lang.Language) (*Parser, error) {
	tp, err := lang.GetSitterParserByLanguage(language)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(tp.SitterLanguage()); err != nil {
		p.Close()
		return nil, fmt.Errorf("parser: set language %s: %w", language, err)
	}
	return &Parser{language: language, parser: p}, nil
}

func (p *Parser) Language() lang.Language {
	return p.language
}

// Close releases the tree-sitter parser.
func (p *Parser) Close() {
	if p == nil || p.parser == nil {
		return
	}
	p.parser.Close()
	p.parser = nil
}

// Parse parses source. Malformed input yields a *SyntaxError; constructs the
// AST does not model come back as Unsupported nodes, not errors.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ast.Program, error) {
	if p == nil || p.parser == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree := p.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser: failed to parse %s source", p.language)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Kind() != "program" {
		return nil, fmt.Errorf("parser: unexpected root node")
	}
	if root.HasError() {
		return nil, syntaxErrorFrom(root, source)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &builder{source: source}
	return b.program(root), nil
}

// ParseSource parses with a parser created for this call only, so it may be
// used from many goroutines at once.
func ParseSource(ctx context.Context, language lang.Language, source []byte) (*ast.Program, error) {
	p, err := New(language)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Parse(ctx, source)
}

func syntaxErrorFrom(root *sitter.Node, source []byte) error {
	node := firstErrorNode(root)
	if node == nil {
		// HasError 为 true 但没找到具体节点
		return &SyntaxError{Line: 1, Column: 1}
	}
	start := node.StartPosition()
	serr := &SyntaxError{
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
	}
	if node.IsMissing() {
		serr.Missing = true
		serr.Near = node.Kind()
		return serr
	}
	serr.Near = truncateNear(sliceContent(node, source))
	return serr
}

func truncateNear(near string) string {
	if len(near) <= maxNearLength {
		return near
	}
	cut := maxNearLength
	for cut > 0 && !utf8.RuneStart(near[cut]) {
		cut--
	}
	return near[:cut]
}

// firstErrorNode returns the first ERROR or MISSING node in source order.
func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}
