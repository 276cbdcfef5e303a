package analyzer

import (
	"context"
	"fmt"

	"code-analyzer/pkg/analyzer/ast"
	"code-analyzer/pkg/analyzer/lang"
	"code-analyzer/pkg/analyzer/parser"
	"code-analyzer/pkg/analyzer/resolver"
	"code-analyzer/pkg/analyzer/stats"
	"code-analyzer/pkg/analyzer/types"
	"code-analyzer/pkg/logger"
)

// DefaultLanguage is used when a caller passes an empty language.
const DefaultLanguage = lang.JavaScript

type Options struct {
	RenderInitializers bool
}

// Result is one resolved unit together with its summary and the constructs
// that degraded to placeholders or empty text.
type Result struct {
	Language    lang.Language         `json:"language"`
	Elements    types.Table           `json:"elements"`
	Summary     stats.Summary         `json:"summary"`
	Diagnostics []resolver.Diagnostic `json:"diagnostics,omitempty"`
}

// Analyzer parses source text and resolves it into an element table. It is
// safe for concurrent use: every call builds its own parser.
type Analyzer struct {
	logger logger.Logger
	opts   Options
}

func New(logger logger.Logger, opts Options) *Analyzer {
	return &Analyzer{logger: logger, opts: opts}
}

// ResolveCode parses code and returns its element table.
func (a *Analyzer) ResolveCode(ctx context.Context, code string, language lang.Language) (types.Table, error) {
	result, err := a.Analyze(ctx, code, language)
	if err != nil {
		return nil, err
	}
	return result.Elements, nil
}

// Analyze parses code and returns the table, its summary and diagnostics.
func (a *Analyzer) Analyze(ctx context.Context, code string, language lang.Language) (*Result, error) {
	if language == "" {
		language = DefaultLanguage
	}
	program, err := parser.ParseSource(ctx, language, []byte(code))
	if err != nil {
		return nil, fmt.Errorf("analyze %s source: %w", language, err)
	}

	result := &Result{Language: language}
	result.Elements = a.resolve(program, &result.Diagnostics)
	result.Summary = stats.Summarize(result.Elements)
	return result, nil
}

// ResolveNode resolves an already parsed node.
func (a *Analyzer) ResolveNode(node ast.Node) types.Table {
	var diagnostics []resolver.Diagnostic
	return a.resolve(node, &diagnostics)
}

func (a *Analyzer) resolve(node ast.Node, diagnostics *[]resolver.Diagnostic) types.Table {
	r := resolver.New(resolver.Options{
		RenderInitializers: a.opts.RenderInitializers,
		Diagnostics: func(d resolver.Diagnostic) {
			a.logger.Warn("resolve: %s", d)
			*diagnostics = append(*diagnostics, d)
		},
	})
	table := r.Resolve(node)
	if table == nil {
		table = types.Table{}
	}
	return table
}
