package parser

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-analyzer/pkg/analyzer/ast"
	"code-analyzer/pkg/analyzer/lang"
)

const binarySearch = `function binarySearch(X, V, n){
    let low, high, mid;
    low = 0;
    high = n - 1;
    while (low <= high){
        mid = (low + high)/2;
        if(X < V[mid]){
            high = mid - 1;
        }
        else if(X > V[mid]){
            low = mid + 1;
        }
        else{
            return mid;
        }
    }
    return -1;
}`

func parse(t *testing.T, language lang.Language, src string) *ast.Program {
	t.Helper()
	program, err := ParseSource(context.Background(), language, []byte(src))
	require.NoError(t, err)
	require.NotNil(t, program)
	return program
}

func TestParser_FunctionDeclaration(t *testing.T) {
	program := parse(t, lang.JavaScript, binarySearch)
	require.Len(t, program.Body, 1)

	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "got %T", program.Body[0])
	assert.Equal(t, "binarySearch", fn.ID.Name)
	assert.Equal(t, 1, ast.Line(fn))
	require.Len(t, fn.Params, 3)
	assert.Equal(t, "n", fn.Params[2].(*ast.Identifier).Name)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Body, 5)

	decl, ok := fn.Body.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "let", decl.Kind)
	require.Len(t, decl.Declarations, 3)
	assert.Equal(t, 2, ast.Line(decl.Declarations[1]))

	loop, ok := fn.Body.Body[3].(*ast.WhileStatement)
	require.True(t, ok)
	assert.Equal(t, 5, ast.Line(loop))
	test, ok := loop.Test.(*ast.BinaryExpression)
	require.True(t, ok, "if/while parentheses are unwrapped, got %T", loop.Test)
	assert.Equal(t, "<=", test.Operator)

	body := loop.Body.(*ast.BlockStatement)
	mid := body.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	division := mid.Right.(*ast.BinaryExpression)
	assert.Equal(t, "/", division.Operator)
	_, grouped := division.Left.(*ast.ParenthesizedExpression)
	assert.True(t, grouped)

	branch := body.Body[1].(*ast.IfStatement)
	assert.Equal(t, 7, ast.Line(branch))
	elseIf, ok := branch.Alternate.(*ast.IfStatement)
	require.True(t, ok, "got %T", branch.Alternate)
	assert.Equal(t, 10, ast.Line(elseIf))
	_, ok = elseIf.Alternate.(*ast.BlockStatement)
	assert.True(t, ok)
	member := branch.Test.(*ast.BinaryExpression).Right.(*ast.MemberExpression)
	assert.True(t, member.Computed)

	ret := fn.Body.Body[4].(*ast.ReturnStatement)
	unary, ok := ret.Argument.(*ast.UnaryExpression)
	require.True(t, ok, "got %T", ret.Argument)
	assert.Equal(t, "-", unary.Operator)
}

func TestParser_Loops(t *testing.T) {
	t.Run("for with declaration", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "for (let i = 0; i < 5; i++) { x = i; }")
		loop, ok := program.Body[0].(*ast.ForStatement)
		require.True(t, ok)
		_, ok = loop.Init.(*ast.VariableDeclaration)
		assert.True(t, ok, "got %T", loop.Init)
		assert.NotNil(t, loop.Test)
		update, ok := loop.Update.(*ast.UpdateExpression)
		require.True(t, ok)
		assert.False(t, update.Prefix)
	})

	t.Run("for with expression init", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "for (i = 0; i <= 5; ++i) {}")
		loop := program.Body[0].(*ast.ForStatement)
		_, ok := loop.Init.(*ast.AssignmentExpression)
		assert.True(t, ok, "got %T", loop.Init)
		assert.True(t, loop.Update.(*ast.UpdateExpression).Prefix)
	})

	t.Run("empty for", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "for (;;) {}")
		loop := program.Body[0].(*ast.ForStatement)
		assert.Nil(t, loop.Init)
		assert.Nil(t, loop.Test)
		assert.Nil(t, loop.Update)
	})

	t.Run("for of", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "for (const car of cars) { x = car; }")
		loop, ok := program.Body[0].(*ast.ForInStatement)
		require.True(t, ok)
		assert.True(t, loop.Of)
		assert.Equal(t, ast.NodeForOfStatement, loop.NodeType())
		assert.Equal(t, "const", loop.Kind)
	})

	t.Run("for in", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "for (x in low) {}")
		loop := program.Body[0].(*ast.ForInStatement)
		assert.False(t, loop.Of)
		assert.Equal(t, "x", loop.Left.(*ast.Identifier).Name)
	})

	t.Run("do while", func(t *testing.T) {
		program := parse(t, lang.JavaScript, "\ndo {\n  i = i + 1;\n} while (i < 5);")
		loop, ok := program.Body[0].(*ast.DoWhileStatement)
		require.True(t, ok)
		assert.Equal(t, 2, ast.Line(loop))
		_, ok = loop.Test.(*ast.BinaryExpression)
		assert.True(t, ok)
	})
}

func TestParser_Literals(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		kind ast.LiteralKind
		want string
	}{
		{name: "empty string", src: "x = '';", kind: ast.LiteralString, want: ""},
		{name: "double quoted", src: `x = "abc";`, kind: ast.LiteralString, want: "abc"},
		{name: "escapes", src: `x = 'a\nb\x41\u{42}';`, kind: ast.LiteralString, want: "a\nbAB"},
		{name: "surrogate pair", src: `x = "\uD83D\uDE00";`, kind: ast.LiteralString, want: "😀"},
		{name: "code point escape", src: `x = 'a\u{1F600}b';`, kind: ast.LiteralString, want: "a😀b"},
		{name: "lone surrogate", src: `x = "\uD83Dz";`, kind: ast.LiteralString, want: "\uFFFDz"},
		{name: "number", src: "x = 3.5;", kind: ast.LiteralNumber, want: "3.5"},
		{name: "boolean", src: "x = true;", kind: ast.LiteralBoolean, want: "true"},
		{name: "null", src: "x = null;", kind: ast.LiteralNull, want: "null"},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			program := parse(t, lang.JavaScript, tt.src)
			assignment := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
			literal, ok := assignment.Right.(*ast.Literal)
			require.True(t, ok, "got %T", assignment.Right)
			assert.Equal(t, tt.kind, literal.Kind)
			assert.Equal(t, tt.want, literal.Value)
		})
	}
}

func TestParser_Unsupported(t *testing.T) {
	program := parse(t, lang.JavaScript, "class A {}\nf();")
	require.Len(t, program.Body, 2)

	class, ok := program.Body[0].(*ast.UnsupportedStatement)
	require.True(t, ok, "got %T", program.Body[0])
	assert.Equal(t, "class_declaration", class.Kind)

	call, ok := program.Body[1].(*ast.ExpressionStatement).Expression.(*ast.UnsupportedExpression)
	require.True(t, ok)
	assert.Equal(t, "call_expression", call.Kind)
	assert.Equal(t, 2, ast.Line(call))
}

func TestParser_EmptyProgram(t *testing.T) {
	program := parse(t, lang.JavaScript, "  // nothing here\n")
	assert.Empty(t, program.Body)
}

func TestParser_TypeScript(t *testing.T) {
	program := parse(t, lang.TypeScript, "export function add(a: number, b = 2): number {\n  return a as number;\n}")
	fn, ok := program.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok, "got %T", program.Body[0])
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].(*ast.Identifier).Name)
	pattern, ok := fn.Params[1].(*ast.AssignmentPattern)
	require.True(t, ok, "got %T", fn.Params[1])
	assert.Equal(t, "b", pattern.Left.(*ast.Identifier).Name)

	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	assert.Equal(t, "a", ret.Argument.(*ast.Identifier).Name)
}

func TestParser_SyntaxError(t *testing.T) {
	testCases := []string{
		"function (",
		"let = ;",
		"while (x {",
	}
	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			_, err := ParseSource(context.Background(), lang.JavaScript, []byte(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))

			var serr *SyntaxError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, 1, serr.Line)
			assert.GreaterOrEqual(t, serr.Column, 1)
		})
	}
}

func TestTruncateNear(t *testing.T) {
	short := "while (x {"
	assert.Equal(t, short, truncateNear(short))

	ascii := strings.Repeat("a", maxNearLength+5)
	assert.Equal(t, strings.Repeat("a", maxNearLength), truncateNear(ascii))

	// 第 maxNearLength 个字节落在 é 中间
	multi := "@@ " + strings.Repeat("é", maxNearLength)
	got := truncateNear(multi)
	assert.True(t, utf8.ValidString(got), "%q", got)
	assert.LessOrEqual(t, len(got), maxNearLength)
	assert.Equal(t, "@@ "+strings.Repeat("é", (maxNearLength-3)/2), got)
}

func TestParser_SyntaxErrorNearIsValidUTF8(t *testing.T) {
	_, err := ParseSource(context.Background(), lang.JavaScript, []byte("x = @@ "+strings.Repeat("é", 30)+";"))
	require.Error(t, err)

	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.True(t, utf8.ValidString(serr.Near), "%q", serr.Near)
	assert.LessOrEqual(t, len(serr.Near), maxNearLength)
}

func TestParser_ContextCanceled(t *testing.T) {
	p, err := New(lang.JavaScript)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Parse(ctx, []byte("x = 1;"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParser_Reuse(t *testing.T) {
	p, err := New(lang.JavaScript)
	require.NoError(t, err)
	defer p.Close()
	assert.Equal(t, lang.JavaScript, p.Language())

	for i := 0; i < 3; i++ {
		program, err := p.Parse(context.Background(), []byte("return x;"))
		require.NoError(t, err)
		require.Len(t, program.Body, 1)
	}
}

func TestNew_UnsupportedLanguage(t *testing.T) {
	_, err := New(lang.Language("cobol"))
	assert.ErrorIs(t, err, lang.ErrLanguageParserNotFound)
}
