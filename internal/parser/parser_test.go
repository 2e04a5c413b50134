package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/ast"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks, lexDiags := lexer.Lex([]byte(src))
	require.False(t, lexDiags.HasErrors(), "unexpected lex diagnostics: %v", lexDiags.Items())
	prog, parseDiags, err := Parse(toks)
	require.NoError(t, err)
	require.False(t, parseDiags.HasErrors(), "unexpected parse diagnostics: %v", parseDiags.Items())
	return prog
}

func firstGlobalExpr(prog *ast.Node) *ast.Node {
	// prog.Children[0] is the FnDef built by wrapExprInFn; its last
	// child is the body, whose first statement is an ExprStmt wrapping
	// the expression under test.
	fn := prog.Children[0]
	body := fn.Children[len(fn.Children)-1]
	stmt := body.Children[0]
	return stmt.Children[0]
}

func wrapExprInFn(expr string) string {
	return "int f() { " + expr + "; }"
}

func TestParseNoWhitespaceOrCommentInTree(t *testing.T) {
	prog := parseSource(t, "int f() { return 1 /* c */ + 2; // tail\n}")
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(prog)
	// No panics/assertions needed beyond: tokens never carry trivia kinds.
	var checkTokens func(n *ast.Node)
	checkTokens = func(n *ast.Node) {
		for _, tk := range n.Tokens {
			assert.False(t, tk.Kind.IsTrivia())
		}
		for _, c := range n.Children {
			checkTokens(c)
		}
	}
	checkTokens(prog)
}

func TestParseCastVsParenDisambiguation(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("(int)x"))
	expr := firstGlobalExpr(prog)
	assert.Equal(t, ast.TypeCastExpr, expr.Kind)

	prog2 := parseSource(t, wrapExprInFn("(x)"))
	expr2 := firstGlobalExpr(prog2)
	assert.Equal(t, ast.ParenExpr, expr2.Kind)
}

func TestParseBinaryPrecedenceGrouping(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("1 + 2 * 3"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.AdditiveExpr, expr.Kind)
	require.Len(t, expr.Children, 2)
	assert.Equal(t, ast.Literal, expr.Children[0].Kind)
	assert.Equal(t, ast.MultiplicativeExpr, expr.Children[1].Kind)
}

func TestParseSameLevelRunCollectsIntoOneNode(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("1 + 2 + 3"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.AdditiveExpr, expr.Kind)
	require.Len(t, expr.Children, 3)
	require.Len(t, expr.Tokens, 2)
}

func TestParseAssignmentRecognizedByLookahead(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("x = 1 + 2"))
	expr := firstGlobalExpr(prog)
	assert.Equal(t, ast.AssignmentExpr, expr.Kind)
}

func TestParseFunctionCallRecognizedByLookahead(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("f(1, 2)"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.FnCall, expr.Kind)
	args := expr.Children[1]
	assert.Equal(t, ast.FnCallArgList, args.Kind)
	assert.Len(t, args.Children, 2)
}

func TestParseConditionalExpr(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("1 ? 2 : 3"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.ConditionalExpr, expr.Kind)
	require.Len(t, expr.Children, 3)
}

func TestParseUnaryRightAssociative(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("- - 1"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.UnaryExpr, expr.Kind)
	require.Equal(t, ast.UnaryExpr, expr.Children[0].Kind)
}

func TestParseSizeofType(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("sizeof(int)"))
	expr := firstGlobalExpr(prog)
	require.Equal(t, ast.UnaryExpr, expr.Kind)
	assert.Empty(t, expr.Children)
	assert.Len(t, expr.Tokens, 4) // sizeof ( int )
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog := parseSource(t, "int x = 5;")
	require.Len(t, prog.Children, 1)
	assert.Equal(t, ast.GlobalVarDecl, prog.Children[0].Kind)
}

func TestParseFnDeclWithoutBody(t *testing.T) {
	prog := parseSource(t, "int f(int a, int b);")
	require.Len(t, prog.Children, 1)
	assert.Equal(t, ast.FnDecl, prog.Children[0].Kind)
}

func TestParseIfElseStmt(t *testing.T) {
	prog := parseSource(t, "int f() { if (1) return 1; else return 2; }")
	fn := prog.Children[0]
	body := fn.Children[len(fn.Children)-1]
	stmt := body.Children[0]
	require.Equal(t, ast.IfStmt, stmt.Kind)
	require.Len(t, stmt.Children, 3)
}

func TestParseForStmtAllClauses(t *testing.T) {
	prog := parseSource(t, "int f() { for (int i = 0; i; i = i + 1) ; }")
	fn := prog.Children[0]
	body := fn.Children[len(fn.Children)-1]
	stmt := body.Children[0]
	require.Equal(t, ast.ForStmt, stmt.Kind)
	require.Len(t, stmt.Children, 4)
	assert.Equal(t, ast.LocalVarDecl, stmt.Children[0].Kind)
}

func TestParseStructDecl(t *testing.T) {
	prog := parseSource(t, "struct Point { int x; int y; };")
	require.Len(t, prog.Children, 1)
	require.Equal(t, ast.Struct, prog.Children[0].Kind)
	members := prog.Children[0].Children[0]
	assert.Equal(t, ast.MemberList, members.Kind)
	assert.Len(t, members.Children, 2)
}

func TestParsePostfixFieldAccess(t *testing.T) {
	prog := parseSource(t, wrapExprInFn("p.x"))
	expr := firstGlobalExpr(prog)
	assert.Equal(t, ast.BinaryExpr, expr.Kind)
}

func TestParseSyntheticPlaceholderOnMismatch(t *testing.T) {
	toks, lexDiags := lexer.Lex([]byte("int f( { }"))
	require.False(t, lexDiags.HasErrors())
	prog, diags, err := Parse(toks)
	require.NoError(t, err)
	require.True(t, diags.HasErrors())
	require.NotNil(t, prog)
}
