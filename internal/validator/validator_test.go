package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/ast"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/diag"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/lexer"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/parser"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/symtab"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

func validateExpr(t *testing.T, src string) (*ast.Node, *diag.List) {
	t.Helper()
	toks, lexDiags := lexer.Lex([]byte(src))
	require.False(t, lexDiags.HasErrors())
	prog, parseDiags, err := parser.Parse(toks)
	require.NoError(t, err)
	require.False(t, parseDiags.HasErrors())

	validated, diags := Validate(prog, symtab.New(), false)
	fn := validated.Children[0]
	body := fn.Children[len(fn.Children)-1]
	stmt := body.Children[0]
	return stmt.Children[0], diags
}

func wrapExprInFn(expr string) string {
	return "int f() { " + expr + "; }"
}

func TestValidateNumericKindsFoldAcrossBasesAndOperators(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("0x1F + 010 + 12"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.Literal, expr.Kind)
	assert.Equal(t, int32(51), expr.Tokens[0].Value.Int)
}

func TestValidateShortCircuitLeavesCallIntact(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("0 && f()"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.LogicalAndExpr, expr.Kind)
	require.Len(t, expr.Children, 2)
	assert.Equal(t, ast.Literal, expr.Children[0].Kind)
	assert.Equal(t, ast.FnCall, expr.Children[1].Kind)
}

func TestValidateDivisionByZero(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("10 / (2 - 2)"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Division by zero.", diags.Items()[0].Message)
	assert.NotEqual(t, ast.Literal, expr.Kind)
}

func TestValidateConditionalFoldDropsUntakenBranch(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("1 ? 2+3 : 4"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.Literal, expr.Kind)
	assert.Equal(t, int32(5), expr.Tokens[0].Value.Int)
}

func TestValidateBitwiseOnFloatIsDiagnosed(t *testing.T) {
	_, diags := validateExpr(t, wrapExprInFn("1.5 | 2"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid operand to binary | ('float')", diags.Items()[0].Message)
}

func TestValidateBitwiseOnStringIsDiagnosed(t *testing.T) {
	_, diags := validateExpr(t, wrapExprInFn(`"x" & 1`))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid operand to binary & ('string')", diags.Items()[0].Message)
}

func TestValidateModuloOnFloatIsDiagnosed(t *testing.T) {
	_, diags := validateExpr(t, wrapExprInFn("1.5 % 2"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid operand to binary % ('float')", diags.Items()[0].Message)
}

func TestValidateUnaryTildeOnFloatIsDiagnosed(t *testing.T) {
	_, diags := validateExpr(t, wrapExprInFn("~1.5"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid operand to unary ~ ('float')", diags.Items()[0].Message)
}

func TestValidateUnaryMinusOnStringIsDiagnosed(t *testing.T) {
	_, diags := validateExpr(t, wrapExprInFn(`-"x"`))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid operand to unary - ('string')", diags.Items()[0].Message)
}

func TestValidateRelationalLeadingPrefixOnly(t *testing.T) {
	// 1 < 2 is a constant prefix; the trailing `< f()` cannot be folded
	// and must be left intact per the non-associative partial-fold rule.
	expr, diags := validateExpr(t, wrapExprInFn("1 < 2 < f()"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.RelationalExpr, expr.Kind)
	require.Len(t, expr.Children, 2)
	assert.Equal(t, ast.Literal, expr.Children[0].Kind)
	assert.Equal(t, ast.FnCall, expr.Children[1].Kind)
}

func TestValidateSizeofType(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("sizeof(int)"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.Literal, expr.Kind)
	assert.Equal(t, int32(4), expr.Tokens[0].Value.Int)
}

func TestValidateSizeofExprChar(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("sizeof('a')"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.Literal, expr.Kind)
	assert.Equal(t, int32(1), expr.Tokens[0].Value.Int)
}

func TestValidateSizeofStructEndToEnd(t *testing.T) {
	src := "struct Point { int x; int y; }; int f() { sizeof(struct Point); }"
	toks, lexDiags := lexer.Lex([]byte(src))
	require.False(t, lexDiags.HasErrors())
	prog, parseDiags, err := parser.Parse(toks)
	require.NoError(t, err)
	require.False(t, parseDiags.HasErrors())

	validated, diags := Validate(prog, symtab.New(), false)
	require.False(t, diags.HasErrors())

	fn := validated.Children[1]
	body := fn.Children[len(fn.Children)-1]
	expr := body.Children[0].Children[0]
	require.Equal(t, ast.Literal, expr.Kind)
	assert.Equal(t, int32(8), expr.Tokens[0].Value.Int)
}

func TestValidateCastIsPassthroughAndDoesNotNarrow(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("(char)300"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.TypeCastExpr, expr.Kind)
	require.Len(t, expr.Children, 1)
	assert.Equal(t, ast.Literal, expr.Children[0].Kind)
	assert.Equal(t, int32(300), expr.Children[0].Tokens[0].Value.Int)
}

func TestValidateIdempotent(t *testing.T) {
	toks, _ := lexer.Lex([]byte(wrapExprInFn("0x1F + 010 + 12")))
	prog, _, err := parser.Parse(toks)
	require.NoError(t, err)

	once, _ := Validate(prog, symtab.New(), false)
	twice, _ := Validate(once, symtab.New(), false)

	e1 := once.Children[0].Children[len(once.Children[0].Children)-1].Children[0].Children[0]
	e2 := twice.Children[0].Children[len(twice.Children[0].Children)-1].Children[0].Children[0]
	assert.Equal(t, e1.Kind, e2.Kind)
	assert.Equal(t, e1.Tokens[0].Value.Int, e2.Tokens[0].Value.Int)
}

func TestValidateDeepCopiesAndDoesNotAliasInput(t *testing.T) {
	toks, _ := lexer.Lex([]byte(wrapExprInFn("1 + 2")))
	prog, _, err := parser.Parse(toks)
	require.NoError(t, err)

	validated, _ := Validate(prog, symtab.New(), false)
	assert.NotSame(t, prog, validated)
}

func TestValidateParallelMatchesSequentialResult(t *testing.T) {
	src := "int a = 1 + 2; int b = 3 * 4;"
	toksSeq, _ := lexer.Lex([]byte(src))
	progSeq, _, err := parser.Parse(toksSeq)
	require.NoError(t, err)
	seq, seqDiags := Validate(progSeq, symtab.New(), false)

	toksPar, _ := lexer.Lex([]byte(src))
	progPar, _, err := parser.Parse(toksPar)
	require.NoError(t, err)
	par, parDiags := Validate(progPar, symtab.New(), true)

	require.False(t, seqDiags.HasErrors())
	require.False(t, parDiags.HasErrors())
	for i := range seq.Children {
		a := seq.Children[i].Children[1]
		b := par.Children[i].Children[1]
		assert.Equal(t, a.Tokens[0].Value.Int, b.Tokens[0].Value.Int)
	}
}

func TestValidatePreservesNonConstantLeafOrder(t *testing.T) {
	expr, diags := validateExpr(t, wrapExprInFn("a + 1 + b + 2 + c"))
	require.False(t, diags.HasErrors())
	require.Equal(t, ast.AdditiveExpr, expr.Kind)

	var leaves []string
	for _, c := range expr.Children {
		if c.Kind == ast.IdentifierExpr {
			leaves = append(leaves, c.Tokens[0].Text)
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, leaves)
}

func TestUnknownTokenPlaceholder(t *testing.T) {
	assert.Equal(t, token.Unknown, token.Placeholder(0).Kind)
}
