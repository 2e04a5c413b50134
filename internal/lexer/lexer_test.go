package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

func kinds(tokens []*token.Token) []token.Kind {
	ks := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexIntegerLiteral(t *testing.T) {
	toks, diags := Lex([]byte("51"))
	require.False(t, diags.HasErrors())
	require.Equal(t, []token.Kind{token.IntLiteral, token.EOF}, kinds(toks))
	assert.Equal(t, int32(51), toks[0].Value.Int)
}

func TestLexOctalLiteral(t *testing.T) {
	toks, diags := Lex([]byte("010"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.OctalLiteral, toks[0].Kind)
	assert.Equal(t, int32(8), toks[0].Value.Int)
}

func TestLexOctalDoesNotContinueIntoFloat(t *testing.T) {
	// leading-zero numbers never continue into a float literal, even
	// when followed by '.' — they stop at the octal digits.
	toks, diags := Lex([]byte("0.5"))
	require.False(t, diags.HasErrors())
	require.Equal(t, []token.Kind{token.OctalLiteral, token.Dot, token.IntLiteral, token.EOF}, kinds(toks))
}

func TestLexOctalInvalidDigit(t *testing.T) {
	toks, diags := Lex([]byte("018"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid digit in an octal number", diags.Items()[0].Message)
	assert.Equal(t, token.Unknown, toks[0].Kind)
}

func TestLexHexLiteral(t *testing.T) {
	toks, diags := Lex([]byte("0x1F"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.HexLiteral, toks[0].Kind)
	assert.Equal(t, int32(31), toks[0].Value.Int)
}

func TestLexHexInvalidCharacter(t *testing.T) {
	toks, diags := Lex([]byte("0x1g"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "Invalid character in a hexadecimal number", diags.Items()[0].Message)
	assert.Equal(t, token.Unknown, toks[0].Kind)
}

func TestLexFloatLiteralWithNoFractionalDigits(t *testing.T) {
	toks, diags := Lex([]byte("1."))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.FloatLiteral, toks[0].Kind)
	assert.Equal(t, 1.0, toks[0].Value.Float)
}

func TestLexFloatLiteral(t *testing.T) {
	toks, diags := Lex([]byte("3.25"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.FloatLiteral, toks[0].Kind)
	assert.InDelta(t, 3.25, toks[0].Value.Float, 1e-9)
}

func TestLexCharLiteral(t *testing.T) {
	toks, diags := Lex([]byte("'a'"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.CharLiteral, toks[0].Kind)
	assert.Equal(t, byte('a'), toks[0].Value.Char)
}

func TestLexCharLiteralEscape(t *testing.T) {
	toks, diags := Lex([]byte(`'\n'`))
	require.False(t, diags.HasErrors())
	assert.Equal(t, byte('\n'), toks[0].Value.Char)
}

func TestLexCharLiteralUnterminated(t *testing.T) {
	toks, diags := Lex([]byte("'a"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "The character wasn't closed!", diags.Items()[0].Message)
	assert.Equal(t, token.Unknown, toks[0].Kind)
}

func TestLexCharLiteralMultiCharUsesSameDiagnostic(t *testing.T) {
	toks, diags := Lex([]byte("'ab'"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "The character wasn't closed!", diags.Items()[0].Message)
	assert.Equal(t, token.Unknown, toks[0].Kind)
}

func TestLexStringLiteral(t *testing.T) {
	toks, diags := Lex([]byte(`"hello"`))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Value.Str)
}

func TestLexStringLiteralUnterminated(t *testing.T) {
	toks, diags := Lex([]byte(`"abc`))
	require.Len(t, diags.Items(), 1)
	assert.Equal(t, "The string wasn't closed!", diags.Items()[0].Message)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Unknown, toks[0].Kind)
	assert.Equal(t, `"abc`, toks[0].Text)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestLexIdentifierAndKeyword(t *testing.T) {
	toks, diags := Lex([]byte("foo if"))
	require.False(t, diags.HasErrors())
	require.Equal(t, []token.Kind{token.Identifier, token.Whitespace, token.Keyword, token.EOF}, kinds(toks))
}

func TestLexLineCommentConsumesThroughNewline(t *testing.T) {
	toks, diags := Lex([]byte("// comment\nx"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.LineComment, toks[0].Kind)
	assert.Equal(t, "// comment\n", toks[0].Text)
	assert.Equal(t, token.Identifier, toks[1].Kind)
}

func TestLexBlockCommentClosed(t *testing.T) {
	toks, diags := Lex([]byte("/* hi */x"))
	require.False(t, diags.HasErrors())
	require.Equal(t, token.BlockComment, toks[0].Kind)
	assert.Equal(t, "/* hi */", toks[0].Text)
}

func TestLexBlockCommentUnterminated(t *testing.T) {
	toks, diags := Lex([]byte("/* hi"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, "The multi-line comment was not closed!", diags.Items()[0].Message)
	assert.Equal(t, token.Unknown, toks[0].Kind)
}

func TestLexOperatorsGreedyLongestMatch(t *testing.T) {
	toks, diags := Lex([]byte("<<= << < <="))
	require.False(t, diags.HasErrors())
	require.Equal(t, []token.Kind{
		token.ShlEqual, token.Whitespace,
		token.Shl, token.Whitespace,
		token.Less, token.Whitespace,
		token.LessEqual, token.EOF,
	}, kinds(toks))
}

func TestLexSlashVersusCommentYield(t *testing.T) {
	toks, diags := Lex([]byte("a / b // c\n"))
	require.False(t, diags.HasErrors())
	require.Equal(t, []token.Kind{
		token.Identifier, token.Whitespace,
		token.Slash, token.Whitespace,
		token.Identifier, token.Whitespace,
		token.LineComment, token.EOF,
	}, kinds(toks))
}

func TestLexUnknownByteProducesDiagnostic(t *testing.T) {
	toks, diags := Lex([]byte("$"))
	require.True(t, diags.HasErrors())
	assert.Equal(t, token.Unknown, toks[0].Kind)
	assert.Equal(t, token.EOF, toks[1].Kind)
}

func TestLexTokenTextConcatenationEqualsSource(t *testing.T) {
	src := "int x = 51 + 0x1F - 010; // trailing\n"
	toks, _ := Lex([]byte(src))
	var out string
	for _, tok := range toks {
		out += tok.Text
	}
	assert.Equal(t, src, out)
}

func TestLexTokenSpansAreCorrect(t *testing.T) {
	src := "ab cd"
	toks, diags := Lex([]byte(src))
	require.False(t, diags.HasErrors())
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		assert.Equal(t, tok.Text, src[tok.Start:tok.End()])
	}
}

func TestLexAlwaysEndsWithEOF(t *testing.T) {
	toks, _ := Lex([]byte(""))
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}
