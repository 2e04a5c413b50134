package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKeyword(t *testing.T) {
	kw, ok := LookupKeyword("sizeof")
	require.True(t, ok)
	assert.Equal(t, KwSizeof, kw)

	_, ok = LookupKeyword("notakeyword")
	assert.False(t, ok)
}

func TestLookupEscape(t *testing.T) {
	cases := []struct {
		in   byte
		want byte
	}{
		{'n', '\n'}, {'t', '\t'}, {'\\', '\\'}, {'\'', '\''}, {'"', '"'},
		{'a', '\a'}, {'b', '\b'}, {'f', '\f'}, {'r', '\r'}, {'v', '\v'}, {'?', '?'},
	}
	for _, c := range cases {
		got, ok := LookupEscape(c.in)
		require.True(t, ok, "escape \\%c should be recognized", c.in)
		assert.Equal(t, c.want, got)
	}

	_, ok := LookupEscape('z')
	assert.False(t, ok, "\\z is not a recognized escape")
}

func TestTokenCopyIsDeep(t *testing.T) {
	orig := NewInt(IntLiteral, "42", 3, 42)
	cp := orig.Copy()
	require.NotSame(t, orig, cp)
	assert.Equal(t, *orig, *cp)

	cp.Value.Int = 99
	assert.Equal(t, int32(42), orig.Value.Int, "mutating copy must not affect original")
}

func TestPlaceholderIsEmptyAndUnknown(t *testing.T) {
	ph := Placeholder(7)
	assert.Equal(t, Unknown, ph.Kind)
	assert.Equal(t, "", ph.Text)
	assert.Equal(t, 0, ph.Length)
	assert.Equal(t, 7, ph.Start)
}

func TestTokenEnd(t *testing.T) {
	tok := New(Plus, "+", 10)
	assert.Equal(t, 11, tok.End())
}

func TestIsTypeKeyword(t *testing.T) {
	assert.True(t, IsTypeKeyword(KwInt))
	assert.True(t, IsTypeKeyword(KwStruct))
	assert.False(t, IsTypeKeyword(KwIf))
}

func TestKindIsTrivia(t *testing.T) {
	assert.True(t, Whitespace.IsTrivia())
	assert.True(t, LineComment.IsTrivia())
	assert.True(t, BlockComment.IsTrivia())
	assert.False(t, Identifier.IsTrivia())
}
