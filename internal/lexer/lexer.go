// Package lexer converts C-like source text into a token stream,
// recording diagnostics for malformed literals and unrecognized input.
// The recognizer dispatch and byte-cursor discipline are grounded on the
// teacher's lang/ylex/lexer.go peek/peekN/advance pattern, generalized
// from that file's line-oriented token emission to span-based tokens.
package lexer

import (
	"strings"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/diag"
	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

// ops3, ops2, ops1 are the fixed operator/punctuation tables, tried in
// that order so the greedy longest-match rule of spec.md §4.4 falls out
// naturally: a 3-byte lookup that misses falls through to 2-byte, then
// 1-byte.
var ops3 = map[string]token.Kind{
	"<<=": token.ShlEqual,
	">>=": token.ShrEqual,
}

var ops2 = map[string]token.Kind{
	"++": token.PlusPlus, "--": token.MinusMinus,
	"+=": token.PlusEqual, "-=": token.MinusEqual, "*=": token.StarEqual,
	"/=": token.SlashEqual, "%=": token.PercentEqual,
	"&=": token.AndEqual, "|=": token.OrEqual, "^=": token.XorEqual,
	"==": token.EqualEqual, "!=": token.NotEqual,
	"<=": token.LessEqual, ">=": token.GreaterEqual,
	"&&": token.AndAnd, "||": token.OrOr,
	"<<": token.Shl, ">>": token.Shr,
	"->": token.Arrow,
}

var ops1 = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'=': token.Equal, '<': token.Less, '>': token.Greater, '!': token.Bang,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '~': token.Tilde,
	'(': token.LParen, ')': token.RParen, '[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
	',': token.Comma, ';': token.Semi, ':': token.Colon, '.': token.Dot, '?': token.Question,
}

// Lexer scans source bytes into tokens. pos is a byte offset cursor;
// src is always terminator-augmented with a trailing NUL so peek never
// needs a bounds check.
type Lexer struct {
	src   []byte
	pos   int
	diags *diag.List
}

// Lex runs the full recognizer loop over source and returns the token
// stream (always ending in EOF) together with any lex diagnostics. A
// non-empty diagnostic list does not prevent the token list from being
// returned in full (spec.md §4.4).
func Lex(source []byte) ([]*token.Token, *diag.List) {
	lx := &Lexer{
		src:   append(append([]byte{}, source...), 0),
		diags: &diag.List{},
	}
	var tokens []*token.Token
	for {
		tok := lx.next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, lx.diags
}

func (l *Lexer) peek(n int) byte {
	p := l.pos + n
	if p < 0 || p >= len(l.src) {
		return 0
	}
	return l.src[p]
}

func (l *Lexer) advance(n int) {
	l.pos += n
	if l.pos > len(l.src) {
		l.pos = len(l.src)
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOctalDigit(c byte) bool { return c >= '0' && c <= '7' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int64 {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0')
	case c >= 'a' && c <= 'f':
		return int64(c-'a') + 10
	default:
		return int64(c-'A') + 10
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// next recognizes and returns exactly one token, advancing the cursor.
func (l *Lexer) next() *token.Token {
	start := l.pos
	c := l.peek(0)

	if c == 0 {
		return token.New(token.EOF, "", start)
	}

	if tok, ok := l.matchOperator(); ok {
		return tok
	}

	switch {
	case isDigit(c):
		return l.scanNumber()
	case c == '\'':
		return l.scanChar()
	case c == '"':
		return l.scanString()
	case isLetter(c):
		return l.scanIdentifier()
	case isSpace(c):
		return l.scanWhitespace()
	case c == '/' && l.peek(1) == '/':
		return l.scanLineComment()
	case c == '/' && l.peek(1) == '*':
		return l.scanBlockComment()
	default:
		l.advance(1)
		text := string(l.src[start:l.pos])
		l.diags.Addf(diag.Lex, token.New(token.Unknown, text, start), "Unknown character %q", text)
		return token.New(token.Unknown, text, start)
	}
}

// matchOperator tries the fixed operator/punctuation set, longest match
// first. It yields (returns false) when the current prefix is "//" or
// "/*" so the comment recognizer can take over, per spec.md §4.4 step 1.
func (l *Lexer) matchOperator() (*token.Token, bool) {
	start := l.pos
	c0 := l.peek(0)
	if c0 == '/' && (l.peek(1) == '/' || l.peek(1) == '*') {
		return nil, false
	}

	if kind, ok := ops3[string([]byte{l.peek(0), l.peek(1), l.peek(2)})]; ok {
		l.advance(3)
		return token.New(kind, string(l.src[start:l.pos]), start), true
	}
	if kind, ok := ops2[string([]byte{l.peek(0), l.peek(1)})]; ok {
		l.advance(2)
		return token.New(kind, string(l.src[start:l.pos]), start), true
	}
	if kind, ok := ops1[c0]; ok {
		l.advance(1)
		return token.New(kind, string(l.src[start:l.pos]), start), true
	}
	return nil, false
}

// scanNumber recognizes integer, octal, hexadecimal, and floating-point
// literals. A leading '0' always starts the octal/hex branch (even a
// bare "0" is an octal literal of value 0, and does not continue into a
// float if followed by '.'), matching the original lexer's structure;
// only a non-zero-leading decimal integer can continue into a float.
func (l *Lexer) scanNumber() *token.Token {
	start := l.pos

	if l.peek(0) == '0' {
		l.advance(1)
		if l.peek(0) == 'x' || l.peek(0) == 'X' {
			l.advance(1)
			var v int64
			for isHexDigit(l.peek(0)) {
				v = v*16 + hexValue(l.peek(0))
				l.advance(1)
			}
			if isLetter(l.peek(0)) {
				l.advance(1)
				text := string(l.src[start:l.pos])
				tok := token.New(token.Unknown, text, start)
				l.diags.Add(diag.New(diag.Lex, "Invalid character in a hexadecimal number", tok))
				return tok
			}
			text := string(l.src[start:l.pos])
			return token.NewInt(token.HexLiteral, text, start, int32(v))
		}

		var v int64
		for isOctalDigit(l.peek(0)) {
			v = v*8 + int64(l.peek(0)-'0')
			l.advance(1)
		}
		if isDigit(l.peek(0)) {
			l.advance(1)
			text := string(l.src[start:l.pos])
			tok := token.New(token.Unknown, text, start)
			l.diags.Add(diag.New(diag.Lex, "Invalid digit in an octal number", tok))
			return tok
		}
		text := string(l.src[start:l.pos])
		return token.NewInt(token.OctalLiteral, text, start, int32(v))
	}

	var v int64
	for isDigit(l.peek(0)) {
		v = v*10 + int64(l.peek(0)-'0')
		l.advance(1)
	}
	if l.peek(0) != '.' {
		text := string(l.src[start:l.pos])
		return token.NewInt(token.IntLiteral, text, start, int32(v))
	}

	l.advance(1) // consume '.'
	var frac float64
	scale := 0.1
	for isDigit(l.peek(0)) {
		frac += float64(l.peek(0)-'0') * scale
		scale /= 10
		l.advance(1)
	}
	text := string(l.src[start:l.pos])
	return token.NewFloat(text, start, float64(v)+frac)
}

// scanChar recognizes a single character literal, decoding one escape
// sequence if present.
func (l *Lexer) scanChar() *token.Token {
	start := l.pos
	l.advance(1) // opening '

	escaped := l.peek(0) == '\\'
	if escaped {
		l.advance(1)
	}

	if l.peek(0) == 0 {
		text := string(l.src[start:l.pos])
		tok := token.New(token.Unknown, text, start)
		l.diags.Add(diag.New(diag.Lex, "The character wasn't closed!", tok))
		return tok
	}

	raw := l.peek(0)
	var value byte
	if escaped {
		if v, ok := token.LookupEscape(raw); ok {
			value = v
		} else {
			l.diags.Add(diag.New(diag.Lex, "Invalid escape string format.", nil))
			value = 0
		}
	} else {
		value = raw
	}
	l.advance(1)

	if l.peek(0) != '\'' {
		// Multi-character content: consume the extra byte and report
		// the same "wasn't closed" diagnostic the source uses. At end of
		// input there is no extra byte, and the NUL sentinel is left
		// unconsumed.
		if l.peek(0) != 0 {
			l.advance(1)
		}
		text := string(l.src[start:l.pos])
		tok := token.New(token.Unknown, text, start)
		l.diags.Add(diag.New(diag.Lex, "The character wasn't closed!", tok))
		return tok
	}
	l.advance(1) // closing '
	text := string(l.src[start:l.pos])
	return token.NewChar(text, start, value)
}

// scanString recognizes a string literal, consuming bytes verbatim
// until the closing quote or end-of-input.
func (l *Lexer) scanString() *token.Token {
	start := l.pos
	l.advance(1) // opening "
	var b strings.Builder
	for l.peek(0) != '"' && l.peek(0) != 0 {
		b.WriteByte(l.peek(0))
		l.advance(1)
	}
	if l.peek(0) == 0 {
		text := string(l.src[start:l.pos])
		tok := token.New(token.Unknown, text, start)
		l.diags.Add(diag.New(diag.Lex, "The string wasn't closed!", tok))
		return tok
	}
	l.advance(1) // closing "
	text := string(l.src[start:l.pos])
	return token.NewString(text, start, b.String())
}

// scanIdentifier recognizes an identifier or keyword.
func (l *Lexer) scanIdentifier() *token.Token {
	start := l.pos
	for isLetter(l.peek(0)) || isDigit(l.peek(0)) {
		l.advance(1)
	}
	text := string(l.src[start:l.pos])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.NewKeyword(text, start, kw)
	}
	return token.New(token.Identifier, text, start)
}

// scanWhitespace coalesces a run of adjacent whitespace into one token.
func (l *Lexer) scanWhitespace() *token.Token {
	start := l.pos
	for isSpace(l.peek(0)) {
		l.advance(1)
	}
	text := string(l.src[start:l.pos])
	return token.New(token.Whitespace, text, start)
}

// scanLineComment consumes from "//" through the end of the line,
// including the terminating '\n' (and any preceding '\r', which is
// simply part of the run consumed before the '\n' is reached) — per
// spec.md §9's portability note, termination depends only on '\n'.
func (l *Lexer) scanLineComment() *token.Token {
	start := l.pos
	l.advance(2) // "//"
	for l.peek(0) != '\n' && l.peek(0) != 0 {
		l.advance(1)
	}
	if l.peek(0) == '\n' {
		l.advance(1)
	}
	text := string(l.src[start:l.pos])
	return token.New(token.LineComment, text, start)
}

// scanBlockComment consumes from "/*" to the matching "*/", reporting a
// diagnostic if end-of-input is reached first.
func (l *Lexer) scanBlockComment() *token.Token {
	start := l.pos
	l.advance(2) // "/*"
	for !(l.peek(0) == '*' && l.peek(1) == '/') && l.peek(0) != 0 {
		l.advance(1)
	}
	if l.peek(0) == 0 {
		text := string(l.src[start:l.pos])
		tok := token.New(token.Unknown, text, start)
		l.diags.Add(diag.New(diag.Lex, "The multi-line comment was not closed!", tok))
		return tok
	}
	l.advance(2) // "*/"
	text := string(l.src[start:l.pos])
	return token.New(token.BlockComment, text, start)
}
