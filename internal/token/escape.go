package token

// escapes maps the character following a backslash to its decoded byte
// value, for the two-character escape sequences the lexer recognizes
// inside character and string literals.
var escapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'e':  0x1B,
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'?':  '?',
}

// LookupEscape returns the decoded byte for an escape sequence character
// (the character immediately after the backslash) and true if it is a
// recognized escape, or (0, false) if the sequence is unknown and should
// be rejected with a diagnostic.
func LookupEscape(c byte) (byte, bool) {
	v, ok := escapes[c]
	return v, ok
}
