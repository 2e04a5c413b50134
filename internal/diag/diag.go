// Package diag holds the diagnostic record shared by the lexer, parser,
// and validator. Each stage owns its own list and never mutates another
// stage's diagnostics (spec.md §3 invariant 5).
package diag

import (
	"fmt"
	"strings"

	"github.com/gmofishsauce/wut4/lang/cfront/internal/token"
)

// Kind identifies which stage produced a diagnostic.
type Kind int

const (
	Lex Kind = iota
	Parse
	Validate
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "Lex"
	case Parse:
		return "Parse"
	case Validate:
		return "Validate"
	default:
		return "Unknown"
	}
}

// Diagnostic is a kinded error record referencing an optional token span.
type Diagnostic struct {
	Kind    Kind
	Message string
	Token   *token.Token
}

// New constructs a diagnostic, optionally pinned to a token.
func New(kind Kind, message string, tok *token.Token) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Token: tok}
}

// String formats the diagnostic for single-line human-readable output:
// the message, and when a token is present, the offending token's kind,
// text, and span. Parse diagnostics additionally print the token kind
// (spec.md §4.3), which is already included unconditionally here since
// every diagnostic that carries a token benefits from seeing its kind.
func (d *Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Message)
	if d.Token != nil {
		fmt.Fprintf(&b, " (%s %q at [%d, %d))", d.Token.Kind, d.Token.Text, d.Token.Start, d.Token.End())
	}
	return b.String()
}

// List is an append-only collection of diagnostics produced by one
// stage. A Go slice already amortizes growth by doubling, so List is a
// thin wrapper rather than a hand-rolled growable array (spec.md §4.3).
type List struct {
	items []*Diagnostic
}

// Add appends a diagnostic to the list.
func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

// Addf is a convenience that builds a diagnostic inline.
func (l *List) Addf(kind Kind, tok *token.Token, format string, args ...interface{}) {
	l.Add(New(kind, fmt.Sprintf(format, args...), tok))
}

// Items returns the accumulated diagnostics in the order they were added.
func (l *List) Items() []*Diagnostic {
	return l.items
}

// Len returns the number of accumulated diagnostics.
func (l *List) Len() int {
	return len(l.items)
}

// HasErrors reports whether any diagnostics were recorded.
func (l *List) HasErrors() bool {
	return len(l.items) > 0
}

// Extend appends another list's items in order, without mutating other.
func (l *List) Extend(other *List) {
	if other == nil {
		return
	}
	l.items = append(l.items, other.items...)
}
