// Package lexer turns source text into the token list consumed by the chain
// engine. Tokens are produced by an ordered list of regular-expression rules.
package lexer

import "fmt"

// Position is a human-facing location in the source text.
// Line and Column are 1-based; Column counts bytes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Token is a lexical token. Tokens are never mutated after tokenization.
type Token struct {
	Kind     string   `json:"kind"`
	Value    string   `json:"value"`
	Span     Span     `json:"span"`
	Position Position `json:"position"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Value)
}

// IsZeroWidth reports whether the token covers no input, which is the case
// for synthesized cursor anchors.
func (t Token) IsZeroWidth() bool {
	return t.Span.Start == t.Span.End
}
