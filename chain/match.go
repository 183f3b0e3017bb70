package chain

import (
	"strings"

	"github.com/dhamidi/chainparse/lexer"
)

// MatchKind classifies a terminal for suggestion rendering.
type MatchKind string

const (
	MatchLiteral MatchKind = "literal"
	MatchTyped   MatchKind = "typed"
	// MatchLoose is the zero-width terminal behind Optional. It is never
	// reported as a suggestion.
	MatchLoose MatchKind = "loose"
)

// Matching describes what a terminal accepts: a literal value or a token kind.
type Matching struct {
	Kind  MatchKind `json:"kind"`
	Value string    `json:"value"`
}

func (m Matching) String() string {
	return string(m.Kind) + " " + m.Value
}

// Matcher is a predicate over a single token.
type Matcher interface {
	Match(tok lexer.Token) bool
	Matching() Matching
}

type literalMatcher struct {
	value string
}

func (m literalMatcher) Match(tok lexer.Token) bool {
	return strings.EqualFold(tok.Value, m.value)
}

func (m literalMatcher) Matching() Matching {
	return Matching{Kind: MatchLiteral, Value: m.value}
}

type typedMatcher struct {
	kind   string
	except map[string]bool
}

func newTypedMatcher(kind string, except []string) typedMatcher {
	m := typedMatcher{kind: kind}
	if len(except) > 0 {
		m.except = make(map[string]bool, len(except))
		for _, e := range except {
			m.except[strings.ToLower(e)] = true
		}
	}
	return m
}

func (m typedMatcher) Match(tok lexer.Token) bool {
	if tok.Kind != m.kind {
		return false
	}
	return !m.except[strings.ToLower(tok.Value)]
}

func (m typedMatcher) Matching() Matching {
	return Matching{Kind: MatchTyped, Value: m.kind}
}

type looseMatcher struct{}

func (looseMatcher) Match(lexer.Token) bool { return true }

func (looseMatcher) Matching() Matching {
	return Matching{Kind: MatchLoose, Value: "true"}
}

func isLoose(m Matcher) bool {
	_, ok := m.(looseMatcher)
	return ok
}

// matchToken runs m against the token under the scanner cursor. On success
// the token is returned and, unless peek is set, the cursor advances.
// A loose matcher succeeds without consuming anything, even at the end.
func matchToken(s *Scanner, m Matcher, peek bool) (lexer.Token, bool) {
	if isLoose(m) {
		return lexer.Token{}, true
	}
	tok, ok := s.Read()
	if !ok || !m.Match(tok) {
		return lexer.Token{}, false
	}
	if !peek {
		s.Advance()
	}
	return tok, true
}
