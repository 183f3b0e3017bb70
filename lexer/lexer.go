package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule declares one token kind. Patterns are tried in order and anchored at
// the current input position. Tokens of an Ignore rule are matched but not
// emitted (whitespace, comments).
type Rule struct {
	Kind     string
	Patterns []string
	Ignore   bool
}

type compiledRule struct {
	Rule
	patterns []*regexp.Regexp
}

// Lexer tokenizes input with an ordered rule list. At every position the
// first rule (in declaration order) with a matching pattern wins; there is no
// longest-match arbitration between rules.
type Lexer struct {
	rules []compiledRule
}

// New compiles rules into a Lexer.
func New(rules ...Rule) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("lexer: no rules")
	}
	l := &Lexer{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if r.Kind == "" {
			return nil, fmt.Errorf("lexer: rule without kind")
		}
		cr := compiledRule{Rule: r}
		for _, p := range r.Patterns {
			re, err := regexp.Compile(`^(?:` + p + `)`)
			if err != nil {
				return nil, fmt.Errorf("lexer: compile %s pattern %q: %w", r.Kind, p, err)
			}
			cr.patterns = append(cr.patterns, re)
		}
		if len(cr.patterns) == 0 {
			return nil, fmt.Errorf("lexer: rule %s has no patterns", r.Kind)
		}
		l.rules = append(l.rules, cr)
	}
	return l, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(rules ...Rule) *Lexer {
	l, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return l
}

// Kinds returns the declared token kinds in order.
func (l *Lexer) Kinds() []string {
	kinds := make([]string, len(l.rules))
	for i, r := range l.rules {
		kinds[i] = r.Kind
	}
	return kinds
}

// Rules returns the rules the lexer was built from.
func (l *Lexer) Rules() []Rule {
	rules := make([]Rule, len(l.rules))
	for i, r := range l.rules {
		rules[i] = r.Rule
	}
	return rules
}

// Tokenize splits input into tokens, dropping ignored kinds. A position no
// rule can match is a fatal *Error.
func (l *Lexer) Tokenize(input string) ([]Token, error) {
	var tokens []Token
	pos := Position{Offset: 0, Line: 1, Column: 1}

	for pos.Offset < len(input) {
		rest := input[pos.Offset:]
		rule, n := l.match(rest)
		if rule == nil {
			return tokens, &Error{Position: pos, Remaining: rest}
		}
		if n == 0 {
			return tokens, fmt.Errorf("lexer: rule %s matched empty text at %s, check the pattern", rule.Kind, pos)
		}

		value := rest[:n]
		if !rule.Ignore {
			tokens = append(tokens, Token{
				Kind:     rule.Kind,
				Value:    value,
				Span:     Span{Start: pos.Offset, End: pos.Offset + n},
				Position: pos,
			})
		}
		pos = advance(pos, value)
	}

	return tokens, nil
}

func (l *Lexer) match(rest string) (*compiledRule, int) {
	for i := range l.rules {
		r := &l.rules[i]
		for _, re := range r.patterns {
			if loc := re.FindStringIndex(rest); loc != nil {
				return r, loc[1]
			}
		}
	}
	return nil, 0
}

func advance(pos Position, text string) Position {
	pos.Offset += len(text)
	if nl := strings.Count(text, "\n"); nl > 0 {
		pos.Line += nl
		pos.Column = len(text) - strings.LastIndex(text, "\n")
	} else {
		pos.Column += len(text)
	}
	return pos
}

// Error reports input that no rule matches.
type Error struct {
	Position  Position
	Remaining string
}

func (e *Error) Error() string {
	snippet := e.Remaining
	if i := strings.IndexByte(snippet, '\n'); i >= 0 {
		snippet = snippet[:i]
	}
	if len(snippet) > 20 {
		snippet = snippet[:20] + "…"
	}
	return fmt.Sprintf("lexer: unexpected input at %s: %q", e.Position, snippet)
}
