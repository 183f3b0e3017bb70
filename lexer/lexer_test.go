package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexer(t *testing.T) *Lexer {
	t.Helper()
	l, err := New(
		Rule{Kind: "whitespace", Patterns: []string{`\s+`}, Ignore: true},
		Rule{Kind: "comment", Patterns: []string{`--[^\n]*`}, Ignore: true},
		Rule{Kind: "number", Patterns: []string{`[0-9]+(?:\.[0-9]+)?`}},
		Rule{Kind: "word", Patterns: []string{`[a-zA-Z_][a-zA-Z0-9_]*`}},
		Rule{Kind: "special", Patterns: []string{`<=|>=|<>|!=`, `.`}},
	)
	require.NoError(t, err)
	return l
}

func TestTokenize(t *testing.T) {
	l := testLexer(t)

	tests := []struct {
		input  string
		kinds  []string
		values []string
	}{
		{"", nil, nil},
		{"a + b", []string{"word", "special", "word"}, []string{"a", "+", "b"}},
		{"x<=10", []string{"word", "special", "number"}, []string{"x", "<=", "10"}},
		{"select -- trailing\n 1.5", []string{"word", "number"}, []string{"select", "1.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := l.Tokenize(tt.input)
			require.NoError(t, err)

			var kinds, values []string
			for _, tok := range tokens {
				kinds = append(kinds, tok.Kind)
				values = append(values, tok.Value)
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestTokenizeSpansAndPositions(t *testing.T) {
	l := testLexer(t)

	tokens, err := l.Tokenize("ab\n  cd")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	assert.Equal(t, Span{Start: 0, End: 2}, tokens[0].Span)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, tokens[0].Position)
	assert.Equal(t, Span{Start: 5, End: 7}, tokens[1].Span)
	assert.Equal(t, Position{Offset: 5, Line: 2, Column: 3}, tokens[1].Position)
}

func TestTokenizeFirstRuleWins(t *testing.T) {
	l, err := New(
		Rule{Kind: "keyword", Patterns: []string{`sel`}},
		Rule{Kind: "word", Patterns: []string{`[a-z]+`}},
	)
	require.NoError(t, err)

	tokens, err := l.Tokenize("select")
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, "keyword", tokens[0].Kind)
	assert.Equal(t, "sel", tokens[0].Value)
	assert.Equal(t, "word", tokens[1].Kind)
	assert.Equal(t, "ect", tokens[1].Value)
}

func TestTokenizeUnexpectedInput(t *testing.T) {
	l, err := New(Rule{Kind: "word", Patterns: []string{`[a-z]+`}})
	require.NoError(t, err)

	_, err = l.Tokenize("abc#def")
	require.Error(t, err)

	var lexErr *Error
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, 3, lexErr.Position.Offset)
	assert.Equal(t, "#def", lexErr.Remaining)
	assert.Contains(t, err.Error(), `"#def"`)
}

func TestTokenizeEmptyMatch(t *testing.T) {
	l, err := New(Rule{Kind: "maybe", Patterns: []string{`a*`}})
	require.NoError(t, err)

	_, err = l.Tokenize("b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matched empty text")
}

func TestNewErrors(t *testing.T) {
	_, err := New()
	assert.Error(t, err)

	_, err = New(Rule{Kind: "bad", Patterns: []string{`(`}})
	assert.Error(t, err)

	_, err = New(Rule{Kind: "empty"})
	assert.Error(t, err)

	assert.Panics(t, func() { MustNew(Rule{Patterns: []string{`x`}}) })
}

func TestKinds(t *testing.T) {
	l := testLexer(t)
	assert.Equal(t, []string{"whitespace", "comment", "number", "word", "special"}, l.Kinds())
}

func TestRules(t *testing.T) {
	l := testLexer(t)
	rules := l.Rules()
	require.Len(t, rules, 5)
	assert.Equal(t, Rule{Kind: "whitespace", Patterns: []string{`\s+`}, Ignore: true}, rules[0])
	assert.Equal(t, []string{`<=|>=|<>|!=`, `.`}, rules[4].Patterns)

	rules[0].Kind = "changed"
	assert.Equal(t, "whitespace", l.Kinds()[0])
}

func TestTokenIsZeroWidth(t *testing.T) {
	tokens, err := testLexer(t).Tokenize("ab 1")
	require.NoError(t, err)
	for _, tok := range tokens {
		assert.False(t, tok.IsZeroWidth(), tok.String())
	}
	assert.True(t, Token{Kind: "<cursor>", Span: Span{Start: 3, End: 3}}.IsZeroWidth())
}
