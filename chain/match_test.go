package chain

import (
	"testing"

	"github.com/dhamidi/chainparse/lexer"
	"github.com/google/go-cmp/cmp"
)

func TestMatchers(t *testing.T) {
	word := func(v string) lexer.Token { return lexer.Token{Kind: "word", Value: v} }

	tests := []struct {
		name    string
		matcher Matcher
		tok     lexer.Token
		want    bool
	}{
		{"literal exact", literalMatcher{value: "select"}, word("select"), true},
		{"literal case", literalMatcher{value: "select"}, word("SeLeCt"), true},
		{"literal other", literalMatcher{value: "select"}, word("sel"), false},
		{"literal ignores kind", literalMatcher{value: "+"}, lexer.Token{Kind: "special", Value: "+"}, true},
		{"typed", newTypedMatcher("word", nil), word("users"), true},
		{"typed wrong kind", newTypedMatcher("number", nil), word("users"), false},
		{"typed excluded", newTypedMatcher("word", []string{"FROM"}), word("from"), false},
		{"typed not excluded", newTypedMatcher("word", []string{"from"}), word("fromage"), true},
		{"loose", looseMatcher{}, lexer.Token{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.matcher.Match(tt.tok); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatching(t *testing.T) {
	got := []Matching{
		literalMatcher{value: "from"}.Matching(),
		newTypedMatcher("word", []string{"from"}).Matching(),
		looseMatcher{}.Matching(),
	}
	want := []Matching{
		{Kind: MatchLiteral, Value: "from"},
		{Kind: MatchTyped, Value: "word"},
		{Kind: MatchLoose, Value: "true"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matchings mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchTokenPeek(t *testing.T) {
	s := NewScanner(tokenize(t, "a b"))

	if _, ok := matchToken(s, literalMatcher{value: "a"}, true); !ok {
		t.Fatalf("peek did not match")
	}
	if s.Index() != 0 {
		t.Errorf("peek advanced the scanner to %d", s.Index())
	}

	tok, ok := matchToken(s, literalMatcher{value: "a"}, false)
	if !ok || tok.Value != "a" || s.Index() != 1 {
		t.Errorf("got %q %v at %d, want a true at 1", tok.Value, ok, s.Index())
	}

	if _, ok := matchToken(s, literalMatcher{value: "a"}, false); ok || s.Index() != 1 {
		t.Errorf("mismatch consumed input")
	}

	s.SetIndex(2)
	if _, ok := matchToken(s, literalMatcher{value: "b"}, false); ok {
		t.Errorf("matched past the end")
	}
	if _, ok := matchToken(s, looseMatcher{}, false); !ok || s.Index() != 2 {
		t.Errorf("loose matcher must succeed at the end without consuming")
	}
}

func TestCombinatorShapes(t *testing.T) {
	lit, ok := Literal("from").(*Terminal)
	if !ok {
		t.Fatalf("single literal: got %T, want *Terminal", Literal("from"))
	}
	if lit.IsLoose() {
		t.Errorf("literal reported as loose")
	}

	alt, ok := Literal("from", "where").(*Alternation)
	if !ok || len(alt.Alternatives()) != 2 {
		t.Fatalf("multi literal: got %#v, want two alternatives", Literal("from", "where"))
	}

	opt := Optional("a")
	if !opt.IsOptional() {
		t.Errorf("Optional not marked optional")
	}
	last, ok := opt.Alternatives()[1].(*Terminal)
	if !ok || !last.IsLoose() {
		t.Errorf("last alternative of Optional must be the loose terminal")
	}

	plus := Plus("a")
	if !plus.Repeating() {
		t.Errorf("Plus not repeating")
	}
	many := Many("a")
	inner := many.Alternatives()[0].(*Sequence).Elements()[0].(*Sequence)
	if !inner.Repeating() {
		t.Errorf("Many does not wrap a repetition")
	}

	if name := Rule("expr", "a").Name(); name != "expr" {
		t.Errorf("got rule name %q", name)
	}
}

func TestGrammarErrors(t *testing.T) {
	t.Run("empty rule name", func(t *testing.T) {
		expectGrammarError(t, func() { Rule("") })
	})

	t.Run("unknown element", func(t *testing.T) {
		p := NewParser(badElement, testLexer)
		expectGrammarError(t, func() { p.ParseTokens(tokenize(t, "a"), NoCursor) })
	})

	t.Run("nil root", func(t *testing.T) {
		expectGrammarError(t, func() { NewParser(nil, testLexer) })
	})

	t.Run("nil terminal", func(t *testing.T) {
		g := newGrammar("test", singleA)
		expectGrammarError(t, func() { g.build((*Terminal)(nil), nil, 0) })
	})
}
