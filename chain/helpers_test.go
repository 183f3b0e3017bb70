package chain

import (
	"testing"

	"github.com/dhamidi/chainparse/lexer"
)

var testLexer = lexer.MustNew(
	lexer.Rule{Kind: "whitespace", Patterns: []string{`\s+`}, Ignore: true},
	lexer.Rule{Kind: "number", Patterns: []string{`[0-9]+`}},
	lexer.Rule{Kind: "word", Patterns: []string{`[a-zA-Z_][a-zA-Z0-9_]*`}},
	lexer.Rule{Kind: "special", Patterns: []string{`.`}},
)

func tokenize(t *testing.T, input string) []lexer.Token {
	t.Helper()
	tokens, err := testLexer.Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize %q: %v", input, err)
	}
	return tokens
}

// text replaces tokens in an AST by their values.
func text(v any) any {
	switch v := v.(type) {
	case lexer.Token:
		return v.Value
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = text(v[i])
		}
		return out
	case binary:
		return binary{Left: text(v.Left), Operator: v.Operator, Right: text(v.Right)}
	default:
		return v
	}
}

func expectGrammarError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if _, ok := r.(*GrammarError); !ok {
			t.Errorf("got panic %v, want *GrammarError", r)
		}
	}()
	fn()
}

type binary struct {
	Left     any
	Operator string
	Right    any
}

func foldBinary(ast []any) any {
	left := ast[0]
	rest, _ := ast[1].([]any)
	for _, it := range rest {
		pair := it.([]any)
		left = binary{Left: left, Operator: pair[0].(lexer.Token).Value, Right: pair[1]}
	}
	return left
}

func tokenValue(ast []any) any {
	return ast[0].(lexer.Token).Value
}

func arithExpr() Expr {
	return Rule("expr", arithTerm, Many(OneOf("+", "-"), arithTerm)).Solve(foldBinary)
}

func arithTerm() Expr {
	return Rule("term", arithFactor, Many(OneOf("*", "/"), arithFactor)).Solve(foldBinary)
}

func arithFactor() Expr {
	return OneOf(
		Chain(Typed("number")).Solve(tokenValue),
		Chain(Typed("word")).Solve(tokenValue),
		Chain("(", arithExpr, ")").Solve(func(ast []any) any { return ast[1] }),
	)
}

func selectWord() Expr {
	return Chain("select", Typed("word"))
}

func singleA() Expr {
	return Chain("a")
}

func shortFirst() Expr {
	return OneOf(Chain("a"), Chain("a", "b"))
}

func optionalMiddle() Expr {
	return Chain("a", Optional("b"), "c")
}

func manyMiddle() Expr {
	return Chain("a", Many("b"), "c")
}

func greedyMany() Expr {
	return Chain(Many("b"), Optional("b"))
}

func gapChoice() Expr {
	return Chain("a", Optional("b"), OneOf("c", "d"))
}

func wordList() Expr {
	return Chain("(", Typed("word"), Many(",", Typed("word")), ")")
}

func keywordOrName() Expr {
	return Chain(OneOf(Literal("from", "where"), Typed("word", "from", "where")))
}

func ambiguousAs() Expr {
	return Chain(Many(OneOf("a", Chain("a", "a"))), "b")
}

func leftRecursive() Expr {
	return Rule("left", OneOf(Chain(leftRecursive, "+", "x"), "x"))
}

func emptyOptional() Expr {
	return Chain(Plus(Optional("x")))
}

func badElement() Expr {
	return Chain("a", 42)
}

func itemX() Expr {
	return Rule("item", "x")
}

func itemY() Expr {
	return Rule("item", "y")
}

// sharedRuleName uses two different rules registered under one name.
func sharedRuleName() Expr {
	return Chain(itemX, OneOf(itemY, "z"))
}
