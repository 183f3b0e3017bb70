package grammars

import (
	"strings"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
)

// Binary is an infix operation. Operands are nested nodes or the literal
// text of a number, string or name.
type Binary struct {
	Left     any    `json:"left"`
	Operator string `json:"operator"`
	Right    any    `json:"right"`
}

// Unary is a prefix operation.
type Unary struct {
	Operator string `json:"operator"`
	Operand  any    `json:"operand"`
}

// Arithmetic is the root of the four-operations grammar. Multiplicative
// operators bind tighter than additive ones, both associate to the left.
//
//	expr   = term { ("+" | "-") term } .
//	term   = factor { ("*" | "/" | "%" | "mod" | "div") factor } .
//	factor = "(" expr ")" | operand .
func Arithmetic() chain.Expr {
	return chain.Rule("expr", term, chain.Many(addOp, term)).Solve(foldBinary)
}

func term() chain.Expr {
	return chain.Rule("term", factor, chain.Many(mulOp, factor)).Solve(foldBinary)
}

func factor() chain.Expr {
	return chain.OneOf(
		chain.Chain("(", Arithmetic, ")").Solve(second),
		operand,
	)
}

func operand() chain.Expr {
	return chain.OneOf(
		chain.Chain(chain.Typed("number")).Solve(tokenValue),
		chain.Chain(chain.Typed("string")).Solve(tokenValue),
		chain.Chain(chain.Typed("word", Reserved...)).Solve(tokenValue),
	)
}

func addOp() chain.Expr {
	return chain.Chain(chain.Literal("+", "-")).Solve(operator)
}

func mulOp() chain.Expr {
	return chain.Chain(chain.Literal("*", "/", "%", "mod", "div")).Solve(operator)
}

// foldBinary folds `first {op next}` into left-associative Binary nodes.
func foldBinary(ast []any) any {
	left := ast[0]
	rest, _ := ast[1].([]any)
	for _, it := range rest {
		pair := it.([]any)
		left = Binary{Left: left, Operator: pair[0].(string), Right: pair[1]}
	}
	return left
}

func tokenValue(ast []any) any {
	return ast[0].(lexer.Token).Value
}

// operator normalizes keyword operators to lower case.
func operator(ast []any) any {
	return strings.ToLower(ast[0].(lexer.Token).Value)
}

func second(ast []any) any {
	return ast[1]
}
