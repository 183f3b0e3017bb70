package grammars

import (
	"github.com/dhamidi/chainparse/chain"
)

// Query is the AST of a select statement.
type Query struct {
	Distinct bool    `json:"distinct"`
	Fields   []Field `json:"fields"`
	Table    Table   `json:"table"`
	Where    any     `json:"where,omitempty"`
}

// Field is a selected expression. Expr is "*" for a wildcard.
type Field struct {
	Expr  any    `json:"expr"`
	Alias string `json:"alias,omitempty"`
}

type Table struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// Select is the root of a small query grammar:
//
//	select    = "select" [ "distinct" ] fields "from" table [ "where" condition ] [ ";" ] .
//	fields    = "*" | field { "," field } .
//	field     = expr [ [ "as" ] name ] .
//	table     = name [ [ "as" ] name ] .
//	condition = predicate { ( "and" | "or" ) predicate } .
//	predicate = "not" predicate | "(" condition ")" | expr compare expr .
//
// Names exclude the reserved words, so `select a from t` never reads "from"
// as an alias.
func Select() chain.Expr {
	return chain.Rule("select",
		"select",
		chain.Optional("distinct"),
		selectFields,
		"from",
		tableRef,
		chain.Optional("where", condition),
		chain.Optional(";"),
	).Solve(func(ast []any) any {
		q := &Query{
			Distinct: ast[1] != nil,
			Fields:   ast[2].([]Field),
			Table:    ast[4].(Table),
		}
		if where, ok := ast[5].([]any); ok {
			q.Where = where[1]
		}
		return q
	})
}

func selectFields() chain.Expr {
	return chain.OneOf(
		chain.Chain("*").Solve(func([]any) any {
			return []Field{{Expr: "*"}}
		}),
		chain.Chain(field, chain.Many(",", field)).Solve(func(ast []any) any {
			fields := []Field{ast[0].(Field)}
			rest, _ := ast[1].([]any)
			for _, it := range rest {
				fields = append(fields, it.([]any)[1].(Field))
			}
			return fields
		}),
	)
}

func field() chain.Expr {
	return chain.Rule("field", Arithmetic, alias).Solve(func(ast []any) any {
		f := Field{Expr: ast[0]}
		f.Alias, _ = ast[1].(string)
		return f
	})
}

func tableRef() chain.Expr {
	return chain.Rule("table", identifier, alias).Solve(func(ast []any) any {
		t := Table{Name: ast[0].(string)}
		t.Alias, _ = ast[1].(string)
		return t
	})
}

// alias is an optional `[as] name`; its value is the name or nil.
func alias() chain.Expr {
	return chain.Optional(chain.Chain(chain.Optional("as"), identifier).Solve(second))
}

func identifier() chain.Expr {
	return chain.Chain(chain.Typed("word", Reserved...)).Solve(tokenValue)
}

func condition() chain.Expr {
	return chain.Rule("condition", predicate, chain.Many(logicalOp, predicate)).Solve(foldBinary)
}

func predicate() chain.Expr {
	return chain.OneOf(
		chain.Chain("not", predicate).Solve(func(ast []any) any {
			return Unary{Operator: "not", Operand: ast[1]}
		}),
		chain.Chain("(", condition, ")").Solve(second),
		chain.Chain(Arithmetic, compareOp, Arithmetic).Solve(func(ast []any) any {
			return Binary{Left: ast[0], Operator: ast[1].(string), Right: ast[2]}
		}),
	)
}

func logicalOp() chain.Expr {
	return chain.Chain(chain.Literal("and", "or")).Solve(operator)
}

func compareOp() chain.Expr {
	return chain.Chain(chain.Literal("=", "==", "!=", "<>", "<=", ">=", "<", ">", "like")).Solve(operator)
}
