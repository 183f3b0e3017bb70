package grammars

import "github.com/dhamidi/chainparse/lexer"

// SQLLexer tokenizes SQL-like input into number, word, string and special
// tokens. Whitespace and comments are dropped.
var SQLLexer = lexer.MustNew(
	lexer.Rule{Kind: "whitespace", Patterns: []string{`\s+`}, Ignore: true},
	lexer.Rule{
		Kind: "comment",
		Patterns: []string{
			`(?:#|--)[^\n]*(?:\n|$)`,
			`(?s:/\*.*?(?:\*/|$))`,
		},
		Ignore: true,
	},
	lexer.Rule{Kind: "number", Patterns: []string{`(?:0x[0-9a-fA-F]+|0b[01]+|[0-9]+(?:\.[0-9]+)?)\b`}},
	lexer.Rule{
		Kind: "word",
		Patterns: []string{
			`[a-zA-Z0-9_\p{Han}]+`,
			`\$\{[a-zA-Z0-9_\p{Han}]+\}`,
		},
	},
	lexer.Rule{
		Kind: "string",
		Patterns: []string{
			`"[^"\\]*(?:\\.[^"\\]*)*"`,
			`'[^'\\]*(?:\\.[^'\\]*)*'`,
			"`[^`\\\\]*(?:\\\\.[^`\\\\]*)*`",
		},
	},
	lexer.Rule{
		Kind: "special",
		Patterns: []string{
			`[()]`,
			`!=|<>|==|<=|>=|\|\||::|->>|->|.`,
		},
	},
)

// Reserved words are never accepted where a name is expected.
var Reserved = []string{
	"select", "distinct", "from", "where", "as",
	"and", "or", "not", "like", "mod", "div",
}
