package ebnf

import (
	"strings"
	"testing"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/grammars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func list() chain.Expr {
	return chain.Chain("(", chain.Optional(item, chain.Many(",", item)), ")", chain.Plus(";"))
}

func item() chain.Expr {
	return chain.OneOf(chain.Typed("word"), chain.Chain("-", chain.Typed("number")))
}

func choice() chain.Expr {
	return chain.Chain("a", chain.OneOf("b", "c"), []any{"d", chain.Chain("e", "f")})
}

func nothing() chain.Expr {
	return chain.Chain("x", chain.Chain())
}

func itemX() chain.Expr {
	return chain.Rule("item", "x")
}

func itemY() chain.Expr {
	return chain.Rule("item", "y")
}

func sharedName() chain.Expr {
	return chain.Chain(itemX, itemY)
}

func emptyKind() chain.Expr {
	return chain.Chain(chain.Chain(), chain.Typed("empty"))
}

func TestExport(t *testing.T) {
	tests := []struct {
		name string
		root chain.RuleFunc
		want string
	}{
		{
			name: "arithmetic",
			root: grammars.Arithmetic,
			want: `Expr = Term { AddOp Term } .
Term = Factor { MulOp Factor } .
AddOp = "+" | "-" .
Factor = "(" Expr ")" | Operand .
MulOp = "*" | "/" | "%" | "mod" | "div" .
Operand = number | string | word .
number = "number" .
string = "string" .
word = "word" .
`,
		},
		{
			name: "optional and repetition",
			root: list,
			want: `List = "(" [ Item { "," Item } ] ")" ";" { ";" } .
Item = word | "-" number .
word = "word" .
number = "number" .
`,
		},
		{
			name: "grouped alternatives",
			root: choice,
			want: `Choice = "a" ( "b" | "c" ) ( "d" | "e" "f" ) .
`,
		},
		{
			name: "empty sequence",
			root: nothing,
			want: `Nothing = "x" empty .
empty = .
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Export(tt.root, nil)
			assert.Equal(t, tt.want, g.String())
			require.NoError(t, g.Verify())
		})
	}
}

func TestExportRegisteredGrammarsVerify(t *testing.T) {
	for _, name := range grammars.Names() {
		t.Run(name, func(t *testing.T) {
			g, err := grammars.Lookup(name)
			require.NoError(t, err)

			exported := Export(g.Root, g.Lexer)
			require.NoError(t, exported.Verify(), exported.String())
		})
	}
}

func TestExportAnnotatesTokenPatterns(t *testing.T) {
	g := Export(grammars.Arithmetic, grammars.SQLLexer)
	out := g.String()

	assert.Contains(t, out, "// number: ")
	assert.Contains(t, out, "\nnumber = \"number\" .\n")
	assert.Equal(t, "Expr", g.Start)
}

func TestVerifyReportsBrokenGrammar(t *testing.T) {
	g := &Grammar{
		Start: "start",
		Productions: []Production{
			{Name: "start", Expr: "missing"},
		},
	}
	err := g.Verify()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing"), err.Error())
}

func TestIdentifier(t *testing.T) {
	tests := map[string]string{
		"term":         "Term",
		"Select.func1": "Select_func1",
		"(*T).M-fm":    "T_M_fm",
		"9lives":       "R9lives",
		"<cursor>":     "Cursor",
		"表":            "R表",
		"":             "Rule",
	}
	for in, want := range tests {
		assert.Equal(t, want, identifier(in), in)
	}
}

func TestLexical(t *testing.T) {
	tests := map[string]string{
		"number":   "number",
		"Word":     "word",
		"9x":       "t9x",
		"<end>":    "end",
		"two-part": "two_part",
		"":         "token",
	}
	for in, want := range tests {
		assert.Equal(t, want, lexical(in), in)
	}
}

func TestExportSharedRuleName(t *testing.T) {
	g := Export(sharedName, nil)
	assert.Equal(t, `SharedName = Item Item2 .
Item = "x" .
Item2 = "y" .
`, g.String())
	require.NoError(t, g.Verify())
}

func TestExportTokenKindNamedLikeEmpty(t *testing.T) {
	g := Export(emptyKind, nil)
	assert.Equal(t, `EmptyKind = empty empty2 .
empty = .
empty2 = "empty" .
`, g.String())
	require.NoError(t, g.Verify())
}
