// Package grammars holds the grammars shipped with chainparse. They double
// as examples of the chain DSL.
package grammars

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
)

// Grammar is a named root rule together with the tokenizer its terminals
// are written against.
type Grammar struct {
	Name        string
	Description string
	Root        chain.RuleFunc
	Lexer       *lexer.Lexer
}

// Parser returns a parser for g.
func (g *Grammar) Parser(opts ...chain.Option) *chain.Parser {
	return chain.NewParser(g.Root, g.Lexer, opts...)
}

var registry = map[string]*Grammar{
	"arith": {
		Name:        "arith",
		Description: "arithmetic over numbers, strings and names with + - * / % mod div and parentheses",
		Root:        Arithmetic,
		Lexer:       SQLLexer,
	},
	"select": {
		Name:        "select",
		Description: "select [distinct] <fields> from <table> [where <condition>]",
		Root:        Select,
		Lexer:       SQLLexer,
	},
}

// Lookup returns the grammar registered as name.
func Lookup(name string) (*Grammar, error) {
	g, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown grammar %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return g, nil
}

// Names returns the registered grammar names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
