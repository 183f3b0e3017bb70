// Package chain is a grammar-combinator engine. Grammars are declared as
// composable rules and executed against a token list with full
// backtracking, producing an AST, cursor-aware completion suggestions and
// best-effort diagnostics.
package chain

import (
	"github.com/dhamidi/chainparse/lexer"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("chainparse.chain")

// DefaultMaxVisits bounds the node visits of a single traversal.
const DefaultMaxVisits = 1_000_000

// NoCursor disables cursor-based suggestions.
const NoCursor = -1

// Tokenizer turns text into tokens. *lexer.Lexer implements it.
type Tokenizer interface {
	Tokenize(input string) ([]lexer.Token, error)
}

// TokenizerFunc adapts a function to Tokenizer.
type TokenizerFunc func(input string) ([]lexer.Token, error)

func (f TokenizerFunc) Tokenize(input string) ([]lexer.Token, error) {
	return f(input)
}

type Option func(*Parser)

// WithMaxVisits sets the visit ceiling of the forward pass and of each
// replay. n <= 0 removes the ceiling.
func WithMaxVisits(n int) Option {
	return func(p *Parser) {
		p.maxVisits = n
	}
}

// WithoutFirstSets disables first-set pruning. Results are identical, only
// slower.
func WithoutFirstSets() Option {
	return func(p *Parser) {
		p.firstSets = false
	}
}

// Parser parses text with one grammar. A Parser is safe for concurrent use.
type Parser struct {
	g         *grammar
	tokenizer Tokenizer
	maxVisits int
	firstSets bool
}

// NewParser returns a parser for the grammar rooted at root. The compiled
// grammar is shared with every other parser built from the same root.
func NewParser(root RuleFunc, tokenizer Tokenizer, opts ...Option) *Parser {
	p := &Parser{
		g:         compile(root),
		tokenizer: tokenizer,
		maxVisits: DefaultMaxVisits,
		firstSets: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of a parse. A failed parse is not an error: Error
// describes it and Suggestions lists what could be typed at the cursor.
type Result struct {
	Success     bool          `json:"success"`
	AST         any           `json:"ast"`
	Error       *ParseError   `json:"error"`
	Suggestions []Matching    `json:"suggestions"`
	Tokens      []lexer.Token `json:"tokens"`
	// Visits is the number of node visits of the forward pass.
	Visits int `json:"visits"`
}

// Parse tokenizes text and parses it. offset is the cursor as a byte offset
// into text, or NoCursor. Only tokenizer errors are returned as error.
func (p *Parser) Parse(text string, offset int) (*Result, error) {
	tokens, err := p.tokenizer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return p.ParseTokens(tokens, offset), nil
}

// ParseTokens parses an already tokenized input.
func (p *Parser) ParseTokens(tokens []lexer.Token, offset int) *Result {
	scanner := NewScanner(tokens)
	c := newCursor(scanner, offset)

	var (
		deepest   *anchor
		deepestAt = -1
		adjacent  []anchor
		seen      = make(map[anchor]bool)
	)

	e := newExecutor(p.g, scanner, p.maxVisits)
	e.prune = p.firstSets
	e.onMatch = func(t *terminalNode, f *frame, index int) {
		if index > deepestAt {
			deepestAt = index
			deepest = &anchor{terminal: t, frame: f}
		}
		if index == c.anchorIndex {
			a := anchor{terminal: t, frame: f}
			if !seen[a] {
				seen[a] = true
				adjacent = append(adjacent, a)
			}
		}
	}

	result := &Result{Tokens: tokens}
	outcome := e.run()
	result.Visits = e.visits

	switch outcome {
	case outcomeSuccess:
		result.Success = true
		result.AST = e.ast
	case outcomeAborted:
		log.Debugf("%s: aborted after %d visits", p.g.name, e.visits)
		result.Error = &ParseError{
			Token:  failureToken(tokens, deepestAt),
			Reason: ReasonAborted,
			err:    ErrVisitLimit,
		}
		return result
	default:
		result.Error = &ParseError{
			Token:       failureToken(tokens, deepestAt),
			Reason:      failureReason(tokens, deepestAt, c),
			Suggestions: p.suggest([]anchor{rootOr(deepest)}, -1, tokens),
		}
	}

	if !c.enabled() {
		return result
	}

	var seeds []anchor
	switch {
	case c.anchorIndex < 0:
		seeds = []anchor{{}}
	case len(adjacent) > 0:
		seeds = adjacent
	case !result.Success:
		seeds = []anchor{rootOr(deepest)}
	}
	result.Suggestions = p.suggest(seeds, c.followIndex, tokens)
	return result
}

func rootOr(a *anchor) anchor {
	if a == nil {
		return anchor{}
	}
	return *a
}

// failureToken is the first token the best partial match could not
// consume, or the last token when it consumed everything.
func failureToken(tokens []lexer.Token, deepestAt int) lexer.Token {
	next := deepestAt + 1
	if next < len(tokens) {
		return tokens[next]
	}
	if len(tokens) > 0 {
		return tokens[len(tokens)-1]
	}
	return lexer.Token{Kind: EndKind, Position: lexer.Position{Line: 1, Column: 1}}
}

// failureReason is incomplete when nothing follows the best partial match,
// or when the only token left is the one being typed at the cursor.
func failureReason(tokens []lexer.Token, deepestAt int, c cursor) Reason {
	next := deepestAt + 1
	if next >= len(tokens) {
		return ReasonIncomplete
	}
	if next == len(tokens)-1 && next == c.typingIndex {
		return ReasonIncomplete
	}
	return ReasonWrong
}
