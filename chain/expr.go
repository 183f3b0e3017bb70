package chain

// Expr is a grammar expression built with the combinators of this package.
// Expressions are descriptions only; they are compiled into a node graph the
// first time a parser visits them.
//
// Elements accepted wherever an expression list is expected:
//
//	string        a literal terminal (matched case-insensitively)
//	Expr          a sequence, alternation or terminal
//	[]any         ordered alternatives
//	func() Expr   a rule reference, expanded lazily on first visit
//
// Anything else is a GrammarError raised when the element is compiled.
type Expr interface {
	isExpr()
}

// RuleFunc produces the body of a rule. Rules are usually declared as
// top-level functions so they can refer to each other recursively.
type RuleFunc = func() Expr

// SolveFunc reduces the values of a sequence's children to the sequence's AST.
type SolveFunc func(ast []any) any

// Sequence matches its elements one after another.
type Sequence struct {
	elems     []any
	name      string
	solve     SolveFunc
	repeating bool
}

func (*Sequence) isExpr() {}

// Chain returns a sequence of elems. Without a reducer its AST is the slice
// of child values.
func Chain(elems ...any) *Sequence {
	return &Sequence{elems: elems}
}

// Rule returns a named sequence. Named sequences get a cached first set that
// lets the parser reject them without descending. The name labels the rule
// in logs and exported grammars.
func Rule(name string, elems ...any) *Sequence {
	if name == "" {
		panic(&GrammarError{Message: "rule name must not be empty"})
	}
	return &Sequence{elems: elems, name: name}
}

// Solve sets the reducer applied when the sequence completes.
func (s *Sequence) Solve(fn SolveFunc) *Sequence {
	s.solve = fn
	return s
}

// Name returns the rule name, empty for anonymous sequences.
func (s *Sequence) Name() string {
	return s.name
}

// Elements returns the sequence's elements.
func (s *Sequence) Elements() []any {
	return s.elems
}

// Repeating reports whether the sequence was built by Plus.
func (s *Sequence) Repeating() bool {
	return s.repeating
}

// Alternation matches the first alternative that leads to a complete parse.
// Alternatives are tried in declaration order.
type Alternation struct {
	elems    []any
	optional bool
}

func (*Alternation) isExpr() {}

// OneOf returns ordered alternatives. A plain []any element is equivalent.
func OneOf(elems ...any) *Alternation {
	return &Alternation{elems: elems}
}

// Alternatives returns the alternatives in order.
func (a *Alternation) Alternatives() []any {
	return a.elems
}

// IsOptional reports whether the alternation was built by Optional; its last
// alternative is then the zero-width terminal.
func (a *Alternation) IsOptional() bool {
	return a.optional
}

// Terminal matches a single token.
type Terminal struct {
	matcher Matcher
}

func (*Terminal) isExpr() {}

// Matcher returns the terminal's matcher.
func (t *Terminal) Matcher() Matcher {
	return t.matcher
}

// IsLoose reports whether t is the always-succeeding zero-width terminal.
func (t *Terminal) IsLoose() bool {
	return isLoose(t.matcher)
}

// Literal matches a token whose value equals value, ignoring case. Extra
// values produce ordered alternatives of literals.
func Literal(value string, more ...string) Expr {
	if len(more) == 0 {
		return &Terminal{matcher: literalMatcher{value: value}}
	}
	alts := make([]any, 0, len(more)+1)
	alts = append(alts, &Terminal{matcher: literalMatcher{value: value}})
	for _, v := range more {
		alts = append(alts, &Terminal{matcher: literalMatcher{value: v}})
	}
	return &Alternation{elems: alts}
}

// Typed matches a token of the given kind whose value is not one of except
// (compared case-insensitively), e.g. identifiers that are not keywords.
func Typed(kind string, except ...string) *Terminal {
	return &Terminal{matcher: newTypedMatcher(kind, except)}
}

// Match wraps a custom matcher as a terminal.
func Match(m Matcher) *Terminal {
	return &Terminal{matcher: m}
}

// Optional matches elems or nothing. Its AST is the single element's value,
// the slice of values for several elements, or nil when skipped.
func Optional(elems ...any) *Alternation {
	return &Alternation{
		elems: []any{
			Chain(elems...).Solve(unwrapSingle),
			&Terminal{matcher: looseMatcher{}},
		},
		optional: true,
	}
}

// Plus matches elems one or more times, greedily. Its AST is the slice of
// per-iteration values.
func Plus(elems ...any) *Sequence {
	return &Sequence{elems: elems, repeating: true}
}

// Many matches elems zero or more times. Its AST is the Plus slice or nil.
func Many(elems ...any) *Alternation {
	return Optional(Plus(elems...))
}

func unwrapSingle(ast []any) any {
	if len(ast) == 1 {
		return ast[0]
	}
	return ast
}
