package chain

import (
	"sync"
)

// node is the compiled form of an expression. The set of node types is
// closed: *terminalNode, *sequenceNode, *alternationNode and *lazyNode, and
// the executor dispatches on them in one place.
//
// After a lazy node is materialized the graph is never mutated, so a
// compiled grammar can be shared by concurrent parses. Per-attempt state
// lives in executor frames.
type node interface {
	base() *nodeBase
}

type nodeBase struct {
	// parent is a *sequenceNode or *alternationNode, nil for the root.
	parent node
	// index is the position among the parent's children.
	index int
}

func (b *nodeBase) base() *nodeBase { return b }

type terminalNode struct {
	nodeBase
	matcher Matcher
}

type sequenceNode struct {
	nodeBase
	children  []node
	solve     SolveFunc
	ruleName  string
	repeating bool

	expr      *Sequence
	firstOnce sync.Once
	first     *firstSet
}

type alternationNode struct {
	nodeBase
	children []node
}

// lazyNode stands for a rule reference. Its subtree is built on first visit
// and memoized for this occurrence only, which keeps recursive rules finite.
type lazyNode struct {
	nodeBase
	factory RuleFunc
	g       *grammar
	once    sync.Once
	target  node
}

func (n *lazyNode) resolve() node {
	n.once.Do(func() {
		expr := n.factory()
		if expr == nil {
			panic(&GrammarError{Message: "rule returned nil expression"})
		}
		n.target = n.g.build(expr, n.parent, n.index)
	})
	return n.target
}

// build compiles elem into a node attached to parent at index.
func (g *grammar) build(elem any, parent node, index int) node {
	switch e := elem.(type) {
	case string:
		return &terminalNode{nodeBase: nodeBase{parent, index}, matcher: literalMatcher{value: e}}

	case *Terminal:
		if e == nil || e.matcher == nil {
			panic(&GrammarError{Message: "nil terminal"})
		}
		return &terminalNode{nodeBase: nodeBase{parent, index}, matcher: e.matcher}

	case *Sequence:
		if e == nil {
			panic(&GrammarError{Message: "nil sequence"})
		}
		n := &sequenceNode{
			nodeBase:  nodeBase{parent, index},
			solve:     e.solve,
			ruleName:  e.name,
			repeating: e.repeating,
			expr:      e,
		}
		n.children = make([]node, len(e.elems))
		for i, child := range e.elems {
			n.children[i] = g.build(child, n, i)
		}
		return n

	case *Alternation:
		if e == nil {
			panic(&GrammarError{Message: "nil alternation"})
		}
		return g.buildAlternation(e.elems, parent, index)

	case []any:
		return g.buildAlternation(e, parent, index)

	case RuleFunc:
		if e == nil {
			panic(&GrammarError{Message: "nil rule"})
		}
		return &lazyNode{nodeBase: nodeBase{parent, index}, factory: e, g: g}

	default:
		panic(&GrammarError{Message: "unknown element", Element: elem})
	}
}

func (g *grammar) buildAlternation(elems []any, parent node, index int) node {
	n := &alternationNode{nodeBase: nodeBase{parent, index}}
	n.children = make([]node, len(elems))
	for i, child := range elems {
		n.children[i] = g.build(child, n, i)
	}
	return n
}
