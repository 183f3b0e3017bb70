package chain

import (
	"reflect"
	"sync"
)

// firstSet is the set of terminals that can begin a rule. A set containing
// the loose terminal (or an empty sequence) accepts every token, which keeps
// pruning conservative for rules that can match nothing.
type firstSet struct {
	matchers []Matcher
	loose    bool
}

// accepts peeks at the token under the cursor without consuming it.
func (f *firstSet) accepts(s *Scanner) bool {
	if f.loose {
		return true
	}
	for _, m := range f.matchers {
		if _, ok := matchToken(s, m, true); ok {
			return true
		}
	}
	return false
}

// firstSets memoizes the first sets of rule factories, keyed by code pointer
// like the grammar cache. Factories on a left recursive cycle (direct or
// indirect) never resolve; rules starting with them are parsed without
// pruning.
type firstSets struct {
	mu sync.Mutex
	// memo holds nil for factories known to be unresolvable.
	memo map[uintptr]*firstSet
}

func newFirstSets() *firstSets {
	return &firstSets{memo: make(map[uintptr]*firstSet)}
}

// forNode returns the first set of a named sequence node, computed from the
// node's own body on first use. It returns nil when the set is unresolved.
func (fs *firstSets) forNode(n *sequenceNode) *firstSet {
	n.firstOnce.Do(func() {
		set, ok := fs.resolve(n.expr)
		if !ok {
			log.Debugf("first set of rule %q is unresolved, pruning disabled for it", n.ruleName)
		}
		n.first = set
	})
	return n.first
}

// resolve computes the first set of seq.
func (fs *firstSets) resolve(seq *Sequence) (*firstSet, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	c := newFirstCollector(fs, make(map[uintptr]bool))
	c.sequence(seq)
	if !c.ok {
		return nil, false
	}
	return c.set, true
}

func (fs *firstSets) factoryLocked(fn RuleFunc, visiting map[uintptr]bool) *firstSet {
	key := reflect.ValueOf(fn).Pointer()
	if set, ok := fs.memo[key]; ok {
		return set
	}
	if visiting[key] {
		return nil
	}

	visiting[key] = true
	c := newFirstCollector(fs, visiting)
	c.add(fn())
	delete(visiting, key)

	var set *firstSet
	if c.ok {
		set = c.set
	}
	fs.memo[key] = set
	return set
}

type firstCollector struct {
	fs       *firstSets
	visiting map[uintptr]bool
	set      *firstSet
	ok       bool
}

func newFirstCollector(fs *firstSets, visiting map[uintptr]bool) *firstCollector {
	return &firstCollector{fs: fs, visiting: visiting, set: &firstSet{}, ok: true}
}

func (c *firstCollector) add(elem any) {
	if !c.ok {
		return
	}
	switch e := elem.(type) {
	case string:
		c.set.matchers = append(c.set.matchers, literalMatcher{value: e})

	case *Terminal:
		if isLoose(e.matcher) {
			c.set.loose = true
		} else {
			c.set.matchers = append(c.set.matchers, e.matcher)
		}

	case *Sequence:
		c.sequence(e)

	case *Alternation:
		for _, alt := range e.elems {
			c.add(alt)
		}

	case []any:
		for _, alt := range e {
			c.add(alt)
		}

	case RuleFunc:
		dep := c.fs.factoryLocked(e, c.visiting)
		if dep == nil {
			c.ok = false
			return
		}
		c.set.matchers = append(c.set.matchers, dep.matchers...)
		c.set.loose = c.set.loose || dep.loose

	default:
		c.ok = false
	}
}

// sequence adds the first set of a sequence's first element.
func (c *firstCollector) sequence(seq *Sequence) {
	if len(seq.elems) == 0 {
		c.set.loose = true
		return
	}
	c.add(seq.elems[0])
}
