package chain

import (
	"reflect"
	"runtime"
	"sync"
)

// grammar is the compiled, shareable form of a root rule: its lazily
// materialized node graph and its first-set tables.
type grammar struct {
	name   string
	root   *lazyNode
	firsts *firstSets
}

func newGrammar(name string, root RuleFunc) *grammar {
	g := &grammar{name: name, firsts: newFirstSets()}
	g.root = &lazyNode{factory: root, g: g}
	return g
}

// grammars caches compiled grammars process-wide, keyed by the code pointer
// of the root rule. Root rules should therefore be top-level functions:
// closures created from the same literal share a key.
var grammars = struct {
	sync.Mutex
	m map[uintptr]*grammar
}{m: make(map[uintptr]*grammar)}

func compile(root RuleFunc) *grammar {
	if root == nil {
		panic(&GrammarError{Message: "nil root rule"})
	}
	key := reflect.ValueOf(root).Pointer()

	grammars.Lock()
	defer grammars.Unlock()

	if g, ok := grammars.m[key]; ok {
		return g
	}
	name := "grammar"
	if fn := runtime.FuncForPC(key); fn != nil {
		name = fn.Name()
	}
	g := newGrammar(name, root)
	grammars.m[key] = g
	log.Debugf("compiled grammar %s", name)
	return g
}
