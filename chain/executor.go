package chain

import "fmt"

// cell is a persistent list of values, newest first.
type cell struct {
	value any
	prev  *cell
}

// slice returns the values oldest first.
func (c *cell) slice() []any {
	n := 0
	for p := c; p != nil; p = p.prev {
		n++
	}
	out := make([]any, n)
	for p := c; p != nil; p = p.prev {
		n--
		out[n] = p.value
	}
	return out
}

// frame is the state of one active sequence on one path: the child values
// collected so far and, for repetitions, the finished iterations. Frames are
// immutable; advancing creates a new frame. A chance therefore restores an
// exact earlier state by holding on to its frame, and nothing from an
// abandoned path can leak into the next attempt.
type frame struct {
	seq        *sequenceNode
	parent     *frame
	results    *cell
	iterations *cell
	// iterStart is the scanner index at the start of the current iteration.
	iterStart int
	// pass identifies the traversal that created the frame: 0 for the
	// forward pass, the replay number otherwise.
	pass int
}

type chanceKind uint8

const (
	// chanceAlternative resumes an alternation at a later alternative.
	chanceAlternative chanceKind = iota
	// chanceStopRepeat ends a repetition with the iterations done so far.
	chanceStopRepeat
)

// chance is a backtracking resumption point.
type chance struct {
	kind       chanceKind
	node       node
	childIndex int
	frame      *frame
	tokenIndex int
}

type stepKind uint8

const (
	stepVisit stepKind = iota
	stepDeliver
	stepBacktrack
)

// step is one unit of work run through the trampoline.
type step struct {
	kind  stepKind
	node  node
	frame *frame
	value any
	// index is the alternative to start from when visiting an alternation.
	index int
}

type outcome uint8

const (
	outcomeRunning outcome = iota
	outcomeSuccess
	outcomeFailure
	outcomeAborted
)

// executor walks a compiled grammar against a scanner with an explicit
// chance stack instead of native recursion.
type executor struct {
	g         *grammar
	scanner   *Scanner
	chances   []chance
	tramp     *trampoline[step]
	visits    int
	maxVisits int
	prune     bool

	// replay is non-zero for side-effect-free completion passes. Every
	// non-loose terminal is then reported through onCandidate and fails.
	replay      int
	onCandidate func(t *terminalNode, f *frame)

	// onMatch is called for every token consumed in the forward pass.
	onMatch func(t *terminalNode, f *frame, tokenIndex int)

	outcome outcome
	ast     any
}

func newExecutor(g *grammar, scanner *Scanner, maxVisits int) *executor {
	e := &executor{
		g:         g,
		scanner:   scanner,
		maxVisits: maxVisits,
	}
	e.tramp = newTrampoline(e.dispatch)
	return e
}

// run starts at the grammar root and returns once the parse succeeded,
// failed, or hit the visit ceiling.
func (e *executor) run() outcome {
	e.tramp.call(step{kind: stepVisit, node: e.g.root})
	return e.finish()
}

// resumeAfter continues traversal right after terminal t matched, inside f.
func (e *executor) resumeAfter(t *terminalNode, f *frame) outcome {
	e.tramp.call(step{kind: stepDeliver, node: t, frame: f})
	return e.finish()
}

func (e *executor) finish() outcome {
	if e.outcome == outcomeRunning {
		// Every step ends in another step or a verdict.
		panic(fmt.Sprintf("chain: executor stopped with %d pending steps and no verdict", e.tramp.pending()))
	}
	return e.outcome
}

func (e *executor) dispatch(s step) {
	if e.outcome != outcomeRunning {
		return
	}
	switch s.kind {
	case stepVisit:
		e.visits++
		if e.maxVisits > 0 && e.visits > e.maxVisits {
			e.stop(outcomeAborted)
			return
		}
		e.visit(s.node, s.frame, s.index)
	case stepDeliver:
		e.deliver(s.node, s.value, s.frame)
	case stepBacktrack:
		e.backtrack()
	}
}

func (e *executor) stop(o outcome) {
	e.outcome = o
	e.tramp.halt()
}

func (e *executor) visitLater(n node, f *frame, index int) {
	e.tramp.call(step{kind: stepVisit, node: n, frame: f, index: index})
}

func (e *executor) deliverLater(n node, value any, f *frame) {
	e.tramp.call(step{kind: stepDeliver, node: n, frame: f, value: value})
}

func (e *executor) fail() {
	e.tramp.call(step{kind: stepBacktrack})
}

func (e *executor) visit(n node, f *frame, index int) {
	switch n := n.(type) {
	case *terminalNode:
		e.visitTerminal(n, f)

	case *sequenceNode:
		e.enterSequence(n, f, nil)

	case *alternationNode:
		if index >= len(n.children) {
			e.fail()
			return
		}
		if index+1 < len(n.children) {
			e.chances = append(e.chances, chance{
				kind:       chanceAlternative,
				node:       n,
				childIndex: index + 1,
				frame:      f,
				tokenIndex: e.scanner.Index(),
			})
		}
		e.visitLater(n.children[index], f, 0)

	case *lazyNode:
		e.visit(n.resolve(), f, index)

	default:
		panic(fmt.Sprintf("chain: unknown node %T", n))
	}
}

func (e *executor) visitTerminal(n *terminalNode, f *frame) {
	if isLoose(n.matcher) {
		e.deliverLater(n, nil, f)
		return
	}

	if e.replay != 0 {
		if e.onCandidate != nil {
			e.onCandidate(n, f)
		}
		e.fail()
		return
	}

	index := e.scanner.Index()
	tok, ok := matchToken(e.scanner, n.matcher, false)
	if !ok {
		e.fail()
		return
	}
	if e.onMatch != nil {
		e.onMatch(n, f, index)
	}
	e.deliverLater(n, tok, f)
}

// enterSequence starts a fresh pass over seq's children. iterations carries
// the finished iterations of a repetition being re-entered.
func (e *executor) enterSequence(seq *sequenceNode, parent *frame, iterations *cell) {
	if e.prune && seq.ruleName != "" {
		if set := e.g.firsts.forNode(seq); set != nil && !set.accepts(e.scanner) {
			e.fail()
			return
		}
	}
	f := &frame{
		seq:        seq,
		parent:     parent,
		iterations: iterations,
		iterStart:  e.scanner.Index(),
		pass:       e.replay,
	}
	e.continueSequence(f, 0)
}

func (e *executor) continueSequence(f *frame, next int) {
	if next < len(f.seq.children) {
		e.visitLater(f.seq.children[next], f, 0)
		return
	}
	e.completeSequence(f)
}

func (e *executor) completeSequence(f *frame) {
	var value any
	if e.replay == 0 {
		value = e.solve(f)
	}

	if !f.seq.repeating {
		e.deliverLater(f.seq, value, f.parent)
		return
	}

	iterations := &cell{value: value, prev: f.iterations}
	if !e.madeProgress(f) {
		// An empty iteration ends the repetition and is kept only as the
		// mandatory first one.
		if f.iterations != nil {
			iterations = f.iterations
		}
		e.deliverLater(f.seq, e.iterationValues(iterations), f.parent)
		return
	}

	// Greedy: one more iteration first, stopping here is the fallback.
	e.chances = append(e.chances, chance{
		kind:       chanceStopRepeat,
		node:       f.seq,
		frame:      &frame{seq: f.seq, parent: f.parent, iterations: iterations, pass: f.pass},
		tokenIndex: e.scanner.Index(),
	})
	e.enterSequence(f.seq, f.parent, iterations)
}

// madeProgress reports whether the iteration in f consumed a token. Frames
// inherited by a replay contain the token the replay resumes after.
func (e *executor) madeProgress(f *frame) bool {
	if e.replay != 0 {
		return f.pass != e.replay
	}
	return e.scanner.Index() > f.iterStart
}

func (e *executor) iterationValues(iterations *cell) any {
	if e.replay != 0 {
		return nil
	}
	return iterations.slice()
}

func (e *executor) solve(f *frame) any {
	results := f.results.slice()
	if len(results) != len(f.seq.children) {
		panic(fmt.Sprintf("chain: sequence completed with %d of %d results", len(results), len(f.seq.children)))
	}
	if f.seq.solve == nil {
		return results
	}
	return f.seq.solve(results)
}

// deliver hands the value produced by n to n's parent.
func (e *executor) deliver(n node, value any, f *frame) {
	b := n.base()
	switch p := b.parent.(type) {
	case nil:
		e.completeRoot(value)

	case *alternationNode:
		e.deliver(p, value, f)

	case *sequenceNode:
		if f == nil || f.seq != p {
			panic("chain: delivered value outside its sequence frame")
		}
		next := &frame{
			seq:        f.seq,
			parent:     f.parent,
			results:    &cell{value: value, prev: f.results},
			iterations: f.iterations,
			iterStart:  f.iterStart,
			pass:       f.pass,
		}
		e.continueSequence(next, b.index+1)

	default:
		panic(fmt.Sprintf("chain: unexpected parent %T", p))
	}
}

// completeRoot accepts the root's value only when every token is consumed;
// otherwise a different path may still consume the rest.
func (e *executor) completeRoot(value any) {
	if e.replay == 0 && e.scanner.IsEnd() {
		e.ast = value
		e.stop(outcomeSuccess)
		return
	}
	e.fail()
}

func (e *executor) backtrack() {
	if len(e.chances) == 0 {
		e.stop(outcomeFailure)
		return
	}

	c := e.chances[len(e.chances)-1]
	e.chances = e.chances[:len(e.chances)-1]
	e.scanner.SetIndex(c.tokenIndex)

	switch c.kind {
	case chanceAlternative:
		e.visitLater(c.node, c.frame, c.childIndex)
	case chanceStopRepeat:
		e.deliverLater(c.node, e.iterationValues(c.frame.iterations), c.frame.parent)
	}
}
