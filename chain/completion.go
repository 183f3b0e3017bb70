package chain

import "github.com/dhamidi/chainparse/lexer"

// cursor locates the edit cursor in the token list.
type cursor struct {
	offset int
	// typingIndex is the token touching the cursor from the left, which the
	// user is still typing, or -1.
	typingIndex int
	// anchorIndex is the last token that ends before the typed word (or
	// before the cursor in a gap), or -1 when suggestions start at the root.
	anchorIndex int
	// followIndex is the first token at or after the cursor, or -1.
	followIndex int
}

func newCursor(s *Scanner, offset int) cursor {
	if offset < 0 {
		return cursor{offset: NoCursor, typingIndex: -1, anchorIndex: -2, followIndex: -1}
	}
	tok, typing := s.TokenAt(offset)
	return cursor{
		offset:      offset,
		typingIndex: typing,
		anchorIndex: s.IndexBefore(tok.Span.Start),
		followIndex: s.IndexAfter(offset),
	}
}

func (c cursor) enabled() bool {
	return c.offset >= 0
}

// anchor is a place to replay from: right after terminal matched inside
// frame. The zero anchor replays from the start of the grammar.
type anchor struct {
	terminal *terminalNode
	frame    *frame
}

func (a anchor) isRoot() bool {
	return a.terminal == nil
}

// candidate is a terminal reached by a replay.
type candidate struct {
	matching Matching
	terminal *terminalNode
	frame    *frame
}

// suggest computes the terminals that may legally follow each anchor,
// deduplicated by matching. When followIndex points at a real token, only
// suggestions after which that token is acceptable are kept.
func (p *Parser) suggest(anchors []anchor, followIndex int, tokens []lexer.Token) []Matching {
	pass := 0
	var order []Matching
	found := make(map[Matching][]candidate)

	for _, a := range anchors {
		pass++
		for _, c := range p.replay(a, pass) {
			if _, ok := found[c.matching]; !ok {
				order = append(order, c.matching)
			}
			found[c.matching] = append(found[c.matching], c)
		}
	}

	if followIndex < 0 || followIndex >= len(tokens) {
		return order
	}

	follow := tokens[followIndex]
	var kept []Matching
	for _, m := range order {
		for _, c := range found[m] {
			pass++
			if p.acceptsNext(anchor{terminal: c.terminal, frame: c.frame}, pass, follow) {
				kept = append(kept, m)
				break
			}
		}
	}
	return kept
}

// replay enumerates the terminals reachable from a without consuming input.
func (p *Parser) replay(a anchor, pass int) []candidate {
	e := newExecutor(p.g, NewScanner(nil), p.maxVisits)
	e.replay = pass

	var out []candidate
	seen := make(map[candidate]bool)
	e.onCandidate = func(t *terminalNode, f *frame) {
		c := candidate{matching: t.matcher.Matching(), terminal: t, frame: f}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	var o outcome
	if a.isRoot() {
		o = e.run()
	} else {
		o = e.resumeAfter(a.terminal, a.frame)
	}
	if o == outcomeAborted {
		log.Debugf("%s: replay %d aborted after %d visits, %d candidates kept", p.g.name, pass, e.visits, len(out))
	}
	return out
}

// acceptsNext reports whether tok can be matched immediately after a.
func (p *Parser) acceptsNext(a anchor, pass int, tok lexer.Token) bool {
	for _, c := range p.replay(a, pass) {
		if c.terminal.matcher.Match(tok) {
			return true
		}
	}
	return false
}
