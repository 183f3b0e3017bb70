package lsp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/chainparse/chain"
	"github.com/dhamidi/chainparse/lexer"
	"github.com/lithammer/fuzzysearch/fuzzy"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Workspace holds the open documents of one editor session, each parsed
// with the same grammar.
type Workspace struct {
	mu     sync.RWMutex
	parser *chain.Parser
	docs   map[string]*Document
}

// Document is an open document and the result of its last parse.
type Document struct {
	URI     string
	Content string
	Result  *chain.Result
	// Err is set when the content could not be tokenized.
	Err error
}

func NewWorkspace(p *chain.Parser) *Workspace {
	return &Workspace{
		parser: p,
		docs:   make(map[string]*Document),
	}
}

// Update replaces the content of a document and parses it.
func (w *Workspace) Update(uri, content string) *Document {
	res, err := w.parser.Parse(content, chain.NoCursor)
	doc := &Document{URI: uri, Content: content, Result: res, Err: err}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs[uri] = doc
	return doc
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, uri)
}

func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[uri]
}

type CompletionKind int

const (
	CompletionKeyword CompletionKind = iota
	CompletionWord
)

type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

// CompletionsAt returns what may be typed at an LSP position of a document.
// Literal suggestions become keywords. A token kind suggestion is offered as
// the tokens of that kind already present in the document. When the cursor
// touches a word being typed, items are ranked by fuzzy match against it and
// non-matching items are dropped.
func (w *Workspace) CompletionsAt(uri string, line, character int) []CompletionItem {
	doc := w.Get(uri)
	if doc == nil {
		return nil
	}
	offset := OffsetAt(doc.Content, line, character)
	res, err := w.parser.Parse(doc.Content, offset)
	if err != nil {
		return nil
	}
	return completionItems(res, doc.Content, offset)
}

func completionItems(res *chain.Result, content string, offset int) []CompletionItem {
	prefix := ""
	tok, typing := chain.NewScanner(res.Tokens).TokenAt(offset)
	if !tok.IsZeroWidth() {
		prefix = content[tok.Span.Start:offset]
	}

	var items []CompletionItem
	seen := make(map[string]bool)
	add := func(item CompletionItem) {
		if !seen[item.Label] {
			seen[item.Label] = true
			items = append(items, item)
		}
	}

	for _, m := range res.Suggestions {
		switch m.Kind {
		case chain.MatchLiteral:
			add(CompletionItem{Label: m.Value, Kind: CompletionKeyword, Detail: "keyword"})
		case chain.MatchTyped:
			for i, t := range res.Tokens {
				if i != typing && t.Kind == m.Value {
					add(CompletionItem{Label: t.Value, Kind: CompletionWord, Detail: m.Value})
				}
			}
		}
	}

	return rank(prefix, items)
}

func rank(prefix string, items []CompletionItem) []CompletionItem {
	if prefix == "" || len(items) == 0 {
		return items
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}

	ranks := fuzzy.RankFindFold(prefix, labels)
	sort.Stable(ranks)

	out := make([]CompletionItem, len(ranks))
	for i, r := range ranks {
		out[i] = items[r.OriginalIndex]
	}
	return out
}

// Diagnostics reports the tokenizer error or the parse error of d.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	var lexErr *lexer.Error
	switch {
	case errors.As(d.Err, &lexErr):
		pos := PositionAt(d.Content, lexErr.Position.Offset)
		return []protocol.Diagnostic{diagnostic(protocol.Range{Start: pos, End: pos}, lexErr.Error())}
	case d.Err != nil:
		return []protocol.Diagnostic{diagnostic(protocol.Range{}, d.Err.Error())}
	case d.Result == nil || d.Result.Error == nil:
		return []protocol.Diagnostic{}
	}

	e := d.Result.Error
	rng := protocol.Range{
		Start: PositionAt(d.Content, e.Token.Span.Start),
		End:   PositionAt(d.Content, e.Token.Span.End),
	}
	if e.Reason == chain.ReasonIncomplete || e.Token.Kind == chain.EndKind {
		end := PositionAt(d.Content, len(d.Content))
		rng = protocol.Range{Start: end, End: end}
	}
	return []protocol.Diagnostic{diagnostic(rng, diagnosticMessage(e))}
}

func diagnostic(rng protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

func diagnosticMessage(e *chain.ParseError) string {
	if len(e.Suggestions) == 0 {
		return e.Error()
	}
	expected := make([]string, len(e.Suggestions))
	for i, m := range e.Suggestions {
		if m.Kind == chain.MatchLiteral {
			expected[i] = fmt.Sprintf("%q", m.Value)
		} else {
			expected[i] = m.Value
		}
	}
	return e.Error() + "; expected one of: " + strings.Join(expected, ", ")
}
