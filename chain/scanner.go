package chain

import (
	"sort"

	"github.com/dhamidi/chainparse/lexer"
)

// CursorKind is the kind of the zero-width token synthesized when an offset
// falls between tokens.
const CursorKind = "<cursor>"

// EndKind is the kind of the zero-width token reported when a diagnostic
// points past the last token.
const EndKind = "<end>"

// Scanner is a read cursor over a filtered token list. The cursor only moves
// forward through Advance or back through SetIndex.
type Scanner struct {
	tokens []lexer.Token
	index  int
}

func NewScanner(tokens []lexer.Token) *Scanner {
	return &Scanner{tokens: tokens}
}

// Read returns the token under the cursor without advancing. ok is false
// once every token has been consumed.
func (s *Scanner) Read() (tok lexer.Token, ok bool) {
	if s.index >= len(s.tokens) {
		return lexer.Token{}, false
	}
	return s.tokens[s.index], true
}

func (s *Scanner) Advance() {
	if s.index < len(s.tokens) {
		s.index++
	}
}

func (s *Scanner) Index() int {
	return s.index
}

func (s *Scanner) SetIndex(i int) {
	s.index = i
}

// IsEnd reports whether every token has been consumed.
func (s *Scanner) IsEnd() bool {
	return s.index == len(s.tokens)
}

// TokenAt returns the token touching offset from the left, that is the token
// with Start < offset <= End, together with its index. When offset falls in
// a gap (or before the first token) a zero-width CursorKind token positioned
// at offset is returned with index -1.
func (s *Scanner) TokenAt(offset int) (lexer.Token, int) {
	i := sort.Search(len(s.tokens), func(i int) bool {
		return s.tokens[i].Span.End >= offset
	})
	if i < len(s.tokens) && s.tokens[i].Span.Start < offset {
		return s.tokens[i], i
	}
	return lexer.Token{
		Kind:     CursorKind,
		Span:     lexer.Span{Start: offset, End: offset},
		Position: lexer.Position{Offset: offset},
	}, -1
}

// IndexBefore returns the index of the last token ending at or before
// offset, or -1.
func (s *Scanner) IndexBefore(offset int) int {
	i := sort.Search(len(s.tokens), func(i int) bool {
		return s.tokens[i].Span.End > offset
	})
	return i - 1
}

// IndexAfter returns the index of the first token starting at or after
// offset, or -1.
func (s *Scanner) IndexAfter(offset int) int {
	i := sort.Search(len(s.tokens), func(i int) bool {
		return s.tokens[i].Span.Start >= offset
	})
	if i == len(s.tokens) {
		return -1
	}
	return i
}
