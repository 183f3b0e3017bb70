package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestOffsetAt(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		line      int
		character int
		want      int
	}{
		{"start", "ab\ncd", 0, 0, 0},
		{"second line", "ab\ncd", 1, 1, 4},
		{"past end of line", "ab\ncd", 0, 10, 2},
		{"past last line", "ab", 5, 0, 2},
		{"negative line", "ab", -1, 0, 0},
		{"surrogate pair", "a😀b", 0, 3, 5},
		{"crlf", "ab\r\ncd", 0, 9, 2},
		{"two byte rune", "é=1", 0, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetAt(tt.text, tt.line, tt.character))
		})
	}
}

func TestPositionAt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   protocol.Position
	}{
		{"start", "ab\ncd", 0, protocol.Position{Line: 0, Character: 0}},
		{"second line", "ab\ncd", 4, protocol.Position{Line: 1, Character: 1}},
		{"after newline", "ab\n", 3, protocol.Position{Line: 1, Character: 0}},
		{"surrogate pair", "a😀b", 5, protocol.Position{Line: 0, Character: 3}},
		{"clamped", "ab", 99, protocol.Position{Line: 0, Character: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionAt(tt.text, tt.offset))
		})
	}
}

func TestPositionRoundTrip(t *testing.T) {
	text := "select a😀,\n  b from t"
	for offset := 0; offset <= len(text); offset++ {
		if offset > 8 && offset < 12 {
			// inside the emoji
			continue
		}
		pos := PositionAt(text, offset)
		assert.Equal(t, offset, OffsetAt(text, int(pos.Line), int(pos.Character)), "offset %d", offset)
	}
}
