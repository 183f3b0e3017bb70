package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// lineOffsets returns the byte offset at which each line starts.
func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

func utf16Len(r rune) int {
	if r < 0x10000 {
		return 1
	}
	return 2
}

// OffsetAt converts an LSP position (0-based line, UTF-16 character) to a
// byte offset into text. Positions past the end of a line or of the text
// are clamped.
func OffsetAt(text string, line, character int) int {
	lines := lineOffsets(text)
	if line < 0 {
		return 0
	}
	if line >= len(lines) {
		return len(text)
	}
	i := lines[line]
	for need := character; i < len(text) && need > 0; {
		r, sz := utf8.DecodeRuneInString(text[i:])
		if r == '\n' || r == '\r' {
			break
		}
		need -= utf16Len(r)
		i += sz
	}
	return i
}

// PositionAt converts a byte offset into text to an LSP position.
func PositionAt(text string, offset int) protocol.Position {
	offset = max(0, min(offset, len(text)))
	lines := lineOffsets(text)

	line := 0
	for line+1 < len(lines) && lines[line+1] <= offset {
		line++
	}
	character := 0
	for k := lines[line]; k < offset; {
		r, sz := utf8.DecodeRuneInString(text[k:])
		character += utf16Len(r)
		k += sz
	}
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(character)}
}
