package lspserver

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/sofmeright/version-lsp/internal/parser"
)

// toRange converts a parser.Span's byte offsets into an LSP Range, whose
// Position.Character counts UTF-16 code units as the protocol requires.
// Parsers report byte/rune columns; this is the one
// place that conversion happens, so no byte column ever reaches a
// published diagnostic.
func toRange(content []byte, span parser.Span) Range {
	lineStart := lineStartByte(content, span.Line)
	return Range{
		Start: Position{Line: span.Line, Character: utf16Column(content, lineStart, span.StartByte)},
		End:   Position{Line: span.Line, Character: utf16Column(content, lineStart, span.EndByte)},
	}
}

// lineStartByte returns the byte offset of the first byte of the given
// 0-indexed line.
func lineStartByte(content []byte, line int) int {
	seen := 0
	for i, b := range content {
		if seen == line {
			return i
		}
		if b == '\n' {
			seen++
		}
	}
	return len(content)
}

// utf16Column counts UTF-16 code units from lineStart up to byteOffset.
func utf16Column(content []byte, lineStart, byteOffset int) int {
	units := 0
	i := lineStart
	for i < byteOffset && i < len(content) {
		r, size := utf8.DecodeRune(content[i:])
		units += len(utf16.Encode([]rune{r}))
		i += size
	}
	return units
}
