package parser

import "bytes"

// byteOffset converts a 1-indexed (line, column) pair, as reported by
// yaml.v3's yaml.Node, into a byte offset into content. yaml.v3 doesn't
// expose byte offsets directly, only line/column, so both YAML-based
// parsers in this package share this conversion.
func byteOffset(content []byte, line, column int) int {
	offset := 0
	remaining := content
	for l := 1; l < line; l++ {
		idx := bytes.IndexByte(remaining, '\n')
		if idx < 0 {
			return len(content)
		}
		offset += idx + 1
		remaining = remaining[idx+1:]
	}
	return offset + column - 1
}

// positionAt converts an absolute byte offset into content into the
// 0-indexed line / 1-indexed column convention used by Span. Parsers that
// already carry an absolute byte offset (golang.org/x/mod/modfile's
// Position.Byte, in particular) use this instead of byteOffset.
func positionAt(content []byte, offset int) (line, column int) {
	line = 0
	lastNewline := -1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return line, offset - lastNewline
}

// yamlSpan builds a Span for a scalar node spanning the given text,
// positioned by the node's 1-indexed line/column (as yaml.v3 reports
// them). Line is converted to the 0-indexed convention used elsewhere in
// this package.
func yamlSpan(content []byte, line, column int, text string) Span {
	start := byteOffset(content, line, column)
	return Span{
		StartByte: start,
		EndByte:   start + len(text),
		Line:      line - 1,
		Column:    column,
	}
}
