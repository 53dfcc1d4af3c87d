// Package tomlscan is a minimal structural scanner over TOML source bytes,
// recovering byte-accurate spans for string values inside dependency
// tables. It is not a general TOML parser -- pelletier/go-toml/v2 already
// decodes the document faithfully -- it only walks the raw bytes far
// enough to answer "where in the file does this string literal sit",
// which go-toml/v2 (like encoding/json) discards once it unmarshals into
// Go values.
package tomlscan

import "bytes"

// Entry is one `key = "version"` pair found inside a named table, or the
// `version = "..."` field of an inline table used as a dependency value.
type Entry struct {
	Table  string // dotted table name, e.g. "dependencies" or "workspace.dependencies"
	Key    string
	Value  string // raw text between the quotes; escape sequences are not decoded
	Start  int    // byte offset of Value's first byte
	End    int    // byte offset one past Value's last byte
	Line   int    // 0-indexed
	Column int    // 1-indexed, the byte immediately after the opening quote
}

// Scan walks content line by line (TOML dependency pairs are always
// single-line in practice) and returns every string-valued pair found
// inside a `[table]` header, plus the `version` field of any inline-table
// value (`name = { version = "1.0", ... }`).
func Scan(content []byte) []Entry {
	var entries []Entry
	currentTable := ""

	pos := 0
	line := 0
	for pos <= len(content) {
		lineEnd := pos
		if idx := bytes.IndexByte(content[pos:], '\n'); idx >= 0 {
			lineEnd = pos + idx
		} else {
			lineEnd = len(content)
		}
		lineBytes := content[pos:lineEnd]

		if table, ok := tableHeader(lineBytes); ok {
			currentTable = table
		} else if key, valueStartInLine, rest, ok := keyValue(lineBytes); ok {
			entries = append(entries, parseValue(content, pos, line, currentTable, key, valueStartInLine, rest)...)
		}

		if lineEnd >= len(content) {
			break
		}
		pos = lineEnd + 1
		line++
	}
	return entries
}

// tableHeader reports whether line is a `[name]` header (not `[[name]]`,
// an array-of-tables header this scanner has no dependency use for).
func tableHeader(line []byte) (string, bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[1] == '[' {
		return "", false
	}
	end := bytes.IndexByte(trimmed, ']')
	if end < 0 {
		return "", false
	}
	return string(bytes.TrimSpace(trimmed[1:end])), true
}

// keyValue splits a `key = value...` line, skipping comments and blank
// lines. valueStartInLine is the 0-indexed byte column, within line, of
// the first non-space byte of the value.
func keyValue(line []byte) (key string, valueStartInLine int, rest []byte, ok bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] == '#' || trimmed[0] == '[' {
		return "", 0, nil, false
	}
	eq := topLevelIndex(line, '=')
	if eq < 0 {
		return "", 0, nil, false
	}
	key = string(bytes.TrimSpace(line[:eq]))
	i := eq + 1
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i >= len(line) {
		return "", 0, nil, false
	}
	return key, i, line[i:], true
}

// parseValue handles a plain string value or an inline table's `version`
// field, emitting absolute-offset Entries. lineStart is content's byte
// offset of the start of the current line.
func parseValue(content []byte, lineStart, line int, table, key string, valueStartInLine int, rest []byte) []Entry {
	if len(rest) == 0 {
		return nil
	}
	switch rest[0] {
	case '"', '\'':
		text, innerEnd, ok := readQuoted(rest)
		if !ok {
			return nil
		}
		start := lineStart + valueStartInLine + 1
		return []Entry{{
			Table:  table,
			Key:    key,
			Value:  text,
			Start:  start,
			End:    lineStart + valueStartInLine + innerEnd,
			Line:   line,
			Column: valueStartInLine + 2,
		}}
	case '{':
		end := matchingBrace(rest)
		if end < 0 {
			return nil
		}
		inner := rest[1:end]
		innerBase := valueStartInLine + 1
		for _, f := range topLevelSplit(inner, ',') {
			field, fieldOffset := f.bytes, f.offset
			fKey, fValueStartInField, fRest, ok := keyValue(field)
			if !ok || fKey != "version" {
				continue
			}
			text, innerEnd, ok := readQuoted(fRest)
			if !ok {
				continue
			}
			absValueStart := innerBase + fieldOffset + fValueStartInField
			start := lineStart + absValueStart + 1
			return []Entry{{
				Table:  table,
				Key:    key,
				Value:  text,
				Start:  start,
				End:    lineStart + absValueStart + innerEnd,
				Line:   line,
				Column: absValueStart + 2,
			}}
		}
	}
	return nil
}

// readQuoted reads a quoted literal starting at rest[0] (the opening
// quote). It returns the decoded text and the 0-indexed offset, within
// rest, of the closing quote.
func readQuoted(rest []byte) (string, int, bool) {
	if len(rest) == 0 {
		return "", 0, false
	}
	quote := rest[0]
	j := 1
	for j < len(rest) && rest[j] != quote {
		if rest[j] == '\\' && quote == '"' {
			j++
		}
		j++
	}
	if j >= len(rest) {
		return "", 0, false
	}
	return string(rest[1:j]), j, true
}

// topLevelIndex finds the first occurrence of b outside any quoted
// literal.
func topLevelIndex(s []byte, b byte) int {
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == '\\' && inQuote == '"' {
				i++
				continue
			}
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			inQuote = c
			continue
		}
		if c == b {
			return i
		}
	}
	return -1
}

// matchingBrace returns the 0-indexed offset of the '}' matching the '{'
// at s[0], or -1 if unbalanced (e.g. a multi-line inline table, which
// this scanner does not support).
func matchingBrace(s []byte) int {
	depth := 0
	inQuote := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == '\\' && inQuote == '"' {
				i++
				continue
			}
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitField is one comma-separated field from topLevelSplit, with its
// byte offset relative to the slice that was split.
type splitField struct {
	bytes  []byte
	offset int
}

// topLevelSplit splits s on sep, ignoring separators inside quotes or
// nested brackets/braces, and records each field's starting offset
// within s.
func topLevelSplit(s []byte, sep byte) []splitField {
	var fields []splitField
	depth := 0
	inQuote := byte(0)
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inQuote != 0 {
			if c == '\\' && inQuote == '"' {
				i++
				continue
			}
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			inQuote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case sep:
			if depth == 0 {
				fields = append(fields, splitField{bytes: s[start:i], offset: start})
				start = i + 1
			}
		}
	}
	fields = append(fields, splitField{bytes: s[start:], offset: start})
	return fields
}
