// Package parser implements the structural, per-ecosystem manifest
// parsers. Each parser extracts
// (name, version, byte-range) tuples from a document's raw content; none
// of them fall back to regex scraping, because the diagnostics engine
// needs byte-accurate spans to place editor squigglies correctly.
package parser

import "github.com/sofmeright/version-lsp/internal/registrykind"

// Span locates the version-spec token inside a document, quote characters
// excluded. Line is 0-indexed; Column is 1-indexed (the position right
// after an opening quote in quoted formats).
type Span struct {
	StartByte int
	EndByte   int
	Line      int
	Column    int
}

// PackageInfo is one dependency record extracted from a manifest.
type PackageInfo struct {
	Name        string
	VersionSpec string
	CommitHash  string // set only for GitHub Actions SHA pins
	Registry    registrykind.Kind
	Span        Span
}

// Parser extracts dependency records from one manifest format.
type Parser interface {
	Parse(content []byte) ([]PackageInfo, error)
}
