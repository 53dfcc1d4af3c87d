package parser

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sofmeright/version-lsp/internal/parser/tomlscan"
	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// cargoDependencyTables lists the Cargo.toml tables this parser inspects.
var cargoDependencyTables = map[string]bool{
	"dependencies":           true,
	"dev-dependencies":       true,
	"build-dependencies":     true,
	"workspace.dependencies": true,
}

// CargoTomlParser extracts dependency records from a Cargo.toml document.
type CargoTomlParser struct{}

// Parse implements Parser. go-toml/v2 does the actual decoding -- it is the
// authority on what a table's entries resolve to, including the version
// field buried inside an inline table (`serde = { version = "1.0" }`) or a
// bare string (`anyhow = "1.0"`). tomlscan only answers the question
// go-toml/v2 can't: where in the source bytes that string literal sits.
// A malformed document is rejected here before tomlscan ever runs over it.
func (CargoTomlParser) Parse(content []byte) ([]PackageInfo, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	var out []PackageInfo
	for _, e := range tomlscan.Scan(content) {
		if !cargoDependencyTables[e.Table] {
			continue
		}
		deps, ok := dottedTable(doc, e.Table)
		if !ok {
			continue
		}
		spec, ok := dependencySpec(deps[e.Key])
		if !ok {
			continue
		}
		out = append(out, PackageInfo{
			Name:        e.Key,
			VersionSpec: spec,
			Registry:    registrykind.CratesIo,
			Span: Span{
				StartByte: e.Start,
				EndByte:   e.End,
				Line:      e.Line,
				Column:    e.Column,
			},
		})
	}
	return out, nil
}

// dottedTable walks a dotted table path ("workspace.dependencies") through
// a decoded document.
func dottedTable(doc map[string]any, dotted string) (map[string]any, bool) {
	cur := doc
	for _, part := range strings.Split(dotted, ".") {
		next, ok := cur[part]
		if !ok {
			return nil, false
		}
		m, ok := next.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = m
	}
	return cur, true
}

// dependencySpec extracts the version requirement go-toml/v2 decoded for a
// dependency entry, whether it's a bare string or an inline table carrying
// a "version" field.
func dependencySpec(entry any) (string, bool) {
	switch v := entry.(type) {
	case string:
		return v, true
	case map[string]any:
		ver, ok := v["version"].(string)
		return ver, ok
	default:
		return "", false
	}
}
