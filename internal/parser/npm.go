package parser

import (
	"github.com/sofmeright/version-lsp/internal/parser/jsonscan"
	"github.com/sofmeright/version-lsp/internal/registrykind"
)

// npmDependencyFields lists the package.json object keys this parser
// inspects, in the order their findings are emitted when all are present.
var npmDependencyFields = []string{
	"dependencies",
	"devDependencies",
	"peerDependencies",
}

// NpmParser extracts dependency records from a package.json document.
type NpmParser struct{}

// Parse implements Parser.
func (NpmParser) Parse(content []byte) ([]PackageInfo, error) {
	root, err := jsonscan.Parse(content)
	if err != nil {
		return nil, err
	}
	if root.Kind != jsonscan.KindObject {
		return nil, nil
	}

	var out []PackageInfo
	for _, field := range npmDependencyFields {
		group, ok := lookup(root, field)
		if !ok || group.Kind != jsonscan.KindObject {
			continue
		}
		for _, dep := range group.Members {
			if dep.Value.Kind != jsonscan.KindString {
				continue
			}
			if !isNpmRegistrySpec(dep.Value.Str) {
				continue
			}
			out = append(out, PackageInfo{
				Name:        dep.Key,
				VersionSpec: dep.Value.Str,
				Registry:    registrykind.Npm,
				Span:        spanFromString(dep.Value),
			})
		}
	}
	return out, nil
}

// isNpmRegistrySpec reports whether a package.json dependency value names
// a registry version range rather than a local path, git URL, or tarball
// reference -- those point somewhere this system cannot check freshness
// against and are silently skipped.
func isNpmRegistrySpec(spec string) bool {
	if spec == "" {
		return false
	}
	switch spec[0] {
	case '/', '.':
		return false
	}
	for _, prefix := range []string{"file:", "git:", "git+", "http:", "http+", "https:", "github:", "npm:", "workspace:"} {
		if hasPrefix(spec, prefix) {
			return false
		}
	}
	return true
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func lookup(obj jsonscan.Node, key string) (jsonscan.Node, bool) {
	for _, m := range obj.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return jsonscan.Node{}, false
}

// spanFromString converts a jsonscan string node (quotes excluded already)
// into the Span convention used across this parser package: 0-indexed
// line, 1-indexed column immediately after the opening quote.
func spanFromString(n jsonscan.Node) Span {
	return Span{
		StartByte: n.Start,
		EndByte:   n.End,
		Line:      n.Line,
		Column:    n.Column + 2,
	}
}
