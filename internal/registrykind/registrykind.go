// Package registrykind defines the closed set of package ecosystems the
// server understands and the filename-to-ecosystem detection rule.
package registrykind

import "strings"

// Kind identifies one supported package ecosystem. The set is closed and
// drives which parser, matcher, and registry client handle a document.
type Kind string

const (
	GitHubActions Kind = "github-actions"
	Npm           Kind = "npm"
	CratesIo      Kind = "crates-io"
	GoProxy       Kind = "go-proxy"
	PnpmCatalog   Kind = "pnpm-catalog"
)

// String implements fmt.Stringer for log-friendly output.
func (k Kind) String() string {
	return string(k)
}

// Detect maps a document path or URI to the ecosystem responsible for it.
// The match is on the final path segment (and, for GitHub Actions, the
// enclosing .github/workflows directory), so it works equally well against
// plain filesystem paths and file:// URIs.
func Detect(path string) (Kind, bool) {
	path = strings.TrimSuffix(path, "/")
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}

	switch base {
	case "package.json":
		return Npm, true
	case "Cargo.toml":
		return CratesIo, true
	case "go.mod":
		return GoProxy, true
	case "pnpm-workspace.yaml":
		return PnpmCatalog, true
	}

	if strings.Contains(path, ".github/workflows/") && (strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")) {
		return GitHubActions, true
	}

	return "", false
}
