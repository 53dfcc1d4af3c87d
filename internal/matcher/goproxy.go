package matcher

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// GoProxyMatcher implements Go module version semantics: vMAJOR.MINOR.PATCH
// (with an optional -pre suffix), compared exactly -- the Go toolchain
// itself has no range operators in go.mod, only exact requirements.
type GoProxyMatcher struct{}

func (GoProxyMatcher) RegistryKind() registrykind.Kind { return registrykind.GoProxy }

func parseGoVersion(s string) (*semver.Version, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return v, true
}

// IsExact is always true: go.mod require directives have no range
// operators, only exact module versions.
func (GoProxyMatcher) IsExact(spec string) bool { return true }

func (GoProxyMatcher) VersionExists(spec string, known []string) bool {
	specV, ok := parseGoVersion(spec)
	if !ok {
		return false
	}
	for _, k := range known {
		kv, ok := parseGoVersion(k)
		if !ok {
			continue
		}
		if specV.Equal(kv) {
			return true
		}
	}
	return false
}

func (GoProxyMatcher) CompareToLatest(spec, latest string) version.CompareVerdict {
	specV, ok := parseGoVersion(spec)
	if !ok {
		return version.Invalid
	}
	latestV, ok := parseGoVersion(latest)
	if !ok {
		return version.Invalid
	}
	switch specV.Compare(latestV) {
	case -1:
		return version.Outdated
	case 1:
		return version.Newer
	default:
		return version.Latest
	}
}
