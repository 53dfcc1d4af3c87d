package matcher

import (
	"strings"

	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// GitHubActionsMatcher implements the tag-alias semantics GitHub Actions
// uses: a pin is either a major alias (v4), a minor alias (v4.1), a full
// semver tag (v4.1.2), or a 40-character commit SHA.
type GitHubActionsMatcher struct{}

func (GitHubActionsMatcher) RegistryKind() registrykind.Kind { return registrykind.GitHubActions }

func isCommitSHA(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// aliasMatches reports whether tag falls under the alias's prefix family,
// e.g. "v4" matches "v4", "v4.1", and "v4.1.2" but not "v40.0.0".
func aliasMatches(tag, alias string) bool {
	if tag == alias {
		return true
	}
	if !strings.HasPrefix(tag, alias) {
		return false
	}
	rest := tag[len(alias):]
	return len(rest) > 0 && (rest[0] == '.' || rest[0] == '-')
}

// IsExact reports whether spec pins a full semver tag or commit SHA,
// as opposed to a major (v4) or minor (v4.1) alias.
func (GitHubActionsMatcher) IsExact(spec string) bool {
	if isCommitSHA(spec) {
		return true
	}
	return strings.Count(spec, ".") >= 2
}

func (GitHubActionsMatcher) VersionExists(spec string, known []string) bool {
	if isCommitSHA(spec) {
		for _, k := range known {
			if k == spec {
				return true
			}
		}
		return false
	}
	for _, k := range known {
		if aliasMatches(k, spec) {
			return true
		}
	}
	return false
}

func (GitHubActionsMatcher) CompareToLatest(spec, latest string) version.CompareVerdict {
	if isCommitSHA(spec) {
		// A SHA pin has no ordering relationship to a tag-based "latest";
		// there is nothing actionable to flag without resolving the SHA to
		// a release.
		return version.Latest
	}

	if aliasMatches(latest, spec) {
		return version.Latest
	}

	specBase, ok := parseGoVersion(spec)
	if !ok {
		return version.Invalid
	}
	latestV, ok := parseGoVersion(latest)
	if !ok {
		return version.Invalid
	}
	switch specBase.Compare(latestV) {
	case -1:
		return version.Outdated
	case 1:
		return version.Newer
	default:
		return version.Latest
	}
}
