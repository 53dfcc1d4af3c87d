package matcher

import (
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// NpmMatcher implements the npm range grammar: exact, comparison operators,
// caret, tilde, "*", and MAJOR.x/MAJOR.MINOR.x wildcards. A bare version
// with no operator is exact, unlike Cargo's caret default.
type NpmMatcher struct{}

func (NpmMatcher) RegistryKind() registrykind.Kind { return registrykind.Npm }

func (NpmMatcher) VersionExists(spec string, known []string) bool {
	return npmVersionExists(spec, known)
}

func (NpmMatcher) CompareToLatest(spec, latest string) version.CompareVerdict {
	return npmCompareToLatest(spec, latest)
}

func (NpmMatcher) IsExact(spec string) bool {
	return isExactSpec(spec, false)
}

// npmVersionExists and npmCompareToLatest are free functions so the pnpm
// catalog matcher -- which is behaviourally identical, since pnpm catalogs
// resolve against the npm registry -- can reuse them without embedding.
func npmVersionExists(spec string, known []string) bool {
	return versionExists(spec, known, false)
}

func npmCompareToLatest(spec, latest string) version.CompareVerdict {
	return compareToLatest(spec, latest, false)
}
