// Package matcher implements the per-ecosystem semantic-version range
// parsers and satisfiability/comparison oracles that sit at the center of
// the diagnostics pipeline. Matchers are pure, stateless, and safe for
// concurrent use; the registry-kind-to-matcher mapping is built once at
// startup and never mutated afterward.
package matcher

import (
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// Matcher evaluates one ecosystem's version-spec syntax against a set of
// known registry versions.
type Matcher interface {
	RegistryKind() registrykind.Kind

	// VersionExists reports whether some version in known satisfies spec.
	VersionExists(spec string, known []string) bool

	// CompareToLatest classifies spec against the single newest known
	// version (conventionally known[len(known)-1]).
	CompareToLatest(spec, latest string) version.CompareVerdict

	// IsExact reports whether spec pins one specific version rather than
	// admitting a range -- the diagnostics engine only escalates a failed
	// VersionExists to an error for exact pins.
	IsExact(spec string) bool
}

// All returns the fixed set of matchers, one per registrykind.Kind, built
// fresh (matchers hold no state, so "built fresh" and "built once" are
// observationally identical; callers typically call this once at startup
// and keep the map for the process lifetime).
func All() map[registrykind.Kind]Matcher {
	return map[registrykind.Kind]Matcher{
		registrykind.Npm:           NpmMatcher{},
		registrykind.PnpmCatalog:   PnpmCatalogMatcher{},
		registrykind.CratesIo:      CratesMatcher{},
		registrykind.GoProxy:       GoProxyMatcher{},
		registrykind.GitHubActions: GitHubActionsMatcher{},
	}
}
