package matcher

import (
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// PnpmCatalogMatcher uses the same version matching logic as npm, since
// pnpm catalog entries resolve against the npm registry.
type PnpmCatalogMatcher struct{}

func (PnpmCatalogMatcher) RegistryKind() registrykind.Kind { return registrykind.PnpmCatalog }

func (PnpmCatalogMatcher) VersionExists(spec string, known []string) bool {
	return npmVersionExists(spec, known)
}

func (PnpmCatalogMatcher) CompareToLatest(spec, latest string) version.CompareVerdict {
	return npmCompareToLatest(spec, latest)
}

func (PnpmCatalogMatcher) IsExact(spec string) bool {
	return isExactSpec(spec, false)
}
