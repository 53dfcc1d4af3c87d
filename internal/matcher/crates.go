package matcher

import (
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// CratesMatcher implements Cargo's range grammar. It differs from npm in
// two ways: a bare version with no operator is caret-like by default, and
// a leading "=" pins an exact version.
type CratesMatcher struct{}

func (CratesMatcher) RegistryKind() registrykind.Kind { return registrykind.CratesIo }

func (CratesMatcher) VersionExists(spec string, known []string) bool {
	return versionExists(spec, known, true)
}

func (CratesMatcher) CompareToLatest(spec, latest string) version.CompareVerdict {
	return compareToLatest(spec, latest, true)
}

func (CratesMatcher) IsExact(spec string) bool {
	return isExactSpec(spec, true)
}
