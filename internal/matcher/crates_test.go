package matcher

import (
	"testing"

	"github.com/sofmeright/version-lsp/internal/version"
)

func TestCratesDefaultIsCaretLike(t *testing.T) {
	m := CratesMatcher{}
	if !m.VersionExists("1.0.0", []string{"1.5.0"}) {
		t.Error("bare 1.0.0 should behave like ^1.0.0 and admit 1.5.0")
	}
	if m.VersionExists("1.0.0", []string{"2.0.0"}) {
		t.Error("bare 1.0.0 should not admit 2.0.0")
	}
}

func TestCratesExactOperator(t *testing.T) {
	m := CratesMatcher{}
	if !m.VersionExists("=2.0.0", []string{"2.0.0"}) {
		t.Error("=2.0.0 should admit 2.0.0")
	}
	if m.VersionExists("=2.0.0", []string{"2.0.1"}) {
		t.Error("=2.0.0 should not admit 2.0.1")
	}
}

// TestCargoTildeOutdated checks a tilde-pinned Cargo dependency against a
// newer known version.
func TestCargoTildeOutdated(t *testing.T) {
	m := CratesMatcher{}
	latest := "1.1.0"
	if got := m.CompareToLatest("~1.0.100", latest); got != version.Outdated {
		t.Errorf("CompareToLatest(~1.0.100, %s) = %v, want Outdated", latest, got)
	}
}
