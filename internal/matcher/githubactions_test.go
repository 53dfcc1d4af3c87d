package matcher

import (
	"testing"

	"github.com/sofmeright/version-lsp/internal/version"
)

func TestGitHubActionsAliasMatching(t *testing.T) {
	m := GitHubActionsMatcher{}
	known := []string{"v3.0.0", "v4.0.0", "v4.1.0", "v4.1.2"}

	if !m.VersionExists("v4", known) {
		t.Error("v4 alias should match v4.x tags")
	}
	if m.VersionExists("v40", known) {
		t.Error("v40 should not match v4.x tags by accidental string prefix")
	}
	if !m.VersionExists("v4.1", known) {
		t.Error("v4.1 minor alias should match v4.1.x tags")
	}
}

func TestGitHubActionsSHAPin(t *testing.T) {
	m := GitHubActionsMatcher{}
	sha := "aabbccddeeff00112233445566778899aabbccdd"
	if !m.VersionExists(sha, []string{sha}) {
		t.Error("exact SHA should be found when present")
	}
	if m.VersionExists(sha, []string{"v4.0.0"}) {
		t.Error("SHA should not match unrelated tags")
	}
}

func TestGitHubActionsCompareToLatest(t *testing.T) {
	m := GitHubActionsMatcher{}
	if got := m.CompareToLatest("v4", "v4.1.2"); got != version.Latest {
		t.Errorf("v4 alias against v4.1.2 latest = %v, want Latest", got)
	}
	if got := m.CompareToLatest("v3", "v4.1.2"); got != version.Outdated {
		t.Errorf("v3 against v4.1.2 latest = %v, want Outdated", got)
	}
}
