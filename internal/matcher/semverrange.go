package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/sofmeright/version-lsp/internal/version"
)

// rangeKind tags the shape a version spec was parsed as, used only to
// decide how to compute the spec's "base" version for CompareToLatest --
// VersionExists always delegates the actual satisfiability question to a
// Masterminds/semver constraint built from the (possibly rewritten) spec.
type rangeKind int

const (
	kindInvalid rangeKind = iota
	kindExact
	kindCaret
	kindTilde
	kindGte
	kindGt
	kindLte
	kindLt
	kindAny
	kindWildcard
)

var wildcardMajor = regexp.MustCompile(`^(\d+)\.[xX*]$`)
var wildcardMinor = regexp.MustCompile(`^(\d+)\.(\d+)\.[xX*]$`)

// classifyRange parses spec per the npm/Cargo precedence order: >=, <=,
// >, <, ^, ~, the literal "*", MAJOR.x /
// MAJOR.MINOR.x wildcards, then a leading "=" (an exact pin, for npm and
// Cargo alike), and finally a bare version. When defaultCaret is true a bare version with no
// operator is treated as caret (Cargo's own default), matching npm/pnpm
// otherwise treating it as exact.
//
// It returns the range kind, the "base" version used for Outdated/Newer
// comparison, and the constraint string to hand to semver.NewConstraint
// for satisfiability checks.
func classifyRange(spec string, defaultCaret bool) (kind rangeKind, base *semver.Version, constraintSpec string, ok bool) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return kindInvalid, nil, "", false
	}

	switch {
	case strings.HasPrefix(s, ">="):
		v, err := semver.NewVersion(strings.TrimSpace(s[2:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindGte, v, s, true

	case strings.HasPrefix(s, "<="):
		v, err := semver.NewVersion(strings.TrimSpace(s[2:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindLte, v, s, true

	case strings.HasPrefix(s, ">"):
		v, err := semver.NewVersion(strings.TrimSpace(s[1:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindGt, v, s, true

	case strings.HasPrefix(s, "<"):
		v, err := semver.NewVersion(strings.TrimSpace(s[1:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindLt, v, s, true

	case strings.HasPrefix(s, "^"):
		v, err := semver.NewVersion(strings.TrimSpace(s[1:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindCaret, v, s, true

	case strings.HasPrefix(s, "~"):
		v, err := semver.NewVersion(strings.TrimSpace(s[1:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindTilde, v, s, true

	case s == "*":
		return kindAny, nil, s, true

	case wildcardMajor.MatchString(s):
		m := wildcardMajor.FindStringSubmatch(s)
		major, _ := strconv.ParseInt(m[1], 10, 64)
		v := semver.New(uint64(major), 0, 0, "", "")
		return kindWildcard, v, s, true

	case wildcardMinor.MatchString(s):
		m := wildcardMinor.FindStringSubmatch(s)
		major, _ := strconv.ParseInt(m[1], 10, 64)
		minor, _ := strconv.ParseInt(m[2], 10, 64)
		v := semver.New(uint64(major), uint64(minor), 0, "", "")
		return kindWildcard, v, s, true

	case strings.HasPrefix(s, "="):
		v, err := semver.NewVersion(strings.TrimSpace(s[1:]))
		if err != nil {
			return kindInvalid, nil, "", false
		}
		return kindExact, v, s, true

	default:
		v, err := semver.NewVersion(s)
		if err != nil {
			return kindInvalid, nil, "", false
		}
		if defaultCaret {
			return kindCaret, v, "^" + s, true
		}
		return kindExact, v, s, true
	}
}

// isExactSpec reports whether spec resolves to a single pinned version
// rather than a range.
func isExactSpec(spec string, defaultCaret bool) bool {
	kind, _, _, ok := classifyRange(spec, defaultCaret)
	return ok && kind == kindExact
}

// versionExists reports whether some member of known satisfies spec.
func versionExists(spec string, known []string, defaultCaret bool) bool {
	_, _, constraintSpec, ok := classifyRange(spec, defaultCaret)
	if !ok {
		return false
	}
	constraint, err := semver.NewConstraint(constraintSpec)
	if err != nil {
		return false
	}
	for _, k := range known {
		kv, err := semver.NewVersion(k)
		if err != nil {
			continue
		}
		if constraint.Check(kv) {
			return true
		}
	}
	return false
}

// compareToLatest classifies spec against the single newest known version.
func compareToLatest(spec, latest string, defaultCaret bool) version.CompareVerdict {
	kind, base, constraintSpec, ok := classifyRange(spec, defaultCaret)
	if !ok {
		return version.Invalid
	}
	if kind == kindAny {
		return version.Latest
	}

	latestV, err := semver.NewVersion(latest)
	if err != nil {
		return version.Invalid
	}

	if constraint, err := semver.NewConstraint(constraintSpec); err == nil && constraint.Check(latestV) {
		return version.Latest
	}

	if base == nil {
		return version.Invalid
	}

	switch base.Compare(latestV) {
	case -1:
		return version.Outdated
	case 1:
		return version.Newer
	default:
		return version.Latest
	}
}
