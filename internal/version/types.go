// Package version holds the data types shared by the cache, resolver, and
// matcher packages: the known-version set for a package and the verdict a
// matcher reaches when comparing a declared spec against it.
package version

// Versions is the cached knowledge for one (registry, name) key: an ordered
// list of version strings oldest-first (the last element is "latest"), plus
// any distribution tags the upstream registry exposes (e.g. "latest",
// "beta"). This is the canonical shape; see DESIGN.md for why a leaner,
// timestamp-less alternative was rejected.
type Versions struct {
	Versions []string
	DistTags map[string]string
}

// Latest returns the newest known version, or "" if none are known.
func (v Versions) Latest() string {
	if len(v.Versions) == 0 {
		return ""
	}
	return v.Versions[len(v.Versions)-1]
}

// Equal reports whether two Versions carry the same version list and dist
// tags, used by resolver dedup tests to assert byte-identical results.
func (v Versions) Equal(other Versions) bool {
	if len(v.Versions) != len(other.Versions) {
		return false
	}
	for i := range v.Versions {
		if v.Versions[i] != other.Versions[i] {
			return false
		}
	}
	if len(v.DistTags) != len(other.DistTags) {
		return false
	}
	for k, val := range v.DistTags {
		if other.DistTags[k] != val {
			return false
		}
	}
	return true
}

// CompareVerdict is the closed set of outcomes a matcher can reach when
// comparing a declared version spec against the newest known version.
type CompareVerdict int

const (
	// Latest means the declared spec already accepts the newest known version.
	Latest CompareVerdict = iota
	// Outdated means the newest known version is strictly greater than the
	// declared spec's base version.
	Outdated
	// Newer means the declared spec's base version exceeds anything known
	// to the registry (the editor is ahead of what's been indexed).
	Newer
	// NotFound means the declared version does not satisfy any known
	// version; only reachable when the spec pins an exact version.
	NotFound
	// Invalid means the spec or a registry version failed to parse.
	Invalid
)

func (v CompareVerdict) String() string {
	switch v {
	case Latest:
		return "Latest"
	case Outdated:
		return "Outdated"
	case Newer:
		return "Newer"
	case NotFound:
		return "NotFound"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}
