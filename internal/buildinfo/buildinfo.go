// Package buildinfo holds the version identifiers injected at build time
// via -ldflags.
package buildinfo

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("version-lsp %s (%s, %s)", Version, Commit, BuildDate)
}
