// Package config resolves the server's filesystem locations and runtime
// knobs. It deliberately stays a handful of plain functions rather than a
// struct-and-loader abstraction sized for a YAML file that does not exist
// here.
package config

import (
	"os"
	"path/filepath"
)

// appDirName is the subdirectory this server keeps under the resolved
// data directory.
const appDirName = "version-lsp"

// DefaultRefreshIntervalMs is how long a cached package's version list is
// considered fresh before the resolver refetches it.
const DefaultRefreshIntervalMs int64 = 24 * 60 * 60 * 1000

// DataDir resolves the directory this server stores its cache and log
// file under: XDG_DATA_HOME, then $HOME/.local/share, then the current
// directory, each joined with "version-lsp".
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", appDirName)
	}
	return appDirName
}

// DBPath is the SQLite cache file path under DataDir.
func DBPath() string {
	return filepath.Join(DataDir(), "versions.db")
}

// LogPath is the structured log file path under DataDir.
func LogPath() string {
	return filepath.Join(DataDir(), "version-lsp.log")
}

// LogLevel reads VERSION_LSP_LOG, defaulting to "info" the way the
// original tool falls back when its own EnvFilter is unset.
func LogLevel() string {
	if level := os.Getenv("VERSION_LSP_LOG"); level != "" {
		return level
	}
	return "info"
}

// EnsureDataDir creates DataDir (and any missing parents) if absent.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o755)
}
