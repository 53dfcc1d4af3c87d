// Package logging sets up the server's structured JSON logging sink.
// The LSP transport owns stdio for the protocol itself, so every log
// line goes to a file, never to stdout/stderr.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New opens path in append mode and returns a zerolog.Logger writing JSON
// lines to it at the given level. level is parsed the way
// VERSION_LSP_LOG / --log-level values arrive ("debug", "info", "warn",
// "error"); an unrecognised value falls back to info.
func New(path, level string) (zerolog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, f, nil
}
