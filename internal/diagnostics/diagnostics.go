// Package diagnostics maps parsed manifest records and resolver lookups
// to the Warning/Error payloads the LSP adapter publishes.
package diagnostics

import (
	"context"
	"errors"
	"fmt"

	"github.com/sofmeright/version-lsp/internal/matcher"
	"github.com/sofmeright/version-lsp/internal/parser"
	"github.com/sofmeright/version-lsp/internal/registry"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// Severity mirrors the two levels the LSP adapter publishes.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is one finding tied to a manifest record's source span.
type Diagnostic struct {
	Span     parser.Span
	Severity Severity
	Message  string
}

// Resolver is the subset of resolver.Resolver the engine depends on,
// narrowed so tests can supply a fake without touching the cache or
// network.
type Resolver interface {
	Resolve(ctx context.Context, name string) (version.Versions, error)
}

// Logger is the one logging hook the engine needs, kept minimal so the
// engine doesn't import zerolog just to log one warning; the serve command
// adapts a zerolog.Logger to it.
type Logger interface {
	Warn(name string, err error)
}

// Engine evaluates PackageInfo records against resolver/matcher state.
type Engine struct {
	Resolvers map[registrykind.Kind]Resolver
	Matchers  map[registrykind.Kind]matcher.Matcher
	Log       Logger
}

// NewEngine builds an Engine wired to the full matcher set and one
// resolver per ecosystem.
func NewEngine(resolvers map[registrykind.Kind]Resolver, log Logger) *Engine {
	return &Engine{
		Resolvers: resolvers,
		Matchers:  matcher.All(),
		Log:       log,
	}
}

// Evaluate runs the four-step algorithm over infos, in document order,
// and returns the diagnostics to publish.
func (e *Engine) Evaluate(ctx context.Context, infos []parser.PackageInfo) []Diagnostic {
	var out []Diagnostic
	for _, info := range infos {
		if d, ok := e.evaluateOne(ctx, info); ok {
			out = append(out, d)
		}
	}
	return out
}

func (e *Engine) evaluateOne(ctx context.Context, info parser.PackageInfo) (Diagnostic, bool) {
	m, ok := e.Matchers[info.Registry]
	if !ok {
		return Diagnostic{}, false
	}
	r, ok := e.Resolvers[info.Registry]
	if !ok {
		return Diagnostic{}, false
	}

	versions, err := r.Resolve(ctx, info.Name)
	if err != nil {
		var notFound registry.ErrNotFound
		if errors.As(err, &notFound) {
			return Diagnostic{
				Span:     info.Span,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Package %s not found in registry", info.Name),
			}, true
		}
		if e.Log != nil {
			e.Log.Warn(info.Name, err)
		}
		return Diagnostic{}, false
	}

	if len(versions.Versions) == 0 {
		return Diagnostic{}, false
	}

	latest := versions.Latest()
	if !m.VersionExists(info.VersionSpec, versions.Versions) {
		if m.IsExact(info.VersionSpec) {
			return Diagnostic{
				Span:     info.Span,
				Severity: SeverityError,
				Message:  fmt.Sprintf("Version %s not found in registry", info.VersionSpec),
			}, true
		}
		return Diagnostic{}, false
	}

	switch m.CompareToLatest(info.VersionSpec, latest) {
	case version.Outdated:
		return Diagnostic{
			Span:     info.Span,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Update available: %s -> %s", info.VersionSpec, latest),
		}, true
	default: // Latest, Newer, Invalid, NotFound: nothing to publish
		return Diagnostic{}, false
	}
}
