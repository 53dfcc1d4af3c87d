// Package registry implements the HTTP clients that speak to each
// upstream package registry and normalise its response into an
// oldest-first version.Versions value.
package registry

import (
	"context"

	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

// Registry fetches the full known-version list for one package from one
// ecosystem's upstream source.
type Registry interface {
	RegistryKind() registrykind.Kind
	FetchAllVersions(ctx context.Context, name string) (version.Versions, error)
}
