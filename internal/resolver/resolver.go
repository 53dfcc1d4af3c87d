// Package resolver mediates between matchers, which need version lists,
// and the cache/network, implementing a cache-then-fetch-then-dedup
// pipeline.
package resolver

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sofmeright/version-lsp/internal/cache"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/registry"
	"github.com/sofmeright/version-lsp/internal/version"
)

// Resolver mediates between one registry's cache rows and its HTTP client.
// One Resolver exists per registrykind.Kind; the resolver map built at
// startup is immutable, so no synchronization is needed across Resolvers.
type Resolver struct {
	kind              registrykind.Kind
	cache             *cache.Cache
	client            registry.Registry
	refreshIntervalMs int64
	group             singleflight.Group

	// now is overridden in tests to make freshness deterministic; it
	// defaults to the wall clock.
	now func() int64
}

// New builds a Resolver for one registry, backed by cache and fetching
// through client when an entry is missing or stale.
func New(kind registrykind.Kind, c *cache.Cache, client registry.Registry, refreshIntervalMs int64) *Resolver {
	return &Resolver{
		kind:              kind,
		cache:             c,
		client:            client,
		refreshIntervalMs: refreshIntervalMs,
		now:               func() int64 { return time.Now().UnixMilli() },
	}
}

// Resolve returns the known versions for name, consulting the cache first
// and falling back to a deduplicated registry fetch when the cached entry
// is missing or stale.
func (r *Resolver) Resolve(ctx context.Context, name string) (version.Versions, error) {
	nowMs := r.now()

	cached, updatedAt, hit, err := r.cache.Get(ctx, r.kind, name)
	if err != nil {
		return version.Versions{}, fmt.Errorf("resolver cache lookup for %q: %w", name, err)
	}
	if hit && nowMs-updatedAt <= r.refreshIntervalMs {
		return cached, nil
	}

	fetched, err, _ := r.group.Do(name, func() (any, error) {
		versions, fetchErr := r.client.FetchAllVersions(ctx, name)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if upsertErr := r.cache.Upsert(ctx, r.kind, name, versions, r.now()); upsertErr != nil {
			return nil, fmt.Errorf("resolver cache upsert for %q: %w", name, upsertErr)
		}
		return versions, nil
	})

	if err != nil {
		if hit {
			// A stale row beats nothing: fall back to it rather than
			// surfacing a transient registry failure.
			return cached, nil
		}
		return version.Versions{}, err
	}

	return fetched.(version.Versions), nil
}
