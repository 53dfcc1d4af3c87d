package resolver

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sofmeright/version-lsp/internal/cache"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

type countingRegistry struct {
	kind  registrykind.Kind
	calls int32
	versions version.Versions
}

func (c *countingRegistry) RegistryKind() registrykind.Kind { return c.kind }

func (c *countingRegistry) FetchAllVersions(ctx context.Context, name string) (version.Versions, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.versions, nil
}

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Open(":memory:")
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// TestResolveDeduplicatesConcurrentFetches checks that k concurrent
// Resolve calls on a cold cache trigger exactly one registry fetch.
func TestResolveDeduplicatesConcurrentFetches(t *testing.T) {
	c := openTestCache(t)
	reg := &countingRegistry{
		kind:     registrykind.Npm,
		versions: version.Versions{Versions: []string{"1.0.0", "2.0.0"}},
	}
	r := New(registrykind.Npm, c, reg, 24*60*60*1000)

	const k = 20
	var wg sync.WaitGroup
	results := make([]version.Versions, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := r.Resolve(context.Background(), "lodash")
			if err != nil {
				t.Errorf("Resolve: %v", err)
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&reg.calls); got != 1 {
		t.Errorf("registry fetched %d times, want 1", got)
	}
	for i, got := range results {
		if !got.Equal(reg.versions) {
			t.Errorf("result %d = %+v, want %+v", i, got, reg.versions)
		}
	}
}

func TestResolveReturnsFreshCacheWithoutFetching(t *testing.T) {
	c := openTestCache(t)
	seeded := version.Versions{Versions: []string{"1.0.0"}}
	if err := c.Upsert(context.Background(), registrykind.Npm, "lodash", seeded, 1000); err != nil {
		t.Fatalf("seed Upsert: %v", err)
	}

	reg := &countingRegistry{kind: registrykind.Npm}
	r := New(registrykind.Npm, c, reg, 24*60*60*1000)
	r.now = func() int64 { return 2000 } // well within the refresh interval

	got, err := r.Resolve(context.Background(), "lodash")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.Equal(seeded) {
		t.Errorf("got %+v, want %+v", got, seeded)
	}
	if atomic.LoadInt32(&reg.calls) != 0 {
		t.Error("expected no registry fetch for a fresh cache hit")
	}
}

func TestResolveRefetchesStaleEntry(t *testing.T) {
	c := openTestCache(t)
	stale := version.Versions{Versions: []string{"1.0.0"}}
	if err := c.Upsert(context.Background(), registrykind.Npm, "lodash", stale, 1000); err != nil {
		t.Fatalf("seed Upsert: %v", err)
	}

	fresh := version.Versions{Versions: []string{"1.0.0", "2.0.0"}}
	reg := &countingRegistry{kind: registrykind.Npm, versions: fresh}
	r := New(registrykind.Npm, c, reg, 100)
	r.now = func() int64 { return 10_000 } // far past the refresh interval

	got, err := r.Resolve(context.Background(), "lodash")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.Equal(fresh) {
		t.Errorf("got %+v, want %+v", got, fresh)
	}
	if atomic.LoadInt32(&reg.calls) != 1 {
		t.Error("expected exactly one refresh fetch")
	}
}
