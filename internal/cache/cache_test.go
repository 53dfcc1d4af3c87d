package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/sofmeright/version-lsp/internal/registry"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestSchemaCreatesExpectedTables(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	for _, table := range []string{"packages", "versions"} {
		ok, err := c.TableExists(ctx, table)
		if err != nil {
			t.Fatalf("TableExists(%s): %v", table, err)
		}
		if !ok {
			t.Errorf("expected table %q to exist after Open", table)
		}
	}
}

// TestUpsertGetRoundTrip checks that a Get immediately after an Upsert
// returns exactly what was written.
func TestUpsertGetRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	want := version.Versions{Versions: []string{"4.17.19", "4.17.20", "4.17.21"}}
	if err := c.Upsert(ctx, registrykind.Npm, "lodash", want, 1000); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, updatedAt, ok, err := c.Get(ctx, registrykind.Npm, "lodash")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit after Upsert")
	}
	if !got.Equal(want) {
		t.Errorf("Get returned %+v, want %+v", got, want)
	}
	if updatedAt != 1000 {
		t.Errorf("updatedAt = %d, want 1000", updatedAt)
	}
}

func TestUpsertReplacesPriorVersionSet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	first := version.Versions{Versions: []string{"1.0.0"}}
	if err := c.Upsert(ctx, registrykind.Npm, "pkg", first, 1000); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	second := version.Versions{Versions: []string{"1.0.0", "2.0.0"}}
	if err := c.Upsert(ctx, registrykind.Npm, "pkg", second, 2000); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, updatedAt, ok, err := c.Get(ctx, registrykind.Npm, "pkg")
	if err != nil || !ok {
		t.Fatalf("Get after second Upsert: ok=%v err=%v", ok, err)
	}
	if !got.Equal(second) {
		t.Errorf("Get returned %+v, want %+v", got, second)
	}
	if updatedAt != 2000 {
		t.Errorf("updatedAt = %d, want 2000", updatedAt)
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := openTestCache(t)
	_, _, ok, err := c.Get(context.Background(), registrykind.Npm, "does-not-exist")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected a miss for an unknown package")
	}
}

func TestPackagesNeedingRefresh(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	if err := c.Upsert(ctx, registrykind.Npm, "stale", version.Versions{Versions: []string{"1.0.0"}}, 1000); err != nil {
		t.Fatalf("Upsert stale: %v", err)
	}
	if err := c.Upsert(ctx, registrykind.Npm, "fresh", version.Versions{Versions: []string{"1.0.0"}}, 9000); err != nil {
		t.Fatalf("Upsert fresh: %v", err)
	}

	keys, err := c.PackagesNeedingRefresh(ctx, 10000, 5000)
	if err != nil {
		t.Fatalf("PackagesNeedingRefresh: %v", err)
	}
	if len(keys) != 1 || keys[0].Name != "stale" {
		t.Errorf("PackagesNeedingRefresh = %+v, want only %q", keys, "stale")
	}
}

func TestCacheFailureIsErrPersistence(t *testing.T) {
	c := openTestCache(t)
	c.Close() // operating on a closed *sql.DB forces every call to fail.

	_, _, _, err := c.Get(context.Background(), registrykind.Npm, "lodash")
	if err == nil {
		t.Fatal("expected an error from Get on a closed cache")
	}
	var persistErr registry.ErrPersistence
	if !errors.As(err, &persistErr) {
		t.Errorf("Get error = %v, want errors.As to find registry.ErrPersistence", err)
	}

	err = c.Upsert(context.Background(), registrykind.Npm, "lodash", version.Versions{Versions: []string{"1.0.0"}}, 1000)
	if err == nil {
		t.Fatal("expected an error from Upsert on a closed cache")
	}
	if !errors.As(err, &persistErr) {
		t.Errorf("Upsert error = %v, want errors.As to find registry.ErrPersistence", err)
	}
}
