// Package cache implements a persistent, keyed, time-stamped store of
// package-version lists. It is backed by
// an embedded SQLite database opened through database/sql, using
// modernc.org/sqlite so the server has no cgo dependency.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	regerrs "github.com/sofmeright/version-lsp/internal/registry"
	"github.com/sofmeright/version-lsp/internal/registrykind"
	"github.com/sofmeright/version-lsp/internal/version"
)

const schema = `
CREATE TABLE IF NOT EXISTS packages (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	registry      TEXT NOT NULL,
	name          TEXT NOT NULL,
	updated_at_ms INTEGER NOT NULL,
	UNIQUE(registry, name)
);
CREATE INDEX IF NOT EXISTS idx_packages_updated_at ON packages(updated_at_ms);
CREATE INDEX IF NOT EXISTS idx_packages_registry_name ON packages(registry, name);

CREATE TABLE IF NOT EXISTS versions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	package_id INTEGER NOT NULL REFERENCES packages(id) ON DELETE CASCADE,
	version    TEXT NOT NULL,
	UNIQUE(package_id, version)
);
CREATE INDEX IF NOT EXISTS idx_versions_package_id ON versions(package_id);
`

// CacheKey identifies one cached package entry.
type CacheKey struct {
	Registry registrykind.Kind
	Name     string
}

// Cache is a handle onto the persistent version store. A single *sql.DB
// pool backs it; SQLite's own transaction isolation provides the
// serializability guarantee between readers and writers -- this package
// adds no coarse lock of its own.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and ensures the
// packages/versions schema exists. Schema creation is idempotent and
// tolerates a database created by a prior run.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, regerrs.ErrPersistence{Err: fmt.Errorf("open cache database: %w", err)}
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: one writer at a time per file.

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, regerrs.ErrPersistence{Err: fmt.Errorf("enable foreign keys: %w", err)}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, regerrs.ErrPersistence{Err: fmt.Errorf("create schema: %w", err)}
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// TableExists is a bootstrap sanity check used by callers that want to
// confirm the schema migrated successfully before relying on the cache.
func (c *Cache) TableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := c.db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
	).Scan(&count)
	if err != nil {
		return false, regerrs.ErrPersistence{Err: fmt.Errorf("check table existence: %w", err)}
	}
	return count > 0, nil
}

// Get returns the cached versions for (registry, name), the millisecond
// timestamp of the last upsert, and whether an entry was found at all.
// Distribution tags are not part of the persisted row: a hit always has a
// nil DistTags map.
func (c *Cache) Get(ctx context.Context, registry registrykind.Kind, name string) (version.Versions, int64, bool, error) {
	var packageID int64
	var updatedAtMs int64
	err := c.db.QueryRowContext(ctx,
		`SELECT id, updated_at_ms FROM packages WHERE registry = ? AND name = ?`,
		string(registry), name,
	).Scan(&packageID, &updatedAtMs)
	if err == sql.ErrNoRows {
		return version.Versions{}, 0, false, nil
	}
	if err != nil {
		return version.Versions{}, 0, false, regerrs.ErrPersistence{Err: fmt.Errorf("query package row: %w", err)}
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT version FROM versions WHERE package_id = ? ORDER BY id ASC`, packageID,
	)
	if err != nil {
		return version.Versions{}, 0, false, regerrs.ErrPersistence{Err: fmt.Errorf("query versions: %w", err)}
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return version.Versions{}, 0, false, regerrs.ErrPersistence{Err: fmt.Errorf("scan version row: %w", err)}
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return version.Versions{}, 0, false, regerrs.ErrPersistence{Err: fmt.Errorf("iterate version rows: %w", err)}
	}

	return version.Versions{Versions: versions}, updatedAtMs, true, nil
}

// Upsert replaces the entire version set for (registry, name) and sets
// updated_at_ms = nowMs, all within one transaction. It is safe to call
// concurrently with Get for the same key: a reader observes either the
// pre-write or the post-write state, never a partial list.
func (c *Cache) Upsert(ctx context.Context, registry registrykind.Kind, name string, versions version.Versions, nowMs int64) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("begin upsert transaction: %w", err)}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO packages(registry, name, updated_at_ms) VALUES (?, ?, ?)
		 ON CONFLICT(registry, name) DO UPDATE SET updated_at_ms = excluded.updated_at_ms`,
		string(registry), name, nowMs,
	); err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("upsert package row: %w", err)}
	}

	// When the row already existed the insert took the ON CONFLICT branch,
	// which leaves SQLite's last-insert rowid at whatever row this
	// connection inserted before, so LastInsertId cannot identify the
	// package. Look the id up directly.
	var packageID int64
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM packages WHERE registry = ? AND name = ?`, string(registry), name,
	).Scan(&packageID); err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("resolve package id: %w", err)}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM versions WHERE package_id = ?`, packageID); err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("clear stale versions: %w", err)}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO versions(package_id, version) VALUES (?, ?)`)
	if err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("prepare version insert: %w", err)}
	}
	defer stmt.Close()

	for _, v := range versions.Versions {
		if _, err := stmt.ExecContext(ctx, packageID, v); err != nil {
			return regerrs.ErrPersistence{Err: fmt.Errorf("insert version %q: %w", v, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return regerrs.ErrPersistence{Err: fmt.Errorf("commit upsert transaction: %w", err)}
	}
	return nil
}

// PackagesNeedingRefresh returns every key whose last update is older than
// intervalMs relative to nowMs.
func (c *Cache) PackagesNeedingRefresh(ctx context.Context, nowMs, intervalMs int64) ([]CacheKey, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT registry, name FROM packages WHERE ? - updated_at_ms > ?`, nowMs, intervalMs,
	)
	if err != nil {
		return nil, regerrs.ErrPersistence{Err: fmt.Errorf("query stale packages: %w", err)}
	}
	defer rows.Close()

	var keys []CacheKey
	for rows.Next() {
		var registry, name string
		if err := rows.Scan(&registry, &name); err != nil {
			return nil, regerrs.ErrPersistence{Err: fmt.Errorf("scan stale package row: %w", err)}
		}
		keys = append(keys, CacheKey{Registry: registrykind.Kind(registry), Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, regerrs.ErrPersistence{Err: fmt.Errorf("iterate stale package rows: %w", err)}
	}
	return keys, nil
}
