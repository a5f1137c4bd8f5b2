// Copyright 2024 The buildlogscan Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache is a small sqlite3-backed store of prior build-log
// classifications, keyed by a content hash of the log. Re-scanning an
// unchanged log (a common case in batch mode, where the same failing
// build is retried and re-fetched repeatedly) hits the cache instead
// of re-running the scanner. Schema changes are applied with
// golang-migrate, the same embedded-migrations pattern used elsewhere
// in this codebase's ancestry for a Postgres-backed store, adapted
// here to sqlite3 since a single-host classification cache has no
// need for a client/server database.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/jelmer/buildlogscan/problem"
)

//go:embed migrations
var migrationsFS embed.FS

// Cache is a handle on the classification store. The zero value is
// not usable; construct one with Open.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite3 database at path and
// brings its schema up to date.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", strippedPath(path), err)
	}
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("cache: sqlite3 migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("cache: migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("cache: migrate.NewWithInstance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("cache: applying migrations: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// KeyForLines derives a stable cache key from a log's content, so an
// unchanged log always hashes to the same key regardless of where it
// was fetched from.
func KeyForLines(lines []string) string {
	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Entry is a previously stored classification result.
type Entry struct {
	Problem     problem.Problem
	Description string
	CreatedAt   time.Time
}

// Lookup returns the cached classification for key, if any.
func (c *Cache) Lookup(ctx context.Context, key string) (Entry, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT kind, payload, description, created_at FROM classifications WHERE key = ?`, key)

	var kind, payload, description string
	var createdAt time.Time
	if err := row.Scan(&kind, &payload, &description, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("cache: lookup %s: %w", key, err)
	}

	entry := Entry{Description: description, CreatedAt: createdAt}
	if kind != "" {
		p, err := problem.FromJSON(kind, []byte(payload))
		if err != nil {
			return Entry{}, false, fmt.Errorf("cache: decoding cached %s: %w", kind, err)
		}
		entry.Problem = p
	}
	return entry, true, nil
}

// Store records (or overwrites) the classification for key.
func (c *Cache) Store(ctx context.Context, key string, p problem.Problem, description string) error {
	var kind string
	payload := []byte("{}")
	if p != nil {
		kind = p.Kind()
		b, err := problem.MarshalJSON(p)
		if err != nil {
			return fmt.Errorf("cache: encoding %s: %w", kind, err)
		}
		payload = b
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO classifications (key, kind, payload, description, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			payload = excluded.payload,
			description = excluded.description,
			created_at = excluded.created_at`,
		key, kind, string(payload), description, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cache: storing %s: %w", key, err)
	}
	return nil
}

// strippedPath trims a sqlite3 DSN down to a bare filesystem path, for
// error messages that shouldn't leak any "?_foreign_keys=on"-style
// query parameters a caller might have appended.
func strippedPath(dsn string) string {
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		return dsn[:i]
	}
	return dsn
}
