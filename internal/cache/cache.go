// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides the session-scoped query/response cache.
//
// The cache lives in an in-memory SQLite database, so it holds exactly one
// process lifetime of state: repeating a query inside a session skips the
// network round-trip, and nothing survives exit. Entries are capped and
// evicted by last access.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/vitrine-tui/internal/backend"
)

// DefaultMaxEntries is the cache cap when none is configured.
const DefaultMaxEntries = 64

// schema holds one row per answered query.
const schema = `
CREATE TABLE IF NOT EXISTS queries (
	query_hash  TEXT PRIMARY KEY,
	query       TEXT NOT NULL,
	search_json TEXT NOT NULL,
	reply       TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	last_access INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_queries_last_access ON queries(last_access);
`

// =============================================================================
// CACHE
// =============================================================================

// Cache is a session-scoped store of search results and chat replies keyed by
// normalized query text.
type Cache struct {
	db         *sql.DB
	maxEntries int
}

// Entry is one cached query outcome.
type Entry struct {
	Query  string
	Result *backend.SearchResult
	Reply  string
}

// New opens an in-memory cache. maxEntries <= 0 uses DefaultMaxEntries.
func New(maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// Every connection to ":memory:" is a distinct database; a single
	// connection keeps all statements on the same one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db, maxEntries: maxEntries}, nil
}

// Close releases the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Put stores the outcome of one answered query, replacing any previous entry
// for the same normalized text, then evicts the least recently used rows
// beyond the cap.
func (c *Cache) Put(query string, result *backend.SearchResult, reply string) error {
	searchJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding search result: %w", err)
	}

	now := time.Now().UnixNano()
	_, err = c.db.Exec(`
		INSERT INTO queries (query_hash, query, search_json, reply, created_at, last_access)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(query_hash) DO UPDATE SET
			search_json = excluded.search_json,
			reply       = excluded.reply,
			last_access = excluded.last_access`,
		hashQuery(query), query, string(searchJSON), reply, now, now)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return c.evict()
}

// Get returns the cached outcome for query, if present, and refreshes its
// access time.
func (c *Cache) Get(query string) (*Entry, bool) {
	var (
		stored     string
		searchJSON string
		reply      string
	)
	err := c.db.QueryRow(
		`SELECT query, search_json, reply FROM queries WHERE query_hash = ?`,
		hashQuery(query),
	).Scan(&stored, &searchJSON, &reply)
	if err != nil {
		return nil, false
	}

	var result backend.SearchResult
	if err := json.Unmarshal([]byte(searchJSON), &result); err != nil {
		// A row we can't decode is useless; drop it.
		_, _ = c.db.Exec(`DELETE FROM queries WHERE query_hash = ?`, hashQuery(query))
		return nil, false
	}

	_, _ = c.db.Exec(`UPDATE queries SET last_access = ? WHERE query_hash = ?`,
		time.Now().UnixNano(), hashQuery(query))

	return &Entry{Query: stored, Result: &result, Reply: reply}, true
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM queries`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	_, err := c.db.Exec(`DELETE FROM queries`)
	return err
}

// evict removes the least recently used rows beyond maxEntries.
func (c *Cache) evict() error {
	_, err := c.db.Exec(`
		DELETE FROM queries WHERE query_hash IN (
			SELECT query_hash FROM queries
			ORDER BY last_access DESC
			LIMIT -1 OFFSET ?
		)`, c.maxEntries)
	return err
}

// =============================================================================
// KEYING
// =============================================================================

// hashQuery derives the cache key: lowercase, whitespace-collapsed query
// text, hashed so arbitrary user input never reaches SQL as a key.
func hashQuery(query string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(query), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
