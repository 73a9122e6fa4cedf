// Package cache implements a small sqlite-backed store of past analysis
// runs, keyed by (file path, content hash), grounded on the teacher's
// internal/evaluator/builtins_sql.go database/sql + sqlite-driver idiom,
// repurposed from a language builtin into the CLI's own persistence.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cslang/compiscript/internal/diagnostics"
)

// Entry is one cached analysis result for a file at a particular content
// hash.
type Entry struct {
	FilePath    string
	ContentHash string
	RunID       string
	RanAt       time.Time
	Diagnostics []*diagnostics.Diagnostic
}

// DiagnosticsCache is a handle to the on-disk sqlite store.
type DiagnosticsCache struct {
	db *sql.DB
}

// Open creates or attaches to the sqlite database at path, creating its
// schema on first use.
func Open(path string) (*DiagnosticsCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: ping %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	file_path    TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	run_id       TEXT NOT NULL,
	ran_at       TEXT NOT NULL,
	diagnostics  TEXT NOT NULL,
	PRIMARY KEY (file_path, content_hash)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate schema: %w", err)
	}
	return &DiagnosticsCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *DiagnosticsCache) Close() error { return c.db.Close() }

// HashContent computes the cache key's content hash for source.
func HashContent(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Put records a completed analysis run, overwriting any prior entry for
// the same (file path, content hash).
func (c *DiagnosticsCache) Put(filePath, contentHash, runID string, diags []*diagnostics.Diagnostic) error {
	blob, err := json.Marshal(diags)
	if err != nil {
		return fmt.Errorf("cache: marshal diagnostics: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT INTO runs (file_path, content_hash, run_id, ran_at, diagnostics)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(file_path, content_hash) DO UPDATE SET
			run_id = excluded.run_id, ran_at = excluded.ran_at, diagnostics = excluded.diagnostics`,
		filePath, contentHash, runID, time.Now().UTC().Format(time.RFC3339), string(blob),
	)
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", filePath, err)
	}
	return nil
}

// Lookup returns the most recent cached run for filePath at contentHash,
// if one exists.
func (c *DiagnosticsCache) Lookup(filePath, contentHash string) (*Entry, bool, error) {
	row := c.db.QueryRow(
		`SELECT run_id, ran_at, diagnostics FROM runs WHERE file_path = ? AND content_hash = ?`,
		filePath, contentHash,
	)
	var runID, ranAtStr, blob string
	switch err := row.Scan(&runID, &ranAtStr, &blob); {
	case err == sql.ErrNoRows:
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("cache: lookup %s: %w", filePath, err)
	}
	ranAt, err := time.Parse(time.RFC3339, ranAtStr)
	if err != nil {
		return nil, false, fmt.Errorf("cache: parse timestamp: %w", err)
	}
	var diags []*diagnostics.Diagnostic
	if err := json.Unmarshal([]byte(blob), &diags); err != nil {
		return nil, false, fmt.Errorf("cache: unmarshal diagnostics: %w", err)
	}
	return &Entry{FilePath: filePath, ContentHash: contentHash, RunID: runID, RanAt: ranAt, Diagnostics: diags}, true, nil
}

// LatestFor returns the most recently recorded entry for filePath across
// any content hash, used by `compiscript cache info`.
func (c *DiagnosticsCache) LatestFor(filePath string) (*Entry, bool, error) {
	row := c.db.QueryRow(
		`SELECT content_hash, run_id, ran_at, diagnostics FROM runs
		 WHERE file_path = ? ORDER BY ran_at DESC LIMIT 1`,
		filePath,
	)
	var contentHash, runID, ranAtStr, blob string
	switch err := row.Scan(&contentHash, &runID, &ranAtStr, &blob); {
	case err == sql.ErrNoRows:
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("cache: latest %s: %w", filePath, err)
	}
	ranAt, err := time.Parse(time.RFC3339, ranAtStr)
	if err != nil {
		return nil, false, fmt.Errorf("cache: parse timestamp: %w", err)
	}
	var diags []*diagnostics.Diagnostic
	if err := json.Unmarshal([]byte(blob), &diags); err != nil {
		return nil, false, fmt.Errorf("cache: unmarshal diagnostics: %w", err)
	}
	return &Entry{FilePath: filePath, ContentHash: contentHash, RunID: runID, RanAt: ranAt, Diagnostics: diags}, true, nil
}
