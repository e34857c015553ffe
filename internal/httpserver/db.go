// internal/httpserver/db.go
//
// Database helpers for the Pangram server.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the schema idempotently at startup.
//   - Row helpers for benchmark results and the leaderboard.
//
// Note: This file assumes SQLite but can be adapted for other backends.

package httpserver

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens (and creates if missing) a SQLite database file.
// Ensures the parent directory exists for relative DSNs (e.g. ./data/app.db),
// configures busy timeout and WAL journaling, and enforces foreign keys.
func OpenDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies the schema. Statements are idempotent so this is safe to
// run on every startup.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			runs          INTEGER NOT NULL DEFAULT 0,
			best_score    INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     TEXT REFERENCES users(id),
			scenario    TEXT NOT NULL,
			model       TEXT NOT NULL DEFAULT '',
			score       INTEGER NOT NULL,
			words_found INTEGER NOT NULL DEFAULT 0,
			tokens_used INTEGER NOT NULL,
			tool_calls  INTEGER NOT NULL,
			efficiency  REAL NOT NULL,
			created_at  TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_efficiency ON results(efficiency DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// nowRFC3339 is the single timestamp format used in the DB.
func nowRFC3339() string { return time.Now().UTC().Format(time.RFC3339) }
