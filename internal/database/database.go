package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path of the session journal
func DBPath() string {
	return filepath.Join("data", "wind-garden.db")
}

// EnsureSchema creates the journal tables if they do not exist yet
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			revealed_at DATETIME,
			gusts INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS gusts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			kind TEXT NOT NULL,
			elements INTEGER NOT NULL,
			at_ms INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_gusts_session ON gusts(session_id);
	`)
	if err != nil {
		return fmt.Errorf("creating journal tables: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the sqlite database at dbPath and
// ensures the journal schema exists
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; the scene records from a single goroutine
	db.SetMaxOpenConns(1)
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL")

	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
