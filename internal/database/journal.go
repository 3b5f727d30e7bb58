package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/wind-garden/internal/models"
)

// ErrNoSession is returned when the journal has no recorded session
var ErrNoSession = errors.New("no recorded session")

// Journal records scene sessions: the seed that produced the garden, every
// gust, and when the card was first revealed
type Journal struct {
	db *sql.DB
}

// OpenJournal opens the journal stored at dbPath
func OpenJournal(dbPath string) (*Journal, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

// NewJournal wraps an already opened database, ensuring the schema exists
func NewJournal(db *sql.DB) (*Journal, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &Journal{db: db}, nil
}

// StartSession records a new session for seed
func (j *Journal) StartSession(seed uint64, startedAt time.Time) (*models.Session, error) {
	res, err := j.db.Exec(
		"INSERT INTO sessions (seed, started_at) VALUES (?, ?)",
		int64(seed), startedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting last insert id: %w", err)
	}

	return &models.Session{ID: id, Seed: seed, StartedAt: startedAt}, nil
}

// RecordGust appends one gust to a session
func (j *Journal) RecordGust(sessionID int64, gust models.Gust) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO gusts (session_id, kind, elements, at_ms) VALUES (?, ?, ?, ?)",
		sessionID, string(gust.Kind), gust.Size(), gust.At.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording gust: %w", err)
	}

	res, err := tx.Exec("UPDATE sessions SET gusts = gusts + 1 WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("updating gust count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %d: %w", sessionID, ErrNoSession)
	}

	return tx.Commit()
}

// MarkRevealed stores the first reveal time of a session. Later reveals
// leave the stored time unchanged.
func (j *Journal) MarkRevealed(sessionID int64, at time.Time) error {
	_, err := j.db.Exec(
		"UPDATE sessions SET revealed_at = ? WHERE id = ? AND revealed_at IS NULL",
		at, sessionID,
	)
	if err != nil {
		return fmt.Errorf("marking reveal: %w", err)
	}
	return nil
}

// Session loads one session by ID
func (j *Journal) Session(id int64) (*models.Session, error) {
	row := j.db.QueryRow("SELECT id, seed, started_at, revealed_at, gusts FROM sessions WHERE id = ?", id)
	return scanSession(row)
}

// LastSession returns the most recently started session
func (j *Journal) LastSession() (*models.Session, error) {
	row := j.db.QueryRow("SELECT id, seed, started_at, revealed_at, gusts FROM sessions ORDER BY id DESC LIMIT 1")
	return scanSession(row)
}

// GustCounts returns how many gusts of each kind a session recorded
func (j *Journal) GustCounts(sessionID int64) (map[models.GustKind]int, error) {
	rows, err := j.db.Query("SELECT kind, COUNT(*) FROM gusts WHERE session_id = ? GROUP BY kind", sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying gusts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.GustKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scanning gust count: %w", err)
		}
		counts[models.GustKind(kind)] = n
	}
	return counts, rows.Err()
}

// Close closes the underlying database
func (j *Journal) Close() error {
	return j.db.Close()
}

func scanSession(row *sql.Row) (*models.Session, error) {
	var s models.Session
	var seed int64
	var revealed sql.NullTime

	err := row.Scan(&s.ID, &seed, &s.StartedAt, &revealed, &s.Gusts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	s.Seed = uint64(seed)
	if revealed.Valid {
		t := revealed.Time
		s.RevealedAt = &t
	}
	return &s, nil
}
