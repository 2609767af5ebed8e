// Package storage keeps the history of finished sessions in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/oski/internal/core"
)

// DefaultPath is the history database location.
const DefaultPath = "~/.oski/history.db"

// Outcome is how a session ended.
type Outcome string

const (
	OutcomeWon   Outcome = "won"   // Oski got the card
	OutcomeEaten Outcome = "eaten" // Oski lost patience
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionResult is one finished session.
type SessionResult struct {
	ID        int64
	SessionID string // uuid assigned when the session started
	Player    string // Local user or SSH user name
	Seed      int64
	Outcome   Outcome
	Beers     int // Beers collected
	Cards     int // Cards collected
	Turns     int // Accepted commands
	CreatedAt time.Time
}

// Stats aggregates all recorded sessions.
type Stats struct {
	Played     int
	Wins       int
	Losses     int
	BestTurns  int // Fewest turns in a won session, 0 if none
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	dbPath, err := core.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			beers INTEGER NOT NULL DEFAULT 0,
			cards INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player);
		CREATE INDEX IF NOT EXISTS idx_sessions_outcome ON sessions(outcome);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult stores a finished session and returns its row ID.
func (s *Store) RecordResult(r SessionResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (session_id, player, seed, outcome, beers, cards, turns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Player, r.Seed, string(r.Outcome), r.Beers, r.Cards, r.Turns,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, session_id, player, seed, outcome, beers, cards, turns, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (SessionResult, error) {
	var r SessionResult
	var outcome string
	var createdAt any
	if err := row.Scan(&r.ID, &r.SessionID, &r.Player, &r.Seed, &outcome,
		&r.Beers, &r.Cards, &r.Turns, &createdAt); err != nil {
		return r, err
	}
	r.Outcome = Outcome(outcome)
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func (s *Store) queryResults(query string, args ...any) ([]SessionResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// RecentResults returns the latest sessions, newest first.
func (s *Store) RecentResults(limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerResults returns the latest sessions of one player, newest first.
func (s *Store) PlayerResults(player string, limit int) ([]SessionResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT `+resultColumns+`
		 FROM sessions
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
}

// ResultBySession looks up a session by its uuid. Returns nil if absent.
func (s *Store) ResultBySession(sessionID string) (*SessionResult, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+` FROM sessions WHERE session_id = ?`,
		sessionID,
	)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &r, nil
}

// Stats aggregates every recorded session.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN turns END), 0),
		        MAX(created_at)
		 FROM sessions`,
		string(OutcomeWon), string(OutcomeEaten), string(OutcomeWon),
	).Scan(&stats.Played, &stats.Wins, &stats.Losses, &stats.BestTurns, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearResults deletes the whole history.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
