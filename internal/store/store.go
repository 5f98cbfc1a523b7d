// Package store provides the sqlite-backed durable client state.
//
// The state file lives at ~/.taskboard/taskboard.db by default and holds two
// things: the persisted session (identity, token, role, absolute expiry) and
// the last confirmed board snapshot. Neither is authoritative; the backend is.
// Use Open() to connect and Init() to create the schema.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_json TEXT NOT NULL,
	token TEXT NOT NULL,
	role TEXT NOT NULL,
	expiry INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS board_cache (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	statuses_json TEXT NOT NULL,
	tasks_json TEXT NOT NULL,
	fetched_at DATETIME NOT NULL
);
`

// Store wraps a SQL database connection with client-state operations.
type Store struct {
	*sql.DB
}

// SessionRecord is the persisted session row. Expiry is absolute epoch
// milliseconds, matching what the browser client kept in durable storage.
type SessionRecord struct {
	UserJSON []byte
	Token    string
	Role     string
	Expiry   int64
}

// BoardSnapshot is the last confirmed board state.
type BoardSnapshot struct {
	StatusesJSON []byte
	TasksJSON    []byte
	FetchedAt    time.Time
}

// DefaultPath returns the default state file path (~/.taskboard/taskboard.db)
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taskboard", "taskboard.db"), nil
}

// Open opens or creates the state file at the given path
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state file: %w", err)
	}

	return &Store{db}, nil
}

// Init creates the schema.
func (s *Store) Init() error {
	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveSession replaces the persisted session.
func (s *Store) SaveSession(rec SessionRecord) error {
	_, err := s.Exec(`
		INSERT OR REPLACE INTO session (id, user_json, token, role, expiry)
		VALUES (1, ?, ?, ?, ?)`,
		string(rec.UserJSON), rec.Token, rec.Role, rec.Expiry,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession returns the persisted session, or nil when none is stored.
func (s *Store) LoadSession() (*SessionRecord, error) {
	row := s.QueryRow(`SELECT user_json, token, role, expiry FROM session WHERE id = 1`)

	var rec SessionRecord
	var userJSON string
	err := row.Scan(&userJSON, &rec.Token, &rec.Role, &rec.Expiry)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	rec.UserJSON = []byte(userJSON)
	return &rec, nil
}

// ClearSession removes the persisted session.
func (s *Store) ClearSession() error {
	if _, err := s.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SaveBoard replaces the cached board snapshot atomically.
func (s *Store) SaveBoard(statusesJSON, tasksJSON []byte) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin board save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM board_cache`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to invalidate board cache: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO board_cache (id, statuses_json, tasks_json, fetched_at)
		VALUES (1, ?, ?, ?)`,
		string(statusesJSON), string(tasksJSON), time.Now(),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to save board cache: %w", err)
	}
	return tx.Commit()
}

// LoadBoard returns the cached board snapshot, or nil when none is stored.
func (s *Store) LoadBoard() (*BoardSnapshot, error) {
	row := s.QueryRow(`SELECT statuses_json, tasks_json, fetched_at FROM board_cache WHERE id = 1`)

	var snap BoardSnapshot
	var statuses, tasks string
	err := row.Scan(&statuses, &tasks, &snap.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load board cache: %w", err)
	}
	snap.StatusesJSON = []byte(statuses)
	snap.TasksJSON = []byte(tasks)
	return &snap, nil
}

// ClearBoard removes the cached board snapshot.
func (s *Store) ClearBoard() error {
	if _, err := s.Exec(`DELETE FROM board_cache`); err != nil {
		return fmt.Errorf("failed to clear board cache: %w", err)
	}
	return nil
}
