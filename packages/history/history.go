// Package history persists a log of executed requests in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/geerlingguy/Request/packages/request"
	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id TEXT PRIMARY KEY,
	address TEXT NOT NULL,
	method TEXT NOT NULL,
	status_code INTEGER NOT NULL,
	latency_ms INTEGER NOT NULL,
	transport_error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
`

// Entry is one recorded request execution.
type Entry struct {
	ID             string
	Address        string
	Method         string
	StatusCode     int
	LatencyMs      int64
	TransportError string
	CreatedAt      time.Time
}

// Store is a SQLite-backed history store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores the outcome of one executed request and returns the
// generated entry id.
func (s *Store) Record(address, method string, res *request.Result) (string, error) {
	if method == "" {
		method = "GET"
	}

	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO history (id, address, method, status_code, latency_ms, transport_error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, address, method, res.StatusCode, res.LatencyMs(), res.ErrString(), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record history entry: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, address, method, status_code, latency_ms, transport_error, created_at
		 FROM history ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Address, &e.Method, &e.StatusCode, &e.LatencyMs, &e.TransportError, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history row iteration: %w", err)
	}

	return entries, nil
}

// Clear removes all history entries.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
