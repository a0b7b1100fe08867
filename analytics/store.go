package analytics

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore keeps the serialized event log in a flat key-value
// table: one row per pattern key, the ordered event list as a JSON
// blob. The format round-trips losslessly but is not a wire contract.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the analytics database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pattern_events (
			pattern_key TEXT PRIMARY KEY,
			events      TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the full event log.
func (s *SQLiteStore) Load() (map[string][]Event, error) {
	rows, err := s.db.Query(`SELECT pattern_key, events FROM pattern_events`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]Event)
	for rows.Next() {
		var key, blob string
		if err := rows.Scan(&key, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan events row: %w", err)
		}
		var events []Event
		if err := json.Unmarshal([]byte(blob), &events); err != nil {
			return nil, fmt.Errorf("failed to decode events for %s: %w", key, err)
		}
		out[key] = events
	}
	return out, rows.Err()
}

// SaveKey rewrites one pattern's event list.
func (s *SQLiteStore) SaveKey(patternKey string, events []Event) error {
	blob, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode events for %s: %w", patternKey, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO pattern_events (pattern_key, events) VALUES (?, ?)
		ON CONFLICT(pattern_key) DO UPDATE SET events = excluded.events`,
		patternKey, string(blob))
	if err != nil {
		return fmt.Errorf("failed to persist events for %s: %w", patternKey, err)
	}
	return nil
}

// Reset clears the persisted log.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM pattern_events`); err != nil {
		return fmt.Errorf("failed to reset events: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
