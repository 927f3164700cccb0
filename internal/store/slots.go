// Package store provides the SQLite-backed key-value slots the ledger is
// persisted in.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Slots is a key-value table where each value is rewritten in full.
type Slots struct {
	db *sql.DB
}

// Open opens or creates the slot database at the given path.
func Open(dbPath string) (*Slots, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening slot db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging slot db: %w", err)
	}

	return &Slots{db: db}, nil
}

// Close closes the slot database.
func (s *Slots) Close() error {
	return s.db.Close()
}

// Load returns the value stored under key, or nil if the key was never saved.
func (s *Slots) Load(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %q: %w", key, err)
	}
	return []byte(value), nil
}

// Save replaces the value stored under key.
func (s *Slots) Save(key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), now)
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when key was last saved. ok is false for unknown keys.
func (s *Slots) UpdatedAt(key string) (t time.Time, ok bool, err error) {
	var raw string
	err = s.db.QueryRow("SELECT updated_at FROM slots WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing updated_at for %q: %w", key, err)
	}
	return t, true, nil
}
