package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Snapshot keys. Each entity store persists under its own key; every write
// replaces the stored value in full.
const (
	KeyBoard   = "board"
	KeyRoadmap = "roadmap"
)

// SaveSnapshot serializes v to JSON and writes it under key, synchronously,
// overwriting any prior value.
func (s *Store) SaveSnapshot(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot %q: %w", key, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// LoadSnapshot reads the value stored under key into dst. It reports false
// when no usable snapshot exists — either the key is absent or the stored
// text no longer parses — so the caller can fall back to seed data. Only
// database-level read failures are returned as errors.
func (s *Store) LoadSnapshot(key string, dst any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		slog.Warn("discarding unreadable snapshot", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

// DeleteSnapshot removes the stored value for key, if any.
func (s *Store) DeleteSnapshot(key string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
