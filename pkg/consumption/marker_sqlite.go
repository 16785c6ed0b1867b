package consumption

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"Pantry-Tracker/internal/utils/clock"

	_ "modernc.org/sqlite"
)

const markerSchemaSQL = `
CREATE TABLE IF NOT EXISTS consumption_markers (
	key        TEXT PRIMARY KEY,
	day        TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteMarkerStore keeps markers in a local SQLite file so the daily gate
// survives restarts of a memory backed server.
type SQLiteMarkerStore struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteMarkerStore(path string, c clock.Clock) (*SQLiteMarkerStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create marker directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open marker database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(markerSchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create marker schema: %w", err)
	}
	return &SQLiteMarkerStore{db: db, clock: c}, nil
}

func (s *SQLiteMarkerStore) LastDay(ctx context.Context, key string) (string, error) {
	var day string
	err := s.db.QueryRowContext(ctx, "SELECT day FROM consumption_markers WHERE key = ?", key).Scan(&day)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query marker %s: %w", key, err)
	}
	return day, nil
}

func (s *SQLiteMarkerStore) SetLastDay(ctx context.Context, key, day string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO consumption_markers (key, day, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET day = excluded.day, updated_at = excluded.updated_at`,
		key, day, s.clock.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert marker %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteMarkerStore) Close() error {
	return s.db.Close()
}
