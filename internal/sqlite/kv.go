package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/tempus-mcp/internal/storage"
)

// KV implements storage.KV over the kv table. Writes are last-writer-wins
// upserts; there are no transactions spanning multiple keys.
type KV struct {
	db *DB
}

// NewKV creates a new SQLite-backed key-value store
func NewKV(db *DB) *KV {
	return &KV{db: db}
}

// Get retrieves the value stored under key
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set stores value under key, replacing any previous value
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now()); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error.
func (s *KV) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}
