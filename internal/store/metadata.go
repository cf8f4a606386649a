package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SetMetadata writes a bookkeeping key. Last write wins.
func (s *Store) SetMetadata(ctx context.Context, key, value string) error {
	query := `
	INSERT OR REPLACE INTO metadata (key, value, updated_at)
	VALUES (?, ?, ?)`

	if _, err := s.conn.ExecContext(ctx, query, key, value, now()); err != nil {
		return fmt.Errorf("failed to set metadata %s: %w", key, err)
	}
	return nil
}

// GetMetadata reads a bookkeeping key. A missing key is reported through
// ok=false, not an error.
func (s *Store) GetMetadata(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.conn.QueryRowContext(ctx,
		"SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata %s: %w", key, err)
	}
	return value, true, nil
}
