package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backup writes a consistent snapshot of the primary file to a timestamped
// copy under dir and returns the copy's path.
//
// VACUUM INTO runs inside the engine, so the copy contains every row
// committed before Backup returns even while other processes keep the
// store open. The WAL companion files are not touched.
func (s *Store) Backup(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	target := filepath.Join(dir, fmt.Sprintf("dispatch_backup_%s.db", stamp))

	if _, err := s.conn.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	return target, nil
}
