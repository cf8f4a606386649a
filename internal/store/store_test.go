package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

// testStore opens a scratch store with schema applied.
func testStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dispatch.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.InitSchema(); err != nil {
		t.Fatalf("InitSchema() failed: %v", err)
	}
	return s
}

// addWorker inserts a minimal worker row for tests that need one.
func addWorker(t *testing.T, s *Store, id, name string) {
	t.Helper()
	w := &schema.Worker{ID: id, Name: name}
	if err := s.CreateWorker(context.Background(), w); err != nil {
		t.Fatalf("CreateWorker(%s) failed: %v", id, err)
	}
}

func TestOpen_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}

	var mode string
	if err := s.conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

// TestOpenTimeout_PragmasOnEveryConnection pins the per-connection
// settings to every member of the pool, not just the one a plain Exec
// would reach.
func TestOpenTimeout_PragmasOnEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	s, err := OpenTimeout(path, 123*time.Millisecond)
	if err != nil {
		t.Fatalf("OpenTimeout() failed: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	// Hold several pooled connections open at once so each check lands on
	// a distinct connection.
	conns := make([]*sql.Conn, 3)
	for i := range conns {
		c, err := s.conn.Conn(ctx)
		if err != nil {
			t.Fatalf("Conn(%d) failed: %v", i, err)
		}
		defer c.Close()
		conns[i] = c
	}

	for i, c := range conns {
		var busy int
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&busy); err != nil {
			t.Fatalf("conn %d: failed to query busy_timeout: %v", i, err)
		}
		if busy != 123 {
			t.Errorf("conn %d: busy_timeout = %d, want 123", i, busy)
		}

		var fk int
		if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("conn %d: failed to query foreign_keys: %v", i, err)
		}
		if fk != 0 {
			t.Errorf("conn %d: foreign_keys = %d, want 0 (references are advisory)", i, fk)
		}
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := testStore(t)

	if err := s.InitSchema(); err != nil {
		t.Errorf("second InitSchema() failed: %v", err)
	}

	tables := []string{"workers", "assignments", "certifications", "assignment_history", "metadata"}
	for _, table := range tables {
		var count int
		query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
		if err := s.conn.QueryRow(query, table).Scan(&count); err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestClose_Twice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestMetadata(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetMetadata(ctx, "last_sync"); err != nil || ok {
		t.Fatalf("GetMetadata(missing) = ok=%v, err=%v; want absent, nil", ok, err)
	}

	if err := s.SetMetadata(ctx, "last_sync", "2026-08-20T10:00:00Z"); err != nil {
		t.Fatalf("SetMetadata() failed: %v", err)
	}

	// Last write wins.
	if err := s.SetMetadata(ctx, "last_sync", "2026-08-21T10:00:00Z"); err != nil {
		t.Fatalf("second SetMetadata() failed: %v", err)
	}

	value, ok, err := s.GetMetadata(ctx, "last_sync")
	if err != nil {
		t.Fatalf("GetMetadata() failed: %v", err)
	}
	if !ok || value != "2026-08-21T10:00:00Z" {
		t.Errorf("GetMetadata() = %q, ok=%v; want latest value", value, ok)
	}
}

func TestHistory_AppendAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	addWorker(t, s, "W100", "Ana Ruiz")

	start := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		h := &schema.HistoryEntry{
			WorkerID:     "W100",
			PositionType: "PICK",
			Cluster:      "B",
			Aisle:        4,
			StartTime:    start.Add(time.Duration(i) * 2 * time.Hour),
			EndTime:      start.Add(time.Duration(i)*2*time.Hour + 90*time.Minute),
		}
		if _, err := s.AppendHistory(ctx, h); err != nil {
			t.Fatalf("AppendHistory() failed: %v", err)
		}
	}

	entries, err := s.HistoryForWorker(ctx, "W100", 2)
	if err != nil {
		t.Fatalf("HistoryForWorker() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].StartTime.Before(entries[1].StartTime) {
		t.Error("entries not ordered newest first")
	}
	if entries[0].DurationMinutes != 90 {
		t.Errorf("DurationMinutes = %d, want 90", entries[0].DurationMinutes)
	}
}

func TestBackup_ContainsCommittedRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		addWorker(t, s, fmt.Sprintf("W%03d", i), fmt.Sprintf("Worker %d", i))
	}

	backupPath, err := s.Backup(ctx, filepath.Join(t.TempDir(), "backups"))
	if err != nil {
		t.Fatalf("Backup() failed: %v", err)
	}

	// Reopen the copy independently.
	copy, err := Open(backupPath)
	if err != nil {
		t.Fatalf("Open(backup) failed: %v", err)
	}
	defer copy.Close()

	workers, err := copy.ListWorkers(ctx, "")
	if err != nil {
		t.Fatalf("ListWorkers(backup) failed: %v", err)
	}
	if len(workers) != 5 {
		t.Errorf("backup has %d workers, want 5", len(workers))
	}
}

// TestConcurrentWriters simulates two terminals sharing the file: both open
// independent handles and write distinct rows at the same moment. WAL plus
// the busy timeout means both must eventually succeed.
func TestConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open(s1) failed: %v", err)
	}
	defer s1.Close()
	if err := s1.InitSchema(); err != nil {
		t.Fatalf("InitSchema() failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("Open(s2) failed: %v", err)
	}
	defer s2.Close()

	ctx := context.Background()
	const perWriter = 20

	var wg sync.WaitGroup
	errs := make(chan error, 2*perWriter)

	writer := func(s *Store, prefix string) {
		defer wg.Done()
		for i := 0; i < perWriter; i++ {
			w := &schema.Worker{
				ID:   fmt.Sprintf("%s-%03d", prefix, i),
				Name: fmt.Sprintf("Worker %s %d", prefix, i),
			}
			if err := s.CreateWorker(ctx, w); err != nil {
				errs <- err
			}
		}
	}

	wg.Add(2)
	go writer(s1, "A")
	go writer(s2, "B")
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent write failed: %v", err)
	}

	workers, err := s1.ListWorkers(ctx, "")
	if err != nil {
		t.Fatalf("ListWorkers() failed: %v", err)
	}
	if len(workers) != 2*perWriter {
		t.Errorf("got %d workers, want %d (no write may be dropped)", len(workers), 2*perWriter)
	}
}
