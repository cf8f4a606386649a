// Package store provides the embedded SQLite store for the dispatch
// tracker: workers, assignments, certifications, assignment history, and
// process metadata.
//
// The database runs embedded (ncruces/go-sqlite3, WASM build, no server
// process) with WAL journaling so several terminals can open the same file
// concurrently: readers never block the writer and vice versa, and a writer
// colliding with another process's in-flight transaction blocks inside the
// engine for up to the busy timeout before failing.
//
// Every exported operation is a single, independently durable unit of work.
// There is no cross-operation transaction API: callers must not rely on
// atomicity beyond one insert/update statement.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DefaultBusyTimeout bounds how long a write blocks on another process's
// in-flight transaction before surfacing a retryable failure.
const DefaultBusyTimeout = 5 * time.Second

// Store wraps the database connection for one dispatch data file.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens (creating if needed) the dispatch database at path with the
// default busy timeout. The caller MUST call Close when done.
func Open(path string) (*Store, error) {
	return OpenTimeout(path, DefaultBusyTimeout)
}

// OpenTimeout opens the database with an explicit lock-wait bound.
//
// The parent directory is created if missing. The connection is configured
// for multi-process access: WAL journaling, the given busy timeout, and
// synchronous=NORMAL (the WAL already protects against partial-write
// corruption, so the full-flush-per-write durability mode is relaxed for
// throughput). Foreign references stay advisory: foreign_keys is switched
// off so batch imports may land certifications before their worker rows.
//
// The per-connection pragmas travel in the DSN, which is the only way they
// reach every connection of the pool; a plain Exec would configure just
// one. journal_mode is a property of the file and is set once.
func OpenTimeout(path string, busy time.Duration) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=synchronous(normal)&_pragma=foreign_keys(0)",
		path, busy.Milliseconds())
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{
		conn: conn,
		path: path,
	}

	if _, err := s.conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return s, nil
}

// Path returns the location of the primary data file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
// Performs a WAL checkpoint to ensure all changes are persisted.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// InitSchema creates the database schema if it doesn't exist.
// Idempotent - safe to call against an existing file.
func (s *Store) InitSchema() error {
	return s.InitSchemaContext(context.Background())
}

// InitSchemaContext creates the database schema with context support.
//
// Foreign references are declared but not engine-enforced (foreign_keys is
// disabled at open): enforcement is advisory, matching the deployment where
// batch imports may land certifications before their worker rows.
func (s *Store) InitSchemaContext(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS workers (
		worker_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		photo_path TEXT,
		shift TEXT CHECK(shift IN ('DAY', 'NIGHT', 'TWILIGHT')),
		schedule TEXT,
		certifications TEXT,
		restrictions TEXT,
		hire_date TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'inactive', 'leave')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assignments (
		assignment_id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_id TEXT NOT NULL,
		shift_date TEXT NOT NULL,
		cluster TEXT CHECK(cluster IN ('A','B','C','D','E','F','G','H','I','J','K','L','M')),
		aisle INTEGER CHECK(aisle BETWEEN 1 AND 30),
		position_type TEXT,
		assigned_at TEXT NOT NULL,
		assigned_by TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'completed', 'cancelled')),
		notes TEXT,
		FOREIGN KEY (worker_id) REFERENCES workers(worker_id)
	);

	CREATE TABLE IF NOT EXISTS certifications (
		cert_id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_id TEXT NOT NULL,
		process_path TEXT,
		level TEXT CHECK(level IN ('LC1', 'LC2', 'LC3', 'AMBASSADOR', 'TRAINER')),
		certified_date TEXT,
		trainer_id TEXT,
		expiration_date TEXT,
		status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'expired', 'revoked')),
		FOREIGN KEY (worker_id) REFERENCES workers(worker_id)
	);

	CREATE TABLE IF NOT EXISTS assignment_history (
		history_id INTEGER PRIMARY KEY AUTOINCREMENT,
		worker_id TEXT NOT NULL,
		position_type TEXT,
		cluster TEXT,
		aisle INTEGER,
		start_time TEXT,
		end_time TEXT,
		duration_minutes INTEGER,
		FOREIGN KEY (worker_id) REFERENCES workers(worker_id)
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_date
	    ON assignments(shift_date, status);
	CREATE INDEX IF NOT EXISTS idx_assignments_worker
	    ON assignments(worker_id, shift_date);
	CREATE INDEX IF NOT EXISTS idx_certifications_worker
	    ON certifications(worker_id, status);
	`

	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// now returns the store-assigned timestamp value for writes.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// today returns the current date in the date-column format.
func today() string {
	return time.Now().Format("2006-01-02")
}

// dateToNull converts an optional date to a nullable column value.
func dateToNull(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format("2006-01-02"), Valid: true}
}

// nullToDate converts a nullable date column back to an optional time.
func nullToDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", ns.String)
	if err != nil {
		return nil
	}
	return &t
}

// parseStamp parses a store-assigned RFC 3339 timestamp, tolerating the
// zero value for rows written by older builds.
func parseStamp(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
