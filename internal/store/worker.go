package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/floorops/dispatch/internal/schema"
)

// CreateWorker inserts a new worker row.
//
// The identity is globally unique: inserting an existing worker_id fails
// with a constraint violation (see IsConstraint) and never overwrites.
func (s *Store) CreateWorker(ctx context.Context, w *schema.Worker) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid worker: %w", err)
	}
	w.SetDefaults()

	stamp := now()
	query := `
	INSERT INTO workers (
		worker_id, name, photo_path, shift, schedule, certifications,
		restrictions, hire_date, status, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.conn.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.PhotoPath,
		nullIfEmpty(string(w.Shift)),
		w.Schedule,
		w.Certifications,
		w.Restrictions,
		dateToNull(w.HireDate),
		string(w.Status),
		stamp,
		stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create worker %s: %w", w.ID, err)
	}

	return nil
}

// PutWorker inserts the worker or, if the identity already exists, replaces
// its mutable fields. Timestamps stay store-assigned: created_at is kept
// from the original row and updated_at is bumped.
func (s *Store) PutWorker(ctx context.Context, w *schema.Worker) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid worker: %w", err)
	}
	w.SetDefaults()

	stamp := now()
	query := `
	INSERT INTO workers (
		worker_id, name, photo_path, shift, schedule, certifications,
		restrictions, hire_date, status, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(worker_id) DO UPDATE SET
		name = excluded.name,
		photo_path = excluded.photo_path,
		shift = excluded.shift,
		schedule = excluded.schedule,
		certifications = excluded.certifications,
		restrictions = excluded.restrictions,
		hire_date = excluded.hire_date,
		status = excluded.status,
		updated_at = excluded.updated_at
	`

	_, err := s.conn.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.PhotoPath,
		nullIfEmpty(string(w.Shift)),
		w.Schedule,
		w.Certifications,
		w.Restrictions,
		dateToNull(w.HireDate),
		string(w.Status),
		stamp,
		stamp,
	)
	if err != nil {
		return fmt.Errorf("failed to put worker %s: %w", w.ID, err)
	}

	return nil
}

// UpdateWorker applies a partial update: only the fields present on u are
// written, in one statement, and updated_at is bumped. Returns ErrNotFound
// if no row has the identity.
func (s *Store) UpdateWorker(ctx context.Context, id string, u schema.WorkerUpdate) error {
	if u.IsZero() {
		return fmt.Errorf("update for worker %s carries no fields", id)
	}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid update for worker %s: %w", id, err)
	}

	var sets []string
	var args []interface{}

	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.PhotoPath != nil {
		sets = append(sets, "photo_path = ?")
		args = append(args, *u.PhotoPath)
	}
	if u.Shift != nil {
		sets = append(sets, "shift = ?")
		args = append(args, string(*u.Shift))
	}
	if u.Schedule != nil {
		sets = append(sets, "schedule = ?")
		args = append(args, *u.Schedule)
	}
	if u.Certifications != nil {
		sets = append(sets, "certifications = ?")
		args = append(args, *u.Certifications)
	}
	if u.Restrictions != nil {
		sets = append(sets, "restrictions = ?")
		args = append(args, *u.Restrictions)
	}
	if u.HireDate != nil {
		sets = append(sets, "hire_date = ?")
		args = append(args, u.HireDate.Format("2006-01-02"))
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, now())
	args = append(args, id)

	query := "UPDATE workers SET " + strings.Join(sets, ", ") + " WHERE worker_id = ?"

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("worker %s: %w", id, ErrNotFound)
	}

	return nil
}

// GetWorker retrieves a worker by identity.
// Returns (nil, nil) when no row matches.
func (s *Store) GetWorker(ctx context.Context, id string) (*schema.Worker, error) {
	query := workerSelect + " WHERE worker_id = ?"

	rows, err := s.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
	}
	defer rows.Close()

	workers, err := scanWorkers(rows)
	if err != nil {
		return nil, err
	}
	if len(workers) == 0 {
		return nil, nil
	}
	return workers[0], nil
}

// ListWorkers returns workers ordered by name. An empty status returns all
// lifecycle states; otherwise only workers in that state.
func (s *Store) ListWorkers(ctx context.Context, status schema.WorkerStatus) ([]*schema.Worker, error) {
	query := workerSelect
	var args []interface{}

	if status != "" {
		query += " WHERE status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY name"

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	return scanWorkers(rows)
}

// SearchWorkers returns workers whose name or identity contains the query
// substring, ordered by name.
func (s *Store) SearchWorkers(ctx context.Context, q string) ([]*schema.Worker, error) {
	pattern := "%" + q + "%"
	query := workerSelect + " WHERE name LIKE ? OR worker_id LIKE ? ORDER BY name"

	rows, err := s.conn.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search workers: %w", err)
	}
	defer rows.Close()

	return scanWorkers(rows)
}

const workerSelect = `
	SELECT worker_id, name, photo_path, shift, schedule, certifications,
	       restrictions, hire_date, status, created_at, updated_at
	FROM workers`

// scanWorkers is a helper to scan worker rows from query results.
func scanWorkers(rows *sql.Rows) ([]*schema.Worker, error) {
	var workers []*schema.Worker

	for rows.Next() {
		var w schema.Worker
		var photo, shift, schedule, certs, restr, hire sql.NullString
		var createdAt, updatedAt string

		err := rows.Scan(
			&w.ID,
			&w.Name,
			&photo,
			&shift,
			&schedule,
			&certs,
			&restr,
			&hire,
			&w.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}

		w.PhotoPath = photo.String
		w.Shift = schema.Shift(shift.String)
		w.Schedule = schedule.String
		w.Certifications = certs.String
		w.Restrictions = restr.String
		w.HireDate = nullToDate(hire)
		w.CreatedAt = parseStamp(createdAt)
		w.UpdatedAt = parseStamp(updatedAt)

		workers = append(workers, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workers: %w", err)
	}

	return workers, nil
}

// nullIfEmpty maps "" to NULL so optional enum columns skip their CHECK.
func nullIfEmpty(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
