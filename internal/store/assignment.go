package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

// CreateAssignment inserts a new assignment after validating its location
// (cluster letter, aisle range) and position. Returns the assigned sequence
// id, which is never reused.
func (s *Store) CreateAssignment(ctx context.Context, a *schema.Assignment) (int64, error) {
	if a.Status == "" {
		a.Status = schema.AssignmentActive
	}
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("invalid assignment: %w", err)
	}

	query := `
	INSERT INTO assignments
		(worker_id, shift_date, cluster, aisle, position_type, assigned_at, assigned_by, status, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query,
		a.WorkerID,
		a.ShiftDate.Format(schema.DateLayout),
		a.Cluster,
		a.Aisle,
		a.PositionType,
		now(),
		a.AssignedBy,
		string(a.Status),
		a.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to create assignment: %w", err)
	}

	a.ID = id
	return id, nil
}

// UpdateAssignment applies a partial update to one assignment in a single
// statement. Returns ErrNotFound if the id does not exist.
func (s *Store) UpdateAssignment(ctx context.Context, id int64, u schema.AssignmentUpdate) error {
	if u.IsZero() {
		return fmt.Errorf("update for assignment %d carries no fields", id)
	}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid update for assignment %d: %w", id, err)
	}

	var sets []string
	var args []interface{}

	if u.ShiftDate != nil {
		sets = append(sets, "shift_date = ?")
		args = append(args, u.ShiftDate.Format(schema.DateLayout))
	}
	if u.Cluster != nil {
		sets = append(sets, "cluster = ?")
		args = append(args, *u.Cluster)
	}
	if u.Aisle != nil {
		sets = append(sets, "aisle = ?")
		args = append(args, *u.Aisle)
	}
	if u.PositionType != nil {
		sets = append(sets, "position_type = ?")
		args = append(args, *u.PositionType)
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *u.Notes)
	}

	args = append(args, id)
	query := "UPDATE assignments SET " + strings.Join(sets, ", ") + " WHERE assignment_id = ?"

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update assignment %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update assignment %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("assignment %d: %w", id, ErrNotFound)
	}

	return nil
}

// CancelAssignment logically deletes an assignment: the status flips to
// cancelled and the row is retained. Physical deletion never occurs.
func (s *Store) CancelAssignment(ctx context.Context, id int64) error {
	res, err := s.conn.ExecContext(ctx,
		"UPDATE assignments SET status = 'cancelled' WHERE assignment_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to cancel assignment %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel assignment %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("assignment %d: %w", id, ErrNotFound)
	}

	return nil
}

// AssignmentsForDate returns the board for one shift date, joined with the
// worker display fields and ordered by cluster then aisle. An empty status
// returns every lifecycle state, including cancelled rows.
func (s *Store) AssignmentsForDate(ctx context.Context, date time.Time, status schema.AssignmentStatus) ([]*schema.Assignment, error) {
	query := `
	SELECT a.assignment_id, a.worker_id, a.shift_date, a.cluster, a.aisle,
	       a.position_type, a.assigned_at, a.assigned_by, a.status, a.notes,
	       w.name, w.photo_path
	FROM assignments a
	JOIN workers w ON a.worker_id = w.worker_id
	WHERE a.shift_date = ?`

	args := []interface{}{date.Format(schema.DateLayout)}
	if status != "" {
		query += " AND a.status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY a.cluster, a.aisle"

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows, true)
}

// RecentAssignments returns a worker's assignments within the lookback
// window, newest first.
func (s *Store) RecentAssignments(ctx context.Context, workerID string, days int) ([]*schema.Assignment, error) {
	since := time.Now().AddDate(0, 0, -days).Format(schema.DateLayout)

	query := `
	SELECT assignment_id, worker_id, shift_date, cluster, aisle,
	       position_type, assigned_at, assigned_by, status, notes
	FROM assignments
	WHERE worker_id = ? AND shift_date >= ?
	ORDER BY shift_date DESC, assigned_at DESC`

	rows, err := s.conn.QueryContext(ctx, query, workerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments for %s: %w", workerID, err)
	}
	defer rows.Close()

	return scanAssignments(rows, false)
}

// scanAssignments scans assignment rows, optionally with the joined worker
// display columns.
func scanAssignments(rows *sql.Rows, joined bool) ([]*schema.Assignment, error) {
	var list []*schema.Assignment

	for rows.Next() {
		var a schema.Assignment
		var shiftDate, assignedAt string
		var cluster, position, assignedBy, notes sql.NullString
		var aisle sql.NullInt64

		dest := []interface{}{
			&a.ID, &a.WorkerID, &shiftDate, &cluster, &aisle,
			&position, &assignedAt, &assignedBy, &a.Status, &notes,
		}
		var name, photo sql.NullString
		if joined {
			dest = append(dest, &name, &photo)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}

		if t, err := time.Parse(schema.DateLayout, shiftDate); err == nil {
			a.ShiftDate = t
		}
		a.Cluster = cluster.String
		a.Aisle = int(aisle.Int64)
		a.PositionType = position.String
		a.AssignedAt = parseStamp(assignedAt)
		a.AssignedBy = assignedBy.String
		a.Notes = notes.String
		if joined {
			a.WorkerName = name.String
			a.WorkerPhoto = photo.String
		}

		list = append(list, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return list, nil
}
