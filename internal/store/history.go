package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

// AppendHistory writes one rotation rollup row. History is append-only:
// there is no update or delete operation for it.
func (s *Store) AppendHistory(ctx context.Context, h *schema.HistoryEntry) (int64, error) {
	if err := h.Validate(); err != nil {
		return 0, fmt.Errorf("invalid history entry: %w", err)
	}

	query := `
	INSERT INTO assignment_history
		(worker_id, position_type, cluster, aisle, start_time, end_time, duration_minutes)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query,
		h.WorkerID,
		h.PositionType,
		h.Cluster,
		h.Aisle,
		h.StartTime.UTC().Format(time.RFC3339),
		h.EndTime.UTC().Format(time.RFC3339),
		h.DurationMinutes,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to append history: %w", err)
	}

	h.ID = id
	return id, nil
}

// HistoryForWorker returns a worker's rotation rollups, newest first.
// A limit of 0 returns all rows.
func (s *Store) HistoryForWorker(ctx context.Context, workerID string, limit int) ([]*schema.HistoryEntry, error) {
	query := `
	SELECT history_id, worker_id, position_type, cluster, aisle,
	       start_time, end_time, duration_minutes
	FROM assignment_history
	WHERE worker_id = ?
	ORDER BY start_time DESC`

	args := []interface{}{workerID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for %s: %w", workerID, err)
	}
	defer rows.Close()

	var entries []*schema.HistoryEntry
	for rows.Next() {
		var h schema.HistoryEntry
		var position, cluster, start, end sql.NullString
		var aisle, minutes sql.NullInt64

		err := rows.Scan(&h.ID, &h.WorkerID, &position, &cluster, &aisle,
			&start, &end, &minutes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		h.PositionType = position.String
		h.Cluster = cluster.String
		h.Aisle = int(aisle.Int64)
		h.StartTime = parseStamp(start.String)
		h.EndTime = parseStamp(end.String)
		h.DurationMinutes = int(minutes.Int64)

		entries = append(entries, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return entries, nil
}
