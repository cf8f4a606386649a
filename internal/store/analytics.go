package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

// CoverageSummary aggregates the active assignments for one shift date.
// Cancelled and completed assignments are excluded from every count.
type CoverageSummary struct {
	Date       string         `json:"date"`
	Total      int            `json:"total_assignments"`
	ByCluster  map[string]int `json:"by_cluster"`
	ByPosition map[string]int `json:"by_position"`
}

// Coverage computes the coverage summary for a date.
func (s *Store) Coverage(ctx context.Context, date time.Time) (*CoverageSummary, error) {
	day := date.Format(schema.DateLayout)
	summary := &CoverageSummary{
		Date:       day,
		ByCluster:  make(map[string]int),
		ByPosition: make(map[string]int),
	}

	err := s.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM assignments WHERE shift_date = ? AND status = 'active'",
		day).Scan(&summary.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}

	byCluster := `
	SELECT cluster, COUNT(*)
	FROM assignments
	WHERE shift_date = ? AND status = 'active'
	GROUP BY cluster
	ORDER BY cluster`

	rows, err := s.conn.QueryContext(ctx, byCluster, day)
	if err != nil {
		return nil, fmt.Errorf("failed to group by cluster: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cluster sql.NullString
		var count int
		if err := rows.Scan(&cluster, &count); err != nil {
			return nil, fmt.Errorf("failed to scan cluster count: %w", err)
		}
		summary.ByCluster[cluster.String] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cluster counts: %w", err)
	}

	byPosition := `
	SELECT position_type, COUNT(*)
	FROM assignments
	WHERE shift_date = ? AND status = 'active'
	GROUP BY position_type`

	rows, err = s.conn.QueryContext(ctx, byPosition, day)
	if err != nil {
		return nil, fmt.Errorf("failed to group by position: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var position sql.NullString
		var count int
		if err := rows.Scan(&position, &count); err != nil {
			return nil, fmt.Errorf("failed to scan position count: %w", err)
		}
		summary.ByPosition[position.String] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position counts: %w", err)
	}

	return summary, nil
}

// TrainingGap identifies an active worker holding fewer distinct active
// certifications than the configured threshold.
type TrainingGap struct {
	WorkerID  string       `json:"worker_id"`
	Name      string       `json:"name"`
	Shift     schema.Shift `json:"shift,omitempty"`
	CertCount int          `json:"certification_count"`
}

// TrainingGaps lists active workers whose distinct active certification
// count is below threshold, ordered by name.
func (s *Store) TrainingGaps(ctx context.Context, threshold int) ([]TrainingGap, error) {
	query := `
	SELECT w.worker_id, w.name, w.shift,
	       COUNT(DISTINCT c.process_path) AS cert_count
	FROM workers w
	LEFT JOIN certifications c
	    ON w.worker_id = c.worker_id AND c.status = 'active'
	WHERE w.status = 'active'
	GROUP BY w.worker_id, w.name, w.shift
	HAVING cert_count < ?
	ORDER BY w.name`

	rows, err := s.conn.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query training gaps: %w", err)
	}
	defer rows.Close()

	var gaps []TrainingGap
	for rows.Next() {
		var g TrainingGap
		var shift sql.NullString

		if err := rows.Scan(&g.WorkerID, &g.Name, &shift, &g.CertCount); err != nil {
			return nil, fmt.Errorf("failed to scan training gap: %w", err)
		}
		g.Shift = schema.Shift(shift.String)

		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating training gaps: %w", err)
	}

	return gaps, nil
}
