package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/floorops/dispatch/internal/schema"
)

// AddCertification inserts a certification row. Certifications are never
// deduplicated here: importing the same worker/process pair twice yields
// two rows.
func (s *Store) AddCertification(ctx context.Context, c *schema.Certification) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("invalid certification: %w", err)
	}
	c.SetDefaults()

	query := `
	INSERT INTO certifications
		(worker_id, process_path, level, certified_date, trainer_id, expiration_date, status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := s.conn.ExecContext(ctx, query,
		c.WorkerID,
		c.ProcessPath,
		string(c.Level),
		dateToNull(c.CertifiedDate),
		c.TrainerID,
		dateToNull(c.ExpirationDate),
		string(c.Status),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add certification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to add certification: %w", err)
	}

	c.ID = id
	return id, nil
}

// ActiveCertifications returns a worker's active certifications, most
// recently certified first.
func (s *Store) ActiveCertifications(ctx context.Context, workerID string) ([]*schema.Certification, error) {
	query := `
	SELECT cert_id, worker_id, process_path, level, certified_date,
	       trainer_id, expiration_date, status
	FROM certifications
	WHERE worker_id = ? AND status = 'active'
	ORDER BY certified_date DESC`

	rows, err := s.conn.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certifications for %s: %w", workerID, err)
	}
	defer rows.Close()

	var certs []*schema.Certification
	for rows.Next() {
		var c schema.Certification
		var process, level, certified, trainer, expiration sql.NullString

		err := rows.Scan(&c.ID, &c.WorkerID, &process, &level,
			&certified, &trainer, &expiration, &c.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certification: %w", err)
		}

		c.ProcessPath = process.String
		c.Level = schema.CertLevel(level.String)
		c.CertifiedDate = nullToDate(certified)
		c.TrainerID = trainer.String
		c.ExpirationDate = nullToDate(expiration)

		certs = append(certs, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating certifications: %w", err)
	}

	return certs, nil
}

// CheckEligibility reports whether a worker holds a currently valid
// certification for the process: status active and either no expiration or
// an expiration strictly in the future. A certification dated exactly today
// for expiration counts as expired.
//
// This predicate is the single authority for eligibility; callers must not
// recompute it from certification rows.
func (s *Store) CheckEligibility(ctx context.Context, workerID, processPath string) (bool, error) {
	query := `
	SELECT COUNT(*) FROM certifications
	WHERE worker_id = ?
	  AND process_path = ?
	  AND status = 'active'
	  AND (expiration_date IS NULL OR expiration_date > ?)`

	var count int
	err := s.conn.QueryRowContext(ctx, query, workerID, processPath, today()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check eligibility for %s/%s: %w", workerID, processPath, err)
	}

	return count > 0, nil
}
