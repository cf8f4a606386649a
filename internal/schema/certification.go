package schema

import (
	"fmt"
	"time"
)

// CertLevel is the fixed proficiency enumeration for process certifications.
type CertLevel string

const (
	LevelLC1        CertLevel = "LC1"
	LevelLC2        CertLevel = "LC2"
	LevelLC3        CertLevel = "LC3"
	LevelAmbassador CertLevel = "AMBASSADOR"
	LevelTrainer    CertLevel = "TRAINER"
)

// DefaultLevel is the lowest proficiency tier, applied when a record
// carries no level.
const DefaultLevel = LevelLC1

// Valid reports whether l is one of the known certification levels.
func (l CertLevel) Valid() bool {
	switch l {
	case LevelLC1, LevelLC2, LevelLC3, LevelAmbassador, LevelTrainer:
		return true
	}
	return false
}

// CertStatus is the certification lifecycle enumeration.
type CertStatus string

const (
	CertActive  CertStatus = "active"
	CertExpired CertStatus = "expired"
	CertRevoked CertStatus = "revoked"
)

// Valid reports whether s is one of the known certification statuses.
func (s CertStatus) Valid() bool {
	switch s {
	case CertActive, CertExpired, CertRevoked:
		return true
	}
	return false
}

// Certification records that a worker was certified for a process path.
//
// Whether a certification currently gates eligibility is decided solely by
// the store's eligibility check; nothing else recomputes that predicate.
type Certification struct {
	ID          int64     `json:"cert_id"`
	WorkerID    string    `json:"worker_id"`
	ProcessPath string    `json:"process_path"`
	Level       CertLevel `json:"level"`

	CertifiedDate  *time.Time `json:"certified_date,omitempty"`
	TrainerID      string     `json:"trainer_id,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`

	Status CertStatus `json:"status"`
}

// Validate checks required fields and enumeration values.
func (c *Certification) Validate() error {
	if c.WorkerID == "" {
		return fmt.Errorf("worker_id is required")
	}
	if c.ProcessPath == "" {
		return fmt.Errorf("process_path is required")
	}
	if c.Level != "" && !c.Level.Valid() {
		return fmt.Errorf("invalid level %q", c.Level)
	}
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("invalid status %q", c.Status)
	}
	return nil
}

// SetDefaults applies the default level, status, and certified date.
func (c *Certification) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Status == "" {
		c.Status = CertActive
	}
	if c.CertifiedDate == nil {
		now := time.Now()
		c.CertifiedDate = &now
	}
}
