// Package schema provides the entity types shared by the dispatch store,
// the merge engine, and the CLI: workers, assignments, certifications, and
// assignment history rollups. The store owns all of these exclusively;
// other packages only construct and read them.
package schema

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk format for date-only columns (shift dates,
// hire dates, certification dates). Timestamps use RFC 3339.
const DateLayout = "2006-01-02"

// Shift is the fixed shift-category enumeration.
type Shift string

const (
	ShiftDay      Shift = "DAY"
	ShiftNight    Shift = "NIGHT"
	ShiftTwilight Shift = "TWILIGHT"
)

// Shifts lists all valid shift categories.
var Shifts = []Shift{ShiftDay, ShiftNight, ShiftTwilight}

// Valid reports whether s is one of the known shift categories.
func (s Shift) Valid() bool {
	switch s {
	case ShiftDay, ShiftNight, ShiftTwilight:
		return true
	}
	return false
}

// WorkerStatus is the worker lifecycle enumeration. Transitions are
// free-form at this layer; higher layers decide which flips are legal.
type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "active"
	WorkerInactive WorkerStatus = "inactive"
	WorkerLeave    WorkerStatus = "leave"
)

// Valid reports whether s is one of the known worker statuses.
func (s WorkerStatus) Valid() bool {
	switch s {
	case WorkerActive, WorkerInactive, WorkerLeave:
		return true
	}
	return false
}

// Worker represents one warehouse worker. Workers are never physically
// deleted; Status models the soft lifecycle.
//
// Schedule, Certifications and Restrictions carry opaque JSON text that the
// store persists verbatim and never parses.
type Worker struct {
	ID        string `json:"worker_id"`
	Name      string `json:"name"`
	PhotoPath string `json:"photo_path,omitempty"`
	Shift     Shift  `json:"shift,omitempty"`

	Schedule       string `json:"schedule,omitempty"`
	Certifications string `json:"certifications,omitempty"`
	Restrictions   string `json:"restrictions,omitempty"`

	HireDate *time.Time   `json:"hire_date,omitempty"`
	Status   WorkerStatus `json:"status"`

	// Store-assigned on insert/update.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks required fields and enumeration values.
func (w *Worker) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("worker_id is required")
	}
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.Shift != "" && !w.Shift.Valid() {
		return fmt.Errorf("invalid shift %q", w.Shift)
	}
	if w.Status != "" && !w.Status.Valid() {
		return fmt.Errorf("invalid status %q", w.Status)
	}
	return nil
}

// SetDefaults applies default values for optional fields.
func (w *Worker) SetDefaults() {
	if w.Status == "" {
		w.Status = WorkerActive
	}
}

// WorkerUpdate is a partial update: only non-nil fields are written.
// Listing the fields explicitly keeps the updatable set checked at compile
// time instead of at call time.
type WorkerUpdate struct {
	Name           *string
	PhotoPath      *string
	Shift          *Shift
	Schedule       *string
	Certifications *string
	Restrictions   *string
	HireDate       *time.Time
	Status         *WorkerStatus
}

// IsZero reports whether the update carries no fields.
func (u WorkerUpdate) IsZero() bool {
	return u.Name == nil && u.PhotoPath == nil && u.Shift == nil &&
		u.Schedule == nil && u.Certifications == nil && u.Restrictions == nil &&
		u.HireDate == nil && u.Status == nil
}

// Validate checks enumeration values on the fields that are present.
func (u WorkerUpdate) Validate() error {
	if u.Shift != nil && !u.Shift.Valid() {
		return fmt.Errorf("invalid shift %q", *u.Shift)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("invalid status %q", *u.Status)
	}
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("name cannot be cleared")
	}
	return nil
}
