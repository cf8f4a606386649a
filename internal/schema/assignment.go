package schema

import (
	"fmt"
	"strings"
	"time"
)

// Clusters is the fixed set of cluster letters on the warehouse floor.
const Clusters = "ABCDEFGHIJKLM"

// Aisle bounds within a cluster.
const (
	MinAisle = 1
	MaxAisle = 30
)

// PositionTypes is the conventional position palette. Assignments draw from
// it by convention; the store does not reject other values.
var PositionTypes = []string{
	"DOCK",
	"STOW",
	"PICK",
	"PACK",
	"SHIP_CLERK",
	"PROBLEM_SOLVE",
	"WATER_SPIDER",
	"QUALITY",
	"LEADERSHIP",
}

// ValidCluster reports whether c is a single letter from the cluster set.
func ValidCluster(c string) bool {
	return len(c) == 1 && strings.Contains(Clusters, c)
}

// ValidAisle reports whether n is within the aisle range.
func ValidAisle(n int) bool {
	return n >= MinAisle && n <= MaxAisle
}

// AssignmentStatus is the assignment lifecycle enumeration. Deletion is
// logical only: rows flip to cancelled and are never removed.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// Valid reports whether s is one of the known assignment statuses.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// Assignment staffs one worker to one floor location for a shift date.
type Assignment struct {
	ID        int64     `json:"assignment_id"`
	WorkerID  string    `json:"worker_id"`
	ShiftDate time.Time `json:"shift_date"`

	Cluster      string `json:"cluster"`
	Aisle        int    `json:"aisle"`
	PositionType string `json:"position_type"`

	AssignedAt time.Time        `json:"assigned_at"`
	AssignedBy string           `json:"assigned_by,omitempty"`
	Status     AssignmentStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`

	// Display fields joined from the worker row on date queries.
	WorkerName  string `json:"worker_name,omitempty"`
	WorkerPhoto string `json:"worker_photo,omitempty"`
}

// Validate checks location and enumeration values at write time.
func (a *Assignment) Validate() error {
	if a.WorkerID == "" {
		return fmt.Errorf("worker_id is required")
	}
	if a.ShiftDate.IsZero() {
		return fmt.Errorf("shift_date is required")
	}
	if !ValidCluster(a.Cluster) {
		return fmt.Errorf("invalid cluster %q (want one of %s)", a.Cluster, Clusters)
	}
	if !ValidAisle(a.Aisle) {
		return fmt.Errorf("invalid aisle %d (want %d-%d)", a.Aisle, MinAisle, MaxAisle)
	}
	if a.PositionType == "" {
		return fmt.Errorf("position_type is required")
	}
	if a.Status != "" && !a.Status.Valid() {
		return fmt.Errorf("invalid status %q", a.Status)
	}
	return nil
}

// AssignmentUpdate is a partial update: only non-nil fields are written.
type AssignmentUpdate struct {
	ShiftDate    *time.Time
	Cluster      *string
	Aisle        *int
	PositionType *string
	Status       *AssignmentStatus
	Notes        *string
}

// IsZero reports whether the update carries no fields.
func (u AssignmentUpdate) IsZero() bool {
	return u.ShiftDate == nil && u.Cluster == nil && u.Aisle == nil &&
		u.PositionType == nil && u.Status == nil && u.Notes == nil
}

// Validate checks location and enumeration values on the fields present.
func (u AssignmentUpdate) Validate() error {
	if u.Cluster != nil && !ValidCluster(*u.Cluster) {
		return fmt.Errorf("invalid cluster %q (want one of %s)", *u.Cluster, Clusters)
	}
	if u.Aisle != nil && !ValidAisle(*u.Aisle) {
		return fmt.Errorf("invalid aisle %d (want %d-%d)", *u.Aisle, MinAisle, MaxAisle)
	}
	if u.Status != nil && !u.Status.Valid() {
		return fmt.Errorf("invalid status %q", *u.Status)
	}
	if u.PositionType != nil && *u.PositionType == "" {
		return fmt.Errorf("position_type cannot be cleared")
	}
	return nil
}
