package schema

import (
	"fmt"
	"time"
)

// HistoryEntry is a denormalized rollup of one completed assignment
// interval, kept for rotation analytics. Entries are append-only and never
// updated once written.
type HistoryEntry struct {
	ID              int64     `json:"history_id"`
	WorkerID        string    `json:"worker_id"`
	PositionType    string    `json:"position_type"`
	Cluster         string    `json:"cluster"`
	Aisle           int       `json:"aisle"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

// Validate checks required fields and derives the duration when absent.
func (h *HistoryEntry) Validate() error {
	if h.WorkerID == "" {
		return fmt.Errorf("worker_id is required")
	}
	if h.StartTime.IsZero() || h.EndTime.IsZero() {
		return fmt.Errorf("start_time and end_time are required")
	}
	if h.EndTime.Before(h.StartTime) {
		return fmt.Errorf("end_time precedes start_time")
	}
	if h.DurationMinutes == 0 {
		h.DurationMinutes = int(h.EndTime.Sub(h.StartTime) / time.Minute)
	}
	return nil
}
