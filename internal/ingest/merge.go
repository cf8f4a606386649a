package ingest

import (
	"context"
	"fmt"

	"github.com/floorops/dispatch/internal/store"
)

// Result contains statistics about one import batch.
type Result struct {
	Inserted int
	Updated  int
	Failed   int
	Errors   []string
}

// Merger applies import batches to the store.
type Merger struct {
	store *store.Store
}

// NewMerger creates a merger writing to s.
func NewMerger(s *store.Store) *Merger {
	return &Merger{store: s}
}

// MergeWorkers merges roster records: a record whose worker_id is unknown
// inserts a new worker, a known one updates only the fields the record
// carries. Records are applied in order, so when a batch repeats an
// identity the last record wins. Each record succeeds or fails alone.
func (m *Merger) MergeWorkers(ctx context.Context, records []Record) *Result {
	result := &Result{}

	for i, rec := range records {
		if err := m.mergeWorker(ctx, rec, result); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("record %d: %v", i+1, err))
		}
	}

	return result
}

func (m *Merger) mergeWorker(ctx context.Context, rec Record, result *Result) error {
	id, _ := rec.get("worker_id")
	if id == "" {
		return fmt.Errorf("no worker_id")
	}

	existing, err := m.store.GetWorker(ctx, id)
	if err != nil {
		return err
	}

	if existing == nil {
		w, err := rec.Worker()
		if err != nil {
			return err
		}
		if err := m.store.CreateWorker(ctx, w); err != nil {
			return err
		}
		result.Inserted++
		return nil
	}

	u, err := rec.WorkerUpdate()
	if err != nil {
		return err
	}
	if u.IsZero() {
		// Identity-only record: nothing to write.
		result.Updated++
		return nil
	}
	if err := m.store.UpdateWorker(ctx, id, u); err != nil {
		return err
	}
	result.Updated++
	return nil
}

// ImportCertifications inserts certification records. Unlike the roster
// merge there is no deduplication: re-importing a batch appends new rows
// every time.
func (m *Merger) ImportCertifications(ctx context.Context, records []Record) *Result {
	result := &Result{}

	for i, rec := range records {
		c, err := rec.Certification()
		if err == nil {
			_, err = m.store.AddCertification(ctx, c)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}
		result.Inserted++
	}

	return result
}
