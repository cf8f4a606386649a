package store

import (
	"context"
	"testing"

	"github.com/floorops/dispatch/internal/schema"
)

func TestCoverage(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, id := range []string{"W001", "W002", "W003", "W004", "W005", "W006"} {
		addWorker(t, s, id, "Worker "+string(rune('A'+i)))
	}

	addAssignment(t, s, "W001", "A", 1, "PICK")
	addAssignment(t, s, "W002", "A", 2, "STOW")
	addAssignment(t, s, "W003", "B", 1, "PICK")
	addAssignment(t, s, "W004", "B", 2, "PICK")
	addAssignment(t, s, "W005", "B", 3, "PACK")

	// A cancelled assignment must vanish from every count.
	cancelled := addAssignment(t, s, "W006", "A", 3, "PICK")
	if err := s.CancelAssignment(ctx, cancelled); err != nil {
		t.Fatalf("CancelAssignment() failed: %v", err)
	}

	summary, err := s.Coverage(ctx, testDate())
	if err != nil {
		t.Fatalf("Coverage() failed: %v", err)
	}

	if summary.Total != 5 {
		t.Errorf("Total = %d, want 5", summary.Total)
	}
	if summary.ByCluster["A"] != 2 || summary.ByCluster["B"] != 3 {
		t.Errorf("ByCluster = %v, want A:2 B:3", summary.ByCluster)
	}
	if summary.ByPosition["PICK"] != 3 || summary.ByPosition["STOW"] != 1 || summary.ByPosition["PACK"] != 1 {
		t.Errorf("ByPosition = %v, want PICK:3 STOW:1 PACK:1", summary.ByPosition)
	}
}

func TestCoverage_EmptyDate(t *testing.T) {
	s := testStore(t)

	summary, err := s.Coverage(context.Background(), testDate())
	if err != nil {
		t.Fatalf("Coverage() failed: %v", err)
	}
	if summary.Total != 0 || len(summary.ByCluster) != 0 || len(summary.ByPosition) != 0 {
		t.Errorf("empty date should yield zero counts: %+v", summary)
	}
}

func TestTrainingGaps(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	addWorker(t, s, "W001", "Alex Reed")    // 2 certs, at threshold
	addWorker(t, s, "W002", "Blair Chen")   // 1 cert
	addWorker(t, s, "W003", "Charlie Fox")  // 0 certs
	addWorker(t, s, "W004", "Dana Whitley") // 1 active + 1 expired

	addCert(t, s, &schema.Certification{WorkerID: "W001", ProcessPath: "PICK"})
	addCert(t, s, &schema.Certification{WorkerID: "W001", ProcessPath: "STOW"})
	addCert(t, s, &schema.Certification{WorkerID: "W002", ProcessPath: "PICK"})
	addCert(t, s, &schema.Certification{WorkerID: "W004", ProcessPath: "PICK"})
	addCert(t, s, &schema.Certification{WorkerID: "W004", ProcessPath: "STOW", Status: schema.CertExpired})

	gaps, err := s.TrainingGaps(ctx, 2)
	if err != nil {
		t.Fatalf("TrainingGaps() failed: %v", err)
	}
	if len(gaps) != 3 {
		t.Fatalf("got %d gaps, want 3", len(gaps))
	}

	// Ordered by name; expired cert does not count toward the total.
	want := []struct {
		id    string
		count int
	}{
		{"W002", 1},
		{"W003", 0},
		{"W004", 1},
	}
	for i, w := range want {
		if gaps[i].WorkerID != w.id || gaps[i].CertCount != w.count {
			t.Errorf("gaps[%d] = %s/%d, want %s/%d",
				i, gaps[i].WorkerID, gaps[i].CertCount, w.id, w.count)
		}
	}
}

func TestTrainingGaps_ExcludesInactiveWorkers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	addWorker(t, s, "W001", "Alex Reed")
	addWorker(t, s, "W002", "Blair Chen")

	inactive := schema.WorkerInactive
	if err := s.UpdateWorker(ctx, "W002", schema.WorkerUpdate{Status: &inactive}); err != nil {
		t.Fatalf("UpdateWorker() failed: %v", err)
	}

	gaps, err := s.TrainingGaps(ctx, 2)
	if err != nil {
		t.Fatalf("TrainingGaps() failed: %v", err)
	}
	if len(gaps) != 1 || gaps[0].WorkerID != "W001" {
		t.Errorf("got %+v, want only the active worker", gaps)
	}
}

func TestTrainingGaps_DuplicateCertsCountOnce(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	addWorker(t, s, "W001", "Alex Reed")

	// Duplicate rows for the same process path are one distinct path.
	addCert(t, s, &schema.Certification{WorkerID: "W001", ProcessPath: "PICK"})
	addCert(t, s, &schema.Certification{WorkerID: "W001", ProcessPath: "PICK", Level: schema.LevelLC2})

	gaps, err := s.TrainingGaps(ctx, 2)
	if err != nil {
		t.Fatalf("TrainingGaps() failed: %v", err)
	}
	if len(gaps) != 1 || gaps[0].CertCount != 1 {
		t.Errorf("got %+v, want cert_count 1 from distinct paths", gaps)
	}
}
