package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

func TestCreateWorker(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	hire := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	w := &schema.Worker{
		ID:        "W001",
		Name:      "Jordan Blake",
		PhotoPath: "photos/W001.jpg",
		Shift:     schema.ShiftDay,
		Schedule:  `{"monday":true}`,
		HireDate:  &hire,
	}

	if err := s.CreateWorker(ctx, w); err != nil {
		t.Fatalf("CreateWorker() failed: %v", err)
	}

	got, err := s.GetWorker(ctx, "W001")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetWorker() returned nil for existing worker")
	}
	if got.Name != "Jordan Blake" {
		t.Errorf("Name = %q, want Jordan Blake", got.Name)
	}
	if got.Shift != schema.ShiftDay {
		t.Errorf("Shift = %q, want DAY", got.Shift)
	}
	if got.Status != schema.WorkerActive {
		t.Errorf("Status = %q, want active (default)", got.Status)
	}
	if got.HireDate == nil || got.HireDate.Format(schema.DateLayout) != "2025-03-15" {
		t.Errorf("HireDate = %v, want 2025-03-15", got.HireDate)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps were not store-assigned")
	}
}

func TestCreateWorker_DuplicateID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	addWorker(t, s, "W001", "Jordan Blake")

	err := s.CreateWorker(ctx, &schema.Worker{ID: "W001", Name: "Someone Else"})
	if err == nil {
		t.Fatal("CreateWorker() with duplicate id should fail")
	}
	if !IsConstraint(err) {
		t.Errorf("IsConstraint(%v) = false, want true", err)
	}

	// The original row must be untouched.
	got, err := s.GetWorker(ctx, "W001")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}
	if got.Name != "Jordan Blake" {
		t.Errorf("Name = %q, duplicate insert overwrote the row", got.Name)
	}
}

func TestCreateWorker_Invalid(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		worker *schema.Worker
	}{
		{"missing id", &schema.Worker{Name: "No ID"}},
		{"missing name", &schema.Worker{ID: "W002"}},
		{"bad shift", &schema.Worker{ID: "W003", Name: "Bad Shift", Shift: "SWING"}},
		{"bad status", &schema.Worker{ID: "W004", Name: "Bad Status", Status: "fired"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateWorker(ctx, tt.worker); err == nil {
				t.Error("CreateWorker() should have failed")
			}
		})
	}
}

func TestGetWorker_NotFound(t *testing.T) {
	s := testStore(t)

	got, err := s.GetWorker(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetWorker(missing) = %+v, want nil", got)
	}
}

func TestPutWorker_Upsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	w := &schema.Worker{ID: "W001", Name: "Jordan Blake", Shift: schema.ShiftDay}
	if err := s.PutWorker(ctx, w); err != nil {
		t.Fatalf("PutWorker(insert) failed: %v", err)
	}

	first, err := s.GetWorker(ctx, "W001")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}

	time.Sleep(1100 * time.Millisecond)

	w2 := &schema.Worker{ID: "W001", Name: "Jordan A. Blake", Shift: schema.ShiftNight}
	if err := s.PutWorker(ctx, w2); err != nil {
		t.Fatalf("PutWorker(update) failed: %v", err)
	}

	got, err := s.GetWorker(ctx, "W001")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}
	if got.Name != "Jordan A. Blake" || got.Shift != schema.ShiftNight {
		t.Errorf("upsert did not replace fields: %+v", got)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at changed on upsert: %v -> %v", first.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at was not bumped: %v -> %v", first.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpdateWorker_Partial(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	w := &schema.Worker{ID: "W001", Name: "Jordan Blake", Shift: schema.ShiftDay, PhotoPath: "photos/W001.jpg"}
	if err := s.CreateWorker(ctx, w); err != nil {
		t.Fatalf("CreateWorker() failed: %v", err)
	}

	shift := schema.ShiftTwilight
	status := schema.WorkerLeave
	err := s.UpdateWorker(ctx, "W001", schema.WorkerUpdate{Shift: &shift, Status: &status})
	if err != nil {
		t.Fatalf("UpdateWorker() failed: %v", err)
	}

	got, err := s.GetWorker(ctx, "W001")
	if err != nil {
		t.Fatalf("GetWorker() failed: %v", err)
	}
	if got.Shift != schema.ShiftTwilight || got.Status != schema.WorkerLeave {
		t.Errorf("updated fields not applied: %+v", got)
	}
	// Untouched fields survive.
	if got.Name != "Jordan Blake" || got.PhotoPath != "photos/W001.jpg" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestUpdateWorker_Errors(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	addWorker(t, s, "W001", "Jordan Blake")

	if err := s.UpdateWorker(ctx, "W001", schema.WorkerUpdate{}); err == nil {
		t.Error("empty update should fail")
	}

	name := "Ghost"
	err := s.UpdateWorker(ctx, "NOPE", schema.WorkerUpdate{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateWorker(missing) = %v, want ErrNotFound", err)
	}

	bad := schema.Shift("SWING")
	if err := s.UpdateWorker(ctx, "W001", schema.WorkerUpdate{Shift: &bad}); err == nil {
		t.Error("invalid shift should fail")
	}
}

func TestListWorkers_StatusFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	addWorker(t, s, "W001", "Charlie Fox")
	addWorker(t, s, "W002", "Alex Reed")
	addWorker(t, s, "W003", "Blair Chen")

	inactive := schema.WorkerInactive
	if err := s.UpdateWorker(ctx, "W003", schema.WorkerUpdate{Status: &inactive}); err != nil {
		t.Fatalf("UpdateWorker() failed: %v", err)
	}

	all, err := s.ListWorkers(ctx, "")
	if err != nil {
		t.Fatalf("ListWorkers() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d workers, want 3", len(all))
	}
	// Ordered by name.
	if all[0].Name != "Alex Reed" || all[1].Name != "Blair Chen" || all[2].Name != "Charlie Fox" {
		t.Errorf("not ordered by name: %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	active, err := s.ListWorkers(ctx, schema.WorkerActive)
	if err != nil {
		t.Fatalf("ListWorkers(active) failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("got %d active workers, want 2", len(active))
	}
}

func TestSearchWorkers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	addWorker(t, s, "W001", "Jordan Blake")
	addWorker(t, s, "W002", "Morgan Blakely")
	addWorker(t, s, "X777", "Sam Torres")

	byName, err := s.SearchWorkers(ctx, "Blake")
	if err != nil {
		t.Fatalf("SearchWorkers() failed: %v", err)
	}
	if len(byName) != 2 {
		t.Errorf("search by name: got %d, want 2", len(byName))
	}

	byID, err := s.SearchWorkers(ctx, "X7")
	if err != nil {
		t.Fatalf("SearchWorkers() failed: %v", err)
	}
	if len(byID) != 1 || byID[0].ID != "X777" {
		t.Errorf("search by id: got %+v, want X777", byID)
	}

	none, err := s.SearchWorkers(ctx, "zzz")
	if err != nil {
		t.Fatalf("SearchWorkers() failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("search miss: got %d, want 0", len(none))
	}
}
