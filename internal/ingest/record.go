// Package ingest merges collaborator-exported roster and certification
// records into the dispatch store. Imports are record-at-a-time: one bad
// record is counted and reported without aborting the batch, and nothing
// makes a batch atomic.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/floorops/dispatch/internal/schema"
)

// Record is one flat field map from an import file. Unrecognized keys are
// ignored so collaborators can carry extra columns without breaking imports.
type Record map[string]string

// get returns a trimmed field value and whether the key was present.
func (r Record) get(key string) (string, bool) {
	v, ok := r[key]
	return strings.TrimSpace(v), ok
}

// Worker converts a roster record into a worker entity.
func (r Record) Worker() (*schema.Worker, error) {
	w := &schema.Worker{}

	id, _ := r.get("worker_id")
	if id == "" {
		return nil, fmt.Errorf("record has no worker_id")
	}
	w.ID = id

	w.Name, _ = r.get("name")
	w.PhotoPath, _ = r.get("photo_path")
	w.Schedule, _ = r.get("schedule")
	w.Certifications, _ = r.get("certifications")
	w.Restrictions, _ = r.get("restrictions")

	if shift, ok := r.get("shift"); ok && shift != "" {
		w.Shift = schema.Shift(strings.ToUpper(shift))
	}
	if status, ok := r.get("status"); ok && status != "" {
		w.Status = schema.WorkerStatus(strings.ToLower(status))
	}
	if hire, ok := r.get("hire_date"); ok && hire != "" {
		t, err := time.Parse(schema.DateLayout, hire)
		if err != nil {
			return nil, fmt.Errorf("worker %s: invalid hire_date %q: %w", id, hire, err)
		}
		w.HireDate = &t
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// WorkerUpdate converts a roster record into a partial update carrying only
// the fields the record actually names. Fields absent from the record stay
// untouched on merge.
func (r Record) WorkerUpdate() (schema.WorkerUpdate, error) {
	var u schema.WorkerUpdate

	if name, ok := r.get("name"); ok && name != "" {
		u.Name = &name
	}
	if photo, ok := r.get("photo_path"); ok {
		u.PhotoPath = &photo
	}
	if schedule, ok := r.get("schedule"); ok {
		u.Schedule = &schedule
	}
	if certs, ok := r.get("certifications"); ok {
		u.Certifications = &certs
	}
	if restr, ok := r.get("restrictions"); ok {
		u.Restrictions = &restr
	}
	if shift, ok := r.get("shift"); ok && shift != "" {
		s := schema.Shift(strings.ToUpper(shift))
		u.Shift = &s
	}
	if status, ok := r.get("status"); ok && status != "" {
		s := schema.WorkerStatus(strings.ToLower(status))
		u.Status = &s
	}
	if hire, ok := r.get("hire_date"); ok && hire != "" {
		t, err := time.Parse(schema.DateLayout, hire)
		if err != nil {
			return u, fmt.Errorf("invalid hire_date %q: %w", hire, err)
		}
		u.HireDate = &t
	}

	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

// Certification converts a certification record into an entity.
func (r Record) Certification() (*schema.Certification, error) {
	c := &schema.Certification{}

	id, _ := r.get("worker_id")
	if id == "" {
		return nil, fmt.Errorf("record has no worker_id")
	}
	c.WorkerID = id

	c.ProcessPath, _ = r.get("process_path")
	c.TrainerID, _ = r.get("trainer_id")

	if level, ok := r.get("level"); ok && level != "" {
		c.Level = schema.CertLevel(strings.ToUpper(level))
	}
	if status, ok := r.get("status"); ok && status != "" {
		c.Status = schema.CertStatus(strings.ToLower(status))
	}
	if certified, ok := r.get("certified_date"); ok && certified != "" {
		t, err := time.Parse(schema.DateLayout, certified)
		if err != nil {
			return nil, fmt.Errorf("cert for %s: invalid certified_date %q: %w", id, certified, err)
		}
		c.CertifiedDate = &t
	}
	if expiration, ok := r.get("expiration_date"); ok && expiration != "" {
		t, err := time.Parse(schema.DateLayout, expiration)
		if err != nil {
			return nil, fmt.Errorf("cert for %s: invalid expiration_date %q: %w", id, expiration, err)
		}
		c.ExpirationDate = &t
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
