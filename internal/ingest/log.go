package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// maxLogEntries bounds the import log; older entries fall off.
const maxLogEntries = 100

// LogEntry records one completed import batch.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	Inserted  int       `json:"inserted"`
	Updated   int       `json:"updated"`
	Failed    int       `json:"failed"`
}

// ImportLog is a bounded JSON file of recent import batches.
type ImportLog struct {
	path string
}

// NewImportLog creates a log backed by path. The file is created on the
// first append.
func NewImportLog(path string) *ImportLog {
	return &ImportLog{path: path}
}

// Append records a batch, keeping only the most recent entries.
func (l *ImportLog) Append(entry LogEntry) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal import log: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Write atomically via temp file
	tmpPath := l.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write import log: %w", err)
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace import log: %w", err)
	}

	return nil
}

// Entries returns the logged batches, oldest first. A missing file is an
// empty log.
func (l *ImportLog) Entries() ([]LogEntry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read import log: %w", err)
	}

	var entries []LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse import log: %w", err)
	}
	return entries, nil
}
