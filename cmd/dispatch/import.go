package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/ingest"
	"github.com/floorops/dispatch/internal/store"
	"github.com/floorops/dispatch/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge collaborator-exported JSONL batches",
	Long: `Merge roster or certification batches exported by collaborators.

Each record is applied on its own: a bad record is counted and reported
without aborting the rest of the batch. Worker batches merge (insert new
identities, update known ones); certification batches always append.`,
}

var importWorkersCmd = &cobra.Command{
	Use:   "workers <file.jsonl>",
	Short: "Merge a worker roster batch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()
		if err := runImport(s, "workers", args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var importCertsCmd = &cobra.Command{
	Use:   "certs <file.jsonl>",
	Short: "Import a certification batch (always appends)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()
		if err := runImport(s, "certs", args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var importWatchKind string

var importWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the import drop directory and merge files as they land",
	Long: `Watch the configured import directory for dropped .jsonl files and
merge each one as it lands. Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		kind := strings.ToLower(importWatchKind)
		if kind != "workers" && kind != "certs" {
			fmt.Fprintf(os.Stderr, "Error: --kind must be workers or certs\n")
			os.Exit(1)
		}

		if err := os.MkdirAll(cfg.ImportDir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating import directory: %v\n", err)
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		watcher, err := ingest.NewWatcher()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := watcher.Start(cfg.ImportDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer watcher.Stop()

		fmt.Printf("%s Watching %s for %s batches\n", ui.RenderAccent("👁"), cfg.ImportDir, kind)
		fmt.Printf("Press Ctrl+C to stop\n\n")

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

		deb := newDebounce(time.Second)
		for {
			select {
			case <-sigs:
				fmt.Printf("\n%s Stopped\n", ui.RenderPass("✓"))
				return
			case err := <-watcher.Errors():
				fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
			case path := <-watcher.Events():
				// Create followed by write fires twice for one drop.
				if deb.trip(path, time.Now()) {
					continue
				}
				if err := runImport(s, kind, path); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
		}
	},
}

var importLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent import batches",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := ingest.NewImportLog(cfg.ImportLogPath()).Entries()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Println("No imports logged")
			return
		}

		for _, e := range entries {
			fmt.Printf("%s  %-8s %-28s +%d ~%d !%d\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Kind, filepath.Base(e.Source), e.Inserted, e.Updated, e.Failed)
		}
	},
}

// debounce suppresses repeat events for the same path inside a window.
// Entries older than the window are pruned on every call, so the map
// stays bounded over an arbitrarily long watch session.
type debounce struct {
	window time.Duration
	seen   map[string]time.Time
}

func newDebounce(window time.Duration) *debounce {
	return &debounce{window: window, seen: make(map[string]time.Time)}
}

// trip records path at now and reports whether it already fired within
// the window.
func (d *debounce) trip(path string, now time.Time) bool {
	for p, ts := range d.seen {
		if now.Sub(ts) >= d.window {
			delete(d.seen, p)
		}
	}
	last, ok := d.seen[path]
	d.seen[path] = now
	return ok && now.Sub(last) < d.window
}

// runImport reads, merges, logs, and prints one batch.
func runImport(s *store.Store, kind, path string) error {
	records, err := ingest.ReadRecords(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	merger := ingest.NewMerger(s)
	var result *ingest.Result
	if kind == "workers" {
		result = merger.MergeWorkers(context.Background(), records)
	} else {
		result = merger.ImportCertifications(context.Background(), records)
	}

	entry := ingest.LogEntry{
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Source:    path,
		Inserted:  result.Inserted,
		Updated:   result.Updated,
		Failed:    result.Failed,
	}
	if err := ingest.NewImportLog(cfg.ImportLogPath()).Append(entry); err != nil {
		log.Printf("import log write failed: %v", err)
	}

	marker := ui.RenderPass("✓")
	if result.Failed > 0 {
		marker = ui.RenderWarn("⚠")
	}
	fmt.Printf("%s %s: %d inserted, %d updated, %d failed\n",
		marker, filepath.Base(path), result.Inserted, result.Updated, result.Failed)
	for _, msg := range result.Errors {
		fmt.Printf("   %s\n", ui.RenderDim(msg))
	}
	return nil
}

func init() {
	importWatchCmd.Flags().StringVar(&importWatchKind, "kind", "workers", "batch kind: workers or certs")

	importCmd.AddCommand(importWorkersCmd)
	importCmd.AddCommand(importCertsCmd)
	importCmd.AddCommand(importWatchCmd)
	importCmd.AddCommand(importLogCmd)
	rootCmd.AddCommand(importCmd)
}
