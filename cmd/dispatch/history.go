package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/schema"
	"github.com/floorops/dispatch/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Rotation history rollups (append-only)",
}

var historyAddFlags struct {
	position string
	cluster  string
	aisle    int
	start    string
	end      string
}

var historyAddCmd = &cobra.Command{
	Use:   "add <worker-id>",
	Short: "Append a rotation rollup for a worker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		start, err := time.Parse(time.RFC3339, historyAddFlags.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --start (want RFC 3339): %v\n", err)
			os.Exit(1)
		}
		end, err := time.Parse(time.RFC3339, historyAddFlags.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --end (want RFC 3339): %v\n", err)
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		h := &schema.HistoryEntry{
			WorkerID:     args[0],
			PositionType: strings.ToUpper(historyAddFlags.position),
			Cluster:      strings.ToUpper(historyAddFlags.cluster),
			Aisle:        historyAddFlags.aisle,
			StartTime:    start,
			EndTime:      end,
		}
		if _, err := s.AppendHistory(context.Background(), h); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Logged %d minute(s) of %s for %s\n",
			ui.RenderPass("✓"), h.DurationMinutes, h.PositionType, h.WorkerID)
	},
}

var historyShowLimit int

var historyShowCmd = &cobra.Command{
	Use:   "show <worker-id>",
	Short: "Show a worker's rotation history, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		entries, err := s.HistoryForWorker(context.Background(), args[0], historyShowLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Printf("No history for %s\n", args[0])
			return
		}

		for _, h := range entries {
			fmt.Printf("%s  %-14s %s%-3d %4d min\n",
				h.StartTime.Local().Format("2006-01-02 15:04"),
				h.PositionType, h.Cluster, h.Aisle, h.DurationMinutes)
		}
	},
}

func init() {
	historyAddCmd.Flags().StringVar(&historyAddFlags.position, "position", "", "position type (required)")
	historyAddCmd.Flags().StringVar(&historyAddFlags.cluster, "cluster", "", "cluster letter")
	historyAddCmd.Flags().IntVar(&historyAddFlags.aisle, "aisle", 0, "aisle")
	historyAddCmd.Flags().StringVar(&historyAddFlags.start, "start", "", "start time, RFC 3339 (required)")
	historyAddCmd.Flags().StringVar(&historyAddFlags.end, "end", "", "end time, RFC 3339 (required)")
	_ = historyAddCmd.MarkFlagRequired("position")
	_ = historyAddCmd.MarkFlagRequired("start")
	_ = historyAddCmd.MarkFlagRequired("end")

	historyShowCmd.Flags().IntVar(&historyShowLimit, "limit", 20, "max entries (0 = all)")

	historyCmd.AddCommand(historyAddCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
