package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/schema"
	"github.com/floorops/dispatch/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data for collaborators",
}

var exportBoardFlags struct {
	date   string
	status string
	out    string
}

var exportBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Export a date's assignment board as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		date, err := parseDate(exportBoardFlags.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		status := schema.AssignmentStatus(strings.ToLower(exportBoardFlags.status))
		board, err := s.AssignmentsForDate(context.Background(), date, status)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		out := os.Stdout
		if exportBoardFlags.out != "" {
			f, err := os.Create(exportBoardFlags.out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}

		w := csv.NewWriter(out)
		header := []string{"assignment_id", "worker_id", "worker_name", "shift_date",
			"cluster", "aisle", "position_type", "status", "assigned_by", "notes"}
		if err := w.Write(header); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		for _, a := range board {
			row := []string{
				strconv.FormatInt(a.ID, 10),
				a.WorkerID,
				a.WorkerName,
				a.ShiftDate.Format(schema.DateLayout),
				a.Cluster,
				strconv.Itoa(a.Aisle),
				a.PositionType,
				string(a.Status),
				a.AssignedBy,
				a.Notes,
			}
			if err := w.Write(row); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
				os.Exit(1)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}

		if exportBoardFlags.out != "" {
			fmt.Printf("%s Exported %d assignment(s) to %s\n",
				ui.RenderPass("✓"), len(board), exportBoardFlags.out)
		}
	},
}

func init() {
	exportBoardCmd.Flags().StringVar(&exportBoardFlags.date, "date", "", "shift date (default today)")
	exportBoardCmd.Flags().StringVar(&exportBoardFlags.status, "status", "", "status filter (empty = all)")
	exportBoardCmd.Flags().StringVar(&exportBoardFlags.out, "out", "", "output file (default stdout)")

	exportCmd.AddCommand(exportBoardCmd)
	rootCmd.AddCommand(exportCmd)
}
