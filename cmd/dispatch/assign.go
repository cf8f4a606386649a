package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/schema"
	"github.com/floorops/dispatch/internal/store"
	"github.com/floorops/dispatch/internal/ui"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Manage the daily assignment board",
}

var assignCreateFlags struct {
	date       string
	cluster    string
	aisle      int
	position   string
	assignedBy string
	notes      string
}

var assignCreateCmd = &cobra.Command{
	Use:   "create <worker-id>",
	Short: "Assign a worker to a floor location for a shift date",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, err := parseDate(assignCreateFlags.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		a := &schema.Assignment{
			WorkerID:     args[0],
			ShiftDate:    date,
			Cluster:      strings.ToUpper(assignCreateFlags.cluster),
			Aisle:        assignCreateFlags.aisle,
			PositionType: strings.ToUpper(assignCreateFlags.position),
			AssignedBy:   assignCreateFlags.assignedBy,
			Notes:        assignCreateFlags.notes,
		}

		id, err := s.CreateAssignment(context.Background(), a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating assignment: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Assignment %d: %s -> %s%d %s on %s\n",
			ui.RenderPass("✓"), id, a.WorkerID, a.Cluster, a.Aisle,
			a.PositionType, date.Format(schema.DateLayout))
	},
}

var assignUpdateFlags struct {
	date     string
	cluster  string
	aisle    int
	position string
	status   string
	notes    string
}

var assignUpdateCmd = &cobra.Command{
	Use:   "update <assignment-id>",
	Short: "Update an assignment; only the flags given change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid assignment id %q\n", args[0])
			os.Exit(1)
		}

		var u schema.AssignmentUpdate
		if cmd.Flags().Changed("date") {
			t, err := parseDate(assignUpdateFlags.date)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			u.ShiftDate = &t
		}
		if cmd.Flags().Changed("cluster") {
			c := strings.ToUpper(assignUpdateFlags.cluster)
			u.Cluster = &c
		}
		if cmd.Flags().Changed("aisle") {
			u.Aisle = &assignUpdateFlags.aisle
		}
		if cmd.Flags().Changed("position") {
			p := strings.ToUpper(assignUpdateFlags.position)
			u.PositionType = &p
		}
		if cmd.Flags().Changed("status") {
			st := schema.AssignmentStatus(strings.ToLower(assignUpdateFlags.status))
			u.Status = &st
		}
		if cmd.Flags().Changed("notes") {
			u.Notes = &assignUpdateFlags.notes
		}

		if u.IsZero() {
			fmt.Fprintf(os.Stderr, "Error: no fields to update (see --help for flags)\n")
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		if err := s.UpdateAssignment(context.Background(), id, u); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating assignment: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Updated assignment %d\n", ui.RenderPass("✓"), id)
	},
}

var assignCancelCmd = &cobra.Command{
	Use:   "cancel <assignment-id>",
	Short: "Cancel an assignment (the row is kept, status flips)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var id int64
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid assignment id %q\n", args[0])
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		if err := s.CancelAssignment(context.Background(), id); err != nil {
			fmt.Fprintf(os.Stderr, "Error cancelling assignment: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Cancelled assignment %d\n", ui.RenderPass("✓"), id)
	},
}

var assignBoardFlags struct {
	date   string
	status string
	follow bool
}

var assignBoardCmd = &cobra.Command{
	Use:   "board [date]",
	Short: "Show the assignment board for a date",
	Long: `Show the assignment board for a date, ordered by cluster then aisle.

With --follow the board re-queries on the configured poll interval, which
is how changes written by other terminals become visible.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		arg := assignBoardFlags.date
		if len(args) == 1 {
			arg = args[0]
		}
		date, err := parseDate(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()
		status := schema.AssignmentStatus(strings.ToLower(assignBoardFlags.status))

		if err := printBoard(s, date, status); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if !assignBoardFlags.follow {
			return
		}

		interval := time.Duration(cfg.PollIntervalSec) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			fmt.Println()
			if err := printBoard(s, date, status); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

var assignRecentDays int

var assignRecentCmd = &cobra.Command{
	Use:   "recent <worker-id>",
	Short: "Show a worker's recent assignments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		list, err := s.RecentAssignments(context.Background(), args[0], assignRecentDays)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(list) == 0 {
			fmt.Printf("No assignments for %s in the last %d days\n", args[0], assignRecentDays)
			return
		}

		for _, a := range list {
			line := fmt.Sprintf("%-12s %s%-3d %-14s %s",
				a.ShiftDate.Format(schema.DateLayout), a.Cluster, a.Aisle,
				a.PositionType, a.Status)
			if a.Status == schema.AssignmentCancelled {
				line = ui.RenderDim(line)
			}
			fmt.Println(line)
		}
	},
}

func printBoard(s *store.Store, date time.Time, status schema.AssignmentStatus) error {
	board, err := s.AssignmentsForDate(context.Background(), date, status)
	if err != nil {
		return err
	}

	fmt.Printf("%s Board for %s\n\n", ui.RenderAccent("▦"), date.Format(schema.DateLayout))
	if len(board) == 0 {
		fmt.Println("No assignments")
		return nil
	}

	cluster := ""
	for _, a := range board {
		if a.Cluster != cluster {
			cluster = a.Cluster
			fmt.Printf("Cluster %s\n", ui.RenderAccent(cluster))
		}
		line := fmt.Sprintf("  %2d  %-8s %-24s %-14s", a.Aisle, a.WorkerID, a.WorkerName, a.PositionType)
		if a.Status == schema.AssignmentCancelled {
			line = ui.RenderDim(line + "  (cancelled)")
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d assignment(s)\n", len(board))
	return nil
}

func init() {
	assignCreateCmd.Flags().StringVar(&assignCreateFlags.date, "date", "", "shift date (default today)")
	assignCreateCmd.Flags().StringVar(&assignCreateFlags.cluster, "cluster", "", "cluster letter A-M (required)")
	assignCreateCmd.Flags().IntVar(&assignCreateFlags.aisle, "aisle", 0, "aisle 1-30 (required)")
	assignCreateCmd.Flags().StringVar(&assignCreateFlags.position, "position", "", "position type (required)")
	assignCreateCmd.Flags().StringVar(&assignCreateFlags.assignedBy, "by", "", "who made the assignment")
	assignCreateCmd.Flags().StringVar(&assignCreateFlags.notes, "notes", "", "free-form notes")
	_ = assignCreateCmd.MarkFlagRequired("cluster")
	_ = assignCreateCmd.MarkFlagRequired("aisle")
	_ = assignCreateCmd.MarkFlagRequired("position")

	assignUpdateCmd.Flags().StringVar(&assignUpdateFlags.date, "date", "", "shift date")
	assignUpdateCmd.Flags().StringVar(&assignUpdateFlags.cluster, "cluster", "", "cluster letter A-M")
	assignUpdateCmd.Flags().IntVar(&assignUpdateFlags.aisle, "aisle", 0, "aisle 1-30")
	assignUpdateCmd.Flags().StringVar(&assignUpdateFlags.position, "position", "", "position type")
	assignUpdateCmd.Flags().StringVar(&assignUpdateFlags.status, "status", "", "status: active, completed, or cancelled")
	assignUpdateCmd.Flags().StringVar(&assignUpdateFlags.notes, "notes", "", "free-form notes")

	assignBoardCmd.Flags().StringVar(&assignBoardFlags.date, "date", "", "shift date (default today)")
	assignBoardCmd.Flags().StringVar(&assignBoardFlags.status, "status", "active", "status filter (empty = all, including cancelled)")
	assignBoardCmd.Flags().BoolVar(&assignBoardFlags.follow, "follow", false, "re-query on the poll interval")

	assignRecentCmd.Flags().IntVar(&assignRecentDays, "days", 30, "lookback window in days")

	assignCmd.AddCommand(assignCreateCmd)
	assignCmd.AddCommand(assignUpdateCmd)
	assignCmd.AddCommand(assignCancelCmd)
	assignCmd.AddCommand(assignBoardCmd)
	assignCmd.AddCommand(assignRecentCmd)
	rootCmd.AddCommand(assignCmd)
}
