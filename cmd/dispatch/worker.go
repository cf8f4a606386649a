package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/schema"
	"github.com/floorops/dispatch/internal/ui"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Manage the worker roster",
}

var workerAddFlags struct {
	name     string
	shift    string
	photo    string
	hireDate string
	schedule string
	status   string
}

var workerAddCmd = &cobra.Command{
	Use:   "add <worker-id>",
	Short: "Add a worker to the roster",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		w := &schema.Worker{
			ID:        args[0],
			Name:      workerAddFlags.name,
			PhotoPath: workerAddFlags.photo,
			Schedule:  workerAddFlags.schedule,
			Shift:     schema.Shift(strings.ToUpper(workerAddFlags.shift)),
			Status:    schema.WorkerStatus(strings.ToLower(workerAddFlags.status)),
		}
		if workerAddFlags.hireDate != "" {
			t, err := parseDate(workerAddFlags.hireDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			w.HireDate = &t
		}

		if err := s.CreateWorker(context.Background(), w); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding worker: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Added worker %s (%s)\n", ui.RenderPass("✓"), w.ID, w.Name)
	},
}

var workerShowCmd = &cobra.Command{
	Use:   "show <worker-id>",
	Short: "Show one worker",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()
		ctx := context.Background()

		w, err := s.GetWorker(ctx, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if w == nil {
			fmt.Printf("%s Worker %s not found\n", ui.RenderWarn("⚠"), args[0])
			return
		}

		fmt.Printf("\n%s %s\n\n", ui.RenderAccent(w.ID), w.Name)
		fmt.Printf("Status: %s\n", w.Status)
		if w.Shift != "" {
			fmt.Printf("Shift: %s\n", w.Shift)
		}
		if w.HireDate != nil {
			fmt.Printf("Hired: %s\n", w.HireDate.Format(schema.DateLayout))
		}
		if w.PhotoPath != "" {
			fmt.Printf("Photo: %s\n", w.PhotoPath)
		}

		certs, err := s.ActiveCertifications(ctx, w.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing certifications: %v\n", err)
			os.Exit(1)
		}
		if len(certs) > 0 {
			fmt.Printf("\nActive certifications:\n")
			for _, c := range certs {
				line := fmt.Sprintf("  %-20s %s", c.ProcessPath, c.Level)
				if c.ExpirationDate != nil {
					line += "  expires " + c.ExpirationDate.Format(schema.DateLayout)
				}
				fmt.Println(line)
			}
		}
		fmt.Println()
	},
}

var workerListStatus string

var workerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workers, ordered by name",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		workers, err := s.ListWorkers(context.Background(), schema.WorkerStatus(strings.ToLower(workerListStatus)))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printWorkers(workers)
	},
}

var workerSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search workers by name or id substring",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		workers, err := s.SearchWorkers(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printWorkers(workers)
	},
}

var workerUpdateFlags struct {
	name     string
	shift    string
	photo    string
	hireDate string
	schedule string
	status   string
}

var workerUpdateCmd = &cobra.Command{
	Use:   "update <worker-id>",
	Short: "Update a worker; only the flags given change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var u schema.WorkerUpdate

		if cmd.Flags().Changed("name") {
			u.Name = &workerUpdateFlags.name
		}
		if cmd.Flags().Changed("photo") {
			u.PhotoPath = &workerUpdateFlags.photo
		}
		if cmd.Flags().Changed("schedule") {
			u.Schedule = &workerUpdateFlags.schedule
		}
		if cmd.Flags().Changed("shift") {
			shift := schema.Shift(strings.ToUpper(workerUpdateFlags.shift))
			u.Shift = &shift
		}
		if cmd.Flags().Changed("status") {
			status := schema.WorkerStatus(strings.ToLower(workerUpdateFlags.status))
			u.Status = &status
		}
		if cmd.Flags().Changed("hire-date") {
			t, err := parseDate(workerUpdateFlags.hireDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			u.HireDate = &t
		}

		if u.IsZero() {
			fmt.Fprintf(os.Stderr, "Error: no fields to update (see --help for flags)\n")
			os.Exit(1)
		}

		s := openStore()
		defer s.Close()

		if err := s.UpdateWorker(context.Background(), args[0], u); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating worker: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Updated worker %s\n", ui.RenderPass("✓"), args[0])
	},
}

func printWorkers(workers []*schema.Worker) {
	if len(workers) == 0 {
		fmt.Println("No workers found")
		return
	}

	for _, w := range workers {
		line := fmt.Sprintf("%-8s %-24s %-8s %s", w.ID, w.Name, w.Shift, w.Status)
		if w.Status != schema.WorkerActive {
			line = ui.RenderDim(line)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d worker(s)\n", len(workers))
}

func init() {
	workerAddCmd.Flags().StringVar(&workerAddFlags.name, "name", "", "worker name (required)")
	workerAddCmd.Flags().StringVar(&workerAddFlags.shift, "shift", "", "shift: DAY, NIGHT, or TWILIGHT")
	workerAddCmd.Flags().StringVar(&workerAddFlags.photo, "photo", "", "photo path")
	workerAddCmd.Flags().StringVar(&workerAddFlags.hireDate, "hire-date", "", "hire date")
	workerAddCmd.Flags().StringVar(&workerAddFlags.schedule, "schedule", "", "schedule JSON")
	workerAddCmd.Flags().StringVar(&workerAddFlags.status, "status", "", "status: active, inactive, or leave")
	_ = workerAddCmd.MarkFlagRequired("name")

	workerListCmd.Flags().StringVar(&workerListStatus, "status", "", "filter by status (empty = all)")

	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.name, "name", "", "worker name")
	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.shift, "shift", "", "shift: DAY, NIGHT, or TWILIGHT")
	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.photo, "photo", "", "photo path")
	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.hireDate, "hire-date", "", "hire date")
	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.schedule, "schedule", "", "schedule JSON")
	workerUpdateCmd.Flags().StringVar(&workerUpdateFlags.status, "status", "", "status: active, inactive, or leave")

	workerCmd.AddCommand(workerAddCmd)
	workerCmd.AddCommand(workerShowCmd)
	workerCmd.AddCommand(workerListCmd)
	workerCmd.AddCommand(workerSearchCmd)
	workerCmd.AddCommand(workerUpdateCmd)
	rootCmd.AddCommand(workerCmd)
}
