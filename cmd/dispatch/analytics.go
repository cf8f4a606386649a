package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/ui"
)

var coverageDate string

var coverageCmd = &cobra.Command{
	Use:   "coverage [date]",
	Short: "Summarize active assignments for a date by cluster and position",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		arg := coverageDate
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

		summary, err := s.Coverage(context.Background(), date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Coverage for %s\n\n", ui.RenderAccent("▦"), summary.Date)
		fmt.Printf("Total active assignments: %d\n", summary.Total)

		if len(summary.ByCluster) > 0 {
			fmt.Printf("\nBy cluster:\n")
			for _, cluster := range sortedKeys(summary.ByCluster) {
				fmt.Printf("  %-3s %d\n", cluster, summary.ByCluster[cluster])
			}
		}
		if len(summary.ByPosition) > 0 {
			fmt.Printf("\nBy position:\n")
			for _, position := range sortedKeys(summary.ByPosition) {
				fmt.Printf("  %-16s %d\n", position, summary.ByPosition[position])
			}
		}
	},
}

var gapsThreshold int

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "List active workers below the certification threshold",
	Run: func(cmd *cobra.Command, args []string) {
		threshold := gapsThreshold
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.TrainingGapThreshold
		}

		s := openStore()
		defer s.Close()

		gaps, err := s.TrainingGaps(context.Background(), threshold)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(gaps) == 0 {
			fmt.Printf("%s No training gaps below %d certification(s)\n", ui.RenderPass("✓"), threshold)
			return
		}

		fmt.Printf("%s Workers below %d active certification(s):\n\n", ui.RenderWarn("⚠"), threshold)
		for _, g := range gaps {
			fmt.Printf("%-8s %-24s %-8s %d cert(s)\n", g.WorkerID, g.Name, g.Shift, g.CertCount)
		}
	},
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	coverageCmd.Flags().StringVar(&coverageDate, "date", "", "shift date (default today)")
	gapsCmd.Flags().IntVar(&gapsThreshold, "threshold", 2, "certification count threshold")

	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(gapsCmd)
}
