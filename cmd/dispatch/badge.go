package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/badge"
	"github.com/floorops/dispatch/internal/schema"
	"github.com/floorops/dispatch/internal/ui"
)

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Badge image cache operations",
}

var badgePreloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Render and cache badges for all active workers",
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		workers, err := s.ListWorkers(context.Background(), schema.WorkerActive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		m := badge.NewManager(cfg.PhotoDir, cfg.CacheCapacity)
		m.Preload(workers)

		stats := m.Stats()
		fmt.Printf("%s Rendered %d badge(s) (cache %d/%d)\n",
			ui.RenderPass("✓"), len(workers), stats.Len, stats.Cap)
	},
}

var badgeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show badge cache configuration",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Photo dir: %s\n", cfg.PhotoDir)
		fmt.Printf("Cache capacity: %d\n", cfg.CacheCapacity)
		fmt.Printf("Default badge size: %dx%d\n", cfg.BadgeSize, cfg.BadgeSize)
	},
}

func init() {
	badgeCmd.AddCommand(badgePreloadCmd)
	badgeCmd.AddCommand(badgeStatsCmd)
	rootCmd.AddCommand(badgeCmd)
}
