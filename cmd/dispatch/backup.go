package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/ui"
)

var backupDir string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a consistent snapshot of the database",
	Long: `Write a timestamped snapshot of the database to the backup
directory. The snapshot is taken inside the engine, so it is consistent
even while other terminals keep the database open.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir := backupDir
		if dir == "" {
			dir = cfg.BackupDir
		}

		s := openStore()
		defer s.Close()

		path, err := s.Backup(context.Background(), dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error backing up: %v\n", err)
			os.Exit(1)
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error checking backup: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Backup written: %s (%d bytes)\n", ui.RenderPass("✓"), path, info.Size())
	},
}

func init() {
	backupCmd.Flags().StringVar(&backupDir, "dir", "", "backup directory (default from config)")
	rootCmd.AddCommand(backupCmd)
}
