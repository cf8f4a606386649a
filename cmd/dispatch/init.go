package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/config"
	"github.com/floorops/dispatch/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the data directory, config file, and database",
	Long: `Create the dispatch data layout:

  1. Writes dispatch.toml with current settings (if absent)
  2. Creates the data, backup, photo, and import directories
  3. Creates the database file with the schema applied`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cfg.EnsureDirs(); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directories: %v\n", err)
			os.Exit(1)
		}

		wroteConfig := false
		if cfgFile == "" {
			if _, err := os.Stat(config.DefaultFileName); os.IsNotExist(err) {
				if err := cfg.WriteDefault(config.DefaultFileName); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
					os.Exit(1)
				}
				wroteConfig = true
			}
		}

		s := openStore()
		defer s.Close()

		fmt.Printf("%s Initialized dispatch workspace\n", ui.RenderPass("✓"))
		fmt.Printf("   Database: %s\n", cfg.DBPath)
		fmt.Printf("   Photos: %s\n", cfg.PhotoDir)
		fmt.Printf("   Imports: %s\n", cfg.ImportDir)
		if wroteConfig {
			fmt.Printf("   Config: %s\n", config.DefaultFileName)
		}
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
