// Command dispatch is the warehouse labor dispatch tracker CLI: a local
// SQLite-backed roster, assignment board, and certification ledger shared
// by every terminal on the same filesystem.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/floorops/dispatch/internal/config"
	"github.com/floorops/dispatch/internal/store"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dispatch",
	Short: "Warehouse labor dispatch tracker",
	Long: `Track warehouse workers, daily floor assignments, and process
certifications in a local SQLite database.

The database file can be shared by several terminals at once; writes are
serialized through WAL with a bounded busy timeout. Roster and
certification batches exported by collaborators are merged with
'dispatch import'.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// App log rotates in place; CLI output stays on the terminal.
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default "+config.DefaultFileName+" in the working directory)")
}

// openStore opens the configured database with the schema applied. Exits
// the process on failure, as every command needs the store.
func openStore() *store.Store {
	busy := time.Duration(cfg.BusyTimeoutMS) * time.Millisecond
	s, err := store.OpenTimeout(cfg.DBPath, busy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	if err := s.InitSchema(); err != nil {
		s.Close()
		fmt.Fprintf(os.Stderr, "Error initializing schema: %v\n", err)
		os.Exit(1)
	}

	return s
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
