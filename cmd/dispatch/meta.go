package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/floorops/dispatch/internal/ui"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Read and write bookkeeping metadata keys",
}

var metaGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read a metadata key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		value, ok, err := s.GetMetadata(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			fmt.Printf("%s Key %s not set\n", ui.RenderWarn("⚠"), args[0])
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

var metaSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a metadata key (last write wins)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		if err := s.SetMetadata(context.Background(), args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s %s = %s\n", ui.RenderPass("✓"), args[0], args[1])
	},
}

func init() {
	metaCmd.AddCommand(metaGetCmd)
	metaCmd.AddCommand(metaSetCmd)
	rootCmd.AddCommand(metaCmd)
}
