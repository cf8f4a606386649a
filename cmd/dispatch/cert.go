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

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Manage process certifications",
}

var certAddFlags struct {
	level      string
	certified  string
	trainer    string
	expiration string
}

var certAddCmd = &cobra.Command{
	Use:   "add <worker-id> <process-path>",
	Short: "Record a certification",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c := &schema.Certification{
			WorkerID:    args[0],
			ProcessPath: strings.ToUpper(args[1]),
			Level:       schema.CertLevel(strings.ToUpper(certAddFlags.level)),
			TrainerID:   certAddFlags.trainer,
		}
		if certAddFlags.certified != "" {
			t, err := parseDate(certAddFlags.certified)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			c.CertifiedDate = &t
		}
		if certAddFlags.expiration != "" {
			t, err := parseDate(certAddFlags.expiration)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			c.ExpirationDate = &t
		}

		s := openStore()
		defer s.Close()

		if _, err := s.AddCertification(context.Background(), c); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding certification: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s Certified %s on %s (%s)\n", ui.RenderPass("✓"),
			c.WorkerID, c.ProcessPath, c.Level)
	},
}

var certListCmd = &cobra.Command{
	Use:   "list <worker-id>",
	Short: "List a worker's active certifications",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		certs, err := s.ActiveCertifications(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(certs) == 0 {
			fmt.Printf("No active certifications for %s\n", args[0])
			return
		}

		for _, c := range certs {
			line := fmt.Sprintf("%-20s %-12s", c.ProcessPath, c.Level)
			if c.CertifiedDate != nil {
				line += "  certified " + c.CertifiedDate.Format(schema.DateLayout)
			}
			if c.ExpirationDate != nil {
				line += "  expires " + c.ExpirationDate.Format(schema.DateLayout)
			}
			fmt.Println(line)
		}
	},
}

var certCheckCmd = &cobra.Command{
	Use:   "check <worker-id> <process-path>",
	Short: "Check whether a worker is currently eligible for a process",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := openStore()
		defer s.Close()

		process := strings.ToUpper(args[1])
		ok, err := s.CheckEligibility(context.Background(), args[0], process)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if ok {
			fmt.Printf("%s %s is eligible for %s\n", ui.RenderPass("✓"), args[0], process)
			return
		}
		fmt.Printf("%s %s is NOT eligible for %s\n", ui.RenderWarn("✗"), args[0], process)
		os.Exit(1)
	},
}

func init() {
	certAddCmd.Flags().StringVar(&certAddFlags.level, "level", "", "level: LC1, LC2, LC3, AMBASSADOR, or TRAINER (default LC1)")
	certAddCmd.Flags().StringVar(&certAddFlags.certified, "date", "", "certification date (default today)")
	certAddCmd.Flags().StringVar(&certAddFlags.trainer, "trainer", "", "trainer worker id")
	certAddCmd.Flags().StringVar(&certAddFlags.expiration, "expires", "", "expiration date")

	certCmd.AddCommand(certAddCmd)
	certCmd.AddCommand(certListCmd)
	certCmd.AddCommand(certCheckCmd)
	rootCmd.AddCommand(certCmd)
}
