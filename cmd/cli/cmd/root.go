// Package cmd provides the CLI commands for shipquickr.
package cmd

import (
	"fmt"
	"os"

	"shipquickr/internal/core/logger"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "shipquickr",
		Short: "Shop courier rates from the command line",
		Long: `shipquickr prices shipments against the rate card couriers without
touching the database, the cache or any courier API.

Examples:
  shipquickr quote --from 110001 --to 400001 --weight 0.3 --mode COD --collectable 500
  shipquickr quote --from 110001 --to 560001 --weight 2 --dims 30x20x10 --format json`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			if err := logger.Init("development", level); err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newQuoteCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "shipquickr version 1.0.0")
		},
	})

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}
