package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for anomalyscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomalyscan",
		Short: "Gauge anomaly verification and anomaly-free model search",
		Long: `anomalyscan verifies gauge anomaly cancellation for chiral fermion spectra
and searches for anomaly-free extensions of the Standard Model.

All seven anomaly coefficients are computed in exact rational arithmetic;
floats appear only at the final tolerance comparison. The search runs in
staged blocks: single additions, exhaustive vector-like pairs, conjugates
of earlier hits, and chiral Higgsino-like pairs.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
