// Package cmd implements the readtax command-line interface: a cobra
// root command plus a classify subcommand exposing the full set of
// classification flags.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "readtax",
	Short: "Taxonomic classification of sequencing reads against a protein reference",
	Long: `readtax classifies reads against an FM-indexed protein reference, using
either maximal-exact-match (mem) or seed-and-extend (greedy) alignment,
and resolves ambiguous hits to their lowest common ancestor.
`,
}

// Execute runs the root command, exiting non-zero on any returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
