package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd defines the base command for the silt CLI.
// All subcommands (init, hash-object, cat-file, etc.) register under
// this root. Uses cobra for command parsing, flag handling, and help
// generation.
var rootCmd = &cobra.Command{
	Use:   "silt",
	Short: "A from-scratch, Git-compatible object store and reference layer",
	Long: `Silt reads and writes the on-disk repository layout defined by Git so that
its outputs (object files, refs, tree/commit bytes, SHA-1 identities) are
byte-compatible with a stock Git install.`,
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
