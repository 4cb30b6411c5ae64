package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/repolayout"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create an empty Silt repository",
	Long: `The 'init' command creates a new .git directory with the layout Silt (and
stock Git) expect, at the given directory or the current one.`,
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// maximumArgs validates the command receives at most n positional
// arguments.
func maximumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command accepts at most %d arg(s), received %d", cmd.Name(), n, len(args))
		}
		return nil
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dirPath := "."
	if len(args) > 0 {
		dirPath = args[0]
	}

	repo, err := repolayout.Create(dirPath)
	if err != nil {
		return fmt.Errorf("failed to initialize repository - %w", err)
	}

	cmd.Printf("Initialized empty Silt repository in %s/\n", repo.GitDir)
	return nil
}
