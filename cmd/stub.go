package cmd

import (
	"github.com/spf13/cobra"
)

// The commands in this file are named explicitly in spec.md as stubs
// in the source: the staging index and working-tree diff that would
// back them are out of scope for Silt's core. Each accepts any
// arguments, ignores them, and prints one line saying the command is
// not implemented, matching the placeholder style of the original
// command bodies.

var addCmd = &cobra.Command{
	Use:          "add <path>...",
	Short:        "Add file contents to the index (not implemented)",
	SilenceUsage: true,
	RunE:         stubRun("add"),
}

var commitCmd = &cobra.Command{
	Use:          "commit",
	Short:        "Record changes to the repository (not implemented)",
	SilenceUsage: true,
	RunE:         stubRun("commit"),
}

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Show the working tree status (not implemented)",
	SilenceUsage: true,
	RunE:         stubRun("status"),
}

var rmCmd = &cobra.Command{
	Use:          "rm <path>...",
	Short:        "Remove files from the working tree and the index (not implemented)",
	SilenceUsage: true,
	RunE:         stubRun("rm"),
}

var checkIgnoreCmd = &cobra.Command{
	Use:          "check-ignore <path>...",
	Short:        "Check whether paths are excluded (not implemented)",
	SilenceUsage: true,
	RunE:         stubRun("check-ignore"),
}

func init() {
	rootCmd.AddCommand(addCmd, commitCmd, statusCmd, rmCmd, checkIgnoreCmd)
}

func stubRun(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.Printf("%s: not yet implemented\n", name)
		return nil
	}
}
