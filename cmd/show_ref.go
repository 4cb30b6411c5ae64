package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/resolve"
)

var showRefCmd = &cobra.Command{
	Use:          "show-ref",
	Short:        "List every reference and the object id it resolves to",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runShowRef,
}

func init() {
	rootCmd.AddCommand(showRefCmd)
}

func runShowRef(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	entries, err := resolve.RefList(repo, "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s\n", e.Hash, e.Name)
	}
	return nil
}
