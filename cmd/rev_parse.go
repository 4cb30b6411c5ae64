package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
)

var revParseType string

var revParseCmd = &cobra.Command{
	Use:          "rev-parse <name>",
	Short:        "Resolve a name to a full object id",
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runRevParse,
}

func init() {
	rootCmd.AddCommand(revParseCmd)
	revParseCmd.Flags().StringVarP(&revParseType, "type", "t", "", "require the resolved object to have this type")
}

func runRevParse(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	id, err := resolveSingle(repo, args[0], codec.Fmt(revParseType))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}
