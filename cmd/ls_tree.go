package cmd

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/repolayout"
	"github.com/silt-vcs/silt/internal/treefmt"
)

var lsTreeRecurse bool

var lsTreeCmd = &cobra.Command{
	Use:          "ls-tree [-r] <tree-ish>",
	Short:        "List the contents of a tree object",
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runLsTree,
}

func init() {
	rootCmd.AddCommand(lsTreeCmd)
	lsTreeCmd.Flags().BoolVarP(&lsTreeRecurse, "recurse", "r", false, "recurse into subtrees")
}

func runLsTree(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	id, err := resolveSingle(repo, args[0], codec.FmtTree)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: %s is not a tree", errs.ErrBadObject, args[0])
	}

	return printTree(cmd, repo, id, "", lsTreeRecurse)
}

func printTree(cmd *cobra.Command, repo *repolayout.Repo, id, prefix string, recurse bool) error {
	objectsDir := repo.Path("objects")
	frame, ok, err := codec.Read(objectsDir, id)
	if err != nil {
		return err
	}
	if !ok || frame.Fmt != codec.FmtTree {
		return fmt.Errorf("%w: %s is not a tree", errs.ErrBadObject, id)
	}

	leaves, err := treefmt.Parse(frame.Payload)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, leaf := range leaves {
		fullPath := path.Join(prefix, leaf.Path)
		if recurse && leaf.IsDirectory() {
			if err := printTree(cmd, repo, leaf.SHA, fullPath, recurse); err != nil {
				return err
			}
			continue
		}

		kind := "blob"
		if leaf.IsDirectory() {
			kind = "tree"
		} else if len(leaf.Mode) >= 2 && leaf.Mode[:2] == "16" {
			kind = "commit"
		}
		fmt.Fprintf(out, "%s %s %s\t%s\n", leaf.Mode, kind, leaf.SHA, fullPath)
	}
	return nil
}
