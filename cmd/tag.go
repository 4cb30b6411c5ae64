package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/kvlm"
	"github.com/silt-vcs/silt/internal/object"
	"github.com/silt-vcs/silt/internal/resolve"
)

var (
	tagAnnotate bool
	tagMessage  string
)

var tagCmd = &cobra.Command{
	Use:          "tag [-a] <name> [<object>]",
	Short:        "List tags, or create a new lightweight or annotated tag",
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(2),
	RunE:         runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.Flags().BoolVarP(&tagAnnotate, "annotate", "a", false, "create an annotated tag object")
	tagCmd.Flags().StringVarP(&tagMessage, "message", "m", "", "annotated tag message")
}

func runTag(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		entries, err := resolve.RefList(repo, "refs/tags")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, e := range entries {
			fmt.Fprintln(out, e.Name[len("refs/tags/"):])
		}
		return nil
	}

	name := args[0]
	objectName := "HEAD"
	if len(args) > 1 {
		objectName = args[1]
	}

	id, err := resolveSingle(repo, objectName, "")
	if err != nil {
		return err
	}

	refName := "refs/tags/" + name

	if !tagAnnotate {
		return resolve.RefCreate(repo, refName, id)
	}

	kv := kvlm.New()
	kv.Add("object", id)
	kv.Add("type", string(codec.FmtCommit))
	kv.Add("tag", name)
	kv.Add("tagger", fmt.Sprintf("Silt <silt@localhost> %d +0000", time.Now().Unix()))
	kv.SetMessage(tagMessage + "\n")

	frame, err := object.ToFrame(object.Tag{KVLM: kv})
	if err != nil {
		return err
	}
	tagID, err := codec.Write(repo.Path("objects"), frame)
	if err != nil {
		return fmt.Errorf("failed to store tag object: %w", err)
	}

	return resolve.RefCreate(repo, refName, tagID)
}
