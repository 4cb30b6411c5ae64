package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/kvlm"
	"github.com/silt-vcs/silt/internal/repolayout"
)

var logCmd = &cobra.Command{
	Use:          "log [<commit>]",
	Short:        "Print the commit history reachable from a commit, following first parents",
	SilenceUsage: true,
	Args:         maximumArgs(1),
	RunE:         runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	start := "HEAD"
	if len(args) > 0 {
		start = args[0]
	}

	id, err := resolveSingle(repo, start, codec.FmtCommit)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("%w: %s is not a commit", errs.ErrBadObject, start)
	}

	out := cmd.OutOrStdout()
	objectsDir := repo.Path("objects")

	for id != "" {
		kv, err := readCommitKVLM(repo, objectsDir, id)
		if err != nil {
			return err
		}

		firstLine := strings.SplitN(kv.Message(), "\n", 2)[0]
		fmt.Fprintf(out, "%s %s\n", id, firstLine)

		parents := kv.Values("parent")
		if len(parents) == 0 {
			break
		}
		id = parents[0]
	}

	return nil
}

func readCommitKVLM(repo *repolayout.Repo, objectsDir, id string) (*kvlm.KVLM, error) {
	frame, ok, err := codec.Read(objectsDir, id)
	if err != nil {
		return nil, err
	}
	if !ok || frame.Fmt != codec.FmtCommit {
		return nil, fmt.Errorf("%w: %s is not a commit", errs.ErrBadObject, id)
	}
	return kvlm.Parse(frame.Payload)
}
