package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-t|-s|-p) <object>",
	Short: "Print object type, size, or pretty-printed content",
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runCatFile,
}

var (
	catFileType bool
	catFileSize bool
	catFilePP   bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)
	catFileCmd.Flags().BoolVarP(&catFileType, "type", "t", false, "print the object's type")
	catFileCmd.Flags().BoolVarP(&catFileSize, "size", "s", false, "print the object's size")
	catFileCmd.Flags().BoolVarP(&catFilePP, "pretty-print", "p", false, "pretty-print the object's content")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	repo, err := currentRepo()
	if err != nil {
		return err
	}

	id, err := resolveSingle(repo, args[0], "")
	if err != nil {
		return err
	}

	frame, ok, err := codec.Read(repo.Path("objects"), id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", errs.ErrBadObject, id)
	}

	out := cmd.OutOrStdout()
	switch {
	case catFileType:
		fmt.Fprintln(out, frame.Fmt)
	case catFileSize:
		fmt.Fprintln(out, len(frame.Payload))
	case catFilePP:
		out.Write(frame.Payload)
	default:
		return fmt.Errorf("cat-file requires one of -t, -s, -p")
	}
	return nil
}
