package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/object"
)

var (
	hashObjectWrite bool
	hashObjectType  string
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <filepath>",
	Short: "Compute an object's id, and optionally store it",
	Long: `Compute the SHA-1 object id for a file's content, framed under the given
type (default blob). With -w, also deflate and store the object under
.git/objects.`,
	SilenceUsage: true,
	Args:         exactArgs(1),
	RunE:         runHashObject,
}

func init() {
	rootCmd.AddCommand(hashObjectCmd)
	hashObjectCmd.Flags().BoolVarP(&hashObjectWrite, "write", "w", false, "write the object into .git/objects")
	hashObjectCmd.Flags().StringVarP(&hashObjectType, "type", "t", "blob", "object type (blob, commit, tag, tree)")
}

// exactArgs validates the command receives exactly n positional
// arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			argName := "argument"
			if fields := strings.Fields(cmd.Use); len(fields) > 1 {
				argName = strings.Trim(fields[len(fields)-1], "<>")
			}
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, argName, len(args))
		}
		return nil
	}
}

func runHashObject(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	format := codec.Fmt(hashObjectType)
	obj, err := object.Deserialize(format, content)
	if err != nil {
		return err
	}
	frame, err := object.ToFrame(obj)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), frame.Hash())

	if hashObjectWrite {
		repo, err := currentRepo()
		if err != nil {
			return err
		}
		if _, err := codec.Write(repo.Path("objects"), frame); err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	return nil
}
