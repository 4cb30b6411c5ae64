package cmd

import (
	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/repolayout"
	"github.com/silt-vcs/silt/internal/resolve"
)

// resolveSingle is a thin wrapper over resolve.ObjectFind shared by
// every command body that needs to turn a user-supplied name into one
// object id.
func resolveSingle(repo *repolayout.Repo, name string, format codec.Fmt) (string, error) {
	return resolve.ObjectFind(repo, name, format, true)
}
