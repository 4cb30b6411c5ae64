package cmd

import (
	"fmt"
	"os"

	"github.com/silt-vcs/silt/internal/repolayout"
)

// currentRepo locates the repository containing the current working
// directory, walking upward the way git itself does.
func currentRepo() (*repolayout.Repo, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	repo, err := repolayout.Find(cwd, true)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
