package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/silt-vcs/silt/testutils"
)

// createTestRootCmd creates a fresh root command with cmd as its only
// subcommand, isolating each test from the package-level rootCmd.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	testRootCmd := &cobra.Command{Use: "silt"}
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

// captureStdout wires cmd's stdout to a buffer and returns it.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr wires cmd's stderr to a buffer and returns it.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// assertRepositoryStructure verifies the .git directory structure and
// HEAD file created by repolayout.Create.
func assertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()
	testutils.AssertRepositoryStructure(t, repoPath)
}

// changeToRepoDir changes the working directory to repoPath for the
// duration of the test.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("failed to change to directory %s: %v", repoPath, err)
	}
	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}
