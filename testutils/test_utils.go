// Package testutils provides shared fixtures for the internal and cmd
// package test suites: temporary repository trees and filesystem
// assertions.
package testutils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/silt-vcs/silt/internal/repolayout"
)

// RandomString generates a random hex string of n bytes.
func RandomString(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// RandomHash generates a random 40-character SHA-1-shaped hex string.
func RandomHash() string {
	return RandomString(20)
}

// SetupTestRepoWithGitDir creates a temporary directory with a bare
// .git/objects structure, for tests that need the layout but not a
// full Create().
func SetupTestRepoWithGitDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	objectsDir := filepath.Join(repoPath, ".git", "objects")
	if err := os.MkdirAll(objectsDir, 0o755); err != nil {
		t.Fatalf("failed to create .git/objects: %v", err)
	}
	return repoPath
}

// SetupTestRepoWithInit creates a fully initialized .git repository
// via repolayout.Create and returns the worktree path.
func SetupTestRepoWithInit(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if _, err := repolayout.Create(repoPath); err != nil {
		t.Fatalf("failed to init test repository: %v", err)
	}
	return repoPath
}

// CreateTestFile creates a file with the given content under dir and
// returns its full path.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, 0o644); err != nil {
		t.Fatalf("failed to create test file %s: %v", filename, err)
	}
	return filePath
}

// AssertFileExists fails the test if path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected file to exist at %s", path)
	}
}

// AssertFileNotExists fails the test if path exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to NOT exist at %s", path)
	}
}

// AssertDirExists fails the test if path does not exist or is not a
// directory.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates the complete .git directory
// structure created by repolayout.Create: objects/, refs/heads/,
// refs/tags/, and a HEAD pointing at refs/heads/master.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	gitDir := filepath.Join(repoPath, ".git")
	AssertDirExists(t, gitDir)

	expectedDirs := []string{
		"objects",
		"refs",
		filepath.Join("refs", "heads"),
		filepath.Join("refs", "tags"),
	}
	for _, dir := range expectedDirs {
		AssertDirExists(t, filepath.Join(gitDir, dir))
	}

	headPath := filepath.Join(gitDir, "HEAD")
	AssertFileExists(t, headPath)

	content, err := os.ReadFile(headPath)
	if err != nil {
		t.Fatalf("failed to read HEAD file: %v", err)
	}

	const expectedContent = "ref: refs/heads/master\n"
	if string(content) != expectedContent {
		t.Errorf("HEAD content = %q, want %q", content, expectedContent)
	}
}
