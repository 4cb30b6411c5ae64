package cmd

import (
	"strings"
	"testing"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/testutils"
)

func TestRevParseCommand_ResolvesHexPrefix(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	id, err := codec.Write(".git/objects", codec.Frame{Fmt: codec.FmtBlob, Payload: []byte("rev-parse me")})
	if err != nil {
		t.Fatalf("failed to write fixture object: %v", err)
	}

	testRootCmd := createTestRootCmd(revParseCmd)
	stdout := captureStdout(testRootCmd)
	testRootCmd.SetArgs([]string{"rev-parse", id[:8]})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("rev-parse failed: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != id {
		t.Errorf("expected %s, got %s", id, stdout.String())
	}
}

func TestRevParseCommand_AmbiguousPrefix(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	// Brute-force two blobs whose ids share a four-character prefix.
	var first, second string
	for i := 0; i < 4096 && second == ""; i++ {
		payload := []byte{byte(i), byte(i >> 8)}
		id, err := codec.Write(".git/objects", codec.Frame{Fmt: codec.FmtBlob, Payload: payload})
		if err != nil {
			t.Fatalf("failed to write fixture object: %v", err)
		}
		if first == "" {
			first = id
			continue
		}
		if id[:4] == first[:4] {
			second = id
		}
	}
	if second == "" {
		t.Skip("could not find a colliding prefix within the iteration budget")
	}

	testRootCmd := createTestRootCmd(revParseCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetArgs([]string{"rev-parse", first[:4]})
	if err := testRootCmd.Execute(); err == nil {
		t.Fatal("expected an ambiguous reference error")
	}
}
