package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiledragon/gomonkey/v2"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/testutils"
)

func TestHashObjectCommand_Success_NoStorage(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithGitDir(t)
	changeToRepoDir(t, repoPath)

	testFileName := "test.txt"
	testFileContent := []byte("hello world\nHave a nice day")
	testutils.CreateTestFile(t, repoPath, testFileName, testFileContent)

	testRootCmd := createTestRootCmd(hashObjectCmd)
	stdout := captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", testFileName})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("hash-object command failed: %v", err)
	}

	outputHash := strings.TrimSpace(stdout.String())
	expectedHash := codec.Hash(testFileContent, codec.FmtBlob)
	if expectedHash != outputHash {
		t.Fatalf("expected hash %s, got %s", expectedHash, outputHash)
	}

	objectPath := codec.ObjectPath(filepath.Join(repoPath, ".git", "objects"), outputHash)
	testutils.AssertFileNotExists(t, objectPath)
}

func TestHashObjectCommand_Success_WithStorage(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)

	testFileName := "test.txt"
	testFileContent := []byte("hello world\nHave a nice day")
	testutils.CreateTestFile(t, repoPath, testFileName, testFileContent)

	changeToRepoDir(t, repoPath)

	testRootCmd := createTestRootCmd(hashObjectCmd)
	stdout := captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", testFileName, "-w"})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("hash-object command failed: %v", err)
	}

	expectedHash := codec.Hash(testFileContent, codec.FmtBlob)
	outputHash := strings.TrimSpace(stdout.String())
	if expectedHash != outputHash {
		t.Fatalf("expected hash %s, got %s", expectedHash, outputHash)
	}

	objectsDir := filepath.Join(repoPath, ".git", "objects")
	testutils.AssertFileExists(t, codec.ObjectPath(objectsDir, outputHash))

	frame, ok, err := codec.Read(objectsDir, expectedHash)
	if err != nil || !ok {
		t.Fatalf("failed to read stored object: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(frame.Payload, testFileContent) {
		t.Errorf("stored content mismatch: expected %q, got %q", testFileContent, frame.Payload)
	}
}

func TestHashObject_FileNotFound(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithGitDir(t)
	changeToRepoDir(t, repoPath)

	testRootCmd := createTestRootCmd(hashObjectCmd)
	captureStderr(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", "dummy.txt"})
	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("hash-object command should fail")
	}

	expectedErrorMessage := fmt.Sprintf("failed to read file %s", "dummy.txt")
	if !strings.Contains(err.Error(), expectedErrorMessage) {
		t.Fatalf("expected error to contain %q, got %q", expectedErrorMessage, err.Error())
	}
}

func TestHashObjectCommand_NoArguments(t *testing.T) {
	testRootCmd := createTestRootCmd(hashObjectCmd)
	captureStderr(testRootCmd)
	captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object"})
	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when no arguments provided")
	}
}

func TestHashObjectCommand_TooManyArguments(t *testing.T) {
	testRootCmd := createTestRootCmd(hashObjectCmd)
	captureStderr(testRootCmd)
	captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", "a.txt", "b.txt"})
	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when too many arguments are provided")
	}
}

func TestHashObjectCommand_FileNotInRepository(t *testing.T) {
	repoPath := t.TempDir()
	changeToRepoDir(t, repoPath)

	testFileName := "test.txt"
	testutils.CreateTestFile(t, repoPath, testFileName, []byte("content"))

	testRootCmd := createTestRootCmd(hashObjectCmd)
	captureStderr(testRootCmd)
	captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", testFileName, "-w"})
	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("expected error when file is not inside a repository")
	}
	if !strings.Contains(err.Error(), "not a git repository") {
		t.Fatalf("expected error to mention a missing repository, got %q", err.Error())
	}
}

func TestHashObjectCommand_StoreFailure(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	testFileName := "test.txt"
	testutils.CreateTestFile(t, repoPath, testFileName, []byte("some content"))

	mockError := errors.New("disk full")
	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		return mockError
	})
	defer patches.Reset()

	testRootCmd := createTestRootCmd(hashObjectCmd)
	captureStderr(testRootCmd)
	captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", testFileName, "-w"})
	err := testRootCmd.Execute()
	if err == nil {
		t.Fatal("expected hash-object command to fail according to mocking")
	}
	if !errors.Is(err, mockError) {
		t.Fatalf("expected error to wrap %v, got %v", mockError, err)
	}
}

func TestHashObjectCommand_MultipleFiles_SameContent(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	content := []byte("identical content\n")
	testutils.CreateTestFile(t, repoPath, "file1.txt", content)
	testutils.CreateTestFile(t, repoPath, "file2.txt", content)

	testRootCmd1 := createTestRootCmd(hashObjectCmd)
	stdout1 := captureStdout(testRootCmd1)
	testRootCmd1.SetArgs([]string{"hash-object", "-w", "file1.txt"})
	if err := testRootCmd1.Execute(); err != nil {
		t.Fatalf("failed to hash file1: %v", err)
	}
	hash1 := strings.TrimSpace(stdout1.String())

	testRootCmd2 := createTestRootCmd(hashObjectCmd)
	stdout2 := captureStdout(testRootCmd2)
	testRootCmd2.SetArgs([]string{"hash-object", "-w", "file2.txt"})
	if err := testRootCmd2.Execute(); err != nil {
		t.Fatalf("failed to hash file2: %v", err)
	}
	hash2 := strings.TrimSpace(stdout2.String())

	if hash1 != hash2 {
		t.Errorf("identical content should produce the same hash: %s != %s", hash1, hash2)
	}

	objectsDir := filepath.Join(repoPath, ".git", "objects")
	testutils.AssertFileExists(t, codec.ObjectPath(objectsDir, hash1))
}

func TestHashObjectCommand_EmptyFile(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	testutils.CreateTestFile(t, repoPath, "empty.txt", []byte{})

	testRootCmd := createTestRootCmd(hashObjectCmd)
	stdout := captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", "-w", "empty.txt"})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("hash-object should succeed for an empty file: %v", err)
	}

	outputHash := strings.TrimSpace(stdout.String())
	expectedHash := codec.Hash([]byte{}, codec.FmtBlob)
	if outputHash != expectedHash {
		t.Errorf("expected empty file hash %s, got %s", expectedHash, outputHash)
	}
}

func TestHashObjectCommand_LargeFile(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithInit(t)
	changeToRepoDir(t, repoPath)

	largeContent := bytes.Repeat([]byte("A"), 1024*1024)
	testutils.CreateTestFile(t, repoPath, "large.bin", largeContent)

	testRootCmd := createTestRootCmd(hashObjectCmd)
	stdout := captureStdout(testRootCmd)

	testRootCmd.SetArgs([]string{"hash-object", "-w", "large.bin"})
	if err := testRootCmd.Execute(); err != nil {
		t.Fatalf("hash-object should succeed for a large file: %v", err)
	}

	outputHash := strings.TrimSpace(stdout.String())
	expectedHash := codec.Hash(largeContent, codec.FmtBlob)
	if len(outputHash) != 40 {
		t.Errorf("expected a 40-char hash, got: %s", outputHash)
	}
	if expectedHash != outputHash {
		t.Fatalf("expected hash %s, got %s", expectedHash, outputHash)
	}

	objectsDir := filepath.Join(repoPath, ".git", "objects")
	testutils.AssertFileExists(t, codec.ObjectPath(objectsDir, outputHash))
}
