// Package repolayout locates, opens, and creates the on-disk .git
// repository layout: HEAD, config, description, branches/, objects/,
// refs/heads/, refs/tags/.
package repolayout

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/iniconfig"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644

	gitDirName   = ".git"
	defaultHead  = "ref: refs/heads/master\n"
	fixedConfig  = "[core]\n\trepositoryformatversion = 0\n\tfilemode = false\n\tbare = false\n"
	fixedDescrip = "Unnamed repository; edit this file 'description' to name the repository.\n"
)

// Repo is an opened repository: a worktree path and its .git
// directory.
type Repo struct {
	Worktree string
	GitDir   string
}

// Open locates the gitdir at path/.git and validates it, unless force
// is set, in which case all validation is skipped (used by Create
// while the repository is still being assembled).
func Open(path string, force bool) (*Repo, error) {
	gitdir := filepath.Join(path, gitDirName)

	if !force {
		info, err := os.Stat(gitdir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotARepository, path)
		}
	}

	repo := &Repo{Worktree: path, GitDir: gitdir}

	if !force {
		cfgPath := filepath.Join(gitdir, "config")
		cfg, err := iniconfig.ParseFile(cfgPath)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: missing config at %s", errs.ErrBadConfig, cfgPath)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrBadConfig, err)
		}

		versionStr, _ := cfg.Get("core", "repositoryformatversion")
		version, err := strconv.Atoi(versionStr)
		if err != nil || version != 0 {
			return nil, fmt.Errorf("%w: unsupported repositoryformatversion %q", errs.ErrBadConfig, versionStr)
		}
	}

	return repo, nil
}

// Path joins the gitdir with segments, performing no filesystem
// access.
func (r *Repo) Path(segments ...string) string {
	return filepath.Join(append([]string{r.GitDir}, segments...)...)
}

// File is like Path, but ensures the parent directory exists before
// returning.
func (r *Repo) File(segments ...string) (string, error) {
	p := r.Path(segments...)
	if err := os.MkdirAll(filepath.Dir(p), dirPerms); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}
	return p, nil
}

// Dir is like Path; if the target exists and is a directory it is
// returned, if it exists and is not a directory that's NotADirectory,
// and if it doesn't exist it is created (when create is true) or ""
// is returned (when create is false).
func (r *Repo) Dir(create bool, segments ...string) (string, error) {
	p := r.Path(segments...)

	info, err := os.Stat(p)
	if err == nil {
		if info.IsDir() {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s", errs.ErrNotADirectory, p)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	if !create {
		return "", nil
	}
	if err := os.MkdirAll(p, dirPerms); err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}
	return p, nil
}

// Create initializes a new repository at path. The worktree may be
// absent (it is created) or exist as an empty directory; it must not
// already contain a .git. Writes branches/, objects/, refs/heads/,
// refs/tags/, description, HEAD (pointing at refs/heads/master), and
// config (repositoryformatversion=0, filemode=false, bare=false).
func Create(path string) (*Repo, error) {
	gitdir := filepath.Join(path, gitDirName)

	if info, err := os.Stat(gitdir); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%w: repository already exists at %s", errs.ErrIOFailure, gitdir)
		}
		return nil, fmt.Errorf("%w: %s exists and is not a directory", errs.ErrNotADirectory, gitdir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	if err := os.MkdirAll(path, dirPerms); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIOFailure, err)
	}

	initSuccess := false
	defer func() {
		if !initSuccess {
			cleanup(gitdir)
		}
	}()

	directories := []string{
		gitdir,
		filepath.Join(gitdir, "branches"),
		filepath.Join(gitdir, "objects"),
		filepath.Join(gitdir, "refs", "heads"),
		filepath.Join(gitdir, "refs", "tags"),
	}
	for _, dir := range directories {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return nil, fmt.Errorf("%w: create %s: %w", errs.ErrIOFailure, dir, err)
		}
	}

	writes := map[string]string{
		filepath.Join(gitdir, "description"): fixedDescrip,
		filepath.Join(gitdir, "HEAD"):        defaultHead,
		filepath.Join(gitdir, "config"):      fixedConfig,
	}
	for file, content := range writes {
		if err := os.WriteFile(file, []byte(content), filePerms); err != nil {
			return nil, fmt.Errorf("%w: write %s: %v", errs.ErrIOFailure, file, err)
		}
	}

	initSuccess = true
	return &Repo{Worktree: path, GitDir: gitdir}, nil
}

func cleanup(gitdir string) {
	if _, err := os.Stat(gitdir); err != nil {
		return
	}
	slog.Debug("cleaning up partial repository initialization", "path", gitdir)
	if err := os.RemoveAll(gitdir); err != nil {
		slog.Warn("failed to clean up repository directory", "path", gitdir, "error", err)
	}
}

// Find walks upward from start until a directory containing a .git
// subdirectory is found. When required is true and the filesystem
// root is reached without a hit, it fails NotARepository; otherwise
// it returns (nil, nil).
func Find(start string, required bool) (*Repo, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	for {
		gitdir := filepath.Join(dir, gitDirName)
		if info, err := os.Stat(gitdir); err == nil && info.IsDir() {
			return Open(dir, false)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			if required {
				return nil, fmt.Errorf("%w: no %s above %s", errs.ErrNotARepository, gitDirName, start)
			}
			return nil, nil
		}
		dir = parent
	}
}
