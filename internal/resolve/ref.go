// Package resolve implements Silt's reference layer (symref-following
// read/list/create) and name layer (short-hash / symref / tag / branch
// resolution, with optional type-following indirection).
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/repolayout"
)

const refPrefix = "ref: "

// RefResolve reads .git/<name> and, transitively, whatever it points
// at: if its trimmed content begins with "ref: " it recurses on the
// suffix, otherwise the trimmed content is the hex id. Returns ("",
// false, nil) if the ref file is absent. The ref graph is assumed
// acyclic; cycles are undefined behavior (a cycle recurses without
// bound).
func RefResolve(repo *repolayout.Repo, name string) (string, bool, error) {
	path := repo.Path(filepath.FromSlash(name))

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %v", errs.ErrIOFailure, path, err)
	}

	trimmed := strings.TrimRight(string(content), "\r\n")
	if strings.HasPrefix(trimmed, refPrefix) {
		return RefResolve(repo, strings.TrimPrefix(trimmed, refPrefix))
	}
	return trimmed, true, nil
}

// RefList returns every ref under startPath (relative to the gitdir;
// defaults to "refs" when empty), recursing into subdirectories,
// keyed by gitdir-relative path with forward-slash separators and
// resolved to a hex id. Iteration order is the natural sort of
// relative paths.
func RefList(repo *repolayout.Repo, startPath string) ([]RefEntry, error) {
	if startPath == "" {
		startPath = "refs"
	}
	root := repo.Path(filepath.FromSlash(startPath))

	var entries []RefEntry
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(repo.GitDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		id, ok, err := RefResolve(repo, rel)
		if err != nil {
			return err
		}
		if ok {
			entries = append(entries, RefEntry{Name: rel, Hash: id})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrIOFailure, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// RefEntry is one resolved reference, as returned by RefList.
type RefEntry struct {
	Name string
	Hash string
}

// RefCreate writes hexID followed by a newline to .git/<refName>,
// creating intermediate directories as needed, overwriting whatever
// was there atomically enough for a single-actor repository
// (truncate-and-write).
func RefCreate(repo *repolayout.Repo, refName, hexID string) error {
	path, err := repo.File(filepath.FromSlash(refName))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(hexID+"\n"), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", errs.ErrIOFailure, path, err)
	}
	return nil
}
