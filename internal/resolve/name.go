package resolve

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/kvlm"
	"github.com/silt-vcs/silt/internal/repolayout"
)

var hexPrefixPattern = regexp.MustCompile(`^[0-9A-Fa-f]{4,40}$`)

// ObjectResolve returns every full hex id matched by name, applying
// spec.md's six candidate rules in order and unioning their results.
func ObjectResolve(repo *repolayout.Repo, name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}

	if name == "HEAD" {
		id, ok, err := RefResolve(repo, "HEAD")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return []string{id}, nil
	}

	var candidates []string

	if hexPrefixPattern.MatchString(name) {
		lower := strings.ToLower(name)
		dir := repo.Path("objects", lower[:2])
		prefix := lower[2:]

		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				if strings.HasPrefix(e.Name(), prefix) {
					candidates = append(candidates, lower[:2]+e.Name())
				}
			}
		}
	}

	for _, refBase := range []string{"refs/tags/", "refs/heads/", "refs/remotes/"} {
		id, ok, err := RefResolve(repo, refBase+name)
		if err != nil {
			return nil, err
		}
		if ok {
			candidates = append(candidates, id)
		}
	}

	return candidates, nil
}

// maxFollowSteps bounds the tag->commit->tree indirection chain walked
// by ObjectFind. The chain is finite by construction (at most two
// hops); a larger bound only protects against a malformed/cyclic
// object graph, which surfaces as BadObject instead of hanging.
const maxFollowSteps = 32

// ObjectFind resolves name to a unique object id. If format is empty,
// the resolved candidate is returned without any type checking. When
// follow is true and the resolved object's fmt doesn't match, ObjectFind
// advances through tag->object and commit->tree indirections until a
// match is found, format is exhausted, or maxFollowSteps is exceeded.
func ObjectFind(repo *repolayout.Repo, name string, format codec.Fmt, follow bool) (string, error) {
	candidates, err := ObjectResolve(repo, name)
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: %s", errs.ErrNoSuchReference, name)
	case 1:
		// fall through
	default:
		return "", &errs.AmbiguousReferenceError{Name: name, Candidates: candidates}
	}

	id := candidates[0]
	if format == "" {
		return id, nil
	}

	objectsDir := repo.Path("objects")

	for step := 0; ; step++ {
		if step >= maxFollowSteps {
			return "", fmt.Errorf("%w: indirection chain too long resolving %s", errs.ErrBadObject, name)
		}

		frame, ok, err := codec.Read(objectsDir, id)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: missing object %s", errs.ErrBadObject, id)
		}

		if frame.Fmt == format {
			return id, nil
		}
		if !follow {
			return "", nil
		}

		switch frame.Fmt {
		case codec.FmtTag:
			kv, err := kvlm.Parse(frame.Payload)
			if err != nil {
				return "", err
			}
			next, ok := kv.First("object")
			if !ok {
				return "", fmt.Errorf("%w: tag %s missing object field", errs.ErrBadObject, id)
			}
			id = next
		case codec.FmtCommit:
			if format != codec.FmtTree {
				return "", nil
			}
			kv, err := kvlm.Parse(frame.Payload)
			if err != nil {
				return "", err
			}
			next, ok := kv.First("tree")
			if !ok {
				return "", fmt.Errorf("%w: commit %s missing tree field", errs.ErrBadObject, id)
			}
			id = next
		default:
			return "", nil
		}
	}
}

