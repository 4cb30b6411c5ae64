// Package errs defines the error taxonomy shared by every core component.
// Components wrap these sentinels with fmt.Errorf("...: %w", ...) so
// callers can still errors.Is/errors.As past any added context.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotARepository means the gitdir is missing or the upward walk
	// never found one.
	ErrNotARepository = errors.New("not a git repository")

	// ErrBadConfig means .git/config is missing or its
	// repositoryformatversion is unsupported.
	ErrBadConfig = errors.New("bad repository config")

	// ErrNotADirectory means a path expected to be a directory is
	// something else.
	ErrNotADirectory = errors.New("not a directory")

	// ErrBadObject means framing, size, zlib, or structural parsing
	// failed for a loose object.
	ErrBadObject = errors.New("bad object")

	// ErrUnknownObjectType means the framed fmt tag isn't one of the
	// four known variants.
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrBadKVLM means a key-value-list-with-message payload is
	// malformed.
	ErrBadKVLM = errors.New("bad kvlm")

	// ErrNoSuchReference means name resolution produced zero candidates.
	ErrNoSuchReference = errors.New("no such reference")

	// ErrIOFailure wraps an underlying filesystem error not already
	// captured by one of the above.
	ErrIOFailure = errors.New("io failure")
)

// AmbiguousReferenceError means name resolution produced more than one
// candidate. It carries the full candidate set for display.
type AmbiguousReferenceError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousReferenceError) Error() string {
	return fmt.Sprintf("ambiguous reference %q: candidates %s", e.Name, strings.Join(e.Candidates, ", "))
}

// Is lets errors.Is(err, ErrAmbiguousReference) style checks work without
// callers needing the candidate list.
func (e *AmbiguousReferenceError) Is(target error) bool {
	return target == ErrAmbiguousReference
}

// ErrAmbiguousReference is the sentinel matched by AmbiguousReferenceError.Is.
var ErrAmbiguousReference = errors.New("ambiguous reference")
