// Package codec implements Silt's object framing, hashing, and the
// zlib-compressed loose-object file format: "fmt SP length NUL payload",
// deflated at default compression and stored at
// .git/objects/<hex[0:2]>/<hex[2:]>.
package codec

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zlib"

	"github.com/silt-vcs/silt/internal/errs"
)

// Fmt is the three-to-six-letter ASCII tag distinguishing object kinds.
type Fmt string

const (
	FmtBlob   Fmt = "blob"
	FmtCommit Fmt = "commit"
	FmtTag    Fmt = "tag"
	FmtTree   Fmt = "tree"
)

// Frame is the decoded form of a loose object before or after on-disk
// compression: a type tag and a payload. Identity is computed over the
// framed bytes, header included.
type Frame struct {
	Fmt     Fmt
	Payload []byte
}

// Bytes renders the frame as "fmt SP length NUL payload".
func (f Frame) Bytes() []byte {
	header := fmt.Sprintf("%s %d\x00", f.Fmt, len(f.Payload))
	buf := make([]byte, 0, len(header)+len(f.Payload))
	buf = append(buf, header...)
	buf = append(buf, f.Payload...)
	return buf
}

// Hash returns the lower-hex SHA-1 id of the frame.
func (f Frame) Hash() string {
	sum := sha1.Sum(f.Bytes())
	return hex.EncodeToString(sum[:])
}

// Hash computes the hex object id for payload under fmt without
// touching the filesystem.
func Hash(payload []byte, format Fmt) string {
	return Frame{Fmt: format, Payload: payload}.Hash()
}

// ObjectPath returns the on-disk path of a loose object given the
// repository's objects directory and its hex id.
func ObjectPath(objectsDir, hexID string) string {
	return filepath.Join(objectsDir, hexID[:2], hexID[2:])
}

// Write deflates and stores frame under objectsDir, returning its hex
// id. If the object already exists on disk, Write is a no-op beyond
// computing the id (objects are immutable once written). The file is
// written to a temporary sibling, fsync'd, and renamed into place so a
// crash mid-write never leaves a partial object discoverable by id.
func Write(objectsDir string, frame Frame) (string, error) {
	id := frame.Hash()
	path := ObjectPath(objectsDir, id)

	if _, err := os.Stat(path); err == nil {
		return id, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: stat %s: %v", errs.ErrIOFailure, path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: mkdir %s: %w", errs.ErrIOFailure, dir, err)
	}

	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(frame.Bytes()); err != nil {
		w.Close()
		return "", fmt.Errorf("%w: deflate: %v", errs.ErrIOFailure, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: deflate close: %v", errs.ErrIOFailure, err)
	}

	tmp, err := os.CreateTemp(dir, "obj-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: create temp: %v", errs.ErrIOFailure, err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(compressed.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: write temp: %v", errs.ErrIOFailure, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: sync temp: %v", errs.ErrIOFailure, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close temp: %v", errs.ErrIOFailure, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: rename into place: %v", errs.ErrIOFailure, err)
	}

	return id, nil
}

// Read loads and inflates the loose object named id from objectsDir,
// returning its decoded frame. It returns (Frame{}, false, nil) when
// the object file is absent, and a BadObject error on any framing
// inconsistency.
func Read(objectsDir, id string) (Frame, bool, error) {
	path := ObjectPath(objectsDir, id)

	compressed, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Frame{}, false, nil
	}
	if err != nil {
		return Frame{}, false, fmt.Errorf("%w: read %s: %v", errs.ErrIOFailure, path, err)
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return Frame{}, false, fmt.Errorf("%w: inflate %s: %v", errs.ErrBadObject, id, err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return Frame{}, false, fmt.Errorf("%w: inflate %s: %v", errs.ErrBadObject, id, err)
	}

	spaceIdx := bytes.IndexByte(raw, ' ')
	if spaceIdx < 0 {
		return Frame{}, false, fmt.Errorf("%w: %s: missing space in header", errs.ErrBadObject, id)
	}
	nulIdx := bytes.IndexByte(raw[spaceIdx:], 0)
	if nulIdx < 0 {
		return Frame{}, false, fmt.Errorf("%w: %s: missing NUL in header", errs.ErrBadObject, id)
	}
	nulIdx += spaceIdx

	format := Fmt(raw[:spaceIdx])
	size, err := strconv.Atoi(string(raw[spaceIdx+1 : nulIdx]))
	if err != nil {
		return Frame{}, false, fmt.Errorf("%w: %s: bad size: %v", errs.ErrBadObject, id, err)
	}
	payload := raw[nulIdx+1:]
	if len(payload) != size {
		return Frame{}, false, fmt.Errorf("%w: %s: size mismatch: header says %d, got %d", errs.ErrBadObject, id, size, len(payload))
	}

	switch format {
	case FmtBlob, FmtCommit, FmtTag, FmtTree:
	default:
		return Frame{}, false, fmt.Errorf("%w: %q", errs.ErrUnknownObjectType, format)
	}

	return Frame{Fmt: format, Payload: payload}, true, nil
}
