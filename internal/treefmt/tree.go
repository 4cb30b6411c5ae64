// Package treefmt implements Silt's binary tree object format: a
// concatenation of "mode SP path NUL sha20" entries, sorted in Git's
// canonical order (directories compare as if their name ended in "/").
package treefmt

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/silt-vcs/silt/internal/errs"
)

// Leaf is a single tree entry: a mode, a path, and the hex SHA of the
// object it points at. Mode is always normalized to 6 ASCII digits
// (5-digit modes read from disk gain a leading '0'); Serialize emits
// whatever Mode currently holds, so a normalized mode round-trips.
type Leaf struct {
	Mode string
	Path string
	SHA  string
}

// IsDirectory reports whether mode's semantic prefix is "04" (subtree).
func (l Leaf) IsDirectory() bool {
	return len(l.Mode) >= 2 && l.Mode[:2] == "04"
}

// sortKey implements spec.md's canonical comparison: a directory's key
// is its path with a trailing "/" appended, so a file "foo.txt" sorts
// before a directory "foo" ('.' is 0x2E, '/' is 0x2F), while a file
// "foo" sorts before "foo.txt".
func (l Leaf) sortKey() string {
	if l.IsDirectory() {
		return l.Path + "/"
	}
	return l.Path
}

// ParseOne decodes a single leaf starting at offset, returning it
// along with the offset of the next leaf.
func ParseOne(raw []byte, offset int) (Leaf, int, error) {
	spaceIdx := bytes.IndexByte(raw[offset:], ' ')
	if spaceIdx < 0 {
		return Leaf{}, 0, fmt.Errorf("%w: tree entry missing space", errs.ErrBadObject)
	}
	spaceIdx += offset

	mode := string(raw[offset:spaceIdx])
	if len(mode) == 5 {
		mode = "0" + mode
	}

	nulIdx := bytes.IndexByte(raw[spaceIdx:], 0)
	if nulIdx < 0 {
		return Leaf{}, 0, fmt.Errorf("%w: tree entry missing NUL", errs.ErrBadObject)
	}
	nulIdx += spaceIdx

	path := string(raw[spaceIdx+1 : nulIdx])

	shaStart := nulIdx + 1
	shaEnd := shaStart + 20
	if shaEnd > len(raw) {
		return Leaf{}, 0, fmt.Errorf("%w: tree entry truncated sha", errs.ErrBadObject)
	}

	leaf := Leaf{
		Mode: mode,
		Path: path,
		SHA:  hex.EncodeToString(raw[shaStart:shaEnd]),
	}
	return leaf, shaEnd, nil
}

// Parse decodes an entire tree payload into its leaves, in on-disk
// order.
func Parse(raw []byte) ([]Leaf, error) {
	var leaves []Leaf
	offset := 0
	for offset < len(raw) {
		leaf, next, err := ParseOne(raw, offset)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
		offset = next
	}
	return leaves, nil
}

// Serialize sorts leaves into canonical order and renders them back
// to the binary tree payload. Modes are emitted verbatim (not
// stripped of leading zeros); shas are decoded from hex to 20 raw
// bytes.
func Serialize(leaves []Leaf) ([]byte, error) {
	sorted := make([]Leaf, len(leaves))
	copy(sorted, leaves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].sortKey() < sorted[j].sortKey()
	})

	var buf bytes.Buffer
	for _, leaf := range sorted {
		buf.WriteString(leaf.Mode)
		buf.WriteByte(' ')
		buf.WriteString(leaf.Path)
		buf.WriteByte(0)

		shaBytes, err := hex.DecodeString(leaf.SHA)
		if err != nil || len(shaBytes) != 20 {
			return nil, fmt.Errorf("%w: invalid leaf sha %q", errs.ErrBadObject, leaf.SHA)
		}
		buf.Write(shaBytes)
	}
	return buf.Bytes(), nil
}
