// Package object implements Silt's tagged object variant — Blob,
// Commit, Tag, and Tree — and the (de)serialization dispatch keyed by
// the fmt tag read from a codec frame. There is no shared base type or
// virtual dispatch: each variant owns its payload and knows its own
// Fmt and Serialize.
package object

import (
	"fmt"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/kvlm"
	"github.com/silt-vcs/silt/internal/treefmt"
)

// Object is any of the four typed variants. Callers that need more
// than Fmt/Serialize type-assert to the concrete variant (Commit,
// Tag, Tree) for its accessors.
type Object interface {
	// Fmt reports the object's type tag.
	Fmt() codec.Fmt

	// Serialize returns the type-specific wire payload (without the
	// "fmt SP length NUL" frame header).
	Serialize() ([]byte, error)
}

// Blob is an opaque byte string.
type Blob struct {
	Content []byte
}

func (Blob) Fmt() codec.Fmt                { return codec.FmtBlob }
func (b Blob) Serialize() ([]byte, error)  { return b.Content, nil }

// Commit is a KVLM recording a tree, zero or more parents, author,
// committer, and message.
type Commit struct {
	KVLM *kvlm.KVLM
}

func (Commit) Fmt() codec.Fmt               { return codec.FmtCommit }
func (c Commit) Serialize() ([]byte, error) { return kvlm.Serialize(c.KVLM), nil }

// Tree returns the tree id this commit points at.
func (c Commit) Tree() (string, bool) { return c.KVLM.First("tree") }

// Parents returns the ordered parent ids (empty for a root commit).
func (c Commit) Parents() []string { return c.KVLM.Values("parent") }

// Tag is structurally identical to Commit (a KVLM with object/type/tag/
// tagger fields) but kept as a distinct Go type so Fmt is never
// confused between the two, even though their grammars coincide.
type Tag struct {
	KVLM *kvlm.KVLM
}

func (Tag) Fmt() codec.Fmt               { return codec.FmtTag }
func (t Tag) Serialize() ([]byte, error) { return kvlm.Serialize(t.KVLM), nil }

// Object returns the id this tag points at.
func (t Tag) Object() (string, bool) { return t.KVLM.First("object") }

// Tree is an ordered sequence of tree leaves.
type Tree struct {
	Leaves []treefmt.Leaf
}

func (Tree) Fmt() codec.Fmt { return codec.FmtTree }
func (t Tree) Serialize() ([]byte, error) {
	return treefmt.Serialize(t.Leaves)
}

// Deserialize builds the typed Object for format from its raw payload,
// dispatching on the fmt tag read from a codec frame.
func Deserialize(format codec.Fmt, payload []byte) (Object, error) {
	switch format {
	case codec.FmtBlob:
		return Blob{Content: payload}, nil
	case codec.FmtCommit:
		kv, err := kvlm.Parse(payload)
		if err != nil {
			return nil, err
		}
		return Commit{KVLM: kv}, nil
	case codec.FmtTag:
		kv, err := kvlm.Parse(payload)
		if err != nil {
			return nil, err
		}
		return Tag{KVLM: kv}, nil
	case codec.FmtTree:
		leaves, err := treefmt.Parse(payload)
		if err != nil {
			return nil, err
		}
		return Tree{Leaves: leaves}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownObjectType, format)
	}
}

// ToFrame serializes obj into a codec.Frame ready for hashing or
// storage.
func ToFrame(obj Object) (codec.Frame, error) {
	payload, err := obj.Serialize()
	if err != nil {
		return codec.Frame{}, err
	}
	return codec.Frame{Fmt: obj.Fmt(), Payload: payload}, nil
}
