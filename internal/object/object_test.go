package object

import (
	"errors"
	"testing"

	"github.com/silt-vcs/silt/internal/codec"
	"github.com/silt-vcs/silt/internal/errs"
	"github.com/silt-vcs/silt/internal/kvlm"
	"github.com/silt-vcs/silt/internal/treefmt"
)

func TestBlob_RoundTrip(t *testing.T) {
	b := Blob{Content: []byte("hello world")}
	payload, err := b.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	obj, err := Deserialize(codec.FmtBlob, payload)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	got, ok := obj.(Blob)
	if !ok {
		t.Fatalf("expected a Blob, got %T", obj)
	}
	if string(got.Content) != "hello world" {
		t.Errorf("unexpected content: %q", got.Content)
	}
	if got.Fmt() != codec.FmtBlob {
		t.Errorf("expected fmt blob, got %s", got.Fmt())
	}
}

func TestCommit_AccessorsAndRoundTrip(t *testing.T) {
	kv := kvlm.New()
	kv.Add("tree", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	kv.Add("parent", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	kv.Add("parent", "cccccccccccccccccccccccccccccccccccccccc")
	kv.SetMessage("merge two branches\n")

	c := Commit{KVLM: kv}
	if tree, ok := c.Tree(); !ok || tree != "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("unexpected tree: %q (ok=%v)", tree, ok)
	}
	parents := c.Parents()
	if len(parents) != 2 {
		t.Fatalf("expected 2 parents, got %d", len(parents))
	}

	payload, err := c.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	obj, err := Deserialize(codec.FmtCommit, payload)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	roundTripped, ok := obj.(Commit)
	if !ok {
		t.Fatalf("expected a Commit, got %T", obj)
	}
	if len(roundTripped.Parents()) != 2 {
		t.Errorf("expected parents to survive the round trip, got: %v", roundTripped.Parents())
	}
}

func TestTag_DistinctFromCommitDespiteSharedGrammar(t *testing.T) {
	kv := kvlm.New()
	kv.Add("object", "dddddddddddddddddddddddddddddddddddddddd")
	kv.Add("type", "commit")
	kv.Add("tag", "v1.0.0")
	kv.SetMessage("release\n")

	tag := Tag{KVLM: kv}
	if tag.Fmt() != codec.FmtTag {
		t.Errorf("expected fmt tag, got %s", tag.Fmt())
	}
	if objID, ok := tag.Object(); !ok || objID != "dddddddddddddddddddddddddddddddddddddddd" {
		t.Errorf("unexpected object field: %q (ok=%v)", objID, ok)
	}

	var anyObj Object = tag
	if _, isCommit := anyObj.(Commit); isCommit {
		t.Error("a Tag must never type-assert as a Commit, even though their KVLM grammars coincide")
	}
}

func TestTree_RoundTrip(t *testing.T) {
	leaves := []treefmt.Leaf{
		{Mode: "100644", Path: "b.txt", SHA: "111111111111111111111111111111111111111a"},
		{Mode: "100644", Path: "a.txt", SHA: "222222222222222222222222222222222222222b"},
	}
	tr := Tree{Leaves: leaves}

	payload, err := tr.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	obj, err := Deserialize(codec.FmtTree, payload)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	got, ok := obj.(Tree)
	if !ok {
		t.Fatalf("expected a Tree, got %T", obj)
	}
	if len(got.Leaves) != 2 || got.Leaves[0].Path != "a.txt" || got.Leaves[1].Path != "b.txt" {
		t.Errorf("expected canonical sort order a.txt, b.txt, got: %+v", got.Leaves)
	}
}

func TestDeserialize_UnknownFormat(t *testing.T) {
	_, err := Deserialize(codec.Fmt("bogus"), nil)
	if !errors.Is(err, errs.ErrUnknownObjectType) {
		t.Errorf("expected ErrUnknownObjectType, got: %v", err)
	}
}

func TestToFrame_DispatchesFmtAndPayload(t *testing.T) {
	frame, err := ToFrame(Blob{Content: []byte("x")})
	if err != nil {
		t.Fatalf("ToFrame failed: %v", err)
	}
	if frame.Fmt != codec.FmtBlob || string(frame.Payload) != "x" {
		t.Errorf("unexpected frame: %+v", frame)
	}
}
