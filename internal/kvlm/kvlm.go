// Package kvlm implements the key-value-list-with-message format
// shared by commit and tag objects: zero or more "key SP value LF"
// fields (continuation lines prefixed with a single space), a blank
// line, then a free-form message stored under the empty-string key.
package kvlm

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/silt-vcs/silt/internal/errs"
)

// MessageKey is the reserved key under which the free-form message is
// stored. It always serializes last, after a blank line, and is never
// continuation-encoded.
const MessageKey = ""

// KVLM is an insertion-ordered mapping from field name to either a
// single string value or an ordered list of string values (when a key
// repeats). It is backed by gods' linkedhashmap so field order survives
// a parse/serialize round trip.
type KVLM struct {
	m *linkedhashmap.Map
}

// New returns an empty KVLM.
func New() *KVLM {
	return &KVLM{m: linkedhashmap.New()}
}

// Get returns the raw value stored under key: either a string or a
// []string, and whether key is present.
func (k *KVLM) Get(key string) (any, bool) {
	return k.m.Get(key)
}

// Values returns the value(s) under key as a slice, regardless of
// whether it was stored as a single string or a list. Returns nil if
// key is absent.
func (k *KVLM) Values(key string) []string {
	v, ok := k.m.Get(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	default:
		return nil
	}
}

// First returns the first (or only) value stored under key.
func (k *KVLM) First(key string) (string, bool) {
	vs := k.Values(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Message returns the free-form message.
func (k *KVLM) Message() string {
	v, _ := k.First(MessageKey)
	return v
}

// SetMessage sets the free-form message.
func (k *KVLM) SetMessage(msg string) {
	k.m.Put(MessageKey, msg)
}

// Add appends a value under key, promoting a prior single value to a
// two-element list and extending an existing list, preserving
// insertion order of both keys and repeated values.
func (k *KVLM) Add(key, value string) {
	existing, ok := k.m.Get(key)
	if !ok {
		k.m.Put(key, value)
		return
	}
	switch t := existing.(type) {
	case string:
		k.m.Put(key, []string{t, value})
	case []string:
		k.m.Put(key, append(t, value))
	}
}

// Keys returns field keys (including MessageKey, if set) in insertion
// order.
func (k *KVLM) Keys() []string {
	raw := k.m.Keys()
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = r.(string)
	}
	return out
}

// Parse decodes a KVLM payload: fields up to the blank line, then the
// message. A payload with no blank line at all, or whose first line has
// no key, is treated entirely as the message.
func Parse(data []byte) (*KVLM, error) {
	k := New()

	// Fields are always followed by a blank line; without one, there
	// are no fields and the whole payload is the message.
	if len(data) > 0 && data[0] != '\n' && !bytes.Contains(data, []byte("\n\n")) {
		k.SetMessage(string(data))
		return k, nil
	}

	pos := 0
	fieldsSeen := 0
	for pos < len(data) && data[pos] != '\n' {
		lineEnd := indexByteFrom(data, '\n', pos)
		lineLimit := lineEnd
		if lineLimit < 0 {
			lineLimit = len(data)
		}
		if fieldsSeen == 0 && data[pos] == ' ' {
			return nil, fmt.Errorf("%w: continuation line before any field", errs.ErrBadKVLM)
		}

		sp := bytes.IndexByte(data[pos:lineLimit], ' ')

		if sp < 0 {
			if fieldsSeen > 0 {
				return nil, fmt.Errorf("%w: line starts without a key prior to the blank line", errs.ErrBadKVLM)
			}
			// No blank line, no fields at all: the whole payload is
			// the message.
			k.SetMessage(string(data))
			return k, nil
		}
		sp += pos

		key := string(data[pos:sp])

		end := sp
		for {
			next := indexByteFrom(data, '\n', end+1)
			if next < 0 {
				return nil, fmt.Errorf("%w: unterminated field %q", errs.ErrBadKVLM, key)
			}
			end = next
			if end+1 >= len(data) || data[end+1] != ' ' {
				break
			}
		}

		value := string(data[sp+1 : end])
		value = strings.ReplaceAll(value, "\n ", "\n")
		k.Add(key, value)

		fieldsSeen++
		pos = end + 1
	}

	// pos now points at the blank line (data[pos] == '\n') or past the
	// end of the data if the fields consumed everything.
	if pos < len(data) {
		pos++ // consume the blank line itself
	}
	k.SetMessage(string(data[pos:]))

	return k, nil
}

func indexByteFrom(data []byte, b byte, start int) int {
	if start >= len(data) {
		return -1
	}
	idx := bytes.IndexByte(data[start:], b)
	if idx < 0 {
		return -1
	}
	return start + idx
}

// Serialize encodes a KVLM back to its wire form: fields in insertion
// order (continuation-encoded), a blank line, then the message.
func Serialize(k *KVLM) []byte {
	var buf bytes.Buffer

	for _, key := range k.Keys() {
		if key == MessageKey {
			continue
		}
		for _, v := range k.Values(key) {
			buf.WriteString(key)
			buf.WriteByte(' ')
			buf.WriteString(strings.ReplaceAll(v, "\n", "\n "))
			buf.WriteByte('\n')
		}
	}

	buf.WriteByte('\n')
	buf.WriteString(k.Message())

	return buf.Bytes()
}
