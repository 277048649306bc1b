package bundler

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Entry is one slot of a ContentMap.
type Entry struct {
	ID      string
	File    string
	Content string

	// Fallback is true when Content is the placeholder
	// for an unreadable file.
	Fallback bool
}

// ContentMap maps page identifiers to page text, keeping
// registry order.
type ContentMap struct {
	entries []Entry
	index   map[string]int
}

func newContentMap(size int) *ContentMap {
	return &ContentMap{
		entries: make([]Entry, 0, size),
		index:   make(map[string]int, size),
	}
}

// set stores en. A repeated ID replaces the content in
// its original position.
func (cm *ContentMap) set(en Entry) {
	if idx, ok := cm.index[en.ID]; ok {
		cm.entries[idx] = en
		return
	}

	cm.index[en.ID] = len(cm.entries)
	cm.entries = append(cm.entries, en)
}

// Len returns the number of entries.
func (cm *ContentMap) Len() int {
	return len(cm.entries)
}

// Get returns the content stored for id.
func (cm *ContentMap) Get(id string) (string, bool) {
	idx, ok := cm.index[id]
	if !ok {
		return "", false
	}

	return cm.entries[idx].Content, true
}

// Keys returns the identifiers in order.
func (cm *ContentMap) Keys() []string {
	keys := make([]string, 0, len(cm.entries))
	for _, en := range cm.entries {
		keys = append(keys, en.ID)
	}

	return keys
}

// Entries returns a copy of the entries in order.
func (cm *ContentMap) Entries() []Entry {
	out := make([]Entry, len(cm.entries))
	copy(out, cm.entries)

	return out
}

// Fallbacks returns the entries holding a placeholder.
func (cm *ContentMap) Fallbacks() []Entry {
	var out []Entry

	for _, en := range cm.entries {
		if en.Fallback {
			out = append(out, en)
		}
	}

	return out
}

// MarshalJSON encodes the map as a compact JSON object
// with keys in order. HTML characters are not escaped.
func (cm *ContentMap) MarshalJSON() ([]byte, error) {
	const errCtx = "marshaling content map"

	var buf bytes.Buffer

	buf.WriteByte('{')

	for idx, en := range cm.entries {
		if idx > 0 {
			buf.WriteByte(',')
		}

		if err := encodeString(&buf, en.ID); err != nil {
			return nil, fmt.Errorf(
				"%s: key %q: %w", errCtx, en.ID, err,
			)
		}

		buf.WriteByte(':')

		if err := encodeString(&buf, en.Content); err != nil {
			return nil, fmt.Errorf(
				"%s: value %q: %w", errCtx, en.ID, err,
			)
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// encodeString appends the JSON string for s to buf
// without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(s); err != nil {
		return err
	}

	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)

	return nil
}
