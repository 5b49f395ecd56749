package archive

import (
	"bytes"
	"encoding/json"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is an insertion-ordered mapping of field name to string.
// It is used both for schema descriptions and for per-record values.
// The zero value is an empty mapping ready to use. Copies share storage.
type Fields struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewFields builds a Fields from alternating name, value arguments.
// A trailing name without a value is stored with an empty value.
func NewFields(pairs ...string) Fields {
	var f Fields
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		f.Set(pairs[i], value)
	}
	return f
}

func (f *Fields) init() {
	if f.m == nil {
		f.m = orderedmap.New[string, string]()
	}
}

// Set stores value under name. An existing name keeps its position.
// It returns the previous value and whether one was present.
func (f *Fields) Set(name, value string) (string, bool) {
	f.init()
	return f.m.Set(name, value)
}

// Delete removes name, reporting whether it was present.
func (f *Fields) Delete(name string) bool {
	if f.m == nil {
		return false
	}
	_, ok := f.m.Delete(name)
	return ok
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (string, bool) {
	if f.m == nil {
		return "", false
	}
	return f.m.Get(name)
}

// Len returns the number of entries.
func (f Fields) Len() int {
	if f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Names returns the field names in insertion order.
func (f Fields) Names() []string {
	names := make([]string, 0, f.Len())
	for name := range f.All() {
		names = append(names, name)
	}
	return names
}

// All iterates over entries in insertion order.
func (f Fields) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if f.m == nil {
			return
		}
		for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	var c Fields
	for name, value := range f.All() {
		c.Set(name, value)
	}
	return c
}

// Equal reports whether both mappings hold the same entries in the same order.
func (f Fields) Equal(other Fields) bool {
	if f.Len() != other.Len() {
		return false
	}
	names := other.Names()
	i := 0
	for name, value := range f.All() {
		if names[i] != name {
			return false
		}
		if v, _ := other.Get(name); v != value {
			return false
		}
		i++
	}
	return true
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// HTML characters and non-ASCII text are written literally.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	first := true
	for name, value := range f.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := encodeString(&buf, enc, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeString(&buf, enc, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeString appends s as a JSON string, dropping the newline the encoder adds.
func encodeString(buf *bytes.Buffer, enc *json.Encoder, s string) error {
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// UnmarshalJSON replaces the entries with those of a JSON object.
// A JSON null leaves the mapping empty.
func (f *Fields) UnmarshalJSON(data []byte) error {
	f.m = orderedmap.New[string, string]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return f.m.UnmarshalJSON(data)
}
