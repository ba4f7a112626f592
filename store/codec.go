package store

import (
	"encoding/json"
	"fmt"
)

// FromStruct converts a JSON-taggable value into a Document.
func FromStruct(v any) (Document, error) {
	n, err := normalize(v)
	if err != nil {
		return nil, err
	}
	m, ok := n.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%T does not encode to an object", v)
	}
	return Document(m), nil
}

// Decode fills v from the document using its JSON tags. Fields unknown to
// v are ignored.
func (d Document) Decode(v any) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
