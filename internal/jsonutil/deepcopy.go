package jsonutil

import (
	"encoding/json"
	"fmt"
)

// Normalize deep-copies a document through an encoding/json round trip. The
// result contains only plain JSON types (map[string]any, []any, string,
// float64, bool, nil), so downstream schema validation never sees wrapper
// types that fail structural checks.
func Normalize(doc map[string]any) (map[string]any, error) {
	if doc == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("jsonutil: marshal document: %w", err)
	}
	out := make(map[string]any, len(doc))
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("jsonutil: unmarshal document: %w", err)
	}
	return out, nil
}

// Copy deep-copies an arbitrary JSON value. Values that cannot be marshalled
// are returned unchanged.
func Copy(value any) any {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return value
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return value
	}
	return out
}
