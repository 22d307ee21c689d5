package formmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SliceProperty is one named property inside a schema slice. Order matters:
// the slice serialises properties in section order.
type SliceProperty struct {
	Name   string
	Schema map[string]any
}

// Slice is the minimal schema describing exactly one section's fields. It
// carries $id, $schema, definitions, and required verbatim from the full
// schema plus the section's properties in section order. Slices are derived
// artifacts, recomputed on every section change.
type Slice struct {
	ID          string
	SchemaURI   string
	Definitions map[string]any
	Required    []string
	Properties  []SliceProperty
}

// Property returns the schema for a named property when present.
func (s *Slice) Property(name string) (map[string]any, bool) {
	if s == nil {
		return nil, false
	}
	for _, prop := range s.Properties {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// PropertyNames returns the property names in slice order.
func (s *Slice) PropertyNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for _, prop := range s.Properties {
		names = append(names, prop.Name)
	}
	return names
}

// MarshalJSON serialises the slice in the wire shape consumed by renderers:
// {$id, $schema, definitions, properties, required} with properties emitted
// in section order. encoding/json maps cannot hold order, hence the manual
// object assembly.
func (s *Slice) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	writeField := func(key string, value any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		keyRaw, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(keyRaw)
		buf.WriteByte(':')
		valueRaw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("formmodel: marshal slice field %s: %w", key, err)
		}
		buf.Write(valueRaw)
		return nil
	}

	if s.ID != "" {
		if err := writeField("$id", s.ID); err != nil {
			return nil, err
		}
	}
	if s.SchemaURI != "" {
		if err := writeField("$schema", s.SchemaURI); err != nil {
			return nil, err
		}
	}
	if s.Definitions != nil {
		if err := writeField("definitions", s.Definitions); err != nil {
			return nil, err
		}
	}

	if !first {
		buf.WriteByte(',')
	}
	first = false
	buf.WriteString(`"properties":{`)
	for idx, prop := range s.Properties {
		if idx > 0 {
			buf.WriteByte(',')
		}
		nameRaw, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(nameRaw)
		buf.WriteByte(':')
		schemaRaw, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, fmt.Errorf("formmodel: marshal property %s: %w", prop.Name, err)
		}
		buf.Write(schemaRaw)
	}
	buf.WriteByte('}')

	if s.Required != nil {
		if err := writeField("required", s.Required); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
