// Package schema defines the read-only schema snapshot consumed by
// schema-aware lint rules.
//
// The snapshot is externally owned: the linter reads it during a single
// check invocation and holds no reference beyond that. Callers replacing a
// snapshot must swap in a new value rather than mutate one in place.
package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Kind distinguishes document types from inline object types.
type Kind string

// Type kinds.
const (
	KindDocument Kind = "document"
	KindObject   Kind = "object"
)

// Field is one declared field of a type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Type describes one schema type.
type Type struct {
	Name   string  `json:"name"`
	Kind   Kind    `json:"type"`
	Fields []Field `json:"fields,omitempty"`
}

// Schema is a snapshot of the studio schema.
type Schema struct {
	Types []Type `json:"types"`
}

// ParseJSON decodes a schema snapshot from its JSON wire form: either a
// bare array of types or an object with a "types" key.
func ParseJSON(data []byte) (*Schema, error) {
	var types []Type
	if err := json.Unmarshal(data, &types); err == nil {
		return &Schema{Types: types}, nil
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decoding snapshot: %w", err)
	}
	return &s, nil
}

// DocumentTypeNames returns the names of all document types.
func (s *Schema) DocumentTypeNames() []string {
	var names []string
	for _, t := range s.Types {
		if t.Kind == KindDocument {
			names = append(names, t.Name)
		}
	}
	return names
}

// DocumentType returns the document type with the given name, if declared.
func (s *Schema) DocumentType(name string) (*Type, bool) {
	for i := range s.Types {
		if s.Types[i].Kind == KindDocument && s.Types[i].Name == name {
			return &s.Types[i], true
		}
	}
	return nil, false
}

// FieldNames returns the declared field names of a type.
func (t *Type) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether the type declares a field with the given name.
func (t *Type) HasField(name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
