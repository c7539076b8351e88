package openapi

import (
	"errors"
	"fmt"
	"strings"
)

// Document wraps a raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and copies raw.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the origin of the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of an OpenAPI operation needed to build a form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// HasBody reports whether the operation declares a request body schema.
func (op Operation) HasBody() bool {
	return op.RequestBody.Type != "" || len(op.RequestBody.Properties) > 0
}

// Schema is a resolved OpenAPI schema. References are inlined by the parser;
// Ref keeps the original pointer and a recursive reference is left with Ref
// set and no Type.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Example     any
	Default     any
	Nullable    bool
	Enum        []any
	Required    []string
	Properties  map[string]Schema
	// Order lists property names in render order. Names missing from Order
	// follow in lexical order.
	Order     []string
	Items     *Schema
	Minimum   *float64
	Maximum   *float64
	MinLength *int
	MaxLength *int
	Pattern   string
	// Labels maps enum values to display labels.
	Labels map[string]string
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	for _, req := range s.Required {
		if req == name {
			return true
		}
	}
	return false
}

// DebugString summarizes the schema for log lines.
func (s Schema) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "type=%s", s.Type)
	if s.Ref != "" {
		fmt.Fprintf(&b, ",ref=%s", s.Ref)
	}
	if len(s.Required) > 0 {
		fmt.Fprintf(&b, ",required=%d", len(s.Required))
	}
	if len(s.Properties) > 0 {
		fmt.Fprintf(&b, ",properties=%d", len(s.Properties))
	}
	return b.String()
}
