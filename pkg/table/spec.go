package table

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapRow is a generic row keyed by field name, as decoded from JSON or CSV
// datasets.
type MapRow = map[string]any

// ColumnSpec declares a column over MapRow data in a YAML or JSON document.
type ColumnSpec struct {
	Key    string `json:"key" yaml:"key"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
	// Field is the row field read by the accessor. Defaults to Key. Dotted
	// paths walk nested maps.
	Field       string `json:"field,omitempty" yaml:"field,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	DisableSort bool   `json:"disableSort,omitempty" yaml:"disableSort,omitempty"`
}

// TableSpec is the document form of a table: its name, columns and initial
// sort.
type TableSpec struct {
	Name    string       `json:"name" yaml:"name"`
	Columns []ColumnSpec `json:"columns" yaml:"columns"`
	Sort    SortState    `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// ParseSpec decodes a JSON or YAML table document.
func ParseSpec(data []byte) (TableSpec, error) {
	var spec TableSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		if yamlErr := yaml.Unmarshal(data, &spec); yamlErr != nil {
			return TableSpec{}, fmt.Errorf("table: parse spec: invalid JSON or YAML: %w", yamlErr)
		}
	}
	if len(spec.Columns) == 0 {
		return TableSpec{}, fmt.Errorf("table: parse spec: no columns declared")
	}
	return spec, nil
}

// ColumnsFromSpecs builds MapRow columns. Unknown formatter names fail.
func ColumnsFromSpecs(specs []ColumnSpec) ([]Column[MapRow], error) {
	columns := make([]Column[MapRow], 0, len(specs))
	for i, spec := range specs {
		format, ok := Formatters[strings.ToLower(strings.TrimSpace(spec.Format))]
		if !ok {
			return nil, fmt.Errorf("table: column %d (%q): unknown format %q", i, spec.Key, spec.Format)
		}
		field := spec.Field
		if strings.TrimSpace(field) == "" {
			field = spec.Key
		}
		columns = append(columns, Column[MapRow]{
			Key:         spec.Key,
			Header:      spec.Header,
			Accessor:    mapAccessor(field),
			Format:      format,
			Hidden:      spec.Hidden,
			DisableSort: spec.DisableSort,
		})
	}
	return columns, nil
}

// InitialState returns the sort declared by the table document.
func (s TableSpec) InitialState() State {
	return State{Sort: s.Sort}
}

func mapAccessor(path string) func(MapRow) any {
	parts := strings.Split(path, ".")
	return func(row MapRow) any {
		var current any = row
		for _, part := range parts {
			node, ok := current.(map[string]any)
			if !ok {
				return nil
			}
			current = node[part]
		}
		return current
	}
}
