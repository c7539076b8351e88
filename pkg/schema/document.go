package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldSpec is the document representation of a single schema node.
type FieldSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"`
	Label       string      `json:"label,omitempty" yaml:"label,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Optional    bool        `json:"optional,omitempty" yaml:"optional,omitempty"`
	Choices     []string    `json:"choices,omitempty" yaml:"choices,omitempty"`
	Options     []Choice    `json:"options,omitempty" yaml:"options,omitempty"`
	Min         *float64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64    `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength   *int        `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern     string      `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty"`
	Effects     []string    `json:"effects,omitempty" yaml:"effects,omitempty"`
	Fields      []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FormSpec is the document representation of a form.
type FormSpec struct {
	Title       string      `json:"title,omitempty" yaml:"title,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

type documentFile struct {
	Forms map[string]FormSpec `json:"forms" yaml:"forms"`
}

// Form is a named root object loaded from a schema document.
type Form struct {
	ID     string
	Source string
	Title  string
	Root   *Object
}

// Store keeps parsed forms keyed by id. Treat it as immutable once loaded.
type Store struct {
	forms map[string]Form
}

// NewStore returns a store holding the supplied forms.
func NewStore(forms ...Form) (*Store, error) {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		if err := store.add(form); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the sorted form ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) add(form Form) error {
	id := strings.TrimSpace(form.ID)
	if id == "" {
		return fmt.Errorf("schema: form from %s has an empty id", form.Source)
	}
	if existing, exists := s.forms[id]; exists {
		return fmt.Errorf("schema: duplicate form %q (%s and %s)", id, existing.Source, form.Source)
	}
	s.forms[id] = form
	return nil
}

// LoadFS walks fsys and parses every JSON/YAML schema document into a store.
// A nil filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}
		forms, err := ParseDocument(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if err := store.add(form); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ParseDocument decodes a JSON or YAML document holding a `forms` map and
// builds one Form per entry, sorted by id.
func ParseDocument(data []byte, source string) ([]Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("schema: document %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]Form, 0, len(ids))
	for _, id := range ids {
		spec := doc.Forms[id]
		root, err := BuildObject(spec)
		if err != nil {
			return nil, fmt.Errorf("schema: %s: form %q: %w", source, id, err)
		}
		forms = append(forms, Form{
			ID:     strings.TrimSpace(id),
			Source: source,
			Title:  spec.Title,
			Root:   root,
		})
	}
	return forms, nil
}

// BuildObject converts a form spec into its root object node.
func BuildObject(spec FormSpec) (*Object, error) {
	fields, err := buildFields(spec.Fields, "")
	if err != nil {
		return nil, err
	}
	return &Object{
		Meta:   Meta{Label: spec.Title, Description: spec.Description},
		Fields: fields,
	}, nil
}

func buildFields(specs []FieldSpec, parent string) ([]Field, error) {
	fields := make([]Field, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, fmt.Errorf("field under %q is missing a name", parent)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field %q", joinName(parent, name))
		}
		seen[name] = struct{}{}

		node, err := BuildNode(spec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", joinName(parent, name), err)
		}
		fields = append(fields, Field{Name: name, Node: node})
	}
	return fields, nil
}

// BuildNode converts a single field spec into a node, applying effects and the
// optional wrapper last so they sit outermost.
func BuildNode(spec FieldSpec) (Node, error) {
	meta := Meta{
		Label:       LabelOr(spec.Label, spec.Name),
		Description: spec.Description,
		Placeholder: spec.Placeholder,
		Required:    spec.Required,
	}

	var node Node
	switch strings.ToLower(strings.TrimSpace(spec.Type)) {
	case "boolean", "bool", "checkbox":
		n := &Boolean{Meta: meta}
		if b, ok := spec.Default.(bool); ok {
			n.Default = b
		}
		node = n
	case "", "string", "text", "textarea", "email", "url":
		n := &String{
			Meta:      meta,
			MinLength: spec.MinLength,
			MaxLength: spec.MaxLength,
			Pattern:   spec.Pattern,
		}
		switch strings.ToLower(spec.Type) {
		case "text", "textarea":
			n.Multiline = true
		case "email", "url":
			n.Format = strings.ToLower(spec.Type)
		}
		if s, ok := spec.Default.(string); ok {
			n.Default = s
		}
		node = n
	case "number", "float", "integer", "int":
		n := &Number{
			Meta:    meta,
			Integer: strings.HasPrefix(strings.ToLower(spec.Type), "int"),
			Min:     spec.Min,
			Max:     spec.Max,
		}
		if f, ok := toFloat(spec.Default); ok {
			n.Default = &f
		}
		node = n
	case "enum", "select":
		choices := make([]Choice, 0, len(spec.Choices)+len(spec.Options))
		for _, value := range spec.Choices {
			choices = append(choices, Choice{Value: value})
		}
		choices = append(choices, spec.Options...)
		if len(choices) == 0 {
			return nil, fmt.Errorf("enum requires choices")
		}
		n := &Enum{Meta: meta, Choices: choices}
		if s, ok := spec.Default.(string); ok {
			n.Default = s
		}
		node = n
	case "object":
		fields, err := buildFields(spec.Fields, spec.Name)
		if err != nil {
			return nil, err
		}
		node = &Object{Meta: meta, Fields: fields}
	default:
		return nil, fmt.Errorf("unsupported field type %q", spec.Type)
	}

	for _, effect := range spec.Effects {
		wrapped, err := ApplyEffect(node, effect)
		if err != nil {
			return nil, err
		}
		node = wrapped
	}
	if spec.Optional {
		node = MakeOptional(node)
	}
	return node, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func joinName(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
