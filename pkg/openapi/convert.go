package openapi

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

// UnsupportedError reports a schema that has no form representation, such as
// an array or an unresolved recursive reference.
type UnsupportedError struct {
	Path string
	Type string
}

func (e *UnsupportedError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("openapi: %s: schema has no type", e.Path)
	}
	return fmt.Sprintf("openapi: %s: unsupported type %q", e.Path, e.Type)
}

// ToObject converts an object schema into a form root. Unsupported properties
// are reported together once every convertible property has been visited.
func ToObject(s Schema) (*schema.Object, error) {
	if s.Type != "object" && len(s.Properties) == 0 {
		return nil, &UnsupportedError{Path: "$", Type: s.Type}
	}
	return object(s, "")
}

// ToNode converts a single property schema. required controls whether the
// node is wrapped in schema.Optional.
func ToNode(path string, s Schema, required bool) (schema.Node, error) {
	meta := schema.Meta{
		Label:       s.Title,
		Description: s.Description,
		Placeholder: placeholder(s.Example),
		Required:    required && !s.Nullable,
	}

	var node schema.Node
	switch {
	case len(s.Enum) > 0:
		node = enum(s, meta)
	case s.Type == "boolean":
		b := &schema.Boolean{Meta: meta}
		if v, ok := s.Default.(bool); ok {
			b.Default = v
		}
		node = b
	case s.Type == "string":
		node = str(s, meta)
	case s.Type == "integer" || s.Type == "number":
		node = number(s, meta)
	case s.Type == "object" || len(s.Properties) > 0:
		obj, err := object(s, path)
		if err != nil {
			return nil, err
		}
		obj.Meta = meta
		node = obj
	default:
		return nil, &UnsupportedError{Path: path, Type: s.Type}
	}

	if !meta.Required {
		if _, isObject := node.(*schema.Object); !isObject {
			return schema.MakeOptional(node), nil
		}
	}
	return node, nil
}

// Forms converts every operation with a request body into a schema form keyed
// by operation id, sorted by id. Operations whose body cannot be converted are
// left out and their errors joined into the returned error.
func Forms(ops map[string]Operation) ([]schema.Form, error) {
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var (
		forms []schema.Form
		errs  []error
	)
	for _, id := range ids {
		op := ops[id]
		if !op.HasBody() {
			continue
		}
		root, err := ToObject(op.RequestBody)
		if err != nil {
			errs = append(errs, fmt.Errorf("openapi: operation %s: %w", id, err))
			continue
		}
		title := op.Summary
		if title == "" {
			title = op.RequestBody.Title
		}
		if title == "" {
			title = schema.Humanize(id)
		}
		root.Meta.Label = title
		root.Meta.Description = op.Description
		forms = append(forms, schema.Form{
			ID:     id,
			Source: strings.ToUpper(op.Method) + " " + op.Path,
			Title:  title,
			Root:   root,
		})
	}
	return forms, errors.Join(errs...)
}

// ComponentForms converts named component schemas into forms. Non-object
// components are skipped.
func ComponentForms(components map[string]Schema) ([]schema.Form, error) {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		forms []schema.Form
		errs  []error
	)
	for _, name := range names {
		comp := components[name]
		if comp.Type != "object" && len(comp.Properties) == 0 {
			continue
		}
		root, err := ToObject(comp)
		if err != nil {
			errs = append(errs, fmt.Errorf("openapi: component %s: %w", name, err))
			continue
		}
		title := schema.LabelOr(comp.Title, name)
		root.Meta.Label = title
		root.Meta.Description = comp.Description
		forms = append(forms, schema.Form{
			ID:     name,
			Source: "#/components/schemas/" + name,
			Title:  title,
			Root:   root,
		})
	}
	return forms, errors.Join(errs...)
}

func object(s Schema, prefix string) (*schema.Object, error) {
	obj := &schema.Object{Meta: schema.Meta{Label: s.Title, Description: s.Description}}
	var errs []error
	for _, name := range propertyOrder(s) {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		node, err := ToNode(path, s.Properties[name], s.IsRequired(name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		obj.Fields = append(obj.Fields, schema.Prop(name, node))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return obj, nil
}

func propertyOrder(s Schema) []string {
	seen := make(map[string]struct{}, len(s.Properties))
	out := make([]string, 0, len(s.Properties))
	for _, name := range s.Order {
		if _, ok := s.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	rest := make([]string, 0, len(s.Properties)-len(out))
	for name := range s.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func enum(s Schema, meta schema.Meta) *schema.Enum {
	node := &schema.Enum{Meta: meta}
	for _, raw := range s.Enum {
		if raw == nil {
			continue
		}
		value := scalarText(raw)
		node.Choices = append(node.Choices, schema.Choice{Value: value, Label: s.Labels[value]})
	}
	if s.Default != nil {
		node.Default = scalarText(s.Default)
	}
	return node
}

func str(s Schema, meta schema.Meta) *schema.String {
	node := &schema.String{
		Meta:      meta,
		MinLength: s.MinLength,
		MaxLength: s.MaxLength,
		Pattern:   s.Pattern,
	}
	switch s.Format {
	case "email":
		node.Format = "email"
	case "uri", "url":
		node.Format = "url"
	case "textarea", "markdown":
		node.Multiline = true
	}
	if v, ok := s.Default.(string); ok {
		node.Default = v
	}
	return node
}

func number(s Schema, meta schema.Meta) *schema.Number {
	node := &schema.Number{
		Meta:    meta,
		Integer: s.Type == "integer",
		Min:     s.Minimum,
		Max:     s.Maximum,
	}
	if v, ok := s.Default.(float64); ok {
		node.Default = &v
	}
	return node
}

func placeholder(example any) string {
	switch v := example.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64, bool, int, int64:
		return scalarText(v)
	default:
		return ""
	}
}

func scalarText(raw any) string {
	if f, ok := raw.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprint(raw)
}
