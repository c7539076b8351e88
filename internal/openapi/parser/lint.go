package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

// ExtensionPrefix namespaces every extension the parser reads.
const ExtensionPrefix = "x-adminkit-"

// Widgets lists the accepted ExtensionWidget values.
var Widgets = []string{"email", "markdown", "textarea", "url"}

var _ pkgopenapi.Linter = (*Parser)(nil)

// Lint checks the x-adminkit-* extensions of every component schema and of
// inline request body schemas. Referenced schemas are checked once, at their
// component.
func (p *Parser) Lint(ctx context.Context, doc pkgopenapi.Document) ([]pkgopenapi.Violation, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	var out []pkgopenapi.Violation
	if spec.Components != nil {
		for _, name := range sortedKeys(spec.Components.Schemas) {
			out = append(out, lintRef(spec.Components.Schemas[name], []string{"components", "schemas", name})...)
		}
	}
	if spec.Paths != nil {
		for _, path := range spec.Paths.InMatchingOrder() {
			item := spec.Paths.Value(path)
			if item == nil {
				continue
			}
			ops := item.Operations()
			for _, method := range sortedKeys(ops) {
				op := ops[method]
				if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = strings.ToLower(method) + ":" + path
				}
				content := op.RequestBody.Value.Content
				for _, mediaType := range sortedKeys(content) {
					if mt := content[mediaType]; mt != nil && mt.Schema != nil && mt.Schema.Ref == "" {
						out = append(out, lintRef(mt.Schema, []string{"operation", id, "requestBody", mediaType})...)
					}
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location < out[j].Location
	})
	return out, nil
}

func lintRef(ref *openapi3.SchemaRef, path []string) []pkgopenapi.Violation {
	if ref == nil || ref.Value == nil {
		return nil
	}
	s := ref.Value
	out := lintExtensions(s, path)
	for _, name := range sortedKeys(s.Properties) {
		prop := s.Properties[name]
		if prop != nil && prop.Ref == "" {
			out = append(out, lintRef(prop, appendPath(path, "properties", name))...)
		}
	}
	if s.Items != nil && s.Items.Ref == "" {
		out = append(out, lintRef(s.Items, appendPath(path, "items"))...)
	}
	for i, part := range s.AllOf {
		if part != nil && part.Ref == "" {
			out = append(out, lintRef(part, appendPath(path, "allOf", fmt.Sprint(i)))...)
		}
	}
	return out
}

func lintExtensions(s *openapi3.Schema, path []string) []pkgopenapi.Violation {
	var out []pkgopenapi.Violation
	fail := func(format string, args ...any) {
		out = append(out, pkgopenapi.Violation{
			Location: strings.Join(path, " > "),
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, key := range sortedKeys(s.Extensions) {
		if !strings.HasPrefix(key, ExtensionPrefix) {
			continue
		}
		value := s.Extensions[key]
		switch key {
		case ExtensionOrder:
			names, ok := value.([]any)
			if !ok {
				fail("%s must be a list of property names, found %T", key, value)
				continue
			}
			known := propertyNames(s, make(map[*openapi3.Schema]bool))
			for _, raw := range names {
				name, ok := raw.(string)
				if !ok || name == "" {
					fail("%s entries must be property names, found %v", key, raw)
					continue
				}
				if _, exists := known[name]; !exists {
					fail("%s names unknown property %q", key, name)
				}
			}
		case ExtensionLabels:
			labels, ok := value.(map[string]any)
			if !ok {
				fail("%s must map enum values to labels, found %T", key, value)
				continue
			}
			if len(s.Enum) == 0 {
				fail("%s is only read on enum schemas", key)
				continue
			}
			allowed := make(map[string]struct{}, len(s.Enum))
			for _, v := range s.Enum {
				allowed[fmt.Sprint(v)] = struct{}{}
			}
			for _, enumValue := range sortedKeys(labels) {
				if _, ok := labels[enumValue].(string); !ok {
					fail("%s label for %q must be a string", key, enumValue)
				}
				if _, ok := allowed[enumValue]; !ok {
					fail("%s labels unknown enum value %q", key, enumValue)
				}
			}
		case ExtensionWidget:
			widget, ok := value.(string)
			if !ok || !isWidget(widget) {
				fail("%s must be one of %s, found %v", key, strings.Join(Widgets, ", "), value)
			}
		default:
			fail("unsupported extension %q (supported: %s, %s, %s)", key, ExtensionLabels, ExtensionOrder, ExtensionWidget)
		}
	}
	return out
}

// propertyNames collects the properties of s and of its allOf members.
func propertyNames(s *openapi3.Schema, seen map[*openapi3.Schema]bool) map[string]struct{} {
	out := make(map[string]struct{})
	if s == nil || seen[s] {
		return out
	}
	seen[s] = true
	for name := range s.Properties {
		out[name] = struct{}{}
	}
	for _, part := range s.AllOf {
		if part == nil {
			continue
		}
		for name := range propertyNames(part.Value, seen) {
			out[name] = struct{}{}
		}
	}
	return out
}

func isWidget(widget string) bool {
	for _, known := range Widgets {
		if widget == known {
			return true
		}
	}
	return false
}

func appendPath(path []string, segments ...string) []string {
	next := make([]string, 0, len(path)+len(segments))
	next = append(next, path...)
	return append(next, segments...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
