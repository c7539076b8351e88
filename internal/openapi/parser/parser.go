package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

// Extension keys read from schemas.
const (
	ExtensionOrder  = "x-adminkit-order"
	ExtensionLabels = "x-adminkit-labels"
	ExtensionWidget = "x-adminkit-widget"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations returns the operations of doc keyed by operationId. Operations
// without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	operations := make(map[string]pkgopenapi.Operation)
	if spec.Paths != nil {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				if op == nil {
					continue
				}
				id := op.OperationID
				if id == "" {
					id = strings.ToLower(method) + ":" + path
				}
				operations[id] = pkgopenapi.Operation{
					ID:          id,
					Method:      strings.ToUpper(method),
					Path:        path,
					Summary:     op.Summary,
					Description: op.Description,
					RequestBody: requestSchema(op.RequestBody),
				}
			}
		}
	}

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// Components returns the resolved component schemas of doc.
func (p *Parser) Components(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Schema, error) {
	spec, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	out := make(map[string]pkgopenapi.Schema)
	if spec.Components == nil {
		return out, nil
	}
	for name, ref := range spec.Components.Schemas {
		out[name] = convertSchema(ref)
	}
	return out, nil
}

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}

	if (spec.Paths == nil || spec.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return spec, nil
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil || body.Value == nil {
		return pkgopenapi.Schema{}
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/x-www-form-urlencoded", "application/json", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convert(ref, make(map[*openapi3.Schema]bool))
}

// convert resolves ref into a plain schema. active holds the schemas on the
// current descent path; meeting one again leaves only the reference behind.
func convert(ref *openapi3.SchemaRef, active map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	if src == nil || active[src] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	active[src] = true
	defer delete(active, src)

	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Example:     src.Example,
		Default:     src.Default,
		Nullable:    src.Nullable,
		Pattern:     src.Pattern,
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if src.Min != nil {
		v := *src.Min
		out.Minimum = &v
	}
	if src.Max != nil {
		v := *src.Max
		out.Maximum = &v
	}
	if src.MinLength > 0 {
		v := int(src.MinLength)
		out.MinLength = &v
	}
	if src.MaxLength != nil {
		v := int(*src.MaxLength)
		out.MaxLength = &v
	}
	if src.Items != nil {
		items := convert(src.Items, active)
		out.Items = &items
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, prop := range src.Properties {
			out.Properties[name] = convert(prop, active)
		}
	}
	for _, part := range src.AllOf {
		mergeAllOf(&out, convert(part, active))
	}
	applyExtensions(&out, src.Extensions)
	return out
}

// mergeAllOf folds an allOf member into target. Target values win.
func mergeAllOf(target *pkgopenapi.Schema, part pkgopenapi.Schema) {
	if target.Type == "" {
		target.Type = part.Type
	}
	if target.Title == "" {
		target.Title = part.Title
	}
	if target.Description == "" {
		target.Description = part.Description
	}
	for _, req := range part.Required {
		if !target.IsRequired(req) {
			target.Required = append(target.Required, req)
		}
	}
	if len(part.Properties) > 0 && target.Properties == nil {
		target.Properties = make(map[string]pkgopenapi.Schema, len(part.Properties))
	}
	for name, prop := range part.Properties {
		if _, exists := target.Properties[name]; !exists {
			target.Properties[name] = prop
		}
	}
	target.Order = append(target.Order, part.Order...)
}

func applyExtensions(target *pkgopenapi.Schema, ext map[string]any) {
	if order, ok := ext[ExtensionOrder].([]any); ok {
		for _, raw := range order {
			if name, ok := raw.(string); ok && name != "" {
				target.Order = append(target.Order, name)
			}
		}
	}
	if labels, ok := ext[ExtensionLabels].(map[string]any); ok {
		target.Labels = make(map[string]string, len(labels))
		for value, raw := range labels {
			if label, ok := raw.(string); ok {
				target.Labels[value] = label
			}
		}
	}
	if widget, ok := ext[ExtensionWidget].(string); ok && widget != "" {
		target.Format = widget
	}
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, t := range types.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}
