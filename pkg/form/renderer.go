package form

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

// ExtensionFunc renders a node kind the built-in dispatch does not know. It
// receives the renderer so composite extensions can render children.
type ExtensionFunc func(r *Renderer, node schema.Node, name string, props FieldProps) (Control, error)

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for debug traces.
func WithLogger(logger zerolog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithExtension registers fn for kind at construction time. Invalid
// registrations panic, mirroring MustRegister.
func WithExtension(kind schema.Kind, fn ExtensionFunc) RendererOption {
	return func(r *Renderer) {
		r.MustRegister(kind, fn)
	}
}

// WithIDPrefix prefixes generated control ids, useful when several forms share
// a page.
func WithIDPrefix(prefix string) RendererOption {
	return func(r *Renderer) {
		r.idPrefix = strings.TrimSpace(prefix)
	}
}

// Renderer dispatches schema nodes to controls. It is safe for concurrent use;
// registrations are expected at startup.
type Renderer struct {
	mu         sync.RWMutex
	extensions map[schema.Kind]ExtensionFunc
	logger     zerolog.Logger
	idPrefix   string
}

// New returns a renderer with the built-in kinds and any extensions from opts.
func New(opts ...RendererOption) *Renderer {
	r := &Renderer{
		extensions: make(map[schema.Kind]ExtensionFunc),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register adds an extension renderer. Built-in kinds cannot be overridden
// and a kind can only be registered once.
func (r *Renderer) Register(kind schema.Kind, fn ExtensionFunc) error {
	kind = schema.Kind(strings.TrimSpace(string(kind)))
	if kind == "" {
		return fmt.Errorf("form: extension kind is required")
	}
	if fn == nil {
		return fmt.Errorf("form: extension renderer for %q is nil", kind)
	}
	if slices.Contains(schema.Kinds(), kind) {
		return fmt.Errorf("form: kind %q is built in", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.extensions[kind]; exists {
		return fmt.Errorf("form: extension for kind %q already registered", kind)
	}
	r.extensions[kind] = fn
	return nil
}

// MustRegister panics when Register fails.
func (r *Renderer) MustRegister(kind schema.Kind, fn ExtensionFunc) {
	if err := r.Register(kind, fn); err != nil {
		panic(err)
	}
}

// Extensions lists the registered extension kinds.
func (r *Renderer) Extensions() []schema.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]schema.Kind, 0, len(r.extensions))
	for kind := range r.extensions {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Render returns the control for node bound to name. Effects and Optional
// wrappers recurse into their inner node with the same name and props.
func (r *Renderer) Render(node schema.Node, name string, props FieldProps) (Control, error) {
	return r.render(node, name, props, scope{})
}

// scope carries walk state that is not part of the caller's props.
type scope struct {
	optional  bool
	submitted bool
	bind      func(path string) formstate.Binding
}

func (r *Renderer) render(node schema.Node, name string, props FieldProps, sc scope) (Control, error) {
	switch n := node.(type) {
	case *schema.Effects:
		return r.render(n.Of, name, props, sc)
	case *schema.Optional:
		sc.optional = true
		return r.render(n.Of, name, props, sc)
	case *schema.Boolean:
		ctrl := r.base(n, name, props, sc)
		ctrl.Kind = ControlCheckbox
		ctrl.Value = "true"
		// browsers omit unchecked boxes from a submission
		if props.Value == nil && !sc.submitted {
			ctrl.Checked = n.Default
		} else {
			ctrl.Checked = formstate.Binding{Value: props.Value}.Checked()
		}
		return ctrl, nil
	case *schema.String:
		return r.text(n, name, props, sc), nil
	case *schema.Number:
		return r.number(n, name, props, sc), nil
	case *schema.Enum:
		return r.choice(n, name, props, sc), nil
	case *schema.Object:
		return r.object(n, name, props, sc)
	case nil:
		return Control{}, &NoRendererError{Kind: "", Name: name}
	default:
		r.mu.RLock()
		fn, ok := r.extensions[node.Kind()]
		r.mu.RUnlock()
		if !ok {
			r.logger.Debug().Str("kind", string(node.Kind())).Str("field", name).Msg("form: no renderer")
			return Control{}, &NoRendererError{Kind: node.Kind(), Name: name}
		}
		ctrl, err := fn(r, node, name, props)
		if err != nil {
			return Control{}, fmt.Errorf("form: render %q (%s): %w", name, node.Kind(), err)
		}
		ctrl.SchemaKind = node.Kind()
		return ctrl, nil
	}
}

func (r *Renderer) base(node schema.Node, name string, props FieldProps, sc scope) Control {
	meta := node.Info()
	ctrl := Control{
		Name:        name,
		ID:          props.ID,
		Label:       schema.LabelOr(meta.Label, lastSegment(name)),
		Description: meta.Description,
		Placeholder: props.Placeholder,
		Required:    meta.Required && !sc.optional,
		Disabled:    props.Disabled,
		Errors:      append([]string(nil), props.Errors...),
		SchemaKind:  node.Kind(),
	}
	if ctrl.ID == "" {
		ctrl.ID = ControlID(r.idPrefix, name)
	}
	if ctrl.Placeholder == "" {
		ctrl.Placeholder = meta.Placeholder
	}
	return ctrl
}

func (r *Renderer) text(n *schema.String, name string, props FieldProps, sc scope) Control {
	ctrl := r.base(n, name, props, sc)
	switch {
	case n.Multiline:
		ctrl.Kind = ControlTextarea
	case n.Format == "email":
		ctrl.Kind = ControlEmail
	case n.Format == "url":
		ctrl.Kind = ControlURL
	default:
		ctrl.Kind = ControlText
	}
	ctrl.Value = valueText(props.Value, n.Default)

	attrs := map[string]string{}
	if n.MinLength != nil {
		attrs["minlength"] = strconv.Itoa(*n.MinLength)
	}
	if n.MaxLength != nil {
		attrs["maxlength"] = strconv.Itoa(*n.MaxLength)
	}
	if n.Pattern != "" && !n.Multiline {
		attrs["pattern"] = n.Pattern
	}
	if len(attrs) > 0 {
		ctrl.Attrs = attrs
	}
	return ctrl
}

func (r *Renderer) number(n *schema.Number, name string, props FieldProps, sc scope) Control {
	ctrl := r.base(n, name, props, sc)
	ctrl.Kind = ControlNumber

	var fallback string
	if n.Default != nil {
		fallback = formatFloat(*n.Default)
	}
	ctrl.Value = valueText(props.Value, fallback)

	ctrl.Attrs = map[string]string{"step": "any"}
	if n.Integer {
		ctrl.Attrs["step"] = "1"
	}
	if n.Min != nil {
		ctrl.Attrs["min"] = formatFloat(*n.Min)
	}
	if n.Max != nil {
		ctrl.Attrs["max"] = formatFloat(*n.Max)
	}
	return ctrl
}

func (r *Renderer) choice(n *schema.Enum, name string, props FieldProps, sc scope) Control {
	ctrl := r.base(n, name, props, sc)
	ctrl.Kind = ControlSelect
	ctrl.Value = valueText(props.Value, n.Default)

	ctrl.Options = make([]Option, 0, len(n.Choices))
	for _, choice := range n.Choices {
		ctrl.Options = append(ctrl.Options, Option{
			Value:    choice.Value,
			Label:    choice.Display(),
			Selected: choice.Value == ctrl.Value,
		})
	}
	return ctrl
}

func (r *Renderer) object(n *schema.Object, name string, props FieldProps, sc scope) (Control, error) {
	ctrl := r.base(n, name, props, sc)
	ctrl.Kind = ControlFieldset
	ctrl.Placeholder = ""

	values, _ := props.Value.(map[string]any)
	ctrl.Children = make([]Control, 0, len(n.Fields))
	for _, field := range n.Fields {
		path := formstate.JoinPath(name, field.Name)
		child := FieldProps{Disabled: props.Disabled, Value: values[field.Name]}
		if sc.bind != nil {
			binding := sc.bind(path)
			child.Value = binding.Value
			child.Errors = binding.Errors
		}
		rendered, err := r.render(field.Node, path, child, scope{bind: sc.bind, submitted: sc.submitted})
		if err != nil {
			return Control{}, err
		}
		ctrl.Children = append(ctrl.Children, rendered)
	}
	return ctrl, nil
}

func valueText(value any, fallback string) string {
	if value == nil {
		return fallback
	}
	return formstate.Binding{Value: value}.Text()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
