package form

import (
	"strings"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

// Control kinds produced by the built-in renderers. Extension renderers may
// introduce their own.
const (
	ControlCheckbox = "checkbox"
	ControlText     = "text"
	ControlEmail    = "email"
	ControlURL      = "url"
	ControlTextarea = "textarea"
	ControlNumber   = "number"
	ControlSelect   = "select"
	ControlFieldset = "fieldset"
)

// FieldProps are passthrough props applied to the rendered control. Zero
// values defer to the node's metadata.
type FieldProps struct {
	Placeholder string `json:"placeholder,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	// Errors are validation messages supplied by the form state.
	Errors []string `json:"errors,omitempty"`
	// Value is the current value; nil falls back to the node default.
	Value any    `json:"value,omitempty"`
	ID    string `json:"id,omitempty"`
}

// Option is one choice of a select control.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Control is a bound input control.
type Control struct {
	Kind        string            `json:"kind"`
	Name        string            `json:"name"`
	ID          string            `json:"id"`
	Label       string            `json:"label,omitempty"`
	Description string            `json:"description,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	Errors      []string          `json:"errors,omitempty"`
	Value       string            `json:"value,omitempty"`
	Checked     bool              `json:"checked,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Children    []Control         `json:"children,omitempty"`
	// SchemaKind records the node kind that produced the control.
	SchemaKind schema.Kind `json:"schema_kind"`
}

// Invalid reports whether the control carries validation errors.
func (c Control) Invalid() bool {
	return len(c.Errors) > 0
}

// Walk visits c and every descendant depth first.
func (c Control) Walk(fn func(Control)) {
	fn(c)
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// ControlID derives a DOM id from a dotted field path.
func ControlID(prefix, name string) string {
	id := strings.NewReplacer(".", "-", " ", "-", "[", "-", "]", "").Replace(strings.TrimSpace(name))
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		return prefix + "-" + id
	}
	return "field-" + id
}
