package form

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

const (
	DefaultSubmitLabel  = "Save"
	DefaultLoadingLabel = "Saving..."
	DefaultCancelLabel  = "Cancel"
)

// FormOptions configures the chrome around a rendered form.
type FormOptions struct {
	ID           string
	Action       string
	Method       string
	Hidden       []HiddenField
	SubmitLabel  string
	LoadingLabel string
	CancelLabel  string
	CancelHref   string
	// Loading marks an in-flight submission: every control and the submit
	// button are disabled.
	Loading  bool
	Disabled bool
	// Placeholders override node placeholders keyed by dotted field path.
	Placeholders map[string]string
}

// Form is a fully bound form ready for a template.
type Form struct {
	ID           string        `json:"id"`
	Title        string        `json:"title,omitempty"`
	Description  string        `json:"description,omitempty"`
	Action       string        `json:"action,omitempty"`
	Method       string        `json:"method"`
	Fields       []Control     `json:"fields"`
	Hidden       []HiddenField `json:"hidden,omitempty"`
	Errors       []string      `json:"errors,omitempty"`
	SubmitLabel  string        `json:"submit_label"`
	CancelLabel  string        `json:"cancel_label,omitempty"`
	CancelHref   string        `json:"cancel_href,omitempty"`
	Loading      bool          `json:"loading,omitempty"`
	Disabled     bool          `json:"disabled,omitempty"`
	Submitted    bool          `json:"submitted,omitempty"`
	Invalid      bool          `json:"invalid,omitempty"`
	ControlKinds []string      `json:"control_kinds,omitempty"`
}

// RenderForm binds every field of obj to state and wraps the result with the
// submit chrome. A nil state renders defaults.
func (r *Renderer) RenderForm(obj *schema.Object, state *formstate.State, opts FormOptions) (Form, error) {
	if obj == nil {
		return Form{}, &NoRendererError{Kind: schema.KindObject, Name: opts.ID}
	}

	disabled := opts.Disabled || opts.Loading
	sc := scope{
		submitted: state.Submitted(),
		bind: func(path string) formstate.Binding {
			return state.Bind(path)
		},
	}

	fields := make([]Control, 0, len(obj.Fields))
	for _, field := range obj.Fields {
		binding := state.Bind(field.Name)
		props := FieldProps{
			Placeholder: opts.Placeholders[field.Name],
			Disabled:    disabled,
			Errors:      binding.Errors,
			Value:       binding.Value,
		}
		ctrl, err := r.render(field.Node, field.Name, props, sc)
		if err != nil {
			return Form{}, err
		}
		applyPlaceholders(&ctrl, opts.Placeholders)
		fields = append(fields, ctrl)
	}

	meta := obj.Info()
	out := Form{
		ID:          strings.TrimSpace(opts.ID),
		Title:       meta.Label,
		Description: meta.Description,
		Action:      opts.Action,
		Method:      formMethod(opts.Method),
		Fields:      fields,
		Hidden:      MergeHidden(opts.Hidden...),
		Errors:      state.FormErrors(),
		SubmitLabel: firstNonEmpty(opts.SubmitLabel, DefaultSubmitLabel),
		CancelHref:  opts.CancelHref,
		Loading:     opts.Loading,
		Disabled:    disabled,
		Submitted:   state.Submitted(),
		Invalid:     !state.Valid(),
	}
	if out.ID == "" {
		out.ID = "form"
	}
	if opts.Loading {
		out.SubmitLabel = firstNonEmpty(opts.LoadingLabel, DefaultLoadingLabel)
	}
	if opts.CancelHref != "" || opts.CancelLabel != "" {
		out.CancelLabel = firstNonEmpty(opts.CancelLabel, DefaultCancelLabel)
	}
	out.ControlKinds = controlKinds(fields)
	return out, nil
}

func applyPlaceholders(ctrl *Control, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	if value, ok := overrides[ctrl.Name]; ok && value != "" && ctrl.Kind != ControlFieldset {
		ctrl.Placeholder = value
	}
	for idx := range ctrl.Children {
		applyPlaceholders(&ctrl.Children[idx], overrides)
	}
}

func controlKinds(fields []Control) []string {
	seen := make(map[string]struct{})
	var kinds []string
	for _, field := range fields {
		field.Walk(func(c Control) {
			if _, ok := seen[c.Kind]; ok {
				return
			}
			seen[c.Kind] = struct{}{}
			kinds = append(kinds, c.Kind)
		})
	}
	return kinds
}

func formMethod(method string) string {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case http.MethodGet:
		return http.MethodGet
	default:
		return http.MethodPost
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
