// Package formstate holds submitted form values and their validation errors
// keyed by dotted field paths. Renderers read Bindings from it; handlers fill
// it from a request and run Validate against the form's schema.
package formstate

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// State tracks values and errors for one form submission.
type State struct {
	values     map[string]any
	errors     map[string][]string
	formErrors []string
	submitted  bool
}

// New seeds a state with prefilled values. Nested maps are copied.
func New(prefill map[string]any) *State {
	return &State{
		values: cloneValues(prefill),
		errors: make(map[string][]string),
	}
}

// FromValues builds a submitted state from decoded form values. Dotted keys
// ("guardian.phone") become nested maps; repeated keys keep the last value.
func FromValues(values url.Values) *State {
	state := New(nil)
	state.submitted = true

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entries := values[key]
		if len(entries) == 0 || strings.TrimSpace(key) == "" {
			continue
		}
		_ = state.Set(key, entries[len(entries)-1])
	}
	return state
}

// Submitted reports whether the state came from a submission.
func (s *State) Submitted() bool {
	return s != nil && s.submitted
}

// Values returns the nested value map. Callers must not mutate it.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// Get resolves a dotted path.
func (s *State) Get(path string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return getPath(s.values, path)
}

// Set writes value at a dotted path, creating intermediate maps.
func (s *State) Set(path string, value any) error {
	if s == nil {
		return fmt.Errorf("formstate: state is nil")
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, path, value)
}

// Text returns the value at path formatted for an input's value attribute.
func (s *State) Text(path string) string {
	return s.Bind(path).Text()
}

// AddError appends a message to path. An empty path adds a form-level error.
func (s *State) AddError(path, message string) {
	if s == nil {
		return
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	if strings.TrimSpace(path) == "" {
		s.formErrors = MergeFormErrors(s.formErrors, message)
		return
	}
	if s.errors == nil {
		s.errors = make(map[string][]string)
	}
	s.errors[path] = normalizeMessages(append(s.errors[path], message))
}

// ApplyErrors merges a mapped error payload into the state.
func (s *State) ApplyErrors(mapping ErrorMapping) {
	for path, messages := range mapping.Fields {
		for _, message := range messages {
			s.AddError(path, message)
		}
	}
	for _, message := range mapping.Form {
		s.AddError("", message)
	}
}

// ErrorsFor returns the messages attached to path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil {
		return nil
	}
	return s.errors[path]
}

// Errors returns a copy of the field errors.
func (s *State) Errors() map[string][]string {
	if s == nil {
		return nil
	}
	return cloneErrors(s.errors)
}

// FormErrors returns errors not tied to a field.
func (s *State) FormErrors() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.formErrors...)
}

// Valid reports whether no field or form errors are recorded.
func (s *State) Valid() bool {
	return s == nil || (len(s.errors) == 0 && len(s.formErrors) == 0)
}

// Binding is the read-only view a control needs: its path, current value and
// messages.
type Binding struct {
	Name   string
	Value  any
	Errors []string
}

// Bind returns the binding for path. A nil state yields an empty binding.
func (s *State) Bind(path string) Binding {
	binding := Binding{Name: path}
	if s == nil {
		return binding
	}
	if value, ok := s.Get(path); ok {
		binding.Value = value
	}
	binding.Errors = s.ErrorsFor(path)
	return binding
}

// Invalid reports whether the binding carries errors.
func (b Binding) Invalid() bool {
	return len(b.Errors) > 0
}

// Text formats the bound value for an input's value attribute.
func (b Binding) Text() string {
	switch v := b.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	default:
		return fmt.Sprint(v)
	}
}

// Checked interprets the bound value as a checkbox state.
func (b Binding) Checked() bool {
	switch v := b.Value.(type) {
	case bool:
		return v
	case string:
		checked, _ := parseBool(v)
		return checked
	default:
		return false
	}
}
