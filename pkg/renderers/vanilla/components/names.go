package components

import "github.com/goliatone/go-adminkit/pkg/form"

// Component names registered by NewDefaultRegistry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameSelect   = "select"
	NameCheckbox = "checkbox"
	NameFieldset = "fieldset"
)

// ForControl maps a control kind to the component that draws it. Extension
// kinds map to a component of the same name.
func ForControl(kind string) string {
	switch kind {
	case form.ControlText, form.ControlEmail, form.ControlURL, form.ControlNumber:
		return NameInput
	case form.ControlTextarea:
		return NameTextarea
	case form.ControlSelect:
		return NameSelect
	case form.ControlCheckbox:
		return NameCheckbox
	case form.ControlFieldset:
		return NameFieldset
	default:
		return kind
	}
}
