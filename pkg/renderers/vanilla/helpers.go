package vanilla

import (
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla/components"
)

// labelSupportsFor reports whether the field wrapper draws the label. The
// checkbox and fieldset components draw their own.
func labelSupportsFor(componentName string) bool {
	switch componentName {
	case components.NameCheckbox, components.NameFieldset:
		return false
	default:
		return true
	}
}

// componentHandlesDescription reports whether the component prints the
// description itself.
func componentHandlesDescription(componentName string) bool {
	return componentName == components.NameFieldset
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
