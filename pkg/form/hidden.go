package form

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted ahead of the visible controls.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden builds a hidden field from any value.
func Hidden(name string, value any) HiddenField {
	text := ""
	if value != nil {
		text = fmt.Sprint(value)
	}
	return HiddenField{Name: strings.TrimSpace(name), Value: text}
}

// CSRFToken carries a request forgery token under the name the backend
// expects ("csrf_token" for nosurf).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// RecordID carries the identifier of the record an edit form targets.
func RecordID(name string, id any) HiddenField {
	return Hidden(name, id)
}

// MergeHidden collapses fields by name, later fields winning, and returns
// them sorted by name. Blank names are dropped.
func MergeHidden(fields ...HiddenField) []HiddenField {
	byName := make(map[string]string, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		byName[name] = field.Value
	}
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: byName[name]})
	}
	return out
}
