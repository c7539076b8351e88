package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

func registerBuiltinFilters() {
	builtin := map[string]pongo2.FilterFunction{
		"trim":     filterTrim,
		"humanize": filterHumanize,
		"dashed":   filterDashed,
	}
	for name, fn := range builtin {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterHumanize renders a key as a label: {{ "created_at"|humanize }}.
func filterHumanize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(schema.Humanize(in.String())), nil
}

// filterDashed turns a dotted field path into an id fragment.
func filterDashed(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.NewReplacer(".", "-", " ", "-").Replace(strings.TrimSpace(in.String()))), nil
}
