package tui

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/formstate"
)

func serialize(format OutputFormat, values map[string]any) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		walkLeaves("", values, func(path, text string) { form.Set(path, text) })
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		walkLeaves("", values, func(path, text string) { fmt.Fprintf(&b, "%s=%s\n", path, text) })
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}

// walkLeaves visits every non-nil leaf under value in dotted-path order.
func walkLeaves(prefix string, value any, fn func(path, text string)) {
	switch v := value.(type) {
	case nil:
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			walkLeaves(formstate.JoinPath(prefix, key), v[key], fn)
		}
	default:
		if prefix != "" {
			fn(prefix, fmt.Sprint(v))
		}
	}
}
