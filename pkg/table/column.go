package table

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// HTML marks trusted-looking markup returned from a header or cell function.
// It is still passed through a sanitizer before reaching a renderer.
type HTML string

// Formatter turns an accessed value into display text.
type Formatter func(any) string

// Column describes one grid column over rows of type T.
type Column[T any] struct {
	// Key identifies the column. Keys must be unique within a table.
	Key string
	// Header is the plain text label. When empty, HeaderHTML or the humanized
	// key is used.
	Header string
	// HeaderHTML is optional renderable header markup.
	HeaderHTML HTML
	// Accessor reads the raw value used for sorting and export.
	Accessor func(T) any
	// Cell returns the display value. Defaults to the accessor value. Returning
	// HTML renders sanitized markup.
	Cell func(T) any
	// Format converts the display value into text. Defaults to FormatValue.
	Format Formatter
	// Hidden sets the initial visibility when the state carries no explicit
	// hidden set.
	Hidden bool
	// DisableSort removes the column from sort interactions.
	DisableSort bool
}

// Sortable reports whether the column takes part in sorting.
func (c Column[T]) Sortable() bool {
	return !c.DisableSort && c.Accessor != nil
}

// Value adapts a typed getter into a column accessor.
func Value[T any, V any](fn func(T) V) func(T) any {
	return func(row T) any { return fn(row) }
}

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// SanitizeHTML cleans markup coming from header and cell functions.
func SanitizeHTML(raw HTML) HTML {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}
	return HTML(strings.TrimSpace(markupSanitizer().Sanitize(trimmed)))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "title").Globally()
		policy.AllowAttrs("datetime").OnElements("time")
		policy.AllowElements("time", "mark")
		markupPolicy = policy
	})
	return markupPolicy
}
