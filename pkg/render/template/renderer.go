package template

import (
	"io"
)

// TemplateRenderer is the engine seam used by the HTML renderers. Every render
// method returns the output and also copies it to any supplied writers.
type TemplateRenderer interface {
	// Render treats name as inline template source when it contains template
	// tags, otherwise as a template file name.
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
