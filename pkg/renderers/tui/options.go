package tui

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/pkg/form"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one path=value line per field.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// DefaultMaxAttempts bounds the prompt rounds for invalid answers.
const DefaultMaxAttempts = 3

// Theme holds message prefixes the renderer applies to Info output.
type Theme struct {
	SectionPrefix string
	ErrorPrefix   string
}

// DefaultTheme is used when WithTheme is not given.
var DefaultTheme = Theme{SectionPrefix: "## ", ErrorPrefix: "! "}

// SubmitTransformer mutates validated values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer lets callers mutate validated values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithFormRenderer supplies the form renderer, typically one with extension
// kinds registered.
func WithFormRenderer(forms *form.Renderer) Option {
	return func(r *Renderer) {
		if forms != nil {
			r.forms = forms
		}
	}
}

// WithMaxAttempts bounds how many rounds invalid fields are prompted again.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}
