package openapi

import "context"

// Parser resolves documents into operations and component schemas.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
	Components(ctx context.Context, doc Document) (map[string]Schema, error)
}

// ParserOptions toggles parser behaviour.
type ParserOptions struct {
	// Validate runs kin-openapi document validation before extraction.
	Validate bool
	// AllowPartialDocuments accepts documents without paths, which is the
	// usual shape of a components-only schema file.
	AllowPartialDocuments bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithValidation toggles document validation.
func WithValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.Validate = enabled
	}
}

// WithPartialDocuments toggles support for components-only documents.
func WithPartialDocuments(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.AllowPartialDocuments = enabled
	}
}

// NewParserOptions applies options over the defaults (validation on, full
// documents only).
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Validate: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
