// Package adminkit wires the public building blocks together: the OpenAPI
// loader, parser and extension linter backed by kin-openapi, schema stores
// built from them and the embedded HTML templates of the vanilla renderer.
package adminkit

import (
	"context"
	"errors"
	"io/fs"

	internalLoader "github.com/goliatone/go-adminkit/internal/openapi/loader"
	internalParser "github.com/goliatone/go-adminkit/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

// NewLoader constructs an OpenAPI loader.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// OpenAPIOption configures LoadOpenAPIForms.
type OpenAPIOption func(*openAPIConfig)

type openAPIConfig struct {
	loader     []pkgopenapi.LoaderOption
	parser     []pkgopenapi.ParserOption
	components bool
}

// WithLoaderOptions forwards options to the loader.
func WithLoaderOptions(options ...pkgopenapi.LoaderOption) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.loader = append(cfg.loader, options...)
	}
}

// WithParserOptions forwards options to the parser.
func WithParserOptions(options ...pkgopenapi.ParserOption) OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.parser = append(cfg.parser, options...)
	}
}

// WithComponentForms builds forms from components/schemas instead of
// operation request bodies. Documents without paths are accepted.
func WithComponentForms() OpenAPIOption {
	return func(cfg *openAPIConfig) {
		cfg.components = true
		cfg.parser = append(cfg.parser, pkgopenapi.WithPartialDocuments(true))
	}
}

// LoadOpenAPIForms loads src and converts it into a schema store. When some
// schemas cannot be represented as forms the store holds the rest and the
// error lists what was skipped.
func LoadOpenAPIForms(ctx context.Context, src pkgopenapi.Source, options ...OpenAPIOption) (*schema.Store, error) {
	cfg := openAPIConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := NewLoader(cfg.loader...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	parser := NewParser(cfg.parser...)

	var (
		forms    []schema.Form
		skipped  error
		parseErr error
	)
	if cfg.components {
		var comps map[string]pkgopenapi.Schema
		comps, parseErr = parser.Components(ctx, doc)
		if parseErr == nil {
			forms, skipped = pkgopenapi.ComponentForms(comps)
		}
	} else {
		var ops map[string]pkgopenapi.Operation
		ops, parseErr = parser.Operations(ctx, doc)
		if parseErr == nil {
			forms, skipped = pkgopenapi.Forms(ops)
		}
	}
	if parseErr != nil {
		return nil, parseErr
	}

	store, err := schema.NewStore(forms...)
	if err != nil {
		return nil, errors.Join(err, skipped)
	}
	return store, skipped
}

// LintOpenAPI loads src and reports malformed or unsupported x-adminkit-*
// extensions. Documents without paths are accepted.
func LintOpenAPI(ctx context.Context, src pkgopenapi.Source, options ...OpenAPIOption) ([]pkgopenapi.Violation, error) {
	cfg := openAPIConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc, err := NewLoader(cfg.loader...).Load(ctx, src)
	if err != nil {
		return nil, err
	}
	parserOpts := append([]pkgopenapi.ParserOption{pkgopenapi.WithPartialDocuments(true)}, cfg.parser...)
	return internalParser.New(pkgopenapi.NewParserOptions(parserOpts...)).Lint(ctx, doc)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can copy or extend them.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
