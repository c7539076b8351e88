package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit"
	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

const openAPITimeout = 15 * time.Second

// formSources selects where schema forms come from.
type formSources struct {
	schemas    string
	openapi    string
	components bool
}

func (s *formSources) register(cmd *cobra.Command, withSchema bool) {
	if withSchema {
		cmd.Flags().StringVar(&s.schemas, "schema", "", "schema document or directory (defaults to ADMINKIT_SCHEMAS_DIR)")
	}
	cmd.Flags().StringVar(&s.openapi, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().BoolVar(&s.components, "components", false, "build forms from component schemas instead of operations")
}

// loadForms returns the forms named by sources, nil when none is configured.
// OpenAPI schemas that cannot become forms are logged and skipped.
func (a *app) loadForms(ctx context.Context, sources formSources) (*schema.Store, error) {
	if sources.openapi != "" {
		src, err := openAPISource(sources.openapi)
		if err != nil {
			return nil, err
		}
		opts := []adminkit.OpenAPIOption{
			adminkit.WithLoaderOptions(pkgopenapi.WithHTTPFallback(openAPITimeout)),
		}
		if sources.components {
			opts = append(opts, adminkit.WithComponentForms())
		}
		store, err := adminkit.LoadOpenAPIForms(ctx, src, opts...)
		if store == nil {
			return nil, err
		}
		if err != nil {
			a.logger.Warn().Err(err).Str("source", sources.openapi).Msg("skipped openapi schemas")
		}
		return store, nil
	}

	path := sources.schemas
	if path == "" {
		path = a.cfg.SchemasDir
	}
	if path == "" {
		return nil, nil
	}
	return loadSchemaPath(path)
}

func openAPISource(raw string) (pkgopenapi.Source, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return pkgopenapi.SourceFromURL(raw)
	}
	return pkgopenapi.SourceFromFile(raw), nil
}

func loadSchemaPath(path string) (*schema.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("schemas: %w", err)
	}
	if info.IsDir() {
		return schema.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemas: %w", err)
	}
	forms, err := schema.ParseDocument(data, path)
	if err != nil {
		return nil, err
	}
	return schema.NewStore(forms...)
}

// pickForm returns the form with id, or the only form when id is empty.
func pickForm(store *schema.Store, id string) (schema.Form, error) {
	if store == nil || store.Empty() {
		return schema.Form{}, fmt.Errorf("no forms loaded: pass --schema or --openapi")
	}
	ids := store.IDs()
	if id == "" {
		if len(ids) != 1 {
			return schema.Form{}, fmt.Errorf("several forms loaded, pick one with --id: %s", strings.Join(ids, ", "))
		}
		id = ids[0]
	}
	form, ok := store.Form(id)
	if !ok {
		return schema.Form{}, fmt.Errorf("form %q not found, have: %s", id, strings.Join(ids, ", "))
	}
	return form, nil
}
