package adminkit

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

var studentsSpec = filepath.Join("internal", "openapi", "testdata", "students.yaml")

func TestLoadOpenAPIForms_Operations(t *testing.T) {
	store, err := LoadOpenAPIForms(context.Background(), pkgopenapi.SourceFromFile(studentsSpec))
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}

	form, ok := store.Form("createStudent")
	if !ok {
		t.Fatalf("expected createStudent form, got %v", store.IDs())
	}
	if form.Title != "Invite Student" {
		t.Fatalf("unexpected title %q", form.Title)
	}
	first := form.Root.Fields[0]
	if first.Name != "fname" || !schema.IsRequired(first.Node) {
		t.Fatalf("expected required fname first, got %+v", first)
	}
	if _, ok := store.Form("listStudents"); ok {
		t.Fatalf("operations without a body should not produce forms")
	}
}

func TestLoadOpenAPIForms_Components(t *testing.T) {
	store, err := LoadOpenAPIForms(context.Background(), pkgopenapi.SourceFromFile(studentsSpec), WithComponentForms())
	if err == nil {
		t.Fatalf("expected the recursive Node component to be reported")
	}
	if store == nil {
		t.Fatalf("expected a store with the convertible components")
	}
	for _, id := range []string{"Person", "StudentInput"} {
		if _, ok := store.Form(id); !ok {
			t.Fatalf("expected component form %s, got %v", id, store.IDs())
		}
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{"form.tmpl", "table.tmpl", "modal.tmpl", "layout.tmpl", "components/field.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected %s in embedded templates: %v", name, err)
		}
	}
}

func TestLintOpenAPI(t *testing.T) {
	violations, err := LintOpenAPI(context.Background(), pkgopenapi.SourceFromFile(filepath.Join("internal", "openapi", "testdata", "lint.yaml")))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 5 {
		t.Fatalf("expected 5 violations, got %v", violations)
	}
	if got := violations[0].String(); got != `components > schemas > Course -> x-adminkit-order names unknown property "missing"` {
		t.Fatalf("unexpected first violation %q", got)
	}

	clean, err := LintOpenAPI(context.Background(), pkgopenapi.SourceFromFile(studentsSpec))
	if err != nil {
		t.Fatalf("lint students: %v", err)
	}
	if len(clean) != 0 {
		t.Fatalf("expected a clean document, got %v", clean)
	}
}
