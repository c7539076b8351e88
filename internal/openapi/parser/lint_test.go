package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

func lintDoc(t *testing.T, name string) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("..", "testdata", name)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	return doc
}

func TestLint_ReportsViolations(t *testing.T) {
	got, err := New(pkgopenapi.NewParserOptions()).Lint(context.Background(), lintDoc(t, "lint.yaml"))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}

	want := []pkgopenapi.Violation{
		{
			Location: "components > schemas > Course",
			Message:  `x-adminkit-order names unknown property "missing"`,
		},
		{
			Location: "components > schemas > Course > properties > level",
			Message:  `x-adminkit-labels labels unknown enum value "expert"`,
		},
		{
			Location: "components > schemas > Course > properties > summary",
			Message:  "x-adminkit-labels must map enum values to labels, found string",
		},
		{
			Location: "components > schemas > Course > properties > title",
			Message:  "x-adminkit-widget must be one of email, markdown, textarea, url, found slider",
		},
		{
			Location: "operation > createCourse > requestBody > application/json",
			Message:  `unsupported extension "x-adminkit-colour" (supported: x-adminkit-labels, x-adminkit-order, x-adminkit-widget)`,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLint_CleanDocument(t *testing.T) {
	got, err := New(pkgopenapi.NewParserOptions()).Lint(context.Background(), studentsDoc(t))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}
}
