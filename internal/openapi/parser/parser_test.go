package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-adminkit/pkg/openapi"
)

func studentsDoc(t *testing.T) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("..", "testdata", "students.yaml")
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

func TestOperations(t *testing.T) {
	ops, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), studentsDoc(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 operations, got %v", ids)
	}

	list := ops["listStudents"]
	if list.Method != "GET" || list.HasBody() {
		t.Fatalf("unexpected list operation %+v", list)
	}

	create := ops["createStudent"]
	if create.Method != "POST" || create.Path != "/students" || create.Summary != "Invite Student" {
		t.Fatalf("unexpected create operation %+v", create)
	}
	body := create.RequestBody
	if body.Ref != "#/components/schemas/StudentInput" {
		t.Fatalf("expected ref to be kept, got %q", body.Ref)
	}

	if diff := cmp.Diff([]string{"email", "grade", "fname", "lname"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fname", "lname", "email", "grade", "track"}, body.Order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got := body.Properties["fname"].Title; got != "First Name" {
		t.Fatalf("expected allOf property to be merged, got title %q", got)
	}
	if got := body.Properties["track"].Labels["sci"]; got != "Science" {
		t.Fatalf("expected enum labels, got %q", got)
	}
	if got := body.Properties["notes"].Format; got != "textarea" {
		t.Fatalf("expected widget extension to set format, got %q", got)
	}
	grade := body.Properties["grade"]
	if grade.Minimum == nil || *grade.Minimum != 1 || grade.Maximum == nil || *grade.Maximum != 12 {
		t.Fatalf("unexpected grade bounds %+v", grade)
	}
}

func TestComponents_RecursiveReference(t *testing.T) {
	comps, err := New(pkgopenapi.NewParserOptions()).Components(context.Background(), studentsDoc(t))
	if err != nil {
		t.Fatalf("components: %v", err)
	}
	node, ok := comps["Node"]
	if !ok {
		t.Fatalf("expected Node component")
	}
	parent := node.Properties["parent"]
	if parent.Ref == "" || parent.Type != "" {
		t.Fatalf("expected recursive reference to stop at the ref, got %s", parent.DebugString())
	}
}

func TestOperations_RequiresPaths(t *testing.T) {
	raw := []byte("openapi: 3.0.3\ninfo: {title: t, version: '1'}\npaths: {}\n")
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("empty.yaml"), raw)
	if err != nil {
		t.Fatalf("document: %v", err)
	}

	_, err = New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err == nil || !strings.Contains(err.Error(), "does not contain any paths") {
		t.Fatalf("expected missing paths error, got %v", err)
	}

	comps, err := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true))).Components(context.Background(), doc)
	if err != nil {
		t.Fatalf("partial components: %v", err)
	}
	if len(comps) != 0 {
		t.Fatalf("expected no components, got %d", len(comps))
	}
}
