// Package testsupport holds fixtures and helpers shared by package tests:
// the student roster used across table and form tests, golden file helpers
// gated by UPDATE_GOLDENS and HTML assertions.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/schema"
	"github.com/goliatone/go-adminkit/pkg/table"
)

// Student is the row type of the roster fixture.
type Student struct {
	ID    int
	First string
	Last  string
	Email string
	Grade int
	Score float64
}

// Students returns a small roster in insertion order.
func Students() []Student {
	return []Student{
		{ID: 1, First: "Blaise", Last: "Pascal", Email: "blaise@example.com", Grade: 10, Score: 88.5},
		{ID: 2, First: "Ada", Last: "Lovelace", Email: "ada@example.com", Grade: 11, Score: 93},
		{ID: 3, First: "Alan", Last: "Turing", Email: "alan@example.com", Grade: 10, Score: 79.25},
	}
}

// StudentColumns returns the roster columns. Email starts hidden.
func StudentColumns() []table.Column[Student] {
	return []table.Column[Student]{
		{Key: "id", Header: "ID", Accessor: table.Value(func(s Student) int { return s.ID })},
		{Key: "name", Header: "Name", Accessor: table.Value(func(s Student) string { return s.First + " " + s.Last })},
		{Key: "email", Accessor: table.Value(func(s Student) string { return s.Email }), Hidden: true},
		{Key: "grade", Accessor: table.Value(func(s Student) int { return s.Grade })},
		{Key: "score", Accessor: table.Value(func(s Student) float64 { return s.Score })},
	}
}

// StudentForm returns the add-student schema: required names, email and
// grade plus an optional track enum and a guardian object.
func StudentForm() *schema.Object {
	minGrade, maxGrade := 1.0, 12.0
	return schema.NewObject(schema.Meta{Label: "Invite Student"},
		schema.Prop("fname", &schema.String{Meta: schema.Meta{Label: "First Name", Placeholder: "Blaise", Required: true}}),
		schema.Prop("lname", &schema.String{Meta: schema.Meta{Label: "Last Name", Placeholder: "Pascal", Required: true}}),
		schema.Prop("email", &schema.String{Meta: schema.Meta{Label: "Email Address", Placeholder: "blaise.pascal@gmail.com", Required: true}, Format: "email"}),
		schema.Prop("grade", &schema.Number{Meta: schema.Meta{Label: "Grade", Placeholder: "10", Required: true}, Integer: true, Min: &minGrade, Max: &maxGrade}),
		schema.Prop("track", schema.MakeOptional(&schema.Enum{
			Meta:    schema.Meta{Label: "Track"},
			Choices: []schema.Choice{{Value: "sci", Label: "Science"}, {Value: "hum", Label: "Humanities"}},
		})),
		schema.Prop("newsletter", &schema.Boolean{Meta: schema.Meta{Label: "Newsletter"}}),
		schema.Prop("guardian", schema.NewObject(schema.Meta{Label: "Guardian"},
			schema.Prop("phone", schema.MakeOptional(&schema.String{Meta: schema.Meta{Label: "Phone"}})),
		)),
	)
}

// AssertContains fails the test for every fragment missing from out.
func AssertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Errorf("output missing %q\n%s", fragment, out)
		}
	}
}

// AssertNotContains fails the test for every fragment present in out.
func AssertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Errorf("output unexpectedly contains %q\n%s", fragment, out)
		}
	}
}

// AssertOrder fails unless the fragments appear in out in the given order.
func AssertOrder(t *testing.T, out string, fragments ...string) {
	t.Helper()
	last := -1
	for _, fragment := range fragments {
		idx := strings.Index(out, fragment)
		if idx < 0 {
			t.Fatalf("output missing %q\n%s", fragment, out)
		}
		if idx < last {
			t.Fatalf("%q appears out of order\n%s", fragment, out)
		}
		last = idx
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written and the test should stop.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs a render function that also writes to an
// io.Writer and returns both the result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
