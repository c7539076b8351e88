package openapi_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/openapi"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

func ptr[T any](v T) *T { return &v }

func studentInput() openapi.Schema {
	return openapi.Schema{
		Type:     "object",
		Required: []string{"fname", "email", "grade"},
		Order:    []string{"fname", "email", "grade"},
		Properties: map[string]openapi.Schema{
			"fname": {Type: "string", Title: "First Name", Example: "Blaise"},
			"email": {Type: "string", Format: "email"},
			"grade": {Type: "integer", Minimum: ptr(1.0), Maximum: ptr(12.0)},
			"track": {
				Type:   "string",
				Enum:   []any{"sci", "hum"},
				Labels: map[string]string{"sci": "Science"},
			},
			"active": {Type: "boolean", Default: true},
			"notes":  {Type: "string", Format: "textarea", MaxLength: ptr(500)},
			"guardian": {
				Type: "object",
				Properties: map[string]openapi.Schema{
					"phone": {Type: "string"},
				},
			},
		},
	}
}

func TestToObject(t *testing.T) {
	obj, err := openapi.ToObject(studentInput())
	if err != nil {
		t.Fatalf("to object: %v", err)
	}

	names := make([]string, 0, len(obj.Fields))
	for _, field := range obj.Fields {
		names = append(names, field.Name)
	}
	want := []string{"fname", "email", "grade", "active", "guardian", "notes", "track"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	fname, _ := obj.Field("fname")
	str, ok := fname.(*schema.String)
	if !ok {
		t.Fatalf("expected required fname to stay unwrapped, got %T", fname)
	}
	if diff := cmp.Diff(schema.Meta{Label: "First Name", Placeholder: "Blaise", Required: true}, str.Meta); diff != "" {
		t.Fatalf("fname meta mismatch (-want +got):\n%s", diff)
	}

	email, _ := obj.Field("email")
	if email.(*schema.String).Format != "email" {
		t.Fatalf("expected email format")
	}

	grade, _ := obj.Field("grade")
	num := grade.(*schema.Number)
	if !num.Integer || *num.Min != 1 || *num.Max != 12 {
		t.Fatalf("unexpected grade node %+v", num)
	}

	track, _ := obj.Field("track")
	opt, ok := track.(*schema.Optional)
	if !ok {
		t.Fatalf("expected optional track, got %T", track)
	}
	wantChoices := []schema.Choice{{Value: "sci", Label: "Science"}, {Value: "hum"}}
	if diff := cmp.Diff(wantChoices, opt.Of.(*schema.Enum).Choices); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	active, _ := obj.Field("active")
	if !schema.Unwrap(active).(*schema.Boolean).Default {
		t.Fatalf("expected boolean default to carry over")
	}

	notes, _ := obj.Field("notes")
	if text := schema.Unwrap(notes).(*schema.String); !text.Multiline || *text.MaxLength != 500 {
		t.Fatalf("expected multiline notes with max length, got %+v", text)
	}

	guardian, _ := obj.Field("guardian")
	if _, ok := guardian.(*schema.Object); !ok {
		t.Fatalf("expected nested object, got %T", guardian)
	}
}

func TestToObject_Unsupported(t *testing.T) {
	s := studentInput()
	s.Properties["tags"] = openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	s.Properties["guardian"] = openapi.Schema{
		Type:       "object",
		Properties: map[string]openapi.Schema{"self": {Ref: "#/components/schemas/Guardian"}},
	}

	_, err := openapi.ToObject(s)
	var unsupported *openapi.UnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedError, got %v", err)
	}
	msg := err.Error()
	for _, path := range []string{"tags", "guardian.self"} {
		if !strings.Contains(msg, path) {
			t.Fatalf("expected %q in %q", path, msg)
		}
	}

	if _, err := openapi.ToObject(openapi.Schema{Type: "string"}); err == nil {
		t.Fatalf("expected scalar root to be rejected")
	}
}

func TestForms(t *testing.T) {
	ops := map[string]openapi.Operation{
		"createStudent": {ID: "createStudent", Method: "post", Path: "/students", Summary: "Invite Student", RequestBody: studentInput()},
		"listStudents":  {ID: "listStudents", Method: "get", Path: "/students"},
		"uploadTags": {ID: "uploadTags", Method: "put", Path: "/tags", RequestBody: openapi.Schema{
			Type:       "object",
			Properties: map[string]openapi.Schema{"tags": {Type: "array"}},
		}},
		"updateStudent": {ID: "updateStudent", Method: "patch", Path: "/students/{id}", RequestBody: openapi.Schema{
			Type:       "object",
			Properties: map[string]openapi.Schema{"email": {Type: "string"}},
		}},
	}

	forms, err := openapi.Forms(ops)
	if err == nil || !strings.Contains(err.Error(), "uploadTags") {
		t.Fatalf("expected joined error naming uploadTags, got %v", err)
	}
	if len(forms) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(forms))
	}
	if forms[0].ID != "createStudent" || forms[0].Title != "Invite Student" || forms[0].Source != "POST /students" {
		t.Fatalf("unexpected first form %+v", forms[0])
	}
	if forms[1].ID != "updateStudent" || forms[1].Title != schema.Humanize("updateStudent") {
		t.Fatalf("unexpected second form %+v", forms[1])
	}
	if forms[0].Root.Meta.Label != "Invite Student" {
		t.Fatalf("expected root label to follow the title")
	}
}

func TestComponentForms(t *testing.T) {
	forms, err := openapi.ComponentForms(map[string]openapi.Schema{
		"StudentInput": studentInput(),
		"Grade":        {Type: "integer"},
	})
	if err != nil {
		t.Fatalf("component forms: %v", err)
	}
	if len(forms) != 1 || forms[0].ID != "StudentInput" || forms[0].Source != "#/components/schemas/StudentInput" {
		t.Fatalf("unexpected component forms %+v", forms)
	}
}
