package schema_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

func TestUnwrap_StripsEveryWrapper(t *testing.T) {
	inner := &schema.Boolean{Meta: schema.Meta{Label: "Active"}}
	wrapped := schema.MakeOptional(schema.Refine(schema.MakeOptional(inner), "check", nil))

	if got := schema.Unwrap(wrapped); got != inner {
		t.Fatalf("expected innermost boolean, got %#v", got)
	}
	if got := schema.Unwrap(inner); got != inner {
		t.Fatalf("unwrapping a plain node should return it unchanged")
	}
	if got := schema.Unwrap(&schema.Optional{}); got != nil {
		t.Fatalf("expected nil for empty wrapper, got %#v", got)
	}
}

func TestWrappersExposeInnerMeta(t *testing.T) {
	inner := &schema.String{Meta: schema.Meta{Label: "Email", Placeholder: "you@example.com", Required: true}}

	effects := schema.Refine(inner, "nonblank", nil)
	if diff := cmp.Diff(inner.Info(), effects.Info()); diff != "" {
		t.Fatalf("effects meta mismatch (-want +got):\n%s", diff)
	}

	optional := schema.MakeOptional(inner)
	want := inner.Info()
	want.Required = false
	if diff := cmp.Diff(want, optional.Info()); diff != "" {
		t.Fatalf("optional meta mismatch (-want +got):\n%s", diff)
	}
}

func TestIsRequired(t *testing.T) {
	required := &schema.Number{Meta: schema.Meta{Required: true}}

	cases := map[string]struct {
		node schema.Node
		want bool
	}{
		"plain required":        {node: required, want: true},
		"plain optional":        {node: &schema.Number{}, want: false},
		"effects keeps flag":    {node: schema.Refine(required, "x", nil), want: true},
		"optional wins":         {node: schema.MakeOptional(required), want: false},
		"effects over optional": {node: schema.Refine(schema.MakeOptional(required), "x", nil), want: false},
		"nil":                   {node: nil, want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := schema.IsRequired(tc.node); got != tc.want {
				t.Fatalf("IsRequired() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplyEffect(t *testing.T) {
	node := &schema.String{}

	trim, err := schema.ApplyEffect(node, "Trim")
	if err != nil {
		t.Fatalf("apply trim: %v", err)
	}
	if got := trim.Transform("  ada  "); got != "ada" {
		t.Fatalf("trim transform = %q", got)
	}

	nonblank, err := schema.ApplyEffect(node, "nonblank")
	if err != nil {
		t.Fatalf("apply nonblank: %v", err)
	}
	if err := nonblank.Refine("   "); !errors.Is(err, schema.ErrBlank) {
		t.Fatalf("expected ErrBlank, got %v", err)
	}
	if err := nonblank.Refine("x"); err != nil {
		t.Fatalf("unexpected refine error: %v", err)
	}

	if _, err := schema.ApplyEffect(node, "shout"); err == nil {
		t.Fatalf("expected unknown effect error")
	}
}

func TestObjectField(t *testing.T) {
	obj := schema.NewObject(schema.Meta{},
		schema.Prop("fname", &schema.String{}),
		schema.Prop("grade", &schema.Number{}),
	)

	if _, ok := obj.Field("grade"); !ok {
		t.Fatalf("expected grade field")
	}
	if _, ok := obj.Field("missing"); ok {
		t.Fatalf("unexpected field lookup hit")
	}
}

func TestKindsMatchBuiltins(t *testing.T) {
	nodes := []schema.Node{
		&schema.Boolean{},
		&schema.String{},
		&schema.Number{},
		&schema.Enum{},
		&schema.Effects{},
		&schema.Optional{},
		&schema.Object{},
	}
	var got []schema.Kind
	for _, node := range nodes {
		got = append(got, node.Kind())
	}
	if diff := cmp.Diff(schema.Kinds(), got); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"fname":      "Fname",
		"createdAt":  "Created At",
		"user_id":    "User ID",
		"export-csv": "Export CSV",
		"grade2":     "Grade 2",
		"  ":         "",
	}
	for in, want := range cases {
		if got := schema.Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
	if got := schema.LabelOr("First name", "fname"); got != "First name" {
		t.Errorf("LabelOr should keep explicit label, got %q", got)
	}
}
