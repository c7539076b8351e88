package formstate_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

func ptr[T any](v T) *T { return &v }

func addStudent() *schema.Object {
	trimmed, _ := schema.ApplyEffect(&schema.String{Meta: schema.Meta{Required: true}}, "trim")
	fname, _ := schema.ApplyEffect(trimmed, "nonblank")
	return schema.NewObject(schema.Meta{Label: "Add student"},
		schema.Prop("fname", fname),
		schema.Prop("email", &schema.String{Meta: schema.Meta{Required: true}, Format: "email"}),
		schema.Prop("grade", &schema.Number{Meta: schema.Meta{Required: true}, Integer: true, Min: ptr(1.0), Max: ptr(12.0)}),
		schema.Prop("house", schema.MakeOptional(&schema.Enum{Choices: []schema.Choice{{Value: "North"}, {Value: "South"}}})),
		schema.Prop("nickname", &schema.String{MaxLength: ptr(5)}),
		schema.Prop("consent", &schema.Boolean{}),
		schema.Prop("guardian", schema.NewObject(schema.Meta{},
			schema.Prop("phone", &schema.String{Meta: schema.Meta{Required: true}, Pattern: `^[0-9-]+$`}),
		)),
	)
}

func TestValidate_Success(t *testing.T) {
	state := formstate.FromValues(url.Values{
		"fname":          {"  Ada "},
		"email":          {"ada@example.com"},
		"grade":          {"7"},
		"consent":        {"on"},
		"guardian.phone": {"555-0100"},
	})

	values, err := formstate.Validate(addStudent(), state)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := map[string]any{
		"fname":    "Ada",
		"email":    "ada@example.com",
		"grade":    int64(7),
		"consent":  true,
		"guardian": map[string]any{"phone": "555-0100"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !state.Valid() {
		t.Fatalf("state should be valid: %v", state.Errors())
	}
}

func TestValidate_Failures(t *testing.T) {
	state := formstate.FromValues(url.Values{
		"fname":          {"   "},
		"email":          {"not-an-email"},
		"grade":          {"seven"},
		"house":          {"East"},
		"nickname":       {"Lovelace"},
		"guardian.phone": {"call me"},
	})

	_, err := formstate.Validate(addStudent(), state)
	if !errors.Is(err, formstate.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	var verr *formstate.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	want := map[string][]string{
		"fname":          {"Required"},
		"email":          {"Invalid email"},
		"grade":          {"Invalid number"},
		"house":          {"Must be one of: North, South"},
		"nickname":       {"Must be at most 5 characters"},
		"guardian.phone": {"Invalid format"},
	}
	if diff := cmp.Diff(want, verr.Fields); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Invalid number"}, state.Bind("grade").Errors); diff != "" {
		t.Fatalf("binding errors mismatch (-want +got):\n%s", diff)
	}
	if got := state.Bind("grade").Text(); got != "seven" {
		t.Fatalf("raw input should be kept for re-render, got %q", got)
	}
}

func TestValidate_NumberBounds(t *testing.T) {
	cases := map[string]string{
		"0":   "Must be at least 1",
		"13":  "Must be at most 12",
		"2.5": "Must be a whole number",
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			state := formstate.FromValues(url.Values{
				"fname": {"Ada"}, "email": {"a@b.co"}, "grade": {input}, "guardian.phone": {"1"},
			})
			_, err := formstate.Validate(addStudent(), state)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if diff := cmp.Diff([]string{want}, state.ErrorsFor("grade")); diff != "" {
				t.Fatalf("grade errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidate_RefineRunsAfterInner(t *testing.T) {
	calls := 0
	node := schema.Refine(&schema.Number{Meta: schema.Meta{Required: true}}, "even", func(v any) error {
		calls++
		if int(v.(float64))%2 != 0 {
			return errors.New("must be even")
		}
		return nil
	})
	obj := schema.NewObject(schema.Meta{}, schema.Prop("n", node))

	state := formstate.FromValues(url.Values{"n": {"x"}})
	if _, err := formstate.Validate(obj, state); err == nil || calls != 0 {
		t.Fatalf("refine should not run when the inner check fails (calls=%d)", calls)
	}

	state = formstate.FromValues(url.Values{"n": {"3"}})
	if _, err := formstate.Validate(obj, state); err == nil {
		t.Fatalf("expected refine failure")
	}
	if diff := cmp.Diff([]string{"Must be even"}, state.ErrorsFor("n")); diff != "" {
		t.Fatalf("refine message mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	type student struct {
		FirstName string `json:"fname"`
		Grade     int    `json:"grade"`
		Guardian  struct {
			Phone string `json:"phone"`
		} `json:"guardian"`
	}
	var out student
	err := formstate.Decode(map[string]any{
		"fname":    "Ada",
		"grade":    int64(7),
		"guardian": map[string]any{"phone": "555"},
	}, &out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.FirstName != "Ada" || out.Grade != 7 || out.Guardian.Phone != "555" {
		t.Fatalf("unexpected decode result: %+v", out)
	}
}
