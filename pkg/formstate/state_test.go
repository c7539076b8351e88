package formstate_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/formstate"
)

func TestFromValues_NestsDottedKeys(t *testing.T) {
	state := formstate.FromValues(url.Values{
		"fname":          {"Ada"},
		"guardian.phone": {"555"},
		"grade":          {"3", "4"},
		"":               {"dropped"},
	})

	want := map[string]any{
		"fname":    "Ada",
		"grade":    "4",
		"guardian": map[string]any{"phone": "555"},
	}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !state.Submitted() {
		t.Fatalf("expected submitted state")
	}
}

func TestState_SetRejectsScalarParent(t *testing.T) {
	state := formstate.New(map[string]any{"fname": "Ada"})
	if err := state.Set("fname.first", "x"); err == nil {
		t.Fatalf("expected error when nesting under a scalar")
	}
}

func TestBind(t *testing.T) {
	state := formstate.New(map[string]any{"active": "on", "grade": 4.0})
	state.AddError("grade", "Must be at most 3")
	state.AddError("grade", "Must be at most 3")

	grade := state.Bind("grade")
	if grade.Text() != "4" || !grade.Invalid() {
		t.Fatalf("unexpected grade binding: %+v", grade)
	}
	if diff := cmp.Diff([]string{"Must be at most 3"}, grade.Errors); diff != "" {
		t.Fatalf("errors should be deduplicated (-want +got):\n%s", diff)
	}

	if !state.Bind("active").Checked() {
		t.Fatalf("checkbox value \"on\" should be checked")
	}

	missing := state.Bind("missing")
	if missing.Name != "missing" || missing.Value != nil || missing.Invalid() {
		t.Fatalf("unexpected empty binding: %+v", missing)
	}

	var nilState *formstate.State
	if nilState.Bind("x").Name != "x" {
		t.Fatalf("nil state should still bind the name")
	}
}

func TestAddError_FormLevel(t *testing.T) {
	state := formstate.New(nil)
	state.AddError("", "Server unavailable")
	state.AddError(" ", "Server unavailable")
	if diff := cmp.Diff([]string{"Server unavailable"}, state.FormErrors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if state.Valid() {
		t.Fatalf("state with form errors should be invalid")
	}
}
