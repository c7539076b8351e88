package export_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/table"
)

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"Students":         "students.csv",
		"Grade 10 Spring!": "grade-10-spring.csv",
		"   ":              "export.csv",
	}
	for in, want := range cases {
		if got := export.Filename(in); got != want {
			t.Errorf("Filename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewAction(t *testing.T) {
	disabled := export.NewAction(export.Capabilities{}, "Students", "/students.csv")
	want := export.Action{Label: "Download CSV", Filename: "students.csv", Disabled: true}
	if diff := cmp.Diff(want, disabled); diff != "" {
		t.Fatalf("placeholder mismatch (-want +got):\n%s", diff)
	}

	enabled := export.NewAction(export.Capabilities{FileDownload: true}, "Students", "/students.csv")
	if enabled.Disabled || enabled.Href != "/students.csv" {
		t.Fatalf("expected enabled action, got %+v", enabled)
	}

	noHref := export.NewAction(export.Capabilities{FileDownload: true}, "Students", "")
	if !noHref.Disabled {
		t.Fatalf("action without href should be disabled")
	}
}

func TestCapabilitiesContext(t *testing.T) {
	if export.FromContext(context.Background()).FileDownload {
		t.Fatalf("empty context should not allow downloads")
	}
	ctx := export.WithCapabilities(context.Background(), export.Capabilities{FileDownload: true})
	if !export.FromContext(ctx).FileDownload {
		t.Fatalf("expected capabilities from context")
	}
}

func TestServeModel(t *testing.T) {
	type row struct {
		Name  string
		Score int
	}
	columns := []table.Column[row]{
		{Key: "name", Accessor: table.Value(func(r row) string { return r.Name })},
		{Key: "score", Accessor: table.Value(func(r row) int { return r.Score }), Hidden: true},
	}
	model, err := table.Build([]row{{"A", 10}, {"B", 5}}, columns, table.State{
		Sort: table.SortState{{Key: "score", Dir: table.Ascending}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := export.ServeModel(rec, "Class Roster", model); err != nil {
		t.Fatalf("serve: %v", err)
	}

	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename=class-roster.csv` {
		t.Fatalf("content disposition = %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
	if diff := cmp.Diff("name,score\nA,10\nB,5\n", rec.Body.String()); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}
