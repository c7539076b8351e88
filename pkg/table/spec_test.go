package table_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-adminkit/pkg/table"
)

const studentsSpec = `
name: Students
columns:
  - key: id
    header: ID
    hidden: true
  - key: name
  - key: city
    field: address.city
  - key: points
    format: comma
    disableSort: true
sort:
  - key: name
    dir: desc
`

func TestColumnsFromSpecs(t *testing.T) {
	spec, err := table.ParseSpec([]byte(studentsSpec))
	if err != nil {
		t.Fatalf("parse spec: %v", err)
	}
	columns, err := table.ColumnsFromSpecs(spec.Columns)
	if err != nil {
		t.Fatalf("columns: %v", err)
	}

	rows := []table.MapRow{
		{"id": 1, "name": "Ada", "points": 12000, "address": map[string]any{"city": "London"}},
		{"id": 2, "name": "Grace", "points": 900},
	}
	model, err := table.Build(rows, columns, spec.InitialState())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var labels []string
	for _, h := range model.Headers() {
		labels = append(labels, h.Label)
	}
	if diff := cmp.Diff([]string{"Name", "City", "Points"}, labels); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}

	var got [][]string
	for _, row := range model.Rows() {
		var line []string
		for _, cell := range row.Cells {
			line = append(line, cell.Text)
		}
		got = append(got, line)
	}
	want := [][]string{{"Grace", "", "900"}, {"Ada", "London", "12,000"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestColumnsFromSpecs_UnknownFormat(t *testing.T) {
	_, err := table.ColumnsFromSpecs([]table.ColumnSpec{{Key: "x", Format: "roman"}})
	if err == nil || !strings.Contains(err.Error(), `unknown format "roman"`) {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestParseSpec_NoColumns(t *testing.T) {
	if _, err := table.ParseSpec([]byte("name: empty\n")); err == nil {
		t.Fatalf("expected error for spec without columns")
	}
}
