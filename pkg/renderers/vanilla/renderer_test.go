package vanilla_test

import (
	"errors"
	"net/url"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/page"
	"github.com/goliatone/go-adminkit/pkg/render"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-adminkit/pkg/table"
	"github.com/goliatone/go-adminkit/pkg/testsupport"
)

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func studentTable(t *testing.T, state table.State) *table.Model[testsupport.Student] {
	t.Helper()
	model, err := table.Build(testsupport.Students(), testsupport.StudentColumns(), state)
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	return model
}

func TestRenderTable_SortedHeadersAndRows(t *testing.T) {
	model := studentTable(t, table.State{Sort: table.SortState{{Key: "score", Dir: table.Descending}}})

	out, err := vanilla.RenderTable(newRenderer(t), model, vanilla.TableOptions{
		ID:     "students",
		Path:   "/students",
		Query:  url.Values{"event": {"spring"}},
		Export: export.NewAction(export.Capabilities{FileDownload: true}, "Students", "/students/export.csv"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertContains(t, out.HTML,
		`<div class="data-table" id="students">`,
		`aria-sort="descending"`,
		vanilla.IndicatorDescending,
		`download="students.csv"`,
		`href="/students/export.csv"`,
		`event=spring`,
	)
	testsupport.AssertOrder(t, out.HTML, "Ada Lovelace", "Blaise Pascal", "Alan Turing")
	// email is hidden by default: no header, but still offered in the menu
	testsupport.AssertNotContains(t, out.HTML, `<th scope="col" data-key="email"`, "ada@example.com")
	testsupport.AssertContains(t, out.HTML, `aria-checked="false" data-key="email">Email</a>`)
}

func TestRenderTable_DisabledExportPlaceholder(t *testing.T) {
	model := studentTable(t, table.State{})
	out, err := vanilla.RenderTable(newRenderer(t), model, vanilla.TableOptions{
		Export: export.NewAction(export.Capabilities{}, "Students", "/students/export.csv"),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out.HTML, `disabled aria-disabled="true">Download CSV</button>`)
	testsupport.AssertNotContains(t, out.HTML, "/students/export.csv")
}

func TestRenderTable_EmptyData(t *testing.T) {
	model, err := table.Build(nil, testsupport.StudentColumns(), table.State{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out, err := vanilla.RenderTable(newRenderer(t), model, vanilla.TableOptions{EmptyText: "No students yet."})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out.HTML, `data-key="name"`, "No students yet.", "<tbody>")
	testsupport.AssertNotContains(t, out.HTML, "<tr data-index")
}

func TestNewTableView_Links(t *testing.T) {
	model := studentTable(t, table.State{})
	view := vanilla.NewTableView(model, vanilla.TableOptions{Path: "/students"})

	var score vanilla.HeaderView
	for _, header := range view.Headers {
		if header.Key == "score" {
			score = header
		}
	}
	if score.AriaSort != "none" || score.Indicator != "" {
		t.Fatalf("unexpected unsorted header: %+v", score)
	}

	link, err := url.Parse(score.Href)
	if err != nil {
		t.Fatalf("parse href: %v", err)
	}
	if link.Path != "/students" {
		t.Fatalf("unexpected path %q", link.Path)
	}
	state, err := table.DecodeQuery(link.RawQuery, []string{"id", "name", "email", "grade", "score"})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := state.Sort.Direction("score"); got != table.Ascending {
		t.Fatalf("expected the next click to sort ascending, got %q", got)
	}
	if !state.IsHidden("email") {
		t.Fatalf("expected the link to keep email hidden")
	}

	for _, column := range view.Columns {
		if column.Key == "email" && column.Visible {
			t.Fatalf("email should start hidden")
		}
	}
	if len(view.Rows) != 3 || view.Rows[0].Cells[1].Text != "Blaise Pascal" {
		t.Fatalf("unexpected rows: %+v", view.Rows)
	}
}

func TestRenderForm_BoundControls(t *testing.T) {
	state := formstate.FromValues(url.Values{
		"fname": {"Blaise"},
		"email": {"nope"},
		"grade": {"10"},
		"track": {"sci"},
	})
	_, _ = formstate.Validate(testsupport.StudentForm(), state)

	f, err := form.New().RenderForm(testsupport.StudentForm(), state, form.FormOptions{
		ID:         "add-student",
		Action:     "/students",
		Hidden:     []form.HiddenField{form.CSRFToken("csrf_token", "tok<en>")},
		CancelHref: "/students",
	})
	if err != nil {
		t.Fatalf("form: %v", err)
	}

	out, err := newRenderer(t).RenderForm(f)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	testsupport.AssertContains(t, out.HTML,
		`<form id="add-student" method="post" action="/students">`,
		`<input type="hidden" name="csrf_token" value="tok&lt;en&gt;">`,
		`<input type="email" id="field-email" name="email" value="nope"`,
		`aria-describedby="field-email-errors"`,
		`<li>Invalid email</li>`,
		`<li>Required</li>`,
		`<option value="sci" selected>Science</option>`,
		`<input type="number" id="field-grade" name="grade" value="10"`,
		`max="12" min="1" step="1"`,
		`<legend>Guardian</legend>`,
		`name="guardian.phone"`,
		`<input type="checkbox" id="field-newsletter" name="newsletter" value="true">`,
		`<button type="submit">Save</button>`,
		`<a href="/students">Cancel</a>`,
	)
	testsupport.AssertOrder(t, out.HTML, `name="fname"`, `name="lname"`, `name="email"`, `name="grade"`, `name="guardian.phone"`)
}

func TestRenderModal(t *testing.T) {
	f, err := form.New().RenderForm(testsupport.StudentForm(), nil, form.FormOptions{ID: "add-student", Loading: true})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	modal := page.FormModal(f, page.ModalOptions{CloseHref: "/students", Err: errors.New("email already invited")})

	out, err := newRenderer(t).RenderModal(modal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out.HTML,
		`<dialog id="add-student-modal" aria-labelledby="add-student-modal-title" open>`,
		`<h2 id="add-student-modal-title">Invite Student</h2>`,
		`role="alert">email already invited</div>`,
		`form="add-student" disabled aria-busy="true">Saving...</button>`,
		`<a href="/students">Cancel</a>`,
	)
	testsupport.AssertNotContains(t, out.HTML, `class="form-actions"`)
}

func TestRenderPage_ThemeAndTabs(t *testing.T) {
	themes := render.NewThemes("acme", "dark")
	if err := themes.Register(&theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"brand": "#0044cc"},
		Assets: theme.Assets{Prefix: "/static/acme", Files: map[string]string{"stylesheet": "admin.css"}},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"surface": "#111"}},
		},
	}); err != nil {
		t.Fatalf("register theme: %v", err)
	}
	cfg, err := render.ResolveTheme(themes, "", "", render.DefaultPartials())
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}

	layout := page.NewLayout("Spring Open", "/admin/acme/spring",
		page.Tab{Name: "Teams", Route: "teams"},
		page.Tab{Name: "Students", Route: "students"},
	).Resolve("/admin/acme/spring/students")

	out, err := newRenderer(t, vanilla.WithTheme(cfg), vanilla.WithStylesheet("/static/base.css")).
		RenderPage(layout, vanilla.Fragment{HTML: "<p>roster</p>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out,
		`<title>Spring Open</title>`,
		`<link rel="stylesheet" href="/static/base.css">`,
		`<link rel="stylesheet" href="/static/acme/admin.css">`,
		`data-theme="acme" data-variant="dark"`,
		`--brand: #0044cc; --surface: #111`,
		`href="/admin/acme/spring/students" aria-selected="true" aria-current="page">Students</a>`,
		`href="/admin/acme/spring/teams" aria-selected="false">Teams</a>`,
		`<p>roster</p>`,
	)
}

func TestRenderControl_ThemePartialOverride(t *testing.T) {
	overrides := fstest.MapFS{
		"themes/acme/input.tmpl": {Data: []byte(`<x-input name="{{ control.name }}">`)},
	}
	cfg := &theme.RendererConfig{Partials: map[string]string{"forms.input": "themes/acme/input"}}

	out, err := newRenderer(t, vanilla.WithTemplatesFS(overrides), vanilla.WithTheme(cfg)).
		RenderControl(form.Control{Kind: form.ControlText, Name: "nickname", ID: "field-nickname", Label: "Nickname"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertContains(t, out, `<x-input name="nickname">`, `<label for="field-nickname">Nickname</label>`)
}

func TestRenderControl_UnknownComponent(t *testing.T) {
	_, err := newRenderer(t).RenderControl(form.Control{Kind: "rating", Name: "stars"})
	if err == nil {
		t.Fatalf("expected error for unregistered component")
	}
}

func TestNewTableView_ReadsEachCellOnce(t *testing.T) {
	reads := 0
	columns := testsupport.StudentColumns()
	for i := range columns {
		if columns[i].Key == "score" {
			read := columns[i].Accessor
			columns[i].Accessor = func(s testsupport.Student) any {
				reads++
				return read(s)
			}
		}
	}
	rows := testsupport.Students()
	model, err := table.Build(rows, columns, table.State{Sort: table.SortState{{Key: "score", Dir: table.Ascending}}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	reads = 0
	view := vanilla.NewTableView(model, vanilla.TableOptions{Path: "/students"})
	if reads != len(rows) {
		t.Fatalf("expected %d score reads for one render, got %d", len(rows), reads)
	}
	for _, header := range view.Headers {
		if header.Key == "score" && header.Href != "/students?hide=email&sort=score%3Adesc" {
			t.Fatalf("unexpected score link %q", header.Href)
		}
	}
}
