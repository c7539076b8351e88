package demo

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/internal/config"
	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/schema"
	"github.com/goliatone/go-adminkit/pkg/testsupport"
)

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type harness struct {
	t      *testing.T
	server *httptest.Server
	client *http.Client
	store  *Store
}

func newHarness(t *testing.T, downloads bool, forms *schema.Store) *harness {
	t.Helper()
	renderer, err := NewRenderer(config.Config{Theme: "default"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	store := NewStore(SeedStudents(time.Now())...)
	srv, err := NewServer(Options{
		Store:     store,
		Renderer:  renderer,
		Forms:     forms,
		Downloads: downloads,
		Logger:    zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &harness{t: t, server: ts, client: client, store: store}
}

func (h *harness) get(path string) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.Get(h.server.URL + path)
	if err != nil {
		h.t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(h.t, resp)
}

func (h *harness) post(path string, values url.Values) (*http.Response, string) {
	h.t.Helper()
	resp, err := h.client.PostForm(h.server.URL+path, values)
	if err != nil {
		h.t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(h.t, resp)
}

// token loads page and returns the CSRF token embedded in its form.
func (h *harness) token(page string) string {
	h.t.Helper()
	_, body := h.get(page)
	match := csrfPattern.FindStringSubmatch(body)
	if match == nil {
		h.t.Fatalf("no csrf token in %s", page)
	}
	return match[1]
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func studentValues(token string) url.Values {
	return url.Values{
		"csrf_token": {token},
		"fname":      {"Emmy"},
		"lname":      {"Noether"},
		"email":      {"emmy@example.com"},
		"grade":      {"12"},
		"track":      {"sci"},
		"newsletter": {"on"},
	}
}

func TestStudentsPage(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, body := h.get("/admin/students")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	testsupport.AssertContains(t, body,
		"Ada Lovelace",
		"4 students",
		`aria-current="page">Students</a>`,
		`href="/admin/students/export.csv"`,
		`<dialog id="add-student-modal" aria-labelledby="add-student-modal-title">`,
		`href="/admin/students?modal=add"`,
		`data-theme="default"`,
	)
	testsupport.AssertNotContains(t, body, "ada@example.com")
}

func TestStudentsPage_SortQuery(t *testing.T) {
	h := newHarness(t, true, nil)

	_, body := h.get("/admin/students?sort=score:desc")
	testsupport.AssertOrder(t, body, "Ada Lovelace", "Mary Somerville", "Blaise Pascal", "Alan Turing")
}

func TestStudentsPage_ModalParam(t *testing.T) {
	h := newHarness(t, true, nil)

	_, body := h.get("/admin/students?modal=add")
	if !strings.Contains(body, `<dialog id="add-student-modal" aria-labelledby="add-student-modal-title" open>`) {
		t.Fatalf("modal not open")
	}
	if !strings.Contains(body, `<a href="/admin/students">Cancel</a>`) {
		t.Fatalf("modal cancel link missing")
	}
}

func TestCreateStudent(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, _ := h.post("/admin/students", studentValues(h.token("/admin/students")))
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin/students" {
		t.Fatalf("location = %q", loc)
	}

	students := h.store.List()
	if len(students) != 5 {
		t.Fatalf("students = %d", len(students))
	}
	added := students[4]
	if added.Name() != "Emmy Noether" || added.Grade != 12 || added.Track != "sci" || !added.Newsletter {
		t.Fatalf("unexpected student %+v", added)
	}
	if added.ID == "" {
		t.Fatalf("student id not assigned")
	}
}

func TestCreateStudent_Invalid(t *testing.T) {
	h := newHarness(t, true, nil)

	values := studentValues(h.token("/admin/students"))
	values.Set("email", "nope")
	values.Del("lname")

	resp, body := h.post("/admin/students", values)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	testsupport.AssertContains(t, body,
		formstate.MsgInvalidEmail,
		formstate.MsgRequired,
		`value="nope"`,
		`aria-labelledby="add-student-modal-title" open>`,
	)
	if got := len(h.store.List()); got != 4 {
		t.Fatalf("students = %d", got)
	}
}

func TestCreateStudent_DuplicateEmail(t *testing.T) {
	h := newHarness(t, true, nil)

	values := studentValues(h.token("/admin/students"))
	values.Set("email", "ADA@example.com")

	resp, body := h.post("/admin/students", values)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, MsgDuplicateEmail) {
		t.Fatalf("duplicate email message missing")
	}
}

func TestCreateStudent_MissingCSRF(t *testing.T) {
	h := newHarness(t, true, nil)
	h.token("/admin/students")

	values := studentValues("")
	values.Del("csrf_token")
	resp, _ := h.post("/admin/students", values)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestExportStudents(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, body := h.get("/admin/students/export.csv?sort=score:desc&hide=name")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "attachment; filename=students.csv" {
		t.Fatalf("content disposition = %q", cd)
	}
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if lines[0] != "id,name,email,grade,score,track,joined" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("lines = %d", len(lines))
	}
	// export keeps insertion order regardless of the view's sort
	if !strings.Contains(lines[1], "Blaise Pascal") {
		t.Fatalf("first record = %q", lines[1])
	}
}

func TestExportStudents_Disabled(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, _ := h.get("/admin/students/export.csv")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	_, body := h.get("/admin/students")
	if !strings.Contains(body, `class="table-export" disabled`) {
		t.Fatalf("export placeholder missing")
	}
	if strings.Contains(body, "export.csv") {
		t.Fatalf("disabled export still links the download")
	}
}

func TestInvite(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, body := h.get("/admin/invite")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `aria-current="page">Invite</a>`) {
		t.Fatalf("invite tab not active")
	}

	token := csrfPattern.FindStringSubmatch(body)[1]
	resp, body = h.post("/admin/invite", url.Values{"csrf_token": {token}, "email": {"bad"}, "role": {"student"}})
	if resp.StatusCode != http.StatusUnprocessableEntity || !strings.Contains(body, formstate.MsgInvalidEmail) {
		t.Fatalf("invalid invite: status = %d", resp.StatusCode)
	}

	resp, body = h.post("/admin/invite", url.Values{"csrf_token": {token}, "email": {"grace@example.com"}, "role": {"teacher"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Invitation sent to grace@example.com") {
		t.Fatalf("notice missing")
	}
}

func TestFormsTab(t *testing.T) {
	survey := schema.NewObject(schema.Meta{Label: "Survey"},
		schema.Prop("rating", &schema.Number{Meta: schema.Meta{Label: "Rating", Required: true}, Integer: true}),
	)
	forms, err := schema.NewStore(schema.Form{ID: "survey", Title: "Course Survey", Root: survey})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	h := newHarness(t, true, forms)

	_, body := h.get("/admin/forms")
	if !strings.Contains(body, `<a href="/admin/forms/survey">Course Survey</a>`) {
		t.Fatalf("form list missing survey link")
	}

	resp, body := h.get("/admin/forms/survey")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `id="form-forms-survey"`) {
		t.Fatalf("survey form not rendered: status = %d", resp.StatusCode)
	}
	token := csrfPattern.FindStringSubmatch(body)[1]

	resp, body = h.post("/admin/forms/survey", url.Values{"csrf_token": {token}, "rating": {"5"}})
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Submission is valid") {
		t.Fatalf("valid submission: status = %d", resp.StatusCode)
	}

	resp, _ = h.get("/admin/forms/missing")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing form status = %d", resp.StatusCode)
	}
}

func TestFormsTab_AbsentWithoutForms(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, body := h.get("/admin/forms")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	_, body = h.get("/admin/students")
	if strings.Contains(body, ">Forms</a>") {
		t.Fatalf("forms tab rendered without forms")
	}
}

func TestRootRedirect(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, _ := h.get("/")
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/admin/students" {
		t.Fatalf("redirect = %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}
