package demo

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gosimple/slug"
	"github.com/justinas/nosurf"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/internal/logging"
	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/page"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-adminkit/pkg/schema"
	"github.com/goliatone/go-adminkit/pkg/table"
)

const (
	// ModalParam opens the add-student modal when set to ModalAdd.
	ModalParam = "modal"
	ModalAdd   = "add"

	MsgDuplicateEmail = "Email already registered"
)

// Options configures a Server.
type Options struct {
	Store    *Store
	Renderer *vanilla.Renderer
	// Forms are extra schemas previewed under the Forms tab.
	Forms *schema.Store
	// Downloads enables the CSV export endpoint and button.
	Downloads  bool
	CSRFSecure bool
	Logger     zerolog.Logger
}

// Server is the students admin.
type Server struct {
	store      *Store
	renderer   *vanilla.Renderer
	forms      *form.Renderer
	extra      *schema.Store
	layout     page.Layout
	columns    []table.Column[Student]
	addForm    *schema.Object
	inviteForm *schema.Object
	downloads  bool
	csrfSecure bool
	logger     zerolog.Logger
}

// NewServer validates opts and returns a server.
func NewServer(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("demo: store is required")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("demo: renderer is required")
	}

	tabs := []page.Tab{{Name: "Students", Route: "students"}, {Name: "Invite", Route: "invite"}}
	if opts.Forms != nil && !opts.Forms.Empty() {
		tabs = append(tabs, page.Tab{Name: "Forms", Route: "forms"})
	}

	return &Server{
		store:      opts.Store,
		renderer:   opts.Renderer,
		forms:      form.New(form.WithLogger(opts.Logger)),
		extra:      opts.Forms,
		layout:     page.NewLayout("Admin", "/admin", tabs...),
		columns:    Columns(),
		addForm:    AddStudentForm(),
		inviteForm: InviteForm(),
		downloads:  opts.Downloads,
		csrfSecure: opts.CSRFSecure,
		logger:     opts.Logger,
	}, nil
}

// Handler returns the router with request ids, panic recovery, request
// logging, client capabilities and CSRF protection applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s.logger))
	r.Use(s.capabilities)
	r.Use(s.csrf)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.layout.Href("students"), http.StatusFound)
	})
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.layout.Href("students"), http.StatusFound)
		})
		r.Get("/students", s.listStudents)
		r.Post("/students", s.createStudent)
		r.Get("/students/export.csv", s.exportStudents)
		r.Get("/invite", s.showInvite)
		r.Post("/invite", s.sendInvite)
		r.Get("/forms", s.listForms)
		r.Get("/forms/{id}", s.showForm)
		r.Post("/forms/{id}", s.submitForm)
	})
	return r
}

func (s *Server) capabilities(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := export.WithCapabilities(r.Context(), export.Capabilities{FileDownload: s.downloads})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) csrf(next http.Handler) http.Handler {
	h := nosurf.New(next)
	h.SetBaseCookie(http.Cookie{
		Path:     "/",
		HttpOnly: true,
		Secure:   s.csrfSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Ctx(r.Context()).Warn().Err(nosurf.Reason(r)).Msg("csrf check failed")
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}))
	return h
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	s.renderStudents(w, r, nil, nil, http.StatusOK)
}

// renderStudents draws the roster page. A non-nil state comes from a failed
// submission and keeps the modal open with its values and errors.
func (s *Server) renderStudents(w http.ResponseWriter, r *http.Request, state *formstate.State, submitErr error, status int) {
	logger := logging.Ctx(r.Context())
	layout := s.layout.Resolve(r.URL.Path)

	model, err := s.studentsModel(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	action := export.NewAction(export.FromContext(r.Context()), "students", layout.Href("students/export.csv"))
	tbl, err := vanilla.RenderTable(s.renderer, model, vanilla.TableOptions{
		ID:      "students",
		Caption: fmt.Sprintf("%d students", model.Len()),
		Path:    layout.Href("students"),
		Query:   r.URL.Query(),
		Export:  action,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	open := r.URL.Query().Get(ModalParam) == ModalAdd || state != nil
	if state == nil {
		state = formstate.New(nil)
	}
	f, err := s.forms.RenderForm(s.addForm, state, form.FormOptions{
		ID:          "add-student",
		Action:      layout.Href("students"),
		Method:      http.MethodPost,
		Hidden:      []form.HiddenField{form.CSRFToken(nosurf.FormFieldName, nosurf.Token(r))},
		SubmitLabel: "Add Student",
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	modal, err := s.renderer.RenderModal(page.FormModal(f, page.ModalOptions{
		Open:      open,
		CloseHref: layout.Href("students"),
		Err:       submitErr,
	}))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	query := r.URL.Query()
	query.Set(ModalParam, ModalAdd)
	addHref := layout.Href("students") + "?" + query.Encode()
	actions := vanilla.Fragment{HTML: fmt.Sprintf(`<p class="page-actions"><a href="%s">Add Student</a></p>`, html.EscapeString(addHref))}

	logger.Debug().Int("rows", model.Len()).Bool("modal", open).Msg("render students")
	s.writePage(w, r, status, layout, actions, tbl, modal)
}

func (s *Server) studentsModel(r *http.Request) (*table.Model[Student], error) {
	state, err := table.DecodeQuery(r.URL.RawQuery, columnKeys)
	if err != nil {
		// a mangled query falls back to the default view
		logging.Ctx(r.Context()).Debug().Err(err).Msg("ignoring table query")
		state = table.State{}
	}
	return table.Build(s.store.List(), s.columns, state, table.WithLogger(*logging.Ctx(r.Context())))
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	values, ok := s.postForm(w, r)
	if !ok {
		return
	}
	state := formstate.FromValues(values)
	clean, err := formstate.Validate(s.addForm, state)
	if err != nil {
		s.renderStudents(w, r, state, err, http.StatusUnprocessableEntity)
		return
	}

	var in NewStudent
	if err := formstate.Decode(clean, &in); err != nil {
		s.fail(w, r, err)
		return
	}
	student, err := s.store.Add(in)
	if errors.Is(err, ErrDuplicateEmail) {
		state.ApplyErrors(formstate.MapErrorPayload(s.addForm, map[string][]string{
			"/body/email": {MsgDuplicateEmail},
		}))
		s.renderStudents(w, r, state, &formstate.ValidationError{Fields: state.Errors(), Form: state.FormErrors()}, http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("student", student.ID).Msg("student added")
	http.Redirect(w, r, s.layout.Href("students"), http.StatusSeeOther)
}

func (s *Server) exportStudents(w http.ResponseWriter, r *http.Request) {
	if !export.FromContext(r.Context()).FileDownload {
		http.NotFound(w, r)
		return
	}
	model, err := s.studentsModel(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := export.ServeModel(w, "students", model); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("export students")
	}
}

func (s *Server) showInvite(w http.ResponseWriter, r *http.Request) {
	s.renderStandalone(w, r, s.inviteForm, "invite", formstate.New(nil), "", http.StatusOK)
}

func (s *Server) sendInvite(w http.ResponseWriter, r *http.Request) {
	values, ok := s.postForm(w, r)
	if !ok {
		return
	}
	state := formstate.FromValues(values)
	clean, err := formstate.Validate(s.inviteForm, state)
	if err != nil {
		s.renderStandalone(w, r, s.inviteForm, "invite", state, "", http.StatusUnprocessableEntity)
		return
	}
	email, _ := clean["email"].(string)
	logging.Ctx(r.Context()).Info().Str("email", email).Msg("invitation queued")
	s.renderStandalone(w, r, s.inviteForm, "invite", formstate.New(nil), "Invitation sent to "+email, http.StatusOK)
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	if s.extra == nil || s.extra.Empty() {
		http.NotFound(w, r)
		return
	}
	layout := s.layout.Resolve(r.URL.Path)
	var body strings.Builder
	body.WriteString(`<ul class="form-list">`)
	for _, id := range s.extra.IDs() {
		stored, _ := s.extra.Form(id)
		fmt.Fprintf(&body, `<li><a href="%s">%s</a></li>`,
			html.EscapeString(layout.Href("forms/"+url.PathEscape(id))),
			html.EscapeString(schema.LabelOr(stored.Title, id)))
	}
	body.WriteString(`</ul>`)
	s.writePage(w, r, http.StatusOK, layout, vanilla.Fragment{HTML: body.String()})
}

func (s *Server) showForm(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.extraForm(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.renderStandalone(w, r, obj, "forms/"+chi.URLParam(r, "id"), formstate.New(nil), "", http.StatusOK)
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.extraForm(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	values, ok := s.postForm(w, r)
	if !ok {
		return
	}
	route := "forms/" + chi.URLParam(r, "id")
	state := formstate.FromValues(values)
	if _, err := formstate.Validate(obj, state); err != nil {
		s.renderStandalone(w, r, obj, route, state, "", http.StatusUnprocessableEntity)
		return
	}
	s.renderStandalone(w, r, obj, route, state, "Submission is valid", http.StatusOK)
}

func (s *Server) extraForm(r *http.Request) (*schema.Object, bool) {
	if s.extra == nil {
		return nil, false
	}
	stored, ok := s.extra.Form(chi.URLParam(r, "id"))
	if !ok || stored.Root == nil {
		return nil, false
	}
	return stored.Root, true
}

func (s *Server) renderStandalone(w http.ResponseWriter, r *http.Request, obj *schema.Object, route string, state *formstate.State, notice string, status int) {
	layout := s.layout.Resolve(r.URL.Path)
	f, err := s.forms.RenderForm(obj, state, form.FormOptions{
		ID:          slugID(route),
		Action:      layout.Href(route),
		Method:      http.MethodPost,
		Hidden:      []form.HiddenField{form.CSRFToken(nosurf.FormFieldName, nosurf.Token(r))},
		CancelLabel: "Reset",
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	fragment, err := s.renderer.RenderForm(f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var fragments []vanilla.Fragment
	if notice != "" {
		fragments = append(fragments, vanilla.Fragment{
			HTML: fmt.Sprintf(`<div class="notice" role="status">%s</div>`, html.EscapeString(notice)),
		})
	}
	s.writePage(w, r, status, layout, append(fragments, fragment)...)
}

// postForm parses the body and returns the values without the CSRF token.
func (s *Server) postForm(w http.ResponseWriter, r *http.Request) (url.Values, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return nil, false
	}
	values := make(url.Values, len(r.PostForm))
	for key, entries := range r.PostForm {
		if key == nosurf.FormFieldName {
			continue
		}
		values[key] = entries
	}
	return values, true
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, layout page.Layout, fragments ...vanilla.Fragment) {
	out, err := s.renderer.RenderPage(layout, fragments...)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(status)
	_, _ = io.WriteString(w, out)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Msg("render failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func slugID(route string) string {
	return "form-" + slug.Make(route)
}
