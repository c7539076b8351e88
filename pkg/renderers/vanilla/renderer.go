package vanilla

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/page"
	"github.com/goliatone/go-adminkit/pkg/render"
	rendertemplate "github.com/goliatone/go-adminkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-adminkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-adminkit/pkg/table"
)

// ThemeStylesheetAsset is the theme asset key emitted as a page stylesheet.
const ThemeStylesheetAsset = "stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	theme            *theme.RendererConfig
	overrides        map[string]string
	componentConfig  map[string]map[string]any
	stylesheets      []string
	logger           zerolog.Logger
}

// WithTemplatesFS layers an alternate template bundle over the built-in one.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithRegistry replaces the default component registry.
func WithRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithTheme applies a resolved theme: partial overrides, CSS variables and
// the theme stylesheet.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithComponentOverride draws the field at path with component instead of
// the one its control kind maps to.
func WithComponentOverride(path, component string) Option {
	return func(cfg *config) {
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]string)
		}
		cfg.overrides[strings.TrimSpace(path)] = strings.TrimSpace(component)
	}
}

// WithComponentConfig passes settings to a component's template as `config`.
func WithComponentConfig(component string, settings map[string]any) Option {
	return func(cfg *config) {
		if cfg.componentConfig == nil {
			cfg.componentConfig = make(map[string]map[string]any)
		}
		cfg.componentConfig[strings.TrimSpace(component)] = settings
	}
}

// WithStylesheet adds a stylesheet link to every page.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		if href = strings.TrimSpace(href); href != "" {
			cfg.stylesheets = append(cfg.stylesheets, href)
		}
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Renderer turns tables, forms, modals and layouts into HTML. It holds no
// per-request state and is safe for concurrent use.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	registry    *components.Registry
	theme       *theme.RendererConfig
	overrides   map[string]string
	config      map[string]map[string]any
	stylesheets []string
	logger      zerolog.Logger
}

// Fragment is rendered markup plus the assets it needs on the page.
type Fragment struct {
	HTML        string
	Stylesheets []string
	Scripts     []components.Script
}

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOpts := []gotemplate.Option{}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS))
		}
		engineOpts = append(engineOpts,
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		)
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{
		templates:   templates,
		registry:    registry,
		theme:       cfg.theme,
		overrides:   cloneStringMap(cfg.overrides),
		config:      cfg.componentConfig,
		stylesheets: slices.Clone(cfg.stylesheets),
		logger:      cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) partials() map[string]string {
	if r.theme == nil {
		return nil
	}
	return r.theme.Partials
}

func (r *Renderer) partial(key string) string {
	return render.Partial(r.theme, key)
}

func (r *Renderer) newComponents() *componentRenderer {
	return newComponentRenderer(r.templates, r.registry, r.overrides, r.partials(), r.config)
}

// RenderControl renders one control, field wrapper included.
func (r *Renderer) RenderControl(control form.Control) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	return r.newComponents().render(control)
}

// RenderForm renders f with its submit and cancel actions.
func (r *Renderer) RenderForm(f form.Form) (Fragment, error) {
	return r.renderForm(f, true)
}

func (r *Renderer) renderForm(f form.Form, actions bool) (Fragment, error) {
	if r.templates == nil {
		return Fragment{}, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	comp := r.newComponents()
	fields := make([]string, 0, len(f.Fields))
	for _, control := range f.Fields {
		html, err := comp.render(control)
		if err != nil {
			return Fragment{}, fmt.Errorf("vanilla renderer: %w", err)
		}
		fields = append(fields, html)
	}

	out, err := r.templates.RenderTemplate(r.partial("forms.form"), map[string]any{
		"form":    f,
		"fields":  fields,
		"actions": actions,
	})
	if err != nil {
		return Fragment{}, fmt.Errorf("vanilla renderer: render form %q: %w", f.ID, err)
	}

	styles, scripts := comp.assets()
	r.logger.Debug().Str("form", f.ID).Strs("components", comp.usedComponents()).Msg("vanilla: rendered form")
	return Fragment{HTML: out, Stylesheets: styles, Scripts: scripts}, nil
}

// RenderModal renders the modal and its form. The form's own action row is
// replaced by the modal footer.
func (r *Renderer) RenderModal(modal page.Modal) (Fragment, error) {
	body, err := r.renderForm(modal.Form, false)
	if err != nil {
		return Fragment{}, err
	}
	out, err := r.templates.RenderTemplate(r.partial("page.modal"), map[string]any{
		"modal": modal,
		"body":  body.HTML,
	})
	if err != nil {
		return Fragment{}, fmt.Errorf("vanilla renderer: render modal %q: %w", modal.ID, err)
	}
	body.HTML = out
	return body, nil
}

// RenderTable renders a table view.
func (r *Renderer) RenderTable(view TableView) (Fragment, error) {
	if r.templates == nil {
		return Fragment{}, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	out, err := r.templates.RenderTemplate(r.partial("tables.table"), map[string]any{
		"table": view,
	})
	if err != nil {
		return Fragment{}, fmt.Errorf("vanilla renderer: render table %q: %w", view.ID, err)
	}
	return Fragment{HTML: out}, nil
}

// RenderTable projects m through NewTableView and renders it.
func RenderTable[T any](r *Renderer, m *table.Model[T], opts TableOptions) (Fragment, error) {
	return r.RenderTable(NewTableView(m, opts))
}

// RenderPage renders a full document: the layout chrome around fragments,
// with the union of their assets and the theme's CSS variables.
func (r *Renderer) RenderPage(layout page.Layout, fragments ...Fragment) (string, error) {
	if r.templates == nil {
		return "", fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	stylesheets := slices.Clone(r.stylesheets)
	var (
		scripts []components.Script
		body    strings.Builder
	)
	if r.theme != nil && r.theme.AssetURL != nil {
		if href := r.theme.AssetURL(ThemeStylesheetAsset); href != "" {
			stylesheets = append(stylesheets, href)
		}
	}
	for _, fragment := range fragments {
		body.WriteString(fragment.HTML)
		stylesheets = append(stylesheets, fragment.Stylesheets...)
		scripts = append(scripts, fragment.Scripts...)
	}

	data := map[string]any{
		"layout":      layout,
		"tabs":        layout.Links(),
		"body":        body.String(),
		"stylesheets": components.UniqueStylesheets(stylesheets),
		"scripts":     components.UniqueScripts(scripts),
	}
	if r.theme != nil {
		data["theme"] = r.theme.Theme
		data["variant"] = r.theme.Variant
		data["css_vars"] = render.CSSVarsStyle(r.theme.CSSVars)
	}

	out, err := r.templates.RenderTemplate(r.partial("page.layout"), data)
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render layout: %w", err)
	}
	return out, nil
}
