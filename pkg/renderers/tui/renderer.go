package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

// NoneOption is the select entry that leaves an optional choice empty.
const NoneOption = "(none)"

// Renderer collects form values through terminal prompts. Controls come from
// the form renderer, so labels, defaults and choices match the HTML form, and
// answers go through the same validation as a web submission.
type Renderer struct {
	driver            PromptDriver
	forms             *form.Renderer
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            zerolog.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		maxAttempts:  DefaultMaxAttempts,
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.forms == nil {
		r.forms = form.New(form.WithLogger(r.logger))
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render collects values for obj and serializes them in the configured
// output format.
func (r *Renderer) Render(ctx context.Context, obj *schema.Object, prefill map[string]any) ([]byte, error) {
	values, err := r.Collect(ctx, obj, prefill)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return serialize(r.outputFormat, values)
}

// Collect prompts for every control of obj and validates the answers. Fields
// that fail are reported and prompted again, up to the attempt limit. The
// result holds the validated, typed values.
func (r *Renderer) Collect(ctx context.Context, obj *schema.Object, prefill map[string]any) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("tui: schema object is required")
	}

	answers := formstate.New(prefill)
	f, err := r.forms.RenderForm(obj, answers, form.FormOptions{})
	if err != nil {
		return nil, err
	}
	if f.Title != "" {
		if err := r.driver.Info(ctx, r.theme.SectionPrefix+f.Title); err != nil {
			return nil, err
		}
	}

	pending := f.Fields
	for attempt := 1; ; attempt++ {
		for _, control := range pending {
			if err := r.prompt(ctx, control, answers); err != nil {
				return nil, err
			}
		}

		// a fresh state keeps errors from earlier rounds out of this one
		check := formstate.New(answers.Values())
		values, err := formstate.Validate(obj, check)
		if err == nil {
			return values, nil
		}
		var invalid *formstate.ValidationError
		if !errors.As(err, &invalid) {
			return nil, err
		}

		r.logger.Debug().Int("attempt", attempt).Err(err).Msg("tui: invalid answers")
		if err := r.report(ctx, invalid); err != nil {
			return nil, err
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %w", ErrTooManyAttempts, err)
		}

		rebound, rerr := r.forms.RenderForm(obj, check, form.FormOptions{})
		if rerr != nil {
			return nil, rerr
		}
		pending = invalidControls(rebound.Fields)
		if len(pending) == 0 {
			return nil, err
		}
	}
}

func (r *Renderer) report(ctx context.Context, invalid *formstate.ValidationError) error {
	for _, msg := range invalid.Form {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	paths := make([]string, 0, len(invalid.Fields))
	for path := range invalid.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		msg := fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, path, strings.Join(invalid.Fields[path], "; "))
		if err := r.driver.Info(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) prompt(ctx context.Context, control form.Control, answers *formstate.State) error {
	if control.Kind == form.ControlFieldset {
		if control.Label != "" {
			if err := r.driver.Info(ctx, r.theme.SectionPrefix+control.Label); err != nil {
				return err
			}
		}
		for _, child := range control.Children {
			if err := r.prompt(ctx, child, answers); err != nil {
				return err
			}
		}
		return nil
	}

	q := question(control)
	switch control.Kind {
	case form.ControlCheckbox:
		checked, err := r.driver.Confirm(ctx, q)
		if err != nil {
			return err
		}
		return answers.Set(control.Name, checked)
	case form.ControlSelect:
		return r.promptSelect(ctx, control, q, answers)
	default:
		text, err := r.driver.Text(ctx, q)
		if err != nil {
			return err
		}
		if !q.Multiline {
			text = strings.TrimSpace(text)
		}
		return answers.Set(control.Name, text)
	}
}

// question maps a leaf control onto a prompt. Required fields get a trailing
// asterisk; the description, else the placeholder, becomes the help text.
func question(control form.Control) Question {
	q := Question{
		Name:      control.Name,
		Message:   control.Label,
		Help:      control.Description,
		Default:   control.Value,
		Required:  control.Required,
		Multiline: control.Kind == form.ControlTextarea,
		Checked:   control.Checked,
	}
	if q.Required {
		q.Message += " *"
	}
	if q.Help == "" {
		q.Help = control.Placeholder
	}
	return q
}

func (r *Renderer) promptSelect(ctx context.Context, control form.Control, q Question, answers *formstate.State) error {
	values := make([]string, 0, len(control.Options)+1)
	if !control.Required {
		q.Choices = append(q.Choices, NoneOption)
		values = append(values, "")
	}
	for _, opt := range control.Options {
		if opt.Selected {
			q.Selected = len(q.Choices)
		}
		q.Choices = append(q.Choices, opt.Label)
		values = append(values, opt.Value)
	}
	if len(q.Choices) == 0 {
		return answers.Set(control.Name, "")
	}

	idx, err := r.driver.Choose(ctx, q)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: %s: choice %d out of range", control.Name, idx)
	}
	return answers.Set(control.Name, values[idx])
}

// invalidControls returns the leaf controls carrying errors, depth first.
func invalidControls(controls []form.Control) []form.Control {
	var out []form.Control
	for _, control := range controls {
		control.Walk(func(c form.Control) {
			if c.Kind != form.ControlFieldset && c.Invalid() {
				out = append(out, c)
			}
		})
	}
	return out
}
