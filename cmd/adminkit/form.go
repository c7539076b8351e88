package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-adminkit/internal/demo"
	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/formstate"
	"github.com/goliatone/go-adminkit/pkg/page"
	"github.com/goliatone/go-adminkit/pkg/renderers/tui"
	"github.com/goliatone/go-adminkit/pkg/schema"
)

type formFlags struct {
	sources formSources
	id      string
	prompt  bool
	format  string
	action  string
	prefill string
	output  string
}

func newFormCmd(a *app) *cobra.Command {
	var flags formFlags
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Render a schema form as HTML or fill it in the terminal",
		Long: `Render one form from a schema document or an OpenAPI description.

Without --prompt the form is written as a standalone HTML page. With --prompt
every field is asked in the terminal, invalid answers are asked again and the
validated values are written as json, form or pretty output.

Examples:
  adminkit form --schema forms.yaml --id invite > invite.html
  adminkit form --openapi api.yaml --id createStudent --prompt --format pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.form(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
	flags.sources.register(cmd, true)
	cmd.Flags().StringVar(&flags.id, "id", "", "form id, optional when only one form is loaded")
	cmd.Flags().BoolVar(&flags.prompt, "prompt", false, "fill the form in the terminal")
	cmd.Flags().StringVar(&flags.format, "format", string(tui.OutputFormatJSON), "prompt output: json, form or pretty")
	cmd.Flags().StringVar(&flags.action, "action", "", "form action URL of the HTML page")
	cmd.Flags().StringVar(&flags.prefill, "prefill", "", "JSON file with initial values")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (a *app) form(ctx context.Context, stdout io.Writer, flags formFlags) error {
	store, err := a.loadForms(ctx, flags.sources)
	if err != nil {
		return err
	}
	selected, err := pickForm(store, flags.id)
	if err != nil {
		return err
	}
	prefill, err := loadPrefill(flags.prefill)
	if err != nil {
		return err
	}

	var out []byte
	if flags.prompt {
		out, err = a.promptForm(ctx, selected.Root, prefill, flags.format)
	} else {
		out, err = a.renderFormPage(selected, prefill, flags.action)
	}
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := os.WriteFile(flags.output, out, 0o644); err != nil {
			return fmt.Errorf("form: %w", err)
		}
		a.logger.Info().Str("form", selected.ID).Str("output", flags.output).Msg("form written")
		return nil
	}
	_, err = stdout.Write(out)
	return err
}

func (a *app) promptForm(ctx context.Context, obj *schema.Object, prefill map[string]any, format string) ([]byte, error) {
	renderer := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
		tui.WithOutputFormat(tui.OutputFormat(format)),
		tui.WithLogger(a.logger),
	)
	out, err := renderer.Render(ctx, obj, prefill)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

func (a *app) renderFormPage(selected schema.Form, prefill map[string]any, action string) ([]byte, error) {
	renderer, err := demo.NewRenderer(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	f, err := form.New(form.WithLogger(a.logger)).RenderForm(selected.Root, formstate.New(prefill), form.FormOptions{
		ID:     "form-" + slug.Make(selected.ID),
		Action: action,
		Method: http.MethodPost,
	})
	if err != nil {
		return nil, err
	}
	fragment, err := renderer.RenderForm(f)
	if err != nil {
		return nil, err
	}
	title := schema.LabelOr(selected.Title, selected.ID)
	html, err := renderer.RenderPage(page.NewLayout(title, ""), fragment)
	if err != nil {
		return nil, err
	}
	return []byte(html), nil
}

func loadPrefill(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefill: %w", err)
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("prefill: decode %s: %w", path, err)
	}
	return values, nil
}
