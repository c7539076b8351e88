package demo

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/internal/config"
	"github.com/goliatone/go-adminkit/pkg/render"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla"
)

// DefaultThemes registers the built-in "default" theme with a "dark" variant.
func DefaultThemes() *render.Themes {
	themes := render.NewThemes("default", "")
	_ = themes.Register(&theme.Manifest{
		Name:    "default",
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-accent":  "#2563eb",
			"color-surface": "#ffffff",
			"color-text":    "#111827",
			"radius":        "6px",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#111827",
					"color-text":    "#f9fafb",
				},
			},
		},
	})
	return themes
}

// NewRenderer builds the HTML renderer for cfg: theme selection, optional
// template overrides from disk and the request logger.
func NewRenderer(cfg config.Config, logger zerolog.Logger) (*vanilla.Renderer, error) {
	themeCfg, err := render.ResolveTheme(DefaultThemes(), cfg.Theme, cfg.ThemeVariant, render.DefaultPartials())
	if err != nil {
		return nil, fmt.Errorf("demo: %w", err)
	}
	opts := []vanilla.Option{
		vanilla.WithTheme(themeCfg),
		vanilla.WithLogger(logger),
	}
	if cfg.TemplatesDir != "" {
		opts = append(opts, vanilla.WithTemplatesDir(cfg.TemplatesDir))
	}
	return vanilla.New(opts...)
}
