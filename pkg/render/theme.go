// Package render resolves go-theme selections into the configuration HTML
// renderers consume: partial template overrides, design tokens, CSS custom
// properties and asset URLs.
package render

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// DefaultPartials maps partial keys to the embedded templates used when a
// theme does not override them.
func DefaultPartials() map[string]string {
	return map[string]string{
		"forms.input":    "components/input",
		"forms.textarea": "components/textarea",
		"forms.select":   "components/select",
		"forms.checkbox": "components/checkbox",
		"forms.fieldset": "components/fieldset",
		"forms.field":    "components/field",
		"forms.form":     "form",
		"tables.table":   "table",
		"page.modal":     "modal",
		"page.layout":    "layout",
	}
}

// ErrThemeNotFound is returned by Themes.Select for unknown names.
var ErrThemeNotFound = errors.New("render: theme not found")

// Themes is an in-memory theme.ThemeSelector over registered manifests.
type Themes struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes returns a selector that falls back to defaultTheme/defaultVariant
// when Select receives empty names.
func NewThemes(defaultTheme, defaultVariant string) *Themes {
	return &Themes{
		manifests:      make(map[string]*theme.Manifest),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
}

// Register adds manifest under its name.
func (t *Themes) Register(manifest *theme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("render: theme manifest with a name is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.manifests[manifest.Name]; exists {
		return fmt.Errorf("render: theme %q already registered", manifest.Name)
	}
	t.manifests[manifest.Name] = manifest
	return nil
}

// Names lists the registered themes.
func (t *Themes) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.manifests))
	for name := range t.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant, applying the defaults. An unknown variant
// resolves to the base theme.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = t.defaultTheme
	}
	if variant = strings.TrimSpace(variant); variant == "" {
		variant = t.defaultVariant
	}

	t.mu.RLock()
	manifest, ok := t.manifests[name]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, known := manifest.Variants[variant]; !known {
		variant = ""
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects name/variant through selector and flattens the result
// into a renderer config. A nil selector yields a config holding only the
// fallback partials.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return &theme.RendererConfig{Partials: mergeStrings(nil, fallbacks)}, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("render: select theme %q/%q: %w", name, variant, err)
	}
	return RendererConfig(selection, fallbacks), nil
}

// RendererConfig flattens a selection: variant tokens, templates and asset
// files override the base manifest, templates override fallbacks, and every
// token becomes a `--name` CSS variable.
func RendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{Partials: mergeStrings(nil, fallbacks)}
	if selection == nil {
		return cfg
	}
	cfg.Theme = selection.Theme
	cfg.Variant = selection.Variant

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := mergeStrings(nil, manifest.Tokens)
	partials := mergeStrings(cfg.Partials, manifest.Templates)
	files := mergeStrings(nil, manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if strings.TrimSpace(v.Assets.Prefix) != "" {
			prefix = v.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVarsStyle renders CSS variables as a sorted inline style declaration.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}

// Partial returns the template for key, preferring cfg over DefaultPartials.
func Partial(cfg *theme.RendererConfig, key string) string {
	if cfg != nil {
		if name := strings.TrimSpace(cfg.Partials[key]); name != "" {
			return name
		}
	}
	return DefaultPartials()[key]
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
