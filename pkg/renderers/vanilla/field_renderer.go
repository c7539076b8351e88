package vanilla

import (
	"bytes"
	"fmt"
	"slices"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-adminkit/pkg/form"
	"github.com/goliatone/go-adminkit/pkg/render"
	"github.com/goliatone/go-adminkit/pkg/render/template"
	"github.com/goliatone/go-adminkit/pkg/renderers/vanilla/components"
)

// componentRenderer draws controls through the component registry and wraps
// each in the field template. It records the components it used so the page
// can emit their assets. One instance serves one render call.
type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string
	config    map[string]map[string]any

	used map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides, partials map[string]string, config map[string]map[string]any) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		overrides: cloneStringMap(overrides),
		partials:  cloneStringMap(partials),
		config:    config,
		used:      make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(control form.Control) (string, error) {
	name := r.overrides[control.Name]
	if name == "" {
		name = components.ForControl(control.Kind)
	}

	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", name, control.Name)
	}

	data := components.ComponentData{
		Template:    r.templates,
		RenderChild: r.render,
		Partials:    r.partials,
		Config:      r.config[name],
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", name, control.Name, err)
	}
	r.used[name] = struct{}{}

	wrapper := render.Partial(&theme.RendererConfig{Partials: r.partials}, "forms.field")
	return r.templates.RenderTemplate(wrapper, map[string]any{
		"control":          control,
		"component":        name,
		"control_html":     buf.String(),
		"show_label":       labelSupportsFor(name),
		"show_description": !componentHandlesDescription(name),
	})
}

func (r *componentRenderer) usedComponents() []string {
	names := make([]string, 0, len(r.used))
	for name := range r.used {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *componentRenderer) assets() (stylesheets []string, scripts []components.Script) {
	return r.registry.Assets(r.usedComponents())
}
