package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/form"
)

// NewDefaultRegistry returns a registry holding the built-in components.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("forms.input", "components/input"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer("forms.textarea", "components/textarea"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", "components/select"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("forms.checkbox", "components/checkbox"),
	})
	registry.MustRegister(NameFieldset, Descriptor{
		Renderer: fieldsetRenderer,
	})
	return registry
}

// TemplateRenderer returns a component renderer backed by templateName. A
// theme partial registered under partialKey takes precedence.
func TemplateRenderer(partialKey, templateName string) Renderer {
	return templateComponentRenderer(partialKey, templateName)
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control form.Control, data ComponentData) error {
		return renderPartial(buf, partialKey, templateName, data, map[string]any{
			"control": control,
			"config":  data.Config,
		})
	}
}

func fieldsetRenderer(buf *bytes.Buffer, control form.Control, data ComponentData) error {
	var children strings.Builder
	if data.RenderChild != nil {
		for _, child := range control.Children {
			rendered, err := data.RenderChild(child)
			if err != nil {
				return err
			}
			children.WriteString(rendered)
		}
	}
	return renderPartial(buf, "forms.fieldset", "components/fieldset", data, map[string]any{
		"control":  control,
		"children": children.String(),
		"config":   data.Config,
	})
}

func renderPartial(buf *bytes.Buffer, partialKey, templateName string, data ComponentData, payload map[string]any) error {
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", templateName)
	}
	resolved := templateName
	if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
		resolved = candidate
	}
	rendered, err := data.Template.RenderTemplate(resolved, payload)
	if err != nil {
		return fmt.Errorf("components: render template %q: %w", resolved, err)
	}
	buf.WriteString(rendered)
	return nil
}
