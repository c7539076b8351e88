package components

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-adminkit/pkg/form"
	rendertemplate "github.com/goliatone/go-adminkit/pkg/render/template"
)

// Renderer writes the markup of one bound control into buf.
type Renderer func(buf *bytes.Buffer, control form.Control, data ComponentData) error

// ComponentData is what a component renderer can draw with.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// RenderChild renders a nested control (fieldset children) through the
	// same registry, wrapper markup included.
	RenderChild func(child form.Control) (string, error)
	// Partials are theme template overrides keyed like "forms.input".
	Partials map[string]string
	Config   map[string]any
}

// Script is a page script a component depends on. Either Src or Inline is
// set.
type Script struct {
	Src    string `json:"src,omitempty"`
	Inline string `json:"inline,omitempty"`
	Module bool   `json:"module,omitempty"`
	Defer  bool   `json:"defer,omitempty"`
}

// Key identifies the script when pages merge the assets of several
// components.
func (s Script) Key() string {
	if s.Src != "" {
		return "src:" + s.Src
	}
	return "inline:" + s.Inline
}

// Descriptor is a registered component and the assets it needs.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

func (d Descriptor) clone() Descriptor {
	d.Stylesheets = slices.Clone(d.Stylesheets)
	d.Scripts = slices.Clone(d.Scripts)
	return d
}

// Registry maps component names to descriptors. Names are case-insensitive.
// Registering an existing name replaces it, which is how callers restyle a
// built-in control.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Register stores descriptor under name.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	name = normalize(name)
	switch {
	case name == "":
		return fmt.Errorf("components: component name is required")
	case descriptor.Renderer == nil:
		return fmt.Errorf("components: renderer for %q is nil", name)
	}
	descriptor.Name = name

	r.mu.Lock()
	r.components[name] = descriptor.clone()
	r.mu.Unlock()
	return nil
}

// MustRegister panics when Register fails.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns a copy of the descriptor registered under name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	descriptor, ok := r.components[normalize(name)]
	r.mu.RUnlock()
	return descriptor.clone(), ok
}

// Names lists registered components, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.components))
}

// Assets collects the stylesheets and scripts of the named components in
// order, without duplicates. Unknown names are skipped.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []Script) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		stylesheets = append(stylesheets, descriptor.Stylesheets...)
		scripts = append(scripts, descriptor.Scripts...)
	}
	return UniqueStylesheets(stylesheets), UniqueScripts(scripts)
}

// UniqueStylesheets drops empty and repeated hrefs, keeping first occurrences.
func UniqueStylesheets(hrefs []string) []string {
	return unique(hrefs, func(href string) string { return href })
}

// UniqueScripts drops repeated scripts by Key, keeping first occurrences.
func UniqueScripts(scripts []Script) []Script {
	return unique(scripts, Script.Key)
}

func unique[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
