// Package export gates file downloads behind an explicit capability flag and
// serves table exports as CSV attachments.
package export

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"github.com/goliatone/go-adminkit/pkg/table"
)

// DefaultLabel is the button text of the download action.
const DefaultLabel = "Download CSV"

// Capabilities lists what the rendering environment can deliver.
type Capabilities struct {
	// FileDownload reports whether the client can receive file downloads.
	FileDownload bool
}

type capabilitiesKey struct{}

// WithCapabilities stores caps on ctx for renderers further down the chain.
func WithCapabilities(ctx context.Context, caps Capabilities) context.Context {
	return context.WithValue(ctx, capabilitiesKey{}, caps)
}

// FromContext returns the capabilities stored on ctx. The zero value (no
// downloads) is returned when none were stored.
func FromContext(ctx context.Context) Capabilities {
	if ctx == nil {
		return Capabilities{}
	}
	caps, _ := ctx.Value(capabilitiesKey{}).(Capabilities)
	return caps
}

// Filename returns the slugged `<name>.csv` attachment name.
func Filename(name string) string {
	base := slug.Make(strings.TrimSpace(name))
	if base == "" {
		base = "export"
	}
	return base + ".csv"
}

// Action describes the download control a renderer should draw.
type Action struct {
	Label    string
	Href     string
	Filename string
	// Disabled marks the placeholder rendered when downloads are unavailable.
	Disabled bool
}

// NewAction returns an enabled download action when caps allow it and a
// disabled placeholder otherwise. The placeholder never carries an href.
func NewAction(caps Capabilities, name, href string) Action {
	action := Action{Label: DefaultLabel, Filename: Filename(name)}
	if !caps.FileDownload || strings.TrimSpace(href) == "" {
		action.Disabled = true
		return action
	}
	action.Href = href
	return action
}

// ServeCSV writes records as a CSV attachment named after name.
func ServeCSV(w http.ResponseWriter, name string, keys []string, records []table.Record) error {
	header := w.Header()
	header.Set("Content-Type", "text/csv; charset=utf-8")
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": Filename(name),
	}))
	header.Set("Cache-Control", "no-store")
	if err := table.WriteCSV(w, keys, records); err != nil {
		return fmt.Errorf("export: serve %s: %w", Filename(name), err)
	}
	return nil
}

// ServeModel exports every column of model's base rows.
func ServeModel[T any](w http.ResponseWriter, name string, model *table.Model[T]) error {
	if model == nil {
		return fmt.Errorf("export: model is required")
	}
	return ServeCSV(w, name, model.ExportKeys(), model.Export())
}
