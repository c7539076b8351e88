package vanilla

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/table"
)

// Defaults for TableOptions.
const (
	DefaultFieldsLabel = "Fields"
	DefaultEmptyText   = "No records."
)

// Sort indicators drawn after sorted header labels.
const (
	IndicatorAscending  = "▲"
	IndicatorDescending = "▼"
)

// TableOptions configures how a table model becomes a view.
type TableOptions struct {
	ID      string
	Caption string
	// Path is the page the sort and visibility links point at.
	Path string
	// Query carries unrelated parameters that every link must keep.
	Query       url.Values
	Export      export.Action
	FieldsLabel string
	EmptyText   string
}

// TableView is the template-ready form of a table model.
type TableView struct {
	ID          string         `json:"id"`
	Caption     string         `json:"caption,omitempty"`
	Headers     []HeaderView   `json:"headers"`
	Rows        []RowView      `json:"rows"`
	Columns     []ColumnToggle `json:"columns"`
	Export      ExportView     `json:"export"`
	FieldsLabel string         `json:"fields_label"`
	EmptyText   string         `json:"empty_text"`
}

// HeaderView is one header cell with its sort link.
type HeaderView struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	HTML      string `json:"html,omitempty"`
	Sortable  bool   `json:"sortable,omitempty"`
	Href      string `json:"href,omitempty"`
	Direction string `json:"direction,omitempty"`
	AriaSort  string `json:"aria_sort,omitempty"`
	Indicator string `json:"indicator,omitempty"`
	Priority  int    `json:"priority,omitempty"`
}

// RowView is one body row.
type RowView struct {
	Index int        `json:"index"`
	Cells []CellView `json:"cells"`
}

// CellView is one body cell. HTML is already sanitized.
type CellView struct {
	Key  string `json:"key"`
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// ColumnToggle is one entry of the field visibility menu.
type ColumnToggle struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
	Href    string `json:"href"`
}

// ExportView is the download control.
type ExportView struct {
	Label    string `json:"label"`
	Href     string `json:"href,omitempty"`
	Filename string `json:"filename"`
	Disabled bool   `json:"disabled,omitempty"`
}

// NewTableView projects m into a view. Every link encodes the state the click
// leads to, so the page works without scripts.
func NewTableView[T any](m *table.Model[T], opts TableOptions) TableView {
	view := TableView{
		ID:          strings.TrimSpace(opts.ID),
		Caption:     opts.Caption,
		FieldsLabel: firstNonEmpty(opts.FieldsLabel, DefaultFieldsLabel),
		EmptyText:   firstNonEmpty(opts.EmptyText, DefaultEmptyText),
		Export:      exportView(opts.Export),
	}
	if view.ID == "" {
		view.ID = "data-table"
	}

	// links only need the next state, never a rebuilt model
	state := m.State()
	for _, header := range m.Headers() {
		hv := HeaderView{
			Key:       header.Key,
			Label:     header.Label,
			HTML:      string(header.HTML),
			Sortable:  header.Sortable,
			Direction: string(header.Sort),
			Priority:  header.Priority,
		}
		if header.Sortable {
			hv.AriaSort = "none"
			if next, err := table.ToggleSort(state, header.Key); err == nil {
				hv.Href = linkFor(opts, next)
			}
		}
		switch header.Sort {
		case table.Ascending:
			hv.AriaSort = "ascending"
			hv.Indicator = IndicatorAscending
		case table.Descending:
			hv.AriaSort = "descending"
			hv.Indicator = IndicatorDescending
		}
		view.Headers = append(view.Headers, hv)
	}

	rows := m.Rows()
	view.Rows = make([]RowView, 0, len(rows))
	for _, row := range rows {
		rv := RowView{Index: row.Index, Cells: make([]CellView, 0, len(row.Cells))}
		for _, cell := range row.Cells {
			rv.Cells = append(rv.Cells, CellView{Key: cell.Key, Text: cell.Text, HTML: string(cell.HTML)})
		}
		view.Rows = append(view.Rows, rv)
	}

	columns := m.Columns()
	for _, col := range columns {
		toggle := ColumnToggle{
			Key:     col.Key,
			Label:   table.Label(col),
			Visible: m.IsVisible(col.Key),
		}
		if next, err := table.ToggleVisibility(state, columns, col.Key); err == nil {
			toggle.Href = linkFor(opts, next)
		}
		view.Columns = append(view.Columns, toggle)
	}
	return view
}

func exportView(action export.Action) ExportView {
	view := ExportView{
		Label:    firstNonEmpty(action.Label, export.DefaultLabel),
		Href:     action.Href,
		Filename: action.Filename,
		Disabled: action.Disabled || strings.TrimSpace(action.Href) == "",
	}
	if view.Disabled {
		view.Href = ""
	}
	return view
}

func linkFor(opts TableOptions, state table.State) string {
	values := url.Values{}
	for key, entries := range opts.Query {
		if key == table.QuerySort || key == table.QueryHide {
			continue
		}
		values[key] = append([]string(nil), entries...)
	}
	for key, entries := range table.EncodeQuery(state) {
		values[key] = entries
	}

	encoded := values.Encode()
	if encoded == "" && opts.Path != "" {
		return opts.Path
	}
	// a bare "?" drops the query and stays on the current page
	return opts.Path + "?" + encoded
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
