package terminal

import (
	"errors"
	"fmt"
	"strings"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-adminkit/pkg/export"
	"github.com/goliatone/go-adminkit/pkg/table"
)

const (
	defaultHeight  = 15
	maxColumnWidth = 40
)

// HelpText lists the key bindings of the interactive model.
const HelpText = "←/→ column · s sort · m multi-sort · v show/hide · e export · q quit"

// ExportFunc receives the export records when the user asks for a download.
type ExportFunc func(keys []string, records []table.Record) error

// ModelOption configures a Model.
type ModelOption func(*modelConfig)

type modelConfig struct {
	title  string
	height int
	styles Styles
	caps   export.Capabilities
	export ExportFunc
}

// WithTitle prints a title above the table.
func WithTitle(title string) ModelOption {
	return func(cfg *modelConfig) {
		cfg.title = strings.TrimSpace(title)
	}
}

// WithHeight sets the number of visible rows.
func WithHeight(height int) ModelOption {
	return func(cfg *modelConfig) {
		if height > 0 {
			cfg.height = height
		}
	}
}

// WithStyles replaces DefaultStyles.
func WithStyles(styles Styles) ModelOption {
	return func(cfg *modelConfig) {
		cfg.styles = styles
	}
}

// WithExport enables the export key when caps allow file downloads.
func WithExport(caps export.Capabilities, fn ExportFunc) ModelOption {
	return func(cfg *modelConfig) {
		cfg.caps = caps
		cfg.export = fn
	}
}

// Model is an interactive bubbletea view over a table model. The cursor
// walks every defined column, hidden ones included, so a hidden column can be
// shown again.
type Model[T any] struct {
	data   *table.Model[T]
	view   btable.Model
	cfg    modelConfig
	cursor int
	status string
	err    error
}

var _ tea.Model = Model[struct{}]{}

// NewModel wraps data in an interactive view.
func NewModel[T any](data *table.Model[T], opts ...ModelOption) Model[T] {
	cfg := modelConfig{height: defaultHeight, styles: DefaultStyles()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	m := Model[T]{
		data: data,
		cfg:  cfg,
		view: btable.New(
			btable.WithFocused(true),
			btable.WithHeight(cfg.height),
		),
	}
	m.sync()
	return m
}

// Table returns the current table model.
func (m Model[T]) Table() *table.Model[T] {
	return m.data
}

// Cursor returns the key of the column under the cursor.
func (m Model[T]) Cursor() string {
	columns := m.data.Columns()
	if len(columns) == 0 {
		return ""
	}
	return columns[m.cursor].Key
}

// Err returns the error of the last interaction, if any.
func (m Model[T]) Err() error {
	return m.err
}

func (m Model[T]) Init() tea.Cmd {
	return nil
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.move(-1)
		return m, nil
	case "right", "l":
		m.move(1)
		return m, nil
	case "s":
		return m.apply("sort", m.data.ToggleSort), nil
	case "m":
		return m.apply("multi-sort", m.data.ToggleSortMulti), nil
	case "v":
		return m.apply("visibility", m.data.ToggleVisibility), nil
	case "e":
		m.runExport()
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m *Model[T]) move(delta int) {
	count := len(m.data.Columns())
	if count == 0 {
		return
	}
	m.cursor = (m.cursor + delta + count) % count
	m.err = nil
	m.status = ""
	m.sync()
}

func (m Model[T]) apply(action string, toggle func(string) (*table.Model[T], error)) Model[T] {
	key := m.Cursor()
	if key == "" {
		return m
	}
	next, err := toggle(key)
	if err != nil {
		m.err = fmt.Errorf("%s %q: %w", action, key, err)
		m.status = ""
		return m
	}
	m.data = next
	m.err = nil
	m.status = ""
	m.sync()
	return m
}

func (m *Model[T]) runExport() {
	if !m.cfg.caps.FileDownload || m.cfg.export == nil {
		m.err = errors.New("export is not available")
		return
	}
	records := m.data.Export()
	if err := m.cfg.export(m.data.ExportKeys(), records); err != nil {
		m.err = fmt.Errorf("export: %w", err)
		return
	}
	m.err = nil
	m.status = fmt.Sprintf("exported %d rows", len(records))
}

// sync pushes the table model into the bubbles table. Rows are cleared
// before the columns change so no row is drawn against a shorter column set.
func (m *Model[T]) sync() {
	headers := m.data.Headers()
	rows := m.data.Rows()
	cursorKey := m.Cursor()

	columns := make([]btable.Column, 0, len(headers))
	for idx, header := range headers {
		title := HeaderTitle(header)
		if header.Key == cursorKey {
			title = "›" + title
		}
		width := lipgloss.Width(title)
		for _, row := range rows {
			if w := lipgloss.Width(CellText(row.Cells[idx])); w > width {
				width = w
			}
		}
		columns = append(columns, btable.Column{Title: title, Width: min(width, maxColumnWidth)})
	}

	body := make([]btable.Row, 0, len(rows))
	for _, row := range rows {
		cells := make(btable.Row, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, CellText(cell))
		}
		body = append(body, cells)
	}

	m.view.SetRows(nil)
	m.view.SetColumns(columns)
	m.view.SetRows(body)
}

// StatusLine describes the cursor column and the current state.
func (m Model[T]) StatusLine() string {
	key := m.Cursor()
	if key == "" {
		return "no columns"
	}

	parts := []string{"column: " + key}
	if !m.data.IsVisible(key) {
		parts[0] += " (hidden)"
	}

	state := m.data.State()
	if len(state.Sort) > 0 {
		sorts := make([]string, 0, len(state.Sort))
		for _, sk := range state.Sort {
			sorts = append(sorts, sk.Key+" "+string(sk.Dir))
		}
		parts = append(parts, "sort: "+strings.Join(sorts, ", "))
	}
	if len(state.Hidden) > 0 {
		parts = append(parts, "hidden: "+strings.Join(state.Hidden, ", "))
	}
	return strings.Join(parts, " | ")
}

func (m Model[T]) View() string {
	var sb strings.Builder
	styles := m.cfg.styles

	if m.cfg.title != "" {
		sb.WriteString(styles.Title.Render(m.cfg.title))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.view.View())
	if m.data.Len() == 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.Status.Render(EmptyText))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Status.Render(m.StatusLine()))
	if m.status != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Status.Render(m.status))
	}
	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.Error.Render(m.err.Error()))
	}
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(HelpText))
	return sb.String()
}
