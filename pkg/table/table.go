package table

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-adminkit/pkg/schema"
)

// Option customises Build.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger routes recovered accessor panics to logger at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Cell is one rendered grid cell.
type Cell struct {
	Key  string
	Text string
	// HTML holds sanitized markup when the cell function returned HTML.
	HTML HTML
}

// Row is one rendered grid row. Index points at the row's position in the
// base dataset.
type Row struct {
	Index int
	Cells []Cell
}

// Header is one rendered header cell.
type Header struct {
	Key      string
	Label    string
	HTML     HTML
	Sortable bool
	Sort     Direction
	// Priority is the 1-based precedence of the column in a multi-column sort.
	Priority int
}

// Model is an immutable snapshot of a table. Interactions return a new model.
type Model[T any] struct {
	data    []T
	columns []Column[T]
	index   map[string]int
	state   State
	order   []int
	opts    options
}

// Build validates columns and state and computes the sorted view.
func Build[T any](data []T, columns []Column[T], state State, opts ...Option) (*Model[T], error) {
	cfg := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		key := strings.TrimSpace(col.Key)
		if key == "" {
			return nil, configError(ErrEmptyColumnKey, col.Key, i)
		}
		if _, exists := index[key]; exists {
			return nil, configError(ErrDuplicateColumn, key, i)
		}
		index[key] = i
	}

	effective := State{Sort: slices.Clone(state.Sort)}
	for _, sk := range effective.Sort {
		i, ok := index[sk.Key]
		if !ok {
			return nil, configError(ErrUnknownColumn, sk.Key, -1)
		}
		if !columns[i].Sortable() {
			return nil, configError(ErrNotSortable, sk.Key, i)
		}
		if sk.Dir != Ascending && sk.Dir != Descending {
			return nil, fmt.Errorf("table: invalid sort direction %q for %q", sk.Dir, sk.Key)
		}
	}

	if state.Hidden != nil {
		effective.Hidden = normalizeHidden(state.Hidden)
		for _, key := range effective.Hidden {
			if _, ok := index[key]; !ok {
				return nil, configError(ErrUnknownColumn, key, -1)
			}
		}
	} else {
		effective.Hidden = DefaultHidden(columns)
	}

	m := &Model[T]{
		data:    data,
		columns: columns,
		index:   index,
		state:   effective,
		opts:    cfg,
	}
	m.order = m.sortedOrder()
	return m, nil
}

func (m *Model[T]) sortedOrder() []int {
	order := make([]int, len(m.data))
	for i := range order {
		order[i] = i
	}
	if len(m.state.Sort) == 0 || len(m.data) < 2 {
		return order
	}

	// one accessor call per row and key
	keys := make([][]any, len(m.state.Sort))
	for k, sk := range m.state.Sort {
		col := m.columns[m.index[sk.Key]]
		values := make([]any, len(m.data))
		for i, row := range m.data {
			values[i] = m.access(col, col.Accessor, row)
		}
		keys[k] = values
	}

	slices.SortStableFunc(order, func(a, b int) int {
		for k, sk := range m.state.Sort {
			c := compareValues(keys[k][a], keys[k][b])
			if c == 0 {
				continue
			}
			if sk.Dir == Descending {
				return -c
			}
			return c
		}
		return 0
	})
	return order
}

// access runs fn against row, turning panics into a nil value.
func (m *Model[T]) access(col Column[T], fn func(T) any, row T) (value any) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			m.opts.logger.Debug().
				Str("column", col.Key).
				Interface("panic", r).
				Msg("table: cell accessor panicked, rendering empty cell")
			value = nil
		}
	}()
	return fn(row)
}

// State returns the effective state, including the hidden set derived from the
// column defaults.
func (m *Model[T]) State() State {
	return m.state.Clone()
}

// Len returns the number of rows.
func (m *Model[T]) Len() int {
	return len(m.data)
}

// Columns returns every defined column in definition order.
func (m *Model[T]) Columns() []Column[T] {
	return slices.Clone(m.columns)
}

// VisibleColumns returns the columns not in the hidden set.
func (m *Model[T]) VisibleColumns() []Column[T] {
	out := make([]Column[T], 0, len(m.columns))
	for _, col := range m.columns {
		if !m.state.IsHidden(col.Key) {
			out = append(out, col)
		}
	}
	return out
}

// IsVisible reports whether key is currently shown.
func (m *Model[T]) IsVisible(key string) bool {
	_, defined := m.index[key]
	return defined && !m.state.IsHidden(key)
}

// Label returns the plain text header for col.
func Label[T any](col Column[T]) string {
	if strings.TrimSpace(col.Header) != "" {
		return col.Header
	}
	return schema.Humanize(col.Key)
}

// Headers returns the header cells of the visible columns.
func (m *Model[T]) Headers() []Header {
	visible := m.VisibleColumns()
	out := make([]Header, 0, len(visible))
	for _, col := range visible {
		header := Header{
			Key:      col.Key,
			Label:    Label(col),
			Sortable: col.Sortable(),
			Sort:     m.state.Sort.Direction(col.Key),
		}
		if len(m.state.Sort) > 1 {
			header.Priority = m.state.Sort.Position(col.Key)
		}
		if col.HeaderHTML != "" {
			header.HTML = SanitizeHTML(col.HeaderHTML)
		}
		out = append(out, header)
	}
	return out
}

// Rows renders the visible cells of every row in the current sort order.
func (m *Model[T]) Rows() []Row {
	visible := m.VisibleColumns()
	out := make([]Row, 0, len(m.order))
	for _, idx := range m.order {
		row := m.data[idx]
		cells := make([]Cell, 0, len(visible))
		for _, col := range visible {
			cells = append(cells, m.cell(col, row))
		}
		out = append(out, Row{Index: idx, Cells: cells})
	}
	return out
}

// Sorted returns the rows in the current view order.
func (m *Model[T]) Sorted() []T {
	out := make([]T, 0, len(m.order))
	for _, idx := range m.order {
		out = append(out, m.data[idx])
	}
	return out
}

func (m *Model[T]) cell(col Column[T], row T) Cell {
	fn := col.Cell
	if fn == nil {
		fn = col.Accessor
	}
	value := m.access(col, fn, row)
	out := Cell{Key: col.Key}
	if markup, ok := value.(HTML); ok {
		out.HTML = SanitizeHTML(markup)
		return out
	}
	format := col.Format
	if format == nil {
		format = FormatValue
	}
	out.Text = m.format(col, format, value)
	return out
}

func (m *Model[T]) format(col Column[T], format Formatter, value any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			m.opts.logger.Debug().
				Str("column", col.Key).
				Interface("panic", r).
				Msg("table: cell formatter panicked, rendering empty cell")
			text = ""
		}
	}()
	return format(value)
}

// ToggleSort returns a model sorted by key per the single-column cycle.
func (m *Model[T]) ToggleSort(key string) (*Model[T], error) {
	if err := m.checkSortable(key); err != nil {
		return nil, err
	}
	state, err := ToggleSort(m.state, key)
	if err != nil {
		return nil, err
	}
	return m.rebuild(state)
}

// ToggleSortMulti returns a model with key toggled in a multi-column sort.
func (m *Model[T]) ToggleSortMulti(key string) (*Model[T], error) {
	if err := m.checkSortable(key); err != nil {
		return nil, err
	}
	state, err := ToggleSortMulti(m.state, key)
	if err != nil {
		return nil, err
	}
	return m.rebuild(state)
}

// ToggleVisibility returns a model with key shown or hidden.
func (m *Model[T]) ToggleVisibility(key string) (*Model[T], error) {
	state, err := ToggleVisibility(m.state, m.columns, key)
	if err != nil {
		return nil, err
	}
	return m.rebuild(state)
}

func (m *Model[T]) checkSortable(key string) error {
	i, ok := m.index[key]
	if !ok {
		return configError(ErrUnknownColumn, key, -1)
	}
	if !m.columns[i].Sortable() {
		return configError(ErrNotSortable, key, i)
	}
	return nil
}

func (m *Model[T]) rebuild(state State) (*Model[T], error) {
	return Build(m.data, m.columns, state, WithLogger(m.opts.logger))
}
