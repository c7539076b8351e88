package terminal

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-adminkit/pkg/table"
)

// Sort indicators appended to header titles.
const (
	IndicatorAscending  = "▲"
	IndicatorDescending = "▼"
)

// EmptyText is printed below the header when a table has no rows.
const EmptyText = "(no rows)"

// HeaderTitle renders a header label with its sort indicator and, in a
// multi-column sort, its priority.
func HeaderTitle(header table.Header) string {
	title := header.Label
	switch header.Sort {
	case table.Ascending:
		title += " " + IndicatorAscending
	case table.Descending:
		title += " " + IndicatorDescending
	}
	if header.Priority > 0 {
		title += fmt.Sprintf("%d", header.Priority)
	}
	return title
}

// CellText returns the plain text of a cell. HTML cells are reduced to their
// text content.
func CellText(cell table.Cell) string {
	if cell.HTML != "" {
		return stripTags(string(cell.HTML))
	}
	return cell.Text
}

// Render draws the visible columns and rows of m as a bordered text table.
func Render[T any](m *table.Model[T], styles Styles) string {
	headers := m.Headers()
	titles := make([]string, 0, len(headers))
	for _, header := range headers {
		titles = append(titles, HeaderTitle(header))
	}

	rows := m.Rows()
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, CellText(cell))
		}
		body = append(body, cells)
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(titles...).
		Rows(body...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})

	out := t.Render()
	if len(rows) == 0 {
		out += "\n" + styles.Status.Render(EmptyText)
	}
	return out
}

var textPolicy = bluemonday.StrictPolicy()

func stripTags(markup string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(markup)))
}
