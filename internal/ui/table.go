package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Table collects rows once and renders either as plain text for
// non-interactive output or as a tview.Table for the browser.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		rows:    [][]string{},
	}
}

// AddRow adds a row, padding short rows with empty cells.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.headers) {
		cells = append(cells, "")
	}
	t.rows = append(t.rows, cells)
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Render builds a tview table for interactive display.
func (t *Table) Render() *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetSeparator(tview.Borders.Vertical)

	for c, header := range t.headers {
		cell := tview.NewTableCell(header).
			SetTextColor(BrowseTheme.Header).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false).
			SetAlign(tview.AlignLeft)
		table.SetCell(0, c, cell)
	}

	for r, row := range t.rows {
		for c, text := range row {
			attrs := tcell.AttrNone
			if c == 0 {
				attrs = tcell.AttrBold
			}

			cell := tview.NewTableCell(text).
				SetTextColor(BrowseTheme.Text).
				SetAttributes(attrs).
				SetSelectable(false).
				SetAlign(tview.AlignLeft)

			table.SetCell(r+1, c, cell)
		}
	}

	table.SetFixed(1, 0)

	return table
}

// String renders the table as plain text for pipes and simple output.
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		widths[i] += 4
	}

	var b strings.Builder

	sepLine := func() {
		for _, w := range widths {
			b.WriteString(strings.Repeat("─", w+1))
		}
		b.WriteString("─\n")
	}

	sepLine()
	b.WriteString(" ")
	for i, h := range t.headers {
		b.WriteString(padRight(h, widths[i]))
	}
	b.WriteString("\n")
	sepLine()

	for _, row := range t.rows {
		b.WriteString(" ")
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(padRight(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
