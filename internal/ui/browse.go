package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// Browse opens the interactive schema browser: a table list on the
// left, the selected table's fields in the middle, and table details
// (views, description, primary field) on the right.
//
// When stdout is not a terminal it falls back to printing the plain
// schema listing to w.
func Browse(schema *meta.Schema, baseID string, w io.Writer) error {
	if schema == nil || len(schema.Tables) == 0 {
		fmt.Fprintln(w, Warning("base has no tables"))
		return nil
	}

	if !IsTTY() {
		printSchema(schema, w)
		return nil
	}

	app := tview.NewApplication()

	tableList := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(BrowseTheme.Selection).
		SetSelectedFocusOnly(false).
		SetMainTextColor(BrowseTheme.Text)
	tableList.SetBackgroundColor(BrowseTheme.Background).
		SetBorder(true).
		SetBorderColor(BrowseTheme.Border).
		SetTitle(" Tables ").
		SetTitleColor(BrowseTheme.Header)

	fieldsTable := tview.NewTable().
		SetBorders(true).
		SetFixed(1, 0).
		SetSelectable(true, false).
		SetSelectedStyle(tcell.StyleDefault.
			Foreground(BrowseTheme.Text).
			Background(BrowseTheme.Selection))
	fieldsTable.SetBackgroundColor(BrowseTheme.Background).
		SetBorder(true).
		SetBorderColor(BrowseTheme.Border).
		SetTitle(" Fields ").
		SetTitleColor(BrowseTheme.Header)

	details := tview.NewTextView().
		SetDynamicColors(false).
		SetScrollable(true)
	details.SetBackgroundColor(BrowseTheme.Background).
		SetBorder(true).
		SetBorderColor(BrowseTheme.Border).
		SetTitle(" Details ").
		SetTitleColor(BrowseTheme.Header)

	for i := range schema.Tables {
		tableList.AddItem(schema.Tables[i].Name, "", 0, nil)
	}

	show := func(index int) {
		if index < 0 || index >= len(schema.Tables) {
			return
		}
		table := &schema.Tables[index]
		populateFields(fieldsTable, table)
		details.SetText(tableDetails(table))
	}

	tableList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		show(index)
	})
	tableList.SetCurrentItem(0)
	show(0)

	statusBar := tview.NewTextView().
		SetText("h/l: switch panel   j/k: move   q: quit").
		SetTextColor(BrowseTheme.TextDim).
		SetTextAlign(tview.AlignCenter)
	statusBar.SetBackgroundColor(BrowseTheme.Background)

	header := tview.NewTextView().
		SetText(fmt.Sprintf(" %s — %d tables", baseID, len(schema.Tables))).
		SetTextColor(BrowseTheme.Text).
		SetTextAlign(tview.AlignLeft)
	header.SetBackgroundColor(BrowseTheme.Primary)

	grid := tview.NewFlex().
		AddItem(tableList, 28, 0, true).
		AddItem(fieldsTable, 0, 1, false).
		AddItem(details, 36, 0, false)
	grid.SetBackgroundColor(BrowseTheme.Background)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(grid, 0, 1, true).
		AddItem(statusBar, 1, 0, false)

	panels := []tview.Primitive{tableList, fieldsTable, details}
	panelIndex := 0

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Rune() == 'q', event.Key() == tcell.KeyEscape:
			app.Stop()
			return nil
		case event.Rune() == 'h':
			panelIndex--
			if panelIndex < 0 {
				panelIndex = len(panels) - 1
			}
			app.SetFocus(panels[panelIndex])
			return nil
		case event.Rune() == 'l':
			panelIndex = (panelIndex + 1) % len(panels)
			app.SetFocus(panels[panelIndex])
			return nil
		}
		return event
	})

	return app.SetRoot(layout, true).Run()
}

// populateFields fills the fields panel for one table.
func populateFields(view *tview.Table, table *meta.Table) {
	view.Clear()

	headers := []string{"Field", "Type", "ID", "Notes"}
	for i, h := range headers {
		view.SetCell(0, i, tview.NewTableCell(h).
			SetTextColor(BrowseTheme.Header).
			SetAlign(tview.AlignLeft).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}

	for r, f := range table.Fields {
		color := BrowseTheme.Text
		if f.Type.IsComputed() {
			color = BrowseTheme.TextDim
		}
		cells := []string{f.Name, string(f.Type), f.ID, fieldNotes(table, f)}
		for c, text := range cells {
			view.SetCell(r+1, c, tview.NewTableCell(text).
				SetTextColor(color).
				SetAlign(tview.AlignLeft))
		}
	}

	view.ScrollToBeginning()
}

// tableDetails renders the right-hand panel text for one table.
func tableDetails(table *meta.Table) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ID: %s\n", table.ID)
	if primary, ok := table.PrimaryField(); ok {
		fmt.Fprintf(&b, "Primary: %s\n", primary.Name)
	}
	if table.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", table.Description)
	}

	if len(table.Views) > 0 {
		b.WriteString("\nViews:\n")
		for _, v := range table.Views {
			fmt.Fprintf(&b, "  %s (%s)\n", v.Name, v.Type)
		}
	}

	for _, f := range table.Fields {
		if f.Type != meta.TypeFormula {
			continue
		}
		if opts, err := f.FormulaOptions(); err == nil && opts.Formula != "" {
			fmt.Fprintf(&b, "\n%s:\n  %s\n", f.Name, opts.Formula)
		}
	}

	return b.String()
}

// printSchema writes the non-interactive fallback listing.
func printSchema(schema *meta.Schema, w io.Writer) {
	for i := range schema.Tables {
		table := &schema.Tables[i]
		fmt.Fprintf(w, "%s (%s)\n", Header(table.Name), table.ID)
		fmt.Fprint(w, TableFields(table).String())
		fmt.Fprintln(w)
	}
}
