package ui

import (
	"strconv"
	"strings"

	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// SchemaOverview builds a one-row-per-table summary of a base.
func SchemaOverview(schema *meta.Schema) *Table {
	t := NewTable("Table", "ID", "Fields", "Views")
	if schema == nil {
		return t
	}
	for i := range schema.Tables {
		table := &schema.Tables[i]
		t.AddRow(
			table.Name,
			table.ID,
			strconv.Itoa(len(table.Fields)),
			strconv.Itoa(len(table.Views)),
		)
	}
	return t
}

// TableFields builds a one-row-per-field listing for a table.
func TableFields(table *meta.Table) *Table {
	t := NewTable("Field", "Type", "ID", "Notes")
	if table == nil {
		return t
	}
	for _, f := range table.Fields {
		t.AddRow(f.Name, string(f.Type), f.ID, fieldNotes(table, f))
	}
	return t
}

// fieldNotes summarizes per-field flags shown in the Notes column.
func fieldNotes(table *meta.Table, f meta.Field) string {
	var notes []string
	if f.ID == table.PrimaryFieldID {
		notes = append(notes, "primary")
	}
	if f.Type.IsComputed() {
		notes = append(notes, "computed")
	}
	if f.Type == meta.TypeMultipleRecordLinks {
		if opts, err := f.LinkOptions(); err == nil && opts.LinkedTableID != "" {
			notes = append(notes, "links to "+opts.LinkedTableID)
		}
	}
	if f.Description != "" {
		notes = append(notes, f.Description)
	}
	return strings.Join(notes, "; ")
}
