package gen

import (
	"fmt"
	"strings"

	"github.com/danielrbaughman/myairtable/pkg/formula"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// Markdown renders the schema as a reference document: one section per
// table with its fields, views, and pretty-printed formulas.
func Markdown(schema *meta.Schema, baseID string) []byte {
	var sb strings.Builder

	sb.WriteString("# Base schema\n\n")
	if baseID != "" {
		fmt.Fprintf(&sb, "Base: `%s`\n\n", baseID)
	}

	sb.WriteString("## Tables\n\n")
	for _, t := range schema.Tables {
		fmt.Fprintf(&sb, "- [%s](#%s) (`%s`)\n", t.Name, anchor(t.Name), t.ID)
	}
	sb.WriteString("\n")

	for i := range schema.Tables {
		writeTableDoc(&sb, schema, &schema.Tables[i])
	}

	return []byte(sb.String())
}

func anchor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "-"))
}

func writeTableDoc(sb *strings.Builder, schema *meta.Schema, t *meta.Table) {
	fmt.Fprintf(sb, "## %s\n\n", t.Name)
	if t.Description != "" {
		sb.WriteString(t.Description + "\n\n")
	}

	sb.WriteString("| Field | Type | ID | Notes |\n")
	sb.WriteString("|-------|------|----|-------|\n")
	for _, f := range t.Fields {
		notes := fieldNotes(schema, t, f)
		fmt.Fprintf(sb, "| %s | `%s` | `%s` | %s |\n", escapeCell(f.Name), f.Type, f.ID, notes)
	}
	sb.WriteString("\n")

	// Formula definitions get their own block, formatted for reading.
	for _, f := range t.Fields {
		if f.Type != meta.TypeFormula {
			continue
		}
		opts, err := f.FormulaOptions()
		if err != nil || opts.Formula == "" {
			continue
		}
		fmt.Fprintf(sb, "### %s (formula)\n\n", f.Name)
		if !opts.IsValid {
			sb.WriteString("**Invalid formula.**\n\n")
		}
		sb.WriteString("```\n")
		sb.WriteString(formula.Format(opts.Formula))
		sb.WriteString("\n```\n\n")
	}

	if len(t.Views) > 0 {
		sb.WriteString("### Views\n\n")
		for _, v := range t.Views {
			fmt.Fprintf(sb, "- %s (`%s`, %s)\n", v.Name, v.ID, v.Type)
		}
		sb.WriteString("\n")
	}
}

func fieldNotes(schema *meta.Schema, t *meta.Table, f meta.Field) string {
	var notes []string
	if f.ID == t.PrimaryFieldID {
		notes = append(notes, "primary")
	}
	if f.Type.IsComputed() {
		notes = append(notes, "computed")
	}
	if f.Type == meta.TypeMultipleRecordLinks {
		if link, err := f.LinkOptions(); err == nil && link.LinkedTableID != "" {
			if linked, ok := schema.TableByID(link.LinkedTableID); ok {
				notes = append(notes, "links to "+linked.Name)
			}
		}
	}
	if f.Type == meta.TypeSingleSelect || f.Type == meta.TypeMultipleSelects {
		if sel, err := f.SelectOptions(); err == nil && len(sel.Choices) > 0 {
			names := make([]string, len(sel.Choices))
			for i, c := range sel.Choices {
				names[i] = c.Name
			}
			notes = append(notes, "options: "+strings.Join(names, ", "))
		}
	}
	if f.Description != "" {
		notes = append(notes, escapeCell(f.Description))
	}
	return strings.Join(notes, "; ")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
