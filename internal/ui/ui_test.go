package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/danielrbaughman/myairtable/pkg/meta"
)

func browseSchema() *meta.Schema {
	return &meta.Schema{
		Tables: []meta.Table{
			{
				ID:             "tblTask",
				Name:           "Tasks",
				PrimaryFieldID: "fldTitle",
				Description:    "Work items",
				Fields: []meta.Field{
					{ID: "fldTitle", Name: "Title", Type: meta.TypeSingleLineText},
					{ID: "fldDone", Name: "Done", Type: meta.TypeCheckbox},
					{ID: "fldSum", Name: "Summary", Type: meta.TypeFormula,
						Options: json.RawMessage(`{"isValid":true,"formula":"IF({fldDone},\"done\",\"open\")"}`)},
					{ID: "fldProj", Name: "Project", Type: meta.TypeMultipleRecordLinks,
						Options: json.RawMessage(`{"linkedTableId":"tblProj"}`)},
				},
				Views: []meta.View{
					{ID: "viwAll", Name: "All Tasks", Type: "grid"},
				},
			},
		},
	}
}

func TestStyleHelpers(t *testing.T) {
	SetTheme(PlainTheme())
	defer SetTheme(DefaultTheme())

	if got := Success("ok"); got != "ok" {
		t.Errorf("Success = %q, want ok", got)
	}
	if got := Done("saved"); got != "✓ saved" {
		t.Errorf("Done = %q", got)
	}
	if got := Failed("broken"); got != "✗ broken" {
		t.Errorf("Failed = %q", got)
	}
	for _, fn := range []func(string) string{Primary, Error, Warning, Info, Dim, Header} {
		if got := fn("text"); !strings.Contains(got, "text") {
			t.Errorf("style helper lost its text: %q", got)
		}
	}
}

func TestTableString(t *testing.T) {
	tbl := NewTable("Name", "Type")
	tbl.AddRow("Title", "singleLineText")
	tbl.AddRow("Done") // short row gets padded

	if tbl.Rows() != 2 {
		t.Fatalf("Rows() = %d, want 2", tbl.Rows())
	}

	out := tbl.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// Separator, header, separator, two data rows.
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "Name") || !strings.Contains(lines[1], "Type") {
		t.Errorf("header line = %q", lines[1])
	}
	if !strings.Contains(lines[3], "Title") || !strings.Contains(lines[3], "singleLineText") {
		t.Errorf("data line = %q", lines[3])
	}
	if !strings.HasPrefix(lines[0], "─") {
		t.Errorf("separator line = %q", lines[0])
	}

	// Columns align: every data row starts at the same offset.
	if idx1, idx2 := strings.Index(lines[1], "Type"), strings.Index(lines[3], "singleLineText"); idx1 != idx2 {
		t.Errorf("column misaligned: header at %d, data at %d", idx1, idx2)
	}
}

func TestTableRender(t *testing.T) {
	tbl := NewTable("Name")
	tbl.AddRow("Title")

	view := tbl.Render()
	if view.GetRowCount() != 2 {
		t.Errorf("GetRowCount() = %d, want 2", view.GetRowCount())
	}
	if got := view.GetCell(0, 0).Text; got != "Name" {
		t.Errorf("header cell = %q", got)
	}
	if got := view.GetCell(1, 0).Text; got != "Title" {
		t.Errorf("data cell = %q", got)
	}
}

func TestSchemaOverview(t *testing.T) {
	tbl := SchemaOverview(browseSchema())
	out := tbl.String()
	for _, want := range []string{"Tasks", "tblTask", "4", "1"} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}

	if SchemaOverview(nil).Rows() != 0 {
		t.Error("nil schema should produce an empty table")
	}
}

func TestTableFields(t *testing.T) {
	schema := browseSchema()
	out := TableFields(&schema.Tables[0]).String()

	for _, want := range []string{
		"Title", "primary",
		"Summary", "computed",
		"Project", "links to tblProj",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fields table missing %q:\n%s", want, out)
		}
	}
}

func TestTableDetails(t *testing.T) {
	schema := browseSchema()
	out := tableDetails(&schema.Tables[0])

	for _, want := range []string{
		"ID: tblTask",
		"Primary: Title",
		"Work items",
		"All Tasks (grid)",
		`IF({fldDone},"done","open")`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("details missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSchema(t *testing.T) {
	SetTheme(PlainTheme())
	defer SetTheme(DefaultTheme())

	var buf bytes.Buffer
	printSchema(browseSchema(), &buf)

	out := buf.String()
	if !strings.Contains(out, "Tasks (tblTask)") {
		t.Errorf("missing table heading:\n%s", out)
	}
	if !strings.Contains(out, "singleLineText") {
		t.Errorf("missing field listing:\n%s", out)
	}
}

func TestSpinnerNonTTY(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{
		message: "fetching schema",
		stop:    make(chan struct{}),
		writer:  &buf,
	}

	s.Start()
	s.Success("schema fetched")

	out := buf.String()
	if !strings.Contains(out, "fetching schema...") {
		t.Errorf("expected static message, got %q", out)
	}
	if !strings.Contains(out, "schema fetched") {
		t.Errorf("expected success message, got %q", out)
	}

	// Stop after Stop is a no-op.
	s.Stop()
}
