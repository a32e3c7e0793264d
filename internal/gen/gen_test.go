package gen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/pkg/meta"
	"github.com/sebdah/goldie/v2"
)

func genSchema() *meta.Schema {
	return &meta.Schema{Tables: []meta.Table{
		{
			ID:             "tblProj",
			Name:           "Projects",
			PrimaryFieldID: "fldPName",
			Fields: []meta.Field{
				{ID: "fldPName", Name: "Name", Type: meta.TypeSingleLineText},
				{ID: "fldPTasks", Name: "Tasks", Type: meta.TypeMultipleRecordLinks,
					Options: json.RawMessage(`{"linkedTableId":"tblTask","isReversed":true,"inverseLinkFieldId":"fldTProj"}`)},
			},
		},
		{
			ID:             "tblTask",
			Name:           "Tasks",
			PrimaryFieldID: "fldTName",
			Fields: []meta.Field{
				{ID: "fldTDone", Name: "Done", Type: meta.TypeCheckbox},
				{ID: "fldTDue", Name: "Due", Type: meta.TypeDate},
				{ID: "fldTName", Name: "Name", Type: meta.TypeSingleLineText},
				{ID: "fldTProj", Name: "Project", Type: meta.TypeMultipleRecordLinks,
					Options: json.RawMessage(`{"linkedTableId":"tblProj","prefersSingleRecordLink":true,"inverseLinkFieldId":"fldPTasks"}`)},
				{ID: "fldTSum", Name: "Summary", Type: meta.TypeFormula,
					Options: json.RawMessage(`{"isValid":true,"formula":"IF({a},{b},{c})","referencedFieldIds":[]}`)},
			},
			Views: []meta.View{
				{ID: "viwAll", Name: "All", Type: "grid"},
			},
		},
	}}
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestMermaidGolden(t *testing.T) {
	golden(t).Assert(t, "mermaid", Mermaid(genSchema()))
}

func TestCSVGolden(t *testing.T) {
	out, err := CSV(genSchema())
	if err != nil {
		t.Fatal(err)
	}
	golden(t).Assert(t, "csv", out)
}

func TestGoBindings(t *testing.T) {
	out, err := GoBindings(genSchema(), Options{Package: "basegen"})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)

	for _, want := range []string{
		"// Code generated by myairtable. DO NOT EDIT.",
		"package basegen",
		"\t\"time\"",
		`const TasksTableID = "tblTask"`,
		`TasksFieldDone = "Done"`,
		`TasksFieldSummary = "Summary"`,
		"var tasksFieldIDs = map[string]string{",
		`TasksFieldDue: "fldTDue",`,
		"var TasksViews = map[string]string{",
		`"All": "viwAll",`,
		"type TasksFields struct {",
		"\tDone formula.BoolField",
		"\tDue formula.DateField",
		"\tSummary formula.TextField",
		"func NewTasks(client *airtable.Client) Tasks {",
		"Done: mustBool(TasksFieldDone, ids),",
		"type TasksRecord struct {\n\tairtable.Record\n}",
		"func (r TasksRecord) Done() bool { return r.Record.Bool(TasksFieldDone) }",
		"func (r TasksRecord) Due() time.Time { return r.Record.Time(TasksFieldDue) }",
		"func (t Tasks) ListAll(ctx context.Context, opts airtable.ListOptions) ([]TasksRecord, error) {",
		"func (t Tasks) Delete(ctx context.Context, recordID string) error {",
		"func NewProjects(client *airtable.Client) Projects {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q", want)
		}
	}

	// Record links get no typed handle.
	if strings.Contains(src, "Project formula.") {
		t.Error("link field should not appear in the Fields struct")
	}
	// Link fields still get their name constant and an accessor.
	if !strings.Contains(src, `TasksFieldProject = "Project"`) {
		t.Error("link field name constant missing")
	}
	if !strings.Contains(src, "func (r TasksRecord) Project() string") {
		t.Error("link field accessor missing")
	}
}

func TestGoBindingsNoDateOmitsTime(t *testing.T) {
	schema := &meta.Schema{Tables: []meta.Table{
		{ID: "tblX", Name: "Notes", Fields: []meta.Field{
			{ID: "fld1", Name: "Body", Type: meta.TypeMultilineText},
		}},
	}}
	out, err := GoBindings(schema, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "\"time\"") {
		t.Error("time import should be omitted when no date fields exist")
	}
	if !strings.Contains(string(out), "package basegen") {
		t.Error("default package name not applied")
	}
}

func TestGoBindingsFiles(t *testing.T) {
	files, err := GoBindingsFiles(genSchema(), Options{Package: "basegen"})
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"basegen.go", "projects.go", "tasks.go"} {
		if _, ok := files[name]; !ok {
			t.Fatalf("missing generated file %s (have %d files)", name, len(files))
		}
	}

	base := string(files["basegen.go"])
	if !strings.Contains(base, "func mustBool(") {
		t.Error("constructor helpers should live in the base file")
	}
	if strings.Contains(base, "TasksTableID") {
		t.Error("table declarations should not live in the base file")
	}

	tasks := string(files["tasks.go"])
	if !strings.Contains(tasks, "\t\"time\"") {
		t.Error("tasks.go should import time for its date field")
	}
	if !strings.Contains(tasks, `const TasksTableID = "tblTask"`) {
		t.Error("tasks.go missing its table declarations")
	}

	projects := string(files["projects.go"])
	if strings.Contains(projects, "\t\"time\"") {
		t.Error("projects.go has no date fields and should not import time")
	}
}

func TestGoBindingsNamingOverrides(t *testing.T) {
	out, err := GoBindings(genSchema(), Options{
		Package:   "basegen",
		Overrides: map[string]string{"Tasks": "WorkItems", "Due": "DueDate"},
	})
	if err != nil {
		t.Fatal(err)
	}
	src := string(out)

	for _, want := range []string{
		`const WorkItemsTableID = "tblTask"`,
		`WorkItemsFieldDueDate = "Due"`,
		"func NewWorkItems(client *airtable.Client) WorkItems {",
		"func (r WorkItemsRecord) DueDate() time.Time",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated source missing %q", want)
		}
	}
	if strings.Contains(src, "TasksTableID") {
		t.Error("override should replace the sanitized table identifier")
	}
}

func TestGoBindingsOverrideResolvesCollision(t *testing.T) {
	schema := &meta.Schema{Tables: []meta.Table{
		{ID: "tblX", Name: "Jobs", Fields: []meta.Field{
			{ID: "fld1", Name: "Job #", Type: meta.TypeSingleLineText},
			{ID: "fld2", Name: "Job Number", Type: meta.TypeSingleLineText},
		}},
	}}
	out, err := GoBindings(schema, Options{
		Overrides: map[string]string{"Job #": "JobRef"},
	})
	if err != nil {
		t.Fatalf("override should resolve the collision, got %v", err)
	}
	if !strings.Contains(string(out), `JobsFieldJobRef = "Job #"`) {
		t.Error("override identifier not applied")
	}
}

func TestGoBindingsDuplicateFieldIdents(t *testing.T) {
	schema := &meta.Schema{Tables: []meta.Table{
		{ID: "tblX", Name: "Jobs", Fields: []meta.Field{
			{ID: "fld1", Name: "Job #", Type: meta.TypeSingleLineText},
			{ID: "fld2", Name: "Job Number", Type: meta.TypeSingleLineText},
		}},
	}}
	_, err := GoBindings(schema, Options{})
	if err == nil {
		t.Fatal("expected duplicate identifier error")
	}
	if !aterr.Is(err, aterr.ErrDuplicateIdent) {
		t.Errorf("error code = %s, want %s", aterr.GetErrorCode(err), aterr.ErrDuplicateIdent)
	}
}

func TestGoBindingsDuplicateTableIdents(t *testing.T) {
	schema := &meta.Schema{Tables: []meta.Table{
		{ID: "tbl1", Name: "Tasks"},
		{ID: "tbl2", Name: "tasks"},
	}}
	_, err := GoBindings(schema, Options{})
	if !aterr.Is(err, aterr.ErrDuplicateIdent) {
		t.Errorf("error code = %s, want %s", aterr.GetErrorCode(err), aterr.ErrDuplicateIdent)
	}
}

func TestMarkdown(t *testing.T) {
	out := string(Markdown(genSchema(), "appBASE123"))

	for _, want := range []string{
		"# Base schema",
		"Base: `appBASE123`",
		"- [Projects](#projects) (`tblProj`)",
		"## Tasks",
		"| Done | `checkbox` | `fldTDone` |",
		"links to Projects",
		"### Summary (formula)",
		"IF(\n  {a},\n  {b},\n  {c}\n)",
		"### Views",
		"- All (`viwAll`, grid)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownMarksPrimaryAndComputed(t *testing.T) {
	out := string(Markdown(genSchema(), ""))
	if !strings.Contains(out, "| Name | `singleLineText` | `fldTName` | primary |") {
		t.Error("primary field not marked")
	}
	if !strings.Contains(out, "| Summary | `formula` | `fldTSum` | computed |") {
		t.Error("computed field not marked")
	}
}
