package formula

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

var taskFields = map[string]string{
	"Name":   "fldName01",
	"Age":    "fldAge001",
	"Done":   "fldDone01",
	"Due":    "fldDue001",
	"Files":  "fldFiles1",
	"Status": "fldStat01",
}

func TestTableTypedHandles(t *testing.T) {
	tbl := NewTable("Tasks", taskFields)

	name, err := tbl.Text("Name")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := name.Equals("Bob"), `{fldName01}="Bob"`; got != want {
		t.Errorf("Text Equals = %q, want %q", got, want)
	}

	age, err := tbl.Number("Age")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := age.GreaterThan(18), "{fldAge001}>18"; got != want {
		t.Errorf("Number GreaterThan = %q, want %q", got, want)
	}

	done, err := tbl.Bool("Done")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := done.IsTrue(), "{fldDone01}=TRUE()"; got != want {
		t.Errorf("Bool IsTrue = %q, want %q", got, want)
	}

	due, err := tbl.Date("Due")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := due.On().DaysAgo(1), "DATETIME_DIFF(NOW(),{fldDue001},'days')=1"; got != want {
		t.Errorf("Date DaysAgo = %q, want %q", got, want)
	}

	files, err := tbl.Attachments("Files")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := files.CountIs(1), "LEN({fldFiles1})=1"; got != want {
		t.Errorf("Attachments CountIs = %q, want %q", got, want)
	}
	if got, want := files.IsEmpty(), "LEN({fldFiles1})=0"; got != want {
		t.Errorf("Attachments IsEmpty = %q, want %q", got, want)
	}
}

func TestTableUnknownField(t *testing.T) {
	tbl := NewTable("Tasks", taskFields)

	_, err := tbl.Text("Nmae")
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !aterr.Is(err, aterr.ErrInvalidFieldName) {
		t.Errorf("error code = %s, want %s", aterr.GetErrorCode(err), aterr.ErrInvalidFieldName)
	}

	var ae *aterr.Error
	if !errors.As(err, &ae) {
		t.Fatal("expected *aterr.Error")
	}
	found := false
	for _, h := range ae.Helps() {
		if strings.Contains(h, `"Name"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a suggestion for %q, helps = %v", "Name", ae.Helps())
	}
}

func TestTableUncheckedWhenNoCatalog(t *testing.T) {
	tbl := NewTable("Anything", nil)
	f, err := tbl.Text("Whatever")
	if err != nil {
		t.Fatalf("nil catalog should accept any name, got %v", err)
	}
	if got, want := f.Equals("x"), `{Whatever}="x"`; got != want {
		t.Errorf("Equals = %q, want %q", got, want)
	}
}

func TestValidateFieldName(t *testing.T) {
	allowed := []string{"Name", "Age"}
	if err := ValidateFieldName("Name", "Tasks", allowed); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateFieldName("Missing", "Tasks", allowed); err == nil {
		t.Error("invalid name accepted")
	}
}

func TestTableFieldNames(t *testing.T) {
	tbl := NewTable("Tasks", map[string]string{"B": "1", "A": "2", "C": "3"})
	got := tbl.FieldNames()
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("FieldNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FieldNames() = %v, want %v", got, want)
		}
	}
}
