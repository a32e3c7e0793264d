package airtable

import (
	"testing"
	"time"
)

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		ID: "rec1",
		Fields: map[string]any{
			"Name":    "Ada",
			"Age":     float64(36),
			"Done":    true,
			"Due":     "2024-01-02",
			"Updated": "2024-01-02T15:04:05.000Z",
			"Tags":    []any{"a", "b"},
			"Files": []any{
				map[string]any{
					"id": "att1", "url": "https://x/y.png",
					"filename": "y.png", "size": float64(1234), "type": "image/png",
				},
			},
		},
	}

	if got := rec.String("Name"); got != "Ada" {
		t.Errorf("String = %q", got)
	}
	if got := rec.Float("Age"); got != 36 {
		t.Errorf("Float = %v", got)
	}
	if got := rec.Int("Age"); got != 36 {
		t.Errorf("Int = %v", got)
	}
	if !rec.Bool("Done") {
		t.Error("Bool = false")
	}
	if got := rec.Time("Due"); !got.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Time date-only = %v", got)
	}
	if got := rec.Time("Updated"); got.Hour() != 15 {
		t.Errorf("Time rfc3339 = %v", got)
	}
	if got := rec.Strings("Tags"); len(got) != 2 || got[0] != "a" {
		t.Errorf("Strings = %v", got)
	}
	files := rec.Attachments("Files")
	if len(files) != 1 || files[0].Filename != "y.png" || files[0].Size != 1234 {
		t.Errorf("Attachments = %+v", files)
	}
}

func TestRecordAccessorsMissingFields(t *testing.T) {
	rec := Record{Fields: map[string]any{"Name": 42}}

	if got := rec.String("Name"); got != "" {
		t.Errorf("mismatched type should read zero, got %q", got)
	}
	if got := rec.String("Missing"); got != "" {
		t.Errorf("missing field should read zero, got %q", got)
	}
	if rec.Bool("Missing") {
		t.Error("missing checkbox should read false")
	}
	if !rec.Time("Missing").IsZero() {
		t.Error("missing time should be zero")
	}
	if rec.Strings("Missing") != nil {
		t.Error("missing slice should be nil")
	}
	if rec.Attachments("Missing") != nil {
		t.Error("missing attachments should be nil")
	}
}
