package airtable

import "time"

// Typed cell accessors. Airtable cell values arrive as untyped JSON; these
// coerce the common shapes and return the zero value for missing cells or
// shape mismatches. Generated bindings wrap them with per-field methods.

// String returns a text cell value.
func (r Record) String(field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// Float returns a numeric cell value.
func (r Record) Float(field string) float64 {
	f, _ := r.Fields[field].(float64)
	return f
}

// Int returns a numeric cell value truncated to an int.
func (r Record) Int(field string) int {
	return int(r.Float(field))
}

// Bool returns a checkbox cell value. An unchecked checkbox is absent from
// the payload, which reads as false.
func (r Record) Bool(field string) bool {
	b, _ := r.Fields[field].(bool)
	return b
}

// Time parses a date or date-time cell value. Date-only cells come over
// the wire as YYYY-MM-DD, timestamps as RFC 3339.
func (r Record) Time(field string) time.Time {
	s, ok := r.Fields[field].(string)
	if !ok {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// Strings returns a multi-value cell (multiple select, record links) as a
// string slice.
func (r Record) Strings(field string) []string {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Attachment is one file of an attachments cell.
type Attachment struct {
	ID       string
	URL      string
	Filename string
	Size     int64
	Type     string
}

// Attachments returns an attachments cell value.
func (r Record) Attachments(field string) []Attachment {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]Attachment, 0, len(raw))
	for _, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var a Attachment
		a.ID, _ = m["id"].(string)
		a.URL, _ = m["url"].(string)
		a.Filename, _ = m["filename"].(string)
		a.Type, _ = m["type"].(string)
		if size, ok := m["size"].(float64); ok {
			a.Size = int64(size)
		}
		out = append(out, a)
	}
	return out
}
