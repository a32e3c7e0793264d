package formula

import (
	"time"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

// dateLayouts are the accepted string forms for date operands, tried in
// order. The first is full RFC 3339; the rest are the common abbreviations
// people actually type.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// parseDate resolves a date string against the accepted layouts. Failure is
// a construction-time error, not something deferred to the server.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, aterr.New(aterr.ErrDateParse, "unrecognized date format").
		With("value", s).
		WithHelp("use RFC 3339, YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or MM/DD/YYYY")
}

// DateField is a handle over a date or date-time field. Comparisons are two
// stage: a relational entry point (On, After, ...) picks the operator and
// returns a DateComparison, which is completed either with a concrete date
// (Time, Date) or with one of the relative "N units ago" methods.
type DateField struct {
	FieldRef
}

// NewDateField builds a date handle from a display name and the table's
// name-to-id map.
func NewDateField(name string, ids map[string]string) (DateField, error) {
	ref, err := NewFieldRef(name, ids)
	return DateField{FieldRef: ref}, err
}

// On compares for the same instant.
func (f DateField) On() DateComparison { return DateComparison{field: f.FieldRef, op: "="} }

// NotOn compares for a different instant.
func (f DateField) NotOn() DateComparison { return DateComparison{field: f.FieldRef, op: "!="} }

// OnOrAfter compares field >= operand.
func (f DateField) OnOrAfter() DateComparison { return DateComparison{field: f.FieldRef, op: ">="} }

// OnOrBefore compares field <= operand.
func (f DateField) OnOrBefore() DateComparison { return DateComparison{field: f.FieldRef, op: "<="} }

// After compares field > operand.
func (f DateField) After() DateComparison { return DateComparison{field: f.FieldRef, op: ">"} }

// Before compares field < operand.
func (f DateField) Before() DateComparison { return DateComparison{field: f.FieldRef, op: "<"} }

// Between matches fields inside the [start,end] range when inclusive,
// (start,end) otherwise.
func (f DateField) Between(start, end time.Time, inclusive bool) string {
	if inclusive {
		return And(f.OnOrAfter().Time(start), f.OnOrBefore().Time(end))
	}
	return And(f.After().Time(start), f.Before().Time(end))
}

// BetweenDates is Between for string operands; either side failing to parse
// is an error.
func (f DateField) BetweenDates(start, end string, inclusive bool) (string, error) {
	s, err := parseDate(start)
	if err != nil {
		return "", err
	}
	e, err := parseDate(end)
	if err != nil {
		return "", err
	}
	return f.Between(s, e, inclusive), nil
}

// DateComparison is a relational operator bound to a field, waiting for its
// right-hand side.
type DateComparison struct {
	field FieldRef
	op    string
}

// Time completes the comparison against a concrete instant. Both sides go
// through DATETIME_PARSE so the server compares normalized date-times.
func (c DateComparison) Time(t time.Time) string {
	lhs := call("DATETIME_PARSE", c.field.ref())
	rhs := fnDatetimeParse(t.Format(time.RFC3339))
	return compare(lhs, c.op, rhs)
}

// Date completes the comparison against a date string, parsing it first.
func (c DateComparison) Date(s string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return c.Time(t), nil
}

// ago completes the comparison relative to now:
// DATETIME_DIFF(NOW(),{field},'unit') op value.
func (c DateComparison) ago(unit string, value int) string {
	diff := fnDatetimeDiff(Now(), c.field.ref(), unit)
	return compare(diff, c.op, formatNumber(float64(value)))
}

// MillisecondsAgo completes the comparison in milliseconds before now.
func (c DateComparison) MillisecondsAgo(n int) string { return c.ago("milliseconds", n) }

// SecondsAgo completes the comparison in seconds before now.
func (c DateComparison) SecondsAgo(n int) string { return c.ago("seconds", n) }

// MinutesAgo completes the comparison in minutes before now.
func (c DateComparison) MinutesAgo(n int) string { return c.ago("minutes", n) }

// HoursAgo completes the comparison in hours before now.
func (c DateComparison) HoursAgo(n int) string { return c.ago("hours", n) }

// DaysAgo completes the comparison in days before now.
func (c DateComparison) DaysAgo(n int) string { return c.ago("days", n) }

// WeeksAgo completes the comparison in weeks before now.
func (c DateComparison) WeeksAgo(n int) string { return c.ago("weeks", n) }

// MonthsAgo completes the comparison in months before now.
func (c DateComparison) MonthsAgo(n int) string { return c.ago("months", n) }

// QuartersAgo completes the comparison in quarters before now.
func (c DateComparison) QuartersAgo(n int) string { return c.ago("quarters", n) }

// YearsAgo completes the comparison in years before now.
func (c DateComparison) YearsAgo(n int) string { return c.ago("years", n) }
