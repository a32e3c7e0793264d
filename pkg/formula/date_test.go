package formula

import (
	"testing"
	"time"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

func dateField(t *testing.T, name string) DateField {
	t.Helper()
	f, err := NewDateField(name, nil)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestDateAgo(t *testing.T) {
	f := dateField(t, "Due")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"on days ago", f.On().DaysAgo(1), "DATETIME_DIFF(NOW(),{Due},'days')=1"},
		{"after hours ago", f.After().HoursAgo(3), "DATETIME_DIFF(NOW(),{Due},'hours')>3"},
		{"before weeks ago", f.Before().WeeksAgo(2), "DATETIME_DIFF(NOW(),{Due},'weeks')<2"},
		{"on or after months ago", f.OnOrAfter().MonthsAgo(6), "DATETIME_DIFF(NOW(),{Due},'months')>=6"},
		{"on or before years ago", f.OnOrBefore().YearsAgo(1), "DATETIME_DIFF(NOW(),{Due},'years')<=1"},
		{"not on minutes ago", f.NotOn().MinutesAgo(30), "DATETIME_DIFF(NOW(),{Due},'minutes')!=30"},
		{"seconds ago", f.On().SecondsAgo(10), "DATETIME_DIFF(NOW(),{Due},'seconds')=10"},
		{"milliseconds ago", f.On().MillisecondsAgo(500), "DATETIME_DIFF(NOW(),{Due},'milliseconds')=500"},
		{"quarters ago", f.On().QuartersAgo(2), "DATETIME_DIFF(NOW(),{Due},'quarters')=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDateConcrete(t *testing.T) {
	f := dateField(t, "Created")
	instant := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)

	if got, want := f.On().Time(instant), "DATETIME_PARSE({Created})=DATETIME_PARSE('2024-01-02T15:04:05Z')"; got != want {
		t.Errorf("On().Time = %q, want %q", got, want)
	}
	if got, want := f.After().Time(instant), "DATETIME_PARSE({Created})>DATETIME_PARSE('2024-01-02T15:04:05Z')"; got != want {
		t.Errorf("After().Time = %q, want %q", got, want)
	}
}

func TestDateParse(t *testing.T) {
	f := dateField(t, "Created")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"rfc3339", "2024-01-02T15:04:05Z", "DATETIME_PARSE({Created})=DATETIME_PARSE('2024-01-02T15:04:05Z')"},
		{"date and time", "2024-01-02 15:04:05", "DATETIME_PARSE({Created})=DATETIME_PARSE('2024-01-02T15:04:05Z')"},
		{"date only", "2024-01-02", "DATETIME_PARSE({Created})=DATETIME_PARSE('2024-01-02T00:00:00Z')"},
		{"us slashes", "03/04/2025", "DATETIME_PARSE({Created})=DATETIME_PARSE('2025-03-04T00:00:00Z')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.On().Date(tt.in)
			if err != nil {
				t.Fatalf("Date(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDateParseFailure(t *testing.T) {
	f := dateField(t, "Created")
	_, err := f.On().Date("not a date")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !aterr.Is(err, aterr.ErrDateParse) {
		t.Errorf("error code = %s, want %s", aterr.GetErrorCode(err), aterr.ErrDateParse)
	}
}

func TestDateBetween(t *testing.T) {
	f := dateField(t, "Due")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	inclusive := f.Between(start, end, true)
	wantInclusive := "AND(DATETIME_PARSE({Due})>=DATETIME_PARSE('2024-01-01T00:00:00Z'),DATETIME_PARSE({Due})<=DATETIME_PARSE('2024-02-01T00:00:00Z'))"
	if inclusive != wantInclusive {
		t.Errorf("Between inclusive = %q, want %q", inclusive, wantInclusive)
	}

	exclusive := f.Between(start, end, false)
	wantExclusive := "AND(DATETIME_PARSE({Due})>DATETIME_PARSE('2024-01-01T00:00:00Z'),DATETIME_PARSE({Due})<DATETIME_PARSE('2024-02-01T00:00:00Z'))"
	if exclusive != wantExclusive {
		t.Errorf("Between exclusive = %q, want %q", exclusive, wantExclusive)
	}
}

func TestDateBetweenDates(t *testing.T) {
	f := dateField(t, "Due")
	got, err := f.BetweenDates("2024-01-01", "2024-02-01", true)
	if err != nil {
		t.Fatal(err)
	}
	want := "AND(DATETIME_PARSE({Due})>=DATETIME_PARSE('2024-01-01T00:00:00Z'),DATETIME_PARSE({Due})<=DATETIME_PARSE('2024-02-01T00:00:00Z'))"
	if got != want {
		t.Errorf("BetweenDates = %q, want %q", got, want)
	}

	if _, err := f.BetweenDates("nope", "2024-02-01", true); err == nil {
		t.Error("expected error for unparseable start date")
	}
}
