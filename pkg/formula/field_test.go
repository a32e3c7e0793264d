package formula

import (
	"testing"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

func TestNewFieldRef(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		ids      map[string]string
		wantName string
		wantID   string
	}{
		{
			name:     "plain name no map",
			raw:      "Name",
			wantName: "Name",
			wantID:   "Name",
		},
		{
			name:     "braces stripped",
			raw:      "{Name}",
			wantName: "Name",
			wantID:   "Name",
		},
		{
			name:     "control whitespace stripped",
			raw:      "First\nName\t",
			wantName: "FirstName",
			wantID:   "FirstName",
		},
		{
			name:     "resolved through map",
			raw:      "Name",
			ids:      map[string]string{"Name": "fldABC123"},
			wantName: "Name",
			wantID:   "fldABC123",
		},
		{
			name:     "missing from map falls back to name",
			raw:      "Other",
			ids:      map[string]string{"Name": "fldABC123"},
			wantName: "Other",
			wantID:   "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := NewFieldRef(tt.raw, tt.ids)
			if err != nil {
				t.Fatalf("NewFieldRef(%q) error: %v", tt.raw, err)
			}
			if ref.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", ref.Name(), tt.wantName)
			}
			if ref.ID() != tt.wantID {
				t.Errorf("ID() = %q, want %q", ref.ID(), tt.wantID)
			}
		})
	}
}

func TestNewFieldRefEmpty(t *testing.T) {
	for _, raw := range []string{"", "{}", "\n\t", "  "} {
		_, err := NewFieldRef(raw, nil)
		if err == nil {
			t.Errorf("NewFieldRef(%q) expected error", raw)
			continue
		}
		if !aterr.Is(err, aterr.ErrInvalidField) {
			t.Errorf("NewFieldRef(%q) error code = %s, want %s", raw, aterr.GetErrorCode(err), aterr.ErrInvalidField)
		}
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	ref, err := NewFieldRef("{First\nName}", nil)
	if err != nil {
		t.Fatal(err)
	}
	again, err := NewFieldRef(ref.Name(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if again.Name() != ref.Name() {
		t.Errorf("sanitization not idempotent: %q then %q", ref.Name(), again.Name())
	}
}

func TestEmptiness(t *testing.T) {
	ref, err := NewFieldRef("Notes", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ref.IsEmpty(), "{Notes}=BLANK()"; got != want {
		t.Errorf("IsEmpty() = %q, want %q", got, want)
	}
	if got, want := ref.IsNotEmpty(), "{Notes}"; got != want {
		t.Errorf("IsNotEmpty() = %q, want %q", got, want)
	}
}

func TestOperandRendering(t *testing.T) {
	ref, _ := NewFieldRef("Score", nil)
	tests := []struct {
		name string
		op   Operand
		want string
	}{
		{"literal quoted", Lit("hi"), `"hi"`},
		{"literal escapes quotes", Lit(`say "hi"`), `"say \"hi\""`},
		{"raw verbatim", Raw("LEN({X})"), "LEN({X})"},
		{"field braced", ref.Operand(), "{Score}"},
		{"zero value empty", Operand{}, `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.op.render(); got != tt.want {
				t.Errorf("render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0.5, "0.5"},
		{-3, "-3"},
		{1000000, "1000000"},
		{2.25, "2.25"},
	}
	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
