package strutil

import (
	"reflect"
	"testing"
)

// -----------------------------------------------------------------------------
// Case Conversion Tests
// -----------------------------------------------------------------------------

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user", "user"},
		{"User", "user"},

		// CamelCase
		{"userName", "user_name"},
		{"UserName", "user_name"},
		{"userNameField", "user_name_field"},

		// Consecutive uppercase (acronyms)
		{"HTTPServer", "http_server"},
		{"userID", "user_id"},
		{"getAPIKey", "get_api_key"},

		// Already snake_case
		{"already_snake", "already_snake"},

		// Dashes and spaces converted
		{"user-name", "user_name"},
		{"user name", "user_name"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToSnakeCase(tt.input); got != tt.want {
				t.Errorf("ToSnakeCase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToPascalCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user", "User"},
		{"user_name", "UserName"},
		{"user-name", "UserName"},
		{"user name field", "UserNameField"},
		{"ALREADY_UPPER", "AlreadyUpper"},
	}

	for _, tt := range tests {
		if got := ToPascalCase(tt.input); got != tt.want {
			t.Errorf("ToPascalCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"user_name", "userName"},
		{"UserName", "username"}, // no word breaks, single word
		{"first name", "firstName"},
	}

	for _, tt := range tests {
		if got := ToCamelCase(tt.input); got != tt.want {
			t.Errorf("ToCamelCase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Property Name Sanitization Tests
// -----------------------------------------------------------------------------

func TestPropertyName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Plain names
		{"Email", "email"},
		{"First Name", "first_name"},

		// Question and count suffixes
		{"Paid?", "is_paid"},
		{"Job #", "job_number"},

		// Symbol replacements
		{"Email & Phone", "email_and_phone"},
		{"% Complete", "percent_complete"},
		{"Price + Tax", "price_plus_tax"},
		{"Rate (per hour)", "rate_per_hour"},
		{"Notes / Comments", "notes_slash_comments"},

		// Leading digits
		{"1st Place", "first_place"},
		{"2nd Attempt", "second_attempt"},
		{"123 Count", "n_123_count"},

		// Reserved names
		{"id", "identifier"},
		{"Created Time", "created_at_time"},

		// Whitespace collapse
		{"  Double  Spaced  ", "double_spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := PropertyName(tt.input); got != tt.want {
				t.Errorf("PropertyName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPropertyNameIdempotent(t *testing.T) {
	inputs := []string{
		"Email", "Paid?", "1st Place", "Price + Tax", "  Double  Spaced  ",
	}
	for _, in := range inputs {
		once := PropertyName(in)
		twice := PropertyName(once)
		if once != twice {
			t.Errorf("PropertyName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestPropertyPascalAndCamel(t *testing.T) {
	if got := PropertyPascal("email address"); got != "EmailAddress" {
		t.Errorf("PropertyPascal = %q, want EmailAddress", got)
	}
	if got := PropertyCamel("First Name"); got != "firstName" {
		t.Errorf("PropertyCamel = %q, want firstName", got)
	}
	// Go keywords get a trailing underscore in camelCase position.
	if got := PropertyCamel("Type"); got != "type_" {
		t.Errorf("PropertyCamel(Type) = %q, want type_", got)
	}
}

func TestDetectDuplicates(t *testing.T) {
	dups := DetectDuplicates([]string{"Email", "email", "Phone", "Status"})
	if !reflect.DeepEqual(dups, []string{"email"}) {
		t.Errorf("DetectDuplicates = %v, want [email]", dups)
	}

	if got := DetectDuplicates([]string{"A", "B"}); got != nil {
		t.Errorf("expected no duplicates, got %v", got)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\n\nb", 2)
	want := "  a\n\n  b"
	if got != want {
		t.Errorf("Indent = %q, want %q", got, want)
	}
}
