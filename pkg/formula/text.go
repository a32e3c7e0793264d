package formula

import "strings"

// Match controls the normalization applied to both sides of a text
// predicate before comparison. The zero value compares verbatim.
type Match struct {
	// CaseInsensitive lowercases both sides with LOWER().
	CaseInsensitive bool
	// Trim strips surrounding whitespace from both sides with TRIM().
	Trim bool
}

// matchFold is the default for the substring predicates: case-insensitive
// and whitespace-tolerant, because that is what filter UIs want.
var matchFold = Match{CaseInsensitive: true, Trim: true}

func pickMatch(opts []Match, def Match) Match {
	if len(opts) > 0 {
		return opts[0]
	}
	return def
}

// wrap applies the configured normalization functions to a rendered operand,
// folding before trimming so the trim sees the final text.
func (m Match) wrap(o Operand) string {
	expr := o.render()
	if m.CaseInsensitive {
		expr = call("LOWER", expr)
	}
	if m.Trim {
		expr = call("TRIM", expr)
	}
	return expr
}

// TextField is a handle over a single-line text, long text, email, URL, or
// select field.
type TextField struct {
	FieldRef
}

// NewTextField builds a text handle from a display name and the table's
// name-to-id map.
func NewTextField(name string, ids map[string]string) (TextField, error) {
	ref, err := NewFieldRef(name, ids)
	return TextField{FieldRef: ref}, err
}

// Equals compares for exact equality. The default is case-sensitive with no
// trimming; pass a Match to relax it.
func (f TextField) Equals(value string, opts ...Match) string {
	m := pickMatch(opts, Match{})
	return compare(m.wrap(f.Operand()), "=", m.wrap(Lit(value)))
}

// NotEquals compares for exact inequality.
func (f TextField) NotEquals(value string) string {
	return compare(f.ref(), "!=", quote(value))
}

// find renders the shared FIND(needle,haystack) core of the substring
// predicates with the normalization applied to both sides.
func (f TextField) find(value string, m Match) string {
	return fnFind(m.wrap(Lit(value)), m.wrap(f.Operand()))
}

// Contains matches when value occurs anywhere in the field. Defaults to
// case-insensitive, trimmed matching.
func (f TextField) Contains(value string, opts ...Match) string {
	return f.find(value, pickMatch(opts, matchFold)) + ">0"
}

// NotContains matches when value occurs nowhere in the field.
func (f TextField) NotContains(value string, opts ...Match) string {
	return f.find(value, pickMatch(opts, matchFold)) + "=0"
}

// StartsWith matches when the field begins with value; FIND returns a
// 1-based index, so the prefix case is index 1.
func (f TextField) StartsWith(value string, opts ...Match) string {
	return f.find(value, pickMatch(opts, matchFold)) + "=1"
}

// NotStartsWith matches when the field does not begin with value.
func (f TextField) NotStartsWith(value string, opts ...Match) string {
	return f.find(value, pickMatch(opts, matchFold)) + "!=1"
}

// endsWith renders the suffix test with the given comparison: the needle's
// index must equal len(field)-len(needle)+1.
func (f TextField) endsWith(value string, op string, m Match) string {
	expected := fnLen(m.wrap(f.Operand())) + " - " + fnLen(m.wrap(Lit(value))) + " + 1"
	return f.find(value, m) + " " + op + " " + expected
}

// EndsWith matches when the field ends with value.
func (f TextField) EndsWith(value string, opts ...Match) string {
	return f.endsWith(value, "=", pickMatch(opts, matchFold))
}

// NotEndsWith matches when the field does not end with value.
func (f TextField) NotEndsWith(value string, opts ...Match) string {
	return f.endsWith(value, "!=", pickMatch(opts, matchFold))
}

// ContainsAny matches when at least one of the values occurs in the field.
func (f TextField) ContainsAny(values []string, opts ...Match) string {
	frags := make([]string, len(values))
	for i, v := range values {
		frags[i] = f.Contains(v, opts...)
	}
	return Or(frags...)
}

// ContainsAll matches when every value occurs in the field.
func (f TextField) ContainsAll(values []string, opts ...Match) string {
	frags := make([]string, len(values))
	for i, v := range values {
		frags[i] = f.Contains(v, opts...)
	}
	return And(frags...)
}

// InList matches when the field equals any of the values. An empty list
// matches nothing, a single value collapses to a plain equality, and
// anything longer becomes an OR of equalities.
func (f TextField) InList(values []string, opts ...Match) string {
	switch len(values) {
	case 0:
		return False()
	case 1:
		return f.Equals(values[0], opts...)
	default:
		frags := make([]string, len(values))
		for i, v := range values {
			frags[i] = f.Equals(v, opts...)
		}
		return Or(frags...)
	}
}

// Matches tests the field against an RE2 regular expression.
func (f TextField) Matches(pattern string) string {
	return fnRegexMatch(f.ref(), pattern)
}

// phoneStrip lists the punctuation removed from both sides of PhoneEquals,
// in the order the nested SUBSTITUTE calls are applied.
var phoneStrip = []string{" ", "-", "(", ")", "+", "."}

// PhoneEquals compares phone numbers ignoring formatting: the field is
// wrapped in SUBSTITUTE calls that strip punctuation, and the value has the
// same characters removed before quoting.
func (f TextField) PhoneEquals(value string) string {
	expr := f.ref()
	cleaned := value
	for _, ch := range phoneStrip {
		expr = fnSubstitute(expr, ch, "")
		cleaned = strings.ReplaceAll(cleaned, ch, "")
	}
	return compare(expr, "=", quote(cleaned))
}
