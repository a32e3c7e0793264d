package formula

import (
	"strconv"
	"strings"
)

// operandKind discriminates the three shapes a value can take inside a
// formula: a quoted string literal, a field reference, or a raw fragment
// spliced in verbatim.
type operandKind int

const (
	kindLiteral operandKind = iota
	kindField
	kindRaw
)

// Operand is a value position in a formula. Use Lit for string values that
// must be quoted and escaped, Raw for fragments that are already valid
// formula text, and FieldRef.Operand for field references. The zero value
// renders as the empty string literal.
type Operand struct {
	kind operandKind
	text string
}

// Lit wraps a string value as a quoted literal. Double quotes inside the
// value are escaped exactly once when the operand renders.
func Lit(value string) Operand {
	return Operand{kind: kindLiteral, text: value}
}

// Raw wraps an existing formula fragment so it can sit in a value position
// without being re-quoted. The caller is responsible for its validity.
func Raw(expr string) Operand {
	return Operand{kind: kindRaw, text: expr}
}

func (o Operand) render() string {
	switch o.kind {
	case kindLiteral:
		return quote(o.text)
	case kindField:
		return "{" + o.text + "}"
	default:
		return o.text
	}
}

// quote renders a double-quoted string literal, escaping embedded double
// quotes. Escaping happens here and nowhere else, so a value passes through
// exactly one quoting step no matter how deep the expression nests.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// formatNumber renders a float without exponent notation and without
// trailing zeros, so 10.0 renders as "10" and 0.5 as "0.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// call renders NAME(arg,...) with no spaces, matching the condensed form
// the rest of the package emits.
func call(name string, args ...string) string {
	return name + "(" + strings.Join(args, ",") + ")"
}

// Nullary language constants.

// True renders the TRUE() constant.
func True() string { return "TRUE()" }

// False renders the FALSE() constant.
func False() string { return "FALSE()" }

// Blank renders the BLANK() sentinel used for emptiness tests.
func Blank() string { return "BLANK()" }

// Now renders NOW(), the server-side current timestamp.
func Now() string { return "NOW()" }

// Today renders TODAY(), the server-side current date at midnight.
func Today() string { return "TODAY()" }

// String and matching primitives. These wrap operands in the corresponding
// Airtable functions; the typed field methods compose them.

func fnLower(o Operand) string { return call("LOWER", o.render()) }
func fnUpper(o Operand) string { return call("UPPER", o.render()) }
func fnTrim(o Operand) string  { return call("TRIM", o.render()) }

func fnLen(expr string) string { return call("LEN", expr) }

// fnFind renders FIND(needle,haystack); the result is a 1-based index, or 0
// when the needle does not occur.
func fnFind(needle, haystack string) string { return call("FIND", needle, haystack) }

func fnSubstitute(expr, old, new string) string {
	return call("SUBSTITUTE", expr, quote(old), quote(new))
}

func fnRegexMatch(expr, pattern string) string {
	return call("REGEX_MATCH", expr, quote(pattern))
}

// Date primitives. DATETIME_PARSE takes a single-quoted ISO timestamp;
// DATETIME_DIFF takes two datetime expressions and a single-quoted unit.

func fnDatetimeParse(iso string) string {
	return call("DATETIME_PARSE", "'"+iso+"'")
}

func fnDatetimeDiff(a, b, unit string) string {
	return call("DATETIME_DIFF", a, b, "'"+unit+"'")
}
