package strutil

import (
	"strings"
	"unicode"
)

// Airtable field and table names are free-form display strings. Before they
// can become Go identifiers they are rewritten into plain words: symbols are
// spelled out, delimiters collapse to spaces, and anything left that is not
// a letter or digit is dropped.

// symbolWords maps symbols to word replacements, applied in order. Order
// matters: multi-character sequences must be replaced before their parts.
var symbolWords = []struct{ old, new string }{
	{"<<", " "},
	{">>", " "},
	{"< ", " less than "},
	{" <", " less than "},
	{"> ", " greater than "},
	{" >", " greater than "},
	{"w/o", " without "},
	{"w/", " with "},
	{"$/", " dollars per "},
	{"$ ", "dollar "},
	{"$", " d "},
	{"# ", " number "},
	{"#", " h "},
	{"+", " plus "},
	{"-", " dash "},
	{"&", " and "},
	{"=", " equals "},
	{"%", " percent "},
	{"@", " at "},
	{"!", " e "},
	{"?", " q "},
	{"^", " power "},
	{"*", " star "},
	{"/", " slash "},
	{"~", " tilde "},
}

// ordinalPrefixes rewrites a leading ordinal so the name does not start with
// a digit.
var ordinalPrefixes = []struct{ old, new string }{
	{"10th", "tenth"},
	{"1st", "first"},
	{"2nd", "second"},
	{"3rd", "third"},
	{"4th", "fourth"},
	{"5th", "fifth"},
	{"6th", "sixth"},
	{"7th", "seventh"},
	{"8th", "eighth"},
	{"9th", "ninth"},
}

// goKeywords are names that cannot be used as Go identifiers.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// PropertyName rewrites a raw display name into a sanitized snake_case
// property name. The result contains only lowercase letters, digits, and
// underscores and never begins with a digit. Sanitization is idempotent.
func PropertyName(raw string) string {
	text := raw

	// A trailing "?" marks a boolean question; a trailing "#" marks a count.
	if strings.HasSuffix(text, "?") {
		text = "is " + strings.TrimSuffix(text, "?")
	}
	if strings.HasSuffix(text, " #") {
		text = strings.TrimSuffix(text, "#") + "number"
	}

	for _, r := range symbolWords {
		text = strings.ReplaceAll(text, r.old, r.new)
	}

	// Remaining punctuation becomes a word break.
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, text)

	text = spaceToSnake(text)
	text = strings.Trim(text, "_")
	text = fixLeadingDigit(text)
	text = renameReserved(text)

	return text
}

// PropertyPascal returns the PascalCase form of the sanitized property name,
// suitable for an exported Go identifier.
func PropertyPascal(raw string) string {
	return ToPascalCase(PropertyName(raw))
}

// PropertyCamel returns the camelCase form of the sanitized property name.
// Go keywords get a trailing underscore.
func PropertyCamel(raw string) string {
	name := ToCamelCase(PropertyName(raw))
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

// spaceToSnake collapses spaces into single underscores and lowercases.
func spaceToSnake(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Join(strings.Fields(text), "_")
	for strings.Contains(text, "__") {
		text = strings.ReplaceAll(text, "__", "_")
	}
	return strings.ToLower(text)
}

// fixLeadingDigit rewrites names that begin with a digit: known ordinals are
// spelled out, anything else gets an "n_" prefix.
func fixLeadingDigit(text string) string {
	if text == "" || !unicode.IsDigit(rune(text[0])) {
		return text
	}
	for _, p := range ordinalPrefixes {
		if strings.HasPrefix(text, p.old) {
			return p.new + text[len(p.old):]
		}
	}
	return "n_" + text
}

// renameReserved renames properties that would collide with names the record
// envelope owns.
func renameReserved(text string) string {
	switch text {
	case "id":
		return "identifier"
	case "created_time":
		return "created_at_time"
	}
	return text
}

// DetectDuplicates returns the sanitized names that more than one raw name
// maps to, in first-seen order. Callers warn on these rather than fail, so a
// rename in the base does not hard-break generation.
func DetectDuplicates(raw []string) []string {
	seen := make(map[string]int, len(raw))
	var dups []string
	for _, r := range raw {
		name := PropertyName(r)
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}
