package formula

import (
	"regexp"
	"strings"
)

// Format pretty-prints a formula for display: simple formulas stay on one
// line, nested IF/SWITCH/IFS and long calls get one argument per line with
// two-space indentation. Malformed input is returned unchanged; Format
// never fails.
func Format(src string) string {
	if strings.TrimSpace(src) == "" {
		return src
	}
	normalized := normalizeSpace(src)
	if isSimple(normalized) {
		return normalized
	}
	return formatComplex(normalized)
}

// strState tracks whether a scan position sits inside a single-quoted
// string, a double-quoted string, or a field reference, so structural
// characters inside them are not misread.
type strState struct {
	single bool
	double bool
	brace  bool
}

func (s strState) inAny() bool { return s.single || s.double || s.brace }

// step consumes src[i], updating the state, and returns the next index.
// Escape sequences inside strings are skipped whole.
func (s *strState) step(src string, i int) int {
	c := src[i]
	if (s.single || s.double) && c == '\\' && i+1 < len(src) {
		return i + 2
	}
	switch {
	case c == '\'' && !s.double && !s.brace:
		s.single = !s.single
	case c == '"' && !s.single && !s.brace:
		s.double = !s.double
	case c == '{' && !s.single && !s.double:
		s.brace = true
	case c == '}' && !s.single && !s.double:
		s.brace = false
	}
	return i + 1
}

// matchingParen returns the index of the close paren matching the open
// paren at start, or -1.
func matchingParen(src string, start int) int {
	if start >= len(src) || src[start] != '(' {
		return -1
	}
	var st strState
	depth := 0
	for i := start; i < len(src); {
		c := src[i]
		if !st.inAny() {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return i
				}
			}
		}
		i = st.step(src, i)
	}
	return -1
}

// splitArgs splits a comma-separated argument list at depth zero,
// respecting strings and field references. Each argument is trimmed.
func splitArgs(src string) []string {
	var args []string
	var current strings.Builder
	var st strState
	depth := 0
	for i := 0; i < len(src); {
		c := src[i]
		if !st.inAny() {
			switch c {
			case '(':
				depth++
			case ')':
				depth--
			case ',':
				if depth == 0 {
					args = append(args, strings.TrimSpace(current.String()))
					current.Reset()
					i++
					continue
				}
			}
		}
		next := st.step(src, i)
		current.WriteString(src[i:next])
		i = next
	}
	if current.Len() > 0 {
		args = append(args, strings.TrimSpace(current.String()))
	}
	return args
}

// nestingDepth returns the maximum paren nesting outside strings.
func nestingDepth(src string) int {
	var st strState
	depth, max := 0, 0
	for i := 0; i < len(src); {
		if !st.inAny() {
			switch src[i] {
			case '(':
				depth++
				if depth > max {
					max = depth
				}
			case ')':
				depth--
			}
		}
		i = st.step(src, i)
	}
	return max
}

var branchCallRe = regexp.MustCompile(`(?i)^(IF|SWITCH|IFS)\s*\(`)
var callRe = regexp.MustCompile(`(?i)^([A-Z_][A-Z0-9_]*)\s*\(`)
var embeddedCallRe = regexp.MustCompile(`(?i)([A-Z_][A-Z0-9_]*)\s*\(`)

// isSimple reports whether a formula should stay single-line: IF/SWITCH/IFS
// with multiple arguments always expand, everything else stays flat when it
// is short or nests at most one level.
func isSimple(src string) bool {
	if m := branchCallRe.FindStringIndex(src); m != nil {
		open := m[1] - 1
		if close := matchingParen(src, open); close > 0 {
			if len(splitArgs(src[open+1:close])) > 1 {
				return false
			}
		}
	}
	if len(src) <= 80 {
		return true
	}
	return nestingDepth(src) <= 1
}

// normalizeSpace collapses runs of whitespace outside strings and field
// references to a single space.
func normalizeSpace(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	var st strState
	prevSpace := false
	for i := 0; i < len(src); {
		c := src[i]
		if !st.inAny() && (c == ' ' || c == '\t' || c == '\n' || c == '\r') {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			i++
			continue
		}
		prevSpace = false
		next := st.step(src, i)
		b.WriteString(src[i:next])
		i = next
	}
	return strings.TrimSpace(b.String())
}

const indentStep = "  "

func formatComplex(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return src
	}

	// Literals and field references pass through untouched.
	if len(src) >= 2 {
		if (src[0] == '"' && src[len(src)-1] == '"') || (src[0] == '\'' && src[len(src)-1] == '\'') {
			return src
		}
		if src[0] == '{' && src[len(src)-1] == '}' {
			return src
		}
	}

	if src[0] == '(' {
		close := matchingParen(src, 0)
		if close == len(src)-1 {
			inner := formatComplex(src[1 : len(src)-1])
			if !strings.Contains(inner, "\n") {
				return "(" + inner + ")"
			}
			var b strings.Builder
			b.WriteString("(\n")
			for _, line := range strings.Split(inner, "\n") {
				b.WriteString(indentStep + line + "\n")
			}
			b.WriteString(")")
			return b.String()
		}
		if close > 0 {
			prefix := formatComplex(src[:close+1])
			suffix := strings.TrimSpace(src[close+1:])
			if suffix == "" {
				return prefix
			}
			return prefix + " " + formatComplex(suffix)
		}
	}

	m := callRe.FindStringSubmatchIndex(src)
	if m == nil {
		// Not a leading call; format an embedded call like {x}*IF(...)
		// if one exists.
		if em := embeddedCallRe.FindStringIndex(src); em != nil {
			return src[:em[0]] + formatComplex(src[em[0]:])
		}
		return src
	}

	name := src[m[2]:m[3]]
	open := m[1] - 1
	close := matchingParen(src, open)
	if close == -1 {
		return src
	}
	args := splitArgs(src[open+1 : close])
	suffix := strings.TrimSpace(src[close+1:])

	nested := false
	for _, arg := range args {
		if embeddedCallRe.MatchString(arg) {
			nested = true
			break
		}
	}
	flat := name + "(" + strings.Join(args, ", ") + ")"
	upper := strings.ToUpper(name)
	expand := (upper == "IF" || upper == "SWITCH" || upper == "IFS") && len(args) > 1 ||
		nested || len(flat) > 50

	var result string
	switch {
	case len(args) == 0:
		result = name + "()"
	case !expand:
		result = flat
	default:
		var b strings.Builder
		b.WriteString(name + "(\n")
		for i, arg := range args {
			comma := ","
			if i == len(args)-1 {
				comma = ""
			}
			lines := strings.Split(formatComplex(arg), "\n")
			for j, line := range lines {
				if j == len(lines)-1 {
					b.WriteString(indentStep + line + comma + "\n")
				} else {
					b.WriteString(indentStep + line + "\n")
				}
			}
		}
		b.WriteString(")")
		result = b.String()
	}

	if suffix != "" {
		formatted := formatComplex(suffix)
		if strings.Contains(formatted, "\n") {
			return result + "\n" + formatted
		}
		return result + " " + formatted
	}
	return result
}
