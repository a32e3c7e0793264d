package formula

import "strings"

// Condense removes all whitespace outside string literals and field
// references, producing the canonical single-line form of a formula. It is
// the inverse of Format and idempotent: condensing an already-condensed
// formula returns it unchanged.
func Condense(src string) string {
	if strings.TrimSpace(src) == "" {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	for _, tok := range Tokenize(src) {
		if tok.Type == TokenWhitespace {
			continue
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}
