package formula

import (
	"strings"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

// fieldNameStripper removes characters that would break a {Field} reference:
// braces terminate the reference early, and Airtable rejects control
// whitespace inside names.
var fieldNameStripper = strings.NewReplacer("{", "", "}", "", "\n", "", "\t", "", "\r", "")

// FieldRef is the identity every typed handle is built on: the sanitized
// display name plus the id the formula actually references. When the
// name-to-id map has no entry for the name, the name itself is used, which
// keeps hand-written handles working against bases whose ids are unknown.
type FieldRef struct {
	name string
	id   string
}

// NewFieldRef sanitizes name and resolves it through ids. An empty name
// after sanitization is an error: a formula cannot reference a nameless
// field.
func NewFieldRef(name string, ids map[string]string) (FieldRef, error) {
	clean := fieldNameStripper.Replace(name)
	if strings.TrimSpace(clean) == "" {
		return FieldRef{}, aterr.New(aterr.ErrInvalidField, "field name is empty after sanitization").
			With("raw_name", name)
	}
	id := clean
	if resolved, ok := ids[clean]; ok && resolved != "" {
		id = resolved
	}
	return FieldRef{name: clean, id: id}, nil
}

// Name returns the sanitized display name.
func (f FieldRef) Name() string { return f.name }

// ID returns the identifier the handle references in formulas.
func (f FieldRef) ID() string { return f.id }

// Operand places the field reference in a value position.
func (f FieldRef) Operand() Operand {
	return Operand{kind: kindField, text: f.id}
}

// ref renders the braced reference form.
func (f FieldRef) ref() string { return "{" + f.id + "}" }

// IsEmpty matches records where the field has no value.
func (f FieldRef) IsEmpty() string { return f.ref() + "=" + Blank() }

// IsNotEmpty matches records where the field has any value. A bare field
// reference is truthy exactly when the field is non-empty.
func (f FieldRef) IsNotEmpty() string { return f.ref() }

// compare renders lhs OP rhs with no surrounding spaces.
func compare(lhs, op, rhs string) string { return lhs + op + rhs }
