package formula

import (
	"sort"

	"github.com/danielrbaughman/myairtable/internal/aterr"
)

// ValidateFieldName checks that name is one of the allowed display names
// for table, returning a coded error with a fuzzy suggestion when it is
// not. Static typing usually guarantees membership already; this is the
// shared defense for names arriving from non-typed boundaries such as
// config files or CLI flags.
func ValidateFieldName(name, table string, allowed []string) error {
	for _, known := range allowed {
		if known == name {
			return nil
		}
	}
	return aterr.NewUnknownFieldError(name, table, allowed)
}

// Table binds a table's field catalog so typed handles can be constructed
// with membership checking. Generated bindings build one per table from
// their name-to-id maps; hand-written code can build one with a nil map, in
// which case any field name is accepted and used verbatim.
type Table struct {
	name  string
	ids   map[string]string
	names []string
}

// NewTable builds a table handle from its display name and field
// name-to-id map.
func NewTable(name string, fieldIDs map[string]string) Table {
	names := make([]string, 0, len(fieldIDs))
	for n := range fieldIDs {
		names = append(names, n)
	}
	sort.Strings(names)
	return Table{name: name, ids: fieldIDs, names: names}
}

// Name returns the table's display name.
func (t Table) Name() string { return t.name }

// FieldNames returns the known field display names in sorted order.
func (t Table) FieldNames() []string { return t.names }

func (t Table) check(field string) error {
	if len(t.ids) == 0 {
		return nil
	}
	return ValidateFieldName(field, t.name, t.names)
}

// Field returns an untyped handle, for emptiness tests and operand use.
func (t Table) Field(name string) (FieldRef, error) {
	if err := t.check(name); err != nil {
		return FieldRef{}, err
	}
	return NewFieldRef(name, t.ids)
}

// Text returns a text handle for the named field.
func (t Table) Text(name string) (TextField, error) {
	if err := t.check(name); err != nil {
		return TextField{}, err
	}
	return NewTextField(name, t.ids)
}

// Number returns a number handle for the named field.
func (t Table) Number(name string) (NumberField, error) {
	if err := t.check(name); err != nil {
		return NumberField{}, err
	}
	return NewNumberField(name, t.ids)
}

// Bool returns a checkbox handle for the named field.
func (t Table) Bool(name string) (BoolField, error) {
	if err := t.check(name); err != nil {
		return BoolField{}, err
	}
	return NewBoolField(name, t.ids)
}

// Date returns a date handle for the named field.
func (t Table) Date(name string) (DateField, error) {
	if err := t.check(name); err != nil {
		return DateField{}, err
	}
	return NewDateField(name, t.ids)
}

// Attachments returns an attachments handle for the named field.
func (t Table) Attachments(name string) (AttachmentsField, error) {
	if err := t.check(name); err != nil {
		return AttachmentsField{}, err
	}
	return NewAttachmentsField(name, t.ids)
}
