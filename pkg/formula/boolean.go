package formula

// BoolField is a handle over a checkbox field.
type BoolField struct {
	FieldRef
}

// NewBoolField builds a checkbox handle from a display name and the table's
// name-to-id map.
func NewBoolField(name string, ids map[string]string) (BoolField, error) {
	ref, err := NewFieldRef(name, ids)
	return BoolField{FieldRef: ref}, err
}

// IsTrue matches checked records.
func (f BoolField) IsTrue() string { return compare(f.ref(), "=", True()) }

// IsFalse matches unchecked records. An unchecked checkbox reads as blank,
// so this compares against FALSE() which blank coerces to.
func (f BoolField) IsFalse() string { return compare(f.ref(), "=", False()) }

// Equals matches against an explicit boolean value.
func (f BoolField) Equals(v bool) string {
	if v {
		return f.IsTrue()
	}
	return f.IsFalse()
}
