package formula

// AttachmentsField is a handle over an attachments field. The cell holds a
// value list, so emptiness is expressed through LEN rather than the blank
// marker, and counting is the only other test the formula language offers
// for attachment cells.
type AttachmentsField struct {
	FieldRef
}

// NewAttachmentsField builds an attachments handle from a display name and
// the table's name-to-id map.
func NewAttachmentsField(name string, ids map[string]string) (AttachmentsField, error) {
	ref, err := NewFieldRef(name, ids)
	return AttachmentsField{FieldRef: ref}, err
}

// IsEmpty matches records with no attachments.
func (f AttachmentsField) IsEmpty() string {
	return compare(fnLen(f.ref()), "=", "0")
}

// IsNotEmpty matches records with at least one attachment.
func (f AttachmentsField) IsNotEmpty() string {
	return compare(fnLen(f.ref()), ">", "0")
}

// CountIs matches records with exactly n attachments.
func (f AttachmentsField) CountIs(n int) string {
	return compare(fnLen(f.ref()), "=", formatNumber(float64(n)))
}
