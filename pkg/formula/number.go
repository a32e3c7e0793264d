package formula

// NumberField is a handle over a number, currency, percent, rating,
// duration, or count field. Values render without exponent notation, so
// integers stay integers in the emitted formula.
type NumberField struct {
	FieldRef
}

// NewNumberField builds a number handle from a display name and the table's
// name-to-id map.
func NewNumberField(name string, ids map[string]string) (NumberField, error) {
	ref, err := NewFieldRef(name, ids)
	return NumberField{FieldRef: ref}, err
}

func (f NumberField) cmp(op string, v float64) string {
	return compare(f.ref(), op, formatNumber(v))
}

// Equals matches when the field equals v.
func (f NumberField) Equals(v float64) string { return f.cmp("=", v) }

// NotEquals matches when the field differs from v.
func (f NumberField) NotEquals(v float64) string { return f.cmp("!=", v) }

// GreaterThan matches strictly greater values.
func (f NumberField) GreaterThan(v float64) string { return f.cmp(">", v) }

// GreaterThanOrEqual matches values at or above v.
func (f NumberField) GreaterThanOrEqual(v float64) string { return f.cmp(">=", v) }

// LessThan matches strictly smaller values.
func (f NumberField) LessThan(v float64) string { return f.cmp("<", v) }

// LessThanOrEqual matches values at or below v.
func (f NumberField) LessThanOrEqual(v float64) string { return f.cmp("<=", v) }

// Between matches values inside [min,max] when inclusive, (min,max)
// otherwise.
func (f NumberField) Between(min, max float64, inclusive bool) string {
	if inclusive {
		return And(f.GreaterThanOrEqual(min), f.LessThanOrEqual(max))
	}
	return And(f.GreaterThan(min), f.LessThan(max))
}

// InList matches when the field equals any of the values, with the same
// collapse rules as TextField.InList.
func (f NumberField) InList(values []float64) string {
	switch len(values) {
	case 0:
		return False()
	case 1:
		return f.Equals(values[0])
	default:
		frags := make([]string, len(values))
		for i, v := range values {
			frags[i] = f.Equals(v)
		}
		return Or(frags...)
	}
}

// EqualsField compares this field against another field instead of a
// literal value.
func (f NumberField) EqualsField(other FieldRef) string {
	return compare(f.ref(), "=", other.ref())
}

// GreaterThanField compares this field against another field.
func (f NumberField) GreaterThanField(other FieldRef) string {
	return compare(f.ref(), ">", other.ref())
}

// LessThanField compares this field against another field.
func (f NumberField) LessThanField(other FieldRef) string {
	return compare(f.ref(), "<", other.ref())
}
