package formula

// RecordIDHelper builds predicates over the implicit record id. Record ids
// are compared with single-quoted literals, matching the form the Airtable
// docs use for RECORD_ID().
type RecordIDHelper struct{}

// RecordID is the shared entry point: formula.RecordID.Equals("rec...").
var RecordID RecordIDHelper

// Equals matches the record whose id is id.
func (RecordIDHelper) Equals(id string) string {
	return "RECORD_ID()='" + id + "'"
}

// NotEquals matches every record except id.
func (RecordIDHelper) NotEquals(id string) string {
	return "RECORD_ID()!='" + id + "'"
}

// InList matches any of the given record ids. An empty list matches
// nothing, a single id collapses to a plain equality, and anything longer
// becomes an OR of equalities.
func (r RecordIDHelper) InList(ids []string) string {
	switch len(ids) {
	case 0:
		return False()
	case 1:
		return r.Equals(ids[0])
	default:
		frags := make([]string, len(ids))
		for i, id := range ids {
			frags[i] = r.Equals(id)
		}
		return Or(frags...)
	}
}
