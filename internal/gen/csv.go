package gen

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// CSV renders the schema as a flat field inventory, one row per field,
// useful for spreadsheets and audits.
func CSV(schema *meta.Schema) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"table", "table_id", "field", "field_id", "type", "computed", "description"}); err != nil {
		return nil, err
	}
	for _, t := range schema.Tables {
		for _, f := range t.Fields {
			row := []string{
				t.Name, t.ID,
				f.Name, f.ID,
				string(f.Type),
				strconv.FormatBool(f.Type.IsComputed()),
				f.Description,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
