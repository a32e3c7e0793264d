package gen

import (
	"fmt"
	"strings"

	"github.com/danielrbaughman/myairtable/internal/strutil"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// Mermaid renders the schema as a mermaid erDiagram: one entity per table,
// one relationship per record-link field. Reverse link fields are skipped
// so each relationship appears once.
func Mermaid(schema *meta.Schema) []byte {
	var sb strings.Builder
	sb.WriteString("erDiagram\n")

	for _, t := range schema.Tables {
		fmt.Fprintf(&sb, "    %s {\n", entityName(t.Name))
		for _, f := range t.Fields {
			if f.Type == meta.TypeMultipleRecordLinks {
				continue
			}
			fmt.Fprintf(&sb, "        %s %s\n", mermaidType(f.Type), strutil.PropertyName(f.Name))
		}
		sb.WriteString("    }\n")
	}

	for _, t := range schema.Tables {
		for _, f := range t.Fields {
			if f.Type != meta.TypeMultipleRecordLinks {
				continue
			}
			link, err := f.LinkOptions()
			if err != nil || link.LinkedTableID == "" || link.IsReversed {
				continue
			}
			linked, ok := schema.TableByID(link.LinkedTableID)
			if !ok {
				continue
			}
			cardinality := "}o--o{"
			if link.PrefersSingleRecordLink {
				cardinality = "}o--||"
			}
			fmt.Fprintf(&sb, "    %s %s %s : %s\n",
				entityName(t.Name), cardinality, entityName(linked.Name),
				strutil.PropertyName(f.Name))
		}
	}

	return []byte(sb.String())
}

func entityName(table string) string {
	return strutil.PropertyPascal(table)
}

// mermaidType folds the wire field types into the few scalar names mermaid
// diagrams conventionally use.
func mermaidType(t meta.FieldType) string {
	switch t.FormulaKind() {
	case meta.KindNumber:
		return "number"
	case meta.KindBool:
		return "boolean"
	case meta.KindDate:
		return "datetime"
	case meta.KindAttachments:
		return "attachment"
	default:
		return "string"
	}
}
