// Package meta models the Airtable base metadata API: the schema of a base,
// its tables, fields, and views. It is the input side of code generation
// and drift detection; nothing here touches record data.
package meta

import (
	"encoding/json"
	"sort"
	"strings"
)

// FieldType is the wire name of an Airtable field type.
type FieldType string

const (
	TypeSingleLineText       FieldType = "singleLineText"
	TypeMultilineText        FieldType = "multilineText"
	TypeRichText             FieldType = "richText"
	TypeEmail                FieldType = "email"
	TypeURL                  FieldType = "url"
	TypePhoneNumber          FieldType = "phoneNumber"
	TypeBarcode              FieldType = "barcode"
	TypeSingleSelect         FieldType = "singleSelect"
	TypeMultipleSelects      FieldType = "multipleSelects"
	TypeNumber               FieldType = "number"
	TypeCurrency             FieldType = "currency"
	TypePercent              FieldType = "percent"
	TypeRating               FieldType = "rating"
	TypeDuration             FieldType = "duration"
	TypeAutoNumber           FieldType = "autoNumber"
	TypeCount                FieldType = "count"
	TypeCheckbox             FieldType = "checkbox"
	TypeDate                 FieldType = "date"
	TypeDateTime             FieldType = "dateTime"
	TypeCreatedTime          FieldType = "createdTime"
	TypeLastModifiedTime     FieldType = "lastModifiedTime"
	TypeMultipleAttachments  FieldType = "multipleAttachments"
	TypeMultipleRecordLinks  FieldType = "multipleRecordLinks"
	TypeMultipleLookupValues FieldType = "multipleLookupValues"
	TypeLookup               FieldType = "lookup"
	TypeFormula              FieldType = "formula"
	TypeRollup               FieldType = "rollup"
	TypeSingleCollaborator   FieldType = "singleCollaborator"
	TypeCreatedBy            FieldType = "createdBy"
	TypeButton               FieldType = "button"
)

// FormulaKind names the typed formula handle a field maps to.
type FormulaKind int

const (
	KindNone FormulaKind = iota
	KindText
	KindNumber
	KindBool
	KindDate
	KindAttachments
)

func (k FormulaKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindAttachments:
		return "attachments"
	default:
		return "none"
	}
}

// formulaKinds maps field types to the formula handle that can filter on
// them. Types absent here (links, lookups, buttons) get KindNone and no
// typed accessor in generated bindings.
var formulaKinds = map[FieldType]FormulaKind{
	TypeSingleLineText:      KindText,
	TypeMultilineText:       KindText,
	TypeRichText:            KindText,
	TypeEmail:               KindText,
	TypeURL:                 KindText,
	TypePhoneNumber:         KindText,
	TypeBarcode:             KindText,
	TypeSingleSelect:        KindText,
	TypeMultipleSelects:     KindText,
	TypeFormula:             KindText,
	TypeNumber:              KindNumber,
	TypeCurrency:            KindNumber,
	TypePercent:             KindNumber,
	TypeRating:              KindNumber,
	TypeDuration:            KindNumber,
	TypeAutoNumber:          KindNumber,
	TypeCount:               KindNumber,
	TypeRollup:              KindNumber,
	TypeCheckbox:            KindBool,
	TypeDate:                KindDate,
	TypeDateTime:            KindDate,
	TypeCreatedTime:         KindDate,
	TypeLastModifiedTime:    KindDate,
	TypeMultipleAttachments: KindAttachments,
}

// FormulaKind returns the typed handle kind for a field type.
func (t FieldType) FormulaKind() FormulaKind {
	return formulaKinds[t]
}

// computedTypes are derived server-side and rejected on record writes.
var computedTypes = map[FieldType]bool{
	TypeFormula:              true,
	TypeRollup:               true,
	TypeLookup:               true,
	TypeMultipleLookupValues: true,
	TypeCount:                true,
	TypeAutoNumber:           true,
	TypeCreatedTime:          true,
	TypeLastModifiedTime:     true,
	TypeCreatedBy:            true,
	TypeButton:               true,
}

// IsComputed reports whether the field type is read-only on the record API.
func (t FieldType) IsComputed() bool {
	return computedTypes[t]
}

// Choice is one option of a select field.
type Choice struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SelectOptions is the options payload of single/multiple select fields.
type SelectOptions struct {
	Choices []Choice `json:"choices"`
}

// FormulaOptions is the options payload of a formula field.
type FormulaOptions struct {
	IsValid            bool     `json:"isValid"`
	Formula            string   `json:"formula"`
	ReferencedFieldIDs []string `json:"referencedFieldIds"`
}

// LinkOptions is the options payload of a record-link field.
type LinkOptions struct {
	LinkedTableID            string `json:"linkedTableId"`
	IsReversed               bool   `json:"isReversed"`
	PrefersSingleRecordLink  bool   `json:"prefersSingleRecordLink"`
	InverseLinkFieldID       string `json:"inverseLinkFieldId"`
	ViewIDForRecordSelection string `json:"viewIdForRecordSelection,omitempty"`
}

// Field is one column of a table. Options is kept raw; typed views of it
// are decoded on demand.
type Field struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        FieldType       `json:"type"`
	Description string          `json:"description,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
}

// SelectOptions decodes the field's options as select choices.
func (f Field) SelectOptions() (SelectOptions, error) {
	var o SelectOptions
	err := decodeOptions(f.Options, &o)
	return o, err
}

// FormulaOptions decodes the field's options as a formula definition.
func (f Field) FormulaOptions() (FormulaOptions, error) {
	var o FormulaOptions
	err := decodeOptions(f.Options, &o)
	return o, err
}

// LinkOptions decodes the field's options as a record link definition.
func (f Field) LinkOptions() (LinkOptions, error) {
	var o LinkOptions
	err := decodeOptions(f.Options, &o)
	return o, err
}

func decodeOptions(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// View is a saved view of a table.
type View struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is one table of a base.
type Table struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PrimaryFieldID string  `json:"primaryFieldId"`
	Description    string  `json:"description,omitempty"`
	Fields         []Field `json:"fields"`
	Views          []View  `json:"views"`
}

// Field returns the field with the given display name.
func (t *Table) Field(name string) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// PrimaryField returns the table's primary field.
func (t *Table) PrimaryField() (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].ID == t.PrimaryFieldID {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

// FieldIDsByName maps display names to field ids, the input every formula
// handle constructor takes.
func (t *Table) FieldIDsByName() map[string]string {
	m := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		m[f.Name] = f.ID
	}
	return m
}

// ViewIDsByName maps view display names to view ids.
func (t *Table) ViewIDsByName() map[string]string {
	m := make(map[string]string, len(t.Views))
	for _, v := range t.Views {
		m[v.Name] = v.ID
	}
	return m
}

// FieldNames returns the field display names in schema order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Schema is the full metadata of a base.
type Schema struct {
	Tables []Table `json:"tables"`
}

// Table returns the table with the given display name.
func (s *Schema) Table(name string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// TableByID returns the table with the given id.
func (s *Schema) TableByID(id string) (*Table, bool) {
	for i := range s.Tables {
		if s.Tables[i].ID == id {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// TableNames returns the table display names in schema order.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Sort orders tables, their fields, and their views case-insensitively by
// display name, giving deterministic output regardless of what order the
// API returns them in.
func (s *Schema) Sort() {
	sort.SliceStable(s.Tables, func(i, j int) bool {
		return strings.ToLower(s.Tables[i].Name) < strings.ToLower(s.Tables[j].Name)
	})
	for i := range s.Tables {
		t := &s.Tables[i]
		sort.SliceStable(t.Fields, func(a, b int) bool {
			return strings.ToLower(t.Fields[a].Name) < strings.ToLower(t.Fields[b].Name)
		})
		sort.SliceStable(t.Views, func(a, b int) bool {
			return strings.ToLower(t.Views[a].Name) < strings.ToLower(t.Views[b].Name)
		})
	}
}
