// Package gen turns a base schema into Go bindings and documentation
// exports. Output is deterministic: tables and fields are emitted in the
// schema's (sorted) order, so regenerating against an unchanged base is a
// no-op diff.
package gen

import (
	"fmt"
	"strings"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/strutil"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// Options configures generation.
type Options struct {
	// Package is the generated package name.
	Package string
	// ModulePath is the import path of this module, used in generated
	// import blocks.
	ModulePath string
	// Overrides maps display names to the exported identifier to use
	// instead of the sanitized one.
	Overrides map[string]string
}

func (o Options) ident(name string) string {
	if override, ok := o.Overrides[name]; ok {
		return override
	}
	return strutil.PropertyPascal(name)
}

// effectiveNames applies overrides before duplicate detection, so an
// override can also resolve a collision.
func (o Options) effectiveNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		if override, ok := o.Overrides[n]; ok {
			out[i] = override
		} else {
			out[i] = n
		}
	}
	return out
}

func (o *Options) withDefaults() {
	if o.Package == "" {
		o.Package = "basegen"
	}
	if o.ModulePath == "" {
		o.ModulePath = "github.com/danielrbaughman/myairtable"
	}
}

// tableIdents is the resolved naming of one table: the Go identifiers its
// declarations will use.
type tableIdents struct {
	table  *meta.Table
	pascal string
	lower  string
	fields map[string]string
}

// field returns the exported identifier for a field display name.
func (ti tableIdents) field(name string) string {
	return ti.fields[name]
}

// resolveIdents sanitizes every table and field name into Go identifiers,
// failing on collisions: two names that sanitize to the same identifier
// would generate conflicting declarations. Overrides are applied first, so
// they can both rename and de-collide.
func resolveIdents(schema *meta.Schema, opts Options) ([]tableIdents, error) {
	names := make([]string, len(schema.Tables))
	for i := range schema.Tables {
		names[i] = schema.Tables[i].Name
	}
	if dups := strutil.DetectDuplicates(opts.effectiveNames(names)); len(dups) > 0 {
		return nil, aterr.New(aterr.ErrDuplicateIdent, "table names collide after sanitization").
			With("identifiers", strings.Join(dups, ", ")).
			WithHelp("rename the colliding tables in Airtable, or map one in the config naming section")
	}

	idents := make([]tableIdents, len(schema.Tables))
	for i := range schema.Tables {
		t := &schema.Tables[i]
		pascal := opts.ident(t.Name)
		fields := make(map[string]string, len(t.Fields))
		for _, f := range t.Fields {
			fields[f.Name] = opts.ident(f.Name)
		}
		idents[i] = tableIdents{
			table:  t,
			pascal: pascal,
			lower:  strutil.ToCamelCase(pascal),
			fields: fields,
		}

		if dups := strutil.DetectDuplicates(opts.effectiveNames(t.FieldNames())); len(dups) > 0 {
			return nil, aterr.New(aterr.ErrDuplicateIdent, "field names collide after sanitization").
				WithTable(t.Name).
				With("identifiers", strings.Join(dups, ", ")).
				WithHelp("rename the colliding fields in Airtable, or map one in the config naming section")
		}
	}
	return idents, nil
}

// handleType maps a formula kind to the pkg/formula handle type and the
// generated constructor helper for it.
func handleType(kind meta.FormulaKind) (typ, ctor string, ok bool) {
	switch kind {
	case meta.KindText:
		return "formula.TextField", "mustText", true
	case meta.KindNumber:
		return "formula.NumberField", "mustNumber", true
	case meta.KindBool:
		return "formula.BoolField", "mustBool", true
	case meta.KindDate:
		return "formula.DateField", "mustDate", true
	case meta.KindAttachments:
		return "formula.AttachmentsField", "mustAttachments", true
	default:
		return "", "", false
	}
}

// accessor maps a formula kind to the airtable.Record accessor and its Go
// result type, for generated record getters.
func accessor(kind meta.FormulaKind) (method, result string) {
	switch kind {
	case meta.KindNumber:
		return "Float", "float64"
	case meta.KindBool:
		return "Bool", "bool"
	case meta.KindDate:
		return "Time", "time.Time"
	case meta.KindAttachments:
		return "Attachments", "[]airtable.Attachment"
	default:
		return "String", "string"
	}
}

// reservedMethods are names already taken on the generated record type by
// its embedded airtable.Record; a field accessor that would collide gets a
// "Field" suffix.
var reservedMethods = map[string]bool{
	"ID": true, "CreatedTime": true, "Fields": true,
	"String": true, "Float": true, "Int": true, "Bool": true,
	"Time": true, "Strings": true, "Attachments": true,
}

func quoteGo(s string) string {
	return fmt.Sprintf("%q", s)
}

const genBanner = "// Code generated by myairtable. DO NOT EDIT.\n\n"

// GoBindings renders the whole schema as one generated Go source file.
func GoBindings(schema *meta.Schema, opts Options) ([]byte, error) {
	opts.withDefaults()
	idents, err := resolveIdents(schema, opts)
	if err != nil {
		return nil, err
	}

	needsTime := false
	for _, ti := range idents {
		for _, f := range ti.table.Fields {
			if f.Type.FormulaKind() == meta.KindDate {
				needsTime = true
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(genBanner)
	sb.WriteString("package " + opts.Package + "\n\n")
	if len(idents) > 0 {
		writeImports(&sb, opts, true, needsTime, anyHandles(idents))
		writeMustHelpers(&sb, idents)
	}

	for _, ti := range idents {
		writeTable(&sb, ti)
	}

	return []byte(sb.String()), nil
}

// GoBindingsFiles renders the schema as one file per table plus a base
// file holding the shared constructor helpers. Keys are file names within
// the generated package.
func GoBindingsFiles(schema *meta.Schema, opts Options) (map[string][]byte, error) {
	opts.withDefaults()
	idents, err := resolveIdents(schema, opts)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte, len(idents)+1)

	var base strings.Builder
	base.WriteString(genBanner)
	base.WriteString("package " + opts.Package + "\n\n")
	if anyHandles(idents) {
		base.WriteString("import (\n")
		base.WriteString("\t\"" + opts.ModulePath + "/pkg/formula\"\n")
		base.WriteString(")\n\n")
	}
	writeMustHelpers(&base, idents)
	files[opts.Package+".go"] = []byte(base.String())

	for _, ti := range idents {
		needsTime := false
		for _, f := range ti.table.Fields {
			if f.Type.FormulaKind() == meta.KindDate {
				needsTime = true
			}
		}
		needsFormula := false
		for _, f := range ti.table.Fields {
			if _, _, ok := handleType(f.Type.FormulaKind()); ok {
				needsFormula = true
			}
		}

		var sb strings.Builder
		sb.WriteString(genBanner)
		sb.WriteString("package " + opts.Package + "\n\n")
		writeImports(&sb, opts, true, needsTime, needsFormula)
		writeTable(&sb, ti)
		files[strutil.ToSnakeCase(ti.pascal)+".go"] = []byte(sb.String())
	}

	return files, nil
}

func anyHandles(idents []tableIdents) bool {
	for _, ti := range idents {
		for _, f := range ti.table.Fields {
			if _, _, ok := handleType(f.Type.FormulaKind()); ok {
				return true
			}
		}
	}
	return false
}

func writeImports(sb *strings.Builder, opts Options, needsContext, needsTime, needsFormula bool) {
	sb.WriteString("import (\n")
	if needsContext {
		sb.WriteString("\t\"context\"\n")
	}
	if needsTime {
		sb.WriteString("\t\"time\"\n")
	}
	sb.WriteString("\n")
	sb.WriteString("\t\"" + opts.ModulePath + "/pkg/airtable\"\n")
	if needsFormula {
		sb.WriteString("\t\"" + opts.ModulePath + "/pkg/formula\"\n")
	}
	sb.WriteString(")\n\n")
}

// writeMustHelpers emits one constructor-wrapping helper per handle kind the
// schema actually uses. The ids maps are generated alongside the names they
// key, so construction cannot fail; a panic here means the generator itself
// is broken.
func writeMustHelpers(sb *strings.Builder, idents []tableIdents) {
	used := map[meta.FormulaKind]bool{}
	for _, ti := range idents {
		for _, f := range ti.table.Fields {
			used[f.Type.FormulaKind()] = true
		}
	}

	helpers := []struct {
		kind meta.FormulaKind
		name string
		typ  string
		ctor string
	}{
		{meta.KindText, "mustText", "formula.TextField", "formula.NewTextField"},
		{meta.KindNumber, "mustNumber", "formula.NumberField", "formula.NewNumberField"},
		{meta.KindBool, "mustBool", "formula.BoolField", "formula.NewBoolField"},
		{meta.KindDate, "mustDate", "formula.DateField", "formula.NewDateField"},
		{meta.KindAttachments, "mustAttachments", "formula.AttachmentsField", "formula.NewAttachmentsField"},
	}
	for _, h := range helpers {
		if !used[h.kind] {
			continue
		}
		fmt.Fprintf(sb, "func %s(name string, ids map[string]string) %s {\n", h.name, h.typ)
		fmt.Fprintf(sb, "\tf, err := %s(name, ids)\n", h.ctor)
		sb.WriteString("\tif err != nil {\n\t\tpanic(err)\n\t}\n\treturn f\n}\n\n")
	}
}

func writeTable(sb *strings.Builder, ti tableIdents) {
	t := ti.table
	p := ti.pascal

	fmt.Fprintf(sb, "// %s bindings for table %q.\n", p, t.Name)
	fmt.Fprintf(sb, "const %sTableID = %s\n\n", p, quoteGo(t.ID))

	// Field display name constants form the closed set of valid names.
	if len(t.Fields) > 0 {
		fmt.Fprintf(sb, "// Field display names of %q.\n", t.Name)
		sb.WriteString("const (\n")
		for _, f := range t.Fields {
			fmt.Fprintf(sb, "\t%sField%s = %s\n", p, ti.field(f.Name), quoteGo(f.Name))
		}
		sb.WriteString(")\n\n")
	}

	fmt.Fprintf(sb, "var %sFieldIDs = map[string]string{\n", ti.lower)
	for _, f := range t.Fields {
		fmt.Fprintf(sb, "\t%sField%s: %s,\n", p, ti.field(f.Name), quoteGo(f.ID))
	}
	sb.WriteString("}\n\n")

	if len(t.Views) > 0 {
		fmt.Fprintf(sb, "// %sViews maps view display names to view ids.\n", p)
		fmt.Fprintf(sb, "var %sViews = map[string]string{\n", p)
		for _, v := range t.Views {
			fmt.Fprintf(sb, "\t%s: %s,\n", quoteGo(v.Name), quoteGo(v.ID))
		}
		sb.WriteString("}\n\n")
	}

	// Typed formula handles, one per filterable field.
	fmt.Fprintf(sb, "// %sFields holds typed formula handles for building filters.\n", p)
	fmt.Fprintf(sb, "type %sFields struct {\n", p)
	for _, f := range t.Fields {
		typ, _, ok := handleType(f.Type.FormulaKind())
		if !ok {
			continue
		}
		fmt.Fprintf(sb, "\t%s %s\n", ti.field(f.Name), typ)
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(sb, "// %s is a typed handle over the %q table.\n", p, t.Name)
	fmt.Fprintf(sb, "type %s struct {\n", p)
	fmt.Fprintf(sb, "\tFields %sFields\n", p)
	sb.WriteString("\tclient *airtable.Client\n")
	sb.WriteString("}\n\n")

	fmt.Fprintf(sb, "func New%s(client *airtable.Client) %s {\n", p, p)
	fmt.Fprintf(sb, "\tids := %sFieldIDs\n", ti.lower)
	fmt.Fprintf(sb, "\treturn %s{\n", p)
	sb.WriteString("\t\tclient: client,\n")
	fmt.Fprintf(sb, "\t\tFields: %sFields{\n", p)
	for _, f := range t.Fields {
		_, ctor, ok := handleType(f.Type.FormulaKind())
		if !ok {
			continue
		}
		fp := ti.field(f.Name)
		fmt.Fprintf(sb, "\t\t\t%s: %s(%sField%s, ids),\n", fp, ctor, p, fp)
	}
	sb.WriteString("\t\t},\n\t}\n}\n\n")

	// Record wrapper with typed getters.
	fmt.Fprintf(sb, "// %sRecord is one row of %q with typed accessors.\n", p, t.Name)
	fmt.Fprintf(sb, "type %sRecord struct {\n\tairtable.Record\n}\n\n", p)
	for _, f := range t.Fields {
		method, result := accessor(f.Type.FormulaKind())
		name := ti.field(f.Name)
		if reservedMethods[name] {
			name += "Field"
		}
		fmt.Fprintf(sb, "func (r %sRecord) %s() %s { return r.Record.%s(%sField%s) }\n\n",
			p, name, result, method, p, ti.field(f.Name))
	}

	// Query operations bound to the table name.
	tableName := quoteGo(t.Name)
	fmt.Fprintf(sb, "func (t %s) List(ctx context.Context, opts airtable.ListOptions) ([]%sRecord, string, error) {\n", p, p)
	fmt.Fprintf(sb, "\tpage, err := t.client.List(ctx, %s, opts)\n", tableName)
	sb.WriteString("\tif err != nil {\n\t\treturn nil, \"\", err\n\t}\n")
	fmt.Fprintf(sb, "\treturn wrap%s(page.Records), page.Offset, nil\n}\n\n", p)

	fmt.Fprintf(sb, "func (t %s) ListAll(ctx context.Context, opts airtable.ListOptions) ([]%sRecord, error) {\n", p, p)
	fmt.Fprintf(sb, "\trecords, err := t.client.ListAll(ctx, %s, opts)\n", tableName)
	sb.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprintf(sb, "\treturn wrap%s(records), nil\n}\n\n", p)

	fmt.Fprintf(sb, "func (t %s) Get(ctx context.Context, recordID string) (%sRecord, error) {\n", p, p)
	fmt.Fprintf(sb, "\trec, err := t.client.Get(ctx, %s, recordID)\n", tableName)
	fmt.Fprintf(sb, "\tif err != nil {\n\t\treturn %sRecord{}, err\n\t}\n", p)
	fmt.Fprintf(sb, "\treturn %sRecord{Record: *rec}, nil\n}\n\n", p)

	fmt.Fprintf(sb, "func (t %s) Create(ctx context.Context, fields map[string]any, typecast bool) (%sRecord, error) {\n", p, p)
	fmt.Fprintf(sb, "\trec, err := t.client.Create(ctx, %s, fields, typecast)\n", tableName)
	fmt.Fprintf(sb, "\tif err != nil {\n\t\treturn %sRecord{}, err\n\t}\n", p)
	fmt.Fprintf(sb, "\treturn %sRecord{Record: *rec}, nil\n}\n\n", p)

	fmt.Fprintf(sb, "func (t %s) Update(ctx context.Context, recordID string, fields map[string]any, typecast bool) (%sRecord, error) {\n", p, p)
	fmt.Fprintf(sb, "\trec, err := t.client.Update(ctx, %s, recordID, fields, typecast)\n", tableName)
	fmt.Fprintf(sb, "\tif err != nil {\n\t\treturn %sRecord{}, err\n\t}\n", p)
	fmt.Fprintf(sb, "\treturn %sRecord{Record: *rec}, nil\n}\n\n", p)

	fmt.Fprintf(sb, "func (t %s) Delete(ctx context.Context, recordID string) error {\n", p)
	fmt.Fprintf(sb, "\treturn t.client.Delete(ctx, %s, recordID)\n}\n\n", tableName)

	fmt.Fprintf(sb, "func wrap%s(records []airtable.Record) []%sRecord {\n", p, p)
	fmt.Fprintf(sb, "\tout := make([]%sRecord, len(records))\n", p)
	sb.WriteString("\tfor i, rec := range records {\n")
	fmt.Fprintf(sb, "\t\tout[i] = %sRecord{Record: rec}\n", p)
	sb.WriteString("\t}\n\treturn out\n}\n\n")
}
