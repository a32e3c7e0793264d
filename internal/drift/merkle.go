// Package drift detects changes in an Airtable base's schema.
// It hashes a schema snapshot hierarchically (base -> tables ->
// fields/views) using a merkle tree, so a cached baseline can be
// compared against the live base without diffing every field.
package drift

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/cbergoon/merkletree"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// SchemaHash is the merkle root hash of a base schema.
// Tables, fields, and views are keyed by their Airtable IDs, so a
// rename shows up as a modification rather than a remove-plus-add.
type SchemaHash struct {
	Root   string                `json:"root"`
	Tables map[string]*TableHash `json:"tables"` // table ID -> hash
}

// TableHash is the hash of a single table.
type TableHash struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Hash   string            `json:"hash"`
	Fields map[string]string `json:"fields"` // field ID -> hash
	Views  map[string]string `json:"views"`  // view ID -> hash

	// Display names by ID, kept so diffs can be reported by name.
	FieldNames map[string]string `json:"fieldNames"`
	ViewNames  map[string]string `json:"viewNames"`
}

// tableContent implements merkletree.Content for table-level hashing.
type tableContent struct {
	id   string
	hash string
}

func (t tableContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(t.hash))
	return h[:], nil
}

func (t tableContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(tableContent)
	if !ok {
		return false, nil
	}
	return t.hash == o.hash, nil
}

// ComputeSchemaHash computes the merkle tree hash for a base schema.
func ComputeSchemaHash(schema *meta.Schema) (*SchemaHash, error) {
	result := &SchemaHash{
		Tables: make(map[string]*TableHash),
	}

	if schema == nil || len(schema.Tables) == 0 {
		result.Root = emptyHash()
		return result, nil
	}

	// Sort table IDs for determinism.
	ids := make([]string, 0, len(schema.Tables))
	byID := make(map[string]*meta.Table, len(schema.Tables))
	for i := range schema.Tables {
		t := &schema.Tables[i]
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}
	sort.Strings(ids)

	var contents []merkletree.Content
	for _, id := range ids {
		th := computeTableHash(byID[id])
		result.Tables[id] = th
		contents = append(contents, tableContent{id: id, hash: th.Hash})
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrDriftHash, err, "failed to build merkle tree")
	}

	result.Root = hex.EncodeToString(tree.MerkleRoot())
	return result, nil
}

// computeTableHash computes the hash for a single table.
func computeTableHash(table *meta.Table) *TableHash {
	result := &TableHash{
		ID:         table.ID,
		Name:       table.Name,
		Fields:     make(map[string]string, len(table.Fields)),
		Views:      make(map[string]string, len(table.Views)),
		FieldNames: make(map[string]string, len(table.Fields)),
		ViewNames:  make(map[string]string, len(table.Views)),
	}

	fieldIDs := make([]string, 0, len(table.Fields))
	for i := range table.Fields {
		f := table.Fields[i]
		h := computeFieldHash(f)
		result.Fields[f.ID] = h
		result.FieldNames[f.ID] = f.Name
		fieldIDs = append(fieldIDs, f.ID)
	}
	sort.Strings(fieldIDs)

	var fieldHashes []string
	for _, id := range fieldIDs {
		fieldHashes = append(fieldHashes, id+":"+result.Fields[id])
	}

	viewIDs := make([]string, 0, len(table.Views))
	for _, v := range table.Views {
		h := computeViewHash(v)
		result.Views[v.ID] = h
		result.ViewNames[v.ID] = v.Name
		viewIDs = append(viewIDs, v.ID)
	}
	sort.Strings(viewIDs)

	var viewHashes []string
	for _, id := range viewIDs {
		viewHashes = append(viewHashes, id+":"+result.Views[id])
	}

	data := fmt.Sprintf("table:%s|name:%s|primary:%s|desc:%s|fields:[%s]|views:[%s]",
		table.ID,
		table.Name,
		table.PrimaryFieldID,
		table.Description,
		strings.Join(fieldHashes, ","),
		strings.Join(viewHashes, ","),
	)
	result.Hash = hashString(data)

	return result
}

// computeFieldHash computes a deterministic hash for a field.
// The raw options JSON participates so that select choices, formula
// text, and link targets all count as schema changes.
func computeFieldHash(f meta.Field) string {
	data := fmt.Sprintf("id:%s|name:%s|type:%s|desc:%s|options:%s",
		f.ID,
		f.Name,
		f.Type,
		f.Description,
		string(f.Options),
	)
	return hashString(data)
}

// computeViewHash computes a deterministic hash for a view.
func computeViewHash(v meta.View) string {
	return hashString(fmt.Sprintf("id:%s|name:%s|type:%s", v.ID, v.Name, v.Type))
}

// hashString computes the SHA256 hash of a string, hex encoded.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// emptyHash returns a consistent hash for empty schemas.
func emptyHash() string {
	return hashString("empty_base")
}

// CompareHashes compares a cached baseline against the current base.
func CompareHashes(baseline, current *SchemaHash) *HashComparison {
	result := &HashComparison{
		Match:         baseline.Root == current.Root,
		BaselineRoot:  baseline.Root,
		CurrentRoot:   current.Root,
		TableDiffs:    make(map[string]*TableDiff),
		RemovedTables: []string{},
		AddedTables:   []string{},
	}

	if result.Match {
		return result
	}

	// Tables in the baseline but gone from the base.
	for id, th := range baseline.Tables {
		if _, exists := current.Tables[id]; !exists {
			result.RemovedTables = append(result.RemovedTables, th.Name)
		}
	}
	sort.Strings(result.RemovedTables)

	// Tables added to the base since the baseline.
	for id, th := range current.Tables {
		if _, exists := baseline.Tables[id]; !exists {
			result.AddedTables = append(result.AddedTables, th.Name)
		}
	}
	sort.Strings(result.AddedTables)

	for id, base := range baseline.Tables {
		cur, exists := current.Tables[id]
		if !exists {
			continue
		}
		if base.Hash != cur.Hash {
			result.TableDiffs[cur.Name] = compareTableHashes(base, cur)
		}
	}

	return result
}

// HashComparison is the result of comparing two schema hashes.
type HashComparison struct {
	Match         bool                  // true if the schemas are identical
	BaselineRoot  string                // root hash of the cached baseline
	CurrentRoot   string                // root hash of the live base
	TableDiffs    map[string]*TableDiff // tables with differences, by current name
	RemovedTables []string              // tables present in the baseline only
	AddedTables   []string              // tables present in the base only
}

// TableDiff lists the differences within a single table.
type TableDiff struct {
	Name           string   // current table name
	Renamed        string   // old name, when the table was renamed
	RemovedFields  []string // fields present in the baseline only
	AddedFields    []string // fields present in the base only
	ModifiedFields []string // fields whose type, name, or options changed
	RemovedViews   []string
	AddedViews     []string
	ModifiedViews  []string
}

// HasDifferences reports whether the table has any differences.
func (d *TableDiff) HasDifferences() bool {
	return d.Renamed != "" ||
		len(d.RemovedFields) > 0 ||
		len(d.AddedFields) > 0 ||
		len(d.ModifiedFields) > 0 ||
		len(d.RemovedViews) > 0 ||
		len(d.AddedViews) > 0 ||
		len(d.ModifiedViews) > 0
}

// compareTableHashes compares two table hashes field by field.
func compareTableHashes(baseline, current *TableHash) *TableDiff {
	diff := &TableDiff{Name: current.Name}
	if baseline.Name != current.Name {
		diff.Renamed = baseline.Name
	}

	for id, hash := range baseline.Fields {
		curHash, exists := current.Fields[id]
		switch {
		case !exists:
			diff.RemovedFields = append(diff.RemovedFields, baseline.FieldNames[id])
		case hash != curHash:
			diff.ModifiedFields = append(diff.ModifiedFields, renameLabel(baseline.FieldNames[id], current.FieldNames[id]))
		}
	}
	for id := range current.Fields {
		if _, exists := baseline.Fields[id]; !exists {
			diff.AddedFields = append(diff.AddedFields, current.FieldNames[id])
		}
	}

	for id, hash := range baseline.Views {
		curHash, exists := current.Views[id]
		switch {
		case !exists:
			diff.RemovedViews = append(diff.RemovedViews, baseline.ViewNames[id])
		case hash != curHash:
			diff.ModifiedViews = append(diff.ModifiedViews, renameLabel(baseline.ViewNames[id], current.ViewNames[id]))
		}
	}
	for id := range current.Views {
		if _, exists := baseline.Views[id]; !exists {
			diff.AddedViews = append(diff.AddedViews, current.ViewNames[id])
		}
	}

	sort.Strings(diff.RemovedFields)
	sort.Strings(diff.AddedFields)
	sort.Strings(diff.ModifiedFields)
	sort.Strings(diff.RemovedViews)
	sort.Strings(diff.AddedViews)
	sort.Strings(diff.ModifiedViews)

	return diff
}

// renameLabel renders a modified entry, noting the old name on rename.
func renameLabel(oldName, newName string) string {
	if oldName != newName && oldName != "" {
		return fmt.Sprintf("%s (was %q)", newName, oldName)
	}
	return newName
}
