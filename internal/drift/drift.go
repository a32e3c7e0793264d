package drift

import (
	"context"

	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// Fetcher retrieves the current schema of a base. *meta.Client
// satisfies it; tests supply a stub.
type Fetcher interface {
	BaseSchema(ctx context.Context, baseID string) (*meta.Schema, error)
}

// Detector compares a cached baseline schema against the live base.
type Detector struct {
	fetcher Fetcher
	baseID  string
}

// NewDetector creates a drift detector for the given base.
func NewDetector(f Fetcher, baseID string) *Detector {
	return &Detector{
		fetcher: f,
		baseID:  baseID,
	}
}

// Result is the complete drift detection result.
type Result struct {
	// HasDrift is true if any differences were found.
	HasDrift bool

	// BaselineHash is the merkle root of the cached baseline schema.
	BaselineHash string

	// CurrentHash is the merkle root of the live base schema.
	CurrentHash string

	// Comparison contains the detailed comparison.
	Comparison *HashComparison

	// Baseline is the cached schema the comparison ran against.
	Baseline *meta.Schema

	// Current is the schema fetched from the metadata API.
	Current *meta.Schema
}

// Detect fetches the live schema and compares it against the baseline.
func (d *Detector) Detect(ctx context.Context, baseline *meta.Schema) (*Result, error) {
	current, err := d.fetcher.BaseSchema(ctx, d.baseID)
	if err != nil {
		return nil, err
	}
	return Diff(baseline, current)
}

// Diff compares two schema snapshots without touching the network.
func Diff(baseline, current *meta.Schema) (*Result, error) {
	baselineHash, err := ComputeSchemaHash(baseline)
	if err != nil {
		return nil, err
	}

	currentHash, err := ComputeSchemaHash(current)
	if err != nil {
		return nil, err
	}

	comparison := CompareHashes(baselineHash, currentHash)

	return &Result{
		HasDrift:     !comparison.Match,
		BaselineHash: baselineHash.Root,
		CurrentHash:  currentHash.Root,
		Comparison:   comparison,
		Baseline:     baseline,
		Current:      current,
	}, nil
}

// QuickCheck reports whether the base still matches the baseline.
// Use this when only a yes/no answer is needed.
func (d *Detector) QuickCheck(ctx context.Context, baseline *meta.Schema) (bool, error) {
	result, err := d.Detect(ctx, baseline)
	if err != nil {
		return false, err
	}
	return !result.HasDrift, nil
}

// Summary provides aggregate counts for a drift detection result.
type Summary struct {
	// Tables is the number of tables in the baseline schema.
	Tables int

	// RemovedTables is the count of tables gone from the base.
	RemovedTables int

	// AddedTables is the count of new tables in the base.
	AddedTables int

	// ModifiedTables is the count of tables with differences.
	ModifiedTables int

	// Details holds per-table drift information.
	Details []TableSummary
}

// TableSummary summarizes drift for a single table.
type TableSummary struct {
	Name   string
	Status string // "removed", "added", "modified"
	Fields Counts
	Views  Counts
}

// Counts tracks removed/added/modified counts.
type Counts struct {
	Removed  int
	Added    int
	Modified int
}

// Summarize creates aggregate counts from a drift detection result.
func Summarize(result *Result) *Summary {
	if result == nil || result.Comparison == nil {
		return &Summary{}
	}

	summary := &Summary{
		RemovedTables:  len(result.Comparison.RemovedTables),
		AddedTables:    len(result.Comparison.AddedTables),
		ModifiedTables: len(result.Comparison.TableDiffs),
		Details:        []TableSummary{},
	}
	if result.Baseline != nil {
		summary.Tables = len(result.Baseline.Tables)
	}

	for _, name := range result.Comparison.RemovedTables {
		summary.Details = append(summary.Details, TableSummary{
			Name:   name,
			Status: "removed",
		})
	}

	for _, name := range result.Comparison.AddedTables {
		summary.Details = append(summary.Details, TableSummary{
			Name:   name,
			Status: "added",
		})
	}

	for name, diff := range result.Comparison.TableDiffs {
		summary.Details = append(summary.Details, TableSummary{
			Name:   name,
			Status: "modified",
			Fields: Counts{
				Removed:  len(diff.RemovedFields),
				Added:    len(diff.AddedFields),
				Modified: len(diff.ModifiedFields),
			},
			Views: Counts{
				Removed:  len(diff.RemovedViews),
				Added:    len(diff.AddedViews),
				Modified: len(diff.ModifiedViews),
			},
		})
	}

	return summary
}
