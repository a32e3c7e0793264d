package drift

import (
	"fmt"
	"sort"
	"strings"
)

// FormatResult formats a drift detection result for CLI output.
func FormatResult(result *Result) string {
	if result == nil {
		return "No drift detection result available."
	}

	if !result.HasDrift {
		return FormatNoDrift(result)
	}

	return FormatDrift(result)
}

// FormatNoDrift formats a successful (no drift) result.
func FormatNoDrift(result *Result) string {
	var b strings.Builder

	b.WriteString("Schema check passed\n\n")
	if result.Baseline != nil {
		b.WriteString(fmt.Sprintf("  Tables:       %d\n", len(result.Baseline.Tables)))
	}
	b.WriteString(fmt.Sprintf("  Schema hash:  %s\n", truncateHash(result.BaselineHash)))
	b.WriteString("\n  Base schema matches the cached snapshot.\n")

	return b.String()
}

// FormatDrift formats a drift detection result with differences.
func FormatDrift(result *Result) string {
	var b strings.Builder

	b.WriteString("Schema drift detected\n\n")

	b.WriteString(fmt.Sprintf("  Snapshot hash: %s\n", truncateHash(result.BaselineHash)))
	b.WriteString(fmt.Sprintf("  Current hash:  %s\n", truncateHash(result.CurrentHash)))
	b.WriteString("\n")

	comp := result.Comparison

	if len(comp.RemovedTables) > 0 {
		b.WriteString("  Removed tables (in snapshot but not in base):\n")
		for _, name := range comp.RemovedTables {
			b.WriteString(fmt.Sprintf("    - %s\n", name))
		}
		b.WriteString("\n")
	}

	if len(comp.AddedTables) > 0 {
		b.WriteString("  Added tables (in base but not in snapshot):\n")
		for _, name := range comp.AddedTables {
			b.WriteString(fmt.Sprintf("    + %s\n", name))
		}
		b.WriteString("\n")
	}

	if len(comp.TableDiffs) > 0 {
		b.WriteString("  Modified tables:\n")
		names := make([]string, 0, len(comp.TableDiffs))
		for name := range comp.TableDiffs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			diff := comp.TableDiffs[name]
			if diff.Renamed != "" {
				b.WriteString(fmt.Sprintf("\n    %s (was %q):\n", name, diff.Renamed))
			} else {
				b.WriteString(fmt.Sprintf("\n    %s:\n", name))
			}
			formatTableDiff(&b, diff, "      ")
		}
	}

	b.WriteString("\nFix:\n")
	b.WriteString("  Refresh the snapshot and regenerate bindings:\n")
	b.WriteString("    myairtable meta --refresh && myairtable gen\n")

	return b.String()
}

// formatTableDiff formats the differences for a single table.
func formatTableDiff(b *strings.Builder, diff *TableDiff, indent string) {
	if len(diff.RemovedFields) > 0 {
		fmt.Fprintf(b, "%sFields removed:\n", indent)
		for _, f := range diff.RemovedFields {
			fmt.Fprintf(b, "%s  - %s\n", indent, f)
		}
	}
	if len(diff.AddedFields) > 0 {
		fmt.Fprintf(b, "%sFields added:\n", indent)
		for _, f := range diff.AddedFields {
			fmt.Fprintf(b, "%s  + %s\n", indent, f)
		}
	}
	if len(diff.ModifiedFields) > 0 {
		fmt.Fprintf(b, "%sFields changed:\n", indent)
		for _, f := range diff.ModifiedFields {
			fmt.Fprintf(b, "%s  ~ %s\n", indent, f)
		}
	}

	if len(diff.RemovedViews) > 0 {
		fmt.Fprintf(b, "%sViews removed:\n", indent)
		for _, v := range diff.RemovedViews {
			fmt.Fprintf(b, "%s  - %s\n", indent, v)
		}
	}
	if len(diff.AddedViews) > 0 {
		fmt.Fprintf(b, "%sViews added:\n", indent)
		for _, v := range diff.AddedViews {
			fmt.Fprintf(b, "%s  + %s\n", indent, v)
		}
	}
	if len(diff.ModifiedViews) > 0 {
		fmt.Fprintf(b, "%sViews changed:\n", indent)
		for _, v := range diff.ModifiedViews {
			fmt.Fprintf(b, "%s  ~ %s\n", indent, v)
		}
	}
}

// FormatSummary formats a drift summary for brief output.
func FormatSummary(summary *Summary) string {
	if summary == nil {
		return "No summary available."
	}

	total := summary.RemovedTables + summary.AddedTables + summary.ModifiedTables
	if total == 0 {
		return fmt.Sprintf("No drift detected. %d tables in sync.", summary.Tables)
	}

	var parts []string
	if summary.RemovedTables > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", summary.RemovedTables))
	}
	if summary.AddedTables > 0 {
		parts = append(parts, fmt.Sprintf("%d added", summary.AddedTables))
	}
	if summary.ModifiedTables > 0 {
		parts = append(parts, fmt.Sprintf("%d modified", summary.ModifiedTables))
	}

	return fmt.Sprintf("Drift detected: %s", strings.Join(parts, ", "))
}

// FormatQuickStatus formats a one-line status for drift detection.
func FormatQuickStatus(hasDrift bool, baselineHash, currentHash string) string {
	if !hasDrift {
		return fmt.Sprintf("OK  %s", truncateHash(baselineHash))
	}
	return fmt.Sprintf("DRIFT  snapshot: %s  current: %s",
		truncateHash(baselineHash), truncateHash(currentHash))
}

// truncateHash returns the first 12 characters of a hash for display.
func truncateHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
