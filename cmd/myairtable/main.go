// Package main provides the myairtable CLI: metadata-driven code
// generation and schema tooling for Airtable bases.
//
// Usage:
//
//	myairtable meta                  # Fetch base schema, snapshot to JSON + cache
//	myairtable gen                   # Generate Go bindings from the schema
//	myairtable export --format X     # Export schema (markdown, mermaid, csv, json)
//	myairtable drift                 # Compare the live base against the cached snapshot
//	myairtable browse                # Interactive schema browser
//	myairtable fmt '<formula>'       # Pretty-print a filterByFormula expression
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	configFile string
	baseIDFlag string
)

// customHelp displays a styled help message for the root command.
func customHelp(cmd *cobra.Command) {
	categories := []CommandCategory{
		{
			Title: "Schema",
			Commands: []CommandInfo{
				{"meta", "Fetch base metadata and snapshot it to JSON and the local cache"},
				{"browse", "Browse tables, fields, and views interactively"},
			},
		},
		{
			Title: "Generation",
			Commands: []CommandInfo{
				{"gen", "Generate typed Go bindings for the base"},
				{"export", "Export the schema (markdown, mermaid, csv, json)"},
			},
		},
		{
			Title: "Verification",
			Commands: []CommandInfo{
				{"drift", "Detect schema changes since the last snapshot"},
			},
		},
		{
			Title: "Formulas",
			Commands: []CommandInfo{
				{"fmt", "Format, condense, or highlight a filterByFormula expression"},
			},
		},
		{
			Title: "Maintenance",
			Commands: []CommandInfo{
				{"cache", "Inspect or clear the local schema cache"},
			},
		},
	}

	flags := []FlagInfo{
		{"-c, --config", "Path to config file (default: myairtable.yaml)"},
		{"-b, --base", "Base ID (overrides config and AIRTABLE_BASE_ID)"},
		{"-h, --help", "Show help information"},
		{"-v, --version", "Show version information"},
	}

	renderCategoryHelp(
		"myairtable - Airtable schema tooling",
		"Typed formula builders, Go bindings, and drift detection for Airtable bases",
		categories,
		flags,
	)
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "myairtable",
		Short:   "Metadata-driven code generation for Airtable bases",
		Long:    `myairtable fetches the schema of an Airtable base and turns it into typed Go bindings, documentation, and drift reports. It also ships a typed builder for filterByFormula expressions.`,
		Version: version,
	}

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == rootCmd {
			customHelp(cmd)
			return
		}
		fmt.Println(cmd.Long)
		fmt.Println()
		fmt.Println(cmd.UsageString())
	})

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "myairtable.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&baseIDFlag, "base", "b", "", "Base ID (overrides config and AIRTABLE_BASE_ID)")

	rootCmd.AddCommand(
		metaCmd(),
		genCmd(),
		exportCmd(),
		driftCmd(),
		browseCmd(),
		fmtCmd(),
		cacheCmd(),
	)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		printCLIError(err)
		os.Exit(1)
	}
}
