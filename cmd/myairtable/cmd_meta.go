package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/ui"
)

// metaCmd fetches base metadata and snapshots it.
func metaCmd() *cobra.Command {
	var output string
	var showTables bool

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Fetch base metadata and snapshot it",
		Long: `Fetch the schema of the base from the Airtable metadata API, write it
to a JSON snapshot file, and refresh the local cache used by gen,
export --offline, and drift.`,
		Example: `  # Snapshot to the default location (meta.json)
  myairtable meta

  # Snapshot to a custom file
  myairtable meta --output schema/base.json

  # Also print a table summary
  myairtable meta --tables`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			baseID, err := cfg.base()
			if err != nil {
				return err
			}

			schema, err := fetchSchema(cmd.Context(), cfg, baseID)
			if err != nil {
				return err
			}

			absPath, err := filepath.Abs(output)
			if err != nil {
				return err
			}
			if err := writeSchemaJSON(schema, absPath); err != nil {
				return err
			}

			fmt.Println(ui.Done(fmt.Sprintf("snapshot of %s written to %s (%d tables)",
				baseID, absPath, len(schema.Tables))))

			if showTables {
				fmt.Println()
				fmt.Print(ui.SchemaOverview(schema).String())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "meta.json", "Output file path")
	cmd.Flags().BoolVar(&showTables, "tables", false, "Print a table summary after fetching")

	return cmd
}
