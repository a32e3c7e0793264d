package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/gen"
	"github.com/danielrbaughman/myairtable/internal/ui"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// exportCmd renders the schema as documentation or data.
func exportCmd() *cobra.Command {
	var format string
	var output string
	var offline bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schema as markdown, mermaid, csv, or json",
		Long: `Render the base schema in a documentation or data format. Markdown
produces per-table reference docs, mermaid an ER diagram, csv a flat
field inventory, and json the raw schema snapshot.`,
		Example: `  # Markdown docs to stdout
  myairtable export --format markdown

  # ER diagram to a file
  myairtable export --format mermaid -o schema.mmd

  # Export from the cached snapshot
  myairtable export --format csv --offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			baseID, err := cfg.base()
			if err != nil {
				return err
			}

			var schema *meta.Schema
			if offline {
				schema, err = cachedSchema(baseID)
			} else {
				schema, err = fetchSchema(cmd.Context(), cfg, baseID)
			}
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "markdown", "md":
				out = gen.Markdown(schema, baseID)
			case "mermaid":
				out = gen.Mermaid(schema)
			case "csv":
				out, err = gen.CSV(schema)
				if err != nil {
					return err
				}
			case "json":
				out, err = json.MarshalIndent(schema, "", "  ")
				if err != nil {
					return aterr.Wrap(aterr.ErrGenerate, err, "encoding schema")
				}
				out = append(out, '\n')
			default:
				return aterr.Newf(aterr.ErrGenFormat, "unknown export format %q", format).
					WithHelp("supported formats: markdown, mermaid, csv, json")
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return aterr.Wrap(aterr.ErrGenWrite, err, "writing export")
			}
			fmt.Println(ui.Done(fmt.Sprintf("exported %s to %s", format, output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Output format: markdown, mermaid, csv, json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Export from the cached snapshot without fetching")

	return cmd
}
