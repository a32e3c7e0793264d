package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/cache"
	"github.com/danielrbaughman/myairtable/internal/ui"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// browseCmd opens the interactive schema browser.
func browseCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the base schema interactively",
		Long: `Open a terminal browser over the base schema: tables on the left,
fields in the middle, details on the right. Uses the cached snapshot
when available and falls back to a live fetch; on a non-interactive
terminal the schema prints as plain tables instead.`,
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
			if c, cerr := cache.Open("."); cerr == nil {
				schema, _ = c.GetSchemaSnapshot(baseID)
				c.Close()
			}
			if schema == nil {
				if offline {
					// surfaces the empty-cache error with its help text
					schema, err = cachedSchema(baseID)
				} else {
					schema, err = fetchSchema(cmd.Context(), cfg, baseID)
				}
				if err != nil {
					return err
				}
			}

			return ui.Browse(schema, baseID, os.Stdout)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Fail instead of fetching when the cache is empty")

	return cmd
}
