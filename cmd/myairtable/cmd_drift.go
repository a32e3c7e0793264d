package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/cache"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/internal/ui"
)

// errDriftDetected makes the command exit non-zero without the usual
// error printing, the report is the output.
var errDriftDetected = errors.New("drift detected")

// driftCmd compares the live schema against the cached snapshot.
func driftCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Detect schema drift against the cached snapshot",
		Long: `Fetch the live base schema and compare it against the last cached
snapshot. Exits non-zero when the schemas differ, which makes the
command usable as a CI gate.`,
		Example: `  # Full drift report
  myairtable drift

  # One-line status, for scripts
  myairtable drift --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			baseID, err := cfg.base()
			if err != nil {
				return err
			}

			c, err := cache.Open(".")
			if err != nil {
				return err
			}
			baseline, err := c.RequireSchemaSnapshot(baseID)
			c.Close()
			if err != nil {
				return err
			}

			spin := ui.NewSpinner("fetching live schema")
			spin.Start()
			client, err := newMetaClient(cfg)
			if err != nil {
				spin.Stop()
				return err
			}
			current, err := client.BaseSchema(cmd.Context(), baseID)
			if err != nil {
				spin.Error("fetch failed")
				return err
			}
			spin.Stop()

			result, err := drift.Diff(baseline, current)
			if err != nil {
				return err
			}

			if quiet {
				fmt.Println(drift.FormatQuickStatus(result.HasDrift, result.BaselineHash, result.CurrentHash))
			} else {
				fmt.Print(drift.FormatResult(result))
			}

			if result.HasDrift {
				return errDriftDetected
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print a one-line status instead of the full report")

	return cmd
}
