package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/cache"
	"github.com/danielrbaughman/myairtable/internal/ui"
)

// cacheCmd inspects and maintains the local schema cache.
func cacheCmd() *cobra.Command {
	var stats bool
	var clear bool
	var remove string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local schema cache",
		Long: `Show the bases with cached schema snapshots, print cache statistics,
or remove cached entries. The cache lives under ` + cache.CacheDir + `/ in the
project directory.`,
		Example: `  # List cached bases
  myairtable cache

  # Size and entry counts
  myairtable cache --stats

  # Drop one base, or everything
  myairtable cache --remove appXXXXXXXXXXXXXX
  myairtable cache --clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := cache.Open(".")
			if err != nil {
				return err
			}
			defer c.Close()

			switch {
			case clear:
				if err := c.Clear(); err != nil {
					return err
				}
				fmt.Println(ui.Done("cache cleared"))
				return nil

			case remove != "":
				if err := c.DeleteBase(remove); err != nil {
					return err
				}
				fmt.Println(ui.Done("removed " + remove))
				return nil

			case stats:
				st, err := c.GetStats()
				if err != nil {
					return err
				}
				fmt.Printf("%s %s\n", ui.Header("Path:"), st.Path)
				fmt.Printf("%s %d\n", ui.Header("Snapshots:"), st.Snapshots)
				fmt.Printf("%s %d\n", ui.Header("Hashes:"), st.Hashes)
				fmt.Printf("%s %d bytes\n", ui.Header("Size:"), st.SizeBytes)
				return nil

			default:
				bases, err := c.ListSchemaSnapshots()
				if err != nil {
					return err
				}
				if len(bases) == 0 {
					fmt.Println(ui.Dim("cache is empty, run `myairtable meta` to populate it"))
					return nil
				}
				tbl := ui.NewTable("Base", "Fetched")
				for _, baseID := range bases {
					fetched, err := c.SnapshotFetchedAt(baseID)
					when := ""
					if err == nil && !fetched.IsZero() {
						when = fetched.Local().Format("2006-01-02 15:04")
					}
					tbl.AddRow(baseID, when)
				}
				fmt.Print(tbl.String())
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "Print cache statistics")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove all cached entries")
	cmd.Flags().StringVar(&remove, "remove", "", "Remove cached entries for one base ID")

	return cmd
}
