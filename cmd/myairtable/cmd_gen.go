package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/cache"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/internal/gen"
	"github.com/danielrbaughman/myairtable/internal/ui"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// genCmd generates the Go bindings package from the base schema.
func genCmd() *cobra.Command {
	var outDir string
	var pkgName string
	var offline bool
	var force bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate typed Go bindings from the base schema",
		Long: `Generate a Go package of typed table and field handles from the base
schema. By default the schema is fetched live and the cache is
refreshed; --offline generates from the cached snapshot instead.

Generation is skipped when the schema hash matches the one recorded at
the last run and the output file already exists; --force regenerates
unconditionally.`,
		Example: `  # Generate into ./basegen
  myairtable gen

  # Generate from the cached snapshot, no network
  myairtable gen --offline

  # Regenerate on schema or config changes
  myairtable gen --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.OutDir
			}
			if pkgName == "" {
				pkgName = cfg.Package
			}
			baseID, err := cfg.base()
			if err != nil {
				return err
			}

			if watch {
				return watchAndGenerate(cmd, cfg, baseID, outDir, pkgName, offline)
			}
			return runGenerate(cmd, cfg, baseID, outDir, pkgName, offline, force)
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&pkgName, "package", "", "Generated package name (default from config)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Generate from the cached snapshot without fetching")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate even when the schema is unchanged")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch the cache and config and regenerate on change")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *Config, baseID, outDir, pkgName string, offline, force bool) error {
	var schema *meta.Schema
	var err error
	if offline {
		schema, err = cachedSchema(baseID)
	} else {
		schema, err = fetchSchema(cmd.Context(), cfg, baseID)
	}
	if err != nil {
		return err
	}

	pkgDir := filepath.Join(outDir, pkgName)

	hash, err := drift.ComputeSchemaHash(schema)
	if err != nil {
		return err
	}
	if !force && upToDate(baseID, hash.Root, filepath.Join(pkgDir, pkgName+".go")) {
		fmt.Println(ui.Dim(fmt.Sprintf("schema unchanged, %s is up to date", pkgDir)))
		return nil
	}

	files, err := gen.GoBindingsFiles(schema, gen.Options{Package: pkgName, Overrides: cfg.Naming})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		return aterr.Wrap(aterr.ErrGenWrite, err, "creating output directory")
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(pkgDir, name), src, 0o644); err != nil {
			return aterr.Wrap(aterr.ErrGenWrite, err, "writing generated bindings")
		}
	}

	if c, cerr := cache.Open("."); cerr == nil {
		_ = c.SetMerkleHash(baseID, hash)
		_ = c.Close()
	}

	fmt.Println(ui.Done(fmt.Sprintf("generated %d files in %s (%d tables, package %s)",
		len(files), pkgDir, len(schema.Tables), pkgName)))
	return nil
}

// upToDate reports whether the recorded root hash matches and the
// output file already exists.
func upToDate(baseID, root, outPath string) bool {
	c, err := cache.Open(".")
	if err != nil {
		return false
	}
	defer c.Close()
	stored, err := c.GetMerkleRootHash(baseID)
	if err != nil || stored == "" || stored != root {
		return false
	}
	_, err = os.Stat(outPath)
	return err == nil
}

// watchAndGenerate regenerates whenever the cache database or the
// config file changes. Events are debounced since SQLite writes arrive
// in bursts.
func watchAndGenerate(cmd *cobra.Command, cfg *Config, baseID, outDir, pkgName string, offline bool) error {
	if err := runGenerate(cmd, cfg, baseID, outDir, pkgName, offline, false); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return aterr.Wrap(aterr.ErrGenerate, err, "creating file watcher")
	}
	defer watcher.Close()

	cacheDir := filepath.Join(".", cache.CacheDir)
	_ = os.MkdirAll(cacheDir, 0o755)
	if err := watcher.Add(cacheDir); err != nil {
		return aterr.Wrap(aterr.ErrGenerate, err, "watching cache directory")
	}
	if _, err := os.Stat(configFile); err == nil {
		_ = watcher.Add(configFile)
	}

	fmt.Println(ui.Info("watching for schema changes (ctrl-c to stop)"))

	var timer *time.Timer
	debounce := 500 * time.Millisecond
	regen := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case regen <- struct{}{}:
				default:
				}
			})
		case <-regen:
			if err := runGenerate(cmd, cfg, baseID, outDir, pkgName, true, false); err != nil {
				fmt.Fprintln(os.Stderr, ui.Failed(err.Error()))
			}
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, ui.Warning("watch error: "+werr.Error()))
		}
	}
}
