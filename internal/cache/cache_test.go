package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

func testSchema() *meta.Schema {
	return &meta.Schema{
		Tables: []meta.Table{
			{
				ID:             "tblTask",
				Name:           "Tasks",
				PrimaryFieldID: "fldTitle",
				Fields: []meta.Field{
					{ID: "fldTitle", Name: "Title", Type: meta.TypeSingleLineText},
					{ID: "fldDone", Name: "Done", Type: meta.TypeCheckbox},
				},
				Views: []meta.View{
					{ID: "viwAll", Name: "All Tasks", Type: "grid"},
				},
			},
		},
	}
}

func TestCacheOpenClose(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	cacheDir := filepath.Join(tmpDir, CacheDir)
	if _, err := os.Stat(cacheDir); os.IsNotExist(err) {
		t.Errorf("cache directory was not created")
	}

	cachePath := filepath.Join(cacheDir, CacheFile)
	if _, err := os.Stat(cachePath); os.IsNotExist(err) {
		t.Errorf("cache file was not created")
	}

	if c.Path() != cachePath {
		t.Errorf("Path() = %q, want %q", c.Path(), cachePath)
	}

	version, err := c.GetCacheVersion()
	if err != nil {
		t.Fatalf("failed to read cache version: %v", err)
	}
	if version != "1" {
		t.Errorf("cache version = %q, want 1", version)
	}
}

func TestSchemaSnapshot(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	// Miss before any write.
	missing, err := c.GetSchemaSnapshot("appMissing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("expected nil schema for unknown base")
	}

	if err := c.SetSchemaSnapshot("appTest", testSchema()); err != nil {
		t.Fatalf("failed to set schema snapshot: %v", err)
	}

	retrieved, err := c.GetSchemaSnapshot("appTest")
	if err != nil {
		t.Fatalf("failed to get schema snapshot: %v", err)
	}
	if retrieved == nil {
		t.Fatal("retrieved schema is nil")
	}

	table, ok := retrieved.Table("Tasks")
	if !ok {
		t.Fatal("expected Tasks table in retrieved schema")
	}
	if table.ID != "tblTask" {
		t.Errorf("table ID = %q, want tblTask", table.ID)
	}
	if len(table.Fields) != 2 {
		t.Errorf("expected 2 fields, got %d", len(table.Fields))
	}
	if len(table.Views) != 1 {
		t.Errorf("expected 1 view, got %d", len(table.Views))
	}

	fetchedAt, err := c.SnapshotFetchedAt("appTest")
	if err != nil {
		t.Fatalf("failed to read snapshot timestamp: %v", err)
	}
	if fetchedAt.IsZero() {
		t.Error("expected a non-zero fetched_at")
	}

	ids, err := c.ListSchemaSnapshots()
	if err != nil {
		t.Fatalf("failed to list snapshots: %v", err)
	}
	if len(ids) != 1 || ids[0] != "appTest" {
		t.Errorf("ListSchemaSnapshots = %v, want [appTest]", ids)
	}

	if err := c.DeleteSchemaSnapshot("appTest"); err != nil {
		t.Fatalf("failed to delete snapshot: %v", err)
	}
	gone, err := c.GetSchemaSnapshot("appTest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gone != nil {
		t.Error("expected snapshot to be deleted")
	}
}

func TestRequireSchemaSnapshot(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	_, err = c.RequireSchemaSnapshot("appEmpty")
	if err == nil {
		t.Fatal("expected error for empty cache")
	}
	var ae *aterr.Error
	if !errors.As(err, &ae) || ae.GetCode() != aterr.ErrCacheEmpty {
		t.Errorf("expected %s, got %v", aterr.ErrCacheEmpty, err)
	}

	if err := c.SetSchemaSnapshot("appEmpty", testSchema()); err != nil {
		t.Fatalf("failed to set snapshot: %v", err)
	}
	schema, err := c.RequireSchemaSnapshot("appEmpty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil {
		t.Fatal("expected a schema")
	}
}

func TestMerkleHash(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	hash, err := drift.ComputeSchemaHash(testSchema())
	if err != nil {
		t.Fatalf("failed to compute hash: %v", err)
	}

	if err := c.SetMerkleHash("appTest", hash); err != nil {
		t.Fatalf("failed to set merkle hash: %v", err)
	}

	retrieved, err := c.GetMerkleHash("appTest")
	if err != nil {
		t.Fatalf("failed to get merkle hash: %v", err)
	}
	if retrieved == nil {
		t.Fatal("retrieved hash is nil")
	}
	if retrieved.Root != hash.Root {
		t.Errorf("root = %q, want %q", retrieved.Root, hash.Root)
	}
	if len(retrieved.Tables) != 1 {
		t.Errorf("expected 1 table hash, got %d", len(retrieved.Tables))
	}
	if th := retrieved.Tables["tblTask"]; th == nil || th.FieldNames["fldDone"] != "Done" {
		t.Errorf("table hash round trip lost field names: %+v", th)
	}

	root, err := c.GetMerkleRootHash("appTest")
	if err != nil {
		t.Fatalf("failed to get root hash: %v", err)
	}
	if root != hash.Root {
		t.Errorf("root hash = %q, want %q", root, hash.Root)
	}

	// Unknown base.
	none, err := c.GetMerkleHash("appOther")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Error("expected nil hash for unknown base")
	}
	root, err = c.GetMerkleRootHash("appOther")
	if err != nil || root != "" {
		t.Errorf("expected empty root for unknown base, got %q, %v", root, err)
	}

	if err := c.DeleteMerkleHash("appTest"); err != nil {
		t.Fatalf("failed to delete hash: %v", err)
	}
}

func TestCacheClearAndDeleteBase(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	hash, _ := drift.ComputeSchemaHash(testSchema())
	for _, baseID := range []string{"appOne", "appTwo"} {
		if err := c.SetSchemaSnapshot(baseID, testSchema()); err != nil {
			t.Fatalf("failed to set snapshot: %v", err)
		}
		if err := c.SetMerkleHash(baseID, hash); err != nil {
			t.Fatalf("failed to set hash: %v", err)
		}
	}

	if err := c.DeleteBase("appOne"); err != nil {
		t.Fatalf("failed to delete base: %v", err)
	}
	ids, _ := c.ListSchemaSnapshots()
	if len(ids) != 1 || ids[0] != "appTwo" {
		t.Errorf("after DeleteBase, snapshots = %v, want [appTwo]", ids)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("failed to clear cache: %v", err)
	}
	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.Snapshots != 0 || stats.Hashes != 0 {
		t.Errorf("after Clear, stats = %+v, want empty", stats)
	}
}

func TestCacheStats(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	if err := c.SetSchemaSnapshot("appTest", testSchema()); err != nil {
		t.Fatalf("failed to set snapshot: %v", err)
	}
	hash, _ := drift.ComputeSchemaHash(testSchema())
	if err := c.SetMerkleHash("appTest", hash); err != nil {
		t.Fatalf("failed to set hash: %v", err)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.Snapshots != 1 {
		t.Errorf("Snapshots = %d, want 1", stats.Snapshots)
	}
	if stats.Hashes != 1 {
		t.Errorf("Hashes = %d, want 1", stats.Hashes)
	}
	if stats.SizeBytes <= 0 {
		t.Errorf("SizeBytes = %d, want > 0", stats.SizeBytes)
	}
	if stats.Path != c.Path() {
		t.Errorf("Path = %q, want %q", stats.Path, c.Path())
	}

	if err := c.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}

func TestCacheExistsRemove(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists = true before cache created")
	}

	c, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	c.Close()

	if !Exists(tmpDir) {
		t.Error("Exists = false after cache created")
	}

	if err := Remove(tmpDir); err != nil {
		t.Fatalf("failed to remove cache: %v", err)
	}
	if Exists(tmpDir) {
		t.Error("Exists = true after Remove")
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	data, err := SerializeSchema(testSchema())
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}

	schema, err := DeserializeSchema(data)
	if err != nil {
		t.Fatalf("failed to deserialize: %v", err)
	}
	if len(schema.Tables) != 1 || schema.Tables[0].Name != "Tasks" {
		t.Errorf("round trip lost tables: %+v", schema.Tables)
	}

	// Corrupt data surfaces as a distinct code.
	_, err = DeserializeSchema([]byte("{not json"))
	var ae *aterr.Error
	if !errors.As(err, &ae) || ae.GetCode() != aterr.ErrCacheCorrupt {
		t.Errorf("expected %s, got %v", aterr.ErrCacheCorrupt, err)
	}

	_, err = DeserializeSchemaHash([]byte("[]"))
	if !errors.As(err, &ae) || ae.GetCode() != aterr.ErrCacheCorrupt {
		t.Errorf("expected %s, got %v", aterr.ErrCacheCorrupt, err)
	}

	// Nil inputs serialize to valid empty documents.
	if _, err := SerializeSchema(nil); err != nil {
		t.Errorf("SerializeSchema(nil) failed: %v", err)
	}
	if _, err := SerializeSchemaHash(nil); err != nil {
		t.Errorf("SerializeSchemaHash(nil) failed: %v", err)
	}
}

func TestGetOrCompute(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer c.Close()

	calls := 0
	compute := func() (*meta.Schema, error) {
		calls++
		return testSchema(), nil
	}

	schema, err := c.GetOrCompute("appTest", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil || calls != 1 {
		t.Fatalf("expected one compute call, got %d", calls)
	}

	// Second call hits the cache.
	schema, err = c.GetOrCompute("appTest", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema == nil || calls != 1 {
		t.Errorf("expected cached result, compute called %d times", calls)
	}

	// Compute errors pass through.
	wantErr := errors.New("api down")
	_, err = c.GetOrCompute("appOther", func() (*meta.Schema, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected compute error, got %v", err)
	}

	// Hash variant.
	hashCalls := 0
	hash, err := c.GetOrComputeHash("appTest", func() (*drift.SchemaHash, error) {
		hashCalls++
		return drift.ComputeSchemaHash(testSchema())
	})
	if err != nil || hash == nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetOrComputeHash("appTest", func() (*drift.SchemaHash, error) {
		hashCalls++
		return nil, errors.New("should not run")
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hashCalls != 1 {
		t.Errorf("expected one hash compute call, got %d", hashCalls)
	}
}
