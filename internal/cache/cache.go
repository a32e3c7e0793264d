package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/pkg/meta"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// CacheDir is the directory name for the cache (gitignored).
	CacheDir = ".myairtable"
	// CacheFile is the SQLite database file name.
	CacheFile = "cache.db"
)

// Cache stores schema snapshots and merkle hashes per base, so that
// code generation and drift checks can run without hitting the
// metadata API every time.
type Cache struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens or creates the cache database under the given project
// root. The cache directory is created if it does not exist.
func Open(projectRoot string) (*Cache, error) {
	cacheDir := filepath.Join(projectRoot, CacheDir)
	cachePath := filepath.Join(cacheDir, CacheFile)

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheInit, err, "failed to create cache directory").
			With("path", cacheDir)
	}

	db, err := sql.Open("sqlite", cachePath)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheInit, err, "failed to open cache database").
			With("path", cachePath)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, aterr.Wrap(aterr.ErrCacheInit, err, "failed to connect to cache database").
			With("path", cachePath)
	}

	cache := &Cache{
		db:   db,
		path: cachePath,
	}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return cache, nil
}

// Close closes the cache database connection.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the path to the cache database file.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// initSchema creates the cache tables if they don't exist.
func (c *Cache) initSchema() error {
	schema := `
		-- One schema snapshot per base
		CREATE TABLE IF NOT EXISTS schema_snapshots (
			base_id      TEXT PRIMARY KEY,
			schema_json  TEXT NOT NULL,
			fetched_at   TEXT NOT NULL
		);

		-- Merkle hash per base, the drift baseline
		CREATE TABLE IF NOT EXISTS merkle_hashes (
			base_id      TEXT PRIMARY KEY,
			hash_json    TEXT NOT NULL,
			root_hash    TEXT NOT NULL,
			created_at   TEXT NOT NULL
		);

		-- Cache metadata (version, etc.)
		CREATE TABLE IF NOT EXISTS cache_meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		INSERT OR REPLACE INTO cache_meta (key, value) VALUES ('version', '1');
	`

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(schema); err != nil {
		return aterr.Wrap(aterr.ErrCacheInit, err, "failed to initialize cache tables").
			With("path", c.path)
	}

	return nil
}

// -----------------------------------------------------------------------------
// Schema snapshot operations
// -----------------------------------------------------------------------------

// GetSchemaSnapshot retrieves the cached schema for a base.
// Returns nil and no error when the base has no snapshot yet.
func (c *Cache) GetSchemaSnapshot(baseID string) (*meta.Schema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var schemaJSON string
	err := c.db.QueryRow(
		"SELECT schema_json FROM schema_snapshots WHERE base_id = ?",
		baseID,
	).Scan(&schemaJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to read schema snapshot").
			With("base_id", baseID)
	}

	return DeserializeSchema([]byte(schemaJSON))
}

// RequireSchemaSnapshot retrieves the cached schema for a base and
// fails with an actionable error when none exists. Offline commands
// use this instead of GetSchemaSnapshot.
func (c *Cache) RequireSchemaSnapshot(baseID string) (*meta.Schema, error) {
	schema, err := c.GetSchemaSnapshot(baseID)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		return nil, aterr.New(aterr.ErrCacheEmpty, "no cached schema snapshot for base").
			With("base_id", baseID).
			WithHelp("run `myairtable meta` once while online to populate the cache")
	}
	return schema, nil
}

// SetSchemaSnapshot stores the schema snapshot for a base.
func (c *Cache) SetSchemaSnapshot(baseID string, schema *meta.Schema) error {
	data, err := SerializeSchema(schema)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO schema_snapshots (base_id, schema_json, fetched_at) VALUES (?, ?, ?)",
		baseID, string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to write schema snapshot").
			With("base_id", baseID)
	}

	return nil
}

// SnapshotFetchedAt returns when the snapshot for a base was stored.
// Returns the zero time when the base has no snapshot.
func (c *Cache) SnapshotFetchedAt(baseID string) (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var fetchedAt string
	err := c.db.QueryRow(
		"SELECT fetched_at FROM schema_snapshots WHERE base_id = ?",
		baseID,
	).Scan(&fetchedAt)

	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, aterr.Wrap(aterr.ErrCacheRead, err, "failed to read snapshot timestamp").
			With("base_id", baseID)
	}

	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return time.Time{}, aterr.Wrap(aterr.ErrCacheCorrupt, err, "snapshot timestamp is malformed").
			With("base_id", baseID)
	}
	return t, nil
}

// DeleteSchemaSnapshot removes the schema snapshot for a base.
func (c *Cache) DeleteSchemaSnapshot(baseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM schema_snapshots WHERE base_id = ?", baseID)
	if err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to delete schema snapshot").
			With("base_id", baseID)
	}

	return nil
}

// ListSchemaSnapshots returns all base IDs that have cached snapshots.
func (c *Cache) ListSchemaSnapshots() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rows, err := c.db.Query("SELECT base_id FROM schema_snapshots ORDER BY base_id")
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to list schema snapshots")
	}
	defer rows.Close()

	var baseIDs []string
	for rows.Next() {
		var baseID string
		if err := rows.Scan(&baseID); err != nil {
			return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to scan base id")
		}
		baseIDs = append(baseIDs, baseID)
	}

	return baseIDs, rows.Err()
}

// -----------------------------------------------------------------------------
// Merkle hash operations
// -----------------------------------------------------------------------------

// GetMerkleHash retrieves the drift baseline hash for a base.
// Returns nil and no error when the base has no stored hash.
func (c *Cache) GetMerkleHash(baseID string) (*drift.SchemaHash, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var hashJSON string
	err := c.db.QueryRow(
		"SELECT hash_json FROM merkle_hashes WHERE base_id = ?",
		baseID,
	).Scan(&hashJSON)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to read merkle hash").
			With("base_id", baseID)
	}

	return DeserializeSchemaHash([]byte(hashJSON))
}

// GetMerkleRootHash retrieves just the root hash for a base.
// Returns an empty string when the base has no stored hash.
func (c *Cache) GetMerkleRootHash(baseID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var rootHash string
	err := c.db.QueryRow(
		"SELECT root_hash FROM merkle_hashes WHERE base_id = ?",
		baseID,
	).Scan(&rootHash)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", aterr.Wrap(aterr.ErrCacheRead, err, "failed to read merkle root hash").
			With("base_id", baseID)
	}

	return rootHash, nil
}

// SetMerkleHash stores the drift baseline hash for a base.
func (c *Cache) SetMerkleHash(baseID string, hash *drift.SchemaHash) error {
	data, err := SerializeSchemaHash(hash)
	if err != nil {
		return err
	}

	rootHash := ""
	if hash != nil {
		rootHash = hash.Root
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.Exec(
		"INSERT OR REPLACE INTO merkle_hashes (base_id, hash_json, root_hash, created_at) VALUES (?, ?, ?, ?)",
		baseID, string(data), rootHash, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to write merkle hash").
			With("base_id", baseID)
	}

	return nil
}

// DeleteMerkleHash removes the drift baseline hash for a base.
func (c *Cache) DeleteMerkleHash(baseID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec("DELETE FROM merkle_hashes WHERE base_id = ?", baseID)
	if err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to delete merkle hash").
			With("base_id", baseID)
	}

	return nil
}

// -----------------------------------------------------------------------------
// Maintenance
// -----------------------------------------------------------------------------

// Clear removes all cached data but keeps the database file.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stmts := []string{
		"DELETE FROM schema_snapshots",
		"DELETE FROM merkle_hashes",
	}

	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to clear cache")
		}
	}

	return nil
}

// DeleteBase removes all cached data for a single base.
func (c *Cache) DeleteBase(baseID string) error {
	if err := c.DeleteSchemaSnapshot(baseID); err != nil {
		return err
	}
	return c.DeleteMerkleHash(baseID)
}

// GetCacheVersion returns the cache format version.
func (c *Cache) GetCacheVersion() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var version string
	err := c.db.QueryRow("SELECT value FROM cache_meta WHERE key = 'version'").Scan(&version)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", aterr.Wrap(aterr.ErrCacheRead, err, "failed to read cache version")
	}

	return version, nil
}

// Stats reports cache contents and size.
type Stats struct {
	Snapshots int
	Hashes    int
	SizeBytes int64
	Path      string
}

// GetStats returns statistics about the cache.
func (c *Cache) GetStats() (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := &Stats{Path: c.path}

	if err := c.db.QueryRow("SELECT COUNT(*) FROM schema_snapshots").Scan(&stats.Snapshots); err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to count snapshots")
	}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM merkle_hashes").Scan(&stats.Hashes); err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheRead, err, "failed to count hashes")
	}

	if info, err := os.Stat(c.path); err == nil {
		stats.SizeBytes = info.Size()
	}

	return stats, nil
}

// Vacuum compacts the cache database file.
func (c *Cache) Vacuum() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec("VACUUM"); err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to vacuum cache")
	}
	return nil
}

// Exists reports whether a cache database exists under the project root.
func Exists(projectRoot string) bool {
	cachePath := filepath.Join(projectRoot, CacheDir, CacheFile)
	_, err := os.Stat(cachePath)
	return err == nil
}

// Remove deletes the cache directory entirely.
func Remove(projectRoot string) error {
	cacheDir := filepath.Join(projectRoot, CacheDir)
	if err := os.RemoveAll(cacheDir); err != nil {
		return aterr.Wrap(aterr.ErrCacheWrite, err, "failed to remove cache directory").
			With("path", cacheDir)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Convenience
// -----------------------------------------------------------------------------

// GetOrCompute returns the cached schema for a base, or computes and
// caches it. A compute failure is returned as-is; cache write failures
// after a successful compute are swallowed so the caller still gets
// the schema.
func (c *Cache) GetOrCompute(baseID string, compute func() (*meta.Schema, error)) (*meta.Schema, error) {
	if c != nil {
		if cached, err := c.GetSchemaSnapshot(baseID); err == nil && cached != nil {
			return cached, nil
		}
	}

	schema, err := compute()
	if err != nil {
		return nil, err
	}

	if c != nil {
		_ = c.SetSchemaSnapshot(baseID, schema)
	}

	return schema, nil
}

// GetOrComputeHash returns the cached merkle hash for a base, or
// computes and caches it.
func (c *Cache) GetOrComputeHash(baseID string, compute func() (*drift.SchemaHash, error)) (*drift.SchemaHash, error) {
	if c != nil {
		if cached, err := c.GetMerkleHash(baseID); err == nil && cached != nil {
			return cached, nil
		}
	}

	hash, err := compute()
	if err != nil {
		return nil, err
	}

	if c != nil {
		_ = c.SetMerkleHash(baseID, hash)
	}

	return hash, nil
}
