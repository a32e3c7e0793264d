// Package cache provides local caching of base schema snapshots and
// their merkle hashes. The cache is stored in .myairtable/cache.db
// (SQLite) and is gitignored. It can always be rebuilt by fetching the
// schema from the metadata API again.
package cache

import (
	"encoding/json"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

// SerializeSchema converts a schema to JSON bytes for storage.
func SerializeSchema(s *meta.Schema) ([]byte, error) {
	if s == nil {
		s = &meta.Schema{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheWrite, err, "failed to serialize schema")
	}
	return data, nil
}

// DeserializeSchema converts stored JSON bytes back to a schema.
func DeserializeSchema(data []byte) (*meta.Schema, error) {
	var s meta.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheCorrupt, err, "cached schema snapshot is not valid JSON")
	}
	return &s, nil
}

// SerializeSchemaHash converts a merkle hash to JSON bytes for storage.
func SerializeSchemaHash(h *drift.SchemaHash) ([]byte, error) {
	if h == nil {
		h = &drift.SchemaHash{Tables: make(map[string]*drift.TableHash)}
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheWrite, err, "failed to serialize schema hash")
	}
	return data, nil
}

// DeserializeSchemaHash converts stored JSON bytes back to a merkle hash.
func DeserializeSchemaHash(data []byte) (*drift.SchemaHash, error) {
	var h drift.SchemaHash
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, aterr.Wrap(aterr.ErrCacheCorrupt, err, "cached schema hash is not valid JSON")
	}
	if h.Tables == nil {
		h.Tables = make(map[string]*drift.TableHash)
	}
	return &h, nil
}
