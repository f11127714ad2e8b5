// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package store implements the persisted record store that backs the dedup
// gate. It is a keyed lookup/insert service: keys are record identities,
// values are serialized records. Unlike a cache, nothing ever expires; a
// record once seen stays seen.
package store

import (
	"context"
	"fmt"
	"strings"
)

// Store is a generic interface for a keyed record store.
type Store interface {
	// Get retrieves a value for a given key.
	// It must return (nil, nil) if the key is not found.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value for a given key. Setting an existing key overwrites
	// its value.
	Set(ctx context.Context, key string, value []byte) error
	// Close closes the store and releases any resources.
	Close() error
}

// Open opens a store described by dsn:
//
//   - "mem" opens an in-memory store;
//   - "file:<path>" opens a JSON file store;
//   - "sqlite:<path>" opens a SQLite store;
//   - "postgres://..." connects to a PostgreSQL database.
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "mem":
		return NewMemStore(), nil
	case strings.HasPrefix(dsn, "file:"):
		return NewJSONFile(strings.TrimPrefix(dsn, "file:"))
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteStore(ctx, strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresStore(ctx, dsn)
	}
	return nil, fmt.Errorf("store: unsupported DSN %q", dsn)
}
