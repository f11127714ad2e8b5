// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package store

import (
	"context"

	"github.com/fatcat2/tippecanews/internal/util/syncmap"
)

// MemStore is an in-memory implementation of the [Store] interface. It is
// used in tests and for dry runs; its contents are lost on process exit.
type MemStore struct {
	records syncmap.Map[string, []byte]
}

// NewMemStore creates a new MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get retrieves a value for a given key.
func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.records.Load(key)
	if !ok {
		return nil, nil
	}
	// Return a copy to prevent the caller from mutating the stored value.
	return append([]byte(nil), value...), nil
}

// Set stores a value for a given key.
func (s *MemStore) Set(_ context.Context, key string, value []byte) error {
	s.records.Store(key, append([]byte(nil), value...))
	return nil
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error { return nil }
