// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package dedup implements the admit-once-per-identity checkpoint between
// adaptation and notification.
package dedup

import (
	"context"
	"encoding/json"

	"github.com/fatcat2/tippecanews/internal/news"
	"github.com/fatcat2/tippecanews/internal/store"
)

// Gate checks candidate records against the persisted record store.
type Gate struct {
	store store.Store
}

// New returns a Gate backed by s.
func New(s store.Store) *Gate {
	return &Gate{store: s}
}

// Admit reports whether the record is new. A new record is persisted as a
// side effect; a duplicate leaves the store untouched.
//
// The lookup is an exact match on the record's (title, link) identity.
// Overlapping cycles racing on the same key may both observe "not found" and
// both insert; the store's Set is an upsert, so the stored state converges
// and later runs see the record as a duplicate.
func (g *Gate) Admit(ctx context.Context, rec news.Record) (bool, error) {
	key := rec.Key()

	existing, err := g.store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return false, err
	}
	if err := g.store.Set(ctx, key, b); err != nil {
		return false, err
	}
	return true, nil
}
