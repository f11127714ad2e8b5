// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/fatcat2/tippecanews/internal/news"
	"github.com/fatcat2/tippecanews/internal/store"
	"github.com/fatcat2/tippecanews/internal/testutil"
)

func testGate(t *testing.T) *Gate {
	t.Helper()
	s, err := store.Open(context.Background(), "mem")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func TestAdmitNewThenDuplicate(t *testing.T) {
	t.Parallel()

	g := testGate(t)
	rec := news.Record{Title: "Purdue announces new dean", Link: "https://example.com/dean"}

	admitted, err := g.Admit(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, admitted, true)

	admitted, err = g.Admit(context.Background(), rec)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, admitted, false)
}

func TestAdmitKeyedOnTitleAndLink(t *testing.T) {
	t.Parallel()

	g := testGate(t)
	ctx := context.Background()

	base := news.Record{Title: "Crime log", Link: "https://example.com/a"}
	if admitted, err := g.Admit(ctx, base); err != nil || !admitted {
		t.Fatalf("Admit(base) = %v, %v; want true, nil", admitted, err)
	}

	// Same title at a different link is a distinct record, and vice versa.
	otherLink := news.Record{Title: "Crime log", Link: "https://example.com/b"}
	if admitted, err := g.Admit(ctx, otherLink); err != nil || !admitted {
		t.Fatalf("Admit(otherLink) = %v, %v; want true, nil", admitted, err)
	}
	otherTitle := news.Record{Title: "Fire log", Link: "https://example.com/a"}
	if admitted, err := g.Admit(ctx, otherTitle); err != nil || !admitted {
		t.Fatalf("Admit(otherTitle) = %v, %v; want true, nil", admitted, err)
	}
}

func TestAdmitIgnoresNonIdentityFields(t *testing.T) {
	t.Parallel()

	g := testGate(t)
	ctx := context.Background()

	now := time.Now()
	rec := news.Record{Title: "Board of Trustees meeting", Link: "https://example.com/bot", PublishedAt: &now}
	if admitted, err := g.Admit(ctx, rec); err != nil || !admitted {
		t.Fatalf("Admit = %v, %v; want true, nil", admitted, err)
	}

	// A later fetch of the same story with a revised summary or timestamp
	// must not notify again.
	later := now.Add(time.Hour)
	rec.PublishedAt = &later
	rec.Summary = "updated"
	admitted, err := g.Admit(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, admitted, false)
}
