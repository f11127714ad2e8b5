// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package source turns raw payloads of configured remote sources into
// canonical news records. Each source kind has its own adapter: syndicated
// feeds, HTML tables and the narrative crime log.
package source

import (
	"fmt"

	"github.com/fatcat2/tippecanews/internal/news"
)

// Kind selects the adapter used for a source.
type Kind string

const (
	// KindFeed is a syndicated (RSS/Atom) feed.
	KindFeed Kind = "feed"
	// KindTable is an HTML page containing a data table.
	KindTable Kind = "table"
	// KindCrimeLog is an HTML page containing the narrative daily crime log.
	KindCrimeLog Kind = "crimelog"
)

// Source describes one configured remote source.
type Source struct {
	// Name identifies the source in logs and reports.
	Name string `yaml:"name"`
	// URL is the source's address.
	URL string `yaml:"url"`
	// Kind selects the adapter.
	Kind Kind `yaml:"kind"`
	// TableMarker locates the table on a table source: either a "#id"
	// selector or the table's summary/caption text.
	TableMarker string `yaml:"table_marker,omitempty"`
	// PressRelease marks a source whose records are announced as press
	// releases (link title plus a claim button).
	PressRelease bool `yaml:"press_release,omitempty"`
}

// Result is what an adapter produced from one payload.
type Result struct {
	// Records are the canonical records, in payload order.
	Records []news.Record
	// Skipped counts malformed entries that were dropped. They are not
	// errors; only the count is observable, for diagnostics.
	Skipped int
}

// FormatError reports that an adapter could not locate its expected
// structural anchor in the payload. The pipeline treats it as "zero records
// from this source".
type FormatError struct {
	Source string // source name
	Anchor string // what was expected and not found
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("source %q: expected %s not found", e.Source, e.Anchor)
}

// Adapter parses one source's raw payload into canonical records.
//
// Parse never fails on malformed individual entries; those are skipped and
// counted. It fails only when the payload as a whole can't be understood,
// reporting a [FormatError] when the structural anchor is missing.
type Adapter interface {
	Parse(payload []byte, src Source) (Result, error)
}

// AdapterFor returns the adapter for the given source kind.
func AdapterFor(kind Kind) (Adapter, error) {
	switch kind {
	case KindFeed:
		return NewFeedAdapter(), nil
	case KindTable:
		return &TableAdapter{}, nil
	case KindCrimeLog:
		return &CrimeLogAdapter{}, nil
	}
	return nil, fmt.Errorf("source: unknown kind %q", kind)
}
