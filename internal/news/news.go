// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package news defines the canonical record shape that every source adapter
// produces and the dedup gate and notifier consume.
package news

import "time"

// Record is a canonical news item produced by a source adapter. It is
// immutable once produced: adapters hand records to the pipeline and nobody
// mutates them afterwards.
type Record struct {
	// Title is the item's headline. For incident-log records the incident
	// description serves as the title.
	Title string `json:"title"`
	// Link is the item's URL. Incident-log records use their source page URL.
	Link string `json:"link"`
	// PublishedAt is the item's publication time, nil if the source didn't
	// provide one or it couldn't be parsed.
	PublishedAt *time.Time `json:"published_at,omitempty"`
	// Day is the day header owning an incident-log record, e.g.
	// "MONDAY 3-14-22". Empty for feed and table records.
	Day string `json:"day,omitempty"`
	// Summary is the item's description text, when the source provides one.
	Summary string `json:"summary,omitempty"`
	// Source is the name of the source that produced this record.
	Source string `json:"source,omitempty"`
	// PressRelease marks records that should be announced with a link title
	// and a claim button.
	PressRelease bool `json:"press_release,omitempty"`
}

// Key returns the record's dedup identity. Two records with equal title and
// link are the same item regardless of other fields.
func (r Record) Key() string {
	return r.Title + "\x00" + r.Link
}
