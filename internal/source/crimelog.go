// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	"errors"

	"github.com/fatcat2/tippecanews/internal/crimelog"
	"github.com/fatcat2/tippecanews/internal/news"
)

// CrimeLogAdapter parses the narrative daily crime log. It delegates the
// day-header scanning to the crimelog package and wraps each incident
// description as a record: the description is the title, the log page is the
// link, and the owning day header rides along for formatting.
type CrimeLogAdapter struct{}

// Parse implements the [Adapter] interface.
func (a *CrimeLogAdapter) Parse(payload []byte, src Source) (Result, error) {
	log, err := crimelog.Parse(payload)
	if err != nil {
		if errors.Is(err, crimelog.ErrNoLog) {
			return Result{}, &FormatError{Source: src.Name, Anchor: "log container"}
		}
		return Result{}, err
	}

	var res Result
	for _, day := range log {
		for _, incident := range day.Incidents {
			res.Records = append(res.Records, news.Record{
				Title:  incident,
				Link:   src.URL,
				Day:    day.Key,
				Source: src.Name,
			})
		}
	}
	return res, nil
}
