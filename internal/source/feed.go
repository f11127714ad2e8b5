// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/fatcat2/tippecanews/internal/news"
)

// FeedAdapter parses syndicated (RSS/Atom) feed payloads.
type FeedAdapter struct {
	fp *gofeed.Parser
}

// NewFeedAdapter returns a new FeedAdapter.
func NewFeedAdapter() *FeedAdapter {
	return &FeedAdapter{fp: gofeed.NewParser()}
}

// Parse implements the [Adapter] interface. Each feed entry becomes one
// record; an entry without a title and link is skipped.
func (a *FeedAdapter) Parse(payload []byte, src Source) (Result, error) {
	feed, err := a.fp.Parse(bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("source %q: %w", src.Name, err)
	}

	var res Result
	for _, item := range feed.Items {
		if item.Title == "" && item.Link == "" {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, news.Record{
			Title:        item.Title,
			Link:         item.Link,
			PublishedAt:  item.PublishedParsed,
			Summary:      item.Description,
			Source:       src.Name,
			PressRelease: src.PressRelease,
		})
	}
	return res, nil
}
