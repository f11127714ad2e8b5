// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package bylines groups time-windowed Exponent articles by reporter and
// counts contributions per pay period.
package bylines

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is one article eligible for aggregation. Date-window filtering
// happens upstream (the search feeds are already windowed); the aggregator
// performs no date comparisons.
type Entry struct {
	Author string
	Title  string
}

// Byline is one reporter's articles within the window.
type Byline struct {
	// Articles are the reporter's article titles, in input order.
	Articles []string `json:"articles"`
	// Count is always the number of collected titles, never set
	// independently.
	Count int `json:"count"`
}

// Summary is the aggregation result. Reporters appear in the order their
// first article was encountered.
type Summary struct {
	Reporters []string           `json:"reporters"`
	ByAuthor  map[string]*Byline `json:"by_author"`
}

// Aggregate groups entries by author, in input order. Entries with an empty
// author are dropped.
func Aggregate(entries []Entry) *Summary {
	sum := &Summary{ByAuthor: make(map[string]*Byline)}
	for _, e := range entries {
		if e.Author == "" {
			continue
		}
		b, ok := sum.ByAuthor[e.Author]
		if !ok {
			b = new(Byline)
			sum.ByAuthor[e.Author] = b
			sum.Reporters = append(sum.Reporters, e.Author)
		}
		b.Articles = append(b.Articles, e.Title)
		b.Count = len(b.Articles)
	}
	return sum
}

// NormalizeAuthor trims an author field and cuts a section suffix, e.g.
// "Jane Doe | Campus Editor" becomes "Jane Doe".
func NormalizeAuthor(s string) string {
	name, _, _ := strings.Cut(s, "|")
	return strings.TrimSpace(name)
}

// dateRe matches M/D/YYYY dates in a query string. Same shape the original
// Slack command accepted.
var dateRe = regexp.MustCompile(`[0-9]*[0-9]/[0-9]*[0-9]/[12][09][012][0-9]`)

// Window determines the date window for a bylines query: two dates found in
// the query, or the current half-month pay period when the query doesn't
// carry them.
func Window(query string, now time.Time) (start, end string) {
	if m := dateRe.FindAllString(query, -1); len(m) == 2 {
		return m[0], m[1]
	}
	if now.Day() <= 15 {
		return fmt.Sprintf("%d/1/%d", int(now.Month()), now.Year()),
			fmt.Sprintf("%d/15/%d", int(now.Month()), now.Year())
	}
	return fmt.Sprintf("%d/16/%d", int(now.Month()), now.Year()),
		fmt.Sprintf("%d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

// sections are the Exponent search sections whose feeds are merged.
var sections = []string{"campus", "city_state", "sports"}

// SearchURLs builds the windowed Exponent search feed URLs, one per section.
func SearchURLs(baseURL, start, end string) []string {
	urls := make([]string, 0, len(sections))
	for _, section := range sections {
		urls = append(urls, fmt.Sprintf(
			"%s/search/?q=&nsa=eedition&t=article&c[]=%s&l=100&s=start_time&sd=desc&f=rss&d1=%s&d2=%s",
			baseURL, section, start, end,
		))
	}
	return urls
}

// Fetcher fetches and aggregates bylines for a pay period.
type Fetcher struct {
	// BaseURL is the Exponent site root. Defaults to the production site.
	BaseURL string
	// HTTPClient is used for feed fetches. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Now reports the current time, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Fetch fetches the section feeds for the query's window, merges their
// entries and aggregates them by reporter. A failed section fetch fails the
// whole query: a partial byline count is worse than none.
func (f *Fetcher) Fetch(ctx context.Context, query string) (sum *Summary, start, end string, err error) {
	baseURL := f.BaseURL
	if baseURL == "" {
		baseURL = "https://www.purdueexponent.org"
	}
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}

	start, end = Window(query, now())

	fp := gofeed.NewParser()
	fp.Client = f.HTTPClient

	var entries []Entry
	for _, u := range SearchURLs(baseURL, start, end) {
		feed, err := fp.ParseURLWithContext(u, ctx)
		if err != nil {
			return nil, "", "", fmt.Errorf("bylines: fetching %q: %w", u, err)
		}
		for _, item := range feed.Items {
			entries = append(entries, Entry{
				Author: NormalizeAuthor(itemAuthor(item)),
				Title:  item.Title,
			})
		}
	}

	return Aggregate(entries), start, end, nil
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}
