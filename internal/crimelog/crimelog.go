// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package crimelog recovers structured day→incident records from the
// unstructured HTML narrative of the daily police log.
//
// The log page mixes header paragraphs (day markers, sometimes double-wrapped
// in markup) with narrative incident paragraphs of inconsistent structure.
// The only structural anchor is the day header pattern, e.g.
// "MONDAY 3-14-22"; everything between two headers belongs to the first one.
package crimelog

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoLog is returned when the page doesn't contain the log container.
var ErrNoLog = errors.New("crime log container not found")

// dayKeyRe matches a day header: an uppercase day name followed by a
// month-day and a two-digit year, hyphen-separated. Deliberately loose; a
// narrative paragraph containing a header-shaped substring will match too,
// see TestScanDateLikeSubstring.
var dayKeyRe = regexp.MustCompile(`[A-Z]+DAY [0-9]*[0-9]-[0-9]*[0-9]-[0-9][0-9]`)

// Day is one day header and the incidents reported under it, in source order.
type Day struct {
	Key       string   `json:"day"`
	Incidents []string `json:"incidents"`
}

// Log is an ordered mapping from day headers to incident descriptions. Order
// of days is the order their headers first appear in the source.
type Log []Day

// Incidents returns the incident descriptions recorded under the given day
// header.
func (l Log) Incidents(key string) ([]string, bool) {
	for _, d := range l {
		if d.Key == key {
			return d.Incidents, true
		}
	}
	return nil, false
}

// Days returns the day headers in source order.
func (l Log) Days() []string {
	keys := make([]string, len(l))
	for i, d := range l {
		keys[i] = d.Key
	}
	return keys
}

// Parse extracts the log from a fetched page. It locates the log's container
// element and scans its paragraphs; a page without the container fails with
// [ErrNoLog].
func Parse(payload []byte) (Log, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	root := doc.Find("article.post.clearfix").First()
	if root.Length() == 0 {
		return nil, ErrNoLog
	}
	return Scan(root.Find("p")), nil
}

// Scan runs the day-header state machine over an ordered selection of the
// log's paragraph elements.
//
// For each paragraph a cleaned text is computed: a paragraph wrapping a
// single nested element keeps only that element's own text runs; a paragraph
// that is a single plain text run counts only if it contains a day header
// (and is then marked as one); a mixed paragraph keeps its non-element text
// runs, space-joined. A cleaned text that contains exactly one day header
// (or was marked as one) becomes the current day; everything else is an
// incident under the current day. Incidents seen before any day header are
// dropped, since no day exists to own them yet.
//
// Scanning never fails: malformed paragraphs end up skipped or recorded as
// incident text, never as errors.
func Scan(ps *goquery.Selection) Log {
	var (
		out     Log
		index   = make(map[string]int)
		current string
	)

	ps.Each(func(_ int, p *goquery.Selection) {
		var (
			cleaned string
			isKey   bool
		)

		contents := childNodes(p)
		if len(contents) == 1 {
			n := contents[0]
			if n.Type == html.ElementNode {
				// Double-wrapped header: strip the inner markup, keep the
				// element's own text.
				cleaned = strings.TrimSpace(strings.Join(textRuns(n), " "))
			} else if m := dayKeyRe.FindString(n.Data); m != "" {
				cleaned = m
				isKey = true
			}
		} else {
			var runs []string
			for _, n := range contents {
				if n.Type != html.ElementNode {
					runs = append(runs, n.Data)
				}
			}
			cleaned = strings.Join(runs, " ")
		}

		if strings.TrimSpace(cleaned) == "" {
			return
		}

		if len(dayKeyRe.FindAllString(cleaned, -1)) == 1 || isKey {
			current = cleaned
			if _, ok := index[current]; !ok {
				index[current] = len(out)
				out = append(out, Day{Key: current})
			}
			return
		}

		if current == "" {
			// No day header seen yet, nothing owns this description.
			return
		}
		i := index[current]
		out[i].Incidents = append(out[i].Incidents, cleaned)
	})

	return out
}

func childNodes(p *goquery.Selection) []*html.Node {
	var nodes []*html.Node
	for _, n := range p.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func textRuns(n *html.Node) []string {
	var runs []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			runs = append(runs, c.Data)
		}
	}
	return runs
}
