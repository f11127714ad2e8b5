// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fatcat2/tippecanews/internal/news"
)

// TableAdapter parses HTML pages containing a data table. The table is
// located by the source's TableMarker: a "#id" selector, or text matched
// against the table's summary attribute or caption.
type TableAdapter struct{}

// Parse implements the [Adapter] interface. Each data row becomes one record
// whose title is the row's trimmed cells joined with " | "; a row with zero
// non-empty cells is skipped.
func (a *TableAdapter) Parse(payload []byte, src Source) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}

	table := findTable(doc, src.TableMarker)
	if table == nil {
		return Result{}, &FormatError{Source: src.Name, Anchor: "table " + src.TableMarker}
	}

	var res Result
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells, ok := rowCells(tr)
		if !ok {
			res.Skipped++
			return
		}
		res.Records = append(res.Records, news.Record{
			Title:        strings.Join(cells, " | "),
			Link:         src.URL,
			Source:       src.Name,
			PressRelease: src.PressRelease,
		})
	})
	return res, nil
}

// Rows extracts the data rows of the table located by marker, skipping rows
// with no non-empty cells. It is used where callers want the raw rows rather
// than canonical records, e.g. the persona non grata listing.
func Rows(payload []byte, marker string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	table := findTable(doc, marker)
	if table == nil {
		return nil, &FormatError{Source: marker, Anchor: "table " + marker}
	}
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if cells, ok := rowCells(tr); ok {
			rows = append(rows, cells)
		}
	})
	return rows, nil
}

// rowCells returns the trimmed text of every cell in a table row. The ok
// result is false when the row has no non-empty cells.
func rowCells(tr *goquery.Selection) (cells []string, ok bool) {
	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		text := strings.TrimSpace(td.Text())
		cells = append(cells, text)
		if text != "" {
			ok = true
		}
	})
	return cells, ok
}

func findTable(doc *goquery.Document, marker string) *goquery.Selection {
	if strings.HasPrefix(marker, "#") {
		if sel := doc.Find("table" + marker).First(); sel.Length() > 0 {
			return sel
		}
		return nil
	}

	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if summary, ok := table.Attr("summary"); ok && summary == marker {
			found = table
			return false
		}
		if caption := strings.TrimSpace(table.Find("caption").Text()); caption != "" && caption == marker {
			found = table
			return false
		}
		return true
	})
	return found
}
