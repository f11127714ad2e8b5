// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package directory searches the Purdue campus directory.
package directory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatcat2/tippecanews/internal/version"
)

// DefaultBaseURL is the production directory endpoint.
const DefaultBaseURL = "https://purdue.edu/directory"

// Person is one directory search result.
type Person struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Campus  string `json:"campus"`
	College string `json:"college"`
}

// Search queries the directory for name and scrapes the result list. A page
// without a results container yields an error; an empty result list is not
// an error.
//
// The result markup lists each person as an li with the name in an h2 and a
// details table where the second, third and fourth cells hold email, campus
// and college.
func Search(ctx context.Context, httpc *http.Client, baseURL, name string) ([]Person, error) {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	form := url.Values{"searchString": {name}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", version.UserAgent())

	res, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory search: want 200, got %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	results := doc.Find("#results").First()
	if results.Length() == 0 {
		return nil, fmt.Errorf("directory search: no results container in response")
	}

	var people []Person
	results.Find("ul").First().Find("li").Each(func(_ int, li *goquery.Selection) {
		p := Person{Name: strings.TrimSpace(li.Find("h2").First().Text())}
		li.Find("td").Each(func(i int, td *goquery.Selection) {
			switch i {
			case 1:
				p.Email = strings.TrimSpace(td.Text())
			case 2:
				p.Campus = strings.TrimSpace(td.Text())
			case 3:
				p.College = strings.TrimSpace(td.Text())
			}
		})
		people = append(people, p)
	})
	return people, nil
}
