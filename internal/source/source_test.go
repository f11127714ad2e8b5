// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	_ "embed"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/tools/txtar"

	"github.com/fatcat2/tippecanews/internal/news"
	"github.com/fatcat2/tippecanews/internal/testutil"
)

//go:embed testdata/config.txtar
var configTxtar []byte

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Purdue Newsroom</title>
<link>https://www.purdue.edu/newsroom/</link>
<item>
<title>Researchers develop new sensor</title>
<link>https://www.purdue.edu/newsroom/releases/2022/Q1/sensor.html</link>
<pubDate>Mon, 14 Mar 2022 09:00:00 GMT</pubDate>
<description>A new sensor was developed.</description>
</item>
<item>
<title>Campus event announced</title>
<link>https://www.purdue.edu/newsroom/releases/2022/Q1/event.html</link>
</item>
</channel>
</rss>`

func TestFeedAdapter(t *testing.T) {
	t.Parallel()

	src := Source{Name: "research", URL: "https://example.com/feed.xml", Kind: KindFeed, PressRelease: true}
	res, err := NewFeedAdapter().Parse([]byte(feedXML), src)
	if err != nil {
		t.Fatal(err)
	}

	wantTime := time.Date(2022, 3, 14, 9, 0, 0, 0, time.UTC)
	want := []news.Record{
		{
			Title:        "Researchers develop new sensor",
			Link:         "https://www.purdue.edu/newsroom/releases/2022/Q1/sensor.html",
			PublishedAt:  &wantTime,
			Summary:      "A new sensor was developed.",
			Source:       "research",
			PressRelease: true,
		},
		{
			Title:        "Campus event announced",
			Link:         "https://www.purdue.edu/newsroom/releases/2022/Q1/event.html",
			Source:       "research",
			PressRelease: true,
		},
	}
	testutil.AssertEqual(t, res.Records, want)
	testutil.AssertEqual(t, res.Skipped, 0)
}

func TestFeedAdapterMalformedPayload(t *testing.T) {
	t.Parallel()

	src := Source{Name: "research", URL: "https://example.com/feed.xml", Kind: KindFeed}
	if _, err := NewFeedAdapter().Parse([]byte("not a feed"), src); err == nil {
		t.Fatal("expected error")
	}
}

const tablePage = `<html><body>
<table summary="Persona nongrata list">
<tr><th>Name</th><th>Email</th><th>City</th><th>College</th></tr>
<tr><td> Jane Doe </td><td>jdoe@x.edu</td><td>West Lafayette</td><td>Engineering</td></tr>
<tr><td>  </td><td></td><td></td><td></td></tr>
<tr><td>John Roe</td><td>jroe@x.edu</td><td>Lafayette</td><td>Science</td></tr>
</table>
</body></html>`

func TestTableAdapter(t *testing.T) {
	t.Parallel()

	src := Source{
		Name:        "png",
		URL:         "https://example.com/png.html",
		Kind:        KindTable,
		TableMarker: "Persona nongrata list",
	}
	res, err := (&TableAdapter{}).Parse([]byte(tablePage), src)
	if err != nil {
		t.Fatal(err)
	}

	want := []news.Record{
		{
			Title:  "Jane Doe | jdoe@x.edu | West Lafayette | Engineering",
			Link:   "https://example.com/png.html",
			Source: "png",
		},
		{
			Title:  "John Roe | jroe@x.edu | Lafayette | Science",
			Link:   "https://example.com/png.html",
			Source: "png",
		},
	}
	testutil.AssertEqual(t, res.Records, want)
	// The header row and the all-empty row are skipped.
	testutil.AssertEqual(t, res.Skipped, 2)
}

func TestTableAdapterByID(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
<table id="results"><tr><td>a</td><td>b</td></tr></table>
</body></html>`

	src := Source{Name: "t", URL: "https://example.com", Kind: KindTable, TableMarker: "#results"}
	res, err := (&TableAdapter{}).Parse([]byte(page), src)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, res.Records[0].Title, "a | b")
}

func TestTableAdapterMissingTable(t *testing.T) {
	t.Parallel()

	src := Source{Name: "png", URL: "https://example.com", Kind: KindTable, TableMarker: "Persona nongrata list"}
	_, err := (&TableAdapter{}).Parse([]byte("<html><body><p>no tables here</p></body></html>"), src)

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %v", err)
	}
	testutil.AssertEqual(t, fe.Source, "png")
}

func TestCrimeLogAdapter(t *testing.T) {
	t.Parallel()

	const page = `<html><body>
<article class="post clearfix">
<p>MONDAY 3-14-22</p>
<p>Theft reported at Hall A<br/></p>
<p>Vandalism reported at Lot B<br/></p>
</article>
</body></html>`

	src := Source{Name: "crime-log", URL: "https://example.com/log.html", Kind: KindCrimeLog}
	res, err := (&CrimeLogAdapter{}).Parse([]byte(page), src)
	if err != nil {
		t.Fatal(err)
	}

	want := []news.Record{
		{Title: "Theft reported at Hall A", Link: "https://example.com/log.html", Day: "MONDAY 3-14-22", Source: "crime-log"},
		{Title: "Vandalism reported at Lot B", Link: "https://example.com/log.html", Day: "MONDAY 3-14-22", Source: "crime-log"},
	}
	testutil.AssertEqual(t, res.Records, want)
}

func TestCrimeLogAdapterMissingContainer(t *testing.T) {
	t.Parallel()

	src := Source{Name: "crime-log", URL: "https://example.com/log.html", Kind: KindCrimeLog}
	_, err := (&CrimeLogAdapter{}).Parse([]byte("<html><body></body></html>"), src)

	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("want FormatError, got %v", err)
	}
}

func TestAdapterFor(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindFeed, KindTable, KindCrimeLog} {
		if _, err := AdapterFor(kind); err != nil {
			t.Fatalf("AdapterFor(%q): %v", kind, err)
		}
	}
	if _, err := AdapterFor("telepathy"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sources) == 0 {
		t.Fatal("default config has no sources")
	}

	var kinds []Kind
	for _, src := range cfg.Sources {
		kinds = append(kinds, src.Kind)
	}
	testutil.AssertContains(t, kinds, KindFeed)
	testutil.AssertContains(t, kinds, KindTable)
	testutil.AssertContains(t, kinds, KindCrimeLog)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.ExtractTxtar(t, txtar.Parse(configTxtar), dir)

	cfg, err := LoadConfig(filepath.Join(dir, "sources.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, cfg.Sources, []Source{
		{Name: "newsroom", URL: "https://example.com/feed.xml", Kind: KindFeed, PressRelease: true},
		{Name: "persona-non-grata", URL: "https://example.com/png.html", Kind: KindTable, TableMarker: "Persona nongrata list"},
	})
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing name": `sources:
  - url: https://example.com/feed.xml
    kind: feed`,
		"unknown kind": `sources:
  - name: x
    url: https://example.com
    kind: carrier-pigeon`,
		"table without marker": `sources:
  - name: x
    url: https://example.com
    kind: table`,
	}

	for name, yml := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := parseConfig([]byte(yml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
