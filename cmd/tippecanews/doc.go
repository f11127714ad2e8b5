// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Tippecanews watches Purdue news sources and posts new items to Slack.

It fetches the configured sources (newsroom RSS feeds, the persona non grata
table, the police crime log), normalizes every item into a record, drops
records it has already seen and announces the rest in a Slack channel.

# Usage

	$ tippecanews [flags...] <command> [arguments...]

Available commands:

  - run: fetch all sources once, announce new records and print the
    per-source report.
  - serve: run the HTTP server exposing the ingestion and lookup routes.
  - bylines [query]: print the reporter byline summary for a pay period.
    The query may carry two M/D/YYYY dates; without them the current
    half-month period is used.
  - crimelog: fetch the police crime log and print incidents grouped by day.
  - sources: print the configured sources.

# Environment Variables

The tippecanews program relies on the following environment variables:

  - SLACK_TOKEN: Slack bot token used for posting messages.
  - SLACK_CHANNEL: Slack channel where new records are announced.

Both are required unless -dry is passed. A .env file in the working
directory is loaded first if present.

# Configuration

Sources are configured in a YAML file passed via the -config flag; without
it a built-in set of Purdue sources is used. Each source has a name, a URL
and a kind (feed, table or crimelog), for example:

	sources:
	  - name: purdue-agriculture
	    url: https://www.purdue.edu/newsroom/rss/AgriNews.xml
	    kind: feed
	    press_release: true
	  - name: persona-non-grata
	    url: https://www.purdue.edu/ehps/police/assistance/stats/personanongrata.html
	    kind: table
	    table_marker: Persona nongrata list

Table sources locate their table via table_marker, either a "#id" selector
or the table's summary attribute or caption text.

# State

Seen records are kept in the store selected by the -store flag:

  - mem: in-process only, forgotten on exit.
  - file:/path/to/state.json: a JSON file on disk.
  - sqlite:/path/to/state.db: a SQLite database.
  - postgres://...: a PostgreSQL database.
*/
package main

import (
	_ "embed"

	"github.com/fatcat2/tippecanews/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
