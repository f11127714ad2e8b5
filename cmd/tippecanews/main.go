// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fatcat2/tippecanews/internal/bylines"
	"github.com/fatcat2/tippecanews/internal/cli"
	"github.com/fatcat2/tippecanews/internal/crimelog"
	"github.com/fatcat2/tippecanews/internal/dedup"
	"github.com/fatcat2/tippecanews/internal/pipeline"
	"github.com/fatcat2/tippecanews/internal/slack"
	"github.com/fatcat2/tippecanews/internal/source"
	"github.com/fatcat2/tippecanews/internal/store"

	"github.com/joho/godotenv"
)

func main() { cli.Main(new(app)) }

type app struct {
	// flags
	storeDSN   string
	addr       string
	configPath string
	dry        bool

	// overridden in tests
	httpc        *http.Client
	fetcher      pipeline.Fetcher
	now          func() time.Time
	directoryURL string
	exponentURL  string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.storeDSN, "store", "mem", "Seen-record `store`: mem, file:PATH, sqlite:PATH or a postgres:// URL.")
	fs.StringVar(&a.addr, "addr", "localhost:3000", "Listen on `host:port` (serve command).")
	fs.StringVar(&a.configPath, "config", "", "Load sources from `path` instead of the built-in set.")
	fs.BoolVar(&a.dry, "dry", false, "Enable dry-run mode: admit records, but don't post to Slack.")
}

func (a *app) Run(ctx context.Context, env *cli.Env) error {
	// A .env file is optional; absence is not an error.
	godotenv.Load()

	if len(env.Args) == 0 {
		return fmt.Errorf("%w: command is required, see -help for usage", cli.ErrInvalidArgs)
	}
	command := env.Args[0]

	cfg, err := a.loadSources()
	if err != nil {
		return err
	}

	switch command {
	case "run":
		return a.runOnce(ctx, env, cfg)
	case "serve":
		return a.serve(ctx, env, cfg)
	case "bylines":
		return a.bylines(ctx, env, strings.Join(env.Args[1:], " "))
	case "crimelog":
		return a.crimeLog(ctx, env, cfg)
	case "sources":
		return a.listSources(env, cfg)
	default:
		return fmt.Errorf("%w: no such command %q", cli.ErrInvalidArgs, command)
	}
}

func (a *app) loadSources() (*source.Config, error) {
	if a.configPath != "" {
		return source.LoadConfig(a.configPath)
	}
	return source.DefaultConfig()
}

// notifier returns the Slack notifier, or nil in dry-run mode.
func (a *app) notifier(env *cli.Env) (pipeline.Notifier, error) {
	if a.dry {
		return nil, nil
	}
	token := env.Getenv("SLACK_TOKEN")
	channel := env.Getenv("SLACK_CHANNEL")
	if token == "" || channel == "" {
		return nil, errors.New("SLACK_TOKEN and SLACK_CHANNEL must be set (or pass -dry)")
	}
	return &slack.Client{Token: token, Channel: channel, HTTPClient: a.httpc}, nil
}

func (a *app) pipeline(env *cli.Env, st store.Store) (*pipeline.Pipeline, error) {
	notifier, err := a.notifier(env)
	if err != nil {
		return nil, err
	}
	fetcher := a.fetcher
	if fetcher == nil {
		fetcher = &pipeline.HTTPFetcher{Client: a.httpc}
	}
	return &pipeline.Pipeline{
		Fetcher:       fetcher,
		Gate:          dedup.New(st),
		Notifier:      notifier,
		Logf:          env.Logf,
		SourceTimeout: time.Minute,
	}, nil
}

func (a *app) runOnce(ctx context.Context, env *cli.Env, cfg *source.Config) error {
	st, err := store.Open(ctx, a.storeDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := a.pipeline(env, st)
	if err != nil {
		return err
	}
	rep := p.Run(ctx, cfg.Sources)

	enc := json.NewEncoder(env.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return err
	}

	totals := rep.Totals()
	env.Logf("done: %d fetched, %d adapted, %d admitted, %d notified, %d failed",
		totals.Fetched, totals.Adapted, totals.Admitted, totals.Notified, totals.Failed)
	return nil
}

func (a *app) bylines(ctx context.Context, env *cli.Env, query string) error {
	f := &bylines.Fetcher{BaseURL: a.exponentURL, HTTPClient: a.httpc, Now: a.now}
	sum, start, end, err := f.Fetch(ctx, query)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "%d reporters wrote articles between %s and %s\n\n", len(sum.Reporters), start, end)
	for _, reporter := range sum.Reporters {
		b := sum.ByAuthor[reporter]
		fmt.Fprintf(env.Stdout, "%s: %d\n", reporter, b.Count)
		for _, article := range b.Articles {
			fmt.Fprintf(env.Stdout, "  * %s\n", article)
		}
	}
	return nil
}

func (a *app) crimeLog(ctx context.Context, env *cli.Env, cfg *source.Config) error {
	src, err := findKind(cfg, source.KindCrimeLog)
	if err != nil {
		return err
	}
	payload, err := a.fetch(ctx, src.URL)
	if err != nil {
		return err
	}
	log, err := crimelog.Parse(payload)
	if err != nil {
		return err
	}

	for _, day := range log.Days() {
		fmt.Fprintln(env.Stdout, day)
		incidents, _ := log.Incidents(day)
		for _, incident := range incidents {
			fmt.Fprintf(env.Stdout, "  %s\n", incident)
		}
	}
	return nil
}

func (a *app) listSources(env *cli.Env, cfg *source.Config) error {
	for _, src := range cfg.Sources {
		fmt.Fprintf(env.Stdout, "%s\t%s\t%s\n", src.Name, src.Kind, src.URL)
	}
	return nil
}

func (a *app) fetch(ctx context.Context, url string) ([]byte, error) {
	fetcher := a.fetcher
	if fetcher == nil {
		fetcher = &pipeline.HTTPFetcher{Client: a.httpc}
	}
	return fetcher.Fetch(ctx, url)
}

// findKind returns the first configured source of the given kind.
func findKind(cfg *source.Config, kind source.Kind) (source.Source, error) {
	for _, src := range cfg.Sources {
		if src.Kind == kind {
			return src, nil
		}
	}
	return source.Source{}, fmt.Errorf("no source of kind %q configured", kind)
}
