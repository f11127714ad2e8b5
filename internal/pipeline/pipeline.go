// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package pipeline runs the fetch, adapt, admit and notify cycle over the
// configured sources.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatcat2/tippecanews/internal/dedup"
	"github.com/fatcat2/tippecanews/internal/logger"
	"github.com/fatcat2/tippecanews/internal/news"
	"github.com/fatcat2/tippecanews/internal/source"
	"github.com/fatcat2/tippecanews/internal/util/syncx"
	"github.com/fatcat2/tippecanews/internal/version"
)

// Fetcher retrieves a source's raw payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches payloads over HTTP.
type HTTPFetcher struct {
	// Client is used for fetches. Defaults to http.DefaultClient.
	Client *http.Client
}

// Fetch implements the Fetcher interface.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	httpc := f.Client
	if httpc == nil {
		httpc = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", version.UserAgent())
	res, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %q: want 200, got %d", url, res.StatusCode)
	}
	return io.ReadAll(res.Body)
}

// Notifier announces an admitted record.
type Notifier interface {
	NotifyRecord(ctx context.Context, rec news.Record) error
}

// SourceReport is the outcome of one source within a cycle.
type SourceReport struct {
	// Source is the source's configured name.
	Source string `json:"source"`
	// Fetched counts entries seen in the payload, including skipped ones.
	Fetched int `json:"fetched"`
	// Adapted counts records produced by the adapter.
	Adapted int `json:"adapted"`
	// Admitted counts records the dedup gate let through.
	Admitted int `json:"admitted"`
	// Notified counts successfully delivered notifications.
	Notified int `json:"notified"`
	// Failed counts records that errored during admit or notify.
	Failed int `json:"failed"`
	// Err is set when the source as a whole failed (fetch or parse); the
	// counts above then cover whatever happened before the failure.
	Err error `json:"-"`
	// Error mirrors Err for JSON responses.
	Error string `json:"error,omitempty"`
}

// Report is the outcome of one full cycle, one entry per source in
// configuration order.
type Report struct {
	Sources []SourceReport `json:"sources"`
}

// Totals sums the per-source counts.
func (r *Report) Totals() SourceReport {
	var t SourceReport
	for _, s := range r.Sources {
		t.Fetched += s.Fetched
		t.Adapted += s.Adapted
		t.Admitted += s.Admitted
		t.Notified += s.Notified
		t.Failed += s.Failed
	}
	return t
}

// Pipeline ties the stages together. Sources are processed concurrently;
// a source's failure never affects the others.
type Pipeline struct {
	// Fetcher retrieves payloads. Defaults to an HTTPFetcher.
	Fetcher Fetcher
	// Gate is the dedup checkpoint. Required.
	Gate *dedup.Gate
	// Notifier announces admitted records. Nil means a dry run: records
	// are still admitted and persisted, but nothing is sent.
	Notifier Notifier
	// Logf logs progress. Defaults to log.Printf.
	Logf logger.Logf
	// Concurrency bounds how many sources are in flight at once.
	// Defaults to 4.
	Concurrency int
	// SourceTimeout bounds the whole fetch-to-notify span per source.
	// Zero means no per-source deadline.
	SourceTimeout time.Duration
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}

// Run executes one cycle over the given sources and reports per-source
// outcomes. Run itself never fails; failures are carried in the report.
func (p *Pipeline) Run(ctx context.Context, sources []source.Source) *Report {
	reports := make([]SourceReport, len(sources))

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	lwg := syncx.NewLimitedWaitGroup(concurrency)
	for i, src := range sources {
		lwg.Go(func() {
			reports[i] = p.runSource(ctx, src)
		})
	}
	lwg.Wait()

	return &Report{Sources: reports}
}

func (p *Pipeline) runSource(ctx context.Context, src source.Source) SourceReport {
	rep := SourceReport{Source: src.Name}
	fail := func(err error) SourceReport {
		p.logf("source %q: %v", src.Name, err)
		rep.Err = err
		rep.Error = err.Error()
		return rep
	}

	if p.SourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.SourceTimeout)
		defer cancel()
	}

	fetcher := p.Fetcher
	if fetcher == nil {
		fetcher = &HTTPFetcher{}
	}
	payload, err := fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return fail(err)
	}

	adapter, err := source.AdapterFor(src.Kind)
	if err != nil {
		return fail(err)
	}
	res, err := adapter.Parse(payload, src)
	if err != nil {
		return fail(err)
	}
	rep.Fetched = len(res.Records) + res.Skipped
	rep.Adapted = len(res.Records)
	if res.Skipped > 0 {
		p.logf("source %q: skipped %d malformed entries", src.Name, res.Skipped)
	}

	for _, rec := range res.Records {
		admitted, err := p.Gate.Admit(ctx, rec)
		if err != nil {
			p.logf("source %q: admit %q: %v", src.Name, rec.Title, err)
			rep.Failed++
			continue
		}
		if !admitted {
			continue
		}
		rep.Admitted++
		if p.Notifier == nil {
			continue
		}
		if err := p.Notifier.NotifyRecord(ctx, rec); err != nil {
			p.logf("source %q: notify %q: %v", src.Name, rec.Title, err)
			rep.Failed++
			continue
		}
		rep.Notified++
	}

	return rep
}
