// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fatcat2/tippecanews/internal/bylines"
	"github.com/fatcat2/tippecanews/internal/cli"
	"github.com/fatcat2/tippecanews/internal/crimelog"
	"github.com/fatcat2/tippecanews/internal/directory"
	"github.com/fatcat2/tippecanews/internal/pipeline"
	"github.com/fatcat2/tippecanews/internal/slack"
	"github.com/fatcat2/tippecanews/internal/source"
	"github.com/fatcat2/tippecanews/internal/store"
	"github.com/fatcat2/tippecanews/internal/web"
)

func (a *app) serve(ctx context.Context, env *cli.Env, cfg *source.Config) error {
	st, err := store.Open(ctx, a.storeDSN)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := a.pipeline(env, st)
	if err != nil {
		return err
	}

	return web.ListenAndServe(ctx, &web.ListenAndServeConfig{
		Addr: a.addr,
		Mux:  a.mux(env, p, cfg),
		Logf: env.Logf,
	})
}

// blocksResponse is the Slack-shaped payload the slash-command routes
// answer with.
type blocksResponse struct {
	Blocks []slack.Block `json:"blocks"`
}

func (a *app) mux(env *cli.Env, p *pipeline.Pipeline, cfg *source.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Triggers one full ingestion cycle and reports per-source counts.
	mux.HandleFunc("GET /newsfetch", func(w http.ResponseWriter, r *http.Request) {
		web.RespondJSON(w, p.Run(r.Context(), cfg.Sources))
	})

	mux.HandleFunc("GET /bylines", func(w http.ResponseWriter, r *http.Request) {
		f := &bylines.Fetcher{BaseURL: a.exponentURL, HTTPClient: a.httpc, Now: a.now}
		sum, start, end, err := f.Fetch(r.Context(), r.FormValue("text"))
		if err != nil {
			web.RespondJSONError(env.Logf, w, err)
			return
		}
		web.RespondJSON(w, blocksResponse{Blocks: slack.BylineBlocks(sum, start, end)})
	})

	mux.HandleFunc("GET /crimelog", func(w http.ResponseWriter, r *http.Request) {
		log, err := a.fetchCrimeLog(r.Context(), cfg)
		if err != nil {
			web.RespondJSONError(env.Logf, w, err)
			return
		}
		web.RespondJSON(w, log)
	})

	mux.HandleFunc("GET /png", func(w http.ResponseWriter, r *http.Request) {
		rows, err := a.fetchPNGs(r.Context(), cfg)
		if err != nil {
			web.RespondJSONError(env.Logf, w, err)
			return
		}
		web.RespondJSON(w, struct {
			Rows [][]string `json:"rows"`
		}{rows})
	})

	mux.HandleFunc("POST /directory", func(w http.ResponseWriter, r *http.Request) {
		name := r.FormValue("text")
		if name == "" {
			web.RespondJSONError(env.Logf, w, fmt.Errorf("%w: missing text parameter", web.ErrBadRequest))
			return
		}
		people, err := directory.Search(r.Context(), a.httpc, a.directoryURL, name)
		if err != nil {
			web.RespondJSONError(env.Logf, w, err)
			return
		}
		web.RespondJSON(w, blocksResponse{Blocks: slack.DirectoryBlocks(name, people)})
	})

	return mux
}

func (a *app) fetchCrimeLog(ctx context.Context, cfg *source.Config) (crimelog.Log, error) {
	src, err := findKind(cfg, source.KindCrimeLog)
	if err != nil {
		return nil, err
	}
	payload, err := a.fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return crimelog.Parse(payload)
}

func (a *app) fetchPNGs(ctx context.Context, cfg *source.Config) ([][]string, error) {
	src, err := findKind(cfg, source.KindTable)
	if err != nil {
		return nil, err
	}
	payload, err := a.fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	return source.Rows(payload, src.TableMarker)
}
