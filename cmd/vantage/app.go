// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/config"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/export"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/llm"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/store"
	"github.com/vantagegrc/vantage/pkg/logging"
)

// app is the wired runtime every command runs against. Built once in
// PersistentPreRunE; commands receive their dependencies from here
// instead of reaching for globals.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	store    *store.Store
	history  *store.History
	exporter *export.Exporter
	model    scoring.Model
}

// newApp loads configuration, prepares directories, and opens the
// vendor registry. Any failure here is fatal for the command: there
// is no degraded mode for a broken store or an invalid scoring
// model.
func newApp(baseDir string) (*app, error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{
		Level:   cfg.LogLevel,
		LogDir:  cfg.LogsDir,
		Service: "vantage",
	})

	model := scoring.DefaultModel()
	model.Thresholds = cfg.Thresholds
	if err := model.Validate(); err != nil {
		log.Close()
		return nil, fmt.Errorf("scoring model: %w", err)
	}

	st, err := store.Open(cfg.VendorDBPath, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	hist, err := store.NewHistory(cfg.HistoryDir, log)
	if err != nil {
		log.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		history:  hist,
		exporter: export.New(cfg.OutputsDir, log),
		model:    model,
	}, nil
}

// generator builds the configured LLM backend wrapped in the retry
// policy. Built on demand; most commands never talk to the model.
func (a *app) generator() llm.Generator {
	var gen llm.Generator
	switch a.cfg.Backend {
	case config.BackendOpenAI:
		gen = llm.NewOpenAIClient(a.cfg.OpenAIBaseURL, a.cfg.OpenAIKey,
			a.cfg.Model, a.cfg.Timeout, a.log)
	default:
		gen = llm.NewOllamaClient(a.cfg.OllamaURL, a.cfg.Model, a.cfg.Timeout, a.log)
	}
	return llm.WithRetry(gen, llm.DefaultRetryPolicy(), a.log)
}

// scopedRecords resolves an org scope to its records: a named org,
// or report.ScopeAll for every org in the registry.
func (a *app) scopedRecords(scope string) []*record.Record {
	if scope == report.ScopeAll {
		var all []*record.Record
		for _, org := range a.store.Orgs() {
			all = append(all, a.store.Vendors(org)...)
		}
		return all
	}
	return a.store.Vendors(scope)
}

// snapshot writes the history entry for a freshly committed record.
// Every mutation lands in history: a same-second collision retries
// with the next second instead of dropping the entry.
func (a *app) snapshot(rec *record.Record) error {
	now := time.Now()
	_, err := a.history.Snapshot(rec, now)
	if errors.Is(err, store.ErrSnapshotExists) {
		_, err = a.history.Snapshot(rec, now.Add(time.Second))
	}
	return err
}

// exportName makes an org or vendor name usable inside a file name.
func exportName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

func (a *app) close() {
	if a.log != nil {
		a.log.Close()
	}
}
