// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/store"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dashboardOrg   string
	dashboardWatch bool // Re-render on registry changes
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runDashboard renders the portfolio rollup in the terminal. With
// --watch it stays up and re-renders whenever the vendor registry
// file changes, until interrupted.
func runDashboard(cmd *cobra.Command, args []string) error {
	renderDashboard(dashboardOrg, runtime.scopedRecords(dashboardOrg))
	if !dashboardWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: the store replaces the
	// registry file on every write, which breaks a file-level watch.
	if err := watcher.Add(filepath.Dir(runtime.cfg.VendorDBPath)); err != nil {
		return fmt.Errorf("watch %s: %w", runtime.cfg.VendorDBPath, err)
	}
	ux.Info("Watching %s (Ctrl-C to stop)", runtime.cfg.VendorDBPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != runtime.cfg.VendorDBPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			st, err := store.Open(runtime.cfg.VendorDBPath, runtime.log)
			if err != nil {
				ux.Warn("registry reload failed: %v", err)
				continue
			}
			runtime.store = st
			renderDashboard(dashboardOrg, runtime.scopedRecords(dashboardOrg))
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ux.Warn("watcher error: %v", werr)
		}
	}
}

// renderDashboard draws the rollup panels for one scope.
func renderDashboard(scope string, records []*record.Record) {
	summary := report.Summarize(records)

	var left strings.Builder
	left.WriteString(ux.Styles.Bold.Render("Portfolio") + "\n")
	fmt.Fprintf(&left, "Scope:    %s\n", scope)
	fmt.Fprintf(&left, "Vendors:  %d\n", summary.Total)
	fmt.Fprintf(&left, "Avg ctrl: %s %.2f\n", ux.ScoreMark(summary.AvgControl), summary.AvgControl)
	fmt.Fprintf(&left, "Weakest:  %s", summary.WeakestDomain)

	var right strings.Builder
	right.WriteString(ux.Styles.Bold.Render("Risk Mix") + "\n")
	fmt.Fprintf(&right, "%s  %d\n", ux.RiskBadge("high"), summary.RiskCounts[scoring.BucketHigh])
	fmt.Fprintf(&right, "%s  %d\n", ux.RiskBadge("medium"), summary.RiskCounts[scoring.BucketMedium])
	fmt.Fprintf(&right, "%s  %d", ux.RiskBadge("low"), summary.RiskCounts[scoring.BucketLow])

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		ux.Styles.Box.Render(left.String()),
		ux.Styles.Box.Render(right.String()))
	fmt.Println(panels)

	if summary.Total == 0 {
		return
	}
	for _, rec := range records {
		score := rec.EffectiveScore()
		fmt.Printf("  %-20s %-28s %s %s %.2f\n",
			rec.OrgID, rec.VendorName,
			ux.RiskBadge(string(rec.EffectiveBucket())),
			ux.ScoreMark(score), score)
	}
}
