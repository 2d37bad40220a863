// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	searchBucket string // Filter by effective risk bucket
	searchWeak   bool   // Only vendors with a control domain at 2 or below
	searchAll    bool   // List everything
)

// weakControlThreshold marks a control domain as a concern.
const weakControlThreshold = 2

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runSearch looks up vendors by name substring, risk bucket, or weak
// control domains. With no query and no flags it behaves like --all.
func runSearch(cmd *cobra.Command, args []string) error {
	var matches []*record.Record
	switch {
	case len(args) == 1 && strings.TrimSpace(args[0]) != "":
		matches = runtime.store.Search(args[0])
	default:
		matches = runtime.scopedRecords(report.ScopeAll)
	}

	if searchBucket != "" {
		want := scoring.Bucket(strings.ToLower(strings.TrimSpace(searchBucket)))
		switch want {
		case scoring.BucketLow, scoring.BucketMedium, scoring.BucketHigh:
		default:
			return fmt.Errorf("unknown bucket %q (want low, medium, or high)", searchBucket)
		}
		var kept []*record.Record
		for _, rec := range matches {
			if rec.EffectiveBucket() == want {
				kept = append(kept, rec)
			}
		}
		matches = kept
	}

	if searchWeak {
		var kept []*record.Record
		for _, rec := range matches {
			if len(weakDomains(rec)) > 0 {
				kept = append(kept, rec)
			}
		}
		matches = kept
	}

	if len(matches) == 0 {
		ux.Warn("No vendors matched.")
		return nil
	}

	ux.Title(fmt.Sprintf("Vendors (%d)", len(matches)))
	for _, rec := range matches {
		score := rec.EffectiveScore()
		fmt.Printf("  %-20s %-28s %s %s %.2f\n",
			rec.OrgID, rec.VendorName,
			ux.RiskBadge(string(rec.EffectiveBucket())),
			ux.ScoreMark(score), score)
		if searchWeak {
			for _, d := range weakDomains(rec) {
				fmt.Printf("      weak: %s\n", d)
			}
		}
	}
	return nil
}

// weakDomains lists the control domains scoring at or below the
// concern threshold, from either the import-path control map or the
// questionnaire domain results.
func weakDomains(rec *record.Record) []string {
	var weak []string
	for name, score := range rec.ControlScores {
		if score <= weakControlThreshold {
			weak = append(weak, fmt.Sprintf("%s (%d)", name, score))
		}
	}
	for _, d := range rec.Domains {
		if d.Score <= weakControlThreshold {
			weak = append(weak, fmt.Sprintf("%s (%.2f)", d.Name, d.Score))
		}
	}
	sort.Strings(weak)
	return weak
}
