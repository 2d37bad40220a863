// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	treatmentOrg    string
	treatmentVendor string // Optional single-vendor filter
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runTreatment classifies treatment actions for every scored vendor
// in the org, persists them on the records, and writes the
// management summary.
func runTreatment(cmd *cobra.Command, args []string) error {
	records := runtime.store.Vendors(treatmentOrg)
	if treatmentVendor != "" {
		var kept []*record.Record
		for _, rec := range records {
			if rec.VendorName == treatmentVendor {
				kept = append(kept, rec)
			}
		}
		records = kept
	}
	if len(records) == 0 {
		ux.Warn("No vendors found for org %q.", treatmentOrg)
		return nil
	}

	rows := report.BuildTreatmentRows(records)
	if len(rows) == 0 {
		ux.Warn("No scored vendors to treat; run assessments first.")
		return nil
	}

	ux.Title(fmt.Sprintf("Treatment Plan — %s", treatmentOrg))
	for _, row := range rows {
		fmt.Printf("  %-28s %s -> %s\n",
			row.VendorName, ux.RiskBadge(row.RiskLevel), row.Treatment.Action)
		fmt.Printf("      %s\n", row.Treatment.Rationale)
	}

	// Persist the classification so record state reflects the plan.
	byVendor := make(map[string]report.TreatmentRow, len(rows))
	for _, row := range rows {
		byVendor[row.VendorName] = row
	}
	for _, rec := range records {
		row, ok := byVendor[rec.VendorName]
		if !ok {
			continue
		}
		next := *rec
		next.TreatmentAction = string(row.Treatment.Action)
		next.TreatmentRationale = row.Treatment.Rationale
		saved, err := runtime.store.Upsert(&next)
		if err != nil {
			return err
		}
		if err := runtime.snapshot(saved); err != nil {
			ux.Warn("history snapshot failed for %s: %v", saved.VendorName, err)
		}
	}

	now := time.Now()
	summary := report.SummarizeTreatments(rows, now)
	fmt.Println()
	fmt.Printf("  Assessed: %d   High: %d   Medium: %d   Low: %d\n",
		summary.Total, summary.High, summary.Medium, summary.Low)
	fmt.Printf("  Treatment completion: %.1f%%\n", summary.CompletionPct)
	fmt.Printf("  Next scheduled review: %s\n", summary.NextReview)

	path, err := runtime.exporter.TreatmentSummary(treatmentOrg, rows, summary)
	if err != nil {
		return err
	}
	ux.Success("Treatment summary written to %s", path)
	return nil
}
