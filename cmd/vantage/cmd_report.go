// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/export"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	reportOrg           string // Org scope, or ALL
	reportAudience      string // internal / exec / client / vendor
	reportRedaction     string // none / partial / full
	reportFormat        string // excel / csv / txt
	reportSkipNarrative bool   // Skip the model narrative
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runReport builds the portfolio summary for the scope, generates
// the management narrative, and writes the artifacts. The narrative
// is advisory: if the model is unreachable the report still ships
// with a placeholder.
func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	audience, err := report.ParseAudience(reportAudience)
	if err != nil {
		return err
	}
	redaction, err := report.ParseRedaction(reportRedaction)
	if err != nil {
		return err
	}
	format := export.PortfolioFormat(reportFormat)
	switch format {
	case export.FormatExcel, export.FormatCSV, export.FormatText:
	default:
		return fmt.Errorf("unknown format %q (want excel, csv, or txt)", reportFormat)
	}

	records := runtime.scopedRecords(reportOrg)
	if len(records) == 0 {
		ux.Warn("No vendors found for scope %q.", reportOrg)
		return nil
	}

	summary := report.Summarize(records)
	ux.Title(fmt.Sprintf("Portfolio Report — %s", reportOrg))
	fmt.Printf("  Vendors assessed:   %d\n", summary.Total)
	fmt.Printf("  Avg control score:  %s %.2f\n", ux.ScoreMark(summary.AvgControl), summary.AvgControl)
	fmt.Printf("  High / Med / Low:   %d / %d / %d\n",
		summary.RiskCounts[scoring.BucketHigh],
		summary.RiskCounts[scoring.BucketMedium],
		summary.RiskCounts[scoring.BucketLow])
	fmt.Printf("  Weakest domain:     %s\n", summary.WeakestDomain)

	narrative := "Narrative unavailable: model endpoint could not be reached."
	if reportSkipNarrative {
		narrative = "Narrative generation skipped."
	} else {
		gen := runtime.generator()
		prompt := report.PortfolioPrompt(reportOrg, summary, audience, redaction)
		text, genErr := gen.Generate(ctx, runtime.cfg.Model, prompt)
		if genErr != nil {
			ux.Warn("narrative generation failed: %v", genErr)
		} else {
			narrative = text
			fmt.Println()
			fmt.Println(text)
		}
	}

	path, err := runtime.exporter.Portfolio(reportOrg, records, summary, narrative, format)
	if err != nil {
		return err
	}
	ux.Success("Report artifact written to %s", path)
	return nil
}
