// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"fmt"
	"strings"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
)

// TreatmentSummary writes the treatment plan and management summary
// as a txt artifact.
func (e *Exporter) TreatmentSummary(scope string, rows []report.TreatmentRow,
	summary *report.TreatmentSummary) (string, error) {

	var b strings.Builder
	fmt.Fprintf(&b, "RISK TREATMENT SUMMARY — %s — %s\n", scope, e.datestamp())
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, row := range rows {
		fmt.Fprintf(&b, "%s\n", row.VendorName)
		fmt.Fprintf(&b, "  Risk level: %s (likelihood %s, impact %s", row.RiskLevel, row.Likelihood, row.Impact)
		if row.WeightedScore > 0 {
			fmt.Fprintf(&b, ", weighted score %.2f", row.WeightedScore)
		}
		b.WriteString(")\n")
		fmt.Fprintf(&b, "  Treatment: %s — %s\n", row.Treatment.Action, row.Treatment.Rationale)
		if row.AssessmentDate != "" {
			fmt.Fprintf(&b, "  Assessed: %s\n", row.AssessmentDate)
		}
		b.WriteString("\n")
	}

	if summary != nil {
		b.WriteString("MANAGEMENT SUMMARY\n")
		fmt.Fprintf(&b, "  Vendors in scope: %d (high %d / medium %d / low %d)\n",
			summary.Total, summary.High, summary.Medium, summary.Low)
		fmt.Fprintf(&b, "  Treatment actions assigned: %d (%.1f%%)\n",
			summary.Treated, summary.CompletionPct)
		fmt.Fprintf(&b, "  Next scheduled review: %s\n", summary.NextReview)
	}

	name := fmt.Sprintf("treatment_summary_%s_%s.txt", safeName(scope), e.datestamp())
	return e.WriteText(name, b.String())
}
