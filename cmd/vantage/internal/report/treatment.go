// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"time"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// reviewCycle is the standing re-review interval for treatment
// summaries.
const reviewCycle = 90 * 24 * time.Hour

// TreatmentRow pairs one assessed vendor with its classified
// treatment action.
type TreatmentRow struct {
	VendorName     string
	RiskLevel      string
	Likelihood     string
	Impact         string
	WeightedScore  float64
	Treatment      scoring.Treatment
	AssessmentDate string
}

// TreatmentSummary is the management rollup over treatment rows.
type TreatmentSummary struct {
	Total         int
	High          int
	Medium        int
	Low           int
	Treated       int
	CompletionPct float64
	NextReview    string
}

// BuildTreatmentRows classifies a treatment action for each record
// that carries a risk level. Unscored records are skipped, not
// failed: a draft vendor has nothing to treat yet.
func BuildTreatmentRows(records []*record.Record) []TreatmentRow {
	var rows []TreatmentRow
	for _, rec := range records {
		if rec.RiskLevel == "" {
			continue
		}
		date := rec.AssessmentDate
		if date == "" {
			date = rec.AssessedAt
		}
		rows = append(rows, TreatmentRow{
			VendorName:     rec.VendorName,
			RiskLevel:      rec.RiskLevel,
			Likelihood:     rec.Likelihood,
			Impact:         rec.Impact,
			WeightedScore:  rec.WeightedScore,
			Treatment:      scoring.ClassifyTreatment(rec.RiskLevel),
			AssessmentDate: date,
		})
	}
	return rows
}

// SummarizeTreatments rolls up rows into the management summary. now
// anchors the next-review date (today + 90 days). Returns nil when
// there are no rows; the caller reports "nothing to summarize"
// instead of emitting an empty table.
func SummarizeTreatments(rows []TreatmentRow, now time.Time) *TreatmentSummary {
	if len(rows) == 0 {
		return nil
	}

	s := &TreatmentSummary{
		Total:      len(rows),
		NextReview: now.Add(reviewCycle).Format("02 January 2006"),
	}
	for _, row := range rows {
		switch scoring.Level(row.RiskLevel) {
		case scoring.LevelHigh:
			s.High++
		case scoring.LevelMedium:
			s.Medium++
		case scoring.LevelLow:
			s.Low++
		}
		// Every classified row counts as treated: classification
		// always lands on one of the three actions.
		s.Treated++
	}

	pct := float64(s.Treated) / float64(s.Total) * 100
	// One decimal, matching the completion figure's display precision.
	s.CompletionPct = float64(int(pct*10+0.5)) / 10

	return s
}
