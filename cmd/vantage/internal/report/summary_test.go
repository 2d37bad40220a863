// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"testing"
	"time"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

func vendor(name string, score float64, likelihood, impact string, controls map[string]int) *record.Record {
	return &record.Record{
		OrgID:               "acme",
		VendorName:          name,
		Service:             "svc",
		BusinessOwner:       "owner",
		Likelihood:          likelihood,
		Impact:              impact,
		OverallControlScore: score,
		ControlScores:       controls,
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || s.AvgControl != 0 || s.WeakestDomain != "n/a" {
		t.Errorf("empty summary = %+v", s)
	}
	if s.RiskCounts[scoring.BucketHigh] != 0 {
		t.Errorf("empty summary should carry zeroed counts: %+v", s.RiskCounts)
	}
}

func TestSummarize_Portfolio(t *testing.T) {
	records := []*record.Record{
		vendor("A", 4.0, "low", "low", map[string]int{"encrypt": 5, "logging": 3}),
		vendor("B", 2.0, "high", "high", map[string]int{"encrypt": 4, "logging": 1}),
		vendor("C", 3.0, "medium", "high", map[string]int{"encrypt": 3, "logging": 2}),
	}

	s := Summarize(records)

	if s.Total != 3 {
		t.Errorf("Total = %d", s.Total)
	}
	if s.AvgControl != 3.0 {
		t.Errorf("AvgControl = %v, want 3.0", s.AvgControl)
	}
	// Buckets: low×low=1→low, high×high=9→high, medium×high=6→medium.
	if s.RiskCounts[scoring.BucketHigh] != 1 || s.RiskCounts[scoring.BucketMedium] != 1 || s.RiskCounts[scoring.BucketLow] != 1 {
		t.Errorf("RiskCounts = %+v", s.RiskCounts)
	}
	// logging avg 2.0 vs encrypt avg 4.0.
	if s.WeakestDomain != "logging" {
		t.Errorf("WeakestDomain = %q, want logging", s.WeakestDomain)
	}
}

func TestSummarize_UsesWeightedScoreWhenPresent(t *testing.T) {
	rec := vendor("A", 0, "low", "low", nil)
	rec.WeightedScore = 4.5
	rec.Domains = []scoring.DomainResult{{Name: "Access Control", WeightPct: 100, Score: 4.5}}

	s := Summarize([]*record.Record{rec})
	if s.AvgControl != 4.5 {
		t.Errorf("AvgControl = %v, want weighted score 4.5", s.AvgControl)
	}
	if s.WeakestDomain != "Access Control" {
		t.Errorf("WeakestDomain = %q", s.WeakestDomain)
	}
}

func TestBuildTreatmentRows_SkipsUnscored(t *testing.T) {
	scored := vendor("Scored", 3.5, "medium", "medium", nil)
	scored.RiskLevel = "Medium"
	scored.WeightedScore = 3.5
	scored.AssessmentDate = "2026-05-01"

	draft := vendor("Draft", 0, "low", "low", nil)

	rows := BuildTreatmentRows([]*record.Record{scored, draft})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (draft skipped)", len(rows))
	}
	row := rows[0]
	if row.VendorName != "Scored" || row.Treatment.Action != scoring.TreatTransfer {
		t.Errorf("row = %+v", row)
	}
	if row.AssessmentDate != "2026-05-01" {
		t.Errorf("AssessmentDate = %q", row.AssessmentDate)
	}
}

func TestSummarizeTreatments(t *testing.T) {
	mk := func(level string) TreatmentRow {
		return TreatmentRow{RiskLevel: level, Treatment: scoring.ClassifyTreatment(level)}
	}
	rows := []TreatmentRow{mk("High"), mk("High"), mk("Medium"), mk("Low")}

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	s := SummarizeTreatments(rows, now)
	if s == nil {
		t.Fatal("expected summary")
	}
	if s.Total != 4 || s.High != 2 || s.Medium != 1 || s.Low != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.Treated != 4 || s.CompletionPct != 100.0 {
		t.Errorf("treated = %d pct = %v", s.Treated, s.CompletionPct)
	}
	if s.NextReview != "27 November 2026" {
		t.Errorf("NextReview = %q, want 27 November 2026", s.NextReview)
	}
}

func TestSummarizeTreatments_EmptyReturnsNil(t *testing.T) {
	if s := SummarizeTreatments(nil, time.Now()); s != nil {
		t.Errorf("expected nil for no rows, got %+v", s)
	}
}
