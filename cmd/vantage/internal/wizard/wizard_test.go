// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

var _ Builder = (*Form)(nil)
var _ Builder = Row{}

func fullRatings(model scoring.Model, rating int) map[string][]int {
	ratings := make(map[string][]int, len(model.Domains))
	for _, d := range model.Domains {
		answers := make([]int, len(d.Questions))
		for i := range answers {
			answers[i] = rating
		}
		ratings[d.Name] = answers
	}
	return ratings
}

func testForm() *Form {
	f := NewForm(scoring.DefaultModel(), "analyst@acme")
	f.now = func() time.Time { return time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC) }
	return f
}

func TestAssemble_ScoresAndClassifies(t *testing.T) {
	f := testForm()
	id := Identity{
		OrgID: "acme", VendorName: "CloudCo", Service: "payroll",
		BusinessOwner: "J. Rivera", Regulator: "GDPR",
		Likelihood: "Medium", Impact: "HIGH",
	}

	rec, err := f.assemble(id, fullRatings(f.model, 4), map[string]string{
		"Data Protection & Privacy": "SOC 2 Type II reviewed",
	})
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	if rec.WeightedScore != 4.0 || rec.CompositePctScore != 80.0 {
		t.Errorf("scores = %.2f / %.2f", rec.WeightedScore, rec.CompositePctScore)
	}
	if rec.RiskLevel != "Low" {
		t.Errorf("RiskLevel = %q", rec.RiskLevel)
	}
	// Inputs normalize to lowercase; medium × high = 6 → medium.
	if rec.Likelihood != "medium" || rec.Impact != "high" || rec.RiskBucket != "medium" {
		t.Errorf("likelihood/impact/bucket = %q/%q/%q", rec.Likelihood, rec.Impact, rec.RiskBucket)
	}
	if len(rec.Domains) != len(f.model.Domains) {
		t.Errorf("domains = %d", len(rec.Domains))
	}
	if rec.AssessmentDate != "2026-04-02" || rec.AssessedBy != "analyst@acme" {
		t.Errorf("provenance = %q / %q", rec.AssessmentDate, rec.AssessedBy)
	}
	if rec.EvidenceNotes["Data Protection & Privacy"] != "SOC 2 Type II reviewed" {
		t.Errorf("evidence notes = %v", rec.EvidenceNotes)
	}
}

func TestAssemble_RejectsOutOfRangeRating(t *testing.T) {
	f := testForm()
	ratings := fullRatings(f.model, 3)
	ratings[f.model.Domains[0].Name][0] = 7

	_, err := f.assemble(Identity{
		OrgID: "acme", VendorName: "CloudCo", Service: "s",
		BusinessOwner: "o", Likelihood: "low", Impact: "low",
	}, ratings, nil)

	var scoreErr *scoring.InvalidScoreError
	if !errors.As(err, &scoreErr) {
		t.Fatalf("expected *scoring.InvalidScoreError, got %v", err)
	}
}

func TestAssemble_MissingIdentityFailsValidation(t *testing.T) {
	f := testForm()

	_, err := f.assemble(Identity{OrgID: "acme", Likelihood: "low", Impact: "low"},
		fullRatings(f.model, 3), nil)

	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *record.ValidationError, got %v", err)
	}
}

func TestRow_Build(t *testing.T) {
	row := Row{
		OrgID: "acme", VendorName: "CloudCo", Service: "hosting",
		Regulator: "none", BusinessOwner: "M. Osei",
		Likelihood: "LOW", Impact: "Medium",
		Controls: map[string]int{
			"Access Control / Identity Management":  3,
			"Encryption & Key Management":           4,
			"Monitoring & Logging":                  2,
			"Business Continuity / DR / Resilience": 3,
			"Privacy & Regulatory Compliance":       4,
		},
		AssessedAt: "2026-04-02T10:30:00Z",
	}

	rec, err := row.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rec.OverallControlScore != 3.2 {
		t.Errorf("OverallControlScore = %v, want 3.2", rec.OverallControlScore)
	}
	// low × medium = 2 → low bucket.
	if rec.RiskBucket != "low" || rec.Likelihood != "low" {
		t.Errorf("bucket/likelihood = %q/%q", rec.RiskBucket, rec.Likelihood)
	}
	if rec.AssessedBy != "import" {
		t.Errorf("AssessedBy = %q", rec.AssessedBy)
	}
}

func TestRow_Build_RejectsBadControlScore(t *testing.T) {
	row := Row{
		OrgID: "acme", VendorName: "CloudCo", Service: "hosting",
		BusinessOwner: "M. Osei", Likelihood: "low", Impact: "low",
		Controls: map[string]int{"Monitoring & Logging": 0},
	}

	if _, err := row.Build(context.Background()); err == nil {
		t.Fatal("score 0 must be rejected")
	}
}
