// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// ratingOptions are the 1-5 answers offered for every due-diligence
// question.
var ratingOptions = []huh.Option[int]{
	huh.NewOption("1 — Inadequate / absent", 1),
	huh.NewOption("2 — Weak / partial", 2),
	huh.NewOption("3 — Adequate with gaps", 3),
	huh.NewOption("4 — Strong", 4),
	huh.NewOption("5 — Best practice", 5),
}

var levelOptions = []huh.Option[string]{
	huh.NewOption("low", "low"),
	huh.NewOption("medium", "medium"),
	huh.NewOption("high", "high"),
}

// Identity is the vendor identification block captured before any
// scoring happens.
type Identity struct {
	OrgID         string
	VendorName    string
	Service       string
	BusinessOwner string
	Regulator     string
	Likelihood    string
	Impact        string
}

// Form is the interactive due-diligence wizard: identity block, then
// one screen per scoring domain, then per-domain evidence notes.
// Implements Builder.
type Form struct {
	model      scoring.Model
	assessedBy string

	// now stamps the assessment; swappable for tests.
	now func() time.Time
}

// NewForm returns a Form over the given scoring model. The model
// must already be validated; NewForm does not re-check weights.
func NewForm(model scoring.Model, assessedBy string) *Form {
	return &Form{model: model, assessedBy: assessedBy, now: time.Now}
}

// Build walks the analyst through the full questionnaire and returns
// the scored, classified, validated record.
func (f *Form) Build(ctx context.Context) (*record.Record, error) {
	var id Identity
	identityForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Organisation / client").Value(&id.OrgID).
				Validate(nonEmpty("organisation")),
			huh.NewInput().Title("Vendor name").Value(&id.VendorName).
				Validate(nonEmpty("vendor name")),
			huh.NewInput().Title("Service / data handled").Value(&id.Service).
				Validate(nonEmpty("service")),
			huh.NewInput().Title("Business owner").Value(&id.BusinessOwner).
				Validate(nonEmpty("business owner")),
			huh.NewInput().Title("Regulatory scope (optional)").Value(&id.Regulator),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Likelihood of compromise").
				Options(levelOptions...).Value(&id.Likelihood),
			huh.NewSelect[string]().Title("Business impact if compromised").
				Options(levelOptions...).Value(&id.Impact),
		),
	)
	if err := identityForm.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("identity form: %w", err)
	}

	ratings := make(map[string][]int, len(f.model.Domains))
	notes := make(map[string]string)
	for _, domain := range f.model.Domains {
		answers := make([]int, len(domain.Questions))
		fields := make([]huh.Field, 0, len(domain.Questions)+1)
		for i, q := range domain.Questions {
			fields = append(fields,
				huh.NewSelect[int]().Title(q.Prompt).
					Description(fmt.Sprintf("%s — weight %.0f%%", domain.Name, domain.WeightPct)).
					Options(ratingOptions...).Value(&answers[i]))
		}
		var note string
		fields = append(fields,
			huh.NewText().Title("Evidence / notes for "+domain.Name+" (optional)").
				Value(&note))

		domainForm := huh.NewForm(huh.NewGroup(fields...).Title(domain.Name))
		if err := domainForm.RunWithContext(ctx); err != nil {
			return nil, fmt.Errorf("domain %q form: %w", domain.Name, err)
		}
		ratings[domain.Name] = answers
		if strings.TrimSpace(note) != "" {
			notes[domain.Name] = strings.TrimSpace(note)
		}
	}

	return f.assemble(id, ratings, notes)
}

// assemble scores the answers, classifies the result, and validates
// the finished record. Pure given f.now; the interactive layer above
// it is just input collection.
func (f *Form) assemble(id Identity, ratings map[string][]int,
	notes map[string]string) (*record.Record, error) {

	results := make([]scoring.DomainResult, 0, len(f.model.Domains))
	for _, domain := range f.model.Domains {
		res, err := scoring.ScoreDomain(domain, ratings[domain.Name])
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	composite := scoring.Aggregate(results)
	level := scoring.ClassifyRiskLevel(composite.WeightedScore, f.model.Thresholds)

	likelihood := strings.ToLower(strings.TrimSpace(id.Likelihood))
	impact := strings.ToLower(strings.TrimSpace(id.Impact))
	now := f.now()

	rec := &record.Record{
		OrgID:             strings.TrimSpace(id.OrgID),
		VendorName:        strings.TrimSpace(id.VendorName),
		Created:           now.Format(time.RFC3339),
		Service:           strings.TrimSpace(id.Service),
		BusinessOwner:     strings.TrimSpace(id.BusinessOwner),
		Regulator:         strings.TrimSpace(id.Regulator),
		Likelihood:        likelihood,
		Impact:            impact,
		AssessmentDate:    now.Format("2006-01-02"),
		AssessedAt:        now.Format(time.RFC3339),
		AssessedBy:        f.assessedBy,
		Domains:           results,
		WeightedScore:     composite.WeightedScore,
		CompositePctScore: composite.PctScore,
		RiskLevel:         string(level),
		RiskBucket:        string(scoring.ClassifyRiskBucket(likelihood, impact)),
	}
	if len(notes) > 0 {
		rec.EvidenceNotes = notes
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func nonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
