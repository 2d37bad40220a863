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

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// Row adapts one batch-import row to the Builder contract. Field
// values arrive pre-parsed; Build normalizes casing, computes the
// overall control score (plain mean of the control scores, 2
// decimals) and the risk bucket, and validates the result.
type Row struct {
	OrgID         string
	VendorName    string
	Service       string
	Regulator     string
	BusinessOwner string
	Likelihood    string
	Impact        string

	// Controls maps control domain name to a 1-5 score.
	Controls map[string]int

	// AssessedAt/AssessedBy stamp provenance; empty AssessedAt means
	// now.
	AssessedAt string
	AssessedBy string
}

// Build implements Builder.
func (r Row) Build(ctx context.Context) (*record.Record, error) {
	if len(r.Controls) == 0 {
		return nil, fmt.Errorf("row for %s/%s carries no control scores", r.OrgID, r.VendorName)
	}

	var sum int
	for domain, score := range r.Controls {
		if score < scoring.MinScore || score > scoring.MaxScore {
			return nil, fmt.Errorf("control %q: score %d outside %d-%d",
				domain, score, scoring.MinScore, scoring.MaxScore)
		}
		sum += score
	}

	likelihood := strings.ToLower(strings.TrimSpace(r.Likelihood))
	impact := strings.ToLower(strings.TrimSpace(r.Impact))

	assessedAt := r.AssessedAt
	if assessedAt == "" {
		assessedAt = time.Now().Format(time.RFC3339)
	}
	assessedBy := r.AssessedBy
	if assessedBy == "" {
		assessedBy = "import"
	}

	rec := &record.Record{
		OrgID:               strings.TrimSpace(r.OrgID),
		VendorName:          strings.TrimSpace(r.VendorName),
		Service:             strings.TrimSpace(r.Service),
		Regulator:           strings.TrimSpace(r.Regulator),
		BusinessOwner:       strings.TrimSpace(r.BusinessOwner),
		Likelihood:          likelihood,
		Impact:              impact,
		RiskBucket:          string(scoring.ClassifyRiskBucket(likelihood, impact)),
		ControlScores:       r.Controls,
		OverallControlScore: scoring.Round2(float64(sum) / float64(len(r.Controls))),
		AssessedAt:          assessedAt,
		AssessedBy:          assessedBy,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
