// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"fmt"
	"math"
)

// Question is one prompt inside a domain definition. SubWeight
// weights the question within its domain only; sub-weights are not
// required to sum to any particular total.
type Question struct {
	Prompt    string
	SubWeight float64
}

// Domain is a named control domain carrying a portfolio weight and
// an ordered question set. Across a Model, weights sum to 100.
type Domain struct {
	Name      string
	WeightPct float64
	Questions []Question
}

// Thresholds holds the weighted-score cut-offs for risk level
// classification. Note the inverted scale: scores AT OR ABOVE Low
// classify as "Low" risk.
type Thresholds struct {
	// Low is the minimum weighted score for a Low classification.
	Low float64

	// Medium is the minimum weighted score for a Medium
	// classification. Anything below is High.
	Medium float64
}

// DefaultThresholds returns the standard cut-offs: >=4.0 Low,
// >=3.0 Medium, else High.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: 4.0, Medium: 3.0}
}

// Model is a complete scoring configuration: the domain portfolio and
// the classification thresholds. Validate once at load time; a Model
// that passed Validate never produces per-call configuration errors.
type Model struct {
	Domains    []Domain
	Thresholds Thresholds
}

// DefaultModel returns the standard due-diligence questionnaire:
// seven domains weighted 25/15/15/15/10/10/10.
func DefaultModel() Model {
	return Model{
		Domains: []Domain{
			{
				Name:      "Data Protection",
				WeightPct: 25,
				Questions: []Question{
					{Prompt: "Is customer data encrypted at rest and in transit?", SubWeight: 1.0},
					{Prompt: "Are there defined data retention and disposal procedures?", SubWeight: 1.0},
					{Prompt: "Is there evidence of SOC2/ISO27001 certifications related to data protection?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Compliance",
				WeightPct: 15,
				Questions: []Question{
					{Prompt: "Do you maintain compliance with GDPR, HIPAA, PCI-DSS or similar?", SubWeight: 1.0},
					{Prompt: "Are certifications / audits current and valid (not expired)?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Access Control",
				WeightPct: 15,
				Questions: []Question{
					{Prompt: "Is MFA enforced for privileged and remote access?", SubWeight: 1.0},
					{Prompt: "Are access reviews / offboarding revocations performed regularly?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Incident Response",
				WeightPct: 15,
				Questions: []Question{
					{Prompt: "Is there a documented incident response plan?", SubWeight: 1.0},
					{Prompt: "Has the IR plan been tested in the last 12 months?", SubWeight: 1.0},
					{Prompt: "Is there a defined escalation / RACI for incidents?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Business Continuity",
				WeightPct: 10,
				Questions: []Question{
					{Prompt: "Do you have BCP/DR plans that are tested annually?", SubWeight: 1.0},
					{Prompt: "Are RTO/RPO objectives defined and achievable for this service?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Subprocessor Management",
				WeightPct: 10,
				Questions: []Question{
					{Prompt: "Do you assess and monitor critical subprocessors / 4th parties?", SubWeight: 1.0},
					{Prompt: "Do you maintain exit / contingency plans for critical suppliers?", SubWeight: 1.0},
				},
			},
			{
				Name:      "Governance & Documentation",
				WeightPct: 10,
				Questions: []Question{
					{Prompt: "Are key policies owned, reviewed, and approved annually?", SubWeight: 1.0},
					{Prompt: "Are risk/security roles and responsibilities clearly documented?", SubWeight: 1.0},
				},
			},
		},
		Thresholds: DefaultThresholds(),
	}
}

// Validate checks the model invariants:
//
//   - portfolio weights sum to 100 within WeightTolerance, and are
//     never silently renormalized
//   - every domain has at least one question
//   - every sub-weight is strictly positive
//   - the Low threshold strictly exceeds the Medium threshold
//
// A violation is a fatal configuration error; callers are expected to
// refuse to start rather than proceed with a broken model.
func (m Model) Validate() error {
	if len(m.Domains) == 0 {
		return fmt.Errorf("scoring model has no domains")
	}

	var total float64
	seen := make(map[string]bool, len(m.Domains))
	for _, d := range m.Domains {
		if d.Name == "" {
			return fmt.Errorf("scoring model contains an unnamed domain")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate domain %q in scoring model", d.Name)
		}
		seen[d.Name] = true

		if d.WeightPct <= 0 {
			return fmt.Errorf("domain %q: portfolio weight must be positive, got %v", d.Name, d.WeightPct)
		}
		total += d.WeightPct

		if len(d.Questions) == 0 {
			return fmt.Errorf("domain %q has no questions", d.Name)
		}
		for i, q := range d.Questions {
			if q.SubWeight <= 0 {
				return fmt.Errorf("domain %q question %d: sub-weight must be positive, got %v",
					d.Name, i+1, q.SubWeight)
			}
		}
	}

	if math.Abs(total-100) > WeightTolerance {
		return fmt.Errorf("domain weights must sum to 100 (±%v), got %v", WeightTolerance, total)
	}

	if m.Thresholds.Low <= m.Thresholds.Medium {
		return fmt.Errorf("risk threshold Low (%v) must strictly exceed Medium (%v)",
			m.Thresholds.Low, m.Thresholds.Medium)
	}

	return nil
}
