// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package record defines the persisted vendor assessment model.
//
// A Record is the unit the store owns: one vendor under one
// organization. Field names round-trip byte-for-byte with the on-disk
// JSON, and unknown fields written by other tooling are preserved
// across read-modify-write cycles (see Extra).
//
// Lifecycle is monotonic in data: fields are added or overwritten,
// never deleted. A record moves Nonexistent → Draft → Scored →
// Scored+Treated → Scored+Accepted, and re-scoring from any state
// loops back to Scored while keeping prior acceptances, actions, and
// history.
package record

import (
	"encoding/json"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// Approval is one sign-off entry (IT, Risk, Procurement, ...).
type Approval struct {
	Reviewer string `json:"reviewer"`
	Role     string `json:"role"`
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

// OpenAction is one tracked remediation item.
type OpenAction struct {
	OwnerType string `json:"owner_type"`
	Action    string `json:"action"`
	Urgency   string `json:"urgency"`
	Status    string `json:"status"`
}

// Acceptance is one risk-acceptance memo entry. Entries are an
// append-only audit trail; they are never edited or removed.
type Acceptance struct {
	ID             string `json:"id"`
	RiskDesc       string `json:"risk_desc"`
	Justification  string `json:"justification"`
	Owner          string `json:"owner"`
	Expiry         string `json:"expiry"`
	MitigationPlan string `json:"mitigation_plan"`
	GeneratedAt    string `json:"generated_at"`
	MemoText       string `json:"memo_text"`
}

// Contract is the optional contract lifecycle sub-record.
type Contract struct {
	StartDate        string  `json:"start_date,omitempty"`
	EndDate          string  `json:"end_date,omitempty"`
	RenewalDate      string  `json:"renewal_date,omitempty"`
	DaysUntilRenewal int     `json:"days_until_renewal,omitempty"`
	NoticePeriodDays int     `json:"notice_period_days,omitempty"`
	AutoRenewal      bool    `json:"auto_renewal,omitempty"`
	AnnualValue      float64 `json:"contract_value_annual,omitempty"`
	Currency         string  `json:"currency,omitempty"`
	SLAUptime        string  `json:"sla_uptime,omitempty"`
	SLAResponseTime  string  `json:"sla_response_time,omitempty"`
	Owner            string  `json:"contract_owner,omitempty"`
	PaymentTerms     string  `json:"payment_terms,omitempty"`
}

// Record is one vendor's assessment under one organization. The
// (OrgID, VendorName) pair identifies it; vendor names are unique
// within an organization only.
//
// WeightedScore/CompositePctScore/RiskLevel come from the full DDQ
// path; OverallControlScore/ControlScores/RiskBucket come from the
// bulk-import path. A record may carry both families and the two risk
// classifications are NOT required to agree — they are independent
// signals (control maturity vs likelihood/impact) read separately by
// downstream reports. Never reconcile them.
type Record struct {
	OrgID      string `json:"org_id"`
	VendorName string `json:"vendor_name"`
	Created    string `json:"created,omitempty"`

	Service       string `json:"service"`
	BusinessOwner string `json:"business_owner"`
	Regulator     string `json:"regulator,omitempty"`

	Likelihood string `json:"likelihood"`
	Impact     string `json:"impact"`

	AssessmentDate string `json:"assessment_date,omitempty"`
	AssessedAt     string `json:"assessed_at,omitempty"`
	AssessedBy     string `json:"assessed_by,omitempty"`

	Domains           []scoring.DomainResult `json:"domains,omitempty"`
	WeightedScore     float64                `json:"weighted_score,omitempty"`
	CompositePctScore float64                `json:"composite_pct_score,omitempty"`
	RiskLevel         string                 `json:"risk_level,omitempty"`

	RiskBucket          string             `json:"risk_bucket,omitempty"`
	ControlScores       map[string]int     `json:"control_scores,omitempty"`
	OverallControlScore float64            `json:"overall_control_score,omitempty"`

	TreatmentAction    string `json:"treatment_action,omitempty"`
	TreatmentRationale string `json:"treatment_rationale,omitempty"`

	EvidenceNotes   map[string]string `json:"evidence_notes,omitempty"`
	Approvals       []Approval        `json:"approvals,omitempty"`
	OpenActions     []OpenAction      `json:"open_actions,omitempty"`
	RiskAcceptances []Acceptance      `json:"risk_acceptances,omitempty"`
	Contract        *Contract         `json:"contract,omitempty"`

	// Extra holds JSON fields this version does not model. They are
	// captured on unmarshal and written back on marshal so that a
	// read-modify-write never strips another tool's data. Known
	// fields always win on conflict.
	Extra map[string]json.RawMessage `json:"-"`
}

// recordAlias avoids marshal recursion.
type recordAlias Record

// knownRecordFields enumerates the JSON keys owned by Record; used
// to separate Extra on unmarshal.
var knownRecordFields = map[string]bool{
	"org_id":                true,
	"vendor_name":           true,
	"created":               true,
	"service":               true,
	"business_owner":        true,
	"regulator":             true,
	"likelihood":            true,
	"impact":                true,
	"assessment_date":       true,
	"assessed_at":           true,
	"assessed_by":           true,
	"domains":               true,
	"weighted_score":        true,
	"composite_pct_score":   true,
	"risk_level":            true,
	"risk_bucket":           true,
	"control_scores":        true,
	"overall_control_score": true,
	"treatment_action":      true,
	"treatment_rationale":   true,
	"evidence_notes":        true,
	"approvals":             true,
	"open_actions":          true,
	"risk_acceptances":      true,
	"contract":              true,
}

// UnmarshalJSON decodes known fields and stashes everything else in
// Extra.
func (r *Record) UnmarshalJSON(data []byte) error {
	var alias recordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key := range raw {
		if knownRecordFields[key] {
			delete(raw, key)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*r = Record(alias)
	r.Extra = raw
	return nil
}

// MarshalJSON encodes known fields and merges Extra back in.
func (r Record) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(recordAlias(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for key, value := range r.Extra {
		if _, owned := merged[key]; !owned {
			merged[key] = value
		}
	}
	return json.Marshal(merged)
}

// EffectiveBucket returns the stored risk bucket, or classifies one
// from likelihood and impact when the record predates bucket storage.
func (r *Record) EffectiveBucket() scoring.Bucket {
	if r.RiskBucket != "" {
		return scoring.Bucket(r.RiskBucket)
	}
	return scoring.ClassifyRiskBucket(r.Likelihood, r.Impact)
}

// EffectiveScore returns the best available composite control score:
// the DDQ weighted score when present, else the import-path overall
// control score, else 0.
func (r *Record) EffectiveScore() float64 {
	if r.WeightedScore > 0 {
		return r.WeightedScore
	}
	return r.OverallControlScore
}
