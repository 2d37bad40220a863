// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package record

// State is the derived lifecycle position of a record. It is never
// stored; it is computed from which fields the record carries, so a
// record cannot drift out of sync with its own state.
type State int

const (
	// StateDraft means identifying fields exist but no composite
	// score has been computed yet.
	StateDraft State = iota
	// StateScored means the record carries a weighted or overall
	// control score.
	StateScored
	// StateTreated means a treatment action has been recorded on top
	// of a score.
	StateTreated
	// StateAccepted means at least one risk-acceptance memo exists on
	// top of a score.
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateDraft:
		return "draft"
	case StateScored:
		return "scored"
	case StateTreated:
		return "treated"
	case StateAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// State derives the lifecycle position. Acceptance outranks treatment
// when both are present: an accepted risk is the stronger statement
// about where the vendor stands.
func (r *Record) State() State {
	if r.EffectiveScore() <= 0 {
		return StateDraft
	}
	if len(r.RiskAcceptances) > 0 {
		return StateAccepted
	}
	if r.TreatmentAction != "" {
		return StateTreated
	}
	return StateScored
}

// Merge overlays a fresh assessment onto an existing record without
// losing audit history. Identity and history fields (acceptances,
// approvals, open actions, created timestamp, contract, unknown
// fields) survive from prev; everything the new assessment produced
// overwrites. This is what makes re-scoring loop back to Scored
// instead of resetting the record.
func Merge(prev, next *Record) *Record {
	if prev == nil {
		return next
	}
	merged := *next
	if merged.Created == "" {
		merged.Created = prev.Created
	}
	if len(merged.RiskAcceptances) == 0 {
		merged.RiskAcceptances = prev.RiskAcceptances
	}
	if len(merged.Approvals) == 0 {
		merged.Approvals = prev.Approvals
	}
	if len(merged.OpenActions) == 0 {
		merged.OpenActions = prev.OpenActions
	}
	if len(merged.EvidenceNotes) == 0 {
		merged.EvidenceNotes = prev.EvidenceNotes
	}
	if merged.Contract == nil {
		merged.Contract = prev.Contract
	}
	if merged.TreatmentAction == "" {
		merged.TreatmentAction = prev.TreatmentAction
		merged.TreatmentRationale = prev.TreatmentRationale
	}
	if merged.Extra == nil {
		merged.Extra = prev.Extra
	} else if prev.Extra != nil {
		for key, value := range prev.Extra {
			if _, ok := merged.Extra[key]; !ok {
				merged.Extra[key] = value
			}
		}
	}
	return &merged
}
