// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import "strings"

// TreatmentAction is the recommended handling for a risk level.
type TreatmentAction string

const (
	TreatMitigate TreatmentAction = "Mitigate"
	TreatTransfer TreatmentAction = "Transfer"
	TreatAccept   TreatmentAction = "Accept"
)

// Treatment pairs an action with its prescriptive rationale.
type Treatment struct {
	Action    TreatmentAction
	Rationale string
}

// ClassifyTreatment maps a risk level (case-insensitive) to a
// treatment recommendation:
//
//	high   → Mitigate (control remediation before engagement/renewal)
//	medium → Transfer (contractual/insurance clauses)
//	else   → Accept   (within tolerance, keep monitoring)
//
// The function is total: anything that is not "high" or "medium" —
// including "low" and unrecognized input — falls into Accept. This
// fail-open default is intentional and preserved as-is; note that a
// typo'd risk level silently becomes "Accept", which reads like a
// latent bug but is the documented behavior.
func ClassifyTreatment(level string) Treatment {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return Treatment{
			Action: TreatMitigate,
			Rationale: "Enhance controls or remediation before engagement/renewal. " +
				"Escalate to Risk / Legal for contractual clauses.",
		}
	case "medium":
		return Treatment{
			Action: TreatTransfer,
			Rationale: "Include contractual/insurance clauses, document obligations, " +
				"and track remediation timelines.",
		}
	default:
		return Treatment{
			Action:    TreatAccept,
			Rationale: "Risk is within tolerance. Maintain monitoring and schedule periodic review.",
		}
	}
}
