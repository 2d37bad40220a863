// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"strings"
	"testing"
)

func TestClassifyTreatment(t *testing.T) {
	tests := []struct {
		level string
		want  TreatmentAction
	}{
		{"high", TreatMitigate},
		{"High", TreatMitigate},
		{"HIGH", TreatMitigate},
		{"medium", TreatTransfer},
		{"Medium", TreatTransfer},
		{"low", TreatAccept},
		{"Low", TreatAccept},
	}
	for _, tt := range tests {
		if got := ClassifyTreatment(tt.level); got.Action != tt.want {
			t.Errorf("ClassifyTreatment(%q) = %q, want %q", tt.level, got.Action, tt.want)
		}
	}
}

// TestClassifyTreatment_FailOpen pins the fail-open default: any
// unrecognized level — including typos of "high" — lands in Accept.
// That is the documented behavior, preserved rather than repaired.
func TestClassifyTreatment_FailOpen(t *testing.T) {
	for _, in := range []string{"", "hig", "critical", "severe", "n/a", " unknown "} {
		got := ClassifyTreatment(in)
		if got.Action != TreatAccept {
			t.Errorf("ClassifyTreatment(%q) = %q, want Accept (fail-open)", in, got.Action)
		}
	}
}

func TestClassifyTreatment_Rationales(t *testing.T) {
	if r := ClassifyTreatment("high").Rationale; !strings.Contains(r, "remediation") {
		t.Errorf("high rationale should mention remediation, got %q", r)
	}
	if r := ClassifyTreatment("medium").Rationale; !strings.Contains(r, "contractual") {
		t.Errorf("medium rationale should mention contractual clauses, got %q", r)
	}
	if r := ClassifyTreatment("low").Rationale; !strings.Contains(r, "monitoring") {
		t.Errorf("low rationale should mention monitoring, got %q", r)
	}
}
