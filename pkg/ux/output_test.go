// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"strings"
	"testing"
)

func TestRiskBadge_AcceptsBothPolarities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"high", "HIGH"},
		{"High", "HIGH"},
		{" medium ", "MEDIUM"},
		{"low", "LOW"},
		{"unknown", "UNKNOWN"},
		{"", ""},
	}
	for _, tt := range tests {
		got := RiskBadge(tt.in)
		if !strings.Contains(got, tt.want) {
			t.Errorf("RiskBadge(%q) = %q, want it to contain %q", tt.in, got, tt.want)
		}
	}
}

func TestScoreMark_Bands(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{4.8, "✓"},
		{4.0, "✓"},
		{3.5, "⚠"},
		{3.0, "⚠"},
		{2.9, "✗"},
		{0, "✗"},
	}
	for _, tt := range tests {
		got := ScoreMark(tt.score)
		if !strings.Contains(got, tt.want) {
			t.Errorf("ScoreMark(%v) = %q, want it to contain %q", tt.score, got, tt.want)
		}
	}
}
