// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import (
	"math"
	"strings"
)

// Score bounds for a single questionnaire rating.
const (
	MinScore = 1
	MaxScore = 5
)

// WeightTolerance is the permitted deviation when domain portfolio
// weights are checked against 100.
const WeightTolerance = 0.01

// Level is the control-maturity risk classification derived from the
// weighted score. Higher weighted score means stronger controls and a
// LOWER level — the inverse polarity of Bucket.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Bucket is the likelihood × impact risk classification. Values are
// lowercase by convention; they predate Level in the stored data and
// the two casings are preserved for round-trip fidelity.
type Bucket string

const (
	BucketLow    Bucket = "low"
	BucketMedium Bucket = "medium"
	BucketHigh   Bucket = "high"
)

// Ordinal maps a likelihood or impact rating to its ordinal value:
// low=1, medium=2, high=3. Matching is case-insensitive; anything
// unrecognized defaults to medium. The defaulting is a deliberate
// fail-soft policy so that bucket classification is total.
func Ordinal(rating string) int {
	switch strings.ToLower(strings.TrimSpace(rating)) {
	case "low":
		return 1
	case "high":
		return 3
	default:
		return 2
	}
}

// QuestionScore is one answered question inside a domain result.
type QuestionScore struct {
	Question  string  `json:"question"`
	Score     int     `json:"score"`
	SubWeight float64 `json:"sub_weight"`
}

// DomainResult is the frozen outcome of scoring one control domain.
// WeightPct is copied from the domain definition at scoring time, so
// later model changes never rewrite history.
type DomainResult struct {
	Name      string          `json:"name"`
	WeightPct float64         `json:"weight_pct"`
	Score     float64         `json:"score"`
	Questions []QuestionScore `json:"questions"`
}

// Contribution returns this domain's share of the 1-5 weighted score,
// rounded to 2 decimals.
func (d DomainResult) Contribution() float64 {
	return Round2(d.Score * d.WeightPct / 100)
}

// Composite holds the two independently rounded assessment-wide
// scores. They are related (PctScore ≈ WeightedScore/5×100) but NOT
// derived from one another: each is rounded from its own sum, and the
// results can disagree by more than a linear rescale would imply.
type Composite struct {
	// WeightedScore is the 1-5 style composite.
	WeightedScore float64

	// PctScore is the 0-100 dashboard-style composite.
	PctScore float64
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
