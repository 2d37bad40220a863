// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report computes portfolio rollups and treatment summaries,
// and builds the prompts the model turns into narrative text. All
// computation here is deterministic; the model only ever narrates
// numbers this package already produced.
package report

import (
	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// ScopeAll selects every organization in the registry for a rollup.
const ScopeAll = "ALL"

// Summary is the portfolio rollup for one org scope.
type Summary struct {
	Total         int
	AvgControl    float64
	RiskCounts    map[scoring.Bucket]int
	WeakestDomain string
}

// Summarize computes the portfolio summary over records. The average
// control score uses each record's best available composite (DDQ
// weighted score or import-path overall score); the weakest domain is
// the control domain with the lowest mean score across records that
// carry per-domain data.
func Summarize(records []*record.Record) Summary {
	s := Summary{
		RiskCounts:    map[scoring.Bucket]int{scoring.BucketHigh: 0, scoring.BucketMedium: 0, scoring.BucketLow: 0},
		WeakestDomain: "n/a",
	}
	if len(records) == 0 {
		return s
	}

	s.Total = len(records)

	var controlSum float64
	domainScores := map[string][]float64{}

	for _, rec := range records {
		controlSum += rec.EffectiveScore()
		s.RiskCounts[rec.EffectiveBucket()]++

		for domain, score := range rec.ControlScores {
			domainScores[domain] = append(domainScores[domain], float64(score))
		}
		for _, d := range rec.Domains {
			domainScores[d.Name] = append(domainScores[d.Name], d.Score)
		}
	}

	s.AvgControl = scoring.Round2(controlSum / float64(s.Total))

	weakest, weakestAvg := "n/a", 0.0
	for domain, scores := range domainScores {
		var sum float64
		for _, v := range scores {
			sum += v
		}
		avg := sum / float64(len(scores))
		if weakest == "n/a" || avg < weakestAvg || (avg == weakestAvg && domain < weakest) {
			weakest, weakestAvg = domain, avg
		}
	}
	s.WeakestDomain = weakest

	return s
}
