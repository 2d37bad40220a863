// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

import "fmt"

// InvalidScoreError reports a rating outside [MinScore, MaxScore].
type InvalidScoreError struct {
	// Domain is the domain being scored.
	Domain string

	// Index is the zero-based question index within the domain.
	Index int

	// Score is the rejected rating.
	Score int
}

// Error returns a message naming the domain, question, and rating.
func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("domain %q question %d: score %d outside [%d,%d]",
		e.Domain, e.Index+1, e.Score, MinScore, MaxScore)
}

// ScoreDomain computes a domain result from integer ratings, one per
// question in definition order.
//
// The domain average is Σ(rating×sub_weight)/Σ(sub_weight), rounded
// to 2 decimals half away from zero. Ratings outside [1,5] fail with
// an *InvalidScoreError; interactive callers re-prompt, batch callers
// skip the row. Sub-weight validity is a Model.Validate concern, not
// re-checked here.
func ScoreDomain(domain Domain, ratings []int) (DomainResult, error) {
	if len(ratings) != len(domain.Questions) {
		return DomainResult{}, fmt.Errorf("domain %q: got %d ratings for %d questions",
			domain.Name, len(ratings), len(domain.Questions))
	}

	var weightedSum, totalWeight float64
	questions := make([]QuestionScore, 0, len(domain.Questions))

	for i, q := range domain.Questions {
		rating := ratings[i]
		if rating < MinScore || rating > MaxScore {
			return DomainResult{}, &InvalidScoreError{Domain: domain.Name, Index: i, Score: rating}
		}
		questions = append(questions, QuestionScore{
			Question:  q.Prompt,
			Score:     rating,
			SubWeight: q.SubWeight,
		})
		weightedSum += float64(rating) * q.SubWeight
		totalWeight += q.SubWeight
	}

	return DomainResult{
		Name:      domain.Name,
		WeightPct: domain.WeightPct,
		Score:     Round2(weightedSum / totalWeight),
		Questions: questions,
	}, nil
}

// Aggregate combines domain results into the two composite scores.
//
// weighted_score  = Σ(domain.score × domain.weight/100)
// pct_score       = Σ((domain.score / 5) × domain.weight)
//
// Each sum is rounded to 2 decimals independently; neither value is
// derived from the other. The precondition that weights sum to 100 is
// checked once at model load (Model.Validate), not here.
func Aggregate(results []DomainResult) Composite {
	var weighted, pct float64
	for _, d := range results {
		weighted += d.Score * d.WeightPct / 100
		pct += (d.Score / float64(MaxScore)) * d.WeightPct
	}
	return Composite{
		WeightedScore: Round2(weighted),
		PctScore:      Round2(pct),
	}
}
