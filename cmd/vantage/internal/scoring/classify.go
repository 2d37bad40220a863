// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package scoring

// ClassifyRiskBucket maps likelihood × impact ordinals to a bucket:
//
//	product >= 7        → high
//	4 <= product < 7    → medium
//	product < 4         → low
//
// Inputs are case-insensitive; unrecognized values default to medium
// (see Ordinal). The function is pure and total — it never fails.
func ClassifyRiskBucket(likelihood, impact string) Bucket {
	product := Ordinal(likelihood) * Ordinal(impact)
	switch {
	case product >= 7:
		return BucketHigh
	case product >= 4:
		return BucketMedium
	default:
		return BucketLow
	}
}

// ClassifyRiskLevel maps a weighted score to a risk level using the
// given thresholds:
//
//	weighted >= t.Low     → Low
//	weighted >= t.Medium  → Medium
//	otherwise             → High
//
// The scale is inverted relative to ClassifyRiskBucket: a HIGHER
// weighted score signals stronger controls and therefore LOWER risk.
// Threshold ordering (Low > Medium) is enforced by Model.Validate.
func ClassifyRiskLevel(weighted float64, t Thresholds) Level {
	switch {
	case weighted >= t.Low:
		return LevelLow
	case weighted >= t.Medium:
		return LevelMedium
	default:
		return LevelHigh
	}
}
