// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package scoring implements the weighted risk-scoring and
// classification engine.
//
// The engine is a chain of pure functions:
//
//	question ratings ──ScoreDomain──► DomainResult
//	DomainResults    ──Aggregate───► Composite (1-5 and 0-100 scales)
//	Composite        ──ClassifyRiskLevel──► Low / Medium / High
//	likelihood×impact ──ClassifyRiskBucket──► low / medium / high
//	risk level       ──ClassifyTreatment──► Mitigate / Transfer / Accept
//
// Two deliberately independent classifications coexist:
//
//   - Risk Level is derived from the weighted control score and has
//     INVERTED polarity: a higher score means stronger controls and
//     therefore LOWER risk.
//   - Risk Bucket is derived from likelihood × impact ordinals and has
//     the usual polarity: higher product, higher risk.
//
// A vendor record may carry both, and they are not required to agree.
// Downstream reports read each signal independently; nothing in this
// package (or anywhere else) reconciles them.
//
// All rounding in this package is to 2 decimal places, half away from
// zero (math.Round semantics). Tests pin this down.
package scoring
