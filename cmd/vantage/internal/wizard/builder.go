// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package wizard turns analyst input into validated draft records.
//
// Builder is the single entry path into the scoring core: the
// interactive terminal form and the spreadsheet row adapter both
// implement it, so every record reaches the store through the same
// typed, validated construction regardless of how the answers
// arrived.
package wizard

import (
	"context"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
)

// Builder produces a validated draft record from an ordered sequence
// of typed answers. Implementations return a record that has already
// passed record.Validate; a Builder never hands back a half-built
// record.
type Builder interface {
	Build(ctx context.Context) (*record.Record, error)
}
