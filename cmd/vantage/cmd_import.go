// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/importer"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// runImport bulk-loads vendors from a spreadsheet. Bad rows are
// skipped and reported; a missing column fails the whole file before
// anything is written.
func runImport(cmd *cobra.Command, args []string) error {
	im := importer.New(runtime.store, runtime.history, runtime.log)
	res, err := im.ImportFile(args[0])
	if err != nil {
		return err
	}

	ux.Title("Import Results")
	ux.Success("Imported %d vendor(s) from %s", len(res.Imported), args[0])
	for _, rec := range res.Imported {
		fmt.Printf("  %-20s %-28s %s %s %.2f\n",
			rec.OrgID, rec.VendorName,
			ux.RiskBadge(rec.RiskBucket),
			ux.ScoreMark(rec.OverallControlScore), rec.OverallControlScore)
	}
	if len(res.Skipped) > 0 {
		ux.Warn("Skipped %d row(s):", len(res.Skipped))
		for _, s := range res.Skipped {
			name := s.VendorName
			if name == "" {
				name = "(no vendor name)"
			}
			fmt.Printf("  row %d %-28s %s\n", s.RowNumber, name, s.Reason)
		}
	}
	return nil
}
