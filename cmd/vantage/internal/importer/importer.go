// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package importer bulk-loads vendor records from a spreadsheet.
//
// The input is one sheet with a fixed header row; each data row
// becomes a vendor record with per-control scores, an overall control
// score (plain mean, 2 decimals), and a risk bucket classified from
// likelihood × impact. Rows are validated independently: a bad row is
// skipped with a named reason and the rest of the file still lands.
// Partial success is success.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/store"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/wizard"
	"github.com/vantagegrc/vantage/pkg/logging"
)

// requiredColumns is the fixed header contract, in canonical order.
var requiredColumns = []string{
	"org_id", "vendor_name", "service_description", "regulatory_scope",
	"business_owner", "likelihood", "impact",
	"ac_iam", "encrypt", "logging", "bcp", "privacy",
}

// controlDomains maps spreadsheet control columns to the registry's
// control-score domain names.
var controlDomains = []struct {
	column string
	domain string
}{
	{"ac_iam", "Access Control / Identity Management"},
	{"encrypt", "Encryption & Key Management"},
	{"logging", "Monitoring & Logging"},
	{"bcp", "Business Continuity / DR / Resilience"},
	{"privacy", "Privacy & Regulatory Compliance"},
}

// SkippedRow records one row that failed validation and why.
type SkippedRow struct {
	RowNumber  int
	VendorName string
	Reason     string
}

// Result summarizes one import run.
type Result struct {
	Imported []*record.Record
	Skipped  []SkippedRow
}

// Importer loads spreadsheets into the vendor store.
type Importer struct {
	store   *store.Store
	history *store.History
	log     *logging.Logger

	// now stamps assessed_at on imported records; swappable for
	// tests.
	now func() time.Time
}

// New returns an Importer committing to st and snapshotting to hist.
func New(st *store.Store, hist *store.History, log *logging.Logger) *Importer {
	if log == nil {
		log = logging.Default()
	}
	return &Importer{store: st, history: hist, log: log, now: time.Now}
}

// ImportFile reads the first sheet of the workbook at path and
// commits every valid row. A missing required column fails the whole
// file before any row is read; after that, failures are per-row.
func (im *Importer) ImportFile(path string) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s: sheet %s is empty", path, sheets[0])
	}

	colIndex := map[string]int{}
	for i, header := range rows[0] {
		colIndex[strings.TrimSpace(header)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing column in spreadsheet: %s", col)
		}
	}

	result := &Result{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		rec, reason := im.buildRecord(row, colIndex)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedRow{
				RowNumber: rowNum, VendorName: cellAt(row, colIndex["vendor_name"]), Reason: reason,
			})
			im.log.Warn("import row skipped", "row", rowNum, "reason", reason)
			continue
		}

		stored, err := im.store.Upsert(rec)
		if err != nil {
			var verr *record.ValidationError
			if errors.As(err, &verr) {
				result.Skipped = append(result.Skipped, SkippedRow{
					RowNumber: rowNum, VendorName: rec.VendorName,
					Reason: "missing " + strings.Join(verr.Fields, ", "),
				})
				im.log.Warn("import row skipped", "row", rowNum, "fields", verr.Fields)
				continue
			}
			// Storage failures are not row problems; abort the run.
			return result, err
		}

		if im.history != nil {
			ts := im.now()
			_, err := im.history.Snapshot(stored, ts)
			if errors.Is(err, store.ErrSnapshotExists) {
				// Same-second duplicate (re-import of a vendor); the
				// mutation still has to land in history.
				_, err = im.history.Snapshot(stored, ts.Add(time.Second))
			}
			if err != nil {
				return result, err
			}
		}
		result.Imported = append(result.Imported, stored)
	}

	im.log.Info("import complete",
		"imported", len(result.Imported), "skipped", len(result.Skipped))
	return result, nil
}

// buildRecord converts one spreadsheet row through the wizard row
// adapter. It returns (nil, reason) when the row cannot form a
// record, with the reason naming the bad cell.
func (im *Importer) buildRecord(row []string, colIndex map[string]int) (*record.Record, string) {
	controls := map[string]int{}
	for _, cd := range controlDomains {
		raw := strings.TrimSpace(cellAt(row, colIndex[cd.column]))
		score, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Sprintf("column %s: %q is not a whole number", cd.column, raw)
		}
		if score < scoring.MinScore || score > scoring.MaxScore {
			return nil, fmt.Sprintf("column %s: score %d outside 1-5", cd.column, score)
		}
		controls[cd.domain] = score
	}

	rec, err := wizard.Row{
		OrgID:         cellAt(row, colIndex["org_id"]),
		VendorName:    cellAt(row, colIndex["vendor_name"]),
		Service:       cellAt(row, colIndex["service_description"]),
		Regulator:     cellAt(row, colIndex["regulatory_scope"]),
		BusinessOwner: cellAt(row, colIndex["business_owner"]),
		Likelihood:    cellAt(row, colIndex["likelihood"]),
		Impact:        cellAt(row, colIndex["impact"]),
		Controls:      controls,
		AssessedAt:    im.now().Format(time.RFC3339),
		AssessedBy:    "import",
	}.Build(context.Background())
	if err != nil {
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			return nil, "missing " + strings.Join(verr.Fields, ", ")
		}
		return nil, err.Error()
	}
	return rec, ""
}

// cellAt tolerates short rows: excelize trims trailing empty cells.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
