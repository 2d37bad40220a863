// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
)

// AssessmentWorkbook writes the single-vendor assessment workbook:
// an Assessment sheet with identity, score summary, and per-domain
// breakdown (including each domain's contribution to the weighted
// score), plus an Open Actions sheet. Returns the workbook path.
func (e *Exporter) AssessmentWorkbook(rec *record.Record) (string, error) {
	dir, err := e.ensureDir("")
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s_%s_assessment.xlsx",
		safeName(rec.OrgID), safeName(rec.VendorName), e.datestamp())
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assessment"
	f.SetSheetName("Sheet1", sheet)

	headerRows := [][]interface{}{
		{"Org", rec.OrgID},
		{"Vendor", rec.VendorName},
		{"Owner", rec.BusinessOwner},
		{"Service", rec.Service},
		{"Likelihood", rec.Likelihood},
		{"Impact", rec.Impact},
		{"Weighted Score", rec.WeightedScore},
		{"Composite %", rec.CompositePctScore},
		{"Risk Level", rec.RiskLevel},
	}
	for i, row := range headerRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("assessment sheet row %d: %w", i+1, err)
		}
	}

	rowIdx := len(headerRows) + 2
	breakdownHeader := []interface{}{"Domain", "Weight %", "Score", "Contribution"}
	cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
	if err := f.SetSheetRow(sheet, cell, &breakdownHeader); err != nil {
		return "", err
	}
	for _, d := range rec.Domains {
		rowIdx++
		row := []interface{}{d.Name, d.WeightPct, d.Score, d.Contribution()}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet("Open Actions"); err != nil {
		return "", err
	}
	actionsHeader := []interface{}{"Owner Type", "Action", "Urgency", "Status"}
	if err := f.SetSheetRow("Open Actions", "A1", &actionsHeader); err != nil {
		return "", err
	}
	for i, a := range rec.OpenActions {
		row := []interface{}{a.OwnerType, a.Action, a.Urgency, a.Status}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Open Actions", cell, &row); err != nil {
			return "", err
		}
	}

	if len(rec.Approvals) > 0 {
		if _, err := f.NewSheet("Approvals"); err != nil {
			return "", err
		}
		approvalHeader := []interface{}{"Reviewer", "Role", "Decision", "Notes"}
		if err := f.SetSheetRow("Approvals", "A1", &approvalHeader); err != nil {
			return "", err
		}
		for i, a := range rec.Approvals {
			row := []interface{}{a.Reviewer, a.Role, a.Decision, a.Notes}
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			if err := f.SetSheetRow("Approvals", cell, &row); err != nil {
				return "", err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save assessment workbook: %w", err)
	}
	e.log.Info("assessment workbook written", "path", path)
	return path, nil
}
