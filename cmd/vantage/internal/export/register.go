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
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
)

// RiskRegister writes the risk register workbook for the scoped
// records: a Risk Register sheet (one row per vendor) and an Open
// Actions sheet (one row per tracked action). A companion txt file
// carries the same rows for grep-ability. Returns the xlsx path.
func (e *Exporter) RiskRegister(scope string, records []*record.Record) (string, error) {
	dir, err := e.ensureDir("")
	if err != nil {
		return "", err
	}
	base := fmt.Sprintf("risk_register_%s_%s", safeName(scope), e.datestamp())
	path := filepath.Join(dir, base+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Risk Register"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"Org", "Vendor", "Business Owner", "Overall Control Score (1-5)",
		"Likelihood (L/M/H)", "Impact (L/M/H)", "Risk Bucket",
		"Regulatory Scope", "Notes / Follow-up",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	var txt strings.Builder
	fmt.Fprintf(&txt, "RISK REGISTER — scope: %s — %s\n\n", scope, e.datestamp())

	for i, rec := range records {
		bucket := rec.EffectiveBucket()
		row := []interface{}{
			rec.OrgID, rec.VendorName, rec.BusinessOwner, rec.EffectiveScore(),
			rec.Likelihood, rec.Impact, string(bucket),
			rec.Regulator, "See 'Open Actions' tab",
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
		fmt.Fprintf(&txt, "%s / %s  owner=%s  score=%.2f  bucket=%s\n",
			rec.OrgID, rec.VendorName, rec.BusinessOwner, rec.EffectiveScore(), bucket)
	}

	if _, err := f.NewSheet("Open Actions"); err != nil {
		return "", err
	}
	actionsHeader := []interface{}{"Org", "Vendor", "OwnerType", "Urgency", "Action", "Status"}
	if err := f.SetSheetRow("Open Actions", "A1", &actionsHeader); err != nil {
		return "", err
	}
	actionRow := 2
	for _, rec := range records {
		for _, a := range rec.OpenActions {
			status := a.Status
			if status == "" {
				status = "open"
			}
			row := []interface{}{rec.OrgID, rec.VendorName, a.OwnerType, a.Urgency, a.Action, status}
			cell, _ := excelize.CoordinatesToCellName(1, actionRow)
			if err := f.SetSheetRow("Open Actions", cell, &row); err != nil {
				return "", err
			}
			actionRow++
			fmt.Fprintf(&txt, "  action [%s] %s: %s (%s)\n", a.Urgency, a.OwnerType, a.Action, status)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save risk register: %w", err)
	}
	if _, err := e.WriteText(base+".txt", txt.String()); err != nil {
		return "", err
	}
	e.log.Info("risk register written", "path", path, "vendors", len(records))
	return path, nil
}

// ContractRegister writes the contract lifecycle workbook over every
// record that carries a contract sub-record.
func (e *Exporter) ContractRegister(records []*record.Record) (string, error) {
	dir, err := e.ensureDir("")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("contract_register_%s.xlsx", e.datestamp()))

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contract Register"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"Organization", "Vendor", "Start Date", "End Date", "Renewal Date",
		"Days Until Renewal", "Auto-Renewal", "Annual Value", "Currency",
		"Notice Period (Days)", "SLA Uptime", "SLA Response Time",
		"Contract Owner", "Payment Terms",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	rowIdx := 2
	for _, rec := range records {
		c := rec.Contract
		if c == nil {
			continue
		}
		auto := "No"
		if c.AutoRenewal {
			auto = "Yes"
		}
		row := []interface{}{
			rec.OrgID, rec.VendorName, c.StartDate, c.EndDate, c.RenewalDate,
			c.DaysUntilRenewal, auto, c.AnnualValue, c.Currency,
			c.NoticePeriodDays, c.SLAUptime, c.SLAResponseTime,
			c.Owner, c.PaymentTerms,
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
		rowIdx++
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save contract register: %w", err)
	}
	e.log.Info("contract register written", "path", path, "contracts", rowIdx-2)
	return path, nil
}
