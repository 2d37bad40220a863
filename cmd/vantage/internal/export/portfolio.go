// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

// PortfolioFormat selects the portfolio artifact family.
type PortfolioFormat string

const (
	FormatExcel PortfolioFormat = "excel"
	FormatCSV   PortfolioFormat = "csv"
	FormatText  PortfolioFormat = "txt"
)

// Portfolio writes the portfolio report artifacts for one org scope.
// The narrative always lands in a txt file; format additionally
// selects an xlsx workbook or a BI-feed csv. Returns the primary
// artifact path.
func (e *Exporter) Portfolio(scope string, records []*record.Record,
	summary report.Summary, narrative string, format PortfolioFormat) (string, error) {

	base := fmt.Sprintf("Portfolio_%s_%s", safeName(scope), e.datestamp())

	txtPath, err := e.WriteText(base+".txt", narrative)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatExcel:
		return e.portfolioWorkbook(base, scope, records, summary)
	case FormatCSV:
		return e.portfolioCSV(base, records)
	case FormatText:
		return txtPath, nil
	default:
		return "", fmt.Errorf("unknown portfolio format %q", format)
	}
}

func (e *Exporter) portfolioWorkbook(base, scope string,
	records []*record.Record, summary report.Summary) (string, error) {

	dir, err := e.ensureDir("")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, base+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Portfolio Summary"
	f.SetSheetName("Sheet1", sheet)

	summaryRows := []string{
		fmt.Sprintf("Org: %s", scope),
		fmt.Sprintf("Total vendors: %d", summary.Total),
		fmt.Sprintf("Avg control score: %.2f", summary.AvgControl),
		fmt.Sprintf("High risk: %d", summary.RiskCounts[scoring.BucketHigh]),
		fmt.Sprintf("Medium risk: %d", summary.RiskCounts[scoring.BucketMedium]),
		fmt.Sprintf("Low risk: %d", summary.RiskCounts[scoring.BucketLow]),
		fmt.Sprintf("Weakest domain: %s", summary.WeakestDomain),
	}
	for i, line := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetCellValue(sheet, cell, line); err != nil {
			return "", err
		}
	}

	if _, err := f.NewSheet("Vendor Risk"); err != nil {
		return "", err
	}
	header := []interface{}{"Vendor", "Owner", "OverallScore", "Likelihood", "Impact", "RiskBucket"}
	if err := f.SetSheetRow("Vendor Risk", "A1", &header); err != nil {
		return "", err
	}
	for i, rec := range records {
		row := []interface{}{
			rec.VendorName, rec.BusinessOwner, rec.EffectiveScore(),
			rec.Likelihood, rec.Impact, string(rec.EffectiveBucket()),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Vendor Risk", cell, &row); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save portfolio workbook: %w", err)
	}
	e.log.Info("portfolio workbook written", "path", path)
	return path, nil
}

// portfolioCSV writes the flat BI dataset, one row per vendor.
func (e *Exporter) portfolioCSV(base string, records []*record.Record) (string, error) {
	dir, err := e.ensureDir("bi")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, base+".csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"Org", "Vendor", "OverallControlScore", "Likelihood", "Impact", "RiskBucket"}); err != nil {
		return "", err
	}
	for _, rec := range records {
		row := []string{
			rec.OrgID,
			rec.VendorName,
			strconv.FormatFloat(rec.EffectiveScore(), 'f', 2, 64),
			rec.Likelihood,
			rec.Impact,
			string(rec.EffectiveBucket()),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	e.log.Info("portfolio csv written", "path", path, "rows", len(records))
	return path, nil
}
