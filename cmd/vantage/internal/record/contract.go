// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package record

import (
	"fmt"
	"sort"
	"time"
)

// contractDateLayout is the wire format for contract dates.
const contractDateLayout = "2006-01-02"

// RenewalUrgency bands the renewal countdown for display.
type RenewalUrgency string

const (
	// RenewalOverdue means the renewal decision date has passed.
	RenewalOverdue RenewalUrgency = "overdue"
	// RenewalUrgent means fewer than 30 days remain.
	RenewalUrgent RenewalUrgency = "urgent"
	// RenewalSoon means fewer than 90 days remain.
	RenewalSoon RenewalUrgency = "soon"
	// RenewalOK means 90 days or more remain.
	RenewalOK RenewalUrgency = "ok"
)

// ComputeRenewal derives the renewal decision date (contract end
// minus the notice period) and the day countdown from now. endDate
// uses YYYY-MM-DD.
func ComputeRenewal(endDate string, noticeDays int, now time.Time) (renewalDate string, daysUntil int, err error) {
	end, err := time.Parse(contractDateLayout, endDate)
	if err != nil {
		return "", 0, fmt.Errorf("contract end date %q: expected YYYY-MM-DD: %w", endDate, err)
	}
	renewal := end.AddDate(0, 0, -noticeDays)
	days := int(renewal.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
	return renewal.Format(contractDateLayout), days, nil
}

// ClassifyRenewalUrgency bands a renewal countdown.
func ClassifyRenewalUrgency(daysUntil int) RenewalUrgency {
	switch {
	case daysUntil < 0:
		return RenewalOverdue
	case daysUntil < 30:
		return RenewalUrgent
	case daysUntil < 90:
		return RenewalSoon
	default:
		return RenewalOK
	}
}

// ExpiringContract is one contract ending within the lookahead
// window.
type ExpiringContract struct {
	OrgID           string
	VendorName      string
	EndDate         string
	DaysUntilExpiry int
	AnnualValue     float64
	AutoRenewal     bool
}

// ExpiringContracts scans records for contracts ending within
// daysThreshold of now, soonest first. Records without a contract or
// an end date are skipped; unparseable dates are skipped silently the
// same way, a bad date should not break the whole scan.
func ExpiringContracts(records []*Record, daysThreshold int, now time.Time) []ExpiringContract {
	var expiring []ExpiringContract
	for _, rec := range records {
		if rec.Contract == nil || rec.Contract.EndDate == "" {
			continue
		}
		end, err := time.Parse(contractDateLayout, rec.Contract.EndDate)
		if err != nil {
			continue
		}
		days := int(end.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
		if days < 0 || days > daysThreshold {
			continue
		}
		expiring = append(expiring, ExpiringContract{
			OrgID:           rec.OrgID,
			VendorName:      rec.VendorName,
			EndDate:         rec.Contract.EndDate,
			DaysUntilExpiry: days,
			AnnualValue:     rec.Contract.AnnualValue,
			AutoRenewal:     rec.Contract.AutoRenewal,
		})
	}
	sort.Slice(expiring, func(i, j int) bool {
		return expiring[i].DaysUntilExpiry < expiring[j].DaysUntilExpiry
	})
	return expiring
}
