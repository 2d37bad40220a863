// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	contractOrg       string
	contractVendor    string
	contractLookahead int // Expiring-contract window in days
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runContractSet attaches or updates contract lifecycle fields on a
// vendor record through an interactive form, then derives the
// renewal decision date from the end date and notice period.
func runContractSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rec, err := runtime.store.Get(contractOrg, contractVendor)
	if err != nil {
		return err
	}

	contract := record.Contract{}
	if rec.Contract != nil {
		contract = *rec.Contract
	}

	notice := strconv.Itoa(contract.NoticePeriodDays)
	if contract.NoticePeriodDays == 0 {
		notice = "90"
	}
	value := ""
	if contract.AnnualValue > 0 {
		value = strconv.FormatFloat(contract.AnnualValue, 'f', 2, 64)
	}

	ux.Title(fmt.Sprintf("Contract Details — %s / %s", rec.OrgID, rec.VendorName))
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(&contract.StartDate),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(&contract.EndDate),
			huh.NewInput().Title("Notice period (days)").Value(&notice),
			huh.NewConfirm().Title("Auto-renewal?").Value(&contract.AutoRenewal),
		),
		huh.NewGroup(
			huh.NewInput().Title("Annual contract value").Value(&value),
			huh.NewInput().Title("Currency").Value(&contract.Currency),
			huh.NewInput().Title("SLA uptime commitment").Value(&contract.SLAUptime),
			huh.NewInput().Title("SLA incident response time").Value(&contract.SLAResponseTime),
			huh.NewInput().Title("Contract owner").Value(&contract.Owner),
			huh.NewInput().Title("Payment terms").Value(&contract.PaymentTerms),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("contract form: %w", err)
	}

	noticeDays, err := strconv.Atoi(notice)
	if err != nil || noticeDays < 0 {
		return fmt.Errorf("notice period %q is not a non-negative whole number", notice)
	}
	contract.NoticePeriodDays = noticeDays
	if value != "" {
		annual, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("annual value %q is not a number", value)
		}
		contract.AnnualValue = annual
	}

	now := time.Now()
	if contract.EndDate != "" {
		renewalDate, daysUntil, err := record.ComputeRenewal(contract.EndDate, noticeDays, now)
		if err != nil {
			return err
		}
		contract.RenewalDate = renewalDate
		contract.DaysUntilRenewal = daysUntil
		urgency := record.ClassifyRenewalUrgency(daysUntil)
		fmt.Printf("  Renewal decision date: %s (%d days, %s)\n", renewalDate, daysUntil, urgency)
	}

	next := *rec
	next.Contract = &contract
	saved, err := runtime.store.Upsert(&next)
	if err != nil {
		return err
	}
	if err := runtime.snapshot(saved); err != nil {
		ux.Warn("history snapshot failed: %v", err)
	}
	ux.Success("Contract details saved for %s / %s", saved.OrgID, saved.VendorName)
	return nil
}

// runContractRegister exports the contract register workbook across
// every org. Vendors without contract data are omitted.
func runContractRegister(cmd *cobra.Command, args []string) error {
	records := runtime.scopedRecords(report.ScopeAll)
	path, err := runtime.exporter.ContractRegister(records)
	if err != nil {
		return err
	}
	ux.Success("Contract register written to %s", path)
	return nil
}

// runContractExpiring lists contracts ending within the lookahead
// window, soonest first.
func runContractExpiring(cmd *cobra.Command, args []string) error {
	records := runtime.scopedRecords(report.ScopeAll)
	expiring := record.ExpiringContracts(records, contractLookahead, time.Now())
	if len(expiring) == 0 {
		ux.Info("No contracts expire within %d days.", contractLookahead)
		return nil
	}

	ux.Title(fmt.Sprintf("Contracts Expiring Within %d Days", contractLookahead))
	for _, c := range expiring {
		renew := "no auto-renewal"
		if c.AutoRenewal {
			renew = "auto-renews"
		}
		fmt.Printf("  %-20s %-28s ends %s in %3d days (%s", c.OrgID, c.VendorName, c.EndDate, c.DaysUntilExpiry, renew)
		if c.AnnualValue > 0 {
			fmt.Printf(", %.2f/yr", c.AnnualValue)
		}
		fmt.Println(")")
	}
	return nil
}
