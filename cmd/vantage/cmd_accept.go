// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	acceptOrg    string
	acceptVendor string
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runAccept captures a risk acceptance for one vendor, drafts the
// memo through the model, and appends the entry to the record's
// acceptance trail. The acceptance is committed even when memo
// generation fails; the memo is advisory text, the entry is the
// governance artifact.
func runAccept(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rec, err := runtime.store.Get(acceptOrg, acceptVendor)
	if err != nil {
		return err
	}

	ux.Title(fmt.Sprintf("Risk Acceptance — %s / %s", rec.OrgID, rec.VendorName))

	var in report.AcceptanceInput
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Risk being accepted").Value(&in.RiskDesc),
			huh.NewText().Title("Business justification").Value(&in.Justification),
			huh.NewInput().Title("Accepting owner (name, role)").Value(&in.Owner),
			huh.NewInput().Title("Acceptance expiry (YYYY-MM-DD)").Value(&in.Expiry),
			huh.NewText().Title("Mitigation plan during acceptance period (optional)").
				Value(&in.MitigationPlan),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("acceptance form: %w", err)
	}
	if in.RiskDesc == "" || in.Justification == "" || in.Owner == "" {
		return fmt.Errorf("risk description, justification, and owner are required")
	}

	memo := ""
	gen := runtime.generator()
	text, genErr := gen.Generate(ctx, runtime.cfg.Model, report.AcceptancePrompt(rec, in))
	if genErr != nil {
		ux.Warn("memo generation failed (acceptance will still be recorded): %v", genErr)
	} else {
		memo = text
	}

	now := time.Now()
	entry := record.Acceptance{
		ID:             uuid.NewString(),
		RiskDesc:       in.RiskDesc,
		Justification:  in.Justification,
		Owner:          in.Owner,
		Expiry:         in.Expiry,
		MitigationPlan: in.MitigationPlan,
		GeneratedAt:    now.Format(time.RFC3339),
		MemoText:       memo,
	}

	next := *rec
	next.RiskAcceptances = append(append([]record.Acceptance{}, rec.RiskAcceptances...), entry)
	saved, err := runtime.store.Upsert(&next)
	if err != nil {
		return err
	}
	if err := runtime.snapshot(saved); err != nil {
		ux.Warn("history snapshot failed: %v", err)
	}
	ux.Success("Risk acceptance %s recorded for %s / %s", entry.ID, saved.OrgID, saved.VendorName)

	if memo != "" {
		fmt.Println()
		fmt.Println(memo)
		name := fmt.Sprintf("%s_%s_%s_acceptance_memo.txt",
			exportName(saved.OrgID), exportName(saved.VendorName),
			now.Format("2006-01-02"))
		if path, werr := runtime.exporter.WriteText(name, memo); werr != nil {
			ux.Warn("could not save memo: %v", werr)
		} else {
			ux.Info("Memo saved to %s", path)
		}
	}
	return nil
}
