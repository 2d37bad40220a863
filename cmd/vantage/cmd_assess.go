// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/wizard"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	assessBy        string // Analyst identity stamped on the record
	assessNarrative bool   // Generate the model narrative after scoring
	assessWorkbook  bool   // Export the assessment workbook after scoring
	assessUpdate    bool   // Metadata-only edit instead of a re-score
	assessOrg       string // Org of the record to update
	assessVendor    string // Vendor of the record to update
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runAssess walks the interactive questionnaire, commits the scored
// record, and snapshots it. Narrative and workbook generation run
// after the commit: a model or export failure never loses the
// assessment.
func runAssess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	by := assessBy
	if by == "" {
		by = os.Getenv("USER")
	}
	if by == "" {
		by = "analyst"
	}

	if assessUpdate {
		return runAssessUpdate(ctx)
	}

	ux.Title("Vendor Due-Diligence Assessment")
	builder := wizard.NewForm(runtime.model, by)
	rec, err := builder.Build(ctx)
	if err != nil {
		return err
	}

	saved, err := runtime.store.Upsert(rec)
	if err != nil {
		return err
	}

	saved, err = captureApprovals(ctx, saved)
	if err != nil {
		return err
	}

	// Snapshot after approvals so the sign-off entries are part of
	// the history entry for this assessment.
	if err := runtime.snapshot(saved); err != nil {
		// The registry write already succeeded; a failed snapshot is
		// an audit gap, not a lost assessment.
		ux.Warn("history snapshot failed: %v", err)
		runtime.log.Warn("history snapshot failed",
			"org", saved.OrgID, "vendor", saved.VendorName, "error", err)
	}

	ux.Success("Assessment saved: %s / %s", saved.OrgID, saved.VendorName)
	ux.Rule(60)
	fmt.Printf("  Weighted score:  %s %.2f / 5\n", ux.ScoreMark(saved.WeightedScore), saved.WeightedScore)
	fmt.Printf("  Composite:       %.2f%%\n", saved.CompositePctScore)
	fmt.Printf("  Risk level:      %s\n", ux.RiskBadge(saved.RiskLevel))
	for _, d := range saved.Domains {
		fmt.Printf("    %-40s %.2f (weight %.0f%%)\n", d.Name, d.Score, d.WeightPct)
	}
	ux.Rule(60)

	if assessNarrative {
		gen := runtime.generator()
		prompt := report.AssessmentPrompt(saved)
		text, genErr := gen.Generate(ctx, runtime.cfg.Model, prompt)
		if genErr != nil {
			ux.Warn("narrative generation failed (record is saved): %v", genErr)
		} else {
			fmt.Println()
			fmt.Println(text)
			name := fmt.Sprintf("%s_%s_%s_analysis.txt",
				exportName(saved.OrgID), exportName(saved.VendorName),
				time.Now().Format("2006-01-02"))
			if path, werr := runtime.exporter.WriteText(name, text); werr != nil {
				ux.Warn("could not save narrative: %v", werr)
			} else {
				ux.Info("Narrative saved to %s", path)
			}
		}
	}

	if assessWorkbook {
		path, err := runtime.exporter.AssessmentWorkbook(saved)
		if err != nil {
			ux.Warn("workbook export failed (record is saved): %v", err)
		} else {
			ux.Success("Workbook written to %s", path)
		}
	}

	return nil
}

// runAssessUpdate edits a record's identity metadata without
// re-scoring. Scores, classifications, and audit history all carry
// over untouched.
func runAssessUpdate(ctx context.Context) error {
	if assessOrg == "" || assessVendor == "" {
		return fmt.Errorf("--update needs --org and --vendor")
	}
	rec, err := runtime.store.Get(assessOrg, assessVendor)
	if err != nil {
		return err
	}

	next := *rec
	ux.Title(fmt.Sprintf("Update Metadata — %s / %s", rec.OrgID, rec.VendorName))
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Service / data handled").Value(&next.Service),
			huh.NewInput().Title("Business owner").Value(&next.BusinessOwner),
			huh.NewInput().Title("Regulatory scope (optional)").Value(&next.Regulator),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("metadata form: %w", err)
	}

	saved, err := runtime.store.Upsert(&next)
	if err != nil {
		return err
	}
	if err := runtime.snapshot(saved); err != nil {
		ux.Warn("history snapshot failed: %v", err)
	}
	ux.Success("Metadata updated for %s / %s", saved.OrgID, saved.VendorName)
	return nil
}

// captureApprovals optionally appends sign-off entries to a freshly
// saved assessment. Each approval is one reviewer's decision; the
// trail is append-only.
func captureApprovals(ctx context.Context, rec *record.Record) (*record.Record, error) {
	saved := rec
	for {
		var add bool
		confirm := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Record an approval / sign-off?").Value(&add),
		))
		if err := confirm.RunWithContext(ctx); err != nil {
			return nil, fmt.Errorf("approval prompt: %w", err)
		}
		if !add {
			return saved, nil
		}

		var approval record.Approval
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Reviewer name").Value(&approval.Reviewer),
			huh.NewInput().Title("Role").Value(&approval.Role),
			huh.NewSelect[string]().Title("Decision").Options(
				huh.NewOption("Approved", "approved"),
				huh.NewOption("Approved with conditions", "approved_with_conditions"),
				huh.NewOption("Rejected", "rejected"),
			).Value(&approval.Decision),
			huh.NewText().Title("Notes (optional)").Value(&approval.Notes),
		))
		if err := form.RunWithContext(ctx); err != nil {
			return nil, fmt.Errorf("approval form: %w", err)
		}

		next := *saved
		next.Approvals = append(append([]record.Approval{}, saved.Approvals...), approval)
		updated, err := runtime.store.Upsert(&next)
		if err != nil {
			return nil, err
		}
		saved = updated
		ux.Success("Approval by %s recorded", approval.Reviewer)
	}
}
