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

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	commsOrg       string
	commsVendor    string
	commsType      string // evidence_request / remediation_followup / internal_update / executive_escalation
	commsContext   string // Extra context folded into the draft
	commsAudience  string
	commsRedaction string
	commsSave      bool
)

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runComms drafts one of the four stakeholder communications for a
// vendor. The draft is printed for review; nothing is sent anywhere.
func runComms(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	msgType, err := report.ParseMessageType(commsType)
	if err != nil {
		return err
	}
	audience, err := report.ParseAudience(commsAudience)
	if err != nil {
		return err
	}
	redaction, err := report.ParseRedaction(commsRedaction)
	if err != nil {
		return err
	}

	rec, err := runtime.store.Get(commsOrg, commsVendor)
	if err != nil {
		return err
	}

	gen := runtime.generator()
	prompt := report.CommsPrompt(rec, msgType, commsContext, audience, redaction)
	text, err := gen.Generate(ctx, runtime.cfg.Model, prompt)
	if err != nil {
		return fmt.Errorf("draft generation: %w", err)
	}

	ux.Title(fmt.Sprintf("Draft %s — %s / %s", msgType, rec.OrgID, rec.VendorName))
	fmt.Println(text)

	if commsSave {
		name := fmt.Sprintf("%s_%s_%s_%s.txt",
			exportName(rec.OrgID), exportName(rec.VendorName),
			msgType, time.Now().Format("2006-01-02"))
		path, werr := runtime.exporter.WriteText(name, text)
		if werr != nil {
			return werr
		}
		ux.Success("Draft saved to %s", path)
	}
	return nil
}
