// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	baseDir string // working directory that anchors data/history/outputs/logs

	runtime *app // wired in PersistentPreRunE, closed in PersistentPostRun

	rootCmd = &cobra.Command{
		Use:   "vantage",
		Short: "A console assistant for third-party risk management",
		Long: `Vantage manages vendor risk assessments end to end: weighted
due-diligence scoring, risk classification, treatment planning,
acceptances, communications, and register exports - with an optional
local language model for narrative generation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(baseDir)
			if err != nil {
				return err
			}
			runtime = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if runtime != nil {
				runtime.close()
			}
		},
	}

	// --- Assessment workflow ---
	assessCmd = &cobra.Command{
		Use:   "assess",
		Short: "Run the due-diligence questionnaire for a vendor",
		RunE:  runAssess, // Defined in cmd_assess.go
	}

	// --- Portfolio reporting ---
	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Generate the portfolio / management report for an org (or ALL)",
		RunE:  runReport, // Defined in cmd_report.go
	}

	dashboardCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Render the portfolio summary in the terminal",
		RunE:  runDashboard, // Defined in cmd_dashboard.go
	}

	// --- Vendor lookup ---
	searchCmd = &cobra.Command{
		Use:   "search [query]",
		Short: "Search vendors by name, risk bucket, or weak domains",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch, // Defined in cmd_search.go
	}

	// --- Registers ---
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Export the risk register (xlsx + txt) for an org or ALL",
		RunE:  runRegister, // Defined in cmd_register.go
	}

	// --- Governance ---
	acceptCmd = &cobra.Command{
		Use:   "accept",
		Short: "Record a risk acceptance and generate the memo",
		RunE:  runAccept, // Defined in cmd_accept.go
	}
	commsCmd = &cobra.Command{
		Use:   "comms",
		Short: "Draft a vendor or stakeholder communication",
		RunE:  runComms, // Defined in cmd_comms.go
	}
	treatmentCmd = &cobra.Command{
		Use:   "treatment",
		Short: "Classify treatments and write the management summary",
		RunE:  runTreatment, // Defined in cmd_treatment.go
	}

	// --- Bulk / contract ---
	importCmd = &cobra.Command{
		Use:   "import <spreadsheet>",
		Short: "Bulk-import vendors from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport, // Defined in cmd_import.go
	}

	contractCmd = &cobra.Command{
		Use:   "contract",
		Short: "Manage vendor contract lifecycle data",
	}
	contractSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Attach or update contract details on a vendor",
		RunE:  runContractSet, // Defined in cmd_contract.go
	}
	contractRegisterCmd = &cobra.Command{
		Use:   "register",
		Short: "Export the contract register workbook",
		RunE:  runContractRegister,
	}
	contractExpiringCmd = &cobra.Command{
		Use:   "expiring",
		Short: "List contracts ending within the lookahead window",
		RunE:  runContractExpiring,
	}

	// --- Model endpoint ---
	modelsCmd = &cobra.Command{
		Use:   "models",
		Short: "List models available on the configured endpoint",
		RunE:  runModels, // Defined in cmd_models.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", "",
		"Directory holding data/, history/, outputs/ and logs/ (default: current directory)")

	rootCmd.AddCommand(assessCmd)
	assessCmd.Flags().StringVar(&assessBy, "by", "", "Analyst identity recorded on the assessment")
	assessCmd.Flags().BoolVar(&assessNarrative, "narrative", false, "Generate an analysis narrative after scoring")
	assessCmd.Flags().BoolVar(&assessWorkbook, "workbook", false, "Export the assessment workbook after scoring")
	assessCmd.Flags().BoolVar(&assessUpdate, "update", false, "Edit an existing vendor's metadata without re-scoring")
	assessCmd.Flags().StringVar(&assessOrg, "org", "", "Org of the record to update (with --update)")
	assessCmd.Flags().StringVar(&assessVendor, "vendor", "", "Vendor to update (with --update)")

	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportOrg, "org", "ALL", "Organisation scope (exact name or ALL)")
	reportCmd.Flags().StringVar(&reportAudience, "audience", "internal", "Audience: internal, exec, client, vendor")
	reportCmd.Flags().StringVar(&reportRedaction, "redaction", "none", "Redaction level: none, partial, full")
	reportCmd.Flags().StringVar(&reportFormat, "format", "excel", "Artifact format: excel, csv, txt")
	reportCmd.Flags().BoolVar(&reportSkipNarrative, "no-narrative", false, "Skip model narrative generation")

	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardOrg, "org", "ALL", "Organisation scope (exact name or ALL)")
	dashboardCmd.Flags().BoolVar(&dashboardWatch, "watch", false, "Re-render when the vendor registry changes")

	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchBucket, "bucket", "", "Filter by risk bucket: low, medium, high")
	searchCmd.Flags().BoolVar(&searchWeak, "weak", false, "List vendors with any control domain scoring 2 or less")
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "List every vendor")

	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerOrg, "org", "ALL", "Organisation scope (exact name or ALL)")

	rootCmd.AddCommand(acceptCmd)
	acceptCmd.Flags().StringVar(&acceptOrg, "org", "", "Organisation (required)")
	acceptCmd.Flags().StringVar(&acceptVendor, "vendor", "", "Vendor name (required)")
	acceptCmd.MarkFlagRequired("org")
	acceptCmd.MarkFlagRequired("vendor")

	rootCmd.AddCommand(commsCmd)
	commsCmd.Flags().StringVar(&commsOrg, "org", "", "Organisation (required)")
	commsCmd.Flags().StringVar(&commsVendor, "vendor", "", "Vendor name (required)")
	commsCmd.Flags().StringVar(&commsType, "type", "evidence_request",
		"Message type: evidence_request, remediation_followup, internal_update, executive_escalation")
	commsCmd.Flags().StringVar(&commsContext, "context", "", "Extra context to fold into the draft")
	commsCmd.Flags().StringVar(&commsAudience, "audience", "vendor", "Audience: internal, exec, client, vendor")
	commsCmd.Flags().StringVar(&commsRedaction, "redaction", "full", "Redaction level: none, partial, full")
	commsCmd.Flags().BoolVar(&commsSave, "save", false, "Save the draft under outputs/")
	commsCmd.MarkFlagRequired("org")
	commsCmd.MarkFlagRequired("vendor")

	rootCmd.AddCommand(treatmentCmd)
	treatmentCmd.Flags().StringVar(&treatmentOrg, "org", "", "Organisation (required)")
	treatmentCmd.Flags().StringVar(&treatmentVendor, "vendor", "", "Limit to one vendor")
	treatmentCmd.MarkFlagRequired("org")

	rootCmd.AddCommand(importCmd)

	rootCmd.AddCommand(contractCmd)
	contractCmd.AddCommand(contractSetCmd)
	contractCmd.AddCommand(contractRegisterCmd)
	contractCmd.AddCommand(contractExpiringCmd)
	contractSetCmd.Flags().StringVar(&contractOrg, "org", "", "Organisation (required)")
	contractSetCmd.Flags().StringVar(&contractVendor, "vendor", "", "Vendor name (required)")
	contractSetCmd.MarkFlagRequired("org")
	contractSetCmd.MarkFlagRequired("vendor")
	contractExpiringCmd.Flags().IntVar(&contractLookahead, "days", 90, "Lookahead window in days")

	rootCmd.AddCommand(modelsCmd)
}
