// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/scoring"
)

func seedScoredVendor(t *testing.T, a *app, vendorName, level string, weighted float64) {
	t.Helper()
	_, err := a.store.Upsert(&record.Record{
		OrgID:          "acme",
		VendorName:     vendorName,
		Service:        "Payment gateway",
		BusinessOwner:  "CFO",
		Likelihood:     "medium",
		Impact:         "high",
		AssessmentDate: "2026-05-01",
		WeightedScore:  weighted,
		RiskLevel:      level,
	})
	require.NoError(t, err)
}

func TestRunTreatment_PersistsClassification(t *testing.T) {
	a := testApp(t)
	seedScoredVendor(t, a, "CloudCo", "High", 2.1)
	seedScoredVendor(t, a, "MailCo", "Low", 4.4)

	runtime = a
	treatmentOrg = "acme"
	treatmentVendor = ""
	require.NoError(t, runTreatment(treatmentCmd, nil))

	cloud, err := a.store.Get("acme", "CloudCo")
	require.NoError(t, err)
	require.Equal(t, string(scoring.TreatMitigate), cloud.TreatmentAction)
	require.NotEmpty(t, cloud.TreatmentRationale)
	require.Equal(t, record.StateTreated, cloud.State())

	mail, err := a.store.Get("acme", "MailCo")
	require.NoError(t, err)
	require.Equal(t, string(scoring.TreatAccept), mail.TreatmentAction)

	// Classification is a mutation; each treated vendor gets a
	// history snapshot.
	for _, vendor := range []string{"CloudCo", "MailCo"} {
		names, err := a.history.List("acme", vendor)
		require.NoError(t, err)
		require.Len(t, names, 1, "expected a snapshot for %s", vendor)
	}
}

func TestRunTreatment_VendorFilter(t *testing.T) {
	a := testApp(t)
	seedScoredVendor(t, a, "CloudCo", "High", 2.1)
	seedScoredVendor(t, a, "MailCo", "Low", 4.4)

	runtime = a
	treatmentOrg = "acme"
	treatmentVendor = "CloudCo"
	require.NoError(t, runTreatment(treatmentCmd, nil))

	mail, err := a.store.Get("acme", "MailCo")
	require.NoError(t, err)
	require.Empty(t, mail.TreatmentAction, "filtered vendor must stay untreated")
}

func TestRunTreatment_NoScoredVendors(t *testing.T) {
	a := testApp(t)
	seedVendor(t, a, "acme", "DraftCo", 3.0) // bucket only, no risk level

	runtime = a
	treatmentOrg = "acme"
	treatmentVendor = ""
	require.NoError(t, runTreatment(treatmentCmd, nil))
}
