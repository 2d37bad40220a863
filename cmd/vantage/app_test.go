// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/cmd/vantage/internal/report"
)

// resetEnv pins every configuration variable to its default so a
// developer's shell cannot leak into a test run.
func resetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_BACKEND", "OLLAMA_URL", "OLLAMA_MODEL", "OLLAMA_TIMEOUT",
		"OPENAI_BASE_URL", "OPENAI_API_KEY",
		"RISK_THRESHOLD_LOW", "RISK_THRESHOLD_MEDIUM",
		"DEFAULT_OUTPUT_FORMAT", "DEFAULT_AUDIENCE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func testApp(t *testing.T) *app {
	t.Helper()
	resetEnv(t)
	a, err := newApp(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(a.close)
	return a
}

func seedVendor(t *testing.T, a *app, orgID, vendorName string, score float64) {
	t.Helper()
	_, err := a.store.Upsert(&record.Record{
		OrgID:               orgID,
		VendorName:          vendorName,
		Service:             "Payroll processing",
		BusinessOwner:       "Finance Director",
		Likelihood:          "medium",
		Impact:              "high",
		RiskBucket:          "high",
		OverallControlScore: score,
	})
	require.NoError(t, err)
}

func TestNewApp_WiresDirectoriesAndStore(t *testing.T) {
	resetEnv(t)
	base := t.TempDir()

	a, err := newApp(base)
	require.NoError(t, err)
	defer a.close()

	require.Equal(t, filepath.Join(base, "data", "vendors.json"), a.cfg.VendorDBPath)
	for _, dir := range []string{"data", "history", "outputs", "logs"} {
		info, statErr := os.Stat(filepath.Join(base, dir))
		require.NoError(t, statErr, dir)
		require.True(t, info.IsDir())
	}
	require.Empty(t, a.store.Orgs())
	require.NoError(t, a.model.Validate())
}

func TestScopedRecords(t *testing.T) {
	a := testApp(t)
	seedVendor(t, a, "acme", "CloudCo", 3.2)
	seedVendor(t, a, "acme", "MailCo", 4.1)
	seedVendor(t, a, "globex", "DataCo", 2.5)

	require.Len(t, a.scopedRecords(report.ScopeAll), 3)
	require.Len(t, a.scopedRecords("acme"), 2)
	require.Empty(t, a.scopedRecords("initech"))
}

func TestSnapshot_SameSecondCollisionRetries(t *testing.T) {
	a := testApp(t)
	seedVendor(t, a, "acme", "CloudCo", 3.2)
	rec, err := a.store.Get("acme", "CloudCo")
	require.NoError(t, err)

	// Two mutations inside one second must both land in history; the
	// second rolls forward to the next second.
	require.NoError(t, a.snapshot(rec))
	require.NoError(t, a.snapshot(rec))

	names, err := a.history.List("acme", "CloudCo")
	require.NoError(t, err)
	require.Len(t, names, 2)
}

func TestExportName(t *testing.T) {
	require.Equal(t, "Acme_Corp", exportName(" Acme Corp "))
	require.Equal(t, "CloudCo", exportName("CloudCo"))
}
