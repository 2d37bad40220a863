// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/pkg/ux"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var registerOrg string // Org scope, or ALL

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

// runRegister writes the risk register workbook plus its plain-text
// companion for the selected scope.
func runRegister(cmd *cobra.Command, args []string) error {
	records := runtime.scopedRecords(registerOrg)
	if len(records) == 0 {
		ux.Warn("No vendors found for scope %q.", registerOrg)
		return nil
	}

	path, err := runtime.exporter.RiskRegister(registerOrg, records)
	if err != nil {
		return err
	}
	ux.Success("Risk register written to %s (%d vendors)", path, len(records))
	return nil
}
