// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/config"
	"github.com/vantagegrc/vantage/pkg/ux"
)

// runModels lists the models available on the configured endpoint.
// When the endpoint is unreachable the known-good fallback list is
// shown instead, so the operator can still pick a model name.
func runModels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	names, err := runtime.generator().Verify(ctx)
	if err != nil {
		ux.Warn("endpoint unreachable (%v); showing known fallback models", err)
		names = config.FallbackModels
	}

	ux.Title(fmt.Sprintf("Models — %s backend", runtime.cfg.Backend))
	for _, name := range names {
		marker := " "
		if name == runtime.cfg.Model {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	ux.Info("* = configured default (OLLAMA_MODEL)")
	return nil
}
