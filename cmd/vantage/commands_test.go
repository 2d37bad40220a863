// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bytes"
	"strings"
	"testing"
)

// execRoot runs the root command with args and captures its output.
// Help and unknown-command handling short-circuit before the
// persistent hooks, so no app wiring happens here.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRoot_HelpListsCommands(t *testing.T) {
	out, err := execRoot(t, "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, name := range []string{
		"assess", "report", "dashboard", "search", "register",
		"accept", "comms", "treatment", "import", "contract", "models",
	} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing command %q", name)
		}
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	out, err := execRoot(t, "frobnicate")
	if err == nil {
		t.Fatalf("expected error for unknown command, got output: %s", out)
	}
}

func TestContract_HelpListsSubcommands(t *testing.T) {
	out, err := execRoot(t, "contract", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, name := range []string{"set", "register", "expiring"} {
		if !strings.Contains(out, name) {
			t.Errorf("contract help missing subcommand %q", name)
		}
	}
}
