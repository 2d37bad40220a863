// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides styled console output for the Vantage CLI.
//
// Styles are built on lipgloss and degrade gracefully on terminals
// without color support. Risk-facing helpers (RiskBadge, ScoreMark)
// apply a consistent traffic-light palette across every command.
package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	ColorIndigo  = lipgloss.Color("63")
	ColorSlate   = lipgloss.Color("245")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	Box lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorIndigo),
	Subtitle: lipgloss.NewStyle().Foreground(ColorIndigo),
	Bold:     lipgloss.NewStyle().Bold(true),
	Muted:    lipgloss.NewStyle().Foreground(ColorSlate),
	Success:  lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:  lipgloss.NewStyle().Foreground(ColorWarning),
	Error:    lipgloss.NewStyle().Foreground(ColorError),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorIndigo).
		Padding(0, 1),
}

// Title prints a styled section title.
func Title(text string) {
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a success line with a check mark.
func Success(format string, args ...any) {
	fmt.Println(Styles.Success.Render("✓ ") + fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	fmt.Println(Styles.Warning.Render("⚠ ") + fmt.Sprintf(format, args...))
}

// Fail prints an error line.
func Fail(format string, args ...any) {
	fmt.Println(Styles.Error.Render("✗ ") + fmt.Sprintf(format, args...))
}

// Info prints a muted informational line.
func Info(format string, args ...any) {
	fmt.Println(Styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// RiskBadge renders a risk level or risk bucket with traffic-light
// coloring. It accepts either polarity ("High"/"high") since both
// classifications share the same three names.
func RiskBadge(level string) string {
	label := strings.ToUpper(strings.TrimSpace(level))
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return Styles.Error.Render(label)
	case "medium":
		return Styles.Warning.Render(label)
	case "low":
		return Styles.Success.Render(label)
	default:
		return Styles.Muted.Render(label)
	}
}

// ScoreMark returns a one-rune indicator for a 1-5 control score:
// strong (>=4), moderate (>=3), weak otherwise.
func ScoreMark(score float64) string {
	switch {
	case score >= 4:
		return Styles.Success.Render("✓")
	case score >= 3:
		return Styles.Warning.Render("⚠")
	default:
		return Styles.Error.Render("✗")
	}
}

// Rule prints a horizontal divider of the given width.
func Rule(width int) {
	if width <= 0 {
		width = 60
	}
	fmt.Println(Styles.Muted.Render(strings.Repeat("─", width)))
}
