// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package export writes assessment, register, contract, and
// portfolio artifacts to the outputs directory: xlsx workbooks for
// humans, csv for BI pipelines, txt for the audit trail.
//
// File names are deterministic: sanitized org/vendor plus a date
// stamp. Exports never touch the vendor registry; a failed export
// loses the artifact only, never the assessment.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vantagegrc/vantage/pkg/logging"
)

// Exporter writes artifacts under a fixed outputs directory.
type Exporter struct {
	dir string
	log *logging.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New returns an Exporter rooted at dir.
func New(dir string, log *logging.Logger) *Exporter {
	if log == nil {
		log = logging.Default()
	}
	return &Exporter{dir: dir, log: log, now: time.Now}
}

// datestamp is the file-name date component.
func (e *Exporter) datestamp() string {
	return e.now().Format("2006-01-02")
}

// safeName makes an org or vendor name usable inside a file name.
func safeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

func (e *Exporter) ensureDir(sub string) (string, error) {
	dir := e.dir
	if sub != "" {
		dir = filepath.Join(e.dir, sub)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create outputs dir %s: %w", dir, err)
	}
	return dir, nil
}

// WriteText writes narrative text under outputs with the given file
// name. Every narrative export gets a txt regardless of the chosen
// workbook format; the plain file is the audit-trail baseline.
func (e *Exporter) WriteText(name, text string) (string, error) {
	dir, err := e.ensureDir("")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	e.log.Debug("text artifact written", "path", path)
	return path, nil
}
