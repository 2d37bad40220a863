// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/pkg/logging"
)

// snapshotTimeLayout names snapshot files down to the second. Two
// snapshots of the same vendor within one second collide, and the
// collision is surfaced rather than papered over.
const snapshotTimeLayout = "2006-01-02_15-04-05"

// ErrSnapshotExists is returned when a snapshot write would overwrite
// an existing history file. History is write-once.
var ErrSnapshotExists = errors.New("history snapshot already exists")

// History is the append-only snapshot log. One file per
// (org, vendor, timestamp); files are never modified after creation.
type History struct {
	dir string
	log *logging.Logger
}

// NewHistory returns a History rooted at dir, creating it if needed.
func NewHistory(dir string, log *logging.Logger) (*History, error) {
	if log == nil {
		log = logging.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	return &History{dir: dir, log: log}, nil
}

// Snapshot writes rec as a new point-in-time history file stamped
// with ts. It fails with ErrSnapshotExists if the file is already
// present: an existing snapshot is immutable audit evidence.
func (h *History) Snapshot(rec *record.Record, ts time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s_%s.json",
		sanitizeName(rec.OrgID), sanitizeName(rec.VendorName), ts.Format(snapshotTimeLayout))
	path := filepath.Join(h.dir, name)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, ErrSnapshotExists)
	} else if !os.IsNotExist(err) {
		return "", &StorageError{Op: "stat", Path: path, Err: err}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", &StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}

	h.log.Debug("snapshot written", "path", path)
	return path, nil
}

// List returns the snapshot file names for one vendor, oldest first.
// The timestamp layout sorts lexicographically, so a name sort is a
// time sort.
func (h *History) List(orgID, vendorName string) ([]string, error) {
	prefix := fmt.Sprintf("%s_%s_", sanitizeName(orgID), sanitizeName(vendorName))

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return nil, &StorageError{Op: "readdir", Path: h.dir, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) &&
			strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one snapshot back by file name.
func (h *History) Load(name string) (*record.Record, error) {
	path := filepath.Join(h.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &StorageError{Op: "decode", Path: path, Err: err}
	}
	return &rec, nil
}

// sanitizeName makes an org or vendor name safe as a file name
// component. Anything outside [A-Za-z0-9._-] becomes '-'.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}
