// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store persists vendor records to a single JSON registry
// file plus an append-only history directory of point-in-time
// snapshots.
//
// The registry layout on disk is org_id → vendor_name → record. Every
// write goes through a backup-then-write cycle: the current file is
// renamed to <file>.backup, then the full registry is rewritten. If a
// later load finds the primary corrupt it falls back to the backup,
// so at most one write is ever at risk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/pkg/logging"
)

// ErrNotFound is returned when a lookup names an org or vendor the
// registry does not hold.
var ErrNotFound = errors.New("vendor record not found")

// StorageError wraps a failed registry operation with the path and
// operation that failed.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Registry is the in-memory mirror of the on-disk structure.
type Registry map[string]map[string]*record.Record

// Store owns the registry file. Safe for concurrent use within one
// process; cross-process access is not coordinated.
//
// # Thread Safety
//
// All exported methods take the internal mutex.
type Store struct {
	path string
	log  *logging.Logger

	mu   sync.Mutex
	data Registry
}

// Open loads (or creates) the registry at path. A missing file is an
// empty registry, not an error. A corrupt primary falls back to the
// .backup file; if both exist and both are unreadable, Open fails —
// proceeding would silently orphan every stored assessment on the
// next write.
func Open(path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Default()
	}
	s := &Store{path: path, log: log, data: Registry{}}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, &s.data); jsonErr != nil {
			log.Warn("registry file corrupt, trying backup",
				"path", path, "error", jsonErr)
			if bErr := s.loadBackup(); bErr != nil {
				return nil, &StorageError{Op: "open", Path: path,
					Err: fmt.Errorf("primary corrupt (%v) and backup unusable: %w", jsonErr, bErr)}
			}
			log.Info("registry recovered from backup", "path", s.backupPath())
		}
	case os.IsNotExist(err):
		log.Info("registry file not found, starting empty", "path", path)
	default:
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}

	if s.data == nil {
		s.data = Registry{}
	}
	return s, nil
}

func (s *Store) backupPath() string { return s.path + ".backup" }

func (s *Store) loadBackup() error {
	data, err := os.ReadFile(s.backupPath())
	if err != nil {
		return err
	}
	s.data = Registry{}
	return json.Unmarshal(data, &s.data)
}

// Get returns the record for (orgID, vendorName), or ErrNotFound.
func (s *Store) Get(orgID, vendorName string) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vendors, ok := s.data[orgID]
	if !ok {
		return nil, fmt.Errorf("org %q: %w", orgID, ErrNotFound)
	}
	rec, ok := vendors[vendorName]
	if !ok {
		return nil, fmt.Errorf("vendor %q in org %q: %w", vendorName, orgID, ErrNotFound)
	}
	return rec, nil
}

// Orgs returns the organization IDs in the registry, sorted.
func (s *Store) Orgs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	orgs := make([]string, 0, len(s.data))
	for org := range s.data {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)
	return orgs
}

// Vendors returns the records for one organization, sorted by vendor
// name. An unknown org returns an empty slice.
func (s *Store) Vendors(orgID string) []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	vendors := s.data[orgID]
	names := make([]string, 0, len(vendors))
	for name := range vendors {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*record.Record, 0, len(names))
	for _, name := range names {
		out = append(out, vendors[name])
	}
	return out
}

// Search returns records whose vendor name contains the query,
// case-insensitively, across all organizations.
func (s *Store) Search(query string) []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	var hits []*record.Record
	for _, org := range s.sortedOrgsLocked() {
		for _, name := range s.sortedVendorsLocked(org) {
			if strings.Contains(strings.ToLower(name), needle) {
				hits = append(hits, s.data[org][name])
			}
		}
	}
	return hits
}

func (s *Store) sortedOrgsLocked() []string {
	orgs := make([]string, 0, len(s.data))
	for org := range s.data {
		orgs = append(orgs, org)
	}
	sort.Strings(orgs)
	return orgs
}

func (s *Store) sortedVendorsLocked(org string) []string {
	names := make([]string, 0, len(s.data[org]))
	for name := range s.data[org] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Upsert validates rec, merges it over any existing record for the
// same (org, vendor), and persists the whole registry with a fresh
// backup. The merged record is returned so the caller sees what was
// actually stored.
func (s *Store) Upsert(rec *record.Record) (*record.Record, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vendors, ok := s.data[rec.OrgID]
	if !ok {
		vendors = map[string]*record.Record{}
		s.data[rec.OrgID] = vendors
	}
	merged := record.Merge(vendors[rec.VendorName], rec)
	vendors[rec.VendorName] = merged

	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	s.log.Debug("record stored",
		"org", rec.OrgID, "vendor", rec.VendorName, "state", merged.State().String())
	return merged, nil
}

// persistLocked writes the registry with backup rotation. Caller
// holds s.mu.
func (s *Store) persistLocked() error {
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.backupPath()); err != nil {
			return &StorageError{Op: "backup", Path: s.path, Err: err}
		}
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: filepath.Dir(s.path), Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
