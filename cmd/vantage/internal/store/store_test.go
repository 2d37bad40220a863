// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vantagegrc/vantage/cmd/vantage/internal/record"
	"github.com/vantagegrc/vantage/pkg/logging"
)

func testRecord(org, vendor string) *record.Record {
	return &record.Record{
		OrgID:         org,
		VendorName:    vendor,
		Service:       "managed hosting",
		BusinessOwner: "M. Osei",
		Likelihood:    "medium",
		Impact:        "medium",
		WeightedScore: 3.2,
		RiskLevel:     "Medium",
	}
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vendors.json")
	s, err := Open(path, logging.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func TestStore_UpsertAndGet(t *testing.T) {
	s, path := openTestStore(t)

	if _, err := s.Upsert(testRecord("acme", "CloudCo")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	reopened, err := Open(path, logging.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.Get("acme", "CloudCo")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got.WeightedScore != 3.2 || got.BusinessOwner != "M. Osei" {
		t.Errorf("record did not survive reopen: %+v", got)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	s, _ := openTestStore(t)

	if _, err := s.Get("nobody", "NoVendor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := s.Upsert(testRecord("acme", "CloudCo")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("acme", "OtherVendor"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown vendor, got %v", err)
	}
}

func TestStore_Upsert_RejectsInvalidRecord(t *testing.T) {
	s, _ := openTestStore(t)

	bad := testRecord("acme", "CloudCo")
	bad.BusinessOwner = ""
	bad.WeightedScore = 0

	_, err := s.Upsert(bad)
	var verr *record.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *record.ValidationError, got %v", err)
	}
}

func TestStore_Upsert_MergesOverExisting(t *testing.T) {
	s, _ := openTestStore(t)

	first := testRecord("acme", "CloudCo")
	first.Created = "2026-02-01T10:00:00Z"
	first.RiskAcceptances = []record.Acceptance{{ID: "ra-1"}}
	if _, err := s.Upsert(first); err != nil {
		t.Fatal(err)
	}

	rescored := testRecord("acme", "CloudCo")
	rescored.WeightedScore = 4.1
	rescored.RiskLevel = "Low"
	merged, err := s.Upsert(rescored)
	if err != nil {
		t.Fatal(err)
	}

	if merged.WeightedScore != 4.1 {
		t.Errorf("re-score did not take: %+v", merged)
	}
	if merged.Created != "2026-02-01T10:00:00Z" || len(merged.RiskAcceptances) != 1 {
		t.Errorf("merge dropped history fields: %+v", merged)
	}
}

func TestStore_BackupRotation(t *testing.T) {
	s, path := openTestStore(t)

	if _, err := s.Upsert(testRecord("acme", "VendorA")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
		t.Fatal("first write should not create a backup (nothing to back up)")
	}

	if _, err := s.Upsert(testRecord("acme", "VendorB")); err != nil {
		t.Fatal(err)
	}
	backup, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("second write should leave a backup: %v", err)
	}
	// Backup holds the pre-write state: VendorA only.
	if !strings.Contains(string(backup), "VendorA") || strings.Contains(string(backup), "VendorB") {
		t.Errorf("backup is not the previous registry state: %s", backup)
	}
}

func TestOpen_RecoversFromBackup(t *testing.T) {
	s, path := openTestStore(t)
	if _, err := s.Upsert(testRecord("acme", "VendorA")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Upsert(testRecord("acme", "VendorB")); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	recovered, err := Open(path, logging.Discard())
	if err != nil {
		t.Fatalf("Open with valid backup should recover: %v", err)
	}
	if _, err := recovered.Get("acme", "VendorA"); err != nil {
		t.Errorf("backup state missing VendorA: %v", err)
	}
}

func TestOpen_FailsWhenPrimaryAndBackupCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendors.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path+".backup", []byte("also not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path, logging.Discard())
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StorageError when both files are corrupt, got %v", err)
	}
}

func TestStore_Search(t *testing.T) {
	s, _ := openTestStore(t)
	for _, v := range []string{"CloudCo", "cloudworks", "DataVault"} {
		if _, err := s.Upsert(testRecord("acme", v)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Upsert(testRecord("globex", "CloudNine")); err != nil {
		t.Fatal(err)
	}

	hits := s.Search("cloud")
	if len(hits) != 3 {
		t.Fatalf("Search(cloud) = %d hits, want 3", len(hits))
	}

	if hits := s.Search("vault"); len(hits) != 1 || hits[0].VendorName != "DataVault" {
		t.Errorf("Search(vault) = %+v", hits)
	}
}

func TestStore_Vendors_SortedByName(t *testing.T) {
	s, _ := openTestStore(t)
	for _, v := range []string{"Zeta", "Alpha", "Mango"} {
		if _, err := s.Upsert(testRecord("acme", v)); err != nil {
			t.Fatal(err)
		}
	}

	got := s.Vendors("acme")
	want := []string{"Alpha", "Mango", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("Vendors() = %d records, want %d", len(got), len(want))
	}
	for i, rec := range got {
		if rec.VendorName != want[i] {
			t.Errorf("Vendors()[%d] = %q, want %q", i, rec.VendorName, want[i])
		}
	}
}
