// Copyright (C) 2026 Vantage GRC (engineering@vantagegrc.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package record

import (
	"testing"
	"time"
)

func TestComputeRenewal(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	renewal, days, err := ComputeRenewal("2027-03-31", 90, now)
	if err != nil {
		t.Fatalf("ComputeRenewal: %v", err)
	}
	if renewal != "2026-12-31" {
		t.Errorf("renewal = %q, want 2026-12-31", renewal)
	}
	if days != 213 {
		t.Errorf("days = %d, want 213", days)
	}
}

func TestComputeRenewal_BadDate(t *testing.T) {
	if _, _, err := ComputeRenewal("31/03/2027", 90, time.Now()); err == nil {
		t.Fatal("non-ISO date must be rejected")
	}
}

func TestClassifyRenewalUrgency(t *testing.T) {
	tests := []struct {
		days int
		want RenewalUrgency
	}{
		{-1, RenewalOverdue},
		{0, RenewalUrgent},
		{29, RenewalUrgent},
		{30, RenewalSoon},
		{89, RenewalSoon},
		{90, RenewalOK},
		{365, RenewalOK},
	}
	for _, tt := range tests {
		if got := ClassifyRenewalUrgency(tt.days); got != tt.want {
			t.Errorf("ClassifyRenewalUrgency(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestExpiringContracts(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	mk := func(vendor, endDate string) *Record {
		r := storableRecord()
		r.VendorName = vendor
		if endDate != "" {
			r.Contract = &Contract{EndDate: endDate, AnnualValue: 1000}
		}
		return r
	}

	records := []*Record{
		mk("SoonCo", "2026-06-15"),
		mk("LaterCo", "2026-08-20"),
		mk("FarCo", "2027-06-01"),
		mk("PastCo", "2026-01-01"),
		mk("NoContractCo", ""),
		mk("BadDateCo", "15-06-2026"),
	}

	expiring := ExpiringContracts(records, 90, now)
	if len(expiring) != 2 {
		t.Fatalf("expiring = %d entries, want 2: %+v", len(expiring), expiring)
	}
	if expiring[0].VendorName != "SoonCo" || expiring[1].VendorName != "LaterCo" {
		t.Errorf("order = %q, %q", expiring[0].VendorName, expiring[1].VendorName)
	}
	if expiring[0].DaysUntilExpiry != 14 {
		t.Errorf("DaysUntilExpiry = %d, want 14", expiring[0].DaysUntilExpiry)
	}
}
