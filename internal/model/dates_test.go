// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-08-30")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.August || d.Day() != 30 {
		t.Errorf("ParseDate = %v", d)
	}

	if _, err := ParseDate("30/08/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("expected error for empty date")
	}
}

func TestParseOccurrence(t *testing.T) {
	got, err := ParseOccurrence("2025-08-30", "19:30")
	if err != nil {
		t.Fatalf("ParseOccurrence: %v", err)
	}
	if got.Hour() != 19 || got.Minute() != 30 {
		t.Errorf("ParseOccurrence = %v", got)
	}

	// Missing or malformed clock falls back to midnight instead of failing.
	midnight, err := ParseOccurrence("2025-08-30", "")
	if err != nil {
		t.Fatalf("ParseOccurrence empty clock: %v", err)
	}
	if midnight.Hour() != 0 {
		t.Errorf("empty clock should be midnight, got %v", midnight)
	}
	if _, err := ParseOccurrence("2025-08-30", "7pm"); err != nil {
		t.Errorf("malformed clock should not fail: %v", err)
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := FormatDate("2025-08-30", now); got != "Sat, Aug 30" {
		t.Errorf("same-year format = %q", got)
	}
	if got := FormatDate("2026-01-15", now); got != "Thu, Jan 15 2026" {
		t.Errorf("cross-year format = %q", got)
	}
	// Unparseable input is passed through untouched.
	if got := FormatDate("soon", now); got != "soon" {
		t.Errorf("passthrough = %q", got)
	}
}

func TestFormatOccurrence(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatOccurrence("2025-08-30", "19:30", now); got != "Sat, Aug 30 at 19:30" {
		t.Errorf("FormatOccurrence = %q", got)
	}
	if got := FormatOccurrence("2025-08-30", "", now); got != "Sat, Aug 30" {
		t.Errorf("FormatOccurrence without clock = %q", got)
	}
}

func TestFormatTargetDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatTargetDate("2025-08-30", now); got != "for Sat, Aug 30" {
		t.Errorf("FormatTargetDate = %q", got)
	}
	if got := FormatTargetDate("", now); got != "" {
		t.Errorf("empty target date should render empty, got %q", got)
	}
}
