// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the event search transcript.
package model

import (
	"fmt"
	"time"
)

// Backend wire formats for dates and clock times.
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate parses a backend YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// ParseOccurrence parses a date with an optional HH:MM clock time.
func ParseOccurrence(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	if clock == "" {
		return d, nil
	}
	c, err := time.Parse(clockLayout, clock)
	if err != nil {
		// A malformed clock time should not hide the event.
		return d, nil
	}
	return d.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute), nil
}

// FormatDate renders a backend date for display, e.g. "Sat, Aug 30".
// The year is appended only when it differs from the current one.
func FormatDate(date string, now time.Time) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	if t.Year() == now.Year() {
		return t.Format("Mon, Jan 2")
	}
	return t.Format("Mon, Jan 2 2006")
}

// FormatOccurrence renders a date/time pair, e.g. "Sat, Aug 30 at 19:30".
func FormatOccurrence(date, clock string, now time.Time) string {
	s := FormatDate(date, now)
	if clock == "" {
		return s
	}
	return s + " at " + clock
}

// FormatTargetDate renders the backend's resolved target date for the status
// line, e.g. "for Sat, Aug 30". Empty input yields an empty string.
func FormatTargetDate(targetDate string, now time.Time) string {
	if targetDate == "" {
		return ""
	}
	return "for " + FormatDate(targetDate, now)
}
