// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestEventLocation(t *testing.T) {
	tests := []struct {
		venue, city, want string
	}{
		{"Théâtre Outremont", "Montréal", "Théâtre Outremont, Montréal"},
		{"Théâtre Outremont", "", "Théâtre Outremont"},
		{"", "Montréal", "Montréal"},
		{"", "", ""},
	}
	for _, tt := range tests {
		e := &Event{Venue: tt.venue, City: tt.city}
		if got := e.Location(); got != tt.want {
			t.Errorf("Location(%q, %q) = %q, want %q", tt.venue, tt.city, got, tt.want)
		}
	}
}

func TestEventNextOccurrence(t *testing.T) {
	now := mustDate(t, "2025-03-10")

	e := &Event{
		Dates: []string{"2025-03-01", "2025-03-15", "2025-03-20"},
		Times: []string{"19:00", "20:30", "14:00"},
	}

	got, ok := e.NextOccurrence(now)
	if !ok {
		t.Fatal("expected an occurrence")
	}
	want := mustDate(t, "2025-03-15").Add(20*time.Hour + 30*time.Minute)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence = %v, want %v", got, want)
	}
}

func TestEventNextOccurrenceAllPast(t *testing.T) {
	now := mustDate(t, "2025-06-01")
	e := &Event{Dates: []string{"2025-01-05", "2025-02-10"}, Times: []string{"19:00", "19:00"}}

	got, ok := e.NextOccurrence(now)
	if !ok {
		t.Fatal("expected fallback to last past occurrence")
	}
	want := mustDate(t, "2025-02-10").Add(19 * time.Hour)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence = %v, want %v", got, want)
	}
}

func TestEventNextOccurrenceLocalDayBoundary(t *testing.T) {
	e := &Event{
		Dates: []string{"2026-09-11", "2026-09-13"},
		Times: []string{"19:30", "20:00"},
	}

	// 01:00 UTC on the 12th is still the evening of the 11th in UTC-5;
	// tonight's show counts as upcoming.
	west := time.Date(2026, 9, 12, 1, 0, 0, 0, time.UTC).In(time.FixedZone("UTC-5", -5*3600))
	if got, ok := e.NextOccurrence(west); !ok || got.Day() != 11 {
		t.Errorf("NextOccurrence(west) = %v, %v, want the Sep 11 show", got, ok)
	}

	// Morning of the 12th in UTC+10: yesterday's show is over even though
	// it is still the 11th in UTC.
	east := time.Date(2026, 9, 12, 8, 0, 0, 0, time.FixedZone("UTC+10", 10*3600))
	if got, ok := e.NextOccurrence(east); !ok || got.Day() != 13 {
		t.Errorf("NextOccurrence(east) = %v, %v, want the Sep 13 show", got, ok)
	}
}

func TestEventNextOccurrenceNoDates(t *testing.T) {
	e := &Event{Title: "dateless"}
	if _, ok := e.NextOccurrence(time.Now()); ok {
		t.Error("event without dates should report no occurrence")
	}
}

func TestEventOccurrenceOutOfRange(t *testing.T) {
	e := &Event{Dates: []string{"2025-01-01"}, Times: []string{"19:00"}}
	if d, c := e.Occurrence(-1); d != "" || c != "" {
		t.Error("negative index should return empty pair")
	}
	if d, c := e.Occurrence(5); d != "" || c != "" {
		t.Error("out-of-range index should return empty pair")
	}
	if d, c := e.Occurrence(0); d != "2025-01-01" || c != "19:00" {
		t.Errorf("Occurrence(0) = %q, %q", d, c)
	}
}

func TestSortByDate(t *testing.T) {
	now := mustDate(t, "2025-03-01")
	a := &Event{Title: "A", Dates: []string{"2025-03-20"}}
	b := &Event{Title: "B", Dates: []string{"2025-03-05"}}
	c := &Event{Title: "C"} // no dates, sorts last
	d := &Event{Title: "D", Dates: []string{"2025-03-05"}}

	events := []*Event{a, c, d, b}
	SortByDate(events, now)

	want := []string{"B", "D", "A", "C"}
	for i, e := range events {
		if e.Title != want[i] {
			t.Fatalf("order = %v, want %v", titles(events), want)
		}
	}
}

func TestSortByTitleFrenchCollation(t *testing.T) {
	events := []*Event{
		{Title: "Zébrures"},
		{Title: "École du cirque"},
		{Title: "Ballet de nuit"},
		{Title: "à corps perdu"},
	}
	SortByTitle(events)

	want := []string{"à corps perdu", "Ballet de nuit", "École du cirque", "Zébrures"}
	for i, e := range events {
		if e.Title != want[i] {
			t.Fatalf("order = %v, want %v", titles(events), want)
		}
	}
}

func TestDedupe(t *testing.T) {
	events := []*Event{
		{EventID: "1", Title: "Alpha"},
		{EventID: "2", Title: "Beta"},
		{EventID: "1", Title: "Alpha (repeat)"},
		{Title: "Gamma"},
		{Title: "Gamma"},
	}

	got := Dedupe(events)
	if len(got) != 3 {
		t.Fatalf("Dedupe kept %d events, want 3: %v", len(got), titles(got))
	}
	if got[0].EventID != "1" || got[1].EventID != "2" || got[2].Title != "Gamma" {
		t.Errorf("unexpected order after dedupe: %v", titles(got))
	}
}

func titles(events []*Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}
