// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the event search transcript.
package model

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// =============================================================================
// EVENT TYPE
// =============================================================================

// Event is one cultural event as returned by the backend. The backend groups
// occurrences of the same show under a single event, so Dates and Times are
// parallel slices: Dates[i] happens at Times[i].
type Event struct {
	EventID     string   `json:"event_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Dates       []string `json:"date"` // YYYY-MM-DD, sorted ascending
	Times       []string `json:"time"` // HH:MM, parallel to Dates
	Venue       string   `json:"venue"`
	City        string   `json:"city"`
	Discipline  string   `json:"discipline"`
	Price       string   `json:"price"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url"`
	Score       float64  `json:"score"`
}

// Location returns "venue, city" with missing parts elided.
func (e *Event) Location() string {
	switch {
	case e.Venue != "" && e.City != "":
		return e.Venue + ", " + e.City
	case e.Venue != "":
		return e.Venue
	default:
		return e.City
	}
}

// OccurrenceCount returns the number of scheduled occurrences.
func (e *Event) OccurrenceCount() int {
	return len(e.Dates)
}

// Occurrence returns the i-th date/time pair. The time is empty when the
// backend had none for that date.
func (e *Event) Occurrence(i int) (date, clock string) {
	if i < 0 || i >= len(e.Dates) {
		return "", ""
	}
	date = e.Dates[i]
	if i < len(e.Times) {
		clock = e.Times[i]
	}
	return date, clock
}

// NextOccurrence returns the first occurrence on or after now. When every
// occurrence is in the past it falls back to the last one, so an event always
// has a displayable date. ok is false only when the event has no dates at all.
func (e *Event) NextOccurrence(now time.Time) (t time.Time, ok bool) {
	// Occurrences parse in UTC, so the day floor is the viewer's calendar
	// date at UTC midnight. Truncating now directly would shift the
	// boundary by the local zone offset.
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	var last time.Time
	for i := range e.Dates {
		ts, err := ParseOccurrence(e.Dates[i], e.timeAt(i))
		if err != nil {
			continue
		}
		if !ts.Before(today) {
			return ts, true
		}
		last = ts
	}
	if last.IsZero() {
		return time.Time{}, false
	}
	return last, true
}

func (e *Event) timeAt(i int) string {
	if i < len(e.Times) {
		return e.Times[i]
	}
	return ""
}

// =============================================================================
// ORDERING
// =============================================================================

// SortByDate orders events chronologically by their next occurrence relative
// to now. Events without a parseable date sort last. Ties break on title so
// the order is stable across renders.
func SortByDate(events []*Event, now time.Time) {
	sort.SliceStable(events, func(i, j int) bool {
		ti, oki := events[i].NextOccurrence(now)
		tj, okj := events[j].NextOccurrence(now)
		if oki != okj {
			return oki
		}
		if oki && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return events[i].Title < events[j].Title
	})
}

// SortByTitle orders events alphabetically using a French collator, so
// accented titles ("Éclats", "À deux voix") land where a reader expects
// rather than after "Z".
func SortByTitle(events []*Event) {
	c := collate.New(language.French, collate.IgnoreCase)
	sort.SliceStable(events, func(i, j int) bool {
		return c.CompareString(events[i].Title, events[j].Title) < 0
	})
}

// Dedupe removes events that share an identity with an earlier entry,
// preserving first-occurrence order. Identity is the event ID when present,
// otherwise the trimmed title.
func Dedupe(events []*Event) []*Event {
	seen := make(map[string]struct{}, len(events))
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		key := e.EventID
		if key == "" {
			key = e.Title
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
