// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the sequential reveal scheduler.
package reveal

import (
	"strings"
	"time"
)

// =============================================================================
// TIMING DEFAULTS
// =============================================================================

// Default cadences for the two reveal surfaces. Both are overridable through
// configuration; the interval never depends on unit length.
const (
	// DefaultParagraphInterval is the delay between revealed reply paragraphs.
	DefaultParagraphInterval = 700 * time.Millisecond

	// DefaultCardInterval is the delay between event cards entering the list.
	DefaultCardInterval = 120 * time.Millisecond

	// DefaultInitialDelay is the lead time before the first tick fires.
	DefaultInitialDelay = 100 * time.Millisecond
)

// =============================================================================
// UNIT DERIVATION
// =============================================================================

// Split derives reveal units from a block of text. Lines are trimmed of
// surrounding whitespace, empty lines are dropped, and duplicate lines are
// removed keeping the first occurrence in its original position.
//
// Split is idempotent: Split(strings.Join(Split(s), "\n")) equals Split(s).
func Split(content string) []string {
	lines := strings.Split(content, "\n")
	units := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))

	for _, line := range lines {
		unit := strings.TrimSpace(line)
		if unit == "" {
			continue
		}
		if _, dup := seen[unit]; dup {
			continue
		}
		seen[unit] = struct{}{}
		units = append(units, unit)
	}

	return units
}

// =============================================================================
// SESSION
// =============================================================================

// Session is one reveal in progress: an immutable unit sequence plus a
// cursor counting how many units are currently visible. The revealed units
// are always a strict prefix of Units; a unit is never shown out of order,
// never shown twice, and never withdrawn while the session lives.
//
// Sessions are single-writer values driven from the UI event loop. They hold
// no timer of their own; see Controller for timer ownership.
type Session struct {
	units  []string
	cursor int // number of units revealed so far
	active bool
	source string // content identity this session was split from
	gen    uint64 // controller generation, 0 for free-standing sessions
}

// NewSession splits content into units and returns a fresh session.
// Content that yields no units (empty or whitespace-only input) produces a
// session that is terminal from the start.
func NewSession(content string) *Session {
	units := Split(content)
	return &Session{
		units:  units,
		active: len(units) > 0,
		source: content,
	}
}

// NewCountSession returns a session of n opaque units. Callers that reveal
// items they already hold (event cards, list rows) only need the cursor, not
// the unit text.
func NewCountSession(n int) *Session {
	if n < 0 {
		n = 0
	}
	units := make([]string, n)
	return &Session{
		units:  units,
		active: n > 0,
	}
}

// Tick advances the session by exactly one unit.
//
// The first tick makes unit 0 visible; the Nth tick makes N units visible.
// The tick that exposes the final unit flips the session inactive, and every
// tick after that is a no-op. Tick reports whether the visible prefix changed.
func (s *Session) Tick() bool {
	if !s.active {
		// Terminal or cancelled; the flag only ever flips true -> false.
		return false
	}

	s.cursor++
	if s.cursor == len(s.units) {
		s.active = false
	}
	return true
}

// Cancel marks the session inactive without revealing anything further.
// Idempotent, and a no-op on sessions that are already terminal.
func (s *Session) Cancel() {
	s.active = false
}

// Revealed returns a copy of the currently visible prefix.
func (s *Session) Revealed() []string {
	out := make([]string, s.cursor)
	copy(out, s.units[:s.cursor])
	return out
}

// RevealedCount returns how many units are currently visible.
func (s *Session) RevealedCount() int {
	return s.cursor
}

// Units returns the full unit sequence for the session.
func (s *Session) Units() []string {
	out := make([]string, len(s.units))
	copy(out, s.units)
	return out
}

// Len returns the total number of units.
func (s *Session) Len() int {
	return len(s.units)
}

// Active reports whether more units remain to be revealed.
func (s *Session) Active() bool {
	return s.active
}

// Remaining returns the number of units not yet visible.
func (s *Session) Remaining() int {
	return len(s.units) - s.cursor
}

// Source returns the content the session was created from.
func (s *Session) Source() string {
	return s.source
}

// Generation returns the controller generation that owns this session.
func (s *Session) Generation() uint64 {
	return s.gen
}
