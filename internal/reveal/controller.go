// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal implements the sequential reveal scheduler.
package reveal

import "time"

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns one logical output slot (the assistant transcript, or the
// event list) and enforces the cancel-before-start rule: at most one session
// is live per slot, and starting a new session detaches the previous one
// before the new one can receive a tick.
//
// Timer messages scheduled by the UI carry the generation they were armed
// for. Advance compares that against the live generation, so a tick armed for
// a superseded session can never mutate the replacement. This is what makes
// the "no stale text leakage" guarantee hold without any locking: there is
// only ever one writer, and it always checks ownership first.
type Controller struct {
	session *Session
	gen     uint64

	// Interval is the fixed delay between ticks for this slot.
	Interval time.Duration

	// InitialDelay is the lead time before the first tick.
	InitialDelay time.Duration
}

// NewController creates a controller with the given cadence. Zero values fall
// back to the package defaults.
func NewController(interval, initialDelay time.Duration) *Controller {
	if interval <= 0 {
		interval = DefaultParagraphInterval
	}
	if initialDelay <= 0 {
		initialDelay = DefaultInitialDelay
	}
	return &Controller{
		Interval:     interval,
		InitialDelay: initialDelay,
	}
}

// Start cancels any in-flight session and begins a new one for content.
// The cancellation is unconditional and happens before the new session
// exists, so no two sessions can ever interleave writes to the slot.
func (c *Controller) Start(content string) *Session {
	if c.session != nil {
		c.session.Cancel()
	}
	c.gen++

	s := NewSession(content)
	s.gen = c.gen
	c.session = s
	return s
}

// StartCount is Start for opaque units: it begins a session that reveals
// n items the caller already holds, one per tick.
func (c *Controller) StartCount(n int) *Session {
	if c.session != nil {
		c.session.Cancel()
	}
	c.gen++

	s := NewCountSession(n)
	s.gen = c.gen
	c.session = s
	return s
}

// Advance applies one tick if gen still identifies the live session.
// Ticks from superseded sessions are dropped. Reports whether the visible
// prefix changed.
func (c *Controller) Advance(gen uint64) bool {
	if c.session == nil || gen != c.gen {
		return false
	}
	return c.session.Tick()
}

// Cancel stops the live session, if any. Idempotent.
func (c *Controller) Cancel() {
	if c.session != nil {
		c.session.Cancel()
	}
}

// Session returns the live session, or nil before the first Start.
func (c *Controller) Session() *Session {
	return c.session
}

// Generation returns the live generation. Ticks armed by the UI must carry
// this value back through Advance.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Active reports whether the live session still has units to reveal.
func (c *Controller) Active() bool {
	return c.session != nil && c.session.Active()
}

// Revealed returns the live session's visible prefix, or nil before the
// first Start.
func (c *Controller) Revealed() []string {
	if c.session == nil {
		return nil
	}
	return c.session.Revealed()
}
