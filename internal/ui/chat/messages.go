// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface:
//   - Backend: search results, guide replies, health reports
//   - Reveal: generation-stamped timer ticks for the two reveal surfaces
//   - Input: user input submission and cancellation
//   - Config: live config reloads from the file watcher
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"time"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/config"
)

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// SearchResultMsg delivers the event search phase of a query.
type SearchResultMsg struct {
	Query     string
	Result    *backend.SearchResult
	FromCache bool
	Err       error
}

// ChatReplyMsg delivers the generated guide reply for a query.
type ChatReplyMsg struct {
	MessageID string // assistant message awaiting this reply
	Reply     string
	FromCache bool
	Err       error
}

// BackendStatusMsg reports backend reachability.
type BackendStatusMsg struct {
	Running bool
	Err     error
}

// =============================================================================
// REVEAL MESSAGES
// =============================================================================

// RevealSlot identifies which reveal surface a tick belongs to.
type RevealSlot int

const (
	SlotReply RevealSlot = iota // assistant reply paragraphs
	SlotCards                   // event card stagger
)

// RevealTickMsg is one reveal timer tick. Gen stamps the session the timer
// was armed for; ticks whose generation no longer matches the live session
// are dropped, so a cancelled reveal cannot leak into its successor.
type RevealTickMsg struct {
	Slot RevealSlot
	Gen  uint64
	At   time.Time
}

// =============================================================================
// INPUT MESSAGES
// =============================================================================

// SubmitInputMsg signals that the user submitted a query.
type SubmitInputMsg struct {
	Content string
}

// CancelMsg signals that the user cancelled the in-flight query or reveal.
type CancelMsg struct{}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly reloaded configuration from the
// config file watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// ERROR MESSAGES
// =============================================================================

// ErrorMsg wraps an error for display in the status area.
type ErrorMsg struct {
	Err     error
	Context string // short phase label, e.g. "search" or "chat"
}

// ClearErrorMsg dismisses the current error display.
type ClearErrorMsg struct{}
