// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file builds the tea.Cmd values that run backend requests and arm
// reveal timers. Backend calls run in goroutines owned by Bubble Tea; their
// contexts are registered with the cancel manager so Esc can abort them.
package chat

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vitrine-tui/internal/reveal"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// searchCmd runs the event search phase for query.
func (m *Model) searchCmd(query string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.setCancelFunc(cancel)

	client := m.client
	return func() tea.Msg {
		defer cancel()
		result, err := client.Search(ctx, query)
		return SearchResultMsg{Query: query, Result: result, Err: err}
	}
}

// chatCmd runs the guide reply phase. promptEvents and targetDate are passed
// through from the search result untouched.
func (m *Model) chatCmd(msgID, query string, promptEvents []json.RawMessage, targetDate string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.setCancelFunc(cancel)

	client := m.client
	return func() tea.Msg {
		defer cancel()
		reply, err := client.Chat(ctx, query, promptEvents, targetDate)
		return ChatReplyMsg{MessageID: msgID, Reply: reply, Err: err}
	}
}

// checkBackendCmd probes the backend health endpoint.
func (m *Model) checkBackendCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := client.CheckRunning(ctx)
		return BackendStatusMsg{Running: err == nil, Err: err}
	}
}

// =============================================================================
// REVEAL COMMANDS
// =============================================================================

// revealTickCmd arms one reveal timer tick. The generation is captured now;
// if the session is superseded before the timer fires, the tick arrives
// stale and Update drops it.
func revealTickCmd(slot RevealSlot, gen uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return RevealTickMsg{Slot: slot, Gen: gen, At: t}
	})
}

// startReplyReveal begins revealing content on the reply surface and arms
// the first tick after the initial delay.
func (m *Model) startReplyReveal(msgID, content string) tea.Cmd {
	m.revealMsgID = msgID
	m.replyReveal.Start(content)
	return revealTickCmd(SlotReply, m.replyReveal.Generation(), m.replyReveal.InitialDelay)
}

// startCardReveal staggers in the cards of the current page.
func (m *Model) startCardReveal() tea.Cmd {
	n := m.visibleCardCount()
	if n == 0 {
		m.cardReveal.Cancel()
		return nil
	}
	m.cardReveal.StartCount(n)
	return revealTickCmd(SlotCards, m.cardReveal.Generation(), m.cardReveal.InitialDelay)
}

// nextTickFor arms the follow-up tick for a slot's live session.
func (m *Model) nextTickFor(slot RevealSlot) tea.Cmd {
	var c *reveal.Controller
	if slot == SlotReply {
		c = m.replyReveal
	} else {
		c = m.cardReveal
	}
	if !c.Active() {
		return nil
	}
	return revealTickCmd(slot, c.Generation(), c.Interval)
}
