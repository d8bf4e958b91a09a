// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the message handlers behind Model.Update: keyboard
// input, the search -> chat -> reveal phase transitions, and reveal tick
// application with stale-generation dropping.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/cache"
	"github.com/jeranaias/vitrine-tui/internal/model"
)

// =============================================================================
// KEYBOARD HANDLING
// =============================================================================

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.cancelRequest()
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keyMap.Cancel):
		return m.handleCancel()

	case key.Matches(msg, m.keyMap.Skip):
		if m.state == StateRevealing || m.cardReveal.Active() {
			m.finishRevealNow()
			m.rebuildViewport()
		}
		// Tab never reaches the text input.
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Clear):
		m.conversation.ClearHistory()
		m.events = nil
		m.promptEvents = nil
		m.targetDate = ""
		m.eventsAfter = ""
		m.page = 0
		m.replyReveal.Cancel()
		m.cardReveal.Cancel()
		m.revealMsgID = ""
		m.pendingReplyID = ""
		m.rebuildViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.NextPage):
		return m.flipPage(1)

	case key.Matches(msg, m.keyMap.PrevPage):
		return m.flipPage(-1)

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil
	}

	// Everything else belongs to the text input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleCancel aborts whatever is in flight. A cancelled reveal keeps the
// paragraphs already shown; the rest never appear.
func (m Model) handleCancel() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateSearching, StateChatting:
		m.cancelRequest()
		m.cardReveal.Cancel()
		m.settleReveal()
		m.dropPendingReply()
		m.conversation.AddSystemMessage("Cancelled.")
		m.state = StateReady
		m.spinner.Stop()
		m.rebuildViewport()
		return m, nil

	case StateRevealing:
		m.settleReveal()
		m.cardReveal.Cancel()
		m.state = StateReady
		m.rebuildViewport()
		return m, nil

	case StateError:
		m.lastError = nil
		m.state = StateReady
		return m, nil
	}
	return m, nil
}

// handleSubmit dispatches a new query.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		return m, nil
	}
	if m.state == StateSearching || m.state == StateChatting {
		// One request in flight at a time; finish or cancel it first.
		return m, nil
	}
	if m.state == StateRevealing {
		// A fresh query supersedes the reveal: the old sessions are
		// cancelled and their remaining timers land stale.
		m.finishRevealNow()
	}

	m.input.Reset()
	m.lastError = nil
	m.statusMsg = ""

	userMsg := m.conversation.AddUserMessage(query)
	m.eventsAfter = userMsg.ID
	m.events = nil
	m.page = 0
	m.cardReveal.Cancel()

	// Serve a repeat query from the session cache without a round trip.
	if m.store != nil {
		if entry, ok := m.store.Get(query); ok {
			return m.applyCachedEntry(entry)
		}
	}

	m.state = StateSearching
	m.pendingQuery = query
	m.pendingResult = nil
	m.pendingReplyID = ""
	m.rebuildViewport()

	return m, tea.Batch(
		m.spinner.Start(),
		m.searchCmd(query),
	)
}

// applyCachedEntry replays a cached search+reply pair. The reveal still
// runs; only the network phases are skipped.
func (m Model) applyCachedEntry(entry *cache.Entry) (tea.Model, tea.Cmd) {
	m.events = entry.Result.Events
	m.promptEvents = entry.Result.PromptEvents
	m.targetDate = entry.Result.TargetDate
	m.page = 0

	reply := m.conversation.AddAssistantMessage(entry.Reply)
	reply.TargetDate = entry.Result.TargetDate

	m.state = StateRevealing
	m.statusMsg = "from session cache"
	m.rebuildViewport()

	return m, tea.Batch(
		m.startCardReveal(),
		m.startReplyReveal(reply.ID, entry.Reply),
	)
}

// flipPage moves the event page window and re-staggers the new page.
func (m Model) flipPage(delta int) (tea.Model, tea.Cmd) {
	if len(m.events) == 0 {
		return m, nil
	}
	next := m.page + delta
	if next < 0 || next >= m.pageCount() {
		return m, nil
	}
	m.page = next
	cmd := m.startCardReveal()
	m.rebuildViewport()
	return m, cmd
}

// =============================================================================
// BACKEND RESULT HANDLING
// =============================================================================

// handleSearchResult applies the event search phase.
func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if m.state != StateSearching || msg.Query != m.pendingQuery {
		// Result of a cancelled or superseded query.
		return m, nil
	}

	if msg.Err != nil {
		m.spinner.Stop()
		m.conversation.AddSystemMessage(backend.FallbackFailure)
		m.state = StateReady
		m.lastError = &ErrorMsg{Err: msg.Err, Context: "search"}
		m.rebuildViewport()
		return m, nil
	}

	result := msg.Result
	if !result.HasEvents() {
		m.spinner.Stop()
		noEvents := m.conversation.AddAssistantMessage(backend.FallbackNoEvents)
		noEvents.Revealing = false
		m.state = StateReady
		m.rebuildViewport()
		return m, nil
	}

	// The backend can return the same show more than once across result
	// groups. Dated queries read best chronologically; undated ones
	// alphabetically, since their matches span arbitrary dates.
	events := model.Dedupe(result.Events)
	if result.TargetDate == "" {
		model.SortByTitle(events)
	} else {
		model.SortByDate(events, now())
	}
	result.Events = events

	m.events = events
	m.promptEvents = result.PromptEvents
	m.targetDate = result.TargetDate
	m.page = 0
	m.pendingResult = result

	m.state = StateChatting
	m.spinner.SetMessage("Composing reply")
	m.rebuildViewport()

	reply := m.conversation.AddAssistantMessage("")
	reply.TargetDate = result.TargetDate
	m.pendingReplyID = reply.ID

	return m, tea.Batch(
		m.startCardReveal(),
		m.chatCmd(reply.ID, msg.Query, result.PromptEvents, result.TargetDate),
	)
}

// handleChatReply applies the guide reply phase and begins the paragraph
// reveal.
func (m Model) handleChatReply(msg ChatReplyMsg) (tea.Model, tea.Cmd) {
	if m.state != StateChatting || msg.MessageID != m.pendingReplyID {
		// Reply for a cancelled or superseded query; the live query, if
		// any, keeps waiting for its own.
		return m, nil
	}
	reply := m.conversation.GetMessageByID(msg.MessageID)
	if reply == nil {
		return m, nil
	}
	m.pendingReplyID = ""

	m.spinner.Stop()

	if msg.Err != nil {
		reply.Content = backend.FallbackFailure
		reply.Revealing = false
		m.state = StateReady
		m.lastError = &ErrorMsg{Err: msg.Err, Context: "chat"}
		m.rebuildViewport()
		return m, nil
	}

	reply.Content = msg.Reply
	m.state = StateRevealing

	if m.store != nil && m.pendingQuery != "" && m.pendingResult != nil {
		m.store.Put(m.pendingQuery, m.pendingResult, msg.Reply)
	}
	m.pendingQuery = ""
	m.pendingResult = nil

	m.rebuildViewport()
	return m, m.startReplyReveal(reply.ID, msg.Reply)
}

// =============================================================================
// REVEAL TICK HANDLING
// =============================================================================

// handleRevealTick applies one reveal timer tick to its slot. Ticks carrying
// a stale generation are dropped without touching any session.
func (m Model) handleRevealTick(msg RevealTickMsg) (tea.Model, tea.Cmd) {
	m.revealTick++

	switch msg.Slot {
	case SlotReply:
		if !m.replyReveal.Advance(msg.Gen) {
			return m, nil
		}
		m.rebuildViewport()
		m.viewport.GotoBottom()

		if cmd := m.nextTickFor(SlotReply); cmd != nil {
			return m, cmd
		}
		// Final paragraph is out; settle the message.
		if reply := m.conversation.GetMessageByID(m.revealMsgID); reply != nil {
			reply.Revealing = false
		}
		m.revealMsgID = ""
		if m.state == StateRevealing {
			m.state = StateReady
		}
		m.rebuildViewport()
		return m, nil

	case SlotCards:
		if !m.cardReveal.Advance(msg.Gen) {
			return m, nil
		}
		m.rebuildViewport()
		return m, m.nextTickFor(SlotCards)
	}

	return m, nil
}

// =============================================================================
// WINDOW AND CONFIG
// =============================================================================

// handleResize recalculates the layout.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.theme.SetSize(msg.Width, msg.Height)

	headerHeight := 3
	inputHeight := 3
	statusHeight := 1

	m.viewport.Width = msg.Width
	m.viewport.Height = msg.Height - headerHeight - inputHeight - statusHeight
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = msg.Width - 4

	m.rebuildViewport()
	return m, nil
}

// handleConfigReloaded applies a live config change. The new cadences take
// effect on the next reveal; an in-flight session keeps its timer.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}

	m.replyReveal.Interval = cfg.Reveal.ParagraphInterval()
	m.replyReveal.InitialDelay = cfg.Reveal.InitialDelay()
	m.cardReveal.Interval = cfg.Reveal.CardInterval()
	m.cardReveal.InitialDelay = cfg.Reveal.InitialDelay()
	m.showTimestamps = cfg.UI.ShowTimestamps

	if cfg.UI.PageSize != m.pageSize {
		m.pageSize = cfg.UI.PageSize
		m.page = 0
	}

	m.statusMsg = "config reloaded"
	m.rebuildViewport()
	return m, nil
}
