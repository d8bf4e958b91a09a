// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file renders the chat interface: header, transcript viewport with the
// event cards inlined under the query that produced them, input line, and
// status bar.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/ui/components"
)

// =============================================================================
// MAIN VIEW
// =============================================================================

// View renders the complete chat interface.
func (m Model) View() string {
	if m.width == 0 {
		return "Starting..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
	}

	if m.spinner.IsActive() {
		sections = append(sections, " "+m.spinner.View())
	}

	sections = append(sections, m.renderInput(), m.renderStatusBar())
	return strings.Join(sections, "\n")
}

// =============================================================================
// SECTIONS
// =============================================================================

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("vitrine")
	subtitle := m.theme.HeaderSubtitle.Render("cultural events guide")
	line := title + "  " + subtitle
	if m.targetDate != "" {
		line += "  " + m.theme.HeaderSubtitle.Render("· "+model.FormatTargetDate(m.targetDate, now()))
	}
	return m.theme.Header.Width(m.width).Render(line)
}

// renderInput renders the query input line.
func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// renderStatusBar renders backend state, phase, and key hints.
func (m Model) renderStatusBar() string {
	var left string
	if m.lastError != nil {
		left = m.theme.StatusError.Render("! " + m.lastError.Err.Error())
	} else {
		switch {
		case m.busy():
			left = m.theme.StatusBusy.Render("* " + m.state.String())
		case m.backendUp:
			left = m.theme.StatusOK.Render("+ connected")
		default:
			left = m.theme.StatusError.Render("- backend offline")
		}
		if m.statusMsg != "" {
			left += m.theme.ShortcutDesc.Render("  " + m.statusMsg)
		}
	}

	hints := m.theme.ShortcutKey.Render("C-h") + m.theme.ShortcutDesc.Render(" help ") +
		m.theme.ShortcutKey.Render("C-c") + m.theme.ShortcutDesc.Render(" quit")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hints) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + hints)
}

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				m.theme.ShortcutKey.Render(padKey(h.Key, 12)),
				m.theme.ShortcutDesc.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.theme.ShortcutDesc.Render("  press C-h to close"))

	return m.theme.Container.Width(m.width).Render(b.String())
}

func padKey(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// rebuildViewport re-renders the transcript into the viewport. The event
// cards are inlined after the user message that produced them, so older
// result sets scroll away naturally with their queries.
func (m *Model) rebuildViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var blocks []string
	for _, msg := range m.conversation.Messages {
		if block := m.renderMessage(msg, width); block != "" {
			blocks = append(blocks, block)
		}
		if msg.ID == m.eventsAfter && len(m.events) > 0 {
			blocks = append(blocks, m.renderEvents(width))
		}
	}

	if len(blocks) == 0 {
		blocks = append(blocks, m.renderWelcome(width))
	}

	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders one transcript bubble.
func (m *Model) renderMessage(msg *model.Message, width int) string {
	bubble := components.NewMessageBubble(msg, m.theme)
	bubble.SetWidth(width - 2)
	bubble.ShowTimestamp = m.showTimestamps
	bubble.RevealTick = m.revealTick

	if msg.ID == m.revealMsgID {
		bubble.RevealedUnits = m.replyReveal.Revealed()
	}
	return bubble.View()
}

// renderEvents renders the current page of event cards.
func (m *Model) renderEvents(width int) string {
	list := components.NewEventList(m.events, m.theme)
	list.Width = width - 2
	list.PageSize = m.pageSize
	list.Page = m.page
	list.Now = now()
	list.RevealedCount = m.cardsRevealedCount()
	return list.View()
}

// renderWelcome renders the empty-transcript greeting.
func (m *Model) renderWelcome(width int) string {
	text := "Ask about concerts, theatre, dance, and exhibitions.\n\n" +
		"Examples:\n" +
		"  jazz this weekend\n" +
		"  theatre for kids next saturday\n" +
		"  free exhibitions in november"
	return m.theme.SystemBubble.MaxWidth(width - 2).Render(text)
}

// joinParagraphs rebuilds display text from revealed units.
func joinParagraphs(units []string) string {
	return strings.Join(units, "\n\n")
}
