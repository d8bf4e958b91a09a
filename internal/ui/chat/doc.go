// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the vitrine TUI.

The package implements a terminal conversation interface on the Bubble Tea
framework. A query runs in two backend phases: a semantic event search, then
a generated guide reply grounded on the top matches. Both phases resolve into
reveal sessions that surface results progressively instead of all at once.

# Key Components

Model (model.go) is the central Bubble Tea model: conversation transcript,
current event page, the two reveal controllers (reply paragraphs and event
cards), and the input/viewport/spinner components.

Messages (messages.go) defines the Bubble Tea message types: search and chat
results arriving from backend goroutines, reveal ticks carrying a generation
stamp, backend health reports, and config reloads.

Update (update.go) routes messages: keyboard handling, phase transitions
Ready -> Searching -> Chatting -> Revealing -> Ready, and tick application
with stale-generation dropping.

View (view.go) renders the transcript, the event cards for the current page,
the input line, and the status bar.

# Usage

	client := backend.NewClient()
	m := chat.New(theme, client)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat
