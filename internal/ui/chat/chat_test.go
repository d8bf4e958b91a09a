// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"encoding/json"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/config"
	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	config.ResetGlobalForTesting()
	cfg := config.Default()
	cfg.Cache.Enabled = false
	config.SetGlobal(cfg)
	t.Cleanup(config.ResetGlobalForTesting)

	m := New(styles.NewThemeForMode(true), backend.NewClient())
	m.width = 80
	m.height = 24
	m.viewport.Width = 80
	m.viewport.Height = 18
	return m
}

func searchResult(n int) *backend.SearchResult {
	events := make([]*model.Event, n)
	prompts := make([]json.RawMessage, n)
	for i := range events {
		events[i] = &model.Event{
			EventID: "ev-" + string(rune('A'+i)),
			Title:   "Event " + string(rune('A'+i)),
			Dates:   []string{"2026-09-12"},
			Times:   []string{"19:30"},
		}
		prompts[i] = json.RawMessage(`{}`)
	}
	return &backend.SearchResult{
		Events:       events,
		PromptEvents: prompts,
		TargetDate:   "2026-09-12",
	}
}

func submit(t *testing.T, m Model, query string) Model {
	t.Helper()
	m.input.SetValue(query)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)
	if next.state != StateSearching {
		t.Fatalf("state after submit = %v, want StateSearching", next.state)
	}
	if cmd == nil {
		t.Fatal("submit should dispatch the search command")
	}
	return next
}

// =============================================================================
// QUERY PHASES
// =============================================================================

func TestSubmitAddsUserMessage(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz this weekend")

	last := m.Conversation().GetLastMessage()
	if last == nil || !last.IsUser() || last.Content != "jazz this weekend" {
		t.Fatalf("transcript missing the submitted query, got %+v", last)
	}
}

func TestSubmitIgnoredWhileBusy(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	count := m.Conversation().MessageCount()

	m.input.SetValue("another query")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if next.Conversation().MessageCount() != count {
		t.Error("a second submit while busy should be ignored")
	}
}

func TestSubmitMidRevealSupersedesReveal(t *testing.T) {
	m := revealingModel(t, "One.\n\nTwo.\n\nThree.")
	prev := m.Conversation().GetLastAssistantMessage()

	m.input.SetValue("another night")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next := updated.(Model)

	if next.state != StateSearching {
		t.Fatalf("state = %v, want StateSearching for the new query", next.state)
	}
	if cmd == nil {
		t.Fatal("new query should dispatch its search")
	}
	if prev.Revealing {
		t.Error("superseded reply should be settled before the new query runs")
	}
	if prev.Content != "One.\n\nTwo.\n\nThree." {
		t.Errorf("superseded reply content = %q, want the full text", prev.Content)
	}
	if next.cardReveal.Active() {
		t.Error("old card stagger must be cancelled")
	}
	last := next.Conversation().GetLastUserMessage()
	if last == nil || last.Content != "another night" {
		t.Errorf("transcript missing the new query, got %+v", last)
	}
}

func TestSearchResultStartsChatPhase(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")

	updated, cmd := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(3)})
	next := updated.(Model)

	if next.state != StateChatting {
		t.Fatalf("state = %v, want StateChatting", next.state)
	}
	if len(next.events) != 3 {
		t.Errorf("stored %d events, want 3", len(next.events))
	}
	if cmd == nil {
		t.Fatal("search result should dispatch the chat command and card reveal")
	}
	last := next.Conversation().GetLastMessage()
	if last == nil || !last.IsAssistant() {
		t.Fatal("chat phase should add the assistant placeholder")
	}
}

func TestSearchResultDedupedAndOrdered(t *testing.T) {
	m := submit(t, newTestModel(t), "shows in september")

	result := &backend.SearchResult{
		Events: []*model.Event{
			{EventID: "late", Title: "Late", Dates: []string{"2030-09-20"}, Times: []string{"20:00"}},
			{EventID: "early", Title: "Early", Dates: []string{"2030-09-05"}, Times: []string{"19:00"}},
			{EventID: "late", Title: "Late (repeat)", Dates: []string{"2030-09-20"}, Times: []string{"20:00"}},
		},
		PromptEvents: []json.RawMessage{json.RawMessage(`{}`)},
		TargetDate:   "2030-09-05",
	}

	updated, _ := m.Update(SearchResultMsg{Query: "shows in september", Result: result})
	next := updated.(Model)

	if len(next.events) != 2 {
		t.Fatalf("stored %d events, want 2 after dedupe", len(next.events))
	}
	if next.events[0].EventID != "early" || next.events[1].EventID != "late" {
		t.Errorf("events not in date order: %s, %s", next.events[0].EventID, next.events[1].EventID)
	}
}

func TestSearchResultNoEventsFallback(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")

	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: &backend.SearchResult{}})
	next := updated.(Model)

	if next.state != StateReady {
		t.Fatalf("state = %v, want StateReady", next.state)
	}
	last := next.Conversation().GetLastMessage()
	if last == nil || last.Content != backend.FallbackNoEvents {
		t.Fatalf("expected the no-events fallback in the transcript, got %+v", last)
	}
}

func TestSearchErrorFallback(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")

	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Err: errors.New("boom")})
	next := updated.(Model)

	if next.state != StateReady {
		t.Fatalf("state = %v, want StateReady", next.state)
	}
	last := next.Conversation().GetLastMessage()
	if last == nil || last.Content != backend.FallbackFailure {
		t.Fatalf("expected the failure fallback, got %+v", last)
	}
	if next.lastError == nil {
		t.Error("error should be kept for the status bar")
	}
}

func TestStaleSearchResultDropped(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	count := m.Conversation().MessageCount()

	updated, _ := m.Update(SearchResultMsg{Query: "older query", Result: searchResult(2)})
	next := updated.(Model)

	if next.state != StateSearching || next.Conversation().MessageCount() != count {
		t.Error("a result for a superseded query must be dropped")
	}
}

func TestChatReplyStartsReveal(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(2)})
	m = updated.(Model)
	replyID := m.Conversation().GetLastMessage().ID

	updated, cmd := m.Update(ChatReplyMsg{
		MessageID: replyID,
		Reply:     "First paragraph.\n\nSecond paragraph.\n\nThird paragraph.",
	})
	m = updated.(Model)

	if m.state != StateRevealing {
		t.Fatalf("state = %v, want StateRevealing", m.state)
	}
	if cmd == nil {
		t.Fatal("chat reply should arm the first reveal tick")
	}
	if m.replyReveal.Session() == nil || m.replyReveal.Session().Len() != 3 {
		t.Fatal("reveal session should hold the reply paragraphs")
	}
	if got := len(m.replyReveal.Revealed()); got != 0 {
		t.Errorf("nothing should be revealed before the first tick, got %d units", got)
	}
}

// =============================================================================
// REVEAL TICKS
// =============================================================================

func revealingModel(t *testing.T, reply string) Model {
	t.Helper()
	m := submit(t, newTestModel(t), "jazz")
	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(2)})
	m = updated.(Model)
	replyID := m.Conversation().GetLastMessage().ID
	updated, _ = m.Update(ChatReplyMsg{MessageID: replyID, Reply: reply})
	return updated.(Model)
}

func TestRevealTicksSurfaceParagraphsInOrder(t *testing.T) {
	m := revealingModel(t, "One.\n\nTwo.\n\nThree.")
	gen := m.replyReveal.Generation()

	for want := 1; want <= 3; want++ {
		updated, _ := m.Update(RevealTickMsg{Slot: SlotReply, Gen: gen})
		m = updated.(Model)
		if got := len(m.replyReveal.Revealed()); got != want {
			t.Fatalf("after tick %d: %d units visible, want %d", want, got, want)
		}
	}

	if m.state != StateReady {
		t.Errorf("state after final tick = %v, want StateReady", m.state)
	}
	reply := m.Conversation().GetLastAssistantMessage()
	if reply == nil || reply.Revealing {
		t.Error("reply should be settled after the final tick")
	}
}

func TestStaleRevealTickDropped(t *testing.T) {
	m := revealingModel(t, "One.\n\nTwo.")
	gen := m.replyReveal.Generation()

	updated, cmd := m.Update(RevealTickMsg{Slot: SlotReply, Gen: gen + 7})
	m = updated.(Model)

	if got := len(m.replyReveal.Revealed()); got != 0 {
		t.Errorf("stale tick advanced the session by %d units", got)
	}
	if cmd != nil {
		t.Error("stale tick must not arm a follow-up timer")
	}
	if m.state != StateRevealing {
		t.Errorf("state = %v, want StateRevealing untouched", m.state)
	}
}

func TestCardTicksStopAtPageEnd(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(2)})
	m = updated.(Model)
	gen := m.cardReveal.Generation()

	for i := 0; i < 2; i++ {
		updated, _ = m.Update(RevealTickMsg{Slot: SlotCards, Gen: gen})
		m = updated.(Model)
	}
	if m.cardReveal.Active() {
		t.Fatal("card session should settle once the page is full")
	}

	updated, cmd := m.Update(RevealTickMsg{Slot: SlotCards, Gen: gen})
	m = updated.(Model)
	if cmd != nil {
		t.Error("ticks past the end of the card stagger must be dropped")
	}
	if m.cardsRevealedCount() != -1 {
		t.Error("a settled stagger should report every card visible")
	}
}

// =============================================================================
// CANCELLATION
// =============================================================================

func TestEscCancelsMidReveal(t *testing.T) {
	m := revealingModel(t, "One.\n\nTwo.\n\nThree.")
	gen := m.replyReveal.Generation()

	updated, _ := m.Update(RevealTickMsg{Slot: SlotReply, Gen: gen})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.state != StateReady {
		t.Fatalf("state after cancel = %v, want StateReady", m.state)
	}
	reply := m.Conversation().GetLastAssistantMessage()
	if reply == nil || reply.Revealing {
		t.Fatal("cancelled reply should be settled")
	}
	if reply.Content != "One." {
		t.Errorf("cancelled reply kept %q, want only the revealed prefix", reply.Content)
	}

	// The timer armed before the cancel arrives late and must be inert.
	updated, _ = m.Update(RevealTickMsg{Slot: SlotReply, Gen: gen})
	m = updated.(Model)
	if m.Conversation().GetLastAssistantMessage().Content != "One." {
		t.Error("a late tick from the cancelled session changed the transcript")
	}
}

func TestEscDuringChatSettlesPlaceholder(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(2)})
	m = updated.(Model)
	placeholderID := m.Conversation().GetLastMessage().ID

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	if m.state != StateReady {
		t.Fatalf("state = %v, want StateReady", m.state)
	}
	ph := m.Conversation().GetMessageByID(placeholderID)
	if ph == nil || ph.Revealing {
		t.Error("cancelled chat phase must settle the empty placeholder")
	}
	last := m.Conversation().GetLastMessage()
	if last == nil || last.Content != "Cancelled." {
		t.Errorf("expected a cancellation note, got %+v", last)
	}
}

func TestStaleChatReplyDropped(t *testing.T) {
	m := submit(t, newTestModel(t), "first")
	updated, _ := m.Update(SearchResultMsg{Query: "first", Result: searchResult(2)})
	m = updated.(Model)
	oldID := m.Conversation().GetLastMessage().ID

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)

	m = submit(t, m, "second")
	updated, _ = m.Update(SearchResultMsg{Query: "second", Result: searchResult(1)})
	m = updated.(Model)
	liveID := m.Conversation().GetLastMessage().ID

	// The first query's request resolves late; its reply must neither
	// surface nor consume the live query's chat phase.
	updated, _ = m.Update(ChatReplyMsg{MessageID: oldID, Reply: "left over"})
	m = updated.(Model)

	if old := m.Conversation().GetMessageByID(oldID); old.Content != "" {
		t.Errorf("abandoned placeholder picked up content %q", old.Content)
	}
	if m.state != StateChatting {
		t.Fatalf("state = %v, want StateChatting still waiting", m.state)
	}

	updated, _ = m.Update(ChatReplyMsg{MessageID: liveID, Reply: "Tonight's picks."})
	m = updated.(Model)
	if m.state != StateRevealing {
		t.Fatalf("state = %v, want StateRevealing", m.state)
	}
	if live := m.Conversation().GetMessageByID(liveID); live.Content != "Tonight's picks." {
		t.Errorf("live reply content = %q", live.Content)
	}
}

func TestEscDuringSearchAddsCancelledNote(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	next := updated.(Model)

	if next.state != StateReady {
		t.Fatalf("state = %v, want StateReady", next.state)
	}
	last := next.Conversation().GetLastMessage()
	if last == nil || last.Content != "Cancelled." {
		t.Errorf("expected a cancellation note, got %+v", last)
	}
}

func TestSkipFinishesRevealImmediately(t *testing.T) {
	m := revealingModel(t, "One.\n\nTwo.\n\nThree.")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)

	if m.state != StateReady {
		t.Fatalf("state after skip = %v, want StateReady", m.state)
	}
	reply := m.Conversation().GetLastAssistantMessage()
	if reply == nil || reply.Revealing {
		t.Fatal("skip should settle the reply")
	}
	if reply.Content != "One.\n\nTwo.\n\nThree." {
		t.Errorf("skip should keep the full reply, got %q", reply.Content)
	}
}

func TestTabOutsideRevealLeavesInputAlone(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("jaz")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next := updated.(Model)

	if got := next.input.Value(); got != "jaz" {
		t.Errorf("stray tab edited the input: %q", got)
	}
}

// =============================================================================
// PAGING AND CONFIG
// =============================================================================

func TestPageFlipRestaggers(t *testing.T) {
	m := submit(t, newTestModel(t), "jazz")
	updated, _ := m.Update(SearchResultMsg{Query: "jazz", Result: searchResult(9)})
	m = updated.(Model)
	m.pageSize = 4
	firstGen := m.cardReveal.Generation()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = updated.(Model)

	if m.page != 1 {
		t.Fatalf("page = %d, want 1", m.page)
	}
	if cmd == nil {
		t.Fatal("page flip should arm a new card stagger")
	}
	if m.cardReveal.Generation() == firstGen {
		t.Error("page flip should supersede the previous card session")
	}
	if m.cardReveal.Advance(firstGen) {
		t.Error("ticks from the previous page must be dropped")
	}
}

func TestConfigReloadUpdatesCadence(t *testing.T) {
	m := newTestModel(t)

	cfg := config.Default()
	cfg.Reveal.ParagraphMs = 900
	cfg.Reveal.CardMs = 200
	cfg.UI.PageSize = 3

	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	next := updated.(Model)

	if next.replyReveal.Interval != cfg.Reveal.ParagraphInterval() {
		t.Errorf("paragraph interval = %v, want %v", next.replyReveal.Interval, cfg.Reveal.ParagraphInterval())
	}
	if next.cardReveal.Interval != cfg.Reveal.CardInterval() {
		t.Errorf("card interval = %v, want %v", next.cardReveal.Interval, cfg.Reveal.CardInterval())
	}
	if next.pageSize != 3 {
		t.Errorf("page size = %d, want 3", next.pageSize)
	}
}
