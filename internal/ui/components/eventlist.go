// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
)

// =============================================================================
// EVENT LIST COMPONENT
// =============================================================================

// EventList renders a page of event cards. During the staggered entrance only
// the cards before the reveal cursor are drawn; the list grows one card per
// reveal tick until the page is full.
type EventList struct {
	Events   []*model.Event
	Width    int
	PageSize int
	Page     int // zero-based
	Now      time.Time

	// RevealedCount caps the number of visible cards on the current page.
	// A negative value means "all revealed" (no stagger in progress).
	RevealedCount int

	theme *styles.Theme
}

// NewEventList creates a list for a set of events.
func NewEventList(events []*model.Event, theme *styles.Theme) *EventList {
	return &EventList{
		Events:        events,
		Width:         80,
		PageSize:      6,
		Now:           time.Now(),
		RevealedCount: -1,
		theme:         theme,
	}
}

// PageCount returns the number of pages.
func (l *EventList) PageCount() int {
	if l.PageSize <= 0 || len(l.Events) == 0 {
		return 1
	}
	return (len(l.Events) + l.PageSize - 1) / l.PageSize
}

// ClampPage pins the current page into the valid range.
func (l *EventList) ClampPage() {
	if l.Page < 0 {
		l.Page = 0
	}
	if max := l.PageCount() - 1; l.Page > max {
		l.Page = max
	}
}

// PageEvents returns the events on the current page.
func (l *EventList) PageEvents() []*model.Event {
	if l.PageSize <= 0 {
		return l.Events
	}
	l.ClampPage()
	start := l.Page * l.PageSize
	if start >= len(l.Events) {
		return nil
	}
	end := start + l.PageSize
	if end > len(l.Events) {
		end = len(l.Events)
	}
	return l.Events[start:end]
}

// View renders the visible cards plus the pager footer.
func (l *EventList) View() string {
	page := l.PageEvents()
	if len(page) == 0 {
		return ""
	}

	visible := len(page)
	if l.RevealedCount >= 0 && l.RevealedCount < visible {
		visible = l.RevealedCount
	}

	var blocks []string
	for _, event := range page[:visible] {
		card := NewEventCard(event, l.theme)
		card.Now = l.Now
		card.SetWidth(l.Width)
		blocks = append(blocks, card.View())
	}

	if footer := l.pagerLine(); footer != "" {
		blocks = append(blocks, footer)
	}
	return strings.Join(blocks, "\n")
}

// pagerLine renders "page 2/5 - 28 events" plus paging hints.
func (l *EventList) pagerLine() string {
	pager := NewPager(l.Page, l.PageCount(), len(l.Events), l.theme)
	return pager.View()
}
