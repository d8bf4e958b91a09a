// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the vitrine TUI.
package components

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
	"github.com/jeranaias/vitrine-tui/internal/util"
)

// =============================================================================
// EVENT CARD COMPONENT
// =============================================================================

// maxDescriptionLines bounds how much of the description a card shows.
const maxDescriptionLines = 3

// EventCard renders one event as a bordered card: title, next occurrence,
// venue, discipline tag, price and URL.
type EventCard struct {
	Event *model.Event
	Width int
	Now   time.Time

	theme *styles.Theme
}

// NewEventCard creates a card for an event.
func NewEventCard(event *model.Event, theme *styles.Theme) *EventCard {
	if event == nil {
		event = &model.Event{}
	}
	return &EventCard{
		Event: event,
		Width: 80,
		Now:   time.Now(),
		theme: theme,
	}
}

// SetWidth sets the card width.
func (c *EventCard) SetWidth(width int) {
	c.Width = width
}

// View renders the card.
func (c *EventCard) View() string {
	innerWidth := c.Width - 6 // border + padding
	if innerWidth < 20 {
		innerWidth = 20
	}

	var lines []string

	// Title row, with the discipline tag on the right when it fits.
	title := c.theme.CardTitleText.Render(util.TruncateWidth(c.Event.Title, innerWidth))
	if c.Event.Discipline != "" {
		tag := c.theme.CardTag.Render(c.Event.Discipline)
		titleWidth := util.StringWidth(c.Event.Title)
		tagWidth := util.StringWidth(c.Event.Discipline) + 2
		if titleWidth+tagWidth+1 <= innerWidth {
			gap := strings.Repeat(" ", innerWidth-titleWidth-tagWidth)
			title += gap + tag
		}
	}
	lines = append(lines, title)

	// Next occurrence, with a count when the show runs more than once.
	if when := c.occurrenceLine(); when != "" {
		lines = append(lines, c.theme.CardDateText.Render(when))
	}

	if loc := c.Event.Location(); loc != "" {
		lines = append(lines, c.theme.CardVenueText.Render(util.TruncateWidth(loc, innerWidth)))
	}

	if desc := c.descriptionLines(innerWidth); len(desc) > 0 {
		lines = append(lines, desc...)
	}

	// Footer: price left, URL right-ish.
	var footer []string
	if c.Event.Price != "" {
		footer = append(footer, c.theme.CardPriceText.Render(c.Event.Price))
	}
	if c.Event.URL != "" {
		footer = append(footer, c.theme.CardLinkText.Render(util.TruncateWidth(c.Event.URL, innerWidth)))
	}
	if len(footer) > 0 {
		lines = append(lines, strings.Join(footer, "  "))
	}

	card := c.theme.Card.Width(c.Width - 2)
	return card.Render(strings.Join(lines, "\n"))
}

// occurrenceLine formats the next date/time plus a "+N more dates" suffix.
func (c *EventCard) occurrenceLine() string {
	if c.Event.OccurrenceCount() == 0 {
		return ""
	}

	next, ok := c.Event.NextOccurrence(c.Now)
	if !ok {
		return ""
	}

	date := next.Format("2006-01-02")
	clock := ""
	if next.Hour() != 0 || next.Minute() != 0 {
		clock = next.Format("15:04")
	}
	line := model.FormatOccurrence(date, clock, c.Now)

	if extra := c.Event.OccurrenceCount() - 1; extra > 0 {
		more := "+1 more date"
		if extra > 1 {
			more = "+" + strconv.Itoa(extra) + " more dates"
		}
		line += "  " + c.theme.Timestamp.Render("("+more+")")
	}
	return line
}

// descriptionLines wraps and clips the description.
func (c *EventCard) descriptionLines(width int) []string {
	desc := strings.TrimSpace(c.Event.Description)
	if desc == "" {
		return nil
	}

	wrapped := strings.Split(util.WordWrap(desc, width), "\n")
	if len(wrapped) > maxDescriptionLines {
		wrapped = wrapped[:maxDescriptionLines]
		last := wrapped[maxDescriptionLines-1]
		wrapped[maxDescriptionLines-1] = util.TruncateWidth(last+"...", width)
	}

	style := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	out := make([]string, len(wrapped))
	for i, line := range wrapped {
		out[i] = style.Render(line)
	}
	return out
}
