// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
	"github.com/jeranaias/vitrine-tui/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one conversation message. Assistant replies can be
// drawn mid-reveal: only the paragraphs before the cursor are shown, with a
// trailing indicator while more are pending.
type MessageBubble struct {
	Message       *model.Message
	Width         int
	ShowTimestamp bool
	RevealTick    int

	// RevealedUnits, when non-nil, replaces the message content with the
	// paragraphs revealed so far.
	RevealedUnits []string

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for a message.
func NewMessageBubble(msg *model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		theme:   theme,
	}
}

// SetWidth updates the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	if b.Message == nil {
		return ""
	}

	content := b.content()
	if content == "" && !b.Message.Revealing {
		return ""
	}

	inner := b.Width - 6 // border + padding
	if inner < 10 {
		inner = 10
	}
	content = util.WordWrap(content, inner)

	header := b.headerLine()
	body := content
	if header != "" {
		body = header + "\n" + content
	}

	style := b.bubbleStyle()
	bubble := style.MaxWidth(b.Width).Render(body)

	if b.Message.Role == model.RoleUser {
		return lipgloss.NewStyle().Width(b.Width).Align(lipgloss.Right).Render(bubble)
	}
	return bubble
}

// content assembles the visible text, honoring an in-flight reveal.
func (b *MessageBubble) content() string {
	var text string
	if b.RevealedUnits != nil {
		text = strings.Join(b.RevealedUnits, "\n\n")
	} else {
		text = b.Message.Content
	}
	if b.Message.Revealing {
		if text != "" {
			text += "\n"
		}
		text += styles.RevealFrame(b.RevealTick)
	}
	return text
}

// headerLine renders "Guide · 14:05" or just the speaker name.
func (b *MessageBubble) headerLine() string {
	name := b.Message.Role.DisplayName()
	if b.ShowTimestamp && b.theme != nil {
		stamp := b.theme.Timestamp.Render(b.Message.Timestamp.Format("15:04"))
		return name + " " + stamp
	}
	return name
}

func (b *MessageBubble) bubbleStyle() lipgloss.Style {
	if b.theme == nil {
		return lipgloss.NewStyle()
	}
	switch b.Message.Role {
	case model.RoleUser:
		return b.theme.UserBubble
	case model.RoleSystem:
		return b.theme.SystemBubble
	default:
		return b.theme.AssistantBubble
	}
}
