// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
)

// =============================================================================
// PAGER COMPONENT
// =============================================================================

// Pager renders the page position footer for the event list.
type Pager struct {
	Page  int // zero-based
	Pages int
	Total int // total events across all pages
	theme *styles.Theme
}

// NewPager creates a pager footer.
func NewPager(page, pages, total int, theme *styles.Theme) *Pager {
	if pages < 1 {
		pages = 1
	}
	return &Pager{Page: page, Pages: pages, Total: total, theme: theme}
}

// View renders the footer, or "" when a single page holds everything.
func (p *Pager) View() string {
	if p.Pages <= 1 {
		return ""
	}
	label := "events"
	if p.Total == 1 {
		label = "event"
	}
	text := fmt.Sprintf("page %d/%d · %d %s · C-n/C-p to flip", p.Page+1, p.Pages, p.Total, label)
	if p.theme != nil {
		return p.theme.PagerText.Render(text)
	}
	return text
}
