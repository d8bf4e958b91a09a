// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the vitrine TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, assistant messages, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, info, user highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, healthy backend indicator
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, critical alerts
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, in-flight request indicator
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Blue tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1D4ED8"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Assistant message bubble - Purple tones
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#F3E8FF", Dark: "#312E81"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#EDE9FE"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#8B5CF6"}

// System message bubble - Muted tones
var SystemBubbleBg = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1E1E2E"}
var SystemBubbleFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
var SystemBubbleBorder = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// =============================================================================
// EVENT CARD COLORS
// =============================================================================

// CardBorder - Default event card border
var CardBorder = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

// CardTitle - Event title accent
var CardTitle = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// CardDate - Occurrence date/time
var CardDate = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// DisciplineTag - Discipline badge background
var DisciplineTag = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#4C1D95"}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderSuccess renders a success message with a leading check mark.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Emerald).Render("[ok] " + message)
}

// RenderError renders an error message with a leading cross.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Rose).Render("[x] " + message)
}

// RenderWarning renders a warning message.
func RenderWarning(message string) string {
	return lipgloss.NewStyle().Foreground(Amber).Render("[!] " + message)
}

// RenderInfo renders an informational message.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().Foreground(Cyan).Render(message)
}
