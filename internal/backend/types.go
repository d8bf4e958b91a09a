// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the events search service.
package backend

import (
	"encoding/json"

	"github.com/jeranaias/vitrine-tui/internal/model"
)

// =============================================================================
// FALLBACK COPY
// =============================================================================

// Fixed strings the hosting layer substitutes when the backend cannot
// produce a reply. They flow through the reveal path like any other content.
const (
	// FallbackNoEvents is shown when a search matched nothing.
	FallbackNoEvents = "Sorry, I couldn't find any events matching your search. Try rephrasing it, or ask about another date."

	// FallbackFailure is shown when a request failed outright.
	FallbackFailure = "Sorry, something went wrong while handling your request. Please try again in a moment."
)

// =============================================================================
// RESULTS
// =============================================================================

// SearchResult is the decoded outcome of one /search call.
type SearchResult struct {
	// Events is the full, display-ready event list (backend-grouped, ranked).
	Events []*model.Event

	// PromptEvents is the backend's relevance cut, kept as raw JSON so it can
	// be passed back to /chat byte-for-byte.
	PromptEvents []json.RawMessage

	// TargetDate is the date the backend extracted from the query
	// (YYYY-MM-DD), empty when the query had no date component.
	TargetDate string
}

// HasEvents reports whether the search matched anything.
func (r *SearchResult) HasEvents() bool {
	return r != nil && len(r.Events) > 0
}

// =============================================================================
// WIRE TYPES
// =============================================================================

type searchRequest struct {
	Message string `json:"message"`
}

type searchResponse struct {
	Events       []*model.Event    `json:"events"`
	PromptEvents []json.RawMessage `json:"prompt_events"`
	TargetDate   string            `json:"target_date"`
	Status       string            `json:"status"`
	Error        string            `json:"error"`
}

func (r *searchResponse) ErrorText() string {
	if r.Error != "" {
		return r.Error
	}
	return "unknown error"
}

type chatRequest struct {
	Message      string            `json:"message"`
	PromptEvents []json.RawMessage `json:"prompt_events"`
	TargetDate   string            `json:"target_date,omitempty"`
}

type chatResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Error   string `json:"error"`
}

func (r *chatResponse) ErrorText() string {
	if r.Error != "" {
		return r.Error
	}
	return "unknown error"
}

type healthResponse struct {
	Status string `json:"status"`
}
