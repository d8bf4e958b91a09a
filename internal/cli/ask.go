// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot query handler: search, reply, markdown output.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/config"
	"github.com/jeranaias/vitrine-tui/internal/model"
)

// askTimeout bounds the whole search+reply round trip.
const askTimeout = 90 * time.Second

// markdownRenderer is the glamour renderer for reply output, lazily built.
var markdownRenderer *glamour.TermRenderer

func renderMarkdown(text string) string {
	if markdownRenderer == nil {
		var err error
		markdownRenderer, err = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return text
		}
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

// askOutput is the --json shape of a one-shot query.
type askOutput struct {
	Query      string         `json:"query"`
	TargetDate string         `json:"target_date,omitempty"`
	Events     []*model.Event `json:"events"`
	Reply      string         `json:"reply"`
}

// newClient builds the backend client, honoring the --backend override.
func newClient(args Args) *backend.Client {
	cfg := config.Global()
	clientCfg := &backend.ClientConfig{
		BaseURL:        cfg.Backend.URL,
		Timeout:        time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		MaxRetries:     cfg.Backend.MaxRetries,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
	}
	if args.Backend != "" {
		clientCfg.BaseURL = args.Backend
	}
	return backend.NewClientWithConfig(clientCfg)
}

// HandleAsk runs one query end to end and prints the result.
func HandleAsk(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return fmt.Errorf("ask requires a query, e.g.: vitrine ask \"jazz this weekend\"")
	}

	client := newClient(args)
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	if !args.Quiet && !args.JSON {
		fmt.Fprintf(os.Stderr, "searching events...\n")
	}

	result, err := client.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if !result.HasEvents() {
		if args.JSON {
			return printJSON(askOutput{Query: query, Events: []*model.Event{}, Reply: backend.FallbackNoEvents})
		}
		fmt.Println(backend.FallbackNoEvents)
		return nil
	}

	orderEvents(result, time.Now())

	if !args.Quiet && !args.JSON {
		fmt.Fprintf(os.Stderr, "composing reply...\n")
	}

	reply, err := client.Chat(ctx, query, result.PromptEvents, result.TargetDate)
	if err != nil {
		// The matches are still worth printing without the reply.
		reply = backend.FallbackFailure
	}

	if args.JSON {
		return printJSON(askOutput{
			Query:      query,
			TargetDate: result.TargetDate,
			Events:     result.Events,
			Reply:      reply,
		})
	}

	printEventSummary(result, time.Now())
	fmt.Print(renderMarkdown(reply))
	return nil
}

// orderEvents normalizes a result for display the same way the TUI does:
// duplicates removed, chronological when the query carried a date,
// alphabetical otherwise. The prompt cut stays untouched.
func orderEvents(result *backend.SearchResult, now time.Time) {
	result.Events = model.Dedupe(result.Events)
	if result.TargetDate == "" {
		model.SortByTitle(result.Events)
	} else {
		model.SortByDate(result.Events, now)
	}
}

// printEventSummary prints a compact listing of the matched events.
func printEventSummary(result *backend.SearchResult, now time.Time) {
	if result.TargetDate != "" {
		fmt.Printf("%s\n\n", model.FormatTargetDate(result.TargetDate, now))
	}

	for i, event := range result.Events {
		when := ""
		if t, ok := event.NextOccurrence(now); ok {
			when = t.Format("Mon, Jan 2 15:04")
		}
		fmt.Printf("%2d. %s\n", i+1, event.Title)
		if when != "" || event.Location() != "" {
			fmt.Printf("    %s\n", strings.TrimSpace(when+"  "+event.Location()))
		}
		if event.Price != "" {
			fmt.Printf("    %s\n", event.Price)
		}
	}
	fmt.Println()
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
