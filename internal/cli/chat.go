// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive REPL for terminals where the full TUI is unwanted,
// with liner-backed input history.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/config"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with persisted input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line with history navigation.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// HandleChat runs the interactive REPL.
func HandleChat(args Args) error {
	client := newClient(args)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := client.CheckRunning(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: backend unreachable at %s\n", client.BaseURL())
	}

	input := NewChatCLI()
	defer input.Close()

	if !args.Quiet {
		fmt.Println("vitrine chat - ask about events, /quit to leave")
	}

	for {
		line, err := input.ReadInput("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return nil
			}
			// EOF or terminal error ends the session.
			fmt.Println()
			return nil
		}

		query := strings.TrimSpace(line)
		switch query {
		case "":
			continue
		case "/quit", "/exit", "/q":
			return nil
		case "/help":
			fmt.Println("ask in plain language; /quit to leave")
			continue
		}

		if err := runReplQuery(client, query, args.Quiet); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// runReplQuery runs one search+reply round trip and prints the outcome.
func runReplQuery(client *backend.Client, query string, quiet bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	result, err := client.Search(ctx, query)
	if err != nil {
		fmt.Println(backend.FallbackFailure)
		return err
	}
	if !result.HasEvents() {
		fmt.Println(backend.FallbackNoEvents)
		return nil
	}

	orderEvents(result, time.Now())
	if !quiet {
		printEventSummary(result, time.Now())
	}

	reply, err := client.Chat(ctx, query, result.PromptEvents, result.TargetDate)
	if err != nil {
		fmt.Println(backend.FallbackFailure)
		return err
	}

	fmt.Print(renderMarkdown(reply))
	return nil
}
