// vitrine - a terminal guide to cultural events.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/cli"
	"github.com/jeranaias/vitrine-tui/internal/config"
	"github.com/jeranaias/vitrine-tui/internal/ui/chat"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with the cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		exitOnError(cli.HandleAsk(args))
	case cli.CmdChat:
		exitOnError(cli.HandleChat(args))
	case cli.CmdStatus:
		exitOnError(cli.HandleStatus(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.PrintUsage()
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// TUI STARTUP
// =============================================================================

func runTUI(args cli.Args) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "vitrine needs a terminal; try `vitrine ask \"...\"` for scripted use")
		os.Exit(1)
	}

	cfg := config.Global()
	cfg.ApplyEnvOverrides()
	if args.Backend != "" {
		cfg.Backend.URL = args.Backend
	}
	cfg.Validate()

	theme := themeFor(cfg.UI.Theme)

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:        cfg.Backend.URL,
		Timeout:        time.Duration(cfg.Backend.TimeoutSecs) * time.Second,
		MaxRetries:     cfg.Backend.MaxRetries,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
	})

	m := chat.New(theme, client)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Live config reload: the watcher hands fresh configs to the running
	// program; the chat model applies what it cares about.
	if path, err := config.ConfigPath(); err == nil {
		watcher, err := config.NewWatcher(path, config.DefaultDebounce, func(fresh *config.Config) {
			config.SetGlobal(fresh)
			p.Send(chat.ConfigReloadedMsg{Config: fresh})
		})
		if err == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running vitrine: %v\n", err)
		os.Exit(1)
	}
}

// themeFor maps the configured theme name to a concrete theme. "auto"
// follows the terminal background.
func themeFor(name string) *styles.Theme {
	switch name {
	case "dark":
		return styles.NewThemeForMode(true)
	case "light":
		return styles.NewThemeForMode(false)
	default:
		return styles.NewThemeForMode(termenv.HasDarkBackground())
	}
}
