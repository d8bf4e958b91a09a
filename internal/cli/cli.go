// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for vitrine.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	Backend string

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after the command word
	Raw []string
}

const usageText = `vitrine - terminal guide to cultural events

Vitrine is a chat front-end for an events search backend. Ask in plain
language and get matching concerts, plays, dance, and exhibitions plus a
short guided reply.

Usage:
  vitrine                     Start the TUI (default)
  vitrine ask "question"      One-shot query, markdown output
  vitrine chat                Interactive chat without the TUI
  vitrine status, s           Backend and configuration health
  vitrine config [show|set|path]  Configuration management
  vitrine version, -v         Version information
  vitrine help, -h            This help

Flags:
  --backend URL    Override the backend base URL
  --json           Machine-readable output (ask, status, version)
  --quiet          Suppress decorative output

Examples:
  vitrine ask "jazz this weekend"
  vitrine ask --json "theatre for kids next saturday"
  vitrine config set reveal.paragraph_ms 500
  VITRINE_BACKEND_URL=http://localhost:5003 vitrine

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is Parse on explicit argv, split out for tests.
func parseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		parser := NewArgParser(remaining)
		args.JSON = args.JSON || parser.BoolFlag("json")
		args.Query = strings.Join(parser.PositionalFrom(0), " ")
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "status", "s":
		parser := NewArgParser(remaining)
		args.JSON = args.JSON || parser.BoolFlag("json")
		return CmdStatus, args

	case "config":
		parser := NewArgParser(remaining)
		args.Subcommand = parser.Subcommand()
		args.ConfigKey = parser.Positional(1)
		args.ConfigVal = parser.Positional(2)
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// An unknown word is treated as an ask query, so
		// `vitrine jazz tonight` just works.
		args.Query = strings.Join(append([]string{cmd}, remaining...), " ")
		return CmdAsk, args
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(argv))

	i := 0
	for i < len(argv) {
		switch arg := argv[i]; arg {
		case "--quiet", "-q":
			args.Quiet = true
			i++
		case "--verbose":
			args.Verbose = true
			i++
		case "--json":
			args.JSON = true
			i++
		case "--backend":
			if i+1 < len(argv) {
				args.Backend = argv[i+1]
				i += 2
			} else {
				i++
			}
		default:
			if strings.HasPrefix(arg, "--backend=") {
				args.Backend = strings.TrimPrefix(arg, "--backend=")
				i++
				continue
			}
			remaining = append(remaining, arg)
			i++
		}
	}

	return remaining, args
}

// =============================================================================
// VERSION
// =============================================================================

// HandleVersion prints version information.
func HandleVersion(args Args) {
	if args.JSON {
		out, _ := json.MarshalIndent(map[string]string{
			"version":    Version,
			"git_commit": GitCommit,
			"build_date": BuildDate,
			"go_version": runtime.Version(),
			"platform":   runtime.GOOS + "/" + runtime.GOARCH,
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("vitrine version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
	fmt.Printf("  Go version: %s\n", runtime.Version())
}
