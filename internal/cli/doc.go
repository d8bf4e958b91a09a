// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the non-TUI command surface of vitrine.

The default invocation starts the full-screen TUI; everything else runs
through the handlers here:

	vitrine                    Start TUI (default)
	vitrine ask "question"     One-shot query, markdown output
	vitrine chat               Interactive REPL without the TUI
	vitrine status             Backend and config health
	vitrine config [show|set]  Configuration management
	vitrine version            Version information

Handlers print to stdout and return errors to main for the exit code.
*/
package cli
