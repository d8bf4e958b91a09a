// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The `vitrine config` command: show, set, path.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/vitrine-tui/internal/config"
)

// HandleConfig routes the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	default:
		return fmt.Errorf("unknown config subcommand %q (want show, set, or path)", args.Subcommand)
	}
}

// configShow prints the effective configuration.
func configShow() error {
	cfg := config.Global()
	path, _ := config.ConfigPath()

	fmt.Printf("config file: %s\n\n", path)
	fmt.Printf("[backend]\n")
	fmt.Printf("  url              = %s\n", cfg.Backend.URL)
	fmt.Printf("  timeout_secs     = %d\n", cfg.Backend.TimeoutSecs)
	fmt.Printf("  max_retries      = %d\n", cfg.Backend.MaxRetries)
	fmt.Printf("  requests_per_sec = %g\n", cfg.Backend.RequestsPerSec)
	fmt.Printf("[reveal]\n")
	fmt.Printf("  paragraph_ms     = %d\n", cfg.Reveal.ParagraphMs)
	fmt.Printf("  card_ms          = %d\n", cfg.Reveal.CardMs)
	fmt.Printf("  initial_delay_ms = %d\n", cfg.Reveal.InitialDelayMs)
	fmt.Printf("[cache]\n")
	fmt.Printf("  enabled          = %v\n", cfg.Cache.Enabled)
	fmt.Printf("  max_entries      = %d\n", cfg.Cache.MaxEntries)
	fmt.Printf("[ui]\n")
	fmt.Printf("  theme            = %s\n", cfg.UI.Theme)
	fmt.Printf("  page_size        = %d\n", cfg.UI.PageSize)
	fmt.Printf("  show_timestamps  = %v\n", cfg.UI.ShowTimestamps)
	return nil
}

// configSet updates one key and saves the file. Keys use the section.name
// form shown by `config show`, e.g. reveal.paragraph_ms.
func configSet(key, value string) error {
	if key == "" || value == "" {
		return fmt.Errorf("usage: vitrine config set <section.key> <value>")
	}

	cfg := config.Global()
	if err := applyConfigKey(cfg, key, value); err != nil {
		return err
	}

	cfg.Validate()
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	config.SetGlobal(cfg)

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

// applyConfigKey writes one string value into its typed config field.
func applyConfigKey(cfg *config.Config, key, value string) error {
	intVal := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s needs an integer, got %q", key, value)
		}
		return n, nil
	}
	boolVal := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s needs true or false, got %q", key, value)
		}
		return b, nil
	}

	var err error
	switch strings.ToLower(key) {
	case "backend.url":
		cfg.Backend.URL = value
	case "backend.timeout_secs":
		cfg.Backend.TimeoutSecs, err = intVal()
	case "backend.max_retries":
		cfg.Backend.MaxRetries, err = intVal()
	case "reveal.paragraph_ms":
		cfg.Reveal.ParagraphMs, err = intVal()
	case "reveal.card_ms":
		cfg.Reveal.CardMs, err = intVal()
	case "reveal.initial_delay_ms":
		cfg.Reveal.InitialDelayMs, err = intVal()
	case "cache.enabled":
		cfg.Cache.Enabled, err = boolVal()
	case "cache.max_entries":
		cfg.Cache.MaxEntries, err = intVal()
	case "ui.theme":
		if value != "dark" && value != "light" && value != "auto" {
			return fmt.Errorf("ui.theme must be dark, light, or auto")
		}
		cfg.UI.Theme = value
	case "ui.page_size":
		cfg.UI.PageSize, err = intVal()
	case "ui.show_timestamps":
		cfg.UI.ShowTimestamps, err = boolVal()
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return err
}
