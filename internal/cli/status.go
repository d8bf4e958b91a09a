// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Backend and configuration health report.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/vitrine-tui/internal/config"
)

// statusOutput is the --json shape of the status report.
type statusOutput struct {
	BackendURL   string `json:"backend_url"`
	BackendUp    bool   `json:"backend_up"`
	BackendError string `json:"backend_error,omitempty"`
	LatencyMs    int64  `json:"latency_ms"`
	ConfigPath   string `json:"config_path"`
	CacheEnabled bool   `json:"cache_enabled"`
	ParagraphMs  int    `json:"reveal_paragraph_ms"`
	CardMs       int    `json:"reveal_card_ms"`
	PageSize     int    `json:"page_size"`
	Version      string `json:"version"`
}

// HandleStatus probes the backend and prints the health report.
func HandleStatus(args Args) error {
	cfg := config.Global()
	client := newClient(args)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	err := client.CheckRunning(ctx)
	latency := time.Since(start)

	configPath, _ := config.ConfigPath()

	out := statusOutput{
		BackendURL:   client.BaseURL(),
		BackendUp:    err == nil,
		LatencyMs:    latency.Milliseconds(),
		ConfigPath:   configPath,
		CacheEnabled: cfg.Cache.Enabled,
		ParagraphMs:  cfg.Reveal.ParagraphMs,
		CardMs:       cfg.Reveal.CardMs,
		PageSize:     cfg.UI.PageSize,
		Version:      Version,
	}
	if err != nil {
		out.BackendError = err.Error()
	}

	if args.JSON {
		return printJSON(out)
	}

	fmt.Printf("vitrine %s\n\n", Version)
	if out.BackendUp {
		fmt.Printf("  backend   ok     %s (%dms)\n", out.BackendURL, out.LatencyMs)
	} else {
		fmt.Printf("  backend   DOWN   %s\n", out.BackendURL)
		fmt.Printf("            %v\n", err)
	}
	fmt.Printf("  config    %s\n", out.ConfigPath)
	fmt.Printf("  cache     enabled=%v max_entries=%d\n", cfg.Cache.Enabled, cfg.Cache.MaxEntries)
	fmt.Printf("  reveal    paragraph=%dms card=%dms delay=%dms\n",
		cfg.Reveal.ParagraphMs, cfg.Reveal.CardMs, cfg.Reveal.InitialDelayMs)
	fmt.Printf("  ui        theme=%s page_size=%d\n", cfg.UI.Theme, cfg.UI.PageSize)

	if !out.BackendUp {
		return fmt.Errorf("backend unreachable")
	}
	return nil
}
