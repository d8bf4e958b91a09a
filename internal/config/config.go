// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for vitrine.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.vitrine/config.toml, falling back to built-in
// defaults when absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete vitrine configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// Reveal cadence configuration
	Reveal RevealConfig `toml:"reveal"`

	// Session cache configuration
	Cache CacheConfig `toml:"cache"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains the events backend connection settings.
type BackendConfig struct {
	// URL is the backend base URL
	URL string `toml:"url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
	// MaxRetries for transient failures
	MaxRetries int `toml:"max_retries"`
	// RequestsPerSec caps the outbound request rate
	RequestsPerSec float64 `toml:"requests_per_sec"`
}

// RevealConfig contains the reveal scheduler cadence settings.
// All values are clamped into sane ranges by Validate.
type RevealConfig struct {
	// ParagraphMs is the delay between revealed reply paragraphs
	ParagraphMs int `toml:"paragraph_ms"`
	// CardMs is the delay between event cards entering the list
	CardMs int `toml:"card_ms"`
	// InitialDelayMs is the lead time before the first tick
	InitialDelayMs int `toml:"initial_delay_ms"`
}

// ParagraphInterval returns the paragraph cadence as a duration.
func (r RevealConfig) ParagraphInterval() time.Duration {
	return time.Duration(r.ParagraphMs) * time.Millisecond
}

// CardInterval returns the card cadence as a duration.
func (r RevealConfig) CardInterval() time.Duration {
	return time.Duration(r.CardMs) * time.Millisecond
}

// InitialDelay returns the first-tick lead time as a duration.
func (r RevealConfig) InitialDelay() time.Duration {
	return time.Duration(r.InitialDelayMs) * time.Millisecond
}

// CacheConfig contains session cache configuration.
type CacheConfig struct {
	// Enabled controls whether the in-memory query cache is active
	Enabled bool `toml:"enabled"`
	// MaxEntries is the maximum number of cached queries
	MaxEntries int `toml:"max_entries"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// PageSize is the number of event cards per page
	PageSize int `toml:"page_size"`
	// ShowTimestamps displays message timestamps in the transcript
	ShowTimestamps bool `toml:"show_timestamps"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:            "http://127.0.0.1:5003",
			TimeoutSecs:    30,
			MaxRetries:     3,
			RequestsPerSec: 4,
		},

		Reveal: RevealConfig{
			ParagraphMs:    700,
			CardMs:         120,
			InitialDelayMs: 100,
		},

		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 64,
		},

		UI: UIConfig{
			Theme:          "auto",
			PageSize:       6,
			ShowTimestamps: true,
		},
	}
}

// =============================================================================
// FILE LOCATIONS
// =============================================================================

// ConfigDir returns the vitrine configuration directory (~/.vitrine).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".vitrine"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, applies environment overrides, and validates.
// A missing file is not an error; defaults are used.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a config file from an explicit path, applying defaults,
// environment overrides, and validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.Validate()
	return cfg, nil
}

// Save writes the config to the default path atomically.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the config as TOML via a temp-file rename.
func SaveToPath(cfg *Config, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
//   - VITRINE_BACKEND_URL: overrides backend.url
//   - VITRINE_THEME: overrides ui.theme
//   - VITRINE_PAGE_SIZE: overrides ui.page_size
//   - VITRINE_PARAGRAPH_MS: overrides reveal.paragraph_ms
//   - VITRINE_CACHE: "0"/"false" disables the session cache
func (c *Config) ApplyEnvOverrides() {
	if url := os.Getenv("VITRINE_BACKEND_URL"); url != "" {
		c.Backend.URL = url
	}
	if theme := os.Getenv("VITRINE_THEME"); theme != "" {
		c.UI.Theme = theme
	}
	if size := os.Getenv("VITRINE_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.UI.PageSize = n
		}
	}
	if ms := os.Getenv("VITRINE_PARAGRAPH_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil {
			c.Reveal.ParagraphMs = n
		}
	}
	if v := os.Getenv("VITRINE_CACHE"); v == "0" || v == "false" {
		c.Cache.Enabled = false
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate clamps out-of-range values to sane bounds. Invalid values do not
// fail startup; they are corrected silently so a hand-edited config never
// leaves the app unusable.
func (c *Config) Validate() {
	if c.Backend.URL == "" {
		c.Backend.URL = Default().Backend.URL
	}
	c.Backend.TimeoutSecs = clampInt(c.Backend.TimeoutSecs, 5, 120)
	c.Backend.MaxRetries = clampInt(c.Backend.MaxRetries, 0, 10)
	if c.Backend.RequestsPerSec <= 0 {
		c.Backend.RequestsPerSec = Default().Backend.RequestsPerSec
	}

	c.Reveal.ParagraphMs = clampInt(c.Reveal.ParagraphMs, 100, 5000)
	c.Reveal.CardMs = clampInt(c.Reveal.CardMs, 30, 2000)
	c.Reveal.InitialDelayMs = clampInt(c.Reveal.InitialDelayMs, 0, 2000)

	c.Cache.MaxEntries = clampInt(c.Cache.MaxEntries, 1, 1024)

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		c.UI.Theme = "auto"
	}
	c.UI.PageSize = clampInt(c.UI.PageSize, 1, 50)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu  sync.RWMutex
	globalCfg *Config
)

// Global returns the process-wide config, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalCfg != nil {
		defer globalMu.RUnlock()
		return globalCfg
	}
	globalMu.RUnlock()

	cfg, err := Load()
	if err != nil {
		cfg = Default()
	}
	SetGlobal(cfg)
	return cfg
}

// SetGlobal replaces the process-wide config.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = cfg
}

// ReloadGlobal re-reads the config file and replaces the global config.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the global config so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalCfg = nil
}
