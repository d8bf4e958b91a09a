// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the events search service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotRunning
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
	ErrTypeRateLimited
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning      = &ClientError{Type: ErrTypeNotRunning, Message: "events backend is not reachable"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrBadStatus       = &ClientError{Type: ErrTypeBadStatus, Message: "backend returned an error status"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "backend returned an invalid response"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:5003)
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration

	// MaxRetries for transient failures (default: 3)
	MaxRetries int

	// RetryDelay is the base delay between retries, doubled per attempt
	// (default: 500ms)
	RetryDelay time.Duration

	// RequestsPerSec caps the outbound request rate (default: 4).
	RequestsPerSec float64
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:        "http://127.0.0.1:5003",
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     500 * time.Millisecond,
		RequestsPerSec: 4,
	}
}

// MaxResponseSize is the maximum allowed response body size.
const MaxResponseSize = 4 * 1024 * 1024 // 4MB

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the events backend.
//
// The Client is safe for concurrent use. Requests pass through a shared rate
// limiter so a burst of queries cannot hammer the backend.
//
// Example:
//
//	client := backend.NewClient()
//	if err := client.CheckRunning(ctx); err != nil {
//	    log.Fatal("backend not available:", err)
//	}
//	result, err := client.Search(ctx, "jazz this weekend")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5003"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.RequestsPerSec <= 0 {
		config.RequestsPerSec = 4
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSec), 1),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// OPERATIONS
// =============================================================================

// CheckRunning verifies the backend is reachable and healthy.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "building health request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrNotRunning
	}

	var body healthResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(&body); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "decoding health response", Cause: err}
	}
	if body.Status != "healthy" {
		return ErrNotRunning
	}
	return nil
}

// Search sends a natural-language query to the backend and returns the
// matching events plus the slice the chat endpoint should be grounded on.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	payload := searchRequest{Message: query}

	var body searchResponse
	if err := c.postJSON(ctx, "/search", payload, &body); err != nil {
		return nil, err
	}
	if body.Status != "success" {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: fmt.Sprintf("search failed: %s", body.ErrorText()),
			Cause:   ErrBadStatus,
		}
	}

	return &SearchResult{
		Events:       body.Events,
		PromptEvents: body.PromptEvents,
		TargetDate:   body.TargetDate,
	}, nil
}

// Chat asks the backend for a conversational reply grounded on promptEvents.
// targetDate may be empty when the query had no date component.
func (c *Client) Chat(ctx context.Context, query string, promptEvents []json.RawMessage, targetDate string) (string, error) {
	payload := chatRequest{
		Message:      query,
		PromptEvents: promptEvents,
		TargetDate:   targetDate,
	}

	var body chatResponse
	if err := c.postJSON(ctx, "/chat", payload, &body); err != nil {
		return "", err
	}
	if body.Status != "success" {
		return "", &ClientError{
			Type:    ErrTypeBadStatus,
			Message: fmt.Sprintf("chat failed: %s", body.ErrorText()),
			Cause:   ErrBadStatus,
		}
	}
	return body.Message, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// postJSON posts payload to path and decodes the response into out, retrying
// transient failures with exponential backoff. 4xx responses are not retried;
// the caller's request will not get better by repeating it.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &ClientError{Type: ErrTypeUnknown, Message: "encoding request", Cause: err}
	}

	var lastErr error
	delay := c.config.RetryDelay
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return c.wrapTransportError(ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return c.wrapTransportError(err)
		}

		retry, err := c.doPost(ctx, path, data, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry {
			return err
		}
	}
	return lastErr
}

// doPost performs one POST attempt. The first return value reports whether
// the failure is worth retrying.
func (c *Client) doPost(ctx context.Context, path string, data []byte, out any) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return false, &ClientError{Type: ErrTypeUnknown, Message: "building request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, c.wrapTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, &ClientError{Type: ErrTypeRateLimited, Message: "backend rate limited the request"}
	case resp.StatusCode >= 500:
		return true, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: fmt.Sprintf("backend returned %d for %s", resp.StatusCode, path),
			Cause:   ErrBadStatus,
		}
	case resp.StatusCode >= 400:
		return false, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: fmt.Sprintf("backend rejected %s with %d", path, resp.StatusCode),
			Cause:   ErrBadStatus,
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseSize)).Decode(out); err != nil {
		return false, &ClientError{Type: ErrTypeInvalidResponse, Message: "decoding response", Cause: err}
	}
	return false, nil
}

// wrapTransportError converts transport-level failures into typed errors.
func (c *Client) wrapTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &ClientError{Type: ErrTypeUnknown, Message: "request cancelled", Cause: err}
	default:
		return &ClientError{Type: ErrTypeNotRunning, Message: "events backend is not reachable", Cause: err}
	}
}
