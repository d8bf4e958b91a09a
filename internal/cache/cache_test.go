// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/model"
)

func newTestCache(t *testing.T, max int) *Cache {
	t.Helper()
	c, err := New(max)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleResult() *backend.SearchResult {
	return &backend.SearchResult{
		Events: []*model.Event{
			{EventID: "e1", Title: "Jazz de nuit", Dates: []string{"2025-03-15"}, Times: []string{"21:00"}},
		},
		PromptEvents: []json.RawMessage{json.RawMessage(`{"event_id":"e1"}`)},
		TargetDate:   "2025-03-15",
	}
}

func TestCachePutGet(t *testing.T) {
	c := newTestCache(t, 10)

	require.NoError(t, c.Put("jazz this weekend", sampleResult(), "Two shows stand out."))

	entry, ok := c.Get("jazz this weekend")
	require.True(t, ok)
	assert.Equal(t, "jazz this weekend", entry.Query)
	assert.Equal(t, "Two shows stand out.", entry.Reply)
	require.Len(t, entry.Result.Events, 1)
	assert.Equal(t, "Jazz de nuit", entry.Result.Events[0].Title)
	assert.Equal(t, "2025-03-15", entry.Result.TargetDate)
	require.Len(t, entry.Result.PromptEvents, 1)
}

func TestCacheMiss(t *testing.T) {
	c := newTestCache(t, 10)
	_, ok := c.Get("never asked")
	assert.False(t, ok)
}

func TestCacheNormalizesQueryText(t *testing.T) {
	c := newTestCache(t, 10)
	require.NoError(t, c.Put("Jazz   This Weekend", sampleResult(), "reply"))

	entry, ok := c.Get("  jazz this   weekend ")
	require.True(t, ok, "key should be case- and whitespace-insensitive")
	assert.Equal(t, "reply", entry.Reply)
}

func TestCacheReplaceExisting(t *testing.T) {
	c := newTestCache(t, 10)
	require.NoError(t, c.Put("q", sampleResult(), "first"))
	require.NoError(t, c.Put("q", sampleResult(), "second"))

	entry, ok := c.Get("q")
	require.True(t, ok)
	assert.Equal(t, "second", entry.Reply)
	assert.Equal(t, 1, c.Len())
}

func TestCacheEviction(t *testing.T) {
	c := newTestCache(t, 3)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Put(fmt.Sprintf("query %d", i), sampleResult(), "r"))
	}

	assert.Equal(t, 3, c.Len())

	// Oldest entries are gone, newest survive.
	_, ok := c.Get("query 0")
	assert.False(t, ok)
	_, ok = c.Get("query 4")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	c := newTestCache(t, 10)
	require.NoError(t, c.Put("a", sampleResult(), "r"))
	require.NoError(t, c.Put("b", sampleResult(), "r"))

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestCacheDefaultCap(t *testing.T) {
	c := newTestCache(t, 0)
	assert.Equal(t, DefaultMaxEntries, c.maxEntries)
}
