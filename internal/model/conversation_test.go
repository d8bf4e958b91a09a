// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "testing"

func TestConversationAddAndLookup(t *testing.T) {
	c := NewConversation()
	if !c.IsEmpty() {
		t.Fatal("new conversation should be empty")
	}

	u := c.AddUserMessage("jazz this weekend")
	a := c.AddAssistantMessage("Here are a few shows.\nEnjoy!")
	s := c.AddSystemMessage("backend unreachable")

	if c.MessageCount() != 3 {
		t.Fatalf("count = %d, want 3", c.MessageCount())
	}
	if got := c.GetLastMessage(); got != s {
		t.Error("GetLastMessage should return the system message")
	}
	if got := c.GetLastAssistantMessage(); got != a {
		t.Error("GetLastAssistantMessage mismatch")
	}
	if got := c.GetLastUserMessage(); got != u {
		t.Error("GetLastUserMessage mismatch")
	}
	if got := c.GetMessageByID(a.ID); got != a {
		t.Error("GetMessageByID mismatch")
	}
	if c.GetMessageByID("nope") != nil {
		t.Error("unknown ID should return nil")
	}
}

func TestConversationAssistantStartsRevealing(t *testing.T) {
	c := NewConversation()
	a := c.AddAssistantMessage("one\ntwo")
	if !a.Revealing {
		t.Error("assistant messages start in the revealing state")
	}
	if !a.IsAssistant() || a.IsUser() {
		t.Error("role predicates wrong for assistant message")
	}
}

func TestConversationClear(t *testing.T) {
	c := NewConversation()
	c.AddUserMessage("hello")
	c.ClearHistory()
	if !c.IsEmpty() {
		t.Error("ClearHistory should empty the transcript")
	}
}

func TestConversationPrunes(t *testing.T) {
	c := NewConversation()
	for i := 0; i < MaxMessages+25; i++ {
		c.AddUserMessage("q")
	}
	if c.MessageCount() != MaxMessages {
		t.Errorf("count after prune = %d, want %d", c.MessageCount(), MaxMessages)
	}
}

func TestRoleDisplayName(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUser, "You"},
		{RoleAssistant, "Guide"},
		{RoleSystem, "System"},
		{Role("other"), "other"},
	}
	for _, tt := range tests {
		if got := tt.role.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%s) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestMessageIDsUnique(t *testing.T) {
	a := NewUserMessage("a")
	b := NewUserMessage("b")
	if a.ID == "" || a.ID == b.ID {
		t.Error("messages must have unique non-empty IDs")
	}
}
