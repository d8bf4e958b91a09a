// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reveal

import (
	"reflect"
	"strings"
	"testing"
)

// =============================================================================
// UNIT DERIVATION TESTS
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain paragraphs",
			content: "first\nsecond\nthird",
			want:    []string{"first", "second", "third"},
		},
		{
			name:    "duplicates and blanks dropped",
			content: "A\nA\nB\n\nC",
			want:    []string{"A", "B", "C"},
		},
		{
			name:    "surrounding whitespace trimmed",
			content: "  hello  \n\tworld\t",
			want:    []string{"hello", "world"},
		},
		{
			name:    "duplicate after trim",
			content: "x\n  x  \ny",
			want:    []string{"x", "y"},
		},
		{
			name:    "empty input",
			content: "",
			want:    []string{},
		},
		{
			name:    "whitespace only",
			content: "  \n\t\n   \n",
			want:    []string{},
		},
		{
			name:    "single line",
			content: "only",
			want:    []string{"only"},
		},
		{
			name:    "windows line endings trim the CR",
			content: "a\r\nb\r\n",
			want:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestSplitIdempotent(t *testing.T) {
	inputs := []string{
		"A\nA\nB\n\nC",
		"  padded  \npadded\nother",
		"",
		"one",
		"a\nb\nc\na\nb",
	}

	for _, in := range inputs {
		once := Split(in)
		twice := Split(strings.Join(once, "\n"))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Split not idempotent for %q: once=%v twice=%v", in, once, twice)
		}
	}
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestSessionRevealsPrefixInOrder(t *testing.T) {
	s := NewSession("A\nB\nC")

	if !s.Active() {
		t.Fatal("new session with units should be active")
	}
	if s.RevealedCount() != 0 {
		t.Fatalf("expected 0 revealed before first tick, got %d", s.RevealedCount())
	}

	want := []string{"A", "B", "C"}
	for k := 1; k <= len(want); k++ {
		if changed := s.Tick(); !changed {
			t.Fatalf("tick %d should change visible prefix", k)
		}
		got := s.Revealed()
		if !reflect.DeepEqual(got, want[:k]) {
			t.Errorf("after tick %d revealed = %v, want %v", k, got, want[:k])
		}
	}

	if s.Active() {
		t.Error("session should be terminal after revealing all units")
	}
}

func TestSessionExactlyNTicksToTerminal(t *testing.T) {
	content := "u1\nu2\nu3\nu4\nu5"
	s := NewSession(content)
	n := s.Len()

	ticks := 0
	for s.Active() {
		s.Tick()
		ticks++
		if ticks > n {
			t.Fatal("session did not terminate after N ticks")
		}
	}

	if ticks != n {
		t.Errorf("expected exactly %d ticks to terminal state, got %d", n, ticks)
	}
	if s.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", s.Remaining())
	}
}

func TestSessionTickPastEndIsNoOp(t *testing.T) {
	s := NewSession("A\nB")
	s.Tick()
	s.Tick()

	before := s.Revealed()
	for i := 0; i < 3; i++ {
		if changed := s.Tick(); changed {
			t.Error("tick past end must not change visible prefix")
		}
	}
	if !reflect.DeepEqual(s.Revealed(), before) {
		t.Errorf("revealed prefix changed after terminal: %v != %v", s.Revealed(), before)
	}
	if s.Active() {
		t.Error("session should stay inactive after extra ticks")
	}
}

func TestSessionEmptyContentIsTerminal(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\n\n", " \n\t\n"} {
		s := NewSession(content)
		if s.Active() {
			t.Errorf("session for %q should start inactive", content)
		}
		if s.Len() != 0 {
			t.Errorf("session for %q should have 0 units, got %d", content, s.Len())
		}
		if changed := s.Tick(); changed {
			t.Errorf("tick on empty session for %q should be a no-op", content)
		}
		if got := s.Revealed(); len(got) != 0 {
			t.Errorf("empty session revealed %v, want nothing", got)
		}
	}
}

func TestSessionCancelIdempotent(t *testing.T) {
	s := NewSession("A\nB\nC")
	s.Tick()

	s.Cancel()
	if s.Active() {
		t.Error("cancel should deactivate the session")
	}
	revealed := s.Revealed()

	// Repeated cancels, including on a terminal session, change nothing.
	s.Cancel()
	s.Cancel()
	if s.Active() {
		t.Error("repeated cancel should keep session inactive")
	}
	if !reflect.DeepEqual(s.Revealed(), revealed) {
		t.Error("cancel must not alter the revealed prefix")
	}
}

func TestSessionCancelStopsReveal(t *testing.T) {
	s := NewSession("A\nB\nC")
	s.Tick()
	s.Cancel()

	if changed := s.Tick(); changed {
		t.Error("tick after cancel must not reveal more units")
	}
	if got := s.Revealed(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("revealed after cancel = %v, want [A]", got)
	}
	if s.Active() {
		t.Error("session must not reactivate")
	}
}

func TestSessionRevealedIsACopy(t *testing.T) {
	s := NewSession("A\nB")
	s.Tick()

	got := s.Revealed()
	got[0] = "mutated"

	if s.Revealed()[0] != "A" {
		t.Error("Revealed must return a copy, not the backing slice")
	}
}

func TestSessionSourceIdentity(t *testing.T) {
	content := "A\nA\nB"
	s := NewSession(content)
	if s.Source() != content {
		t.Errorf("Source() = %q, want %q", s.Source(), content)
	}
}

func TestCountSession(t *testing.T) {
	s := NewCountSession(3)
	if s.Len() != 3 || !s.Active() {
		t.Fatalf("Len=%d Active=%v, want 3 active units", s.Len(), s.Active())
	}

	for i := 1; i <= 3; i++ {
		if !s.Tick() {
			t.Fatalf("tick %d should advance", i)
		}
		if s.RevealedCount() != i {
			t.Fatalf("after tick %d RevealedCount = %d", i, s.RevealedCount())
		}
	}
	if s.Active() {
		t.Error("session should be terminal after the final tick")
	}
	if s.Tick() {
		t.Error("tick past the end must be a no-op")
	}
}

func TestCountSessionZeroAndNegative(t *testing.T) {
	for _, n := range []int{0, -4} {
		s := NewCountSession(n)
		if s.Active() || s.Len() != 0 {
			t.Errorf("NewCountSession(%d): Active=%v Len=%d, want inert empty session", n, s.Active(), s.Len())
		}
	}
}
