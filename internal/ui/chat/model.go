// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/vitrine-tui/internal/backend"
	"github.com/jeranaias/vitrine-tui/internal/cache"
	"github.com/jeranaias/vitrine-tui/internal/config"
	"github.com/jeranaias/vitrine-tui/internal/model"
	"github.com/jeranaias/vitrine-tui/internal/reveal"
	"github.com/jeranaias/vitrine-tui/internal/ui/components"
	"github.com/jeranaias/vitrine-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current phase of a query.
type State int

const (
	StateReady     State = iota // Ready for input
	StateSearching              // Event search in flight
	StateChatting               // Guide reply in flight, cards may be staggering in
	StateRevealing              // Reply paragraphs surfacing
	StateError                  // Showing an error
)

// String returns the phase label for the status bar.
func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateChatting:
		return "composing"
	case StateRevealing:
		return "revealing"
	case StateError:
		return "error"
	default:
		return "ready"
	}
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation

	// Backend client and session cache
	client    *backend.Client
	store     *cache.Cache // nil when caching is disabled
	cancelMgr *cancelManager

	// Reveal controllers. Pointers so the sessions survive Bubble Tea's
	// value-copying update loop.
	replyReveal *reveal.Controller
	cardReveal  *reveal.Controller

	// Assistant message currently being revealed
	revealMsgID string
	revealTick  int // frame counter for the trailing indicator

	// Current search result
	events       []*model.Event
	promptEvents []json.RawMessage
	targetDate   string
	eventsAfter  string // ID of the user message the events belong under
	page         int
	pageSize     int

	// Query pending cache storage, keyed until the reply lands
	pendingQuery   string
	pendingResult  *backend.SearchResult
	pendingReplyID string // assistant placeholder awaiting the guide reply

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner

	// Key bindings
	keyMap KeyMap

	// Error state
	lastError *ErrorMsg

	// Status
	backendUp      bool
	statusMsg      string
	showHelp       bool
	showTimestamps bool
}

// New creates a chat model talking to client.
func New(theme *styles.Theme, client *backend.Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about events... (try \"jazz this weekend\")"
	ti.CharLimit = 512
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	cfg := config.Global()

	m := Model{
		state:          StateReady,
		theme:          theme,
		conversation:   model.NewConversation(),
		client:         client,
		cancelMgr:      newCancelManager(),
		replyReveal:    reveal.NewController(cfg.Reveal.ParagraphInterval(), cfg.Reveal.InitialDelay()),
		cardReveal:     reveal.NewController(cfg.Reveal.CardInterval(), cfg.Reveal.InitialDelay()),
		pageSize:       cfg.UI.PageSize,
		viewport:       vp,
		input:          ti,
		spinner:        components.NewSearchSpinner(),
		keyMap:         DefaultKeyMap(),
		showTimestamps: cfg.UI.ShowTimestamps,
	}

	if cfg.Cache.Enabled {
		if store, err := cache.New(cfg.Cache.MaxEntries); err == nil {
			m.store = store
		}
		// A cache that fails to open is not worth surfacing; queries
		// just go to the backend every time.
	}

	return m
}

// Close releases the session cache. Call once the program exits.
func (m *Model) Close() {
	if m.store != nil {
		m.store.Close()
	}
}

// Conversation exposes the transcript, mainly for tests.
func (m *Model) Conversation() *model.Conversation {
	return m.conversation
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.checkBackendCmd(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case ChatReplyMsg:
		return m.handleChatReply(msg)

	case RevealTickMsg:
		return m.handleRevealTick(msg)

	case BackendStatusMsg:
		m.backendUp = msg.Running
		if !msg.Running && m.state == StateReady {
			m.statusMsg = "backend unreachable"
		}
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case ErrorMsg:
		m.lastError = &msg
		m.state = StateError
		m.spinner.Stop()
		return m, nil

	case ClearErrorMsg:
		m.lastError = nil
		if m.state == StateError {
			m.state = StateReady
		}
		return m, nil
	}

	return m.updateComponents(msg)
}

// updateComponents forwards messages the model itself does not consume.
func (m Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.spinner, cmd = m.spinner.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// busy reports whether a query phase is in flight.
func (m *Model) busy() bool {
	return m.state == StateSearching || m.state == StateChatting || m.state == StateRevealing
}

// visibleCardCount returns how many cards the current page holds.
func (m *Model) visibleCardCount() int {
	if len(m.events) == 0 || m.pageSize <= 0 {
		return 0
	}
	start := m.page * m.pageSize
	if start >= len(m.events) {
		return 0
	}
	n := len(m.events) - start
	if n > m.pageSize {
		n = m.pageSize
	}
	return n
}

// pageCount returns the number of event pages.
func (m *Model) pageCount() int {
	if m.pageSize <= 0 || len(m.events) == 0 {
		return 1
	}
	return (len(m.events) + m.pageSize - 1) / m.pageSize
}

// settleReveal freezes the in-flight reply at its revealed prefix and marks
// the message settled. Used on cancel; the remaining paragraphs never appear.
func (m *Model) settleReveal() {
	if m.revealMsgID == "" {
		return
	}
	if msg := m.conversation.GetMessageByID(m.revealMsgID); msg != nil {
		if s := m.replyReveal.Session(); s != nil && s.RevealedCount() < s.Len() {
			msg.Content = joinParagraphs(s.Revealed())
		}
		msg.Revealing = false
	}
	m.replyReveal.Cancel()
	m.revealMsgID = ""
}

// dropPendingReply settles the placeholder left by an abandoned chat phase.
// Its content is still empty, so the settled bubble drops out of the
// transcript instead of lingering with a reveal indicator.
func (m *Model) dropPendingReply() {
	if m.pendingReplyID == "" {
		return
	}
	if msg := m.conversation.GetMessageByID(m.pendingReplyID); msg != nil {
		msg.Revealing = false
	}
	m.pendingReplyID = ""
}

// finishRevealNow completes the in-flight reveals immediately: the full
// reply and every card on the page become visible in one step.
func (m *Model) finishRevealNow() {
	if m.revealMsgID != "" {
		if msg := m.conversation.GetMessageByID(m.revealMsgID); msg != nil {
			msg.Revealing = false
		}
		m.replyReveal.Cancel()
		m.revealMsgID = ""
	}
	m.cardReveal.Cancel()
	if m.state == StateRevealing {
		m.state = StateReady
	}
}

// cardsRevealedCount returns the visible-card cap for the event list, or -1
// when no stagger is in progress.
func (m *Model) cardsRevealedCount() int {
	s := m.cardReveal.Session()
	if s == nil || !s.Active() {
		return -1
	}
	return s.RevealedCount()
}

// now is a seam for rendering relative dates.
var now = time.Now
