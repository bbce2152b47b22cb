package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dodgeball/internal/core"
)

// DefaultHoldDuration is how long a movement key counts as held after
// its last key event. Terminals report repeats, never releases.
const DefaultHoldDuration = 120 * time.Millisecond

// KeyMap defines the key bindings for a game session.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Restart    key.Binding
	History    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Restart, k.History, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Restart, k.History, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: arrows or WASD to move.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Restart: key.NewBinding(
			key.WithKeys(" ", "r"),
			key.WithHelp("space/r", "play again"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "session runs"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp, false
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown, false
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// HoldTracker emulates held keys from key press events.
// A movement action is active while its last press is within the hold window.
// Other actions are edge-triggered: active for exactly one frame.
type HoldTracker struct {
	hold    time.Duration
	last    map[core.Action]time.Time
	pending core.InputFrame
}

// NewHoldTracker creates a tracker. A non-positive hold uses DefaultHoldDuration.
func NewHoldTracker(hold time.Duration) *HoldTracker {
	if hold <= 0 {
		hold = DefaultHoldDuration
	}
	return &HoldTracker{
		hold: hold,
		last: make(map[core.Action]time.Time),
	}
}

// isMovement reports whether a is one of the four held axes.
func isMovement(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}

// Press records a key event for a at time t.
func (h *HoldTracker) Press(a core.Action, t time.Time) {
	if a == core.ActionNone {
		return
	}
	if isMovement(a) {
		h.last[a] = t
		return
	}
	h.pending.Set(a)
}

// Held reports whether a movement action is held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) < h.hold
}

// Frame returns the input for the frame at now and consumes edge actions.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	f := h.pending
	h.pending.Clear()
	for a := range h.last {
		if h.Held(a, now) {
			f.Set(a)
		}
	}
	return f
}

// Reset forgets every press.
func (h *HoldTracker) Reset() {
	clear(h.last)
	h.pending.Clear()
}
