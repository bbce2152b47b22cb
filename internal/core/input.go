package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota
	// Held movement axes
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	// Edge actions, present only on the frame after the key press
	ActionRestart
	ActionQuit

	actionCount
)

var actionNames = [actionCount]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions active during one frame.
// The zero value is an empty frame and frames are copied by value.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an InputFrame holding the given actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func bit(a Action) uint32 {
	if a <= ActionNone || a >= actionCount {
		return 0
	}
	return 1 << uint(a)
}

// Set marks a as active. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	f.bits |= bit(a)
}

// Has reports whether a is active.
func (f InputFrame) Has(a Action) bool {
	b := bit(a)
	return b != 0 && f.bits&b != 0
}

// Clear removes every action.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of f.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Empty reports whether no action is active.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the active actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Axis returns +1, -1 or 0 for a pair of opposing actions. Both held cancel.
func (f InputFrame) Axis(negative, positive Action) float64 {
	var v float64
	if f.Has(positive) {
		v++
	}
	if f.Has(negative) {
		v--
	}
	return v
}
