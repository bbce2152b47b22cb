package dodge

import "github.com/vovakirdan/dodgeball/internal/core"

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventRunStarted    EventKind = iota // A fresh run entered the countdown
	EventCountdownTick                  // The displayed countdown number changed
	EventPlayStarted                    // Countdown finished
	EventScored                         // Score went up by one
	EventLevelUp                        // A level threshold was crossed
	EventHit                            // An obstacle hit the ball
	EventGameOver                       // Hit limit reached
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventRunStarted:
		return "run_started"
	case EventCountdownTick:
		return "countdown_tick"
	case EventPlayStarted:
		return "play_started"
	case EventScored:
		return "scored"
	case EventLevelUp:
		return "level_up"
	case EventHit:
		return "hit"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a single state transition. Value depends on Kind: the new
// countdown number, score, level index, pool slot or final score.
type Event struct {
	Kind  EventKind
	Value int
}

// FrameResult is everything a frame produced for the presentation and
// audio collaborators.
type FrameResult struct {
	Events     []Event
	Cues       []core.Cue
	Escapes    int
	Background core.Background
}

func (r *FrameResult) emit(kind EventKind, value int) {
	r.Events = append(r.Events, Event{Kind: kind, Value: value})
}

func (r *FrameResult) cue(c core.Cue) {
	r.Cues = append(r.Cues, c)
}

// Has reports whether an event of kind occurred.
func (r FrameResult) Has(kind EventKind) bool {
	return r.Count(kind) > 0
}

// Count returns how many events of kind occurred.
func (r FrameResult) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
