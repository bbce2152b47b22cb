package dodge

import (
	"fmt"

	"github.com/vovakirdan/dodgeball/internal/core"
)

// Run rules.
const (
	MaxHits           = 3
	FlashDuration     = 15  // Frames
	CountdownDuration = 3.0 // Seconds
	ScoreInterval     = 1.0 // Seconds of play per point
)

// Phase is the run's state machine position.
type Phase int

const (
	PhaseCountdown Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Run is the mutable aggregate for one run plus the session highscore.
type Run struct {
	phase Phase

	ballPos core.Vec2

	score     int
	hitCount  int
	highscore int // Survives reset
	lastLevel int // Watermark, only increases within a run

	flashTimer     int     // Frames left of the hit flash
	elapsed        float64 // Seconds toward the next point
	countdownStart float64 // Clock value when the countdown began
	playStart      float64 // Clock value when play began
	playEnd        float64 // Clock value when the run ended
	frame          uint64
}

// reset starts a new run at clock now. The highscore is kept.
func (r *Run) reset(ballStart core.Vec2, now float64) {
	r.phase = PhaseCountdown
	r.ballPos = ballStart
	r.score = 0
	r.hitCount = 0
	r.lastLevel = 0
	r.flashTimer = 0
	r.elapsed = 0
	r.countdownStart = now
	r.playStart = 0
	r.playEnd = 0
	r.frame = 0
}

// level returns the current tier.
func (r *Run) level() Level {
	return LevelAt(r.lastLevel)
}

// countdownValue returns the whole seconds left in the countdown, at least 1.
func (r *Run) countdownValue(now float64) int {
	left := int(CountdownDuration) - int(now-r.countdownStart)
	return max(left, 1)
}

// checkInvariants panics if the run has reached an impossible state.
func (r *Run) checkInvariants() {
	if r.hitCount < 0 || r.hitCount > MaxHits {
		panic(fmt.Sprintf("dodge: hit count %d outside [0, %d]", r.hitCount, MaxHits))
	}
	if r.hitCount == MaxHits && r.phase != PhaseGameOver {
		panic(fmt.Sprintf("dodge: %d hits but phase is %s", r.hitCount, r.phase))
	}
	if r.highscore < r.score {
		panic(fmt.Sprintf("dodge: highscore %d below score %d", r.highscore, r.score))
	}
}
