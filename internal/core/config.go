package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
	Now      float64 // Platform clock in seconds at the time of Reset
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Frame is everything a game needs to advance by one rendered frame.
type Frame struct {
	Input InputFrame
	Now   float64 // Monotonic wall-clock seconds since the platform started
	DT    float64 // Seconds since the previous frame
}

// Cue is a fire-and-forget request to the audio collaborator.
type Cue int

const (
	CueRunStart     Cue = iota // New run began (countdown starts)
	CueCountdownEnd            // Countdown finished, play horn
	CueHit                     // Ball was hit
	CueLevelUp                 // A level threshold was crossed
	CueGameOver                // Run ended
	CueAmbient                 // Ensure the ambient loop is playing
	CueAmbientStop             // Stop the ambient loop
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueRunStart:
		return "run-start"
	case CueCountdownEnd:
		return "countdown-end"
	case CueHit:
		return "hit"
	case CueLevelUp:
		return "level-up"
	case CueGameOver:
		return "game-over"
	case CueAmbient:
		return "ambient"
	case CueAmbientStop:
		return "ambient-stop"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score in this session
	Hits      int  // Hits taken this run
	Level     int  // Highest level reached this run
	GameOver  bool // Whether the run has ended
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and the cues raised during the tick.
type StepResult struct {
	State GameState
	Cues  []Cue
}
