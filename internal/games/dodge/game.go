// Package dodge implements the dodgeball game.
// The player steers a ball around a bordered arena, avoiding falling
// circles. One point is scored per second survived; the third hit ends the run.
package dodge

import (
	"github.com/vovakirdan/dodgeball/internal/config"
	"github.com/vovakirdan/dodgeball/internal/core"
	"github.com/vovakirdan/dodgeball/internal/registry"
)

// GameID is the registry identifier.
const GameID = "dodgeball"

// sessionConfig is applied to every game created through the registry.
var sessionConfig = config.Default()

// SetConfig sets the configuration used by New. Call before creating games.
func SetConfig(cfg config.DodgeConfig) {
	sessionConfig = cfg
}

// Game implements the dodgeball logic.
type Game struct {
	cfg   config.DodgeConfig
	arena Arena
	pool  *Pool
	run   Run

	now           float64 // Clock of the latest frame
	lastCountdown int     // Countdown number already announced
	pending       FrameResult
}

// New creates a game using the configuration set by SetConfig.
func New() *Game {
	return NewWithConfig(sessionConfig)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.DodgeConfig) *Game {
	return &Game{
		cfg:   cfg,
		arena: ArenaFromConfig(cfg.Arena),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.cfg.Display.Title != "" {
		return g.cfg.Display.Title
	}
	return "Dodgeball"
}

// Reset seeds the random source from cfg and starts a new run.
// The session highscore is kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.ResetWithSource(cfg, NewSeededSource(cfg.Seed))
}

// ResetWithSource is Reset with an explicit random source.
func (g *Game) ResetWithSource(cfg core.RuntimeConfig, rnd RandomSource) {
	g.pool = NewPool(g.arena, rnd)
	g.pending = FrameResult{}
	g.startRun(cfg.Now, &g.pending)
}

// ballStart returns the ball position at the start of a run.
func (g *Game) ballStart() core.Vec2 {
	return core.Vec2{
		X: g.arena.Width / 2,
		Y: g.arena.Height - g.cfg.Ball.StartOffset,
	}
}

// startRun resets the run aggregate and the pool.
func (g *Game) startRun(now float64, res *FrameResult) {
	g.run.reset(g.ballStart(), now)
	g.pool.RespawnAll()
	g.now = now
	g.lastCountdown = 0
	res.emit(EventRunStarted, 0)
	res.cue(core.CueRunStart)
}

// Step advances the game by one frame.
func (g *Game) Step(f core.Frame) core.StepResult {
	res := g.Update(f)
	return core.StepResult{State: g.State(), Cues: res.Cues}
}

// Update advances the game by one frame and reports what happened.
func (g *Game) Update(f core.Frame) FrameResult {
	res := g.pending
	g.pending = FrameResult{}

	g.now = f.Now
	g.run.frame++
	if g.run.flashTimer > 0 {
		g.run.flashTimer--
	}

	switch g.run.phase {
	case PhaseGameOver:
		// Only restart is accepted until a new run begins
		if f.Input.Has(core.ActionRestart) {
			g.startRun(f.Now, &res)
		}
		res.Background = g.background()
		return res
	case PhaseCountdown:
		g.updateCountdown(f.Now, &res)
	case PhasePlaying:
		g.updateScore(f.DT, &res)
		res.cue(core.CueAmbient)
	}

	g.moveBall(f.Input)

	// Obstacles stay put during the countdown and on the frame it ends
	if g.run.phase == PhasePlaying && !res.Has(EventPlayStarted) {
		g.updateObstacles(&res)
	}

	g.run.checkInvariants()
	res.Background = g.background()
	return res
}

// updateCountdown announces countdown numbers and starts play after CountdownDuration.
func (g *Game) updateCountdown(now float64, res *FrameResult) {
	if v := g.run.countdownValue(now); v != g.lastCountdown {
		g.lastCountdown = v
		res.emit(EventCountdownTick, v)
	}

	if now-g.run.countdownStart < CountdownDuration {
		return
	}
	g.run.phase = PhasePlaying
	g.run.elapsed = 0
	g.run.playStart = now
	res.emit(EventPlayStarted, 0)
	res.cue(core.CueCountdownEnd)
	res.cue(core.CueAmbient)
}

// updateScore advances the score timer and fires level thresholds.
func (g *Game) updateScore(dt float64, res *FrameResult) {
	g.run.elapsed += dt
	if g.run.elapsed >= ScoreInterval {
		g.run.score++
		g.run.elapsed = 0 // Overshoot is dropped, not carried
		res.emit(EventScored, g.run.score)
	}

	if g.run.score > g.run.highscore {
		g.run.highscore = g.run.score
	}

	for _, idx := range crossedLevels(g.run.score, g.run.lastLevel) {
		g.run.lastLevel = idx
		res.emit(EventLevelUp, idx)
		res.cue(core.CueLevelUp)
	}
}

// moveBall applies the four movement axes and clamps the ball to the interior.
func (g *Game) moveBall(in core.InputFrame) {
	step := g.cfg.Ball.Step
	g.run.ballPos.X += in.Axis(core.ActionLeft, core.ActionRight) * step
	g.run.ballPos.Y += in.Axis(core.ActionUp, core.ActionDown) * step
	g.run.ballPos = g.arena.ClampCircle(g.run.ballPos, g.cfg.Ball.Radius)
}

// updateObstacles runs the obstacle pass and applies its hits.
func (g *Game) updateObstacles(res *FrameResult) {
	budget := MaxHits - g.run.hitCount
	ev := g.pool.AdvanceAndRecycle(g.run.level().Active, g.run.ballPos, g.cfg.Ball.Radius, budget)
	res.Escapes = ev.Escapes

	for _, slot := range ev.Slots {
		g.run.hitCount++
		res.emit(EventHit, slot)
		res.cue(core.CueHit)
	}
	if ev.Flash {
		g.run.flashTimer = FlashDuration
	}

	if g.run.hitCount >= MaxHits {
		g.run.phase = PhaseGameOver
		g.run.playEnd = g.now
		res.emit(EventGameOver, g.run.score)
		res.cue(core.CueGameOver)
		res.cue(core.CueAmbientStop)
	}
}

// background returns the background cue derived from the flash timer.
func (g *Game) background() core.Background {
	if g.run.flashTimer > 0 {
		return core.BackgroundFlash
	}
	return core.BackgroundNormal
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.run.score,
		HighScore: g.run.highscore,
		Hits:      g.run.hitCount,
		Level:     g.run.lastLevel,
		GameOver:  g.run.phase == PhaseGameOver,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.run.phase
}

// PlayTime returns the seconds spent in play during the current run.
func (g *Game) PlayTime() float64 {
	switch g.run.phase {
	case PhaseCountdown:
		return 0
	case PhaseGameOver:
		return g.run.playEnd - g.run.playStart
	default:
		return g.now - g.run.playStart
	}
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
