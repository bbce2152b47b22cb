package dodge

import (
	"testing"

	"github.com/vovakirdan/dodgeball/internal/config"
	"github.com/vovakirdan/dodgeball/internal/core"
)

// minSource always returns the low end of the range, so every spawn lands
// at (SideBorder, TopBorder+SpawnDrop) with radius 20 and speed 5.
type minSource struct{}

func (minSource) IntRange(min, max int) int { return min }

func frame(now, dt float64, actions ...core.Action) core.Frame {
	return core.Frame{Input: core.NewInputFrame(actions...), Now: now, DT: dt}
}

// newCountdownGame returns a game that has just been reset at clock 0.
func newCountdownGame(t *testing.T) *Game {
	t.Helper()
	g := NewWithConfig(config.Default())
	g.ResetWithSource(core.RuntimeConfig{Now: 0}, minSource{})
	return g
}

// newPlayingGame returns a game whose countdown ended at clock 3.
func newPlayingGame(t *testing.T) *Game {
	t.Helper()
	g := newCountdownGame(t)
	res := g.Update(frame(3.0, 3.0))
	if g.Phase() != PhasePlaying {
		t.Fatalf("expected playing after countdown, got %s", g.Phase())
	}
	if !res.Has(EventPlayStarted) {
		t.Fatal("expected play_started event on the transition frame")
	}
	return g
}

// placeOnBall positions slot i so it overlaps the ball after one move.
func placeOnBall(g *Game, i int) {
	o := g.pool.Slot(i)
	o.Pos = core.Vec2{X: g.run.ballPos.X, Y: g.run.ballPos.Y - o.Speed}
}

func TestResetState(t *testing.T) {
	g := newCountdownGame(t)

	if g.Phase() != PhaseCountdown {
		t.Errorf("phase = %s, want countdown", g.Phase())
	}
	want := core.Vec2{X: 800, Y: 760}
	if g.run.ballPos != want {
		t.Errorf("ball = %+v, want %+v", g.run.ballPos, want)
	}

	res := g.Update(frame(0, 0))
	if !res.Has(EventRunStarted) {
		t.Error("first frame should report run_started")
	}
	if len(res.Cues) == 0 || res.Cues[0] != core.CueRunStart {
		t.Errorf("cues = %v, want run_start first", res.Cues)
	}
}

func TestCountdownTicksAndTransition(t *testing.T) {
	g := newCountdownGame(t)

	var ticks []int
	times := []float64{0, 0.5, 1.0, 2.0, 2.9}
	for _, now := range times {
		res := g.Update(frame(now, 0))
		for _, e := range res.Events {
			if e.Kind == EventCountdownTick {
				ticks = append(ticks, e.Value)
			}
		}
		if g.Phase() != PhaseCountdown {
			t.Fatalf("left countdown early at %.1f", now)
		}
	}
	want := []int{3, 2, 1}
	if len(ticks) != len(want) {
		t.Fatalf("ticks = %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Errorf("tick %d = %d, want %d", i, ticks[i], want[i])
		}
	}

	res := g.Update(frame(3.0, 0.1))
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, want playing", g.Phase())
	}
	if !hasCue(res.Cues, core.CueCountdownEnd) || !hasCue(res.Cues, core.CueAmbient) {
		t.Errorf("transition cues = %v", res.Cues)
	}
}

func TestObstaclesFrozenDuringCountdown(t *testing.T) {
	g := newCountdownGame(t)
	before := g.pool.Slot(0).Pos

	for i := 0; i < 10; i++ {
		g.Update(frame(float64(i)*0.1, 0.1))
	}
	// Transition frame does not move obstacles either
	g.Update(frame(3.0, 0.1))

	if g.pool.Slot(0).Pos != before {
		t.Errorf("obstacle moved during countdown: %+v -> %+v", before, g.pool.Slot(0).Pos)
	}

	g.Update(frame(3.1, 0.1))
	if g.pool.Slot(0).Pos.Y != before.Y+g.pool.Slot(0).Speed {
		t.Errorf("obstacle should move once play runs, y = %.1f", g.pool.Slot(0).Pos.Y)
	}
}

func TestBallMovesDuringCountdown(t *testing.T) {
	g := newCountdownGame(t)
	g.Update(frame(0.5, 0.1, core.ActionLeft))

	if g.run.ballPos.X != 792 {
		t.Errorf("ball x = %.1f, want 792", g.run.ballPos.X)
	}
}

func TestOpposingKeysCancel(t *testing.T) {
	g := newCountdownGame(t)
	start := g.run.ballPos
	g.Update(frame(0.1, 0.1, core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown))

	if g.run.ballPos != start {
		t.Errorf("ball moved with opposing keys: %+v", g.run.ballPos)
	}
}

func TestBallClampedToInterior(t *testing.T) {
	g := newCountdownGame(t)
	r := g.cfg.Ball.Radius

	for i := 0; i < 300; i++ {
		g.Update(frame(0, 0, core.ActionLeft, core.ActionUp))
		if !g.arena.ContainsCircle(g.run.ballPos, r) {
			t.Fatalf("ball left interior at frame %d: %+v", i, g.run.ballPos)
		}
	}
	if g.run.ballPos.X != 30 || g.run.ballPos.Y != 65 {
		t.Errorf("top-left clamp = %+v, want (30,65)", g.run.ballPos)
	}

	for i := 0; i < 300; i++ {
		g.Update(frame(0, 0, core.ActionRight, core.ActionDown))
	}
	if g.run.ballPos.X != 1570 || g.run.ballPos.Y != 770 {
		t.Errorf("bottom-right clamp = %+v, want (1570,770)", g.run.ballPos)
	}
}

func TestScoreOncePerSecondDropsOvershoot(t *testing.T) {
	g := newPlayingGame(t)

	g.Update(frame(3.5, 0.5))
	if g.State().Score != 0 {
		t.Fatalf("score after 0.5s = %d", g.State().Score)
	}
	g.Update(frame(4.0, 0.5))
	if g.State().Score != 1 {
		t.Fatalf("score after 1.0s = %d", g.State().Score)
	}

	// A long frame scores once and discards the remainder
	g.Update(frame(5.7, 1.7))
	if g.State().Score != 2 {
		t.Fatalf("score after long frame = %d", g.State().Score)
	}
	g.Update(frame(6.2, 0.5))
	if g.State().Score != 2 {
		t.Errorf("overshoot was carried: score = %d", g.State().Score)
	}
	g.Update(frame(6.7, 0.5))
	if g.State().Score != 3 {
		t.Errorf("score = %d, want 3", g.State().Score)
	}
	if g.State().HighScore != 3 {
		t.Errorf("highscore = %d, want 3", g.State().HighScore)
	}
}

func TestScoreJumpFiresEveryLevelInOrder(t *testing.T) {
	g := newPlayingGame(t)
	g.run.score = 49
	g.run.highscore = 49

	res := g.Update(frame(4.0, 1.0))

	var got []int
	for _, e := range res.Events {
		if e.Kind == EventLevelUp {
			got = append(got, e.Value)
		}
	}
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("level ups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("level up %d = %d, want %d", i, got[i], want[i])
		}
	}
	if n := countCue(res.Cues, core.CueLevelUp); n != 3 {
		t.Errorf("level_up cues = %d, want 3", n)
	}

	// Watermark prevents refiring
	res = g.Update(frame(5.0, 1.0))
	if res.Has(EventLevelUp) {
		t.Error("level up fired twice in one run")
	}
	if g.State().Level != MaxLevel {
		t.Errorf("level = %d, want %d", g.State().Level, MaxLevel)
	}
}

func TestHitAndFlash(t *testing.T) {
	g := newPlayingGame(t)
	placeOnBall(g, 0)

	res := g.Update(frame(3.1, 0.1))
	if g.State().Hits != 1 {
		t.Fatalf("hits = %d, want 1", g.State().Hits)
	}
	if !hasCue(res.Cues, core.CueHit) {
		t.Errorf("cues = %v, want hit", res.Cues)
	}
	if res.Background != core.BackgroundFlash {
		t.Error("hit frame should flash")
	}

	// Slot 0 was respawned at the spawn point
	if g.pool.Slot(0).Pos.Y != g.arena.TopBorder+SpawnDrop {
		t.Errorf("hit obstacle not respawned: %+v", g.pool.Slot(0).Pos)
	}

	flashFrames := 1
	for i := 0; i < 30; i++ {
		res = g.Update(frame(3.2+float64(i)*0.01, 0.01))
		if res.Background == core.BackgroundFlash {
			flashFrames++
		}
	}
	if flashFrames != FlashDuration {
		t.Errorf("flash lasted %d frames, want %d", flashFrames, FlashDuration)
	}
}

func TestThirdHitEndsRunSameFrame(t *testing.T) {
	g := newPlayingGame(t)
	g.run.score = 7
	g.run.highscore = 7
	for i := 0; i < 3; i++ {
		placeOnBall(g, i)
	}

	res := g.Update(frame(3.1, 0.1))
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %s, want game_over", g.Phase())
	}
	if !res.Has(EventGameOver) {
		t.Error("expected game_over event")
	}
	if !hasCue(res.Cues, core.CueGameOver) || !hasCue(res.Cues, core.CueAmbientStop) {
		t.Errorf("cues = %v", res.Cues)
	}
	if !g.State().GameOver || g.State().Hits != MaxHits {
		t.Errorf("state = %+v", g.State())
	}

	// Movement is ignored in game over
	ball := g.run.ballPos
	g.Update(frame(3.2, 0.1, core.ActionLeft, core.ActionUp))
	if g.run.ballPos != ball {
		t.Error("ball moved during game over")
	}
	if g.State().Score != 7 {
		t.Errorf("score changed during game over: %d", g.State().Score)
	}
}

func TestHitBudgetStopsPass(t *testing.T) {
	g := newPlayingGame(t)
	g.run.hitCount = 2
	placeOnBall(g, 0)
	placeOnBall(g, 1)
	untouched := g.pool.Slot(1).Pos

	res := g.Update(frame(3.1, 0.1))
	if res.Count(EventHit) != 1 {
		t.Errorf("hits = %d, want 1", res.Count(EventHit))
	}
	if g.State().Hits != MaxHits {
		t.Errorf("hit count = %d", g.State().Hits)
	}
	if g.pool.Slot(1).Pos != untouched {
		t.Error("pass continued past the hit budget")
	}
}

func TestRestartResetsRunKeepsHighscore(t *testing.T) {
	g := newPlayingGame(t)
	g.run.score = 12
	g.run.highscore = 12
	g.run.lastLevel = 1
	for i := 0; i < 3; i++ {
		placeOnBall(g, i)
	}
	g.Update(frame(3.1, 0.1))
	if g.Phase() != PhaseGameOver {
		t.Fatal("setup: expected game over")
	}

	// Non-restart input is ignored
	g.Update(frame(3.2, 0.1, core.ActionQuit))
	if g.Phase() != PhaseGameOver {
		t.Fatal("non-restart input left game over")
	}

	res := g.Update(frame(4.0, 0.1, core.ActionRestart))
	if !res.Has(EventRunStarted) {
		t.Error("restart should report run_started")
	}
	st := g.State()
	if g.Phase() != PhaseCountdown {
		t.Errorf("phase = %s, want countdown", g.Phase())
	}
	if st.Score != 0 || st.Hits != 0 || st.Level != 0 {
		t.Errorf("state not reset: %+v", st)
	}
	if st.HighScore != 12 {
		t.Errorf("highscore = %d, want 12", st.HighScore)
	}
	if g.run.ballPos != g.ballStart() {
		t.Errorf("ball = %+v", g.run.ballPos)
	}
	if g.run.flashTimer != 0 {
		t.Errorf("flash timer = %d", g.run.flashTimer)
	}

	// Countdown restarts from the restart clock
	g.Update(frame(6.9, 0.1))
	if g.Phase() != PhaseCountdown {
		t.Error("countdown ended early after restart")
	}
	g.Update(frame(7.0, 0.1))
	if g.Phase() != PhasePlaying {
		t.Error("countdown should end 3s after restart")
	}
}

func TestPlayTime(t *testing.T) {
	g := newCountdownGame(t)
	if g.PlayTime() != 0 {
		t.Errorf("countdown play time = %.2f", g.PlayTime())
	}

	g.Update(frame(3.0, 0.1))
	g.Update(frame(5.5, 0.1))
	if g.PlayTime() != 2.5 {
		t.Errorf("play time = %.2f, want 2.5", g.PlayTime())
	}

	for i := 0; i < 3; i++ {
		placeOnBall(g, i)
	}
	g.Update(frame(6.0, 0.1))
	g.Update(frame(9.0, 0.1))
	if g.PlayTime() != 3.0 {
		t.Errorf("play time after game over = %.2f, want 3.0", g.PlayTime())
	}
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs produce identical snapshots
	cfg := core.RuntimeConfig{Seed: 12345}

	g1 := NewWithConfig(config.Default())
	g1.Reset(cfg)
	g2 := NewWithConfig(config.Default())
	g2.Reset(cfg)

	for i := 0; i < 600; i++ {
		var f core.Frame
		switch {
		case i%90 < 30:
			f = frame(float64(i)/60, 1.0/60, core.ActionLeft)
		case i%90 < 60:
			f = frame(float64(i)/60, 1.0/60, core.ActionRight, core.ActionUp)
		default:
			f = frame(float64(i)/60, 1.0/60, core.ActionRestart)
		}
		g1.Step(f)
		g2.Step(f)
	}

	if g1.Snapshot().Hash() != g2.Snapshot().Hash() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestStepReportsState(t *testing.T) {
	g := newPlayingGame(t)
	res := g.Step(frame(4.0, 1.0))

	if res.State.Score != 1 {
		t.Errorf("step state score = %d", res.State.Score)
	}
	if !hasCue(res.Cues, core.CueAmbient) {
		t.Errorf("playing frame should request ambient, cues = %v", res.Cues)
	}
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	g := NewWithConfig(config.Default())
	g.Reset(core.RuntimeConfig{Seed: 7})

	for i := 0; i < 5000; i++ {
		var f core.Frame
		now := float64(i) / 60
		switch (i / 40) % 4 {
		case 0:
			f = frame(now, 1.0/60, core.ActionLeft)
		case 1:
			f = frame(now, 1.0/60, core.ActionUp)
		case 2:
			f = frame(now, 1.0/60, core.ActionRight, core.ActionDown)
		default:
			f = frame(now, 1.0/60, core.ActionRestart)
		}
		g.Update(f)

		st := g.State()
		if st.Hits < 0 || st.Hits > MaxHits {
			t.Fatalf("frame %d: hits = %d", i, st.Hits)
		}
		if st.HighScore < st.Score {
			t.Fatalf("frame %d: highscore %d < score %d", i, st.HighScore, st.Score)
		}
		if !g.arena.ContainsCircle(g.run.ballPos, g.cfg.Ball.Radius) {
			t.Fatalf("frame %d: ball outside interior %+v", i, g.run.ballPos)
		}
	}
}

func TestTitleFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Display.Title = "Dodge!"
	if got := NewWithConfig(cfg).Title(); got != "Dodge!" {
		t.Errorf("Title() = %q", got)
	}
	cfg.Display.Title = ""
	if got := NewWithConfig(cfg).Title(); got != "Dodgeball" {
		t.Errorf("fallback Title() = %q", got)
	}
}

func hasCue(cues []core.Cue, c core.Cue) bool {
	return countCue(cues, c) > 0
}

func countCue(cues []core.Cue, c core.Cue) int {
	n := 0
	for _, x := range cues {
		if x == c {
			n++
		}
	}
	return n
}
