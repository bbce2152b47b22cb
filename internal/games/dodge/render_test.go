package dodge

import (
	"strings"
	"testing"

	"github.com/vovakirdan/dodgeball/internal/core"
)

func TestRenderCountdown(t *testing.T) {
	g := newCountdownGame(t)
	g.Update(frame(0, 0))

	scr := core.NewScreen(100, 40)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{CountdownTitle, "3", ScoreText(0), HitsText(0), LevelText(0)} {
		if !strings.Contains(out, want) {
			t.Errorf("countdown render missing %q", want)
		}
	}
	if strings.ContainsRune(out, ObstacleChar) {
		t.Error("obstacles should be hidden during the countdown")
	}
	if scr.Background() != core.BackgroundNormal {
		t.Error("countdown background should be normal")
	}
}

func TestRenderPlaying(t *testing.T) {
	g := newPlayingGame(t)
	g.Update(frame(3.1, 0.1))

	scr := core.NewScreen(100, 40)
	g.Render(scr)
	out := scr.String()

	if strings.Contains(out, CountdownTitle) {
		t.Error("countdown overlay drawn during play")
	}
	if !strings.ContainsRune(out, ObstacleChar) {
		t.Error("active obstacles not drawn")
	}

	// Ball sits at (800,760), which maps to the middle column near the bottom
	cx, cy := newViewport(g.arena, 100, 40).cell(g.run.ballPos)
	cell := scr.GetCell(cx, cy)
	if cell.Rune != BallChar || cell.Color != core.ColorBlue {
		t.Errorf("ball cell = %+v", cell)
	}

	// Obstacles use the level color
	found := false
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			c := scr.GetCell(x, y)
			if c.Rune == ObstacleChar {
				found = true
				if c.Color != LevelAt(0).Color {
					t.Fatalf("obstacle color = %v, want %v", c.Color, LevelAt(0).Color)
				}
			}
		}
	}
	if !found {
		t.Error("no obstacle cells")
	}
}

func TestRenderBorders(t *testing.T) {
	g := newCountdownGame(t)
	scr := core.NewScreen(100, 40)
	g.Render(scr)

	w, h := scr.Width(), scr.Height()
	for _, p := range [][2]int{{0, h / 2}, {w - 1, h / 2}, {w / 2, h - 1}} {
		if scr.Get(p[0], p[1]) != BorderChar {
			t.Errorf("expected border at %v, got %q", p, scr.Get(p[0], p[1]))
		}
	}
}

func TestRenderFlashBackground(t *testing.T) {
	g := newPlayingGame(t)
	placeOnBall(g, 0)
	g.Update(frame(3.1, 0.1))

	scr := core.NewScreen(100, 40)
	g.Render(scr)
	if scr.Background() != core.BackgroundFlash {
		t.Error("hit should render a flash background")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newPlayingGame(t)
	g.run.score = 9
	g.run.highscore = 20
	for i := 0; i < 3; i++ {
		placeOnBall(g, i)
	}
	g.Update(frame(3.1, 0.1))

	scr := core.NewScreen(100, 40)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{GameOverTitle, RestartHint, FinalScoreText(9), HighscoreText(20)} {
		if !strings.Contains(out, want) {
			t.Errorf("game over render missing %q", want)
		}
	}
	if strings.ContainsRune(out, BallChar) {
		t.Error("playfield should not be drawn on the game over screen")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newPlayingGame(t)
	scr := core.NewScreen(10, 5)
	// Must not panic on screens smaller than the HUD
	g.Render(scr)
}
