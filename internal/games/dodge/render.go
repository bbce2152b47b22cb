package dodge

import (
	"math"

	"github.com/vovakirdan/dodgeball/internal/core"
)

// Visual characters for rendering
const (
	BorderChar   = '█'
	TopEdgeChar  = '▀'
	BallChar     = '█'
	ObstacleChar = '●'
)

// viewport maps arena units onto screen cells.
type viewport struct {
	sx, sy float64 // Cells per arena unit
}

func newViewport(arena Arena, w, h int) viewport {
	return viewport{
		sx: float64(w) / arena.Width,
		sy: float64(h) / arena.Height,
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	return int(p.X * v.sx), int(p.Y * v.sy)
}

// rows returns how many cells a vertical span covers, at least one.
func (v viewport) rows(units float64) int {
	return max(1, int(math.Round(units*v.sy)))
}

// cols returns how many cells a horizontal span covers, at least one.
func (v viewport) cols(units float64) int {
	return max(1, int(math.Round(units*v.sx)))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	dst.SetBackground(g.background())

	if g.run.phase == PhaseGameOver {
		g.drawGameOver(dst)
		return
	}

	vp := newViewport(g.arena, dst.Width(), dst.Height())
	topRows := g.drawBorders(dst, vp)

	if g.run.phase == PhasePlaying {
		color := g.run.level().Color
		for _, o := range g.pool.Active(g.run.level().Active) {
			fillCircle(dst, vp, o.Pos, o.Radius, ObstacleChar, color)
		}
	}
	fillCircle(dst, vp, g.run.ballPos, g.cfg.Ball.Radius, BallChar, core.ColorBlue)

	g.drawHUD(dst, topRows)

	if g.run.phase == PhaseCountdown {
		h := dst.Height()
		dst.DrawTextCentered(h/3, CountdownTitle, core.ColorBrightRed)
		dst.DrawTextCentered(h/2, CountdownText(g.run.countdownValue(g.now)), core.ColorBrightWhite)
	}
}

// drawBorders draws the top, side and bottom borders and returns the
// number of rows used by the top border.
func (g *Game) drawBorders(dst *core.Screen, vp viewport) int {
	w, h := dst.Width(), dst.Height()
	topRows := vp.rows(g.arena.TopBorder)
	sideCols := vp.cols(g.arena.SideBorder)

	dst.DrawRect(core.NewRect(0, 0, w, topRows-1), BorderChar, core.ColorGray)
	dst.DrawRect(core.NewRect(0, topRows-1, w, 1), TopEdgeChar, core.ColorGray)
	dst.DrawRect(core.NewRect(0, 0, sideCols, h), BorderChar, core.ColorGray)
	dst.DrawRect(core.NewRect(w-sideCols, 0, sideCols, h), BorderChar, core.ColorGray)
	dst.DrawRect(core.NewRect(0, h-1, w, 1), BorderChar, core.ColorGray)
	return topRows
}

// drawHUD draws the instruction line and counters.
func (g *Game) drawHUD(dst *core.Screen, topRows int) {
	dst.DrawTextWithColor(2, 0, " "+InstructionText+" ", core.ColorBrightWhite)
	dst.DrawTextRight(0, 2, " "+ScoreText(g.run.score)+" ", core.ColorBrightWhite)
	dst.DrawTextRight(topRows, 2, HitsText(g.run.hitCount), core.ColorWhite)
	dst.DrawTextRight(topRows+1, 2, HighscoreText(g.run.highscore), core.ColorWhite)
	dst.DrawTextRight(topRows+2, 2, LevelText(g.run.lastLevel), g.run.level().Color)
}

// drawGameOver draws the end-of-run screen.
func (g *Game) drawGameOver(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCentered(h/2-2, GameOverTitle, core.ColorBrightRed)
	dst.DrawTextCentered(h/2, RestartHint, core.ColorWhite)
	dst.DrawTextCentered(h/2+2, FinalScoreText(g.run.score), core.ColorWhite)
	dst.DrawTextCentered(h/2+3, HighscoreText(g.run.highscore), core.ColorWhite)
}

// fillCircle sets every cell whose center lies inside the circle. The
// cell under the circle's center is always drawn so small circles stay visible.
func fillCircle(dst *core.Screen, vp viewport, center core.Vec2, radius float64, r rune, c core.Color) {
	x0 := int((center.X - radius) * vp.sx)
	x1 := int((center.X + radius) * vp.sx)
	y0 := int((center.Y - radius) * vp.sy)
	y1 := int((center.Y + radius) * vp.sy)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := core.Vec2{X: (float64(x) + 0.5) / vp.sx, Y: (float64(y) + 0.5) / vp.sy}
			if core.DistanceSquared(p, center) <= radius*radius {
				dst.SetWithColor(x, y, r, c)
			}
		}
	}

	cx, cy := vp.cell(center)
	dst.SetWithColor(cx, cy, r, c)
}
