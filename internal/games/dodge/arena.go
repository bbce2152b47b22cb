package dodge

import (
	"github.com/vovakirdan/dodgeball/internal/config"
	"github.com/vovakirdan/dodgeball/internal/core"
)

// Arena is the bordered play area. Immutable for the length of a run.
// The side border thickness is also used for the bottom border.
type Arena struct {
	Width      float64
	Height     float64
	TopBorder  float64
	SideBorder float64
}

// ArenaFromConfig builds an Arena from validated configuration.
func ArenaFromConfig(c config.ArenaConfig) Arena {
	return Arena{
		Width:      c.Width,
		Height:     c.Height,
		TopBorder:  c.TopBorder,
		SideBorder: c.SideBorder,
	}
}

// Center returns the middle of the arena.
func (a Arena) Center() core.Vec2 {
	return core.Vec2{X: a.Width / 2, Y: a.Height / 2}
}

// ClampCircle repositions a circle so it lies fully inside the interior.
func (a Arena) ClampCircle(pos core.Vec2, radius float64) core.Vec2 {
	if pos.X-radius < a.SideBorder {
		pos.X = a.SideBorder + radius
	}
	if pos.X+radius > a.Width-a.SideBorder {
		pos.X = a.Width - a.SideBorder - radius
	}
	if pos.Y-radius < a.TopBorder {
		pos.Y = a.TopBorder + radius
	}
	if pos.Y+radius > a.Height-a.SideBorder {
		pos.Y = a.Height - a.SideBorder - radius
	}
	return pos
}

// ContainsCircle reports whether a circle lies fully inside the interior.
func (a Arena) ContainsCircle(pos core.Vec2, radius float64) bool {
	return pos.X-radius >= a.SideBorder &&
		pos.X+radius <= a.Width-a.SideBorder &&
		pos.Y-radius >= a.TopBorder &&
		pos.Y+radius <= a.Height-a.SideBorder
}
