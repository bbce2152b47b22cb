// Package config provides YAML-based game configuration loading and
// validation for the dodgeball game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors. Wrapped with the offending values by Validate.
var (
	ErrInvalidArena   = errors.New("config: invalid arena")
	ErrInvalidBall    = errors.New("config: invalid ball")
	ErrInvalidDisplay = errors.New("config: invalid display")
)

// DodgeConfig contains all static configuration for a dodgeball session.
// Level thresholds and obstacle tuning are fixed in the game package.
type DodgeConfig struct {
	Arena   ArenaConfig   `yaml:"arena"`
	Ball    BallConfig    `yaml:"ball"`
	Input   InputConfig   `yaml:"input"`
	Audio   AudioConfig   `yaml:"audio"`
	Display DisplayConfig `yaml:"display"`
}

// ArenaConfig defines the play area in arena units.
type ArenaConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	TopBorder  float64 `yaml:"top_border"`
	SideBorder float64 `yaml:"side_border"` // Also used for the bottom border
}

// BallConfig defines the player's ball.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Step        float64 `yaml:"step"`         // Units moved per frame per held direction
	StartOffset float64 `yaml:"start_offset"` // Distance of the start position above the bottom edge
}

// InputConfig defines how terminal key repeats are turned into held keys.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"`
}

// HoldDuration returns the hold window as a duration.
func (c InputConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMS) * time.Millisecond
}

// AudioConfig defines the procedural sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // Master volume in [0, 1]
}

// DisplayConfig defines presentation settings.
type DisplayConfig struct {
	Title    string `yaml:"title"`
	TickRate int    `yaml:"tick_rate"`
}

// Validate checks the configuration invariants.
func (c DodgeConfig) Validate() error {
	a := c.Arena
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: size %.0fx%.0f must be positive", ErrInvalidArena, a.Width, a.Height)
	}
	if a.TopBorder < 0 || a.SideBorder < 0 {
		return fmt.Errorf("%w: borders must not be negative", ErrInvalidArena)
	}
	if a.TopBorder >= a.Height/2 {
		return fmt.Errorf("%w: top border %.0f must be less than half the height %.0f", ErrInvalidArena, a.TopBorder, a.Height)
	}
	if a.SideBorder >= a.Width/2 || a.SideBorder >= a.Height/2 {
		return fmt.Errorf("%w: side border %.0f must be less than half of each dimension", ErrInvalidArena, a.SideBorder)
	}

	b := c.Ball
	if b.Radius <= 0 || b.Step <= 0 {
		return fmt.Errorf("%w: radius and step must be positive", ErrInvalidBall)
	}
	interiorW := a.Width - 2*a.SideBorder
	interiorH := a.Height - a.TopBorder - a.SideBorder
	if 2*b.Radius > interiorW || 2*b.Radius > interiorH {
		return fmt.Errorf("%w: radius %.0f does not fit the arena interior", ErrInvalidBall, b.Radius)
	}

	if c.Display.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate %d must be positive", ErrInvalidDisplay, c.Display.TickRate)
	}
	return nil
}
