package config

import (
	_ "embed"
)

//go:embed defaults/dodgeball.yaml
var defaultDodgeYAML []byte

// Default returns the built-in dodgeball configuration.
func Default() DodgeConfig {
	return DodgeConfig{
		Arena: ArenaConfig{
			Width:      1600,
			Height:     800,
			TopBorder:  40,
			SideBorder: 5,
		},
		Ball: BallConfig{
			Radius:      25,
			Step:        8,
			StartOffset: 40,
		},
		Input: InputConfig{
			HoldMS: 120,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Display: DisplayConfig{
			Title:    "Dodgeball",
			TickRate: 60,
		},
	}
}
