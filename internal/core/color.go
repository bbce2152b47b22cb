package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the arena, the ball, and the level tiers.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorGray
	ColorBrightRed
	ColorBrightWhite
)

// String returns the color name, used in logs and snapshots.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorBrightRed:
		return "bright-red"
	case ColorBrightWhite:
		return "bright-white"
	default:
		return "unknown"
	}
}

// Background is the whole-screen background cue for a frame.
type Background uint8

const (
	BackgroundNormal Background = iota
	BackgroundFlash             // Light red wash after a hit
)
