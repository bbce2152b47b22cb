// Package tui provides the Bubble Tea integration for the dodgeball game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameClock turns tick timestamps into the game clock and frame delta.
type frameClock struct {
	start time.Time
	last  time.Time
}

func newFrameClock(start time.Time) *frameClock {
	return &frameClock{start: start, last: start}
}

// advance returns seconds since start and since the previous tick.
// A tick older than the previous one yields a zero delta.
func (c *frameClock) advance(t time.Time) (now, dt float64) {
	if t.Before(c.last) {
		t = c.last
	}
	dt = t.Sub(c.last).Seconds()
	c.last = t
	return t.Sub(c.start).Seconds(), dt
}
