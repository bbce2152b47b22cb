package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodgeball/internal/audio"
	"github.com/vovakirdan/dodgeball/internal/core"
	"github.com/vovakirdan/dodgeball/internal/registry"
	"github.com/vovakirdan/dodgeball/internal/storage"
)

// Options configures a game session model.
type Options struct {
	TickRate      int
	Seed          int64 // Zero picks a time-based seed
	Hold          time.Duration
	Audio         audio.Sink
	Store         *storage.Store // Optional session scoreboard
	Logger        *log.Logger
	ScreenshotDir string // Defaults to ~/.arcade/screenshots
}

// playTimer is implemented by games that report how long a run was played.
type playTimer interface {
	PlayTime() float64
}

// Model is the Bubble Tea model for one dodgeball session.
type Model struct {
	game   registry.Game
	screen *core.Screen
	opts   Options
	keys   *KeyMapper
	hold   *HoldTracker
	clock  *frameClock
	help   help.Model

	state       core.GameState
	runRecorded bool
	sessionBest int
	sessionRuns int

	history     *historyView
	showHistory bool

	width, height int
	quitting      bool
}

// NewModel creates a model for game sized to a width x height terminal.
func NewModel(game registry.Game, opts Options, width, height int) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = width

	return Model{
		game:   game,
		screen: core.NewScreen(width, playfieldHeight(height)),
		opts:   opts,
		keys:   NewKeyMapper(DefaultKeyMap()),
		hold:   NewHoldTracker(opts.Hold),
		clock:  newFrameClock(time.Now()),
		help:   h,
		width:  width,
		height: height,
	}
}

// playfieldHeight leaves the last terminal row for the help line.
func playfieldHeight(h int) int {
	return max(h-1, 1)
}

// Init resets the game and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  m.screen.Width(),
		ScreenH:  m.screen.Height(),
		TickRate: m.opts.TickRate,
		Seed:     m.opts.Seed,
	})
	m.opts.Logger.Info("session started", "game", m.game.ID(), "seed", m.opts.Seed, "fps", m.opts.TickRate)
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.History):
		if m.state.GameOver {
			m.toggleHistory()
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.opts.Audio.HandleCue(core.CueAmbientStop)
		m.opts.Logger.Info("session ended", "runs", m.sessionRuns, "best", m.sessionBest)
		return m, tea.Quit
	}
	m.hold.Press(action, time.Now())
	return m, nil
}

// handleResize processes window resize events. The arena is independent
// of the terminal size, so the run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width
	if m.history != nil {
		m.loadHistory()
	}
	return m, nil
}

// handleTick advances the game by one frame.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	now, dt := m.clock.advance(t)
	frame := core.Frame{
		Input: m.hold.Frame(t),
		Now:   now,
		DT:    dt,
	}

	wasOver := m.state.GameOver
	result := m.game.Step(frame)
	m.state = result.State

	for _, c := range result.Cues {
		if c != core.CueAmbient {
			m.opts.Logger.Debug("cue", "cue", c, "score", m.state.Score, "hits", m.state.Hits)
		}
		m.opts.Audio.HandleCue(c)
	}

	switch {
	case m.state.GameOver && !wasOver:
		m.recordRun()
	case !m.state.GameOver && wasOver:
		// Restarted
		m.runRecorded = false
		m.showHistory = false
		m.hold.Reset()
	}

	return m, tickCmd(m.opts.TickRate)
}

// recordRun stores the finished run once per game over.
func (m *Model) recordRun() {
	if m.runRecorded {
		return
	}
	m.runRecorded = true

	var played time.Duration
	if pt, ok := m.game.(playTimer); ok {
		played = time.Duration(pt.PlayTime() * float64(time.Second))
	}

	m.opts.Logger.Info("run finished",
		"score", m.state.Score,
		"highscore", m.state.HighScore,
		"level", m.state.Level+1,
		"played", played.Round(time.Millisecond),
	)

	m.sessionRuns++
	m.sessionBest = max(m.sessionBest, m.state.Score)

	if m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.RecordRun(storage.RunRecord{
		Score:    m.state.Score,
		Hits:     m.state.Hits,
		Level:    m.state.Level,
		Duration: played,
	})
	if err != nil {
		m.opts.Logger.Warn("could not record run", "error", err)
		return
	}

	if best, err := m.opts.Store.Best(); err == nil {
		m.sessionBest = best
	}
	if n, err := m.opts.Store.Count(); err == nil {
		m.sessionRuns = n
	}
}

// toggleHistory shows or hides the session runs table.
func (m *Model) toggleHistory() {
	m.showHistory = !m.showHistory
	if m.showHistory {
		m.loadHistory()
	}
}

func (m *Model) loadHistory() {
	h := newHistoryView(m.opts.Store, m.width, m.height)
	if h.err != nil {
		m.opts.Logger.Warn("could not load session runs", "error", h.err)
	}
	m.history = &h
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("screenshot: cannot resolve home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot: cannot create directory", "dir", dir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot: cannot write file", "path", path, "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// drawSessionSummary adds the session scoreboard under the game over text.
func (m Model) drawSessionSummary() {
	h := m.screen.Height()
	m.screen.DrawTextCentered(h/2+5, SessionSummaryText(m.sessionBest, m.sessionRuns), core.ColorGray)
	m.screen.DrawTextCentered(h/2+6, HistoryHint, core.ColorGray)
}

// HistoryHint tells the player how to open the session runs table.
const HistoryHint = "Press h for this session's runs"

// SessionSummaryText formats the session best and run count.
func SessionSummaryText(best, runs int) string {
	return fmt.Sprintf("Session best: %d  Runs: %d", best, runs)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	helpLine := m.help.View(m.keys.Keys())

	if m.showHistory && m.history != nil {
		return m.history.View() + "\n" + helpLine
	}

	m.game.Render(m.screen)
	if m.state.GameOver {
		m.drawSessionSummary()
	}

	return RenderScreen(m.screen) + "\n" + helpLine
}

// State returns the game state as of the last frame.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for game on the local terminal.
func Run(game registry.Game, opts Options, width, height int) error {
	model := NewModel(game, opts, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
