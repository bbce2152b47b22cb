package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dodgeball/internal/audio"
	"github.com/vovakirdan/dodgeball/internal/config"
	"github.com/vovakirdan/dodgeball/internal/games/dodge"
	"github.com/vovakirdan/dodgeball/internal/platform/tui"
	"github.com/vovakirdan/dodgeball/internal/registry"
	"github.com/vovakirdan/dodgeball/internal/storage"
)

var (
	flagSeed    int64
	flagNoAudio bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a dodgeball session in the current terminal.

Controls:
  Arrows/WASD  - Move (keys can be combined for diagonals)
  Space/R      - Play again (after game over)
  H            - Session runs (after game over)
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Scores are kept for this session only.

Examples:
  dodgeball play
  dodgeball play --seed 42 --no-audio
  dodgeball play --config ./my-dodgeball.yaml --log-file dodge.log --debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags; the root command shares them.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	cmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable sound")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	fps, err := resolveFPS(cfg)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	// The TUI owns the terminal, so the model only logs to --log-file
	var modelLogger *log.Logger
	if flagLogFile != "" {
		modelLogger = logger
	}

	dodge.SetConfig(cfg)
	game, err := registry.Create(dodge.GameID)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	sink := newAudioSink(cfg.Audio, logger)
	defer sink.Cleanup()

	store, err := storage.OpenSession()
	if err != nil {
		logger.Warn("session scoreboard unavailable", "error", err)
	} else {
		defer store.Close()
	}

	err = tui.Run(game, tui.Options{
		TickRate: fps,
		Seed:     flagSeed,
		Hold:     cfg.Input.HoldDuration(),
		Audio:    sink,
		Store:    store,
		Logger:   modelLogger,
	}, width, height)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// resolveFPS returns --fps when set, else the configured tick rate.
func resolveFPS(cfg config.DodgeConfig) (int, error) {
	if flagFPS == 0 {
		return cfg.Display.TickRate, nil
	}
	if flagFPS < 0 || flagFPS > 240 {
		return 0, fmt.Errorf("--fps must be between 1 and 240, got %d", flagFPS)
	}
	return flagFPS, nil
}

// newAudioSink opens the sound device, falling back to silence when audio
// is disabled or unavailable.
func newAudioSink(cfg config.AudioConfig, logger *log.Logger) audio.Sink {
	if flagNoAudio || !cfg.Enabled {
		logger.Debug("audio disabled")
		return audio.Nop{}
	}

	sm := audio.NewSoundManager()
	if err := sm.Initialize(cfg.Volume); err != nil {
		logger.Warn("audio unavailable, continuing without sound", "error", err)
		return audio.Nop{}
	}
	return sm
}
