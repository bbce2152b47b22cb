package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgeball/internal/config"
	"github.com/vovakirdan/dodgeball/internal/games/dodge"
	"github.com/vovakirdan/dodgeball/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect and play remotely.

Every connection gets its own game and its own session scoreboard.
Sound is not streamed over SSH.

Examples:
  dodgeball serve
  dodgeball serve --ssh :2222
  dodgeball serve --host-key ./host_key --idle-timeout 10m
  dodgeball serve --max-sessions 16

Connect with:
  ssh -p 23234 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key (default: ~/.arcade/host_key)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent players (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) error {
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

	dodge.SetConfig(cfg)

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.IdleTimeout = flagIdleTimeout
	serverCfg.MaxSessions = flagMaxSessions
	serverCfg.GameID = dodge.GameID
	serverCfg.TickRate = fps
	serverCfg.Hold = cfg.Input.HoldDuration()

	server, err := tui.NewSSHServer(serverCfg, logger.WithPrefix("dodgeball-ssh"))
	if err != nil {
		return err
	}

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("ssh server: %w", err)
	}
	return nil
}
