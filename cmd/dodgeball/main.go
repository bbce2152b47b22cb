// dodgeball is a terminal game: steer a ball around the arena and dodge
// the falling circles for as long as you can.
//
// Usage:
//
//	dodgeball               - Play (same as "dodgeball play")
//	dodgeball play          - Play in this terminal
//	dodgeball serve         - Start SSH server for remote play
//	dodgeball config        - Print the effective configuration
//	dodgeball version       - Print the version
//
// Global flags:
//
//	--config <path>   - Custom YAML config
//	--fps <rate>      - Frame rate (default: from config, 60)
//	--log-file <path> - Write logs to a file
//	--debug           - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/dodgeball/internal/games/dodge"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodgeball",
	Short: "Dodgeball - dodge falling circles in your terminal",
	Long: `Dodgeball is a terminal arcade game. Move the ball with the arrow
keys or WASD and avoid the falling circles. You score one point for
every second you survive; the third hit ends the run.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  config   - Print the effective configuration
  version  - Print the version

Examples:
  dodgeball
  dodgeball play --seed 42
  dodgeball serve --ssh :2222
  dodgeball config --config ./my-dodgeball.yaml`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
