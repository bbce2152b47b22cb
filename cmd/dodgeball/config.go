package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgeball/internal/config"
)

var flagInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration dodgeball would run with, as YAML.

The first file found is used: --config, then
~/.arcade/configs/dodgeball.yaml, then ./configs/dodgeball.yaml, then
the built-in defaults. Keys missing from the file keep their defaults.

With --init, write the default configuration to --config (or to
~/.arcade/configs/dodgeball.yaml) instead. Existing files are kept.

Examples:
  dodgeball config
  dodgeball config --config ./my-dodgeball.yaml
  dodgeball config --init`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagInit, "init", false, "Write the default config file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	if flagInit {
		path := flagConfig
		if path == "" {
			path = config.UserConfigPath()
		}
		if path == "" {
			return fmt.Errorf("cannot resolve home directory, pass --config")
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}
	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, out)
	return nil
}
