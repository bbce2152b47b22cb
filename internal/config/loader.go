package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "dodgeball.yaml"

// SourceEmbedded names the built-in defaults in LoadWithSource results.
const SourceEmbedded = "embedded"

// Load loads and validates the dodgeball configuration.
// See LoadWithSource for the search order.
func Load(customPath string) (DodgeConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource loads and validates the configuration and reports which
// file it came from. A non-empty customPath must exist and parse; it is
// decoded strictly so misspelled keys are reported. Otherwise the first
// readable and parseable file of ~/.arcade/configs/dodgeball.yaml and
// ./configs/dodgeball.yaml wins, falling back to the embedded defaults.
// Keys missing from a file keep their default values.
func LoadWithSource(customPath string) (DodgeConfig, string, error) {
	cfg, source, err := find(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, source, nil
}

func find(customPath string) (DodgeConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data, true)
		if err != nil {
			return Default(), customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, false); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := decode(defaultDodgeYAML, false)
	if err != nil {
		return Default(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := UserConfigPath(); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// decode reads YAML on top of the hardcoded defaults. Strict decoding
// rejects unknown keys. An empty document yields the defaults.
func decode(data []byte, strict bool) (DodgeConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(strict)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Default(), err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg DodgeConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the embedded default YAML to path, creating parent
// directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s: %w", path, fs.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, defaultDodgeYAML, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns ~/.arcade/configs/dodgeball.yaml, or "" if the
// home directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", configFile)
}
