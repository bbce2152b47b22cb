package tui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodgeball/internal/registry"
)

func init() {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{overAfter: 100} })
}

func testSSHConfig(t *testing.T) SSHServerConfig {
	t.Helper()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.GameID = "scripted"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	return cfg
}

func TestNewSSHServer(t *testing.T) {
	cfg := testSSHConfig(t)
	srv, err := NewSSHServer(cfg, log.New(os.Stderr))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != cfg.Address {
		t.Errorf("Addr() = %q, want %q", srv.Addr(), cfg.Address)
	}
	if srv.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", srv.ActiveSessions())
	}
	if _, err := os.Stat(filepath.Dir(cfg.HostKeyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
}

func TestNewSSHServerRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*SSHServerConfig)
	}{
		{"unknown game", func(c *SSHServerConfig) { c.GameID = "missing" }},
		{"negative max sessions", func(c *SSHServerConfig) { c.MaxSessions = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testSSHConfig(t)
			tt.modify(&cfg)
			if _, err := NewSSHServer(cfg, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
