package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Explore.DataDir != nil || cfg.Explore.Pager != nil || cfg.Explore.LogLevel != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[explore]\ndata-dir = \"/srv/bikeshare\"\npager = true\nlog-level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Explore.DataDir == nil || *cfg.Explore.DataDir != "/srv/bikeshare" {
		t.Fatalf("unexpected data-dir: %v", cfg.Explore.DataDir)
	}
	if cfg.Explore.Pager == nil || !*cfg.Explore.Pager {
		t.Fatalf("expected pager enabled")
	}
	if cfg.Explore.LogLevel == nil || *cfg.Explore.LogLevel != "debug" {
		t.Fatalf("unexpected log-level: %v", cfg.Explore.LogLevel)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[explore]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "bikeshare", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
}
