package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.View.Width != nil {
		t.Fatalf("expected empty config")
	}
}

func TestLoadConfigView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[view]\nwidth = 120\ndelay = \"250ms\"\nthreshold = 28.5\nfollow = false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	v := cfg.View
	if v.Width == nil || *v.Width != 120 {
		t.Fatalf("unexpected width: %v", v.Width)
	}
	if v.Delay == nil || *v.Delay != "250ms" {
		t.Fatalf("unexpected delay: %v", v.Delay)
	}
	if v.Threshold == nil || *v.Threshold != 28.5 {
		t.Fatalf("unexpected threshold: %v", v.Threshold)
	}
	if v.Follow == nil || *v.Follow {
		t.Fatalf("unexpected follow: %v", v.Follow)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[view]\nwidht = 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "fqview", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
}
