// If you are AI: This file tests CLI flag parsing and monitor TOML decoding.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEdgeDefaults(t *testing.T) {
	cfg, err := ParseEdge(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Bind != "[::]:1935" || cfg.Origin != "127.0.0.1:9878" || cfg.Register != "" || cfg.Cache != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseEdgeOverrides(t *testing.T) {
	cfg, err := ParseEdge([]string{"-r", "10.0.0.1:9336", "--cache", "10.0.0.2:9888"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Register != "10.0.0.1:9336" || cfg.Cache != "10.0.0.2:9888" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestParseCacheDefaults(t *testing.T) {
	cfg, err := ParseCache(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Register != "127.0.0.1:9336" || cfg.Origin != "127.0.0.1:9878" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseOriginDefaultsToConsoleLogFormat(t *testing.T) {
	cfg, err := ParseOrigin(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.LogFormat != "console" {
		t.Fatalf("LogFormat = %q, want console", cfg.LogFormat)
	}
}

func TestParseRegisterAcceptsLogFormatOverride(t *testing.T) {
	cfg, err := ParseRegister([]string{"--log-format", "json"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadMonitorConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[[hosts]]
name = "origin-1"
addr = "127.0.0.1:3032"

[[hosts]]
name = "edge-1"
addr = "127.0.0.1:3000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadMonitorConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Hosts) != 2 || cfg.Hosts[0].Name != "origin-1" || cfg.Hosts[1].Addr != "127.0.0.1:3000" {
		t.Fatalf("unexpected hosts: %+v", cfg.Hosts)
	}
}

func TestLoadMonitorConfigRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadMonitorConfig(path); err == nil {
		t.Fatalf("expected an error for a config with no hosts")
	}
}
