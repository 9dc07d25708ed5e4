package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := configPath(""), filepath.Join(dir, "xfsconv", "config.yaml"); got != want {
		t.Fatalf("configPath: got %q want %q", got, want)
	}
	if got := configPath("/etc/xfsconv.yaml"); got != "/etc/xfsconv.yaml" {
		t.Fatalf("override ignored: %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg != (Config{}) {
			t.Fatalf("expected zero config, got %+v", cfg)
		}
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		data := "format: json\ncharset: latin1\nstrict: true\nmax_depth: 12\nlog_level: debug\nserver_address: 0.0.0.0:9000\nmax_body_bytes: 1024\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if cfg.Format != "json" || cfg.Charset != "latin1" || cfg.LogLevel != "debug" || cfg.ServerAddress != "0.0.0.0:9000" {
			t.Fatalf("config: %+v", cfg)
		}
		if cfg.Strict == nil || !*cfg.Strict {
			t.Fatalf("strict: %v", cfg.Strict)
		}
		if cfg.MaxDepth == nil || *cfg.MaxDepth != 12 || cfg.MaxBodyBytes == nil || *cfg.MaxBodyBytes != 1024 {
			t.Fatalf("numbers: %v %v", cfg.MaxDepth, cfg.MaxBodyBytes)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("strict: [unterminated"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}
