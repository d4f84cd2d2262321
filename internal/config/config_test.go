package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Latency != 150*time.Millisecond || cfg.AstrologyRefresh != time.Minute {
		t.Fatalf("unexpected timing defaults: %+v", cfg)
	}
	if cfg.InMemory || cfg.DBPath == "" {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Latency != 150*time.Millisecond {
		t.Fatalf("unexpected latency: %v", cfg.Latency)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "db_path: " + filepath.Join(dir, "todo.db") + "\nlatency: 250ms\nexcuse_seed: 9\nastrology_refresh: 30s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "todo.db") || cfg.Latency != 250*time.Millisecond {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ExcuseSeed != 9 || cfg.AstrologyRefresh != 30*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	t.Setenv("QTODO_LATENCY", "0s")
	t.Setenv("QTODO_IN_MEMORY", "true")
	t.Setenv("QTODO_ASTROLOGY_SEED", "42")
	t.Setenv("QTODO_MOTIVATION_SEED", "17")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.Latency != 0 || !cfg.InMemory || cfg.AstrologySeed != 42 || cfg.MotivationSeed != 17 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.ExcuseSeed != 9 {
		t.Fatalf("file value lost under env override: %+v", cfg)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.DBPath = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected db_path error")
	}
	cfg.InMemory = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("in-memory config should not need db_path: %v", err)
	}
	cfg.Latency = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected latency error")
	}
	cfg.Latency = 0
	cfg.AstrologyRefresh = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected refresh error")
	}
}
