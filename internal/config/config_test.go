package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TTSizeMB != 16 || cfg.SearchTimeoutMS != 10000 {
		t.Fatalf("expected compiled-in defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hydrosearch.toml")
	content := "[search]\ntt_size_mb = 64\ntimeout_ms = 5000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TTSizeMB != 64 || cfg.SearchTimeoutMS != 5000 {
		t.Fatalf("expected overridden values, got %+v", cfg)
	}
}

func TestLoadPartialFileKeepsRemainingDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(path, []byte("[search]\ntt_size_mb = 32\n"), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TTSizeMB != 32 {
		t.Fatalf("expected tt_size_mb override to apply, got %d", cfg.TTSizeMB)
	}
	if cfg.SearchTimeoutMS != 10000 {
		t.Fatalf("expected timeout_ms to keep its default, got %d", cfg.SearchTimeoutMS)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected an error loading a nonexistent config file")
	}
}
