package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Pipeline.TitleBlockScope != ScopeGlobal {
		t.Errorf("config = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
server:
  port: 9090
pipeline:
  mergeGap: 0.5
  titleBlockScope: per_page
`)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Pipeline.MergeGap != 0.5 {
		t.Errorf("mergeGap = %v, want 0.5", cfg.Pipeline.MergeGap)
	}
	if cfg.Pipeline.TitleBlockScope != ScopePerPage {
		t.Errorf("titleBlockScope = %q", cfg.Pipeline.TitleBlockScope)
	}
	// Untouched fields keep their defaults
	if cfg.Pipeline.DedupRadius != 1.0 || cfg.Server.LogLevel != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DRAWINGX_PORT", "7070")
	t.Setenv("DRAWINGX_WORKERS", "2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 || cfg.Pipeline.Workers != 2 {
		t.Errorf("config = %+v, want env overrides applied", cfg)
	}
}

func TestEnvBadValue(t *testing.T) {
	t.Setenv("DRAWINGX_PORT", "not-a-port")
	if _, err := Load(""); err == nil {
		t.Error("malformed DRAWINGX_PORT accepted")
	}
}

func TestValidateRejectsBadScope(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.TitleBlockScope = "everywhere"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown title-block scope accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}
