// Package config loads the drawingxd service configuration from a YAML
// file with environment-variable overrides. Every field has a working
// default; a missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Title-block scope values for PipelineConfig.TitleBlockScope.
const (
	ScopeGlobal  = "global"
	ScopePerPage = "per_page"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int    `yaml:"port"`
	MaxRequestBytes int64  `yaml:"maxRequestBytes"` // decoded PDF size limit
	LogLevel        string `yaml:"logLevel"`
}

// PipelineConfig exposes the extraction tunables served by the API.
type PipelineConfig struct {
	BaselineTolerance float64 `yaml:"baselineTolerance"`
	MergeGap          float64 `yaml:"mergeGap"`
	SpaceGap          float64 `yaml:"spaceGap"`
	FontSizeTolerance float64 `yaml:"fontSizeTolerance"`
	DedupRadius       float64 `yaml:"dedupRadius"`
	Workers           int     `yaml:"workers"`
	TitleBlockScope   string  `yaml:"titleBlockScope"` // "global" or "per_page"
}

// Config is the root of the service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// Default returns the configuration used when no file or overrides are
// present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			MaxRequestBytes: 50 << 20,
			LogLevel:        "info",
		},
		Pipeline: PipelineConfig{
			BaselineTolerance: 2.0,
			MergeGap:          1.0,
			SpaceGap:          0.25,
			FontSizeTolerance: 0.5,
			DedupRadius:       1.0,
			Workers:           0,
			TitleBlockScope:   ScopeGlobal,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overlays DRAWINGX_* environment variables on the loaded
// configuration.
func (c *Config) applyEnv() error {
	if v := os.Getenv("DRAWINGX_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DRAWINGX_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DRAWINGX_MAX_REQUEST_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DRAWINGX_MAX_REQUEST_BYTES: %w", err)
		}
		c.Server.MaxRequestBytes = n
	}
	if v := os.Getenv("DRAWINGX_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
	if v := os.Getenv("DRAWINGX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DRAWINGX_WORKERS: %w", err)
		}
		c.Pipeline.Workers = n
	}
	if v := os.Getenv("DRAWINGX_TITLE_BLOCK_SCOPE"); v != "" {
		c.Pipeline.TitleBlockScope = v
	}
	return nil
}

// Validate checks the service-level settings. Pipeline tunables are
// validated again by the pipeline itself before any page is processed.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("maxRequestBytes must be positive, got %d", c.Server.MaxRequestBytes)
	}
	switch c.Pipeline.TitleBlockScope {
	case ScopeGlobal, ScopePerPage:
	default:
		return fmt.Errorf("titleBlockScope must be %q or %q, got %q", ScopeGlobal, ScopePerPage, c.Pipeline.TitleBlockScope)
	}
	return nil
}
