package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/EngindalgaMaku/dersplan/core/engine"
)

// HTTPConfig configures the serve mode.
type HTTPConfig struct {
	// Addr is the listen address of the scheduling API and /metrics.
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// GridConfig sizes the weekly time grid.
type GridConfig struct {
	Days    int `json:"days"`
	Periods int `json:"periods"`
}

// SetDefaults applies the standard school week.
func (c *GridConfig) SetDefaults() {
	if c.Days == 0 {
		c.Days = 5
	}
	if c.Periods == 0 {
		c.Periods = 10
	}
}

// Validate checks grid bounds.
func (c GridConfig) Validate() error {
	if c.Days < 1 || c.Periods < 1 {
		return fmt.Errorf("grid must have at least one day and one period")
	}
	return nil
}

// Config aggregates every configurable section of the service.
type Config struct {
	Engine engine.Config `json:"engine"`
	Grid   GridConfig    `json:"grid"`
	HTTP   HTTPConfig    `json:"http"`
}

// Load reads the configuration file at path, chooses the parser by extension
// and applies DP_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("DP_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dp_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Engine.SetDefaults()
	cfg.Grid.SetDefaults()
	cfg.HTTP.SetDefaults()
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Grid.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Engine.SetDefaults()
	cfg.Grid.SetDefaults()
	cfg.HTTP.SetDefaults()
	return cfg
}
