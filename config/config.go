// Package config loads tetherlayout settings.
//
// Settings come from an optional file and are then overridden by command
// line flags. The file format follows the extension:
//   - .yaml, .yml: YAML
//   - .toml: TOML
//
// Without a file, or for keys a file leaves out, the defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/TFMV/tetherlayout/models"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	Simulation models.Params `yaml:"simulation" toml:"simulation"`
	Render     RenderConfig  `yaml:"render" toml:"render"`
	Server     ServerConfig  `yaml:"server" toml:"server"`
	Viewer     ViewerConfig  `yaml:"viewer" toml:"viewer"`
}

// RenderConfig controls headless output
type RenderConfig struct {
	Format         string  `yaml:"format" toml:"format"` // svg, ascii, json, dot
	Output         string  `yaml:"output" toml:"output"`
	Width          float64 `yaml:"width" toml:"width"`
	Height         float64 `yaml:"height" toml:"height"`
	Ticks          int     `yaml:"ticks" toml:"ticks"`
	NoiseIntensity float64 `yaml:"noise" toml:"noise"`
	Timestamp      bool    `yaml:"timestamp" toml:"timestamp"`
	Labels         bool    `yaml:"labels" toml:"labels"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	Port int `yaml:"port" toml:"port"`
	TPS  int `yaml:"tps" toml:"tps"` // simulation ticks per second
}

// ViewerConfig controls the interactive window
type ViewerConfig struct {
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	Title  string `yaml:"title" toml:"title"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Simulation: models.DefaultParams(),
		Render: RenderConfig{
			Format:    "svg",
			Width:     800,
			Height:    600,
			Ticks:     600,
			Timestamp: true,
		},
		Server: ServerConfig{Port: 8080, TPS: 60},
		Viewer: ViewerConfig{Width: 1280, Height: 1024, Title: "tetherlayout"},
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the simulation parameters and output settings
func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.Render.Ticks < 0 {
		return fmt.Errorf("render ticks must not be negative, got %d", c.Render.Ticks)
	}
	if c.Server.TPS <= 0 {
		return fmt.Errorf("server tps must be positive, got %d", c.Server.TPS)
	}
	return nil
}
