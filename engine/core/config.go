package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/xenon/engine/colors"
)

var ErrInvalidConfig = errors.New("core: invalid config")

// Config for the engine run. Zero Min*/Max* values leave that limit unset.
// Fullscreen opens on the primary monitor at its current video mode and
// ignores Width/Height.
type Config struct {
	Title       string       `yaml:"title"`
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	Resizable   bool         `yaml:"resizable"`
	Decorated   bool         `yaml:"decorated"`
	Visible     bool         `yaml:"visible"`
	Maximized   bool         `yaml:"maximized"`
	Transparent bool         `yaml:"transparent"`
	AlwaysOnTop bool         `yaml:"always_on_top"`
	Fullscreen  bool         `yaml:"fullscreen"`
	VSync       bool         `yaml:"vsync"`
	ClearColor  colors.Color `yaml:"clear_color,flow"`
	MinWidth    int          `yaml:"min_width"`
	MinHeight   int          `yaml:"min_height"`
	MaxWidth    int          `yaml:"max_width"`
	MaxHeight   int          `yaml:"max_height"`
	LogLevel    slog.Level   `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "xenon",
		Width:      800,
		Height:     600,
		Resizable:  true,
		Decorated:  true,
		Visible:    true,
		VSync:      true,
		ClearColor: colors.DarkGray,
		LogLevel:   slog.LevelInfo,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("core: load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MinWidth < 0 || c.MinHeight < 0 || c.MaxWidth < 0 || c.MaxHeight < 0:
		return fmt.Errorf("%w: negative size limit", ErrInvalidConfig)
	case c.MaxWidth > 0 && c.MinWidth > c.MaxWidth,
		c.MaxHeight > 0 && c.MinHeight > c.MaxHeight:
		return fmt.Errorf("%w: min size exceeds max size", ErrInvalidConfig)
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear color %v out of range", ErrInvalidConfig, c.ClearColor)
		}
	}
	return nil
}
