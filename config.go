package d3

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default window and camera settings.
const (
	DefaultTitle  = "d3 template"
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// ErrInvalidSize is returned by Config.Validate when the window size is not positive.
var ErrInvalidSize = errors.New("d3: window size must be positive")

// Config holds the harness settings. The zero value is not useful; start
// from DefaultConfig and override with the With* methods or LoadConfig.
//
// Example:
//
//	cfg := d3.DefaultConfig().
//	    WithTitle("viewer").
//	    WithSize(1280, 720)
type Config struct {
	// Title is the window title.
	Title string `yaml:"title"`

	// Width and Height are the logical window size in screen coordinates.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// PresentMode selects the surface present mode: "vsync", "immediate"
	// or "mailbox". Unsupported modes fall back to vsync.
	PresentMode string `yaml:"present_mode"`

	// Eye is the initial camera position.
	Eye [3]float32 `yaml:"eye"`

	// Yaw and Pitch are the initial camera angles in radians.
	Yaw   float32 `yaml:"yaw"`
	Pitch float32 `yaml:"pitch"`
}

// DefaultConfig returns the settings of the stock harness: a 1920x1080
// window looking down -Z from (0, 0, 3).
func DefaultConfig() Config {
	return Config{
		Title:       DefaultTitle,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		PresentMode: "vsync",
		Eye:         [3]float32{0, 0, 3},
		Yaw:         -math.Pi / 2,
		Pitch:       0,
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithPresentMode returns a copy of c with the present mode set.
func (c Config) WithPresentMode(mode string) Config {
	c.PresentMode = mode
	return c
}

// Validate reports whether c can be used to open a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// LoadConfig reads a YAML file and applies it over DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	Logger().Debug("config loaded", "path", path, "width", cfg.Width, "height", cfg.Height)
	return cfg, nil
}
