// Package config provides YAML-based settings loading for the engine and
// its hosts.
package config

import "fmt"

// Settings is the full configuration document. It is read once at startup
// and treated as immutable afterwards.
type Settings struct {
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
}

// WindowConfig describes the framebuffer and the host window around it.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`  // Framebuffer width in pixels
	Height     int    `yaml:"height"` // Framebuffer height in pixels
	Fullscreen bool   `yaml:"fullscreen"`
	Resizable  bool   `yaml:"resizable"`
	Scale      int    `yaml:"scale"` // Initial window size multiplier (window host only)
}

// RenderConfig controls frame pacing.
type RenderConfig struct {
	Redraw   RedrawMode `yaml:"redraw"`
	TickRate int        `yaml:"tick_rate"` // Loop iterations per second for timer-driven hosts
	TileSize int        `yaml:"tile_size"` // Atlas tile edge in pixels
}

// AssetsConfig locates required assets.
type AssetsConfig struct {
	Atlas string `yaml:"atlas"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RedrawMode selects when the scheduler invokes the draw hook.
type RedrawMode string

const (
	// RedrawContinuous draws once per loop iteration.
	RedrawContinuous RedrawMode = "continuous"
	// RedrawOnInput draws only after input, a resize, an explicit host
	// redraw request, or on the very first frame.
	RedrawOnInput RedrawMode = "input"
)

// Valid reports whether m is a known redraw mode.
func (m RedrawMode) Valid() bool {
	return m == RedrawContinuous || m == RedrawOnInput
}

// Validate checks value ranges. Loaders fall back to defaults when it fails.
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Window.Scale <= 0 {
		return fmt.Errorf("config: window.scale must be positive, got %d", s.Window.Scale)
	}
	if !s.Render.Redraw.Valid() {
		return fmt.Errorf("config: unknown render.redraw %q", s.Render.Redraw)
	}
	if s.Render.TickRate <= 0 {
		return fmt.Errorf("config: render.tick_rate must be positive, got %d", s.Render.TickRate)
	}
	if s.Render.TileSize <= 0 {
		return fmt.Errorf("config: render.tile_size must be positive, got %d", s.Render.TileSize)
	}
	return nil
}
