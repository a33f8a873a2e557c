// Package engine composes the core primitives into the drawing context that
// applications receive, and drives applications through their lifecycle.
package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
)

// Engine is the single mutable context threaded through every lifecycle
// hook. It owns the framebuffer, the camera, the clock, the settings and
// the input observed in the current iteration. Hooks must not retain it
// beyond their own call.
type Engine struct {
	settings config.Settings
	fb       *core.Framebuffer
	camera   *core.Camera
	clock    *core.Clock
	input    core.InputFrame
	logger   *log.Logger
	glide    *glide
	frames   uint64

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string
	shots         []string
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithClock replaces the wall clock, typically with core.NewClockWith in tests.
func WithClock(c *core.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithScreenshotDir sets the directory screenshots are written to.
func WithScreenshotDir(dir string) Option {
	return func(e *Engine) {
		e.ScreenshotDir = dir
	}
}

// New creates an engine whose framebuffer matches the configured window size.
// A nil logger discards all output.
func New(settings config.Settings, logger *log.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w, h := settings.Window.Width, settings.Window.Height
	e := &Engine{
		settings:      settings,
		fb:            core.NewFramebuffer(w, h),
		camera:        core.NewCamera(w, h),
		clock:         core.NewClock(),
		input:         core.NewInputFrame(),
		logger:        logger,
		ScreenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Settings returns the configuration the engine was built with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Framebuffer returns the frame being drawn.
func (e *Engine) Framebuffer() *core.Framebuffer {
	return e.fb
}

// Width returns the framebuffer width.
func (e *Engine) Width() int {
	return e.fb.Width()
}

// Height returns the framebuffer height.
func (e *Engine) Height() int {
	return e.fb.Height()
}

// Camera returns the camera used by the world-space draw operations.
func (e *Engine) Camera() *core.Camera {
	return e.camera
}

// Clock returns the frame clock.
func (e *Engine) Clock() *core.Clock {
	return e.clock
}

// Input returns the actions observed in the current iteration.
func (e *Engine) Input() core.InputFrame {
	return e.input
}

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger {
	return e.logger
}

// Frames returns the number of frames presented so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Look sets eye = world + (W/2, H/2) and cancels any running glide.
func (e *Engine) Look(world core.Point) {
	e.glide = nil
	e.camera.Look(world)
}

// CenterOn moves the camera so world is drawn at the view center, and
// cancels any running glide.
func (e *Engine) CenterOn(world core.Point) {
	e.glide = nil
	e.camera.CenterOn(world)
}

// Eye returns the current camera offset.
func (e *Engine) Eye() core.Point {
	return e.camera.Eye()
}

// WorldToScreen maps a world position through the camera.
func (e *Engine) WorldToScreen(world core.Point) (core.Point, bool) {
	return e.camera.WorldToScreen(world)
}

// LoadSprites loads the configured atlas with the configured tile size.
// The returned error is fatal for callers: the atlas is a required resource.
func (e *Engine) LoadSprites() (*core.Atlas, error) {
	path := e.settings.Assets.Atlas
	tile := e.settings.Render.TileSize
	if tile <= 0 {
		tile = core.DefaultTileSize
	}

	atlas, err := core.LoadSprites(path, tile, tile)
	if err != nil {
		return nil, err
	}

	cols, rows := atlas.Grid()
	e.logger.Debug("loaded sprites", "path", path, "cols", cols, "rows", rows, "tile", tile)
	if rx, ry := atlas.Remainder(); rx != 0 || ry != 0 {
		e.logger.Debug("atlas edge truncated", "path", path, "right_px", rx, "bottom_px", ry)
	}
	return atlas, nil
}

// RunStats summarizes a finished or running session.
type RunStats struct {
	Frames   uint64
	Ticks    uint64
	Duration time.Duration
	AvgFPS   float64
}

// Stats reports frame counts and the average presented frame rate since
// the engine was created.
func (e *Engine) Stats() RunStats {
	d := e.clock.SinceStart()
	st := RunStats{
		Frames:   e.frames,
		Ticks:    e.clock.Ticks(),
		Duration: d,
	}
	if d > 0 {
		st.AvgFPS = float64(e.frames) / d.Seconds()
	}
	return st
}
