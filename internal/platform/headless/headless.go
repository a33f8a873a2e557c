// Package headless runs pixelcore apps without a display, for snapshots,
// scripted checks and benchmarks.
package headless

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
)

// DefaultFrames is the number of iterations run when none is given.
const DefaultFrames = 60

// Script injects actions at given iterations, counted from zero.
type Script map[int][]core.Action

// Options configure a headless run.
type Options struct {
	// Frames is the number of iterations before the host requests close.
	Frames int
	// Pace sleeps between iterations; zero runs as fast as possible.
	Pace   time.Duration
	Script Script
}

// Host is a pull-based input source and an offscreen surface.
type Host struct {
	opts      Options
	width     int
	height    int
	polled    int
	presented int
	last      *image.NRGBA
}

// NewHost creates a host reporting a width×height surface.
func NewHost(width, height int, opts Options) *Host {
	if opts.Frames <= 0 {
		opts.Frames = DefaultFrames
	}
	return &Host{opts: opts, width: width, height: height}
}

// Poll returns the next scripted iteration. The first one reports the
// surface size; the last one requests close.
func (h *Host) Poll() engine.Events {
	if h.polled > 0 && h.opts.Pace > 0 {
		time.Sleep(h.opts.Pace)
	}
	n := h.polled
	h.polled++

	ev := engine.Events{Input: true, Actions: core.NewInputFrame()}
	for _, a := range h.opts.Script[n] {
		ev.Actions.Set(a)
	}
	if n == 0 {
		ev.Resized = true
		ev.Width, ev.Height = h.width, h.height
	}
	if h.polled >= h.opts.Frames {
		ev.Close = true
	}
	return ev
}

// Present keeps a copy of fb.
func (h *Host) Present(fb *core.Framebuffer) error {
	h.last = fb.NRGBA()
	h.presented++
	return nil
}

// ResizeSurface records the new size.
func (h *Host) ResizeSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("headless: invalid size %dx%d", width, height)
	}
	h.width, h.height = width, height
	return nil
}

// Last returns a copy of the last presented frame, or nil.
func (h *Host) Last() *image.NRGBA {
	return h.last
}

// Presented returns the number of presented frames.
func (h *Host) Presented() int {
	return h.presented
}

// Run runs app for opts.Frames iterations. When snapshot is not empty the
// last presented frame is written there as PNG.
func Run(ctx context.Context, app engine.App, settings config.Settings, logger *log.Logger, opts Options, snapshot string, engineOpts ...engine.Option) (*engine.Engine, error) {
	h := NewHost(settings.Window.Width, settings.Window.Height, opts)
	e, err := engine.Launch(ctx, app, h, settings, logger, engineOpts...)
	if err != nil {
		return e, err
	}

	if snapshot != "" {
		if h.Last() == nil {
			return e, fmt.Errorf("headless: no frame was presented")
		}
		if err := engine.WritePNG(snapshot, h.Last()); err != nil {
			return e, err
		}
		e.Logger().Info("snapshot saved", "path", snapshot, "frames", h.Presented())
	}
	return e, nil
}

// ParseScript parses "iteration:action[+action],..." such as
// "0:right,10:down+confirm". Action names are case-insensitive.
func ParseScript(s string) (Script, error) {
	script := Script{}
	s = strings.TrimSpace(s)
	if s == "" {
		return script, nil
	}

	for _, part := range strings.Split(s, ",") {
		at, names, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			return nil, fmt.Errorf("headless: script entry %q lacks an iteration", part)
		}
		n, err := strconv.Atoi(at)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("headless: invalid iteration %q", at)
		}
		for _, name := range strings.Split(names, "+") {
			a, ok := core.ParseAction(name)
			if !ok {
				return nil, fmt.Errorf("headless: unknown action %q", name)
			}
			script[n] = append(script[n], a)
		}
	}
	return script, nil
}
