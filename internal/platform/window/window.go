// Package window hosts pixelcore apps in a desktop window through Ebitengine.
// Ebitengine owns the loop: every Update is one scheduler step and every
// Draw uploads the last presented framebuffer to the screen, which
// Ebitengine scales to the window.
package window

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
)

// Host is an ebiten.Game driving one scheduler.
type Host struct {
	ctx      context.Context
	sched    *engine.Scheduler
	bindings Bindings
	keys     keyState
	closing  func() bool

	frame          *core.Framebuffer
	outerW, outerH int
	resized        bool
}

// NewHost binds app and e to a new window host. The app is started by
// Run, or by the caller before the first Update.
func NewHost(ctx context.Context, app engine.App, e *engine.Engine) *Host {
	h := &Host{
		ctx:      ctx,
		bindings: DefaultBindings(),
		keys:     ebitenKeys{},
		closing:  ebiten.IsWindowBeingClosed,
	}
	h.sched = engine.NewScheduler(app, e, h)
	return h
}

// Scheduler returns the scheduler the host drives.
func (h *Host) Scheduler() *engine.Scheduler {
	return h.sched
}

// Update runs one scheduler step. It ends the game loop once the app has
// stopped.
func (h *Host) Update() error {
	frame, quit := h.bindings.Frame(h.keys)
	ev := engine.Events{
		Input:   true,
		Actions: frame,
		Resized: h.resized,
		Width:   h.outerW,
		Height:  h.outerH,
		Close:   quit || h.closing() || h.ctx.Err() != nil,
	}
	h.resized = false

	if err := h.sched.Step(ev); err != nil {
		return err
	}
	if h.sched.State() == engine.StateStopped {
		return ebiten.Termination
	}
	return nil
}

// Draw uploads the last presented frame.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.frame == nil {
		return
	}
	screen.WritePixels(h.frame.Pix())
}

// Layout keeps the logical screen at framebuffer size and notes window
// size changes for the next step.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.outerW || outsideHeight != h.outerH {
		h.outerW, h.outerH = outsideWidth, outsideHeight
		h.resized = true
	}
	fb := h.sched.Engine().Framebuffer()
	return fb.Width(), fb.Height()
}

// Present keeps fb for the next Draw.
func (h *Host) Present(fb *core.Framebuffer) error {
	h.frame = fb
	return nil
}

// ResizeSurface accepts any positive window size; the framebuffer keeps
// its resolution and is scaled.
func (h *Host) ResizeSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", width, height)
	}
	return nil
}

// Run opens a window for app and blocks until it closes or ctx is
// cancelled. The engine is returned even on error so callers can read its
// stats.
func Run(ctx context.Context, app engine.App, settings config.Settings, logger *log.Logger, opts ...engine.Option) (*engine.Engine, error) {
	e := engine.New(settings, logger, opts...)
	h := NewHost(ctx, app, e)
	if err := h.sched.Start(); err != nil {
		return e, err
	}

	w := settings.Window
	scale := max(w.Scale, 1)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width*scale, w.Height*scale)
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetFullscreen(w.Fullscreen)
	ebiten.SetTPS(settings.Render.TickRate)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(h)

	// RunGame can return without a final step, e.g. on a graphics error
	h.sched.Stop()
	if err != nil {
		return e, fmt.Errorf("window: %w", err)
	}
	return e, nil
}
