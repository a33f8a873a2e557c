package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
)

// App is a program driven by the scheduler. It owns its own state; the
// engine is only borrowed for the duration of each call.
type App interface {
	// Start runs once before the first iteration. A returned error aborts
	// the run without calling End.
	Start(e *Engine) error
	// Input runs on every iteration that observed an input pass. It may
	// mutate app state and the camera.
	Input(e *Engine)
	// Draw renders the current state into the framebuffer. It must not
	// mutate app state.
	Draw(e *Engine)
	// End runs exactly once when the run stops.
	End(e *Engine)
}

// Events is what a host observed since the previous iteration.
type Events struct {
	// Input is true when the host completed an input pass, even if no
	// action was pressed.
	Input   bool
	Actions core.InputFrame

	Resized       bool
	Width, Height int

	// Redraw is an explicit redraw request from the host.
	Redraw bool
	Close  bool
}

// InputSource yields events to pull-based loops.
type InputSource interface {
	Poll() Events
}

// Surface is where finished frames go.
type Surface interface {
	Present(fb *core.Framebuffer) error
	ResizeSurface(width, height int) error
}

// Host is both the input source and the presentation surface of one run.
type Host interface {
	InputSource
	Surface
}

// State is the scheduler lifecycle state.
type State int

const (
	StateStarting State = iota
	StateRunning
	StateEnding
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateEnding:
		return "ending"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrNotStarted is returned by Step before Start succeeded.
var ErrNotStarted = errors.New("engine: scheduler not started")

// Scheduler sequences an App's hooks against a surface. It is not safe for
// concurrent use: one loop owns it.
type Scheduler struct {
	app     App
	engine  *Engine
	surface Surface
	redraw  config.RedrawMode
	state   State
	drawn   bool
}

// NewScheduler binds app, engine and surface. Redraw cadence comes from the
// engine settings.
func NewScheduler(app App, e *Engine, surface Surface) *Scheduler {
	mode := e.settings.Render.Redraw
	if !mode.Valid() {
		mode = config.RedrawContinuous
	}
	return &Scheduler{
		app:     app,
		engine:  e,
		surface: surface,
		redraw:  mode,
		state:   StateStarting,
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Engine returns the engine the scheduler drives.
func (s *Scheduler) Engine() *Engine {
	return s.engine
}

// Start calls App.Start and moves to Running. Calling it again is a no-op.
func (s *Scheduler) Start() error {
	if s.state != StateStarting {
		return nil
	}
	if err := s.app.Start(s.engine); err != nil {
		s.state = StateStopped
		return fmt.Errorf("engine: start: %w", err)
	}
	s.state = StateRunning
	s.engine.logger.Debug("scheduler running", "redraw", s.redraw)
	return nil
}

// Step runs one iteration: resize, tick, input, draw, present and, on a
// close request, end. A surface failure ends the app and is returned.
// Steps after the scheduler stopped are ignored.
func (s *Scheduler) Step(ev Events) error {
	switch s.state {
	case StateStarting:
		return ErrNotStarted
	case StateEnding, StateStopped:
		return nil
	}
	e := s.engine

	if ev.Resized {
		if err := s.surface.ResizeSurface(ev.Width, ev.Height); err != nil {
			s.stop()
			return fmt.Errorf("engine: resize surface: %w", err)
		}
	}

	if ev.Input {
		e.clock.Tick()
		e.advanceGlide(float32(e.clock.DT()))
		e.input = ev.Actions.Clone()
		if e.input.Has(core.ActionScreenshot) {
			e.Screenshot("capture")
		}
		s.app.Input(e)
	}

	if s.redrawDue(ev) {
		s.app.Draw(e)
		if err := s.surface.Present(e.fb); err != nil {
			s.stop()
			return fmt.Errorf("engine: present: %w", err)
		}
		e.frames++
		s.drawn = true
		e.flushScreenshots()
	}

	if ev.Close {
		s.stop()
	}
	return nil
}

// Stop ends a running app without a further iteration.
func (s *Scheduler) Stop() {
	if s.state == StateRunning {
		s.stop()
	}
}

func (s *Scheduler) stop() {
	if s.state != StateRunning {
		return
	}
	s.state = StateEnding
	s.app.End(s.engine)
	s.state = StateStopped
	st := s.engine.Stats()
	s.engine.logger.Debug("scheduler stopped", "frames", st.Frames, "duration", st.Duration, "avg_fps", st.AvgFPS)
}

func (s *Scheduler) redrawDue(ev Events) bool {
	if s.redraw == config.RedrawContinuous {
		return true
	}
	return !s.drawn || ev.Input || ev.Resized || ev.Redraw
}

// Run starts the app if needed and loops over src until the scheduler
// stops. Cancelling ctx is treated as a close request.
func (s *Scheduler) Run(ctx context.Context, src InputSource) error {
	if err := s.Start(); err != nil {
		return err
	}
	for s.state == StateRunning {
		ev := src.Poll()
		if ctx.Err() != nil {
			ev.Close = true
		}
		if err := s.Step(ev); err != nil {
			return err
		}
	}
	return nil
}

// Launch builds a fresh engine for settings and runs app on host until it
// stops. The engine is returned even on error so callers can read its stats.
func Launch(ctx context.Context, app App, host Host, settings config.Settings, logger *log.Logger, opts ...Option) (*Engine, error) {
	e := New(settings, logger, opts...)
	err := NewScheduler(app, e, host).Run(ctx, host)
	return e, err
}
