package engine

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
)

// recorder collects hook and surface calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(s string) {
	r.calls = append(r.calls, s)
}

type recordingApp struct {
	rec      *recorder
	startErr error
	inputs   []core.InputFrame
	ends     int
}

func (a *recordingApp) Start(e *Engine) error {
	a.rec.add("start")
	return a.startErr
}

func (a *recordingApp) Input(e *Engine) {
	a.rec.add("input")
	a.inputs = append(a.inputs, e.Input())
}

func (a *recordingApp) Draw(e *Engine) {
	a.rec.add("draw")
	e.Clear(core.Black)
}

func (a *recordingApp) End(e *Engine) {
	a.rec.add("end")
	a.ends++
}

// scriptedHost replays events and then asks to close.
type scriptedHost struct {
	rec        *recorder
	events     []Events
	presentErr error
	resizes    [][2]int
}

func (h *scriptedHost) Poll() Events {
	if len(h.events) == 0 {
		return Events{Close: true}
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev
}

func (h *scriptedHost) Present(fb *core.Framebuffer) error {
	h.rec.add("present")
	return h.presentErr
}

func (h *scriptedHost) ResizeSurface(width, height int) error {
	h.rec.add("resize")
	h.resizes = append(h.resizes, [2]int{width, height})
	return nil
}

func newTestScheduler(mode config.RedrawMode) (*Scheduler, *recordingApp, *scriptedHost, *fakeTime) {
	rec := &recorder{}
	e, ft := newTestEngine(8, 8)
	e.settings.Render.Redraw = mode
	app := &recordingApp{rec: rec}
	host := &scriptedHost{rec: rec}
	return NewScheduler(app, e, host), app, host, ft
}

func TestSchedulerIterationOrder(t *testing.T) {
	s, _, host, _ := newTestScheduler(config.RedrawContinuous)

	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if s.State() != StateRunning {
		t.Errorf("State() = %v, expected running", s.State())
	}

	err := s.Step(Events{Input: true, Resized: true, Width: 40, Height: 30, Close: true})
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}

	want := []string{"start", "resize", "input", "draw", "present", "end"}
	if !reflect.DeepEqual(host.rec.calls, want) {
		t.Errorf("calls = %v, expected %v", host.rec.calls, want)
	}
	if len(host.resizes) != 1 || host.resizes[0] != [2]int{40, 30} {
		t.Errorf("resizes = %v, expected [[40 30]]", host.resizes)
	}
	if s.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", s.State())
	}
}

func TestSchedulerEndRunsOnce(t *testing.T) {
	s, app, _, _ := newTestScheduler(config.RedrawContinuous)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	_ = s.Step(Events{Close: true})
	_ = s.Step(Events{Close: true})
	_ = s.Step(Events{Input: true})
	s.Stop()

	if app.ends != 1 {
		t.Errorf("End called %d times, expected 1", app.ends)
	}
}

func TestSchedulerStepBeforeStart(t *testing.T) {
	s, _, host, _ := newTestScheduler(config.RedrawContinuous)

	if err := s.Step(Events{Input: true}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Step() error = %v, expected ErrNotStarted", err)
	}
	if len(host.rec.calls) != 0 {
		t.Errorf("calls = %v, expected none", host.rec.calls)
	}
}

func TestSchedulerInputOnlyWhenObserved(t *testing.T) {
	s, app, _, _ := newTestScheduler(config.RedrawContinuous)
	_ = s.Start()

	_ = s.Step(Events{})
	_ = s.Step(Events{})

	if len(app.inputs) != 0 {
		t.Errorf("Input called %d times, expected 0", len(app.inputs))
	}
	if s.Engine().Clock().Ticks() != 0 {
		t.Errorf("Ticks() = %d, expected 0 without input", s.Engine().Clock().Ticks())
	}
	if s.Engine().Frames() != 2 {
		t.Errorf("Frames() = %d, expected 2 in continuous mode", s.Engine().Frames())
	}
}

func TestSchedulerTicksClockOnInput(t *testing.T) {
	s, app, _, ft := newTestScheduler(config.RedrawContinuous)
	_ = s.Start()

	frame := core.NewInputFrame()
	frame.Set(core.ActionLeft)

	ft.advance(20 * time.Millisecond)
	_ = s.Step(Events{Input: true, Actions: frame})

	clock := s.Engine().Clock()
	if clock.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", clock.Ticks())
	}
	if clock.Delta() != 20*time.Millisecond {
		t.Errorf("Delta() = %v, expected 20ms", clock.Delta())
	}
	if len(app.inputs) != 1 || !app.inputs[0].Has(core.ActionLeft) {
		t.Errorf("Input saw %v, expected left", app.inputs)
	}

	// The engine keeps its own copy of the frame
	frame.Clear()
	if !s.Engine().Input().Has(core.ActionLeft) {
		t.Error("Engine input changed when the host reused its frame")
	}
}

func TestSchedulerRedrawOnInputCadence(t *testing.T) {
	s, _, host, _ := newTestScheduler(config.RedrawOnInput)
	_ = s.Start()

	_ = s.Step(Events{})                  // first frame is always drawn
	_ = s.Step(Events{})                  // nothing happened
	_ = s.Step(Events{Input: true})       // input
	_ = s.Step(Events{Redraw: true})      // host request
	_ = s.Step(Events{Resized: true, Width: 8, Height: 8})

	want := []string{
		"start",
		"draw", "present",
		"input", "draw", "present",
		"draw", "present",
		"resize", "draw", "present",
	}
	if !reflect.DeepEqual(host.rec.calls, want) {
		t.Errorf("calls = %v, expected %v", host.rec.calls, want)
	}
	if s.Engine().Frames() != 4 {
		t.Errorf("Frames() = %d, expected 4", s.Engine().Frames())
	}
}

func TestSchedulerStartFailure(t *testing.T) {
	s, app, host, _ := newTestScheduler(config.RedrawContinuous)
	app.startErr = errors.New("no assets")

	err := s.Run(context.Background(), host)
	if err == nil {
		t.Fatal("Run() should fail when Start fails")
	}
	if !errors.Is(err, app.startErr) {
		t.Errorf("Run() error = %v, expected to wrap %v", err, app.startErr)
	}
	if app.ends != 0 {
		t.Errorf("End called %d times, expected 0", app.ends)
	}
	if s.State() != StateStopped {
		t.Errorf("State() = %v, expected stopped", s.State())
	}
}

func TestSchedulerPresentFailureEnds(t *testing.T) {
	s, app, host, _ := newTestScheduler(config.RedrawContinuous)
	host.presentErr = errors.New("surface lost")
	host.events = []Events{{Input: true}, {Input: true}}

	err := s.Run(context.Background(), host)
	if !errors.Is(err, host.presentErr) {
		t.Errorf("Run() error = %v, expected to wrap %v", err, host.presentErr)
	}
	if app.ends != 1 {
		t.Errorf("End called %d times, expected 1", app.ends)
	}
	if len(app.inputs) != 1 {
		t.Errorf("Input called %d times, expected 1", len(app.inputs))
	}
}

func TestSchedulerRunUntilClose(t *testing.T) {
	s, app, host, _ := newTestScheduler(config.RedrawContinuous)
	host.events = []Events{{Input: true}, {Input: true}, {Input: true}}

	if err := s.Run(context.Background(), host); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(app.inputs) != 3 {
		t.Errorf("Input called %d times, expected 3", len(app.inputs))
	}
	// Three input iterations plus the closing one
	if s.Engine().Frames() != 4 {
		t.Errorf("Frames() = %d, expected 4", s.Engine().Frames())
	}
	if app.ends != 1 {
		t.Errorf("End called %d times, expected 1", app.ends)
	}
}

// endlessHost never closes on its own.
type endlessHost struct {
	polls  int
	cancel context.CancelFunc
}

func (h *endlessHost) Poll() Events {
	h.polls++
	if h.polls == 5 {
		h.cancel()
	}
	return Events{Input: true}
}

func (h *endlessHost) Present(fb *core.Framebuffer) error { return nil }

func (h *endlessHost) ResizeSurface(width, height int) error { return nil }

func TestLaunchCancelEndsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := &recordingApp{rec: &recorder{}}
	host := &endlessHost{cancel: cancel}

	e, err := Launch(ctx, app, host, testSettings(4, 4), nil)
	if err != nil {
		t.Fatalf("Launch() failed: %v", err)
	}
	if app.ends != 1 {
		t.Errorf("End called %d times, expected 1", app.ends)
	}
	if host.polls != 5 {
		t.Errorf("polls = %d, expected 5", host.polls)
	}
	if e.Frames() != 5 {
		t.Errorf("Frames() = %d, expected 5", e.Frames())
	}
}

func TestStateString(t *testing.T) {
	states := map[State]string{
		StateStarting: "starting",
		StateRunning:  "running",
		StateEnding:   "ending",
		StateStopped:  "stopped",
		State(42):     "unknown",
	}
	for s, want := range states {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, expected %q", int(s), s.String(), want)
		}
	}
}
