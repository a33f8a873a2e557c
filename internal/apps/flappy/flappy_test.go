package flappy

import (
	"testing"
	"time"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
	"github.com/vovakirdan/pixelcore/internal/engine"
)

// nullSurface discards frames.
type nullSurface struct{}

func (nullSurface) Present(*core.Framebuffer) error { return nil }
func (nullSurface) ResizeSurface(int, int) error    { return nil }

type harness struct {
	game  *Game
	e     *engine.Engine
	sched *engine.Scheduler
	now   time.Time
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{game: New(seed), now: time.Unix(0, 0)}
	clock := core.NewClockWith(func() time.Time { return h.now })
	h.e = engine.New(config.DefaultSettings(), nil, engine.WithClock(clock))
	h.sched = engine.NewScheduler(h.game, h.e, nullSurface{})
	if err := h.sched.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return h
}

// tick advances time by d and delivers the given actions.
func (h *harness) tick(d time.Duration, actions ...core.Action) {
	h.now = h.now.Add(d)
	frame := core.NewInputFrame()
	for _, a := range actions {
		frame.Set(a)
	}
	_ = h.sched.Step(engine.Events{Input: true, Actions: frame})
}

func TestFallsOntoGround(t *testing.T) {
	h := newHarness(t, 1)
	g := h.game

	for i := 0; i < 200 && !g.GameOver(); i++ {
		g.step(false, h.e.Width())
	}

	if !g.GameOver() {
		t.Fatal("Bird never hit the ground")
	}
	if int(g.birdY) != g.floorY()-BirdSize {
		t.Errorf("birdY = %v, expected %d", g.birdY, g.floorY()-BirdSize)
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", g.Score())
	}
}

func TestFlap(t *testing.T) {
	h := newHarness(t, 1)
	g := h.game
	y := g.birdY

	g.step(true, h.e.Width())

	if g.birdVel != FlapImpulse+Gravity {
		t.Errorf("birdVel = %v, expected %v", g.birdVel, FlapImpulse+Gravity)
	}
	if g.birdY >= y {
		t.Errorf("birdY = %v after flap, expected less than %v", g.birdY, y)
	}
}

func TestPassingPipeScores(t *testing.T) {
	h := newHarness(t, 1)
	g := h.game
	g.pipes.pipes = []Pipe{{X: 4, GapY: TopMargin, GapHeight: 224}}

	for i := 0; i < 20; i++ {
		g.step(false, h.e.Width())
	}

	if g.GameOver() {
		t.Fatal("Bird crashed inside a wide gap")
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
}

func TestPipeCollision(t *testing.T) {
	h := newHarness(t, 1)
	g := h.game
	// Gap far above the bird
	g.pipes.pipes = []Pipe{{X: 8, GapY: TopMargin, GapHeight: 40}}

	for i := 0; i < 5 && !g.GameOver(); i++ {
		g.step(false, h.e.Width())
	}

	if !g.GameOver() {
		t.Error("Bird flew through a pipe")
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", g.Score())
	}
}

func TestPipeFieldSpawnsAndPrunes(t *testing.T) {
	f := newPipeField(7, 248)

	f.update(1000, 1500, 800)

	if len(f.pipes) == 0 {
		t.Fatal("No pipes spawned")
	}
	for i, p := range f.pipes {
		if p.X+PipeWidth <= 800 || p.X >= 1500 {
			t.Errorf("pipe %d at x=%d outside (800, 1500)", i, p.X)
		}
		if i > 0 && p.X-f.pipes[i-1].X != PipeSpacing {
			t.Errorf("pipe %d spacing = %d, expected %d", i, p.X-f.pipes[i-1].X, PipeSpacing)
		}
		if p.GapY < TopMargin || p.GapY+p.GapHeight > 248-BottomMargin {
			t.Errorf("pipe %d gap [%d, %d) outside margins", i, p.GapY, p.GapY+p.GapHeight)
		}
		if p.GapHeight < MinGapSize || p.GapHeight > MaxGapSize {
			t.Errorf("pipe %d gap height = %d", i, p.GapHeight)
		}
	}
}

func TestDeterministicPipes(t *testing.T) {
	a := newPipeField(42, 248)
	b := newPipeField(42, 248)
	a.update(0, 1000, -100)
	b.update(0, 1000, -100)

	if len(a.pipes) != len(b.pipes) {
		t.Fatalf("pipe counts differ: %d vs %d", len(a.pipes), len(b.pipes))
	}
	for i := range a.pipes {
		if a.pipes[i] != b.pipes[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, a.pipes[i], b.pipes[i])
		}
	}
}

func TestCameraFollowsBird(t *testing.T) {
	h := newHarness(t, 1)

	// 55ms is three fixed steps
	for i := 0; i < 3; i++ {
		h.tick(55*time.Millisecond, core.ActionConfirm)
	}

	g := h.game
	if g.steps != 9 {
		t.Fatalf("steps = %d, expected 9", g.steps)
	}
	got, ok := h.e.WorldToScreen(core.Pt(int(g.birdX), g.worldH/2))
	want := core.Pt(h.e.Width()/4, h.e.Height()/2)
	if !ok || got != want {
		t.Errorf("bird maps to %v (%v), expected %v", got, ok, want)
	}
}

func TestDrawPlacesBird(t *testing.T) {
	h := newHarness(t, 1)
	h.tick(55 * time.Millisecond)
	g := h.game

	g.Draw(h.e)

	fb := h.e.Framebuffer()
	if c := fb.At(h.e.Width()/4, int(g.birdY)); c != birdColor {
		t.Errorf("bird pixel = %v, expected %v", c, birdColor)
	}
	if c := fb.At(h.e.Width()/2, h.e.Height()-1); c != groundColor {
		t.Errorf("ground pixel = %v, expected %v", c, groundColor)
	}
}

func TestRestartAfterCrash(t *testing.T) {
	h := newHarness(t, 1)
	g := h.game
	for i := 0; i < 200 && !g.GameOver(); i++ {
		g.step(false, h.e.Width())
	}

	h.tick(55*time.Millisecond, core.ActionRestart)

	if g.GameOver() {
		t.Error("Game still over after restart")
	}
	if g.steps != 0 || g.birdX != 0 {
		t.Errorf("steps = %d, birdX = %v after restart, expected fresh game", g.steps, g.birdX)
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	h := newHarness(t, 1)

	h.tick(55*time.Millisecond, core.ActionPause)
	h.tick(55 * time.Millisecond)

	if h.game.steps != 0 {
		t.Errorf("steps = %d while paused, expected 0", h.game.steps)
	}
}
