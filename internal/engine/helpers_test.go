package engine

import (
	"time"

	"github.com/vovakirdan/pixelcore/internal/config"
	"github.com/vovakirdan/pixelcore/internal/core"
)

// fakeTime is a manually advanced time source.
type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time {
	return f.t
}

func (f *fakeTime) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func testSettings(w, h int) config.Settings {
	s := config.DefaultSettings()
	s.Window.Width = w
	s.Window.Height = h
	return s
}

// newTestEngine creates a w×h engine whose clock advances only when told to.
func newTestEngine(w, h int) (*Engine, *fakeTime) {
	ft := &fakeTime{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	e := New(testSettings(w, h), nil, WithClock(core.NewClockWith(ft.now)))
	return e, ft
}
