package core

import "time"

// Clock tracks wall-clock start time, the delta between consecutive ticks
// and the instantaneous frame rate derived from it.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	delta time.Duration
	fps   float64
	ticks uint64
}

// NewClock creates a clock anchored at the current time.
func NewClock() *Clock {
	return NewClockWith(time.Now)
}

// NewClockWith creates a clock that reads time from now.
// Tests use it to drive the clock deterministically.
func NewClockWith(now func() time.Time) *Clock {
	t := now()
	return &Clock{
		now:   now,
		start: t,
		last:  t,
	}
}

// Tick records the time elapsed since the previous tick (or since
// construction, for the first tick) and recomputes the frame rate.
func (c *Clock) Tick() {
	t := c.now()
	c.delta = t.Sub(c.last)
	c.last = t
	c.ticks++

	// A clock that did not advance reports 0 rather than +Inf.
	if c.delta <= 0 {
		c.delta = 0
		c.fps = 0
		return
	}
	c.fps = 1 / c.delta.Seconds()
}

// DT returns the last tick delta in seconds. Zero before the first tick.
func (c *Clock) DT() float64 {
	return c.delta.Seconds()
}

// Delta returns the last tick delta as a duration.
func (c *Clock) Delta() time.Duration {
	return c.delta
}

// FPS returns the frame rate computed by the last tick, or 0 when
// undefined (before the first tick or after a zero-length tick).
func (c *Clock) FPS() float64 {
	return c.fps
}

// SinceStart returns the wall-clock time elapsed since the clock was created.
func (c *Clock) SinceStart() time.Duration {
	return c.now().Sub(c.start)
}

// Ticks returns the number of ticks recorded so far.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
