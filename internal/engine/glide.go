package engine

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/pixelcore/internal/core"
)

// glide animates the camera eye towards a CenterOn target.
type glide struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Glide animates the camera until world is at the view center, over
// duration seconds. The eye advances once per clock tick. A zero or
// negative duration behaves like CenterOn.
func (e *Engine) Glide(world core.Point, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		e.CenterOn(world)
		return
	}
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	from := e.camera.Eye()
	to := e.camera.CenterTarget(world)
	e.glide = &glide{
		tweenX: gween.New(float32(from.X), float32(to.X), duration, easeFn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), duration, easeFn),
	}
}

// Gliding reports whether a camera glide is in progress.
func (e *Engine) Gliding() bool {
	return e.glide != nil
}

// advanceGlide moves the eye by dt seconds along the active glide.
func (e *Engine) advanceGlide(dt float32) {
	g := e.glide
	if g == nil {
		return
	}

	eye := e.camera.Eye()
	if !g.doneX {
		val, done := g.tweenX.Update(dt)
		eye.X = int(math.Round(float64(val)))
		g.doneX = done
	}
	if !g.doneY {
		val, done := g.tweenY.Update(dt)
		eye.Y = int(math.Round(float64(val)))
		g.doneY = done
	}
	e.camera.SetEye(eye)

	if g.doneX && g.doneY {
		e.glide = nil
	}
}
