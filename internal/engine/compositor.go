package engine

import "github.com/vovakirdan/pixelcore/internal/core"

// PixelDirect writes color at an exact framebuffer coordinate.
// Out-of-bounds coordinates are silently ignored. Every other draw
// operation funnels through here.
func (e *Engine) PixelDirect(color core.Color, screen core.Point) {
	e.fb.Set(screen.X, screen.Y, color)
}

// Pixel writes color at a world position, transformed by the camera.
// Off-screen positions are silently ignored.
func (e *Engine) Pixel(color core.Color, world core.Point) {
	screen, ok := e.camera.WorldToScreen(world)
	if !ok {
		return
	}
	e.PixelDirect(color, screen)
}

// SpriteDirect draws every pixel of sprite at screen target + local offset.
// Clipping happens per pixel, so partially visible sprites are partially drawn.
func (e *Engine) SpriteDirect(sprite *core.SpriteBuffer, target core.Point) {
	for y := 0; y < sprite.Height(); y++ {
		for x := 0; x < sprite.Width(); x++ {
			c, ok := sprite.At(x, y)
			if !ok {
				continue
			}
			e.PixelDirect(c, core.Point{X: target.X + x, Y: target.Y + y})
		}
	}
}

// Sprite draws sprite at a world position. Each pixel goes through the
// camera individually, so a sprite straddling the visible boundary is
// clipped pixel by pixel.
func (e *Engine) Sprite(sprite *core.SpriteBuffer, target core.Point) {
	for y := 0; y < sprite.Height(); y++ {
		for x := 0; x < sprite.Width(); x++ {
			c, ok := sprite.At(x, y)
			if !ok {
				continue
			}
			e.Pixel(c, core.Point{X: target.X + x, Y: target.Y + y})
		}
	}
}

// Clear overwrites every framebuffer pixel with color.
func (e *Engine) Clear(color core.Color) {
	e.fb.Clear(color)
}

// FillRect fills a world-space rectangle through the camera.
func (e *Engine) FillRect(color core.Color, r core.Rect) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			e.Pixel(color, core.Point{X: x, Y: y})
		}
	}
}
