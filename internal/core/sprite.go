package core

import (
	"image"
	"image/draw"
)

// SpriteBuffer is an owned RGBA pixel buffer of fixed size, typically one
// tile sliced out of an atlas. Sprites are treated as immutable once loaded.
type SpriteBuffer struct {
	width  int
	height int
	pix    []byte
}

// NewSpriteBuffer allocates a transparent sprite of the given size.
func NewSpriteBuffer(width, height int) *SpriteBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &SpriteBuffer{
		width:  width,
		height: height,
		pix:    make([]byte, 4*width*height),
	}
}

// SpriteFromImage copies any image into a new sprite buffer.
// The sprite origin corresponds to img.Bounds().Min.
func SpriteFromImage(img image.Image) *SpriteBuffer {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &SpriteBuffer{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    rgba.Pix,
	}
}

// Width returns the sprite width in pixels.
func (s *SpriteBuffer) Width() int {
	return s.width
}

// Height returns the sprite height in pixels.
func (s *SpriteBuffer) Height() int {
	return s.height
}

// At returns the pixel at (x, y) and whether the coordinate is inside the sprite.
func (s *SpriteBuffer) At(x, y int) (Color, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Color{}, false
	}
	i := 4 * (x + y*s.width)
	return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}, true
}

// Set writes c at (x, y) and reports whether the coordinate was inside the sprite.
func (s *SpriteBuffer) Set(x, y int, c Color) bool {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return false
	}
	i := 4 * (x + y*s.width)
	s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = c.R, c.G, c.B, c.A
	return true
}

// Fill sets every pixel of the sprite to c.
func (s *SpriteBuffer) Fill(c Color) {
	for i := 0; i+4 <= len(s.pix); i += 4 {
		s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Equal reports whether two sprites have the same size and pixels.
func (s *SpriteBuffer) Equal(other *SpriteBuffer) bool {
	if s.width != other.width || s.height != other.height {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// CopySprite copies the region bounds of from into to, placing the region's
// top-left corner at target. Source pixels outside from and destination
// pixels outside to are skipped.
func CopySprite(from, to *SpriteBuffer, bounds Rect, target Point) {
	for y := bounds.Y; y < bounds.Bottom(); y++ {
		for x := bounds.X; x < bounds.Right(); x++ {
			c, ok := from.At(x, y)
			if !ok {
				continue
			}
			to.Set(target.X+x-bounds.X, target.Y+y-bounds.Y, c)
		}
	}
}

// CopyEntireSprite copies all of from into to at target.
func CopyEntireSprite(from, to *SpriteBuffer, target Point) {
	CopySprite(from, to, Rect{W: from.width, H: from.height}, target)
}
