package core

import (
	"image"
	"image/color"
	"testing"
)

// patterned returns a sprite where every pixel encodes its own coordinate.
func patterned(w, h int) *SpriteBuffer {
	s := NewSpriteBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Set(x, y, RGBA(uint8(x), uint8(y), uint8(x+y), 0xFF))
		}
	}
	return s
}

func TestSpriteSetAt(t *testing.T) {
	s := NewSpriteBuffer(4, 3)

	if !s.Set(3, 2, Red) {
		t.Error("Set(3, 2) should report an in-bounds write")
	}
	if c, ok := s.At(3, 2); !ok || c != Red {
		t.Errorf("At(3, 2) = (%v, %v), expected (%v, true)", c, ok, Red)
	}
	if s.Set(4, 0, Red) {
		t.Error("Set(4, 0) should be rejected")
	}
	if _, ok := s.At(-1, 0); ok {
		t.Error("At(-1, 0) should be rejected")
	}
}

func TestSpriteFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	img.Set(11, 11, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	s := SpriteFromImage(img)

	if s.Width() != 3 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 3x2", s.Width(), s.Height())
	}
	if c, _ := s.At(1, 1); c != RGBA(9, 8, 7, 255) {
		t.Errorf("At(1, 1) = %v, expected (9,8,7,255)", c)
	}
}

func TestCopySpriteRegion(t *testing.T) {
	src := patterned(8, 8)
	dst := NewSpriteBuffer(4, 4)

	CopySprite(src, dst, NewRect(4, 2, 4, 4), Point{})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want, _ := src.At(4+x, 2+y)
			got, _ := dst.At(x, y)
			if got != want {
				t.Errorf("dst(%d, %d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestCopySpriteClipsBothSides(t *testing.T) {
	src := patterned(4, 4)
	dst := NewSpriteBuffer(4, 4)

	// Region hangs off the source's top-left; target pushes it off the
	// destination's bottom-right. Neither may panic.
	CopySprite(src, dst, NewRect(-2, -2, 4, 4), Pt(1, 1))

	// Source (0,0) lands at local (2,2) + target (1,1) = (3,3)
	want, _ := src.At(0, 0)
	if got, _ := dst.At(3, 3); got != want {
		t.Errorf("dst(3, 3) = %v, expected %v", got, want)
	}
	if got, _ := dst.At(0, 0); got != Transparent {
		t.Errorf("dst(0, 0) = %v, expected untouched", got)
	}
}

func TestCopyEntireSprite(t *testing.T) {
	src := patterned(2, 2)
	dst := NewSpriteBuffer(4, 4)

	CopyEntireSprite(src, dst, Pt(2, 1))

	want, _ := src.At(1, 1)
	if got, _ := dst.At(3, 2); got != want {
		t.Errorf("dst(3, 2) = %v, expected %v", got, want)
	}
	if got, _ := dst.At(1, 1); got != Transparent {
		t.Errorf("dst(1, 1) = %v, expected untouched", got)
	}
}

func TestSpriteEqual(t *testing.T) {
	a := patterned(3, 3)
	b := patterned(3, 3)

	if !a.Equal(b) {
		t.Error("identical sprites should be equal")
	}
	b.Set(0, 0, Red)
	if a.Equal(b) {
		t.Error("sprites differing by one pixel should not be equal")
	}
	if a.Equal(patterned(3, 4)) {
		t.Error("sprites of different size should not be equal")
	}
}
