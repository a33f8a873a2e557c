package tui

import (
	"image"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/pixelcore/internal/core"
)

// plainRenderer renders without escape codes.
func plainRenderer() *Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(termenv.Ascii)
	return NewRenderer(lg)
}

func TestRenderCellGrid(t *testing.T) {
	r := plainRenderer()
	fb := core.NewFramebuffer(32, 16)
	fb.Clear(core.Red)

	out := r.Render(fb, 20, 6)

	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("Render produced %d lines, expected 6", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, halfBlock); n != 20 {
			t.Errorf("line %d has %d cells, expected 20", i, n)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	r := plainRenderer()

	if out := r.Render(core.NewFramebuffer(8, 8), 0, 10); out != "" {
		t.Errorf("Render with no columns = %q, expected empty", out)
	}
	if out := r.Render(core.NewFramebuffer(0, 0), 10, 10); out != "" {
		t.Errorf("Render of empty framebuffer = %q, expected empty", out)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name             string
		srcW, srcH, w, h int
		want             image.Rectangle
	}{
		{"same ratio", 8, 8, 4, 4, image.Rect(0, 0, 4, 4)},
		{"wide source", 16, 8, 10, 10, image.Rect(0, 2, 10, 7)},
		{"tall source", 8, 16, 10, 10, image.Rect(2, 0, 7, 10)},
		{"tiny target", 100, 1, 3, 3, image.Rect(0, 1, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitRect(tt.srcW, tt.srcH, tt.w, tt.h); got != tt.want {
				t.Errorf("fitRect(%d, %d, %d, %d) = %v, expected %v", tt.srcW, tt.srcH, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestScaleLetterboxesInBlack(t *testing.T) {
	r := plainRenderer()
	fb := core.NewFramebuffer(4, 2)
	fb.Clear(core.Red)

	canvas := r.scale(fb, 4, 4)

	for x := 0; x < 4; x++ {
		if got := pixelAt(canvas, x, 0); got != core.Black {
			t.Errorf("top border (%d, 0) = %v, expected black", x, got)
		}
		if got := pixelAt(canvas, x, 1); got != core.Red {
			t.Errorf("picture (%d, 1) = %v, expected red", x, got)
		}
		if got := pixelAt(canvas, x, 3); got != core.Black {
			t.Errorf("bottom border (%d, 3) = %v, expected black", x, got)
		}
	}
}

func TestScaleNearestNeighbour(t *testing.T) {
	r := plainRenderer()
	fb := core.NewFramebuffer(2, 2)
	fb.Set(0, 0, core.Red)
	fb.Set(1, 0, core.Green)
	fb.Set(0, 1, core.Blue)
	fb.Set(1, 1, core.White)

	canvas := r.scale(fb, 4, 4)

	tests := []struct {
		x, y int
		want core.Color
	}{
		{0, 0, core.Red}, {1, 1, core.Red},
		{2, 0, core.Green}, {3, 1, core.Green},
		{0, 2, core.Blue}, {1, 3, core.Blue},
		{2, 2, core.White}, {3, 3, core.White},
	}
	for _, tt := range tests {
		if got := pixelAt(canvas, tt.x, tt.y); got != tt.want {
			t.Errorf("canvas (%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCellAtPairsRows(t *testing.T) {
	canvas := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	canvas.Set(0, 0, core.Red.NRGBA())
	canvas.Set(0, 1, core.Blue.NRGBA())

	c := cellAt(canvas, 0, 0)
	if c.top != core.Red || c.bottom != core.Blue {
		t.Errorf("cellAt = %+v, expected red over blue", c)
	}
}

func TestStyleCacheIsBounded(t *testing.T) {
	r := plainRenderer()
	for i := 0; i < maxCachedStyles+10; i++ {
		r.style(cellColors{top: core.RGBA(uint8(i), uint8(i>>8), 0, 255)})
	}
	if len(r.styles) > maxCachedStyles {
		t.Errorf("style cache holds %d entries, expected at most %d", len(r.styles), maxCachedStyles)
	}
}
