package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/pixelcore/internal/core"
)

// halfBlock draws the upper pixel as foreground and the lower as background.
const halfBlock = "▀"

const maxCachedStyles = 4096

type cellColors struct {
	top, bottom core.Color
}

// Renderer converts a framebuffer into a string of half-block cells, two
// pixels per cell. The framebuffer is scaled with nearest neighbour
// sampling to fit the cell grid, keeping its aspect ratio, and letterboxed
// in black.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[cellColors]lipgloss.Style
	canvas *image.NRGBA
}

// NewRenderer creates a renderer writing styles for lg. A nil lg uses the
// default lipgloss renderer.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		lg:     lg,
		styles: make(map[cellColors]lipgloss.Style),
	}
}

// Render draws fb into a cols×rows cell grid.
func (r *Renderer) Render(fb *core.Framebuffer, cols, rows int) string {
	if cols <= 0 || rows <= 0 || fb.Width() == 0 || fb.Height() == 0 {
		return ""
	}

	canvas := r.scale(fb, cols, rows*2)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(cols*rows*4 + rows)

	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		x := 0
		for x < cols {
			start := cellAt(canvas, x, y)
			n := 0
			for x < cols && cellAt(canvas, x, y) == start {
				n++
				x++
			}
			sb.WriteString(r.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

// scale fits fb into a w×h canvas, composited over black.
func (r *Renderer) scale(fb *core.Framebuffer, w, h int) *image.NRGBA {
	if r.canvas == nil || r.canvas.Bounds().Dx() != w || r.canvas.Bounds().Dy() != h {
		r.canvas = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	draw.Draw(r.canvas, r.canvas.Bounds(), image.NewUniform(core.Black.NRGBA()), image.Point{}, draw.Src)

	dst := fitRect(fb.Width(), fb.Height(), w, h)
	src := fb.NRGBA()
	draw.NearestNeighbor.Scale(r.canvas, dst, src, src.Bounds(), draw.Over, nil)
	return r.canvas
}

// fitRect returns the largest rectangle with the aspect ratio of srcW×srcH
// that fits w×h, centered.
func fitRect(srcW, srcH, w, h int) image.Rectangle {
	dw, dh := w, srcH*w/srcW
	if dh > h {
		dw, dh = srcW*h/srcH, h
	}
	dw, dh = max(dw, 1), max(dh, 1)
	x0, y0 := (w-dw)/2, (h-dh)/2
	return image.Rect(x0, y0, x0+dw, y0+dh)
}

func cellAt(canvas *image.NRGBA, x, y int) cellColors {
	return cellColors{
		top:    pixelAt(canvas, x, 2*y),
		bottom: pixelAt(canvas, x, 2*y+1),
	}
}

func pixelAt(canvas *image.NRGBA, x, y int) core.Color {
	i := canvas.PixOffset(x, y)
	p := canvas.Pix[i : i+4]
	return core.Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (r *Renderer) style(c cellColors) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	if len(r.styles) >= maxCachedStyles {
		clear(r.styles)
	}
	s := r.lg.NewStyle().
		Foreground(lipgloss.Color(hexColor(c.top))).
		Background(lipgloss.Color(hexColor(c.bottom)))
	r.styles[c] = s
	return s
}

func hexColor(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
