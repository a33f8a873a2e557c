package core

import "image"

// Framebuffer is a fixed-size 2D RGBA pixel grid. It is the single surface
// the engine draws into each frame and later hands to the presentation host.
//
// Pixel (x, y) lives at linear index x + y*Width, i.e. bytes
// Pix[4*(x+y*Width) : 4*(x+y*Width)+4]. Accesses outside
// [0,Width)×[0,Height) are rejected rather than wrapped onto the next row.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
}

// NewFramebuffer creates a zeroed (transparent) framebuffer.
// Non-positive dimensions produce an empty framebuffer that rejects every write.
func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, 4*width*height),
	}
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Bounds returns the framebuffer rectangle anchored at the origin.
func (f *Framebuffer) Bounds() Rect {
	return Rect{W: f.width, H: f.height}
}

// InBounds reports whether (x, y) addresses a pixel of the framebuffer.
func (f *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Index returns the linear pixel index of (x, y) and whether it is valid.
func (f *Framebuffer) Index(x, y int) (int, bool) {
	if !f.InBounds(x, y) {
		return 0, false
	}
	return x + y*f.width, true
}

// Set writes c at (x, y). Out-of-bounds coordinates are silently ignored.
func (f *Framebuffer) Set(x, y int, c Color) {
	i, ok := f.Index(x, y)
	if !ok {
		return
	}
	p := f.pix[4*i : 4*i+4 : 4*i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// At returns the color at (x, y).
// Returns Transparent for out-of-bounds coordinates.
func (f *Framebuffer) At(x, y int) Color {
	i, ok := f.Index(x, y)
	if !ok {
		return Transparent
	}
	p := f.pix[4*i : 4*i+4 : 4*i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Clear overwrites every pixel with c without allocating.
func (f *Framebuffer) Clear(c Color) {
	for i := 0; i+4 <= len(f.pix); i += 4 {
		f.pix[i] = c.R
		f.pix[i+1] = c.G
		f.pix[i+2] = c.B
		f.pix[i+3] = c.A
	}
}

// Pix exposes the raw RGBA bytes, row-major with a stride of 4*Width.
// Hosts read it when presenting; callers must not retain it across frames.
func (f *Framebuffer) Pix() []byte {
	return f.pix
}

// RGBA returns an image view sharing the framebuffer memory.
// The framebuffer stores straight alpha; image.RGBA expects premultiplied
// values, which coincide for the opaque pixels the engine normally draws.
func (f *Framebuffer) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.pix,
		Stride: 4 * f.width,
		Rect:   image.Rect(0, 0, f.width, f.height),
	}
}

// NRGBA returns a copy of the framebuffer as a straight-alpha image,
// suitable for PNG encoding.
func (f *Framebuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.pix)
	return img
}
