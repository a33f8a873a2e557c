package core

import "image/color"

// Color is a non-premultiplied RGBA pixel value, stored in the framebuffer
// as four consecutive bytes.
type Color struct {
	R, G, B, A uint8
}

// RGBA builds a Color from its four components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Hex builds an opaque Color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

// NRGBA converts c to the standard library color type.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorFrom converts any standard library color to a Color.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Predefined colors for demos and tests.
var (
	Transparent   = Color{}
	Black         = Hex(0x000000)
	White         = Hex(0xFFFFFF)
	Red           = Hex(0xCC2936)
	Green         = Hex(0x3BB273)
	Yellow        = Hex(0xE1BC29)
	Blue          = Hex(0x4D9DE0)
	Magenta       = Hex(0xFF00FF)
	Cyan          = Hex(0x2EC4B6)
	Orange        = Hex(0xF18F01)
	Gray          = Hex(0x7A7A7A)
	DarkGray      = Hex(0x2B2B2B)
	BrightWhite   = Hex(0xF7F7F7)
	BrightGreen   = Hex(0x7BE495)
	BrightMagenta = Hex(0xF26CA7)
)
