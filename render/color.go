package render

import "image/color"

// Color is a straight-alpha sRGB color with float channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Named colors.
var (
	White  = Color{1, 1, 1, 1}
	Black  = Color{0, 0, 0, 1}
	Gray   = Color{0.5, 0.5, 0.5, 1}
	Indigo = Color{0.29, 0, 0.51, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// Scale multiplies the color channels by f, keeping alpha, clamped to [0, 1].
func (c Color) Scale(f float32) Color {
	return Color{clamp01(c.R * f), clamp01(c.G * f), clamp01(c.B * f), c.A}
}

// RGBA converts to the standard library's 8-bit premultiplied color.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// ClearColor is the background the host clears each frame to.
type ClearColor struct {
	Color Color
}
