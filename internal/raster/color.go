package raster

import (
	"image/color"
	"math"
)

// HSV converts hue (degrees), saturation and value in [0, 1] to an opaque
// color.
func HSV(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Min(math.Max(s, 0), 1)
	v = math.Min(math.Max(v, 0), 1)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// Elevation is the terrain palette used for the visual layer. Values below
// 0.5 are under water.
func Elevation(e float64) color.RGBA {
	switch {
	case e < 0.45:
		return lerpColor(rgb(12, 36, 92), rgb(40, 100, 180), e/0.45)
	case e < 0.5:
		return lerpColor(rgb(40, 100, 180), rgb(210, 200, 150), (e-0.45)/0.05)
	case e < 0.75:
		return lerpColor(rgb(70, 140, 60), rgb(110, 100, 70), (e-0.5)/0.25)
	default:
		return lerpColor(rgb(110, 100, 70), rgb(245, 245, 245), (e-0.75)/0.25)
	}
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	t = math.Min(math.Max(t, 0), 1)
	l := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t)) }
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: 255}
}
