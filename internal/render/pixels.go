package render

import (
	"image/color"
	"math"
)

// Shade tints an RGBA buffer with hillshading derived from the alpha channel
// of heights, which stores quantized elevation. Pixels below seaLevel are left
// transparent.
func Shade(buf, heights []byte, w, h int, seaLevel uint8) {
	total := w * h
	if len(buf) < 4*total || len(heights) < 4*total {
		return
	}
	const (
		maxAlpha = 150.0
		// light from the north west
		lx, ly = -0.7071, -0.7071
	)
	at := func(x, y int) float64 {
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		return float64(heights[4*(y*w+x)+3])
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := 4 * (y*w + x)
			if heights[base+3] < seaLevel {
				buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
				continue
			}
			dx := (at(x+1, y) - at(x-1, y)) / 2
			dy := (at(x, y+1) - at(x, y-1)) / 2
			// negative facing the light, positive facing away
			facing := (dx*lx + dy*ly) / 32
			facing = math.Max(-1, math.Min(1, facing))
			col := shadeColor(facing)
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = uint8(math.Round(maxAlpha * math.Abs(facing)))
		}
	}
}

func shadeColor(facing float64) color.RGBA {
	if facing < 0 {
		return color.RGBA{R: 255, G: 250, B: 230, A: 255}
	}
	return color.RGBA{R: 10, G: 10, B: 30, A: 255}
}

// Opaque copies src into dst with alpha forced to 255.
func Opaque(dst, src []byte) {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	for i := 3; i < n; i += 4 {
		dst[i] = 255
	}
}
