package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/core"
	"toromap/internal/geom"
)

var (
	black = color.RGBA{A: 255}
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestDrawEdgeScenario(t *testing.T) {
	b := NewBitmap(100, 50, geom.V(2, 1), black)
	x, y := b.ToPixel(geom.V(1, 1))
	require.Equal(t, 16, x)
	require.Equal(t, 49, y)

	b.DrawEdge(geom.V(0, 0), geom.V(1, 1), red, false)
	require.Equal(t, red, b.At(0, 0))
	require.Equal(t, red, b.At(16, 49))

	// One lit pixel per row, columns never jump by more than one.
	prev := -1
	for row := 0; row < 50; row++ {
		lit := []int{}
		for col := 0; col < 100; col++ {
			if b.At(col, row) == red {
				lit = append(lit, col)
			}
		}
		require.Len(t, lit, 1, "row %d", row)
		if prev >= 0 {
			d := lit[0] - prev
			require.True(t, d == 0 || d == 1, "row %d jumps from %d to %d", row, prev, lit[0])
		}
		prev = lit[0]
	}
}

func TestDrawEdgeSkipOccupied(t *testing.T) {
	b := NewBitmap(40, 20, geom.V(2, 1), black)
	b.Set(5, 0, blue)
	b.drawLine(0, 0, 10, 0, red, true)
	require.Equal(t, blue, b.At(5, 0))
	require.Equal(t, red, b.At(4, 0))
	require.Equal(t, red, b.At(6, 0))
}

func TestFillStopsAtBorder(t *testing.T) {
	b := NewBitmap(30, 30, geom.V(1, 1), black)
	b.drawLine(5, 5, 15, 5, red, false)
	b.drawLine(15, 5, 15, 15, red, false)
	b.drawLine(15, 15, 5, 15, red, false)
	b.drawLine(5, 15, 5, 5, red, false)
	b.FillPixel(10, 10, blue)

	filled := 0
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(x, y) == blue {
				filled++
				require.True(t, x > 5 && x < 15 && y > 5 && y < 15)
			}
		}
	}
	require.Equal(t, 81, filled)
	require.Equal(t, black, b.At(0, 0))
}

func TestFillConvexSquare(t *testing.T) {
	b := NewBitmap(301, 101, geom.V(1, 1), black)
	// 10x10 domain units per pixel step of 0.01 in both axes.
	sq := []geom.Vec2{geom.V(0.1, 0.1), geom.V(0.1, 0.2), geom.V(0.2, 0.2), geom.V(0.2, 0.1)}
	b.FillConvex(sq, red)
	count := 0
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.At(x, y) == red {
				count++
			}
		}
	}
	require.Equal(t, 100, count)

	// Reversed winding fills the same pixels.
	c := NewBitmap(301, 101, geom.V(1, 1), black)
	c.FillConvex([]geom.Vec2{sq[3], sq[2], sq[1], sq[0]}, red)
	require.Equal(t, b.Pix, c.Pix)
}

func TestDrawNoisyEdgeConnectsEnds(t *testing.T) {
	b := NewBitmap(300, 100, geom.V(1, 1), black)
	a, c := geom.V(0.5, 0.2), geom.V(2.5, 0.8)
	p, q := geom.V(1.2, 0.9), geom.V(1.8, 0.1)
	b.DrawNoisyEdge(a, p, c, q, MaxNoisyDepth+4, red, core.NewRNG(1))

	ax, ay := b.ToPixel(a)
	cx, cy := b.ToPixel(c)
	require.Equal(t, red, b.At(ax, ay))
	require.Equal(t, red, b.At(cx, cy))

	// The drawn pixels form one 8-connected path.
	seen := map[[2]int]bool{{ax, ay}: true}
	stack := [][2]int{{ax, ay}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := [2]int{cur[0] + dx, cur[1] + dy}
				if !b.In(n[0], n[1]) || seen[n] || b.At(n[0], n[1]) != red {
					continue
				}
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	require.True(t, seen[[2]int{cx, cy}])
}

func TestHSV(t *testing.T) {
	require.Equal(t, color.RGBA{R: 255, A: 255}, HSV(0, 1, 1))
	require.Equal(t, color.RGBA{G: 255, A: 255}, HSV(120, 1, 1))
	require.Equal(t, color.RGBA{B: 255, A: 255}, HSV(240, 1, 1))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, HSV(77, 0, 1))
	require.Equal(t, HSV(30, 0.5, 0.5), HSV(390, 0.5, 0.5))
}
