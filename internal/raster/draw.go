package raster

import (
	"image/color"
	"math"

	"toromap/internal/core"
	"toromap/internal/geom"
)

// MaxNoisyDepth bounds the recursion of DrawNoisyEdge.
const MaxNoisyDepth = 8

// DrawEdge draws the segment ab with a DDA along the dominant axis. With
// skipOccupied, pixels that already differ from the background are kept.
func (b *Bitmap) DrawEdge(a, c geom.Vec2, col color.RGBA, skipOccupied bool) {
	x0, y0 := b.ToPixel(a)
	x1, y1 := b.ToPixel(c)
	b.drawLine(x0, y0, x1, y1, col, skipOccupied)
}

func (b *Bitmap) drawLine(x0, y0, x1, y1 int, col color.RGBA, skipOccupied bool) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		b.plot(x0, y0, col, skipOccupied)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + int(math.Round(float64(dx*i)/float64(steps)))
		y := y0 + int(math.Round(float64(dy*i)/float64(steps)))
		b.plot(x, y, col, skipOccupied)
	}
}

func (b *Bitmap) plot(x, y int, col color.RGBA, skipOccupied bool) {
	if !b.In(x, y) {
		return
	}
	if skipOccupied && b.Occupied(x, y) {
		return
	}
	b.SetRGB(x, y, col)
}

// DrawPoint fills a square of side 2*half+1 pixels around p.
func (b *Bitmap) DrawPoint(p geom.Vec2, half int, col color.RGBA) {
	cx, cy := b.ToPixel(p)
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			b.plot(x, y, col, false)
		}
	}
}

// Fill floods the 4-connected background region containing p with col.
func (b *Bitmap) Fill(p geom.Vec2, col color.RGBA) {
	sx, sy := b.ToPixel(p)
	b.FillPixel(sx, sy, col)
}

// FillPixel is Fill starting from pixel coordinates.
func (b *Bitmap) FillPixel(sx, sy int, col color.RGBA) {
	if !b.In(sx, sy) || b.Occupied(sx, sy) {
		return
	}
	bg := b.Background
	if col.R == bg.R && col.G == bg.G && col.B == bg.B {
		return
	}
	stack := [][2]int{{sx, sy}}
	b.SetRGB(sx, sy, col)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			x, y := cur[0]+d[0], cur[1]+d[1]
			if !b.In(x, y) || b.Occupied(x, y) {
				continue
			}
			b.SetRGB(x, y, col)
			stack = append(stack, [2]int{x, y})
		}
	}
}

// DrawNoisyEdge draws a wiggly line from a to c that stays inside the
// quadrilateral a, p, c, q. Each level picks a random point on pq as the new
// midpoint and recurses into the two halves of the envelope.
func (b *Bitmap) DrawNoisyEdge(a, p, c, q geom.Vec2, depth int, col color.RGBA, r core.Rand) {
	depth = min(depth, MaxNoisyDepth)
	ax, ay := b.ToPixel(a)
	cx, cy := b.ToPixel(c)
	if depth <= 0 || (abs(cx-ax) <= 1 && abs(cy-ay) <= 1) {
		b.drawLine(ax, ay, cx, cy, col, false)
		return
	}
	m := p.Lerp(q, 0.2+0.6*r.Float64())
	b.DrawNoisyEdge(a, a.Lerp(p, 0.5), m, a.Lerp(q, 0.5), depth-1, col, r)
	b.DrawNoisyEdge(m, p.Lerp(c, 0.5), c, q.Lerp(c, 0.5), depth-1, col, r)
}

// fixedShift is the number of fractional bits used by FillConvex.
const fixedShift = 8

// FillConvex fills a convex polygon (either winding). Pixel centers are
// tested against every edge with integer cross products.
func (b *Bitmap) FillConvex(pts []geom.Vec2, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	type fp struct{ x, y int64 }
	sx := float64(b.W-1) / (3 * b.Space.X) * (1 << fixedShift)
	sy := float64(b.H-1) / b.Space.Y * (1 << fixedShift)
	poly := make([]fp, len(pts))
	minX, minY := int64(math.MaxInt64), int64(math.MaxInt64)
	maxX, maxY := int64(math.MinInt64), int64(math.MinInt64)
	for i, p := range pts {
		v := fp{int64(math.Round(p.X * sx)), int64(math.Round(p.Y * sy))}
		poly[i] = v
		minX, minY = min(minX, v.x), min(minY, v.y)
		maxX, maxY = max(maxX, v.x), max(maxY, v.y)
	}

	var area int64
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i].x*poly[j].y - poly[j].x*poly[i].y
	}
	if area == 0 {
		return
	}
	sign := int64(1)
	if area < 0 {
		sign = -1
	}

	const half = 1 << (fixedShift - 1)
	x0 := max(int(minX>>fixedShift), 0)
	x1 := min(int(maxX>>fixedShift)+1, b.W-1)
	y0 := max(int(minY>>fixedShift), 0)
	y1 := min(int(maxY>>fixedShift)+1, b.H-1)
	for y := y0; y <= y1; y++ {
		py := int64(y)<<fixedShift + half
		for x := x0; x <= x1; x++ {
			px := int64(x)<<fixedShift + half
			inside := true
			for i := range poly {
				a, c := poly[i], poly[(i+1)%len(poly)]
				cross := (c.x-a.x)*(py-a.y) - (c.y-a.y)*(px-a.x)
				if cross*sign < 0 {
					inside = false
					break
				}
			}
			if inside {
				b.SetRGB(x, y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
