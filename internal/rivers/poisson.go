// Package rivers places river joints, connects them into a graph and grows
// river trees from the coasts inland.
package rivers

import (
	"math"

	"toromap/internal/core"
	"toromap/internal/geom"
)

const sampleAttempts = 30

// Sample fills the box with joints at least radius apart (Bridson's
// algorithm). The box wraps along x, so the distance bound also holds across
// the seam.
func Sample(box geom.Box, radius float64, r core.Rand) []geom.Vec2 {
	size := box.Size()
	cell := radius / math.Sqrt2
	cols := max(1, int(math.Ceil(size.X/cell)))
	rows := max(1, int(math.Ceil(size.Y/cell)))
	grid := make([]int, cols*rows)
	for i := range grid {
		grid[i] = -1
	}

	coords := func(p geom.Vec2) (int, int) {
		c := int((p.X - box.Min.X) / cell)
		row := int((p.Y - box.Min.Y) / cell)
		return min(max(c, 0), cols-1), min(max(row, 0), rows-1)
	}
	dist2 := func(a, b geom.Vec2) float64 {
		dx := math.Abs(a.X - b.X)
		dx = math.Min(dx, size.X-dx)
		dy := a.Y - b.Y
		return dx*dx + dy*dy
	}
	fits := func(p geom.Vec2, pts []geom.Vec2) bool {
		c, row := coords(p)
		for dr := -3; dr <= 3; dr++ {
			rr := row + dr
			if rr < 0 || rr >= rows {
				continue
			}
			for dc := -3; dc <= 3; dc++ {
				cc := ((c+dc)%cols + cols) % cols
				if j := grid[rr*cols+cc]; j >= 0 && dist2(p, pts[j]) < radius*radius {
					return false
				}
			}
		}
		return true
	}

	first := geom.V(box.Min.X+r.Float64()*size.X, box.Min.Y+r.Float64()*size.Y)
	pts := []geom.Vec2{first}
	c, row := coords(first)
	grid[row*cols+c] = 0
	active := []int{0}

	for len(active) > 0 {
		ai := r.IntN(len(active))
		base := pts[active[ai]]
		placed := false
		for k := 0; k < sampleAttempts; k++ {
			theta := 2 * math.Pi * r.Float64()
			d := radius * (1 + r.Float64())
			p := geom.V(base.X+d*math.Cos(theta), base.Y+d*math.Sin(theta))
			if p.Y < box.Min.Y || p.Y >= box.Max.Y {
				continue
			}
			x := math.Mod(p.X-box.Min.X, size.X)
			if x < 0 {
				x += size.X
			}
			if x >= size.X {
				x = 0
			}
			p.X = box.Min.X + x
			if !fits(p, pts) {
				continue
			}
			c, row := coords(p)
			core.Assert(grid[row*cols+c] < 0, "rivers", "background cell (%d,%d) already taken", c, row)
			grid[row*cols+c] = len(pts)
			active = append(active, len(pts))
			pts = append(pts, p)
			placed = true
			break
		}
		if !placed {
			active[ai] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return pts
}
