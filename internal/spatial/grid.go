// Package spatial indexes Voronoi cells in a bucket grid for point location.
package spatial

import (
	"math"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/voronoi"
)

// Entry is a candidate cell for a bucket, possibly reached through a seam.
type Entry struct {
	Cell int
	Tag  voronoi.WrapTag
}

// Grid covers the middle third of a diagram.
type Grid struct {
	Origin   geom.Vec2
	CellSize float64
	Cols     int
	Rows     int

	diagram *voronoi.Diagram
	buckets [][]Entry
}

// DefaultCellSize is the mean cell diameter of the diagram.
func DefaultCellSize(d *voronoi.Diagram) float64 {
	size := d.Middle().Size()
	return math.Sqrt(size.X * size.Y / float64(len(d.Cells)))
}

// New builds the index. A non-positive cellSize selects DefaultCellSize.
func New(d *voronoi.Diagram, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize(d)
	}
	mid := d.Middle()
	size := mid.Size()
	g := &Grid{
		Origin:   mid.Min,
		CellSize: cellSize,
		Cols:     max(1, int(math.Ceil(size.X/cellSize))),
		Rows:     max(1, int(math.Ceil(size.Y/cellSize))),
		diagram:  d,
	}
	g.buckets = make([][]Entry, g.Cols*g.Rows)

	for id := range d.Cells {
		b := d.Cells[id].Bounds
		g.insert(b, Entry{Cell: id, Tag: voronoi.Usual})
		if b.Min.X < mid.Min.X {
			g.insert(b.Translate(d.Offset), Entry{Cell: id, Tag: voronoi.ToRight})
		}
		if b.Max.X > mid.Max.X {
			g.insert(b.Translate(d.Offset.Scale(-1)), Entry{Cell: id, Tag: voronoi.ToLeft})
		}
	}
	return g
}

func (g *Grid) insert(b geom.Box, e Entry) {
	c0, r0 := g.coords(b.Min)
	c1, r1 := g.coords(b.Max)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			i := r*g.Cols + c
			g.buckets[i] = append(g.buckets[i], e)
		}
	}
}

// coords returns the bucket column and row of p, clamped to the grid.
func (g *Grid) coords(p geom.Vec2) (int, int) {
	c := int(math.Floor((p.X - g.Origin.X) / g.CellSize))
	r := int(math.Floor((p.Y - g.Origin.Y) / g.CellSize))
	return min(max(c, 0), g.Cols-1), min(max(r, 0), g.Rows-1)
}

// Bucket returns the candidates for p, which is wrapped into the middle third.
func (g *Grid) Bucket(p geom.Vec2) []Entry {
	c, r := g.coords(g.diagram.Wrap(p))
	return g.buckets[r*g.Cols+c]
}

// Nearest returns the candidate whose (shifted) center is closest to p, with
// p wrapped into the middle third and the center in that frame.
func (g *Grid) Nearest(p geom.Vec2) (Entry, geom.Vec2, geom.Vec2) {
	p = g.diagram.Wrap(p)
	c, r := g.coords(p)
	cands := g.buckets[r*g.Cols+c]
	core.Assert(len(cands) > 0, "spatial", "no candidates for %v", p)

	best := cands[0]
	bestCenter := g.center(best)
	bestDist := bestCenter.Dist2(p)
	for _, e := range cands[1:] {
		center := g.center(e)
		if dd := center.Dist2(p); dd < bestDist {
			best, bestCenter, bestDist = e, center, dd
		}
	}
	return best, bestCenter, p
}

func (g *Grid) center(e Entry) geom.Vec2 {
	return g.diagram.Cells[e.Cell].Center.Add(e.Tag.Shift(g.diagram.Offset))
}
