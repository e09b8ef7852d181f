// Package voronoi builds the Voronoi diagram of the seed points over a
// horizontally cyclic domain. The domain is tripled: seeds live in the middle
// third and their shifted copies realise the wrap-around. Only middle-third
// cells are stored; neighbors reached across a seam carry a WrapTag.
package voronoi

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"

	"toromap/internal/geom"
)

// Diagram is the set of middle-third cells plus the domain extents.
type Diagram struct {
	SpaceMax geom.Vec2
	Offset   geom.Vec2
	Cells    []Cell
}

// Build triangulates the seeds and their seam copies and derives the clipped
// cells. Seeds outside the middle third are wrapped into it.
func Build(seeds []geom.Vec2, spaceMax geom.Vec2) (*Diagram, error) {
	if len(seeds) < 2 {
		return nil, fmt.Errorf("voronoi: need at least 2 seeds, got %d", len(seeds))
	}
	if spaceMax.X <= 0 || spaceMax.Y <= 0 {
		return nil, fmt.Errorf("voronoi: invalid extent %v", spaceMax)
	}
	d := &Diagram{SpaceMax: spaceMax, Offset: geom.V(spaceMax.X/3, 0)}
	centers := make([]geom.Vec2, len(seeds))
	for i, s := range seeds {
		centers[i] = d.Wrap(s)
	}
	if err := d.rebuild(centers); err != nil {
		return nil, err
	}
	return d, nil
}

// Relax runs Lloyd relaxation: every center moves to the mean of its polygon
// points and the diagram is rebuilt.
func (d *Diagram) Relax(iterations int) error {
	for it := 0; it < iterations; it++ {
		centers := make([]geom.Vec2, len(d.Cells))
		for i := range d.Cells {
			centers[i] = d.Wrap(geom.Mean(d.Cells[i].Points))
		}
		d.Cells = nil
		if err := d.rebuild(centers); err != nil {
			return fmt.Errorf("relaxation pass %d: %w", it+1, err)
		}
	}
	return nil
}

// Box is the full tripled domain.
func (d *Diagram) Box() geom.Box {
	return geom.Box{Max: d.SpaceMax}
}

// Middle is the authoritative middle third.
func (d *Diagram) Middle() geom.Box {
	return geom.Box{Min: geom.V(d.Offset.X, 0), Max: geom.V(2*d.Offset.X, d.SpaceMax.Y)}
}

// Wrap maps p into the middle third, clamping y to the domain.
func (d *Diagram) Wrap(p geom.Vec2) geom.Vec2 {
	return WrapInto(p, d.Middle())
}

// WrapInto maps p.X cyclically into [mid.Min.X, mid.Max.X) and clamps p.Y.
func WrapInto(p geom.Vec2, mid geom.Box) geom.Vec2 {
	period := mid.Max.X - mid.Min.X
	x := math.Mod(p.X-mid.Min.X, period)
	if x < 0 {
		x += period
	}
	if x >= period {
		x = 0
	}
	y := math.Min(math.Max(p.Y, mid.Min.Y), mid.Max.Y)
	return geom.V(mid.Min.X+x, y)
}

// NeighborCenter returns the center of e's neighbor in the frame of the cell
// owning e.
func (d *Diagram) NeighborCenter(e Edge) geom.Vec2 {
	return d.Cells[e.Neighbor].Center.Add(e.Tag.Shift(d.Offset))
}

// Centers returns a copy of the cell centers.
func (d *Diagram) Centers() []geom.Vec2 {
	out := make([]geom.Vec2, len(d.Cells))
	for i := range d.Cells {
		out[i] = d.Cells[i].Center
	}
	return out
}

// flatSpread and flatJitter are fractions of the domain height. Centers whose
// y values all lie within flatSpread are spread apart by multiples of
// flatJitter.
const (
	flatSpread = 1e-4
	flatJitter = 1e-3
)

// spreadFlat separates centers that share one y. Full-height strip cells relax
// onto the horizontal midline, and the tripled points would then be collinear
// with no triangulation.
func spreadFlat(centers []geom.Vec2, height float64) {
	lo, hi := centers[0].Y, centers[0].Y
	for _, c := range centers[1:] {
		lo = math.Min(lo, c.Y)
		hi = math.Max(hi, c.Y)
	}
	if hi-lo > flatSpread*height {
		return
	}
	for i := range centers {
		dy := flatJitter * height * float64(1+i/2)
		if i%2 == 0 {
			dy = -dy
		}
		y := centers[i].Y + dy
		if y < 0 || y > height {
			y = centers[i].Y - dy
		}
		centers[i].Y = y
	}
}

func (d *Diagram) rebuild(centers []geom.Vec2) error {
	n := len(centers)
	if n < 2 {
		return fmt.Errorf("voronoi: need at least 2 seeds, got %d", n)
	}
	spreadFlat(centers, d.SpaceMax.Y)
	all := Triple(centers, d.Offset)
	pts := make([]delaunay.Point, len(all))
	for i, p := range all {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return fmt.Errorf("voronoi: triangulate %d seeds: %w", n, err)
	}

	r := newRing(tri.Triangles, tri.Halfedges, all)
	box := d.Box()
	far := 4 * (d.SpaceMax.X + d.SpaceMax.Y)
	eps := 1e-12 * (d.SpaceMax.X + d.SpaceMax.Y)
	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		raw := r.rawCell(i, far)
		cells[i] = clipCell(all[i], raw, box, n, eps)
	}
	d.Cells = cells
	return nil
}
