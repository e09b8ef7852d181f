package worldgen

import (
	"math"
	"sort"

	"toromap/internal/geom"
	"toromap/internal/plates"
	"toromap/internal/voronoi"
)

// Tour is a closed Catmull-Rom loop through plate seed centers, ordered by x
// and continued across the seam.
type Tour struct {
	points []geom.Vec2
	off    geom.Vec2
	mid    geom.Box
}

// NewTour uses the LAND seeds when at least two exist, otherwise all seeds.
func NewTour(d *voronoi.Diagram, p *plates.Plates) *Tour {
	var land, all []geom.Vec2
	for _, pl := range p.Plates {
		c := d.Cells[pl.Seed].Center
		all = append(all, c)
		if pl.Type == plates.TypeLand {
			land = append(land, c)
		}
	}
	pts := all
	if len(land) >= 2 {
		pts = land
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return &Tour{points: pts, off: d.Offset, mid: d.Middle()}
}

// Points returns the control points.
func (t *Tour) Points() []geom.Vec2 { return t.points }

// control returns control point i of the unrolled loop: past the last point
// the sequence continues one period to the right.
func (t *Tour) control(i int) geom.Vec2 {
	n := len(t.points)
	k := i / n
	r := i % n
	if r < 0 {
		r += n
		k--
	}
	return t.points[r].Add(t.off.Scale(float64(k)))
}

// Point returns the position (wrapped into the middle third) and its
// derivative with respect to offset. offset is taken modulo 1.
func (t *Tour) Point(offset float64) (geom.Vec2, geom.Vec2) {
	n := len(t.points)
	if n == 0 {
		return geom.Vec2{}, geom.Vec2{}
	}
	offset -= math.Floor(offset)
	u := offset * float64(n)
	i := int(math.Floor(u))
	s := u - float64(i)

	p0, p1, p2, p3 := t.control(i-1), t.control(i), t.control(i+1), t.control(i+2)
	a := p1.Scale(2)
	b := p2.Sub(p0)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3)

	pos := a.Add(b.Scale(s)).Add(c.Scale(s * s)).Add(d.Scale(s * s * s)).Scale(0.5)
	grad := b.Add(c.Scale(2 * s)).Add(d.Scale(3 * s * s)).Scale(0.5 * float64(n))
	return voronoi.WrapInto(pos, t.mid), grad
}
