// Package terrain evaluates the continuous elevation field over the plates.
package terrain

import (
	"math"

	"toromap/internal/geom"
	"toromap/internal/plates"
	"toromap/internal/spatial"
	"toromap/internal/voronoi"
)

// Kind classifies a point before noise is applied.
type Kind uint8

const (
	KindWater Kind = iota
	KindLand
	KindCoast
)

func (k Kind) String() string {
	switch k {
	case KindLand:
		return "land"
	case KindCoast:
		return "coast"
	default:
		return "water"
	}
}

const (
	coastLow  = 0.2
	coastHigh = 0.9
)

// Field is the elevation function. All its parts are read-only once built.
type Field struct {
	diagram *voronoi.Diagram
	grid    *spatial.Grid
	plates  *plates.Plates
	noise   *Noise
}

// NewField assembles a field. A nil noise yields the plate shape only.
func NewField(d *voronoi.Diagram, g *spatial.Grid, p *plates.Plates, n *Noise) *Field {
	return &Field{diagram: d, grid: g, plates: p, noise: n}
}

// Evaluate returns the final elevation (>= 0) at p and its pre-noise kind.
func (f *Field) Evaluate(p geom.Vec2) (float64, Kind) {
	e, kind, wp := f.shape(p)
	if f.noise == nil {
		return e, kind
	}
	smooth := e * e * (3 - 2*e)
	v := -0.4 + 0.8*smooth + math.Pow(f.noise.At(wp), 1.3)*0.6
	return math.Max(v, 0), kind
}

// Shape returns the plate-derived elevation in [0, 1] without noise.
func (f *Field) Shape(p geom.Vec2) (float64, Kind) {
	e, kind, _ := f.shape(p)
	return e, kind
}

func (f *Field) shape(p geom.Vec2) (float64, Kind, geom.Vec2) {
	entry, center, wp := f.grid.Nearest(p)
	cell := &f.diagram.Cells[entry.Cell]
	shift := entry.Tag.Shift(f.diagram.Offset)
	own := f.plates.TypeOf(entry.Cell)

	k := f.containingEdge(cell, shift, center, wp)
	n := len(cell.Edges)
	next := (k + 1) % n
	prev := (k - 1 + n) % n

	ratio := 1.0
	coast := false
	if f.differs(cell.Edges[k], own) {
		ratio = math.Min(ratio, edgeRatio(cell.Edges[k], shift, center, wp))
		coast = true
	}
	u := midRayOffset(cell.Edges[k], shift, center, wp)
	if f.differs(cell.Edges[next], own) {
		w := clamp01((u + 1) / 2)
		r := edgeRatio(cell.Edges[next], shift, center, wp)
		ratio = math.Min(ratio, 1-w*(1-r))
		coast = true
	}
	if f.differs(cell.Edges[prev], own) {
		w := clamp01((1 - u) / 2)
		r := edgeRatio(cell.Edges[prev], shift, center, wp)
		ratio = math.Min(ratio, 1-w*(1-r))
		coast = true
	}

	if !coast {
		if own == plates.TypeLand {
			return 1, KindLand, wp
		}
		return 0, KindWater, wp
	}

	var e float64
	if own == plates.TypeLand {
		e = 0.5 + 0.5*ratio
	} else {
		e = 0.5 - 0.5*ratio
	}

	// Clamp to the coast band and remap, then reclassify what fell outside.
	band := math.Min(math.Max(e, coastLow), coastHigh)
	remapped := (band - coastLow) / (coastHigh - coastLow)
	switch {
	case e >= coastHigh:
		return 1, KindLand, wp
	case e <= coastLow:
		return 0, KindWater, wp
	}
	return remapped, KindCoast, wp
}

// differs reports whether the neighbor across e has another plate type.
// Domain-border edges count as the same type.
func (f *Field) differs(e voronoi.Edge, own plates.Type) bool {
	if e.Neighbor == voronoi.NoNeighbor {
		return false
	}
	return f.plates.TypeOf(e.Neighbor) != own
}

// containingEdge finds the edge whose triangle with the center holds p,
// falling back to the edge with the nearest midpoint.
func (f *Field) containingEdge(cell *voronoi.Cell, shift, center, p geom.Vec2) int {
	for i, e := range cell.Edges {
		if geom.InTriangle(p, center, e.Beg.Add(shift), e.End.Add(shift)) {
			return i
		}
	}
	best, bestDist := 0, math.Inf(1)
	rel := p.Sub(center)
	for i, e := range cell.Edges {
		if d := e.Mid.Dist2(rel); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// edgeRatio is d_edge / (d_edge + d_center): 0 on the edge line, 1 at the
// center.
func edgeRatio(e voronoi.Edge, shift, center, p geom.Vec2) float64 {
	dl := geom.DistanceToLine(p, e.Beg.Add(shift), e.End.Add(shift))
	dc := p.Dist(center)
	if dl+dc == 0 {
		return 0
	}
	return dl / (dl + dc)
}

// midRayOffset is the signed offset of p from the ray center->edge midpoint,
// normalised so that -1 and +1 fall on the rays through Beg and End.
func midRayOffset(e voronoi.Edge, shift, center, p geom.Vec2) float64 {
	if e.Len == 0 || p.Near(center, 1e-12) {
		return 0
	}
	beg, end := e.Beg.Add(shift), e.End.Add(shift)
	x, ok := geom.LineIntersection(center, p, beg, end)
	if !ok {
		return 0
	}
	t := x.Sub(beg).Dot(end.Sub(beg)) / (e.Len * e.Len)
	return math.Min(math.Max(2*t-1, -1), 1)
}
