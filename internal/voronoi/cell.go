package voronoi

import "toromap/internal/geom"

// NoNeighbor marks an edge that runs along the domain border.
const NoNeighbor = -1

// Edge is one side of a cell polygon, stored in clockwise order.
type Edge struct {
	Neighbor int
	Tag      WrapTag
	Beg, End geom.Vec2

	// Mid is the edge midpoint relative to the owning cell's center.
	Mid    geom.Vec2
	MidLen float64
	Len    float64
}

// Cell is a Voronoi region of the middle third.
type Cell struct {
	Center  geom.Vec2
	Points  []geom.Vec2
	Edges   []Edge
	Bounds  geom.Box
	Clipped bool
}

// Area returns the polygon area.
func (c *Cell) Area() float64 {
	a := geom.SignedArea(c.Points)
	if a < 0 {
		return -a
	}
	return a
}

func newEdge(center geom.Vec2, neighbor int, tag WrapTag, beg, end geom.Vec2) Edge {
	mid := beg.Lerp(end, 0.5).Sub(center)
	return Edge{
		Neighbor: neighbor,
		Tag:      tag,
		Beg:      beg,
		End:      end,
		Mid:      mid,
		MidLen:   mid.Len(),
		Len:      beg.Dist(end),
	}
}
