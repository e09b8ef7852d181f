package voronoi

import (
	"toromap/internal/core"
	"toromap/internal/geom"
)

// ring walks the triangles around a Delaunay vertex.
type ring struct {
	triangles []int
	halfedges []int
	pts       []geom.Vec2
	circum    []geom.Vec2
	inedge    []int
}

// rawEdge is an unclipped cell side. Rays keep their finite end in a and
// extend along dir; inbound rays are traversed towards a.
type rawEdge struct {
	a, b     geom.Vec2
	dir      geom.Vec2
	ray      bool
	inbound  bool
	neighbor int
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func prevHalfedge(e int) int {
	if e%3 == 0 {
		return e + 2
	}
	return e - 1
}

func newRing(triangles, halfedges []int, pts []geom.Vec2) *ring {
	r := &ring{
		triangles: triangles,
		halfedges: halfedges,
		pts:       pts,
		circum:    make([]geom.Vec2, len(triangles)/3),
		inedge:    make([]int, len(pts)),
	}
	for i := range r.inedge {
		r.inedge[i] = -1
	}
	for e := range triangles {
		p := triangles[nextHalfedge(e)]
		if r.inedge[p] == -1 || halfedges[e] == -1 {
			r.inedge[p] = e
		}
	}
	for t := range r.circum {
		a, b, c := pts[triangles[3*t]], pts[triangles[3*t+1]], pts[triangles[3*t+2]]
		cc := geom.Circumcenter(a, b, c)
		if !cc.IsFinite() {
			cc = geom.Mean([]geom.Vec2{a, b, c})
		}
		r.circum[t] = cc
	}
	return r
}

// outward returns the normal of the hull edge e pointing away from the
// triangle owning it.
func (r *ring) outward(e int) geom.Vec2 {
	a := r.pts[r.triangles[e]]
	b := r.pts[r.triangles[nextHalfedge(e)]]
	third := r.pts[r.triangles[prevHalfedge(e)]]
	n := b.Sub(a).Perp().Normalize()
	if n.Dot(third.Sub(a)) > 0 {
		n = n.Scale(-1)
	}
	return n
}

// rawCell collects the sides of point p's cell in walk order and normalises
// them to clockwise.
func (r *ring) rawCell(p int, far float64) []rawEdge {
	start := r.inedge[p]
	core.Assert(start >= 0, "voronoi", "point %d has no triangles", p)

	var verts []geom.Vec2
	var neighbors []int
	incoming := start
	hullEnd := -1
	for {
		verts = append(verts, r.circum[incoming/3])
		outgoing := nextHalfedge(incoming)
		neighbors = append(neighbors, r.triangles[nextHalfedge(outgoing)])
		incoming = r.halfedges[outgoing]
		if incoming == -1 {
			hullEnd = outgoing
			break
		}
		if incoming == start {
			break
		}
	}

	var edges []rawEdge
	var poly []geom.Vec2
	if hullEnd == -1 {
		k := len(verts)
		for i := 0; i < k; i++ {
			edges = append(edges, rawEdge{a: verts[i], b: verts[(i+1)%k], neighbor: neighbors[i]})
		}
		poly = verts
	} else {
		inDir := r.outward(start)
		outDir := r.outward(hullEnd)
		k := len(verts)
		edges = append(edges, rawEdge{a: verts[0], dir: inDir, ray: true, inbound: true, neighbor: r.triangles[start]})
		for i := 0; i+1 < k; i++ {
			edges = append(edges, rawEdge{a: verts[i], b: verts[i+1], neighbor: neighbors[i]})
		}
		edges = append(edges, rawEdge{a: verts[k-1], dir: outDir, ray: true, neighbor: neighbors[k-1]})

		poly = append(poly, verts[0].Add(inDir.Scale(far)))
		poly = append(poly, verts...)
		poly = append(poly, verts[k-1].Add(outDir.Scale(far)))
	}

	if geom.SignedArea(poly) > 0 {
		reverseEdges(edges)
	}
	return edges
}

func reverseEdges(edges []rawEdge) {
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	for i := range edges {
		if edges[i].ray {
			edges[i].inbound = !edges[i].inbound
		} else {
			edges[i].a, edges[i].b = edges[i].b, edges[i].a
		}
	}
}

func (e rawEdge) clip(box geom.Box) (geom.Clip, bool) {
	if !e.ray {
		return box.ClipSegment(e.a, e.b)
	}
	c, ok := box.ClipRay(e.a, e.dir)
	if ok && e.inbound {
		c = c.Reverse()
	}
	return c, ok
}

type vertex struct {
	p        geom.Vec2
	neighbor int
}

// clipCell clips the raw sides against the box and closes the polygon along
// the box boundary. n is the number of middle-third points.
func clipCell(center geom.Vec2, raw []rawEdge, box geom.Box, n int, eps float64) Cell {
	var pieces []geom.Clip
	var owners []int
	for _, e := range raw {
		c, ok := e.clip(box)
		if !ok {
			continue
		}
		pieces = append(pieces, c)
		owners = append(owners, e.neighbor)
	}
	core.Assert(len(pieces) > 0, "voronoi", "cell at %v lies outside the domain", center)

	clipped := false
	var verts []vertex
	for i, pc := range pieces {
		if pc.Enter != geom.SideNone {
			clipped = true
			prev := pieces[(i-1+len(pieces))%len(pieces)]
			for _, corner := range box.CornersBetween(prev.Exit, pc.Enter) {
				verts = append(verts, vertex{corner, NoNeighbor})
			}
		}
		verts = append(verts, vertex{pc.A, owners[i]})
		if pc.Exit != geom.SideNone {
			clipped = true
			verts = append(verts, vertex{pc.B, NoNeighbor})
		}
	}

	kept := make([]vertex, 0, len(verts))
	for i, v := range verts {
		next := verts[(i+1)%len(verts)]
		if len(verts) > 1 && v.p.Near(next.p, eps) {
			continue
		}
		kept = append(kept, v)
	}
	core.Assert(len(kept) >= 3, "voronoi", "cell at %v degenerated to %d points", center, len(kept))

	cell := Cell{Center: center, Clipped: clipped, Bounds: geom.EmptyBox()}
	for i, v := range kept {
		next := kept[(i+1)%len(kept)]
		id, tag := NoNeighbor, Usual
		if v.neighbor != NoNeighbor {
			id, tag = Resolve(v.neighbor, n)
		}
		cell.Points = append(cell.Points, v.p)
		cell.Edges = append(cell.Edges, newEdge(center, id, tag, v.p, next.p))
		cell.Bounds = cell.Bounds.Extend(v.p)
	}
	return cell
}
