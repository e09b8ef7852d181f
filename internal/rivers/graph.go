package rivers

import (
	"fmt"

	"github.com/fogleman/delaunay"

	"toromap/internal/geom"
	"toromap/internal/voronoi"
)

// maxEdgeFactor bounds kept edges to this many sampling radii. Longer edges
// come from triangulating the hull of the tripled point cloud.
const maxEdgeFactor = 3

// JointEdge is one direction of a joint graph edge.
type JointEdge struct {
	Dest  int
	Tag   voronoi.WrapTag
	River bool
}

// Graph is the joint adjacency over the middle third. Every edge is stored in
// both directions with mirrored tags.
type Graph struct {
	Joints []geom.Vec2
	Adj    [][]JointEdge
	Offset geom.Vec2
}

type edgeKey struct {
	from, to int
	tag      voronoi.WrapTag
}

// BuildGraph triangulates the joints together with their seam copies and
// keeps the edges touching a middle joint that are at most 3*radius long.
func BuildGraph(joints []geom.Vec2, off geom.Vec2, radius float64) (*Graph, error) {
	n := len(joints)
	g := &Graph{Joints: joints, Adj: make([][]JointEdge, n), Offset: off}
	if n < 3 {
		return g, nil
	}

	all := voronoi.Triple(joints, off)
	pts := make([]delaunay.Point, len(all))
	for i, p := range all {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("rivers: triangulate %d joints: %w", n, err)
	}

	seen := make(map[edgeKey]bool)
	add := func(from, to int) {
		id, tag := voronoi.Resolve(to, n)
		if id == from {
			return
		}
		k := edgeKey{from, id, tag}
		if seen[k] {
			return
		}
		seen[k] = true
		seen[edgeKey{id, from, tag.Mirror()}] = true
		g.Adj[from] = append(g.Adj[from], JointEdge{Dest: id, Tag: tag})
		g.Adj[id] = append(g.Adj[id], JointEdge{Dest: from, Tag: tag.Mirror()})
	}

	limit := maxEdgeFactor * radius
	for e := range tri.Triangles {
		a := tri.Triangles[e]
		b := tri.Triangles[nextHalfedge(e)]
		if all[a].Dist(all[b]) > limit {
			continue
		}
		if a < n {
			add(a, b)
		} else if b < n && tri.Halfedges[e] == -1 {
			add(b, a)
		}
	}
	return g, nil
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

// Position returns where e's destination lies in the frame of its source.
func (g *Graph) Position(e JointEdge) geom.Vec2 {
	return g.Joints[e.Dest].Add(e.Tag.Shift(g.Offset))
}

// setRiver flags the k-th edge of joint j and its reverse.
func (g *Graph) setRiver(j, k int) {
	e := &g.Adj[j][k]
	e.River = true
	back := e.Tag.Mirror()
	for i := range g.Adj[e.Dest] {
		r := &g.Adj[e.Dest][i]
		if r.Dest == j && r.Tag == back {
			r.River = true
			return
		}
	}
}

// RiverEdges returns every flagged edge once, as (joint, edge) pairs seen
// from the lower joint id.
func (g *Graph) RiverEdges() [][2]int {
	var out [][2]int
	for j, adj := range g.Adj {
		for k, e := range adj {
			if !e.River {
				continue
			}
			if j < e.Dest {
				out = append(out, [2]int{j, k})
			}
		}
	}
	return out
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, adj := range g.Adj {
		n += len(adj)
	}
	return n / 2
}
