package rivers

import (
	"math"

	"toromap/internal/core"
	"toromap/internal/geom"
)

const (
	// SeaLevel separates water joints from land joints.
	SeaLevel = 0.5
	// maxDrop is how far below the current joint a river may still flow.
	maxDrop = 0.03
	// minForkAngle rejects branches closer than this to the incoming edge.
	minForkAngle = 3 * math.Pi / 4
)

type frontier struct {
	joint  int
	parent geom.Vec2
}

// Grow flags river edges. Every edge from a water joint to a land joint starts
// a river with startProb percent probability; a land joint is seeded at most
// once. Rivers then spread breadth-first over unvisited land joints that are not more than
// maxDrop lower. The first continuation is always taken, further branches
// with branchProb percent probability when they fork wider than 135 degrees.
// It returns the number of flagged edges.
func Grow(g *Graph, elev []float64, startProb, branchProb float64, r core.Rand) int {
	core.Assert(len(elev) == len(g.Joints), "rivers", "%d elevations for %d joints", len(elev), len(g.Joints))

	visited := make([]bool, len(g.Joints))
	var queue []frontier
	flagged := 0

	for j, adj := range g.Adj {
		if elev[j] >= SeaLevel {
			continue
		}
		for k, e := range adj {
			if elev[e.Dest] < SeaLevel || visited[e.Dest] {
				continue
			}
			if !core.Percent(r, startProb) {
				continue
			}
			g.setRiver(j, k)
			flagged++
			visited[e.Dest] = true
			queue = append(queue, frontier{joint: e.Dest, parent: g.Joints[j].Sub(e.Tag.Shift(g.Offset))})
		}
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		pos := g.Joints[cur.joint]
		incoming := cur.parent.Sub(pos)
		accepted := 0
		for k, e := range g.Adj[cur.joint] {
			d := e.Dest
			if visited[d] || elev[d] < SeaLevel || elev[d] < elev[cur.joint]-maxDrop {
				continue
			}
			if accepted > 0 {
				if !core.Percent(r, branchProb) {
					continue
				}
				if geom.Angle(incoming, g.Position(e).Sub(pos)) <= minForkAngle {
					continue
				}
			}
			visited[d] = true
			g.setRiver(cur.joint, k)
			flagged++
			accepted++
			queue = append(queue, frontier{joint: d, parent: pos.Sub(e.Tag.Shift(g.Offset))})
		}
	}
	return flagged
}
