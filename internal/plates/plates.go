// Package plates partitions the Voronoi cells into LAND and WATER plates.
package plates

import (
	"container/heap"
	"fmt"
	"image/color"
	"math"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/voronoi"
)

// Type is the surface kind of a plate.
type Type uint8

const (
	TypeNone Type = iota
	TypeLand
	TypeWater
)

func (t Type) String() string {
	switch t {
	case TypeLand:
		return "land"
	case TypeWater:
		return "water"
	default:
		return "none"
	}
}

// Plate is one cluster, represented by its seed cell.
type Plate struct {
	Seed  int
	Type  Type
	Color color.RGBA
}

// Plates maps every cell to exactly one plate.
type Plates struct {
	Plates []Plate
	Owner  []int
}

// TypeOf returns the plate type of a cell.
func (p *Plates) TypeOf(cell int) Type {
	return p.Plates[p.Owner[cell]].Type
}

// Count returns how many cells carry type t.
func (p *Plates) Count(t Type) int {
	n := 0
	for _, o := range p.Owner {
		if p.Plates[o].Type == t {
			n++
		}
	}
	return n
}

// Cluster picks count seed cells at random and grows them over the diagram.
// Each cell joins the seed whose center, carried across the seams along the
// expansion path, lies nearest. Seeds are labelled LAND in selection order
// until count*land of them are, the rest WATER.
func Cluster(d *voronoi.Diagram, count int, land float64, r core.Rand) (*Plates, error) {
	n := len(d.Cells)
	if count < 1 || count > n {
		return nil, fmt.Errorf("plates: cluster count %d outside [1, %d]", count, n)
	}
	if land < 0 || land > 1 {
		return nil, fmt.Errorf("plates: land fraction %.3f outside [0, 1]", land)
	}

	seeds := pickSeeds(n, count, r)
	owner := grow(d, seeds)

	out := &Plates{Plates: make([]Plate, count), Owner: owner}
	want := float64(count) * land
	for k, s := range seeds {
		t := TypeWater
		if float64(k) < want {
			t = TypeLand
		}
		out.Plates[k] = Plate{
			Seed: s,
			Type: t,
			Color: color.RGBA{
				R: uint8(r.IntN(256)),
				G: uint8(r.IntN(256)),
				B: uint8(r.IntN(256)),
				A: 255,
			},
		}
	}
	for cell, o := range owner {
		core.Assert(o >= 0 && out.Plates[o].Type != TypeNone, "plates", "cell %d left unassigned", cell)
	}
	return out, nil
}

// pickSeeds draws count distinct cell ids with a partial Fisher-Yates shuffle.
func pickSeeds(n, count int, r core.Rand) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + r.IntN(n-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return append([]int(nil), ids[:count]...)
}

func grow(d *voronoi.Diagram, seeds []int) []int {
	n := len(d.Cells)
	owner := make([]int, n)
	dist := make([]float64, n)
	seedPos := make([]geom.Vec2, n)
	for i := range owner {
		owner[i] = -1
		dist[i] = math.Inf(1)
	}

	q := &queue{}
	for k, s := range seeds {
		owner[s] = k
		dist[s] = 0
		seedPos[s] = d.Cells[s].Center
		heap.Push(q, item{cell: s})
	}

	for q.Len() > 0 {
		it := heap.Pop(q).(item)
		if it.dist > dist[it.cell] {
			continue
		}
		for _, e := range d.Cells[it.cell].Edges {
			if e.Neighbor == voronoi.NoNeighbor {
				continue
			}
			sp := seedPos[it.cell].Sub(e.Tag.Shift(d.Offset))
			nd := d.Cells[e.Neighbor].Center.Dist2(sp)
			if nd < dist[e.Neighbor] {
				dist[e.Neighbor] = nd
				owner[e.Neighbor] = owner[it.cell]
				seedPos[e.Neighbor] = sp
				heap.Push(q, item{cell: e.Neighbor, dist: nd})
			}
		}
	}
	return owner
}

type item struct {
	cell int
	dist float64
}

type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].cell < q[j].cell
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
