package terrain

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/plates"
	"toromap/internal/spatial"
	"toromap/internal/voronoi"
)

type fixture struct {
	diagram *voronoi.Diagram
	plates  *plates.Plates
	field   *Field
}

func newFixture(t *testing.T, seed int64, withNoise bool) fixture {
	t.Helper()
	rng := core.NewRNG(seed)
	seeds := make([]geom.Vec2, 250)
	for i := range seeds {
		seeds[i] = geom.V(2+2*rng.Float64(), rng.Float64())
	}
	d, err := voronoi.Build(seeds, geom.V(6, 1))
	require.NoError(t, err)
	require.NoError(t, d.Relax(1))
	p, err := plates.Cluster(d, 12, 0.5, rng)
	require.NoError(t, err)
	var n *Noise
	if withNoise {
		n = NewNoise(seed, d.Offset.X, 4)
	}
	return fixture{diagram: d, plates: p, field: NewField(d, spatial.New(d, 0), p, n)}
}

func TestElevationBounded(t *testing.T) {
	fx := newFixture(t, 42, true)
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		p := geom.V(6*r.Float64(), r.Float64())
		e, _ := fx.field.Evaluate(p)
		if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 || e > 1 {
			t.Fatalf("elevation %v at %v", e, p)
		}
	}
}

func TestShapeMatchesPlateInterior(t *testing.T) {
	fx := newFixture(t, 7, false)
	for id, c := range fx.diagram.Cells {
		interior := true
		for _, e := range c.Edges {
			if e.Neighbor != voronoi.NoNeighbor && fx.plates.TypeOf(e.Neighbor) != fx.plates.TypeOf(id) {
				interior = false
				break
			}
		}
		if !interior {
			continue
		}
		e, kind := fx.field.Shape(c.Center)
		if fx.plates.TypeOf(id) == plates.TypeLand {
			require.Equal(t, 1.0, e)
			require.Equal(t, KindLand, kind)
		} else {
			require.Equal(t, 0.0, e)
			require.Equal(t, KindWater, kind)
		}
	}
}

func TestCoastOnPlateBoundary(t *testing.T) {
	fx := newFixture(t, 11, false)
	checked := 0
	for id, c := range fx.diagram.Cells {
		for _, e := range c.Edges {
			if e.Neighbor == voronoi.NoNeighbor || e.Len < 1e-3 {
				continue
			}
			if fx.plates.TypeOf(e.Neighbor) == fx.plates.TypeOf(id) {
				continue
			}
			// Just inside the cell, at the edge midpoint: ratio close to 0.
			mid := e.Beg.Lerp(e.End, 0.5)
			p := mid.Lerp(c.Center, 1e-4)
			v, kind := fx.field.Shape(p)
			require.Equal(t, KindCoast, kind, "cell %d", id)
			require.InDelta(t, (0.5-0.2)/0.7, v, 1e-3)
			checked++
		}
	}
	require.Positive(t, checked)
}

func TestElevationRepeatsAcrossSeam(t *testing.T) {
	fx := newFixture(t, 5, true)
	off := fx.diagram.Offset
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		p := geom.V(2+2*r.Float64(), r.Float64())
		a, _ := fx.field.Evaluate(p)
		b, _ := fx.field.Evaluate(p.Sub(off))
		c, _ := fx.field.Evaluate(p.Add(off))
		require.InDelta(t, a, b, 1e-6, "at %v", p)
		require.InDelta(t, a, c, 1e-6, "at %v", p)
	}
}

func TestNoiseWrapsAndStaysInRange(t *testing.T) {
	n := NewNoise(9, 2, 4)
	for y := 0.0; y <= 1; y += 0.05 {
		a := n.At(geom.V(2, y))
		b := n.At(geom.V(4, y))
		require.InDelta(t, a, b, 1e-9)
		require.GreaterOrEqual(t, a, 0.0)
		require.LessOrEqual(t, a, 1.0)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	a := newFixture(t, 99, true)
	b := newFixture(t, 99, true)
	for x := 2.0; x < 4; x += 0.037 {
		for y := 0.0; y < 1; y += 0.041 {
			p := geom.V(x, y)
			ea, ka := a.field.Evaluate(p)
			eb, kb := b.field.Evaluate(p)
			require.Equal(t, ea, eb)
			require.Equal(t, ka, kb)
		}
	}
}
