package voronoi

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/geom"
)

func randomSeeds(n int, space geom.Vec2, seed uint64) []geom.Vec2 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	off := space.X / 3
	out := make([]geom.Vec2, n)
	for i := range out {
		out[i] = geom.V(off+r.Float64()*off, r.Float64()*space.Y)
	}
	return out
}

func TestWrapTagShift(t *testing.T) {
	off := geom.V(2, 0)
	require.Equal(t, geom.Vec2{}, Usual.Shift(off))
	require.Equal(t, geom.V(-2, 0), ToLeft.Shift(off))
	require.Equal(t, geom.V(2, 0), ToRight.Shift(off))
	require.Equal(t, ToRight, ToLeft.Mirror())
	require.Equal(t, Usual, Usual.Mirror())
}

func TestResolve(t *testing.T) {
	id, tag := Resolve(7, 5)
	require.Equal(t, 2, id)
	require.Equal(t, ToLeft, tag)
	id, tag = Resolve(14, 5)
	require.Equal(t, 4, id)
	require.Equal(t, ToRight, tag)
}

func TestWrapIntoMiddleThird(t *testing.T) {
	d := &Diagram{SpaceMax: geom.V(6, 1), Offset: geom.V(2, 0)}
	cases := []struct {
		in, want geom.Vec2
	}{
		{geom.V(3, 0.5), geom.V(3, 0.5)},
		{geom.V(0.5, 0.5), geom.V(2.5, 0.5)},
		{geom.V(5.5, 0.5), geom.V(3.5, 0.5)},
		{geom.V(4, 0.5), geom.V(2, 0.5)},
		{geom.V(3, 1.5), geom.V(3, 1)},
	}
	for _, tc := range cases {
		got := d.Wrap(tc.in)
		require.InDelta(t, tc.want.X, got.X, 1e-12, "wrap %v", tc.in)
		require.InDelta(t, tc.want.Y, got.Y, 1e-12, "wrap %v", tc.in)
	}
}

func TestCellsAreClockwise(t *testing.T) {
	space := geom.V(6, 2)
	d, err := Build(randomSeeds(60, space, 3), space)
	require.NoError(t, err)
	for i := range d.Cells {
		c := &d.Cells[i]
		require.GreaterOrEqual(t, len(c.Points), 3)
		require.Len(t, c.Edges, len(c.Points))
		require.Less(t, geom.SignedArea(c.Points), 0.0, "cell %d is not clockwise", i)
	}
}

func TestCellsTileMiddleThird(t *testing.T) {
	space := geom.V(6, 2)
	for _, n := range []int{12, 50, 200} {
		d, err := Build(randomSeeds(n, space, uint64(n)), space)
		require.NoError(t, err)
		total := 0.0
		for i := range d.Cells {
			total += d.Cells[i].Area()
		}
		want := space.X / 3 * space.Y
		if math.Abs(total-want) > 1e-6*want {
			t.Fatalf("n=%d: summed area %.9f, want %.9f", n, total, want)
		}
	}
}

func TestAdjacencyIsMutual(t *testing.T) {
	space := geom.V(6, 2)
	d, err := Build(randomSeeds(150, space, 11), space)
	require.NoError(t, err)
	require.NoError(t, d.Relax(2))
	require.Len(t, d.Cells, 150)

	for i := range d.Cells {
		for _, e := range d.Cells[i].Edges {
			if e.Neighbor == NoNeighbor {
				continue
			}
			found := false
			for _, back := range d.Cells[e.Neighbor].Edges {
				if back.Neighbor == i && back.Tag == e.Tag.Mirror() {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("cell %d lists %d (%s) but not the reverse", i, e.Neighbor, e.Tag)
			}
		}
	}
}

func TestSeamNeighborsAreTagged(t *testing.T) {
	space := geom.V(6, 2)
	d, err := Build(randomSeeds(80, space, 5), space)
	require.NoError(t, err)

	wrapped := 0
	for i := range d.Cells {
		for _, e := range d.Cells[i].Edges {
			if e.Neighbor == NoNeighbor || e.Tag == Usual {
				continue
			}
			wrapped++
			// The neighbor copy must sit on the far side of the shared edge.
			nc := d.NeighborCenter(e)
			mid := e.Beg.Lerp(e.End, 0.5)
			require.InDelta(t, mid.Dist(d.Cells[i].Center), mid.Dist(nc), 1e-6)
		}
	}
	require.Positive(t, wrapped)
}

func TestBorderEdgesRunAlongDomain(t *testing.T) {
	space := geom.V(6, 2)
	d, err := Build(randomSeeds(40, space, 9), space)
	require.NoError(t, err)
	for i := range d.Cells {
		for _, e := range d.Cells[i].Edges {
			if e.Neighbor != NoNeighbor {
				continue
			}
			onBottom := math.Abs(e.Beg.Y) < 1e-9 && math.Abs(e.End.Y) < 1e-9
			onTop := math.Abs(e.Beg.Y-space.Y) < 1e-9 && math.Abs(e.End.Y-space.Y) < 1e-9
			require.True(t, onBottom || onTop, "border edge %v-%v of cell %d", e.Beg, e.End, i)
		}
	}
}

func TestRelaxKeepsCentersInMiddle(t *testing.T) {
	space := geom.V(6, 2)
	d, err := Build(randomSeeds(100, space, 21), space)
	require.NoError(t, err)
	require.NoError(t, d.Relax(3))
	mid := d.Middle()
	for i, c := range d.Centers() {
		require.True(t, mid.Contains(c), "center %d at %v", i, c)
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := Build(nil, geom.V(6, 2))
	require.Error(t, err)
	_, err = Build([]geom.Vec2{geom.V(3, 1)}, geom.V(6, 2))
	require.Error(t, err)
	_, err = Build([]geom.Vec2{geom.V(3, 1)}, geom.V(0, 2))
	require.Error(t, err)
}

func TestFlatCentersStillTile(t *testing.T) {
	space := geom.V(6, 2)
	want := space.X / 3 * space.Y
	for _, n := range []int{2, 3, 5} {
		seeds := make([]geom.Vec2, n)
		for i := range seeds {
			seeds[i] = geom.V(2+2*(float64(i)+0.5)/float64(n), 1)
		}
		d, err := Build(seeds, space)
		require.NoError(t, err, "n=%d", n)
		// strips relax back onto the midline
		require.NoError(t, d.Relax(3), "n=%d", n)
		require.Len(t, d.Cells, n)

		total := 0.0
		for i := range d.Cells {
			total += d.Cells[i].Area()
			require.True(t, d.Middle().Contains(d.Cells[i].Center))
		}
		require.InDelta(t, want, total, 1e-6*want, "n=%d", n)
	}
}

func TestSpreadFlatLeavesScatteredCenters(t *testing.T) {
	centers := []geom.Vec2{geom.V(2.1, 0.3), geom.V(2.5, 1.7), geom.V(3.2, 1)}
	before := append([]geom.Vec2(nil), centers...)
	spreadFlat(centers, 2)
	require.Equal(t, before, centers)

	flat := []geom.Vec2{geom.V(2.1, 0), geom.V(2.5, 0), geom.V(3.2, 0)}
	spreadFlat(flat, 2)
	for _, c := range flat {
		require.GreaterOrEqual(t, c.Y, 0.0)
		require.LessOrEqual(t, c.Y, 2.0)
	}
	require.NotEqual(t, flat[0].Y, flat[2].Y)
}
