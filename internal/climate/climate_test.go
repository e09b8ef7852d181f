package climate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/rivers"
)

func testGraph(t *testing.T) (*rivers.Graph, []float64) {
	t.Helper()
	box := geom.Box{Min: geom.V(1, 0), Max: geom.V(2, 1)}
	pts := rivers.Sample(box, 0.05, core.NewRNG(4))
	g, err := rivers.BuildGraph(pts, geom.V(1, 0), 0.05)
	require.NoError(t, err)
	elev := make([]float64, len(pts))
	for i, p := range pts {
		elev[i] = p.X - 1 // water on the left, land rising to the right
	}
	return g, elev
}

func TestHumidityDecaysInland(t *testing.T) {
	g, elev := testGraph(t)
	c := Propagate(g, elev, Params{HumidityScale: 6, TemperatureExp: 2, Height: 1})

	for j := range g.Joints {
		if elev[j] < rivers.SeaLevel {
			require.Equal(t, 0, c.Distance[j])
			require.Equal(t, 1.0, c.Humidity[j])
		}
		require.GreaterOrEqual(t, c.Humidity[j], 0.0)
		require.LessOrEqual(t, c.Humidity[j], 1.0)
		for _, e := range g.Adj[j] {
			// BFS distances differ by at most one along any edge.
			diff := c.Distance[j] - c.Distance[e.Dest]
			require.LessOrEqual(t, diff, 1)
			require.GreaterOrEqual(t, diff, -1)
		}
	}
}

func TestRiverJointsAreSources(t *testing.T) {
	g, elev := testGraph(t)
	rivers.Grow(g, elev, 100, 100, core.NewRNG(1))
	c := Propagate(g, elev, Params{HumidityScale: 4, TemperatureExp: 2, Height: 1})
	for j, adj := range g.Adj {
		for _, e := range adj {
			if e.River {
				require.Equal(t, 0, c.Distance[j])
			}
		}
	}
}

func TestTemperatureByLatitude(t *testing.T) {
	p := Params{TemperatureExp: 2, Height: 1}
	require.InDelta(t, 1.0, Temperature(0.5, 0.2, p), 1e-12)
	require.InDelta(t, 0.0, Temperature(0, 0.2, p), 1e-12)
	require.InDelta(t, 0.75, Temperature(0.25, 0.2, p), 1e-12)
	require.Less(t, Temperature(0.5, 0.9, p), Temperature(0.5, 0.5, p))
	require.GreaterOrEqual(t, Temperature(0.05, 1, p), 0.0)
}
