// Package climate spreads humidity over the joint graph and derives
// temperature from latitude and height.
package climate

import (
	"image/color"
	"math"

	"toromap/internal/raster"
	"toromap/internal/rivers"
)

// lapseRate is the temperature lost per unit of elevation above sea level.
const lapseRate = 0.8

// Params controls the climate fields.
type Params struct {
	// HumidityScale is the BFS distance at which humidity reaches zero.
	HumidityScale float64
	// TemperatureExp shapes the latitude falloff.
	TemperatureExp float64
	// Height is the domain height used for latitude.
	Height float64
}

// Climate holds per-joint values.
type Climate struct {
	Distance    []int
	Humidity    []float64
	Temperature []float64
}

// Propagate runs a multi-source BFS from water joints and river joints and
// computes both fields.
func Propagate(g *rivers.Graph, elev []float64, p Params) *Climate {
	n := len(g.Joints)
	c := &Climate{
		Distance:    make([]int, n),
		Humidity:    make([]float64, n),
		Temperature: make([]float64, n),
	}
	for i := range c.Distance {
		c.Distance[i] = math.MaxInt
	}

	var queue []int
	for j := 0; j < n; j++ {
		if elev[j] < rivers.SeaLevel || touchesRiver(g, j) {
			c.Distance[j] = 0
			queue = append(queue, j)
		}
	}
	for head := 0; head < len(queue); head++ {
		j := queue[head]
		for _, e := range g.Adj[j] {
			if d := c.Distance[j] + 1; d < c.Distance[e.Dest] {
				c.Distance[e.Dest] = d
				queue = append(queue, e.Dest)
			}
		}
	}

	for j := 0; j < n; j++ {
		if c.Distance[j] != math.MaxInt && p.HumidityScale > 0 {
			c.Humidity[j] = math.Max(0, 1-float64(c.Distance[j])/p.HumidityScale)
		}
		c.Temperature[j] = Temperature(g.Joints[j].Y, elev[j], p)
	}
	return c
}

// Temperature is 1 at the equator falling to 0 at the poles, minus a lapse
// term for land above sea level.
func Temperature(y, elevation float64, p Params) float64 {
	lat := 0.0
	if p.Height > 0 {
		lat = math.Abs(2*y/p.Height - 1)
	}
	t := 1 - math.Pow(lat, p.TemperatureExp)
	t -= lapseRate * math.Max(0, elevation-rivers.SeaLevel)
	return math.Min(math.Max(t, 0), 1)
}

func touchesRiver(g *rivers.Graph, j int) bool {
	for _, e := range g.Adj[j] {
		if e.River {
			return true
		}
	}
	return false
}

// Color maps joint j to a debug color: hue from temperature (blue cold, red
// hot), saturation from humidity.
func (c *Climate) Color(j int) color.RGBA {
	return raster.HSV(240*(1-c.Temperature[j]), 0.25+0.75*c.Humidity[j], 0.95)
}
