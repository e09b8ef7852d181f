package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"

	"toromap/internal/geom"
)

const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 8
	warpOctaves  = 3
	warpAmount   = 0.35
)

// Noise is octave Perlin noise that repeats along x with the given period.
// The x axis is wrapped onto a cylinder in 3D noise space, and a second
// low-octave field warps the sample position.
type Noise struct {
	base   *perlin.Perlin
	warp   *perlin.Perlin
	period float64
	freq   float64
}

// NewNoise seeds both fields. freq is the number of noise units per domain
// unit.
func NewNoise(seed int64, period, freq float64) *Noise {
	return &Noise{
		base:   perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
		warp:   perlin.NewPerlin(noiseAlpha, noiseBeta, warpOctaves, seed^0x5bd1e995),
		period: period,
		freq:   freq,
	}
}

// At returns the noise value at p in [0, 1]. It only reads the permutation
// tables and is safe for concurrent use.
func (n *Noise) At(p geom.Vec2) float64 {
	dx := n.cylinder(n.warp, p.X, p.Y, 17.3)
	dy := n.cylinder(n.warp, p.X, p.Y, 91.7)
	scale := warpAmount / n.freq
	v := n.cylinder(n.base, p.X+dx*scale, p.Y+dy*scale, 0)
	return clamp01((v + 1) / 2)
}

func (n *Noise) cylinder(pl *perlin.Perlin, x, y, shift float64) float64 {
	theta := 2 * math.Pi * x / n.period
	r := n.period * n.freq / (2 * math.Pi)
	return pl.Noise3D(r*math.Cos(theta), r*math.Sin(theta), y*n.freq+shift)
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
