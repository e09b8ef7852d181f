// Package worldgen runs the map generation pipeline: Voronoi cells, plates,
// the elevation field, rivers and climate, rasterized into one RGBA bitmap.
package worldgen

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"toromap/internal/climate"
	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/plates"
	"toromap/internal/raster"
	"toromap/internal/rivers"
	"toromap/internal/spatial"
	"toromap/internal/terrain"
	"toromap/internal/voronoi"
)

// ErrInvariant is wrapped when a generation stage hits a broken internal
// invariant. No partial map is returned in that case.
var ErrInvariant = errors.New("generation invariant violated")

var (
	background = color.RGBA{A: 255}
	riverColor = color.RGBA{R: 40, G: 110, B: 220, A: 255}
)

// noisyRiverDepth is the midpoint displacement depth for river segments.
const noisyRiverDepth = 4

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for stage timings and the summary line.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// Generator produces maps for a fixed configuration.
type Generator struct {
	cfg Config
	log *zap.Logger
}

// NewGenerator validates cfg and returns a generator for it.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() Config { return g.cfg }

// Stats summarises a generated map.
type Stats struct {
	LandRatio  float64
	CoastRatio float64
	Joints     int
	RiverEdges int
	Took       time.Duration
}

// Map is the result of one generation.
type Map struct {
	Seed   int64
	Config Config

	Diagram *voronoi.Diagram
	Plates  *plates.Plates
	Grid    *spatial.Grid
	Field   *terrain.Field

	// Terrain holds the visual color in RGB and the quantized elevation in
	// alpha.
	Terrain   *raster.Bitmap
	Elevation []float64
	Kinds     []terrain.Kind

	Joints         *rivers.Graph
	JointElevation []float64
	Climate        *climate.Climate

	Stats Stats

	tour *Tour
}

// Pixels returns the RGBA terrain buffer, width x height x 4.
func (m *Map) Pixels() []byte { return m.Terrain.Pix }

// TourPathPoint samples the tour loop at offset in [0, 1).
func (m *Map) TourPathPoint(offset float64) (geom.Vec2, geom.Vec2) {
	return m.tour.Point(offset)
}

// Tour returns the tour path through the plate seeds.
func (m *Map) Tour() *Tour { return m.tour }

// ResolveSeed returns seed, the configured seed when seed is 0, or a
// time-derived seed when both are 0.
func (g *Generator) ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	if g.cfg.Seed != 0 {
		return g.cfg.Seed
	}
	return core.TimeSeed()
}

// Generate builds a map. Identical seeds and configs produce identical
// pixels.
func (g *Generator) Generate(seed int64) (m *Map, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*core.InvariantError)
			if !ok {
				panic(r)
			}
			m, err = nil, fmt.Errorf("%w: %v", ErrInvariant, ie)
		}
	}()

	start := time.Now()
	seed = g.ResolveSeed(seed)
	cfg := g.cfg
	rng := core.NewRNG(seed)
	log := g.log.With(zap.Int64("seed", seed))

	m = &Map{Seed: seed, Config: cfg}
	space := geom.V(3*cfg.SpaceX, cfg.SpaceY)

	stage := time.Now()
	seeds := make([]geom.Vec2, cfg.Cells)
	for i := range seeds {
		seeds[i] = geom.V(cfg.SpaceX*(1+rng.Float64()), cfg.SpaceY*rng.Float64())
	}
	m.Diagram, err = voronoi.Build(seeds, space)
	if err != nil {
		return nil, err
	}
	if err := m.Diagram.Relax(cfg.Relax); err != nil {
		return nil, err
	}
	log.Debug("voronoi built", zap.Int("cells", len(m.Diagram.Cells)), zap.Int("relax", cfg.Relax), zap.Duration("took", time.Since(stage)))

	stage = time.Now()
	m.Plates, err = plates.Cluster(m.Diagram, cfg.Plates, cfg.LandProb, rng)
	if err != nil {
		return nil, err
	}
	m.Grid = spatial.New(m.Diagram, 0)
	noise := terrain.NewNoise(rng.Int64(), cfg.SpaceX, cfg.NoiseFreq)
	m.Field = terrain.NewField(m.Diagram, m.Grid, m.Plates, noise)
	m.tour = NewTour(m.Diagram, m.Plates)
	log.Debug("plates clustered",
		zap.Int("plates", cfg.Plates),
		zap.Int("land_cells", m.Plates.Count(plates.TypeLand)),
		zap.Duration("took", time.Since(stage)))

	stage = time.Now()
	m.Terrain = raster.NewBitmap(cfg.Width, cfg.Height, geom.V(cfg.SpaceX, cfg.SpaceY), background)
	if err := g.elevationPass(m); err != nil {
		return nil, err
	}
	log.Debug("elevation pass", zap.Int("width", m.Terrain.W), zap.Int("height", m.Terrain.H), zap.Duration("took", time.Since(stage)))

	if cfg.Rivers {
		stage = time.Now()
		if err := g.riverPass(m, rng); err != nil {
			return nil, err
		}
		log.Debug("rivers grown",
			zap.Int("joints", m.Stats.Joints),
			zap.Int("river_edges", m.Stats.RiverEdges),
			zap.Duration("took", time.Since(stage)))
	}

	if cfg.Climate {
		stage = time.Now()
		m.Climate = climate.Propagate(m.Joints, m.JointElevation, climate.Params{
			HumidityScale:  cfg.HumidityScale,
			TemperatureExp: cfg.TemperatureExp,
			Height:         cfg.SpaceY,
		})
		log.Debug("climate propagated", zap.Duration("took", time.Since(stage)))
	}

	m.Stats.Took = time.Since(start)
	log.Info("map generated",
		zap.Float64("land", m.Stats.LandRatio),
		zap.Float64("coast", m.Stats.CoastRatio),
		zap.Int("river_edges", m.Stats.RiverEdges),
		zap.Duration("took", m.Stats.Took))
	return m, nil
}

// elevationPass evaluates every pixel. Workers own disjoint row ranges and
// only read the field.
func (g *Generator) elevationPass(m *Map) error {
	bm := m.Terrain
	m.Elevation = make([]float64, bm.W*bm.H)
	m.Kinds = make([]terrain.Kind, bm.W*bm.H)

	workers := g.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, bm.H)
	rows := (bm.H + workers - 1) / workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		y0, y1 := w*rows, min((w+1)*rows, bm.H)
		if y0 >= y1 {
			break
		}
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					ie, ok := r.(*core.InvariantError)
					if !ok {
						panic(r)
					}
					err = fmt.Errorf("%w: %v", ErrInvariant, ie)
				}
			}()
			for y := y0; y < y1; y++ {
				for x := 0; x < bm.W; x++ {
					e, kind := m.Field.Evaluate(bm.ToSpace(x, y))
					i := y*bm.W + x
					m.Elevation[i] = e
					m.Kinds[i] = kind
					c := raster.Elevation(e)
					c.A = quantize(e)
					bm.Set(x, y, c)
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	land, coast := 0, 0
	for i, e := range m.Elevation {
		if e >= rivers.SeaLevel {
			land++
		}
		if m.Kinds[i] == terrain.KindCoast {
			coast++
		}
	}
	total := float64(len(m.Elevation))
	m.Stats.LandRatio = float64(land) / total
	m.Stats.CoastRatio = float64(coast) / total
	return nil
}

func (g *Generator) riverPass(m *Map, rng *core.RNG) error {
	cfg := g.cfg
	pts := rivers.Sample(m.Diagram.Middle(), cfg.RiverRadius, rng)
	graph, err := rivers.BuildGraph(pts, m.Diagram.Offset, cfg.RiverRadius)
	if err != nil {
		return err
	}
	m.Joints = graph
	m.JointElevation = make([]float64, len(pts))
	for j, p := range pts {
		m.JointElevation[j], _ = m.Field.Evaluate(p)
	}
	m.Stats.Joints = len(pts)
	m.Stats.RiverEdges = rivers.Grow(graph, m.JointElevation, cfg.RiverStartProb, cfg.RiverBranchProb, rng)

	off := m.Diagram.Offset
	shifts := []geom.Vec2{off.Scale(-1), {}, off}
	for _, je := range graph.RiverEdges() {
		a := graph.Joints[je[0]]
		b := graph.Position(graph.Adj[je[0]][je[1]])
		side := b.Sub(a).Perp().Scale(0.25)
		mid := a.Lerp(b, 0.5)
		p, q := mid.Add(side), mid.Sub(side)
		for _, s := range shifts {
			m.Terrain.DrawNoisyEdge(a.Add(s), p.Add(s), b.Add(s), q.Add(s), noisyRiverDepth, riverColor, rng)
		}
	}
	return nil
}

func quantize(e float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(e, 0), 1) * 255))
}
