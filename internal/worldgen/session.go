package worldgen

import (
	"fmt"
	"image"
	"strconv"
	"time"

	"go.uber.org/zap"

	"toromap/internal/core"
	"toromap/internal/geom"
	"toromap/internal/raster"
)

// Session keeps the latest map of an interactive run and exposes it as a
// core.Surface with HUD parameters.
type Session struct {
	cfg   Config
	log   *zap.Logger
	m     *Map
	layer Layer
	view  *raster.Bitmap
	err   error
}

// NewSession validates cfg and generates the first map.
func NewSession(cfg Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{cfg: cfg, log: log}
	if err := s.Reset(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Name() string { return "toromap" }

func (s *Session) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Reset regenerates the map. seed 0 draws a fresh time-derived seed.
func (s *Session) Reset(seed int64) error {
	cfg := s.cfg
	cfg.Seed = seed
	gen, err := NewGenerator(cfg, WithLogger(s.log))
	if err != nil {
		return err
	}
	m, err := gen.Generate(seed)
	if err != nil {
		s.err = err
		return err
	}
	s.cfg.Seed = m.Seed
	s.m = m
	s.err = nil
	s.refresh()
	return nil
}

// Err returns the last generation error, if the latest attempt failed.
func (s *Session) Err() error { return s.err }

// Map returns the current map.
func (s *Session) Map() *Map { return s.m }

// Config returns the session configuration, with the seed of the current map.
func (s *Session) Config() Config { return s.cfg }

// Layer returns the displayed layer.
func (s *Session) Layer() Layer { return s.layer }

// SetLayer switches the displayed layer.
func (s *Session) SetLayer(l Layer) {
	s.layer = l
	s.refresh()
}

// Layers names every layer in cycle order.
func (s *Session) Layers() []string {
	out := make([]string, 0, layerCount)
	for l := Layer(0); l < layerCount; l++ {
		out = append(out, l.String())
	}
	return out
}

// ActiveLayer names the displayed layer.
func (s *Session) ActiveLayer() string { return s.layer.String() }

// SelectLayer switches to the named layer and reports whether it exists.
func (s *Session) SelectLayer(name string) bool {
	l, ok := ParseLayer(name)
	if !ok {
		return false
	}
	if l != s.layer {
		s.SetLayer(l)
	}
	return true
}

// Pixels returns the displayed layer with opaque alpha.
func (s *Session) Pixels() []byte {
	if s.view == nil {
		return nil
	}
	return s.view.Pix
}

// Heights returns the terrain bitmap; its alpha channel is the quantized
// elevation.
func (s *Session) Heights() []byte {
	if s.m == nil {
		return nil
	}
	return s.m.Terrain.Pix
}

// TourMarker returns the pixel positions of the tour point at offset in the
// three copies of the domain.
func (s *Session) TourMarker(offset float64) []image.Point {
	if s.m == nil || len(s.m.Tour().Points()) == 0 {
		return nil
	}
	p, _ := s.m.TourPathPoint(offset)
	off := s.m.Diagram.Offset
	out := make([]image.Point, 0, 3)
	for _, q := range [...]geom.Vec2{p.Sub(off), p, p.Add(off)} {
		x, y := s.m.Terrain.ToPixel(q)
		if s.m.Terrain.In(x, y) {
			out = append(out, image.Pt(x, y))
		}
	}
	return out
}

func (s *Session) refresh() {
	if s.m == nil {
		return
	}
	s.view = s.m.Render(s.layer)
	for i := 3; i < len(s.view.Pix); i += 4 {
		s.view.Pix[i] = 255
	}
}

// Parameters lists the configuration grouped for the HUD.
func (s *Session) Parameters() core.ParameterSnapshot {
	var groups []core.ParameterGroup
	index := map[string]int{}
	add := func(group string, p core.Parameter) {
		i, ok := index[group]
		if !ok {
			i = len(groups)
			index[group] = i
			groups = append(groups, core.ParameterGroup{Name: group})
		}
		groups[i].Params = append(groups[i].Params, p)
	}

	add("Output", int64Param("seed", "Seed", s.cfg.Seed))
	for _, f := range fields {
		add(f.group, fieldParam(f, &s.cfg))
	}
	if s.m != nil {
		st := s.m.Stats
		groups = append(groups, core.ParameterGroup{
			Name: "Stats",
			Params: []core.Parameter{
				floatParam("stat_land", "Land ratio", st.LandRatio),
				floatParam("stat_coast", "Coast ratio", st.CoastRatio),
				intParam("stat_joints", "Joints", st.Joints),
				intParam("stat_rivers", "River edges", st.RiverEdges),
			},
			Summary: fmt.Sprintf("generated in %s", st.Took.Round(time.Millisecond)),
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls exposes the fields with a HUD step and the stage
// toggles.
func (s *Session) ParameterControls() []core.ParameterControl {
	var out []core.ParameterControl
	for _, f := range fields {
		switch {
		case f.typ == core.ParamTypeBool:
			out = append(out, core.ParameterControl{Key: f.key, Label: f.label, Type: f.typ})
		case f.step > 0:
			out = append(out, core.ParameterControl{
				Key:    f.key,
				Label:  f.label,
				Type:   f.typ,
				Step:   f.step,
				Min:    f.min,
				Max:    f.max,
				HasMin: true,
				HasMax: true,
			})
		}
	}
	return out
}

// SetIntParameter updates an integer field and regenerates with the current
// seed. It reports whether the value was accepted.
func (s *Session) SetIntParameter(key string, value int) bool {
	return s.setField(key, float64(value), core.ParamTypeInt)
}

// SetFloatParameter updates a float field and regenerates with the current
// seed.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	return s.setField(key, value, core.ParamTypeFloat)
}

// SetBoolParameter toggles a generation stage and regenerates.
func (s *Session) SetBoolParameter(key string, value bool) bool {
	return s.setField(key, boolValue(value), core.ParamTypeBool)
}

func (s *Session) setField(key string, value float64, typ core.ParamType) bool {
	f, ok := lookupField(key)
	if !ok || f.typ != typ {
		return false
	}
	if f.step > 0 {
		value = min(max(value, f.min), f.max)
	}
	next := s.cfg
	f.set(&next, value)
	if next.Plates > next.Cells {
		next.Plates = next.Cells
	}
	if err := next.Validate(); err != nil {
		s.log.Debug("parameter rejected", zap.String("key", key), zap.Error(err))
		return false
	}
	prev := s.cfg
	s.cfg = next
	if err := s.Reset(next.Seed); err != nil {
		s.cfg = prev
		return false
	}
	return true
}

func fieldParam(f field, c *Config) core.Parameter {
	v := f.get(c)
	switch f.typ {
	case core.ParamTypeInt:
		return intParam(f.key, f.label, int(v))
	case core.ParamTypeBool:
		return core.Parameter{Key: f.key, Label: f.label, Type: f.typ, Value: strconv.FormatBool(v != 0)}
	default:
		return floatParam(f.key, f.label, v)
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
