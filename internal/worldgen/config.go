package worldgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"toromap/internal/core"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the immutable parameter bundle for one generation.
type Config struct {
	// Width and Height are the bitmap size in pixels. Width spans the three
	// copies of the domain.
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// SpaceX and SpaceY are the logical domain extent.
	SpaceX float64 `yaml:"space_x" json:"space_x"`
	SpaceY float64 `yaml:"space_y" json:"space_y"`

	// Seed 0 selects a time-derived seed.
	Seed int64 `yaml:"seed" json:"seed"`

	Cells     int     `yaml:"cells" json:"cells"`
	Relax     int     `yaml:"relax" json:"relax"`
	Plates    int     `yaml:"plates" json:"plates"`
	LandProb  float64 `yaml:"land_prob" json:"land_prob"`
	NoiseFreq float64 `yaml:"noise_freq" json:"noise_freq"`

	Rivers          bool    `yaml:"rivers" json:"rivers"`
	RiverRadius     float64 `yaml:"river_radius" json:"river_radius"`
	RiverStartProb  float64 `yaml:"river_start_prob" json:"river_start_prob"`
	RiverBranchProb float64 `yaml:"river_branch_prob" json:"river_branch_prob"`

	Climate        bool    `yaml:"climate" json:"climate"`
	HumidityScale  float64 `yaml:"humidity_scale" json:"humidity_scale"`
	TemperatureExp float64 `yaml:"temperature_exp" json:"temperature_exp"`

	// Workers bounds the elevation pass; 0 means GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:           1536,
		Height:          256,
		SpaceX:          2,
		SpaceY:          1,
		Seed:            1337,
		Cells:           600,
		Relax:           2,
		Plates:          24,
		LandProb:        0.45,
		NoiseFreq:       4,
		Rivers:          true,
		RiverRadius:     0.015,
		RiverStartProb:  30,
		RiverBranchProb: 40,
		Climate:         false,
		HumidityScale:   8,
		TemperatureExp:  2,
	}
}

// Validate rejects configurations the generator cannot run with.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.Width < 3 || c.Height < 2 {
		bad("bitmap size %dx%d too small", c.Width, c.Height)
	}
	if c.SpaceX <= 0 || c.SpaceY <= 0 {
		bad("space %gx%g must be positive", c.SpaceX, c.SpaceY)
	}
	if c.Cells < 3 {
		bad("cells must be at least 3, got %d", c.Cells)
	}
	if c.Relax < 0 {
		bad("relax must not be negative, got %d", c.Relax)
	}
	if c.Plates < 1 || c.Plates > c.Cells {
		bad("plates must be in [1, cells=%d], got %d", c.Cells, c.Plates)
	}
	if c.LandProb < 0 || c.LandProb > 1 {
		bad("land_prob must be in [0, 1], got %g", c.LandProb)
	}
	if c.NoiseFreq <= 0 {
		bad("noise_freq must be positive, got %g", c.NoiseFreq)
	}
	if c.Rivers {
		if c.RiverRadius <= 0 || c.RiverRadius >= c.SpaceY/2 {
			bad("river_radius must be in (0, %g), got %g", c.SpaceY/2, c.RiverRadius)
		}
		if c.RiverStartProb < 0 || c.RiverStartProb > 100 {
			bad("river_start_prob must be a percentage, got %g", c.RiverStartProb)
		}
		if c.RiverBranchProb < 0 || c.RiverBranchProb > 100 {
			bad("river_branch_prob must be a percentage, got %g", c.RiverBranchProb)
		}
	}
	if c.Climate {
		if !c.Rivers {
			bad("climate needs rivers enabled")
		}
		if c.HumidityScale <= 0 {
			bad("humidity_scale must be positive, got %g", c.HumidityScale)
		}
		if c.TemperatureExp <= 0 {
			bad("temperature_exp must be positive, got %g", c.TemperatureExp)
		}
	}
	if c.Workers < 0 {
		bad("workers must not be negative, got %d", c.Workers)
	}
	return errors.Join(errs...)
}

// field binds a config key to its value for overrides, the HUD snapshot and
// the HUD setters.
type field struct {
	key   string
	label string
	group string
	typ   core.ParamType
	get   func(*Config) float64
	set   func(*Config, float64)

	// step > 0 exposes the field as a HUD control.
	step     float64
	min, max float64
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var fields = []field{
	{key: "w", label: "Width", group: "Output", typ: core.ParamTypeInt,
		get: func(c *Config) float64 { return float64(c.Width) }, set: func(c *Config, v float64) { c.Width = int(v) }},
	{key: "h", label: "Height", group: "Output", typ: core.ParamTypeInt,
		get: func(c *Config) float64 { return float64(c.Height) }, set: func(c *Config, v float64) { c.Height = int(v) }},
	{key: "space_x", label: "Space X", group: "Output", typ: core.ParamTypeFloat,
		get: func(c *Config) float64 { return c.SpaceX }, set: func(c *Config, v float64) { c.SpaceX = v }},
	{key: "space_y", label: "Space Y", group: "Output", typ: core.ParamTypeFloat,
		get: func(c *Config) float64 { return c.SpaceY }, set: func(c *Config, v float64) { c.SpaceY = v }},
	{key: "workers", label: "Workers", group: "Output", typ: core.ParamTypeInt,
		get: func(c *Config) float64 { return float64(c.Workers) }, set: func(c *Config, v float64) { c.Workers = int(v) }},

	{key: "cells", label: "Cells", group: "Plates", typ: core.ParamTypeInt, step: 50, min: 3, max: 20000,
		get: func(c *Config) float64 { return float64(c.Cells) }, set: func(c *Config, v float64) { c.Cells = int(v) }},
	{key: "relax", label: "Relaxation", group: "Plates", typ: core.ParamTypeInt, step: 1, min: 0, max: 10,
		get: func(c *Config) float64 { return float64(c.Relax) }, set: func(c *Config, v float64) { c.Relax = int(v) }},
	{key: "plates", label: "Plates", group: "Plates", typ: core.ParamTypeInt, step: 1, min: 1, max: 500,
		get: func(c *Config) float64 { return float64(c.Plates) }, set: func(c *Config, v float64) { c.Plates = int(v) }},
	{key: "land_prob", label: "Land fraction", group: "Plates", typ: core.ParamTypeFloat, step: 0.05, min: 0, max: 1,
		get: func(c *Config) float64 { return c.LandProb }, set: func(c *Config, v float64) { c.LandProb = v }},
	{key: "noise_freq", label: "Noise frequency", group: "Plates", typ: core.ParamTypeFloat, step: 0.5, min: 0.5, max: 32,
		get: func(c *Config) float64 { return c.NoiseFreq }, set: func(c *Config, v float64) { c.NoiseFreq = v }},

	{key: "rivers", label: "Rivers", group: "Rivers", typ: core.ParamTypeBool,
		get: func(c *Config) float64 { return boolValue(c.Rivers) }, set: func(c *Config, v float64) { c.Rivers = v != 0 }},
	{key: "river_radius", label: "Joint radius", group: "Rivers", typ: core.ParamTypeFloat, step: 0.005, min: 0.005, max: 0.2,
		get: func(c *Config) float64 { return c.RiverRadius }, set: func(c *Config, v float64) { c.RiverRadius = v }},
	{key: "river_start_prob", label: "Start %", group: "Rivers", typ: core.ParamTypeFloat, step: 5, min: 0, max: 100,
		get: func(c *Config) float64 { return c.RiverStartProb }, set: func(c *Config, v float64) { c.RiverStartProb = v }},
	{key: "river_branch_prob", label: "Branch %", group: "Rivers", typ: core.ParamTypeFloat, step: 5, min: 0, max: 100,
		get: func(c *Config) float64 { return c.RiverBranchProb }, set: func(c *Config, v float64) { c.RiverBranchProb = v }},

	{key: "climate", label: "Climate", group: "Climate", typ: core.ParamTypeBool,
		get: func(c *Config) float64 { return boolValue(c.Climate) }, set: func(c *Config, v float64) { c.Climate = v != 0 }},
	{key: "humidity_scale", label: "Humidity scale", group: "Climate", typ: core.ParamTypeFloat, step: 1, min: 1, max: 64,
		get: func(c *Config) float64 { return c.HumidityScale }, set: func(c *Config, v float64) { c.HumidityScale = v }},
	{key: "temperature_exp", label: "Temperature exp", group: "Climate", typ: core.ParamTypeFloat, step: 0.25, min: 0.25, max: 8,
		get: func(c *Config) float64 { return c.TemperatureExp }, set: func(c *Config, v float64) { c.TemperatureExp = v }},
}

func lookupField(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// FromMap returns the default config with flag-style key/value overrides
// applied.
func FromMap(kv map[string]string) (Config, error) {
	return DefaultConfig().With(kv)
}

// With applies key/value overrides. The seed is accepted as "seed".
func (c Config) With(kv map[string]string) (Config, error) {
	for key, raw := range kv {
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if key == "seed" {
			seed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return c, fmt.Errorf("%w: seed %q: %v", ErrInvalidConfig, raw, err)
			}
			c.Seed = seed
			continue
		}
		f, ok := lookupField(key)
		if !ok {
			return c, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
		}
		v, err := parseValue(f.typ, raw)
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, raw, err)
		}
		f.set(&c, v)
	}
	return c, nil
}

func parseValue(typ core.ParamType, raw string) (float64, error) {
	switch typ {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(raw)
		return float64(v), err
	case core.ParamTypeBool:
		v, err := strconv.ParseBool(raw)
		return boolValue(v), err
	default:
		return strconv.ParseFloat(raw, 64)
	}
}
