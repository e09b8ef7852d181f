// Package config loads the application settings shared by the commands.
package config

import "toromap/internal/worldgen"

// Config holds everything a command needs besides its own flags.
type Config struct {
	Map     worldgen.Config `yaml:"map"`
	Output  OutputConfig    `yaml:"output"`
	Viewer  ViewerConfig    `yaml:"viewer"`
	Logging LoggingConfig   `yaml:"logging"`
}

// OutputConfig controls what mapgen writes.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	PNG       bool   `yaml:"png"`
	Heightmap bool   `yaml:"heightmap"`
	Layers    bool   `yaml:"layers"`
	Snapshot  bool   `yaml:"snapshot"`
}

// ViewerConfig holds window settings for mapview.
type ViewerConfig struct {
	Scale    int  `yaml:"scale"`
	TPS      int  `yaml:"tps"`
	HUD      bool `yaml:"hud"`
	Shading  bool `yaml:"shading"`
	Marker   bool `yaml:"marker"`
	TourRate int  `yaml:"tour_rate"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Map: worldgen.DefaultConfig(),
		Output: OutputConfig{
			Dir:       "out",
			PNG:       true,
			Heightmap: true,
			Snapshot:  true,
		},
		Viewer: ViewerConfig{
			Scale:    1,
			TPS:      30,
			HUD:      true,
			Marker:   true,
			TourRate: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
