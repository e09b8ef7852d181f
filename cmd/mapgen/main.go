// Command mapgen generates a map headlessly and writes PNG previews and the
// terrain snapshot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"toromap/internal/config"
	"toromap/internal/export"
	"toromap/internal/logger"
	"toromap/internal/worldgen"
)

func main() {
	flags := config.Register(flag.CommandLine)
	save := flag.String("save-config", "", "write the effective config to this path and exit")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, worldgen.ErrInvalidConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
	if *save != "" {
		if err := cfg.SaveTo(*save); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("mapgen failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	gen, err := worldgen.NewGenerator(cfg.Map, worldgen.WithLogger(logger.Log))
	if err != nil {
		return err
	}
	m, err := gen.Generate(cfg.Map.Seed)
	if err != nil {
		return err
	}

	dir := cfg.Output.Dir
	prefix := fmt.Sprintf("map-%d", m.Seed)
	var written []string

	if cfg.Output.PNG {
		path := filepath.Join(dir, prefix+".png")
		if err := export.WritePNG(path, m.Terrain, export.ModeColor); err != nil {
			return err
		}
		written = append(written, path)
	}
	if cfg.Output.Heightmap {
		path := filepath.Join(dir, prefix+"-height.png")
		if err := export.WritePNG(path, m.Terrain, export.ModeHeight); err != nil {
			return err
		}
		written = append(written, path)
	}
	if cfg.Output.Layers {
		for _, l := range []worldgen.Layer{worldgen.LayerPlates, worldgen.LayerCells, worldgen.LayerElevation, worldgen.LayerClimate} {
			if l == worldgen.LayerClimate && m.Climate == nil {
				continue
			}
			path := filepath.Join(dir, prefix+"-"+l.String()+".png")
			if err := export.WritePNG(path, m.Render(l), export.ModeColor); err != nil {
				return err
			}
			written = append(written, path)
		}
	}
	if cfg.Output.Snapshot {
		path := filepath.Join(dir, prefix+".snap")
		if err := export.WriteSnapshot(path, export.HeaderFor(m), m.Pixels()); err != nil {
			return err
		}
		written = append(written, path)
	}

	for _, path := range written {
		st, err := os.Stat(path)
		if err != nil {
			return err
		}
		logger.Log.Info("wrote", zap.String("path", path), zap.String("size", humanize.Bytes(uint64(st.Size()))))
	}
	logger.Log.Info("done",
		zap.Int64("seed", m.Seed),
		zap.Float64("land", m.Stats.LandRatio),
		zap.Int("river_edges", m.Stats.RiverEdges),
		zap.String("raw", humanize.Bytes(uint64(len(m.Pixels())))),
	)
	return nil
}
