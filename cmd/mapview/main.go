//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"toromap/internal/app"
	"toromap/internal/config"
	"toromap/internal/logger"
	"toromap/internal/worldgen"
)

func main() {
	flags := config.Register(flag.CommandLine)
	scale := flag.Int("scale", 0, "window scale factor")
	layer := flag.String("layer", "terrain", "initial layer (terrain, plates, cells, elevation, climate)")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()
	if *scale > 0 {
		cfg.Viewer.Scale = *scale
	}

	session, err := worldgen.NewSession(cfg.Map, logger.Log)
	if err != nil {
		logger.Log.Fatal("generate", zap.Error(err))
	}
	l, ok := worldgen.ParseLayer(*layer)
	if !ok {
		logger.Log.Fatal("unknown layer", zap.String("layer", *layer))
	}
	session.SetLayer(l)

	game := app.New(session, app.Options{
		Scale:    cfg.Viewer.Scale,
		HUD:      cfg.Viewer.HUD,
		Shading:  cfg.Viewer.Shading,
		Marker:   cfg.Viewer.Marker,
		TourRate: cfg.Viewer.TourRate,
	}, logger.Log)

	size := session.Size()
	w := size.W * cfg.Viewer.Scale
	if cfg.Viewer.HUD {
		w += app.HUDWidth
	}
	ebiten.SetWindowTitle("toromap")
	ebiten.SetTPS(cfg.Viewer.TPS)
	ebiten.SetWindowSize(w, size.H*cfg.Viewer.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Log.Fatal("viewer", zap.Error(err))
	}
}
