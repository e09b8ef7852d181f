//go:build !ebiten

package app

import (
	"fmt"

	"go.uber.org/zap"

	"toromap/internal/worldgen"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 280

// Options configures the viewer.
type Options struct {
	Scale    int
	HUD      bool
	Shading  bool
	Marker   bool
	TourRate int
}

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*worldgen.Session, Options, *zap.Logger) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
