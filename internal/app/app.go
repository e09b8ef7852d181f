//go:build ebiten

package app

import (
	"toromap/internal/core"
	"toromap/internal/render"
	"toromap/internal/ui"
	"toromap/internal/worldgen"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
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

// Game adapts a map session to the ebiten.Game interface.
type Game struct {
	session *worldgen.Session
	painter *render.Painter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *zap.Logger

	scale int
	seed  int64
}

// New constructs a Game showing the session.
func New(session *worldgen.Session, opts Options, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	size := session.Size()
	g := &Game{
		session: session,
		painter: render.NewPainter(size.W, size.H),
		overlay: ui.NewOverlay(session, opts.Scale, opts.TourRate, opts.Shading, opts.Marker),
		log:     log,
		scale:   opts.Scale,
		seed:    session.Config().Seed,
	}
	if opts.HUD {
		g.hud = ui.NewHUD(session, HUDWidth)
	}
	return g
}

// Reset regenerates the map with seed.
func (g *Game) Reset(seed int64) {
	if err := g.session.Reset(seed); err != nil {
		g.log.Warn("regenerate failed", zap.Int64("seed", seed), zap.Error(err))
		return
	}
	g.seed = g.session.Config().Seed
	g.overlay.Invalidate()
	g.log.Info("map ready", zap.Int64("seed", g.seed), zap.Duration("took", g.session.Map().Stats.Took))
}

// Update handles input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(core.TimeSeed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.session.SetLayer(g.session.Layer().Next())
	}

	g.overlay.Update()
	if g.hud != nil && g.hud.Update(g.viewWidth()) {
		g.overlay.Invalidate()
	}
	return nil
}

// Draw renders the current layer, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.session.Size()
	g.painter.Blit(screen, g.session.Pixels(), size.W, size.H, g.scale)
	g.overlay.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen, g.viewWidth(), g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	w := g.viewWidth()
	if g.hud != nil {
		w += HUDWidth
	}
	return w, s.H * g.scale
}

func (g *Game) viewWidth() int {
	return g.session.Size().W * g.scale
}
