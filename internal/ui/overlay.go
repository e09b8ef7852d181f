//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"time"

	"toromap/internal/core"
	"toromap/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type heightProvider interface {
	Heights() []byte
}

type tourProvider interface {
	TourMarker(offset float64) []image.Point
}

// seaLevel is the quantized elevation of the coastline.
const seaLevel = 128

// tourLapTicks is the number of ticks for one lap of the tour.
const tourLapTicks = 1200

// Overlay draws elevation shading and the tour marker on top of the map.
type Overlay struct {
	surface core.Surface
	scale   int

	showShading bool
	showMarker  bool

	shadeImg   *ebiten.Image
	shadeBuf   []byte
	shadeDirty bool
	lastHeight []byte

	ticker *core.FixedStep
	offset float64

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay; tourRate is the marker speed in ticks per
// second.
func NewOverlay(surface core.Surface, scale, tourRate int, shading, marker bool) *Overlay {
	o := &Overlay{
		surface:     surface,
		scale:       scale,
		showShading: shading,
		showMarker:  marker,
		shadeDirty:  true,
		ticker:      core.NewFixedStep(tourRate),
	}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Invalidate marks the cached shading stale after the map changed.
func (o *Overlay) Invalidate() { o.shadeDirty = true }

// Update toggles layers and advances the tour marker.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showShading = !o.showShading
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showMarker = !o.showMarker
	}
	ticks := o.ticker.Advance(time.Now())
	if o.showMarker && ticks > 0 {
		o.offset += float64(ticks) / tourLapTicks
		if o.offset >= 1 {
			o.offset -= 1
		}
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.surface.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showShading {
		if p, ok := o.surface.(heightProvider); ok {
			o.drawShading(screen, p.Heights(), size, scale)
		}
	}
	if o.showMarker {
		if p, ok := o.surface.(tourProvider); ok {
			for _, pt := range p.TourMarker(o.offset) {
				sx := (float64(pt.X) + 0.5) * float64(scale)
				sy := (float64(pt.Y) + 0.5) * float64(scale)
				o.drawPoint(screen, sx, sy, float64(6*scale), color.RGBA{R: 20, G: 20, B: 20, A: 255})
				o.drawPoint(screen, sx, sy, float64(4*scale), color.RGBA{R: 255, G: 60, B: 40, A: 255})
			}
		}
	}
}

func (o *Overlay) drawShading(screen *ebiten.Image, heights []byte, size core.Size, scale int) {
	total := size.W * size.H
	if len(heights) != 4*total {
		return
	}
	if o.shadeImg == nil || o.shadeImg.Bounds().Dx() != size.W || o.shadeImg.Bounds().Dy() != size.H {
		o.shadeImg = ebiten.NewImage(size.W, size.H)
		o.shadeBuf = make([]byte, 4*total)
		o.shadeDirty = true
	}
	// the session swaps the buffer on regeneration
	if len(o.lastHeight) == 0 || &o.lastHeight[0] != &heights[0] {
		o.lastHeight = heights
		o.shadeDirty = true
	}
	if o.shadeDirty {
		render.Shade(o.shadeBuf, heights, size.W, size.H, seaLevel)
		o.shadeImg.WritePixels(o.shadeBuf)
		o.shadeDirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.shadeImg, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
