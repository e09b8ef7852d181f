//go:build ebiten

package render

import "github.com/hajimehoshi/ebiten/v2"

// Painter uploads a surface's RGBA buffer to an ebiten image and draws it
// scaled.
type Painter struct {
	img *ebiten.Image
	buf []byte
	w   int
	h   int
}

// NewPainter allocates a painter for a w x h surface.
func NewPainter(w, h int) *Painter {
	p := &Painter{}
	p.resize(w, h)
	return p
}

func (p *Painter) resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	p.w, p.h = w, h
	p.img = ebiten.NewImage(w, h)
	p.buf = make([]byte, 4*w*h)
}

// Blit draws pix, a w x h RGBA buffer, onto screen.
func (p *Painter) Blit(screen *ebiten.Image, pix []byte, w, h, scale int) {
	if w != p.w || h != p.h {
		p.resize(w, h)
	}
	if scale <= 0 {
		scale = 1
	}
	Opaque(p.buf, pix)
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(p.img, op)
}
