// Package raster draws into an RGBA pixel buffer that spans the three copies
// of the logical domain side by side.
package raster

import (
	"image"
	"image/color"

	"toromap/internal/geom"
)

// Bitmap stores RGBA pixels in row-major order. Space is the logical domain
// extent; the pixel width covers three times Space.X.
type Bitmap struct {
	W, H       int
	Space      geom.Vec2
	Pix        []byte
	Background color.RGBA
}

// NewBitmap allocates a bitmap cleared to bg.
func NewBitmap(w, h int, space geom.Vec2, bg color.RGBA) *Bitmap {
	if w <= 1 {
		w = 2
	}
	if h <= 1 {
		h = 2
	}
	b := &Bitmap{W: w, H: h, Space: space, Pix: make([]byte, w*h*4), Background: bg}
	b.Clear()
	return b
}

// Index returns the byte offset of pixel (x, y).
func (b *Bitmap) Index(x, y int) int { return (y*b.W + x) * 4 }

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool { return x >= 0 && y >= 0 && x < b.W && y < b.H }

// At returns the pixel color.
func (b *Bitmap) At(x, y int) color.RGBA {
	i := b.Index(x, y)
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes a pixel, ignoring coordinates outside the bitmap.
func (b *Bitmap) Set(x, y int, c color.RGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.Index(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
}

// SetRGB writes the color channels and keeps the alpha channel.
func (b *Bitmap) SetRGB(x, y int, c color.RGBA) {
	if !b.In(x, y) {
		return
	}
	i := b.Index(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
}

// Occupied reports whether the pixel color differs from the background.
// Alpha is ignored since it carries elevation.
func (b *Bitmap) Occupied(x, y int) bool {
	i := b.Index(x, y)
	bg := b.Background
	return b.Pix[i] != bg.R || b.Pix[i+1] != bg.G || b.Pix[i+2] != bg.B
}

// Clear fills the bitmap with the background color.
func (b *Bitmap) Clear() {
	bg := b.Background
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
}

// ToPixel maps a point of the tripled domain to pixel coordinates.
func (b *Bitmap) ToPixel(p geom.Vec2) (int, int) {
	x := int(p.X * float64(b.W-1) / (3 * b.Space.X))
	y := int(p.Y * float64(b.H-1) / b.Space.Y)
	return x, y
}

// ToSpace maps pixel coordinates back to the tripled domain.
func (b *Bitmap) ToSpace(x, y int) geom.Vec2 {
	return geom.V(float64(x)*3*b.Space.X/float64(b.W-1), float64(y)*b.Space.Y/float64(b.H-1))
}

// Image wraps the pixel buffer without copying.
func (b *Bitmap) Image() *image.RGBA {
	return &image.RGBA{Pix: b.Pix, Stride: b.W * 4, Rect: image.Rect(0, 0, b.W, b.H)}
}
