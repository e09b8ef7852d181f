package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"toromap/internal/raster"
)

// Mode selects what WritePNG encodes.
type Mode int

const (
	// ModeColor writes the RGB channels with opaque alpha.
	ModeColor Mode = iota
	// ModeHeight writes the alpha channel as a grayscale heightmap.
	ModeHeight
)

func (m Mode) String() string {
	if m == ModeHeight {
		return "height"
	}
	return "color"
}

// Image converts the bitmap for the given mode.
func Image(bm *raster.Bitmap, mode Mode) image.Image {
	rect := image.Rect(0, 0, bm.W, bm.H)
	if mode == ModeHeight {
		img := image.NewGray(rect)
		for i := 0; i < bm.W*bm.H; i++ {
			img.Pix[i] = bm.Pix[4*i+3]
		}
		return img
	}
	img := image.NewRGBA(rect)
	copy(img.Pix, bm.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// WritePNG encodes the bitmap to path.
func WritePNG(path string, bm *raster.Bitmap, mode Mode) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, Image(bm, mode)); err != nil {
		return fmt.Errorf("encode %s png: %w", mode, err)
	}
	return nil
}
