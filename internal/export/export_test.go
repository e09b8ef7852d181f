package export

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"toromap/internal/geom"
	"toromap/internal/raster"
	"toromap/internal/worldgen"
)

func testBitmap() *raster.Bitmap {
	bm := raster.NewBitmap(12, 4, geom.V(1, 1), color.RGBA{A: 255})
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			bm.Set(x, y, color.RGBA{R: uint8(x * 20), G: uint8(y * 60), B: 7, A: uint8(x*10 + y)})
		}
	}
	return bm
}

func TestSnapshotRoundTrip(t *testing.T) {
	bm := testBitmap()
	path := filepath.Join(t.TempDir(), "maps", "world.snap")
	h := Header{Version: SnapshotVersion, Width: bm.W, Height: bm.H, Seed: 99, Config: worldgen.DefaultConfig()}
	require.NoError(t, WriteSnapshot(path, h, bm.Pix))

	got, pix, err := ReadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, bm.Pix, pix)
}

func TestSnapshotRejectsSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap")
	err := WriteSnapshot(path, Header{Version: SnapshotVersion, Width: 3, Height: 3}, make([]byte, 5))
	require.Error(t, err)
}

func writeRaw(t *testing.T, path string, payload []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write(payload)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestReadSnapshotRejectsTruncatedPayload(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.snap")
	writeRaw(t, short, []byte(`{"version":1,"width":2,"height":2,"seed":1}`+"\n"+"abc"))
	_, _, err := ReadSnapshot(short)
	require.ErrorIs(t, err, ErrBadSnapshot)

	long := filepath.Join(dir, "long.snap")
	writeRaw(t, long, append([]byte(`{"version":1,"width":1,"height":1,"seed":1}`+"\n"), 1, 2, 3, 4, 5))
	_, _, err = ReadSnapshot(long)
	require.ErrorIs(t, err, ErrBadSnapshot)

	header := filepath.Join(dir, "header.snap")
	writeRaw(t, header, []byte("not json\n"))
	_, _, err = ReadSnapshot(header)
	require.ErrorIs(t, err, ErrBadSnapshot)

	version := filepath.Join(dir, "version.snap")
	writeRaw(t, version, []byte(`{"version":7,"width":1,"height":1}`+"\n\x00\x00\x00\x00"))
	_, _, err = ReadSnapshot(version)
	require.ErrorIs(t, err, ErrBadSnapshot)
}

func TestWritePNGModes(t *testing.T) {
	bm := testBitmap()
	dir := t.TempDir()

	colorPath := filepath.Join(dir, "color.png")
	require.NoError(t, WritePNG(colorPath, bm, ModeColor))
	f, err := os.Open(colorPath)
	require.NoError(t, err)
	img, err := png.Decode(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	require.Equal(t, bm.W, img.Bounds().Dx())
	r, g, b, a := img.At(3, 2).RGBA()
	require.Equal(t, uint32(60), r>>8)
	require.Equal(t, uint32(120), g>>8)
	require.Equal(t, uint32(7), b>>8)
	require.Equal(t, uint32(255), a>>8)

	heightPath := filepath.Join(dir, "height.png")
	require.NoError(t, WritePNG(heightPath, bm, ModeHeight))
	f, err = os.Open(heightPath)
	require.NoError(t, err)
	img, err = png.Decode(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	gray := color.GrayModel.Convert(img.At(3, 2)).(color.Gray)
	require.Equal(t, uint8(32), gray.Y)
}
