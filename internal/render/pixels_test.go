package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func heightBuffer(w, h int, f func(x, y int) uint8) []byte {
	buf := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[4*(y*w+x)+3] = f(x, y)
		}
	}
	return buf
}

func TestShadeFlatLandIsClear(t *testing.T) {
	const w, h = 8, 6
	heights := heightBuffer(w, h, func(int, int) uint8 { return 200 })
	buf := make([]byte, 4*w*h)
	Shade(buf, heights, w, h, 128)
	for i := 3; i < len(buf); i += 4 {
		require.Zero(t, buf[i])
	}
}

func TestShadeSlopes(t *testing.T) {
	const w, h = 16, 4
	// rises to the east: west-facing slopes face the light
	heights := heightBuffer(w, h, func(x, _ int) uint8 { return uint8(128 + 8*x) })
	buf := make([]byte, 4*w*h)
	Shade(buf, heights, w, h, 128)
	base := 4 * (2*w + 5)
	require.NotZero(t, buf[base+3])
	require.Equal(t, uint8(255), buf[base])

	// falls to the east
	heights = heightBuffer(w, h, func(x, _ int) uint8 { return uint8(255 - 8*x) })
	Shade(buf, heights, w, h, 0)
	require.NotZero(t, buf[base+3])
	require.Equal(t, uint8(10), buf[base])
}

func TestShadeSkipsWater(t *testing.T) {
	const w, h = 4, 4
	heights := heightBuffer(w, h, func(x, _ int) uint8 { return uint8(40 * x) })
	buf := make([]byte, 4*w*h)
	for i := range buf {
		buf[i] = 99
	}
	Shade(buf, heights, w, h, 100)
	require.Equal(t, []byte{0, 0, 0, 0}, buf[0:4])
}

func TestOpaque(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	dst := make([]byte, 8)
	Opaque(dst, src)
	require.Equal(t, []byte{1, 2, 3, 255, 5, 6, 7, 255}, dst)
}
