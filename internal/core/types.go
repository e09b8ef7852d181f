package core

// Size describes the dimensions of a pixel surface.
type Size struct {
	W int
	H int
}

// Surface is what the viewer displays: a named RGBA buffer that can be
// regenerated from a seed.
type Surface interface {
	Name() string
	Size() Size
	Reset(seed int64) error
	Pixels() []byte
}
