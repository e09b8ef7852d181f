package voronoi

import "toromap/internal/geom"

// WrapTag says how a neighbor is reached: directly, or through the copy of
// the domain shifted one period to the left or right.
type WrapTag uint8

const (
	Usual WrapTag = iota
	ToLeft
	ToRight
)

func (t WrapTag) String() string {
	switch t {
	case ToLeft:
		return "to-left"
	case ToRight:
		return "to-right"
	default:
		return "usual"
	}
}

// Mirror returns the tag seen from the other side of the seam.
func (t WrapTag) Mirror() WrapTag {
	switch t {
	case ToLeft:
		return ToRight
	case ToRight:
		return ToLeft
	default:
		return Usual
	}
}

// Shift is the translation applied to a middle-third position to obtain the
// copy addressed by the tag.
func (t WrapTag) Shift(off geom.Vec2) geom.Vec2 {
	switch t {
	case ToLeft:
		return off.Scale(-1)
	case ToRight:
		return off
	default:
		return geom.Vec2{}
	}
}

// tagOfCopy maps a copy index in the tripled point array (0 middle, 1 left,
// 2 right) to its tag.
func tagOfCopy(copyIdx int) WrapTag {
	switch copyIdx {
	case 1:
		return ToLeft
	case 2:
		return ToRight
	default:
		return Usual
	}
}

// Triple returns the points followed by their left and right copies, the
// layout Build and the river graph triangulate.
func Triple(pts []geom.Vec2, off geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, 0, 3*len(pts))
	out = append(out, pts...)
	for _, p := range pts {
		out = append(out, p.Sub(off))
	}
	for _, p := range pts {
		out = append(out, p.Add(off))
	}
	return out
}

// Resolve converts an index into a tripled array of n points into the base
// id and its wrap tag.
func Resolve(idx, n int) (int, WrapTag) {
	return idx % n, tagOfCopy(idx / n)
}
