package geom

import "math"

// Side names a box boundary. The order Left, Top, Right, Bottom is the
// clockwise walk around a box with y pointing up.
type Side uint8

const (
	SideNone Side = iota
	SideLeft
	SideTop
	SideRight
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	default:
		return "none"
	}
}

// Next returns the side that follows s clockwise.
func (s Side) Next() Side {
	switch s {
	case SideLeft:
		return SideTop
	case SideTop:
		return SideRight
	case SideRight:
		return SideBottom
	case SideBottom:
		return SideLeft
	default:
		return SideNone
	}
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min, Max Vec2
}

// EmptyBox returns a box that any Extend call will replace.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
}

// Extend grows the box to include p.
func (b Box) Extend(p Vec2) Box {
	return Box{
		Min: Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

// Contains reports whether p lies inside the closed box.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Size returns the box extent.
func (b Box) Size() Vec2 { return b.Max.Sub(b.Min) }

// Translate shifts the box by d.
func (b Box) Translate(d Vec2) Box { return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)} }

// CornerAfter returns the corner reached when walking side s clockwise.
func (b Box) CornerAfter(s Side) Vec2 {
	switch s {
	case SideLeft:
		return Vec2{b.Min.X, b.Max.Y}
	case SideTop:
		return b.Max
	case SideRight:
		return Vec2{b.Max.X, b.Min.Y}
	default:
		return b.Min
	}
}

// CornersBetween lists the corners passed when walking the boundary clockwise
// from side from to side to.
func (b Box) CornersBetween(from, to Side) []Vec2 {
	if from == SideNone || to == SideNone {
		return nil
	}
	var out []Vec2
	for s := from; s != to; s = s.Next() {
		out = append(out, b.CornerAfter(s))
	}
	return out
}

// Clip is the visible part of a clipped segment or ray. Enter is SideNone
// when the original start lies inside the box, Exit when the end does.
type Clip struct {
	A, B        Vec2
	Enter, Exit Side
}

// Reverse swaps the traversal direction.
func (c Clip) Reverse() Clip {
	return Clip{A: c.B, B: c.A, Enter: c.Exit, Exit: c.Enter}
}

// ClipSegment clips the segment ab against the box (Liang-Barsky).
func (b Box) ClipSegment(a, c Vec2) (Clip, bool) {
	return b.clip(a, c.Sub(a), 1)
}

// ClipRay clips the ray starting at o with direction dir against the box,
// returning the nearest entry and exit intersections.
func (b Box) ClipRay(o, dir Vec2) (Clip, bool) {
	return b.clip(o, dir, math.Inf(1))
}

func (b Box) clip(o, d Vec2, tmax float64) (Clip, bool) {
	t0, t1 := 0.0, tmax
	enter, exit := SideNone, SideNone
	bounds := [4]struct {
		p, q float64
		side Side
	}{
		{-d.X, o.X - b.Min.X, SideLeft},
		{d.X, b.Max.X - o.X, SideRight},
		{-d.Y, o.Y - b.Min.Y, SideBottom},
		{d.Y, b.Max.Y - o.Y, SideTop},
	}
	for _, bd := range bounds {
		if bd.p == 0 {
			if bd.q < 0 {
				return Clip{}, false
			}
			continue
		}
		r := bd.q / bd.p
		if bd.p < 0 {
			if r > t1 {
				return Clip{}, false
			}
			if r > t0 {
				t0 = r
				enter = bd.side
			}
		} else {
			if r < t0 {
				return Clip{}, false
			}
			if r < t1 {
				t1 = r
				exit = bd.side
			}
		}
	}
	if math.IsInf(t1, 1) {
		return Clip{}, false
	}
	return Clip{
		A:     o.Add(d.Scale(t0)),
		B:     o.Add(d.Scale(t1)),
		Enter: enter,
		Exit:  exit,
	}, true
}
