package geom

import "math"

// Det is the 2x2 determinant |a b|, i.e. the z component of a x b.
func Det(a, b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

// Orient is positive when a, b, c turn counter-clockwise.
func Orient(a, b, c Vec2) float64 { return Det(b.Sub(a), c.Sub(a)) }

// LineIntersection intersects the infinite lines p1p2 and q1q2.
func LineIntersection(p1, p2, q1, q2 Vec2) (Vec2, bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	den := Det(r, s)
	if den == 0 {
		return Vec2{}, false
	}
	t := Det(q1.Sub(p1), s) / den
	return p1.Add(r.Scale(t)), true
}

// DistanceToLine returns the distance from p to the infinite line through a
// and b. Degenerate lines fall back to the distance to a.
func DistanceToLine(p, a, b Vec2) float64 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return p.Dist(a)
	}
	return math.Abs(Det(d, p.Sub(a))) / l
}

// Circumcenter returns the center of the circle through a, b and c. For
// collinear input the result is not finite.
func Circumcenter(a, b, c Vec2) Vec2 {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	return Vec2{
		X: a.X + (cy*b2-by*c2)/d,
		Y: a.Y + (bx*c2-cx*b2)/d,
	}
}

// InTriangle reports whether p lies inside (or on) the triangle abc,
// independent of the triangle's winding.
func InTriangle(p, a, b, c Vec2) bool {
	d1 := Orient(a, b, p)
	d2 := Orient(b, c, p)
	d3 := Orient(c, a, p)
	neg := d1 < 0 || d2 < 0 || d3 < 0
	pos := d1 > 0 || d2 > 0 || d3 > 0
	return !(neg && pos)
}

// SignedArea is the shoelace area; negative for clockwise polygons.
func SignedArea(pts []Vec2) float64 {
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

// Mean returns the average of the points.
func Mean(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var s Vec2
	for _, p := range pts {
		s = s.Add(p)
	}
	return s.Scale(1 / float64(len(pts)))
}

// Angle returns the unsigned angle between a and b in radians.
func Angle(a, b Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	c := a.Dot(b) / (la * lb)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}
