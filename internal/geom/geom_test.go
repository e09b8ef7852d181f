package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var unit = Box{Min: V(0, 0), Max: V(4, 2)}

func requireNear(t *testing.T, want, got Vec2) {
	t.Helper()
	require.InDelta(t, want.X, got.X, 1e-12)
	require.InDelta(t, want.Y, got.Y, 1e-12)
}

func TestClipSegment(t *testing.T) {
	cases := []struct {
		name        string
		a, b        Vec2
		ok          bool
		wantA       Vec2
		wantB       Vec2
		enter, exit Side
	}{
		{"inside", V(1, 1), V(3, 1.5), true, V(1, 1), V(3, 1.5), SideNone, SideNone},
		{"across", V(-1, 1), V(5, 1), true, V(0, 1), V(4, 1), SideLeft, SideRight},
		{"through bottom", V(1, -1), V(2, 1), true, V(1.5, 0), V(2, 1), SideBottom, SideNone},
		{"out the top", V(2, 1), V(2, 3), true, V(2, 1), V(2, 2), SideNone, SideTop},
		{"ends on boundary", V(-2, 1), V(0, 1), true, V(0, 1), V(0, 1), SideLeft, SideNone},
		{"misses", V(5, 5), V(6, 6), false, Vec2{}, Vec2{}, SideNone, SideNone},
		{"stops short", V(-3, 1), V(-1, 1), false, Vec2{}, Vec2{}, SideNone, SideNone},
		{"parallel outside", V(1, 3), V(3, 3), false, Vec2{}, Vec2{}, SideNone, SideNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := unit.ClipSegment(tc.a, tc.b)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			requireNear(t, tc.wantA, c.A)
			requireNear(t, tc.wantB, c.B)
			require.Equal(t, tc.enter, c.Enter)
			require.Equal(t, tc.exit, c.Exit)
		})
	}
}

func TestClipRay(t *testing.T) {
	cases := []struct {
		name        string
		o, dir      Vec2
		ok          bool
		wantA       Vec2
		wantB       Vec2
		enter, exit Side
	}{
		{"from inside", V(1, 1), V(1, 0), true, V(1, 1), V(4, 1), SideNone, SideRight},
		{"from outside", V(-2, 1), V(1, 0), true, V(0, 1), V(4, 1), SideLeft, SideRight},
		{"parallel to left side", V(1, 1), V(0, 1), true, V(1, 1), V(1, 2), SideNone, SideTop},
		{"parallel below", V(1, -1), V(1, 0), false, Vec2{}, Vec2{}, SideNone, SideNone},
		{"parallel beside", V(-1, 1), V(0, 1), false, Vec2{}, Vec2{}, SideNone, SideNone},
		{"pointing away", V(5, 1), V(1, 0), false, Vec2{}, Vec2{}, SideNone, SideNone},
		{"diagonal", V(-1, -0.5), V(1, 1), true, V(0, 0.5), V(1.5, 2), SideLeft, SideTop},
		{"through the bottom", V(2, -1), V(0.5, 1), true, V(2.5, 0), V(3.5, 2), SideBottom, SideTop},
		{"zero direction", V(1, 1), V(0, 0), false, Vec2{}, Vec2{}, SideNone, SideNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok := unit.ClipRay(tc.o, tc.dir)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			requireNear(t, tc.wantA, c.A)
			requireNear(t, tc.wantB, c.B)
			require.Equal(t, tc.enter, c.Enter)
			require.Equal(t, tc.exit, c.Exit)
		})
	}
}

func TestClipReverse(t *testing.T) {
	c, ok := unit.ClipSegment(V(-1, 1), V(5, 1))
	require.True(t, ok)
	r := c.Reverse()
	require.Equal(t, c.B, r.A)
	require.Equal(t, c.A, r.B)
	require.Equal(t, SideRight, r.Enter)
	require.Equal(t, SideLeft, r.Exit)
}

func TestCornersBetween(t *testing.T) {
	cases := []struct {
		from, to Side
		want     []Vec2
	}{
		{SideLeft, SideRight, []Vec2{V(0, 2), V(4, 2)}},
		{SideBottom, SideTop, []Vec2{V(0, 0), V(0, 2)}},
		{SideTop, SideLeft, []Vec2{V(4, 2), V(4, 0), V(0, 0)}},
		{SideRight, SideRight, nil},
		{SideNone, SideTop, nil},
	}
	for _, tc := range cases {
		t.Run(tc.from.String()+"-"+tc.to.String(), func(t *testing.T) {
			require.Equal(t, tc.want, unit.CornersBetween(tc.from, tc.to))
		})
	}
}

func TestLineIntersection(t *testing.T) {
	cases := []struct {
		name           string
		p1, p2, q1, q2 Vec2
		ok             bool
		want           Vec2
	}{
		{"crossing", V(0, 0), V(2, 2), V(0, 2), V(2, 0), true, V(1, 1)},
		{"beyond the segments", V(0, 0), V(1, 1), V(0, 4), V(1, 3), true, V(2, 2)},
		{"perpendicular", V(1, -5), V(1, 5), V(-3, 2), V(3, 2), true, V(1, 2)},
		{"parallel", V(0, 0), V(1, 1), V(0, 1), V(1, 2), false, Vec2{}},
		{"same line", V(0, 0), V(1, 1), V(2, 2), V(3, 3), false, Vec2{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, ok := LineIntersection(tc.p1, tc.p2, tc.q1, tc.q2)
			require.Equal(t, tc.ok, ok)
			if ok {
				requireNear(t, tc.want, x)
			}
		})
	}
}

func TestInTriangle(t *testing.T) {
	a, b, c := V(0, 0), V(4, 0), V(0, 4)
	cases := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"inside", V(1, 1), true},
		{"vertex", V(4, 0), true},
		{"edge midpoint", V(2, 0), true},
		{"hypotenuse", V(2, 2), true},
		{"just outside hypotenuse", V(2, 2.001), false},
		{"behind vertex", V(-1, 0), false},
		{"far away", V(10, 10), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, InTriangle(tc.p, a, b, c), "counter-clockwise")
			require.Equal(t, tc.want, InTriangle(tc.p, a, c, b), "clockwise")
		})
	}
}

func TestDistanceToLine(t *testing.T) {
	require.InDelta(t, 3.0, DistanceToLine(V(1, 3), V(-1, 0), V(5, 0)), 1e-12)
	require.InDelta(t, math.Sqrt2, DistanceToLine(V(0, 2), V(0, 0), V(1, 1)), 1e-12)
	require.InDelta(t, 5.0, DistanceToLine(V(3, 4), V(0, 0), V(0, 0)), 1e-12)
}

func TestCircumcenterEquidistant(t *testing.T) {
	a, b, c := V(0, 0), V(6, 1), V(2, 5)
	o := Circumcenter(a, b, c)
	require.InDelta(t, o.Dist(a), o.Dist(b), 1e-9)
	require.InDelta(t, o.Dist(a), o.Dist(c), 1e-9)
	require.False(t, Circumcenter(V(0, 0), V(1, 1), V(2, 2)).IsFinite())
}

func TestSignedAreaWinding(t *testing.T) {
	ccw := []Vec2{V(0, 0), V(4, 0), V(4, 2), V(0, 2)}
	require.Equal(t, 8.0, SignedArea(ccw))
	cw := []Vec2{V(0, 0), V(0, 2), V(4, 2), V(4, 0)}
	require.Equal(t, -8.0, SignedArea(cw))
}
