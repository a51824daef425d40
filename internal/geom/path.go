package geom

import "math"

// Cubic is one cubic Bézier segment.
type Cubic struct {
	P0, C1, C2, P3 Vec
}

// At evaluates the segment at t in [0,1].
func (c Cubic) At(t float64) Vec {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Vec{
		a*c.P0.X + b*c.C1.X + d*c.C2.X + e*c.P3.X,
		a*c.P0.Y + b*c.C1.Y + d*c.C2.Y + e*c.P3.Y,
	}
}

// HullLen is the length of the control polygon, an upper bound of the arc length.
func (c Cubic) HullLen() float64 {
	return c.P0.Dist(c.C1) + c.C1.Dist(c.C2) + c.C2.Dist(c.P3)
}

// Bounds returns the bounding box of the control points, which contains the curve.
func (c Cubic) Bounds() Rect {
	return BoundsOf(c.P0, c.C1, c.C2, c.P3)
}

// Map applies f to every control point.
func (c Cubic) Map(f func(Vec) Vec) Cubic {
	return Cubic{f(c.P0), f(c.C1), f(c.C2), f(c.P3)}
}

// Flatten appends n+1 evenly spaced samples of c, including both end points, to dst.
func (c Cubic) Flatten(dst []Vec, n int) []Vec {
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		dst = append(dst, c.At(float64(i)/float64(n)))
	}
	return dst
}

// Path is the smoothed geometry of a stroke. Segments[i] runs from Knots[i]
// to Knots[i+1]. A path with a single knot and no segments is a dot.
type Path struct {
	Knots    []Point
	Segments []Cubic
}

// IsDot reports whether the path is a single-point stroke.
func (p Path) IsDot() bool {
	return len(p.Segments) == 0 && len(p.Knots) > 0
}

// Empty reports whether the path has no geometry at all.
func (p Path) Empty() bool {
	return len(p.Knots) == 0
}

// Bounds returns a box containing the whole path.
func (p Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	r := BoundsOf(p.Knots[0].Vec)
	for _, k := range p.Knots[1:] {
		r = r.Extend(k.Vec)
	}
	for _, s := range p.Segments {
		r = r.Union(s.Bounds())
	}
	return r
}

// Dist returns the approximate distance from v to the path,
// sampling every segment at the given step count.
func (p Path) Dist(v Vec, steps int) float64 {
	if p.Empty() {
		return math.Inf(1)
	}
	if p.IsDot() {
		return v.Dist(p.Knots[0].Vec)
	}
	best := math.Inf(1)
	var buf []Vec
	for _, s := range p.Segments {
		buf = s.Flatten(buf[:0], steps)
		for i := 1; i < len(buf); i++ {
			best = math.Min(best, SegmentDist(v, buf[i-1], buf[i]))
		}
	}
	return best
}

// Equal reports whether p and o hold the same knots and segments.
func (p Path) Equal(o Path) bool {
	if len(p.Knots) != len(o.Knots) || len(p.Segments) != len(o.Segments) {
		return false
	}
	for i := range p.Knots {
		if p.Knots[i] != o.Knots[i] {
			return false
		}
	}
	for i := range p.Segments {
		if p.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}
