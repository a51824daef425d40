package geom

import (
	"math"
	"time"
)

// Vec is a position in logical drawing units.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec             { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec             { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(s float64) Vec         { return Vec{v.X * s, v.Y * s} }
func (v Vec) Dot(o Vec) float64         { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64        { return v.Sub(o).Len() }
func (v Vec) Lerp(o Vec, t float64) Vec { return Vec{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t} }

// Point is one recorded input sample in logical coordinates.
// T is the host timestamp of the sample.
type Point struct {
	Vec
	T time.Duration

	// Pressure is only meaningful when HasPressure is set.
	Pressure    float64
	HasPressure bool
}

// NewPoint returns a point without pressure information.
func NewPoint(x, y float64, t time.Duration) Point {
	return Point{Vec: Vec{x, y}, T: t}
}

// WithPressure returns a copy of p carrying the given pressure, clamped to [0,1].
func (p Point) WithPressure(pressure float64) Point {
	p.Pressure = math.Max(0, math.Min(1, pressure))
	p.HasPressure = true
	return p
}

// Pixel is a position on the drawing surface in surface (CSS) pixels.
type Pixel struct {
	X, Y float64
}

// Size is a width/height pair, in whatever units the caller is working in.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return !(s.W > 0) || !(s.H > 0) }

// Rect is an axis aligned rectangle. Min is inclusive, Max is inclusive.
type Rect struct {
	Min, Max Vec
}

// BoundsOf returns the bounding box of the given positions.
func BoundsOf(vs ...Vec) Rect {
	if len(vs) == 0 {
		return Rect{}
	}
	r := Rect{Min: vs[0], Max: vs[0]}
	for _, v := range vs[1:] {
		r = r.Extend(v)
	}
	return r
}

// Extend grows r so that it contains v.
func (r Rect) Extend(v Vec) Rect {
	r.Min.X = math.Min(r.Min.X, v.X)
	r.Min.Y = math.Min(r.Min.Y, v.Y)
	r.Max.X = math.Max(r.Max.X, v.X)
	r.Max.Y = math.Max(r.Max.Y, v.Y)
	return r
}

// Inset moves every edge of r inwards by d. Negative values grow the rectangle.
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: Vec{r.Min.X + d, r.Min.Y + d}, Max: Vec{r.Max.X - d, r.Max.Y - d}}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return r.Extend(o.Min).Extend(o.Max)
}

// Overlaps reports whether r and o share any area, edges included.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Max.X < o.Min.X || o.Max.X < r.Min.X ||
		r.Max.Y < o.Min.Y || o.Max.Y < r.Min.Y)
}

// Contains reports whether v lies inside r, edges included.
func (r Rect) Contains(v Vec) bool {
	return v.X >= r.Min.X && v.X <= r.Max.X && v.Y >= r.Min.Y && v.Y <= r.Max.Y
}

// SegmentDist returns the distance from p to the segment ab.
// A degenerate segment is treated as a single point.
func SegmentDist(p, a, b Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Add(ab.Mul(t)))
}
