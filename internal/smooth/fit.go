package smooth

import "SketchBoard/internal/geom"

// Simplify drops near collinear samples with the Douglas-Peucker algorithm.
// The first and last samples are always kept, and a sample survives when it
// lies more than tolerance away from the chord of its surrounding run.
func Simplify(pts []geom.Point, tolerance float64) []geom.Point {
	if len(pts) < 3 || !(tolerance > 0) {
		return append([]geom.Point(nil), pts...)
	}
	keep := make([]bool, len(pts))
	keep[0], keep[len(pts)-1] = true, true

	type span struct{ lo, hi int }
	stack := []span{{0, len(pts) - 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.hi-s.lo < 2 {
			continue
		}
		a, b := pts[s.lo].Vec, pts[s.hi].Vec
		idx, worst := -1, tolerance
		for i := s.lo + 1; i < s.hi; i++ {
			if d := geom.SegmentDist(pts[i].Vec, a, b); d > worst {
				idx, worst = i, d
			}
		}
		if idx < 0 {
			continue
		}
		keep[idx] = true
		stack = append(stack, span{s.lo, idx}, span{idx, s.hi})
	}

	out := make([]geom.Point, 0, len(pts))
	for i, k := range keep {
		if k {
			out = append(out, pts[i])
		}
	}
	return out
}

// Fit returns the Catmull-Rom spline through knots as cubic Bézier segments.
// The curve passes through every knot and has continuous tangents at the
// interior knots. The end tangents reuse the end knots as phantom neighbours.
func Fit(knots []geom.Point) geom.Path {
	p := geom.Path{Knots: knots}
	if len(knots) < 2 {
		return p
	}
	p.Segments = make([]geom.Cubic, 0, len(knots)-1)
	at := func(i int) geom.Vec {
		i = max(0, min(len(knots)-1, i))
		return knots[i].Vec
	}
	for i := 0; i < len(knots)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		p.Segments = append(p.Segments, geom.Cubic{
			P0: p1,
			C1: p1.Add(p2.Sub(p0).Mul(1.0 / 6)),
			C2: p2.Sub(p3.Sub(p1).Mul(1.0 / 6)),
			P3: p2,
		})
	}
	return p
}

// Build simplifies raw and fits the smoothed path. It is the single path
// construction routine used for finished strokes and the live preview.
func Build(raw []geom.Point, tolerance float64) geom.Path {
	return Fit(Simplify(raw, tolerance))
}
