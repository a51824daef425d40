// Package render paints documents onto pixel surfaces.
//
// Geometry is smoothed once, in logical units, when a stroke is finished;
// rendering only maps it through the view transform, so a document can be
// redrawn at any scale without touching the strokes.
package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Options control optional rendering behaviour.
type Options struct {
	// PressureWidth scales the stroke width at each sample by its pressure.
	PressureWidth bool
}

// Renderer draws documents. Its output depends only on the arguments of
// Render; the rasterizer and vertex buffers it keeps are scratch space.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts Options

	z    vector.Rasterizer
	line []vertex
}

type vertex struct {
	p geom.Vec
	r float64 // half width in device pixels
}

// New returns a Renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

func (r *Renderer) Options() Options { return r.opts }

// Render clears dst to the document background, paints the strokes of doc
// in order and then live, the stroke being drawn, if it is not nil. dst is
// addressed in device pixels with tr.ToDevice(0,0) at dst.Bounds().Min.
func (r *Renderer) Render(dst draw.Image, doc *state.Document, tr geom.Transform, live *state.Stroke) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(doc.Background()), image.Point{}, draw.Src)
	if b.Empty() {
		return
	}
	for _, s := range doc.Strokes() {
		r.stroke(dst, tr, s)
	}
	if live != nil {
		r.stroke(dst, tr, *live)
	}
}

// RenderImage allocates a surface sized for tr and renders into it.
func (r *Renderer) RenderImage(doc *state.Document, tr geom.Transform, live *state.Stroke) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: DeviceSize(tr, doc.Size())})
	r.Render(dst, doc, tr, live)
	return dst
}

// DeviceSize is the pixel size of a surface for tr. A transform without a
// surface covers the scaled logical area.
func DeviceSize(tr geom.Transform, logical geom.Size) image.Point {
	s := tr.Surface
	if s.Empty() {
		s = geom.Size{W: logical.W * tr.ScaleX, H: logical.H * tr.ScaleY}
	}
	return image.Point{
		X: int(math.Ceil(s.W * tr.PixelRatio)),
		Y: int(math.Ceil(s.H * tr.PixelRatio)),
	}
}

func (r *Renderer) stroke(dst draw.Image, tr geom.Transform, s state.Stroke) {
	if s.Path.Empty() || s.Style.Opacity <= 0 || s.Style.Color.A == 0 {
		return
	}
	b := dst.Bounds()
	box := deviceBox(tr, s.Bounds(), b.Size())
	if box.Empty() {
		return
	}

	r.line = r.flatten(r.line[:0], tr, s)
	origin := geom.Vec{X: float64(box.Min.X), Y: float64(box.Min.Y)}
	r.z.Reset(box.Dx(), box.Dy())
	for i := range r.line {
		r.line[i].p = r.line[i].p.Sub(origin)
		r.circle(r.line[i])
		if i > 0 {
			r.quad(r.line[i-1], r.line[i])
		}
	}

	c := s.Style.Color
	c.A = uint8(math.Round(float64(c.A) * math.Min(1, s.Style.Opacity)))
	r.z.Draw(dst, box.Add(b.Min), image.NewUniform(c), image.Point{})
}

// deviceBox is the pixel box covering lb, padded for the minimum pen width
// and anti-aliasing, clipped to a surface of size sz.
func deviceBox(tr geom.Transform, lb geom.Rect, sz image.Point) image.Rectangle {
	a, b := tr.ToDevice(lb.Min), tr.ToDevice(lb.Max)
	clamp := func(v float64, hi int) int {
		return int(math.Max(0, math.Min(float64(hi), v)))
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	if math.IsNaN(minX + minY + maxX + maxY) {
		return image.Rectangle{}
	}
	return image.Rectangle{
		Min: image.Point{X: clamp(math.Floor(minX)-1, sz.X), Y: clamp(math.Floor(minY)-1, sz.Y)},
		Max: image.Point{X: clamp(math.Ceil(maxX)+1, sz.X), Y: clamp(math.Ceil(maxY)+1, sz.Y)},
	}
}

// flatten samples the stroke path in device space, attaching the half
// width at each sample.
func (r *Renderer) flatten(dst []vertex, tr geom.Transform, s state.Stroke) []vertex {
	scale := tr.DeviceScale()
	half := func(k geom.Point) float64 {
		w := s.Style.Width
		if r.opts.PressureWidth && k.HasPressure {
			w *= 0.25 + 0.75*k.Pressure
		}
		return math.Max(0.5, w*scale/2)
	}
	knots := s.Path.Knots
	if s.Path.IsDot() {
		return append(dst, vertex{tr.ToDevice(knots[0].Vec), half(knots[0])})
	}
	var pts []geom.Vec
	for i, seg := range s.Path.Segments {
		dev := seg.Map(tr.ToDevice)
		n := 1 + int(dev.HullLen()/3)
		n = min(n, 64)
		pts = dev.Flatten(pts[:0], n)
		r0, r1 := half(knots[i]), half(knots[i+1])
		start := 1
		if i == 0 {
			start = 0
		}
		for j := start; j < len(pts); j++ {
			t := float64(j) / float64(n)
			dst = append(dst, vertex{pts[j], r0 + (r1-r0)*t})
		}
	}
	return dst
}

// All shapes are emitted with positive winding so that overlapping pieces
// of one stroke merge instead of cancelling in the accumulation buffer.

const kappa = 0.5522847498

func (r *Renderer) circle(v vertex) {
	x, y, k := v.p.X, v.p.Y, v.r*kappa
	rr := v.r
	r.moveTo(x+rr, y)
	r.cubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	r.cubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	r.cubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	r.cubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	r.z.ClosePath()
}

func (r *Renderer) quad(a, b vertex) {
	d := b.p.Sub(a.p)
	l := d.Len()
	if l == 0 {
		return
	}
	n := geom.Vec{X: -d.Y / l, Y: d.X / l}
	q := [4]geom.Vec{
		a.p.Add(n.Mul(a.r)), b.p.Add(n.Mul(b.r)),
		b.p.Sub(n.Mul(b.r)), a.p.Sub(n.Mul(a.r)),
	}
	if area(q[:]) < 0 {
		q[1], q[3] = q[3], q[1]
	}
	r.moveTo(q[0].X, q[0].Y)
	for _, p := range q[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
}

func (r *Renderer) moveTo(x, y float64) { r.z.MoveTo(float32(x), float32(y)) }

func (r *Renderer) cubeTo(bx, by, cx, cy, dx, dy float64) {
	r.z.CubeTo(float32(bx), float32(by), float32(cx), float32(cy), float32(dx), float32(dy))
}

// area is the signed shoelace area of a closed polygon.
func area(poly []geom.Vec) float64 {
	var a float64
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}
