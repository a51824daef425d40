package state

import (
	"image/color"
	"math"
	"slices"

	"SketchBoard/internal/geom"
)

// Style is the pen a stroke was drawn with.
type Style struct {
	Color   color.NRGBA
	Width   float64
	Opacity float64
}

// DefaultStyle is a 2 unit wide opaque black pen.
func DefaultStyle() Style {
	return Style{Color: color.NRGBA{A: 0xff}, Width: 2, Opacity: 1}
}

// Stroke is one finished freehand gesture. Strokes are immutable once they
// have been added to a Document; the slices must not be modified.
type Stroke struct {
	ID     string
	Points []geom.Point
	Path   geom.Path
	Style  Style

	// Tolerance is the simplification tolerance the path was built with.
	Tolerance float64
}

// Bounds returns the logical area touched by the stroke, including its width.
func (s Stroke) Bounds() geom.Rect {
	return s.Path.Bounds().Inset(-s.Style.Width / 2)
}

// Hit reports whether v lies on the stroke, allowing slop extra units.
func (s Stroke) Hit(v geom.Vec, slop float64) bool {
	reach := s.Style.Width/2 + slop
	if !s.Bounds().Inset(-slop).Contains(v) {
		return false
	}
	return s.Path.Dist(v, 16) <= reach
}

// Equal reports whether both strokes carry the same identity, samples, geometry and style.
func (s Stroke) Equal(o Stroke) bool {
	return s.ID == o.ID &&
		s.Style == o.Style &&
		s.Tolerance == o.Tolerance &&
		slices.Equal(s.Points, o.Points) &&
		s.Path.Equal(o.Path)
}

// Document is an ordered set of strokes on a fixed logical canvas. The
// stroke order is the paint order. A Document is only changed through Apply.
type Document struct {
	size       geom.Size
	background color.NRGBA
	strokes    []Stroke
	revision   uint64
}

// DefaultSize is the logical canvas used when nothing else is configured.
var DefaultSize = geom.Size{W: 800, H: 600}

// NewDocument returns an empty document. A non-positive size panics.
func NewDocument(size geom.Size, background color.NRGBA) *Document {
	if size.Empty() || math.IsInf(size.W, 0) || math.IsInf(size.H, 0) {
		violate("NewDocument", "invalid size %vx%v", size.W, size.H)
	}
	return &Document{size: size, background: background}
}

// NewDocumentWith returns a document holding the given strokes, as produced by a decoder.
func NewDocumentWith(size geom.Size, background color.NRGBA, strokes []Stroke) *Document {
	d := NewDocument(size, background)
	d.strokes = slices.Clone(strokes)
	return d
}

func (d *Document) Size() geom.Size         { return d.size }
func (d *Document) Background() color.NRGBA { return d.background }
func (d *Document) Len() int                { return len(d.strokes) }

// Revision increases by one on every applied command.
func (d *Document) Revision() uint64 { return d.revision }

// Stroke returns the stroke at index i.
func (d *Document) Stroke(i int) Stroke {
	d.checkIndex("Stroke", i, len(d.strokes)-1)
	return d.strokes[i]
}

// Strokes returns the strokes in paint order. The returned slice is a copy.
func (d *Document) Strokes() []Stroke {
	return slices.Clone(d.strokes)
}

// StrokeAt returns the index of the topmost stroke hit at v, or -1.
func (d *Document) StrokeAt(v geom.Vec, slop float64) int {
	for i := len(d.strokes) - 1; i >= 0; i-- {
		if d.strokes[i].Hit(v, slop) {
			return i
		}
	}
	return -1
}

// Apply mutates the document in place.
func (d *Document) Apply(cmd Command) {
	cmd.apply(d)
	d.revision++
}

// Clone returns an independent copy sharing the immutable strokes.
func (d *Document) Clone() *Document {
	c := *d
	c.strokes = slices.Clone(d.strokes)
	return &c
}

// Equal compares size, background and strokes. The revision is ignored.
func (d *Document) Equal(o *Document) bool {
	if d.size != o.size || d.background != o.background || len(d.strokes) != len(o.strokes) {
		return false
	}
	for i := range d.strokes {
		if !d.strokes[i].Equal(o.strokes[i]) {
			return false
		}
	}
	return true
}

func (d *Document) checkIndex(op string, i, last int) {
	if i < 0 || i > last {
		violate(op, "index %d out of range [0,%d]", i, last)
	}
}
