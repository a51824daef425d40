package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
)

func line(id string, x0, y0, x1, y1, width float64) Stroke {
	k := []geom.Point{geom.NewPoint(x0, y0, 0), geom.NewPoint(x1, y1, 1)}
	return Stroke{
		ID:     id,
		Points: k,
		Path: geom.Path{Knots: k, Segments: []geom.Cubic{{
			P0: k[0].Vec, C1: k[0].Lerp(k[1].Vec, 1.0/3), C2: k[0].Lerp(k[1].Vec, 2.0/3), P3: k[1].Vec,
		}}},
		Style: Style{Color: color.NRGBA{A: 255}, Width: width, Opacity: 1},
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#fff":      {255, 255, 255, 255},
		"#102030":   {0x10, 0x20, 0x30, 0xff},
		"#10203040": {0x10, 0x20, 0x30, 0x40},
		"Red":       {255, 0, 0, 255},
		" black ":   {0, 0, 0, 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "#12", "#zzzzzz", "blurple"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
	for _, c := range []color.NRGBA{{1, 2, 3, 255}, {200, 100, 0, 7}} {
		got, err := ParseColor(FormatColor(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestApplyCommands(t *testing.T) {
	d := NewDocument(DefaultSize, color.NRGBA{255, 255, 255, 255})
	a, b := line("a", 0, 0, 10, 0, 2), line("b", 0, 10, 10, 10, 2)
	d.Apply(NewAddStroke(d, a))
	d.Apply(NewAddStroke(d, b))
	d.Apply(AddStroke{Index: 0, Stroke: line("c", 5, 5, 6, 6, 1)})
	require.Equal(t, 3, d.Len())
	assert.Equal(t, "c", d.Stroke(0).ID)
	assert.Equal(t, uint64(3), d.Revision())

	rm := NewRemoveStroke(d, 0)
	d.Apply(rm)
	assert.Equal(t, "a", d.Stroke(0).ID)
	d.Apply(rm.Invert())
	assert.Equal(t, "c", d.Stroke(0).ID)

	snapshot := d.Clone()
	clr := NewClear(d)
	d.Apply(clr)
	assert.Zero(t, d.Len())
	d.Apply(clr.Invert())
	assert.True(t, snapshot.Equal(d))
	assert.Equal(t, clr, clr.Invert().Invert())
}

func TestPreconditions(t *testing.T) {
	d := NewDocument(DefaultSize, color.NRGBA{})
	assert.PanicsWithError(t, "precondition violated in Stroke: index 0 out of range [0,-1]", func() { NewRemoveStroke(d, 0) })
	assert.Panics(t, func() { d.Apply(RemoveStroke{Index: 3}) })
	assert.Panics(t, func() { d.Apply(AddStroke{Index: 2}) })
	assert.Panics(t, func() { d.Apply(Resize{New: geom.Size{}}) })
	assert.Panics(t, func() { NewDocument(geom.Size{W: -1, H: 5}, color.NRGBA{}) })

	d.Apply(NewAddStroke(d, line("a", 0, 0, 1, 1, 1)))
	assert.Panics(t, func() { d.Apply(RemoveStroke{Index: 0, Stroke: Stroke{ID: "other"}}) })

	defer func() {
		r := recover()
		var pe *PreconditionError
		require.ErrorAs(t, r.(error), &pe)
		assert.Equal(t, "RemoveStroke", pe.Op)
	}()
	d.Apply(RemoveStroke{Index: 5})
}

func TestStrokeAt(t *testing.T) {
	d := NewDocument(DefaultSize, color.NRGBA{})
	d.Apply(NewAddStroke(d, line("under", 0, 0, 100, 0, 4)))
	d.Apply(NewAddStroke(d, line("over", 50, -50, 50, 50, 4)))
	assert.Equal(t, 1, d.StrokeAt(geom.Vec{X: 50, Y: 1}, 0))
	assert.Equal(t, 0, d.StrokeAt(geom.Vec{X: 20, Y: 1.5}, 0))
	assert.Equal(t, -1, d.StrokeAt(geom.Vec{X: 20, Y: 5}, 1))
	assert.Equal(t, 0, d.StrokeAt(geom.Vec{X: 20, Y: 5}, 3.5))
}

func TestResizeKeepsStrokes(t *testing.T) {
	d := NewDocumentWith(DefaultSize, color.NRGBA{}, []Stroke{line("a", 0, 0, 1, 1, 1)})
	r := NewResize(d, geom.Size{W: 10, H: 10})
	d.Apply(r)
	assert.Equal(t, geom.Size{W: 10, H: 10}, d.Size())
	assert.Equal(t, 1, d.Len())
	assert.Equal(t, Resize{Old: geom.Size{W: 10, H: 10}, New: DefaultSize}, r.Invert())
}

func TestStrokeIDs(t *testing.T) {
	id := NewStrokeID()
	assert.True(t, ValidStrokeID(id))
	assert.NotEqual(t, id, NewStrokeID())
	assert.False(t, ValidStrokeID("path-1"))
}
