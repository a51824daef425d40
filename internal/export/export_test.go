package export

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/render"
	"SketchBoard/internal/smooth"
	"SketchBoard/internal/state"
)

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func sample() *state.Document {
	red := state.Style{Color: color.NRGBA{R: 0xff, A: 0xff}, Width: 8, Opacity: 1}
	line := []geom.Point{geom.NewPoint(10, 50, 0), geom.NewPoint(90, 50, time.Millisecond)}
	dot := []geom.Point{geom.NewPoint(50, 20, 0)}
	return state.NewDocumentWith(geom.Size{W: 100, H: 80}, white, []state.Stroke{
		{ID: state.NewStrokeID(), Points: line, Path: smooth.Build(line, 1), Style: red, Tolerance: 1},
		{ID: state.NewStrokeID(), Points: dot, Path: smooth.Build(dot, 1), Style: red, Tolerance: 1},
	})
}

func TestPDF(t *testing.T) {
	var empty, full bytes.Buffer
	require.NoError(t, PDF(&empty, state.NewDocument(geom.Size{W: 100, H: 80}, white)))
	require.NoError(t, PDF(&full, sample()))
	assert.True(t, bytes.HasPrefix(full.Bytes(), []byte("%PDF-")))
	assert.Greater(t, full.Len(), empty.Len())
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, sample(), 2, render.Options{}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 160, img.Bounds().Dy())

	r, g, b, _ := img.At(100, 100).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(100, 150).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
}

func TestThumbnail(t *testing.T) {
	img := Thumbnail(sample(), 50, render.Options{})
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 40, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(2, 38))

	tiny := Thumbnail(sample(), 0, render.Options{})
	assert.Equal(t, 1, tiny.Bounds().Dx())
}
