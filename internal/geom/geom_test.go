package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		surface Size
		ratio   float64
		logical Size
		mode    AspectMode
	}{
		{"letterbox wide", Size{1920, 1080}, 1, Size{800, 600}, Letterbox},
		{"letterbox tall", Size{300, 900}, 2, Size{800, 600}, Letterbox},
		{"stretch", Size{1024, 200}, 1.5, Size{800, 600}, Stretch},
		{"tiny", Size{3, 7}, 3, Size{10000, 10000}, Letterbox},
		{"degenerate surface", Size{0, 0}, 0, Size{800, 600}, Letterbox},
	}
	points := []Vec{{0, 0}, {800, 600}, {-120.5, 33.25}, {1e4, -1e4}, {0.1234567, 987.654321}}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTransform(c.surface, c.ratio, c.logical, c.mode)
			require.Greater(t, tr.ScaleX, 0.0)
			require.Greater(t, tr.ScaleY, 0.0)
			for _, p := range points {
				got := tr.ToLogical(tr.ToPixel(p))
				assert.InDelta(t, p.X, got.X, 1e-6)
				assert.InDelta(t, p.Y, got.Y, 1e-6)
			}
		})
	}
}

func TestLetterboxCentres(t *testing.T) {
	tr := NewTransform(Size{1000, 600}, 2, Size{800, 600}, Letterbox)
	assert.Equal(t, 1.0, tr.ScaleX)
	assert.Equal(t, tr.ScaleX, tr.ScaleY)
	assert.Equal(t, 100.0, tr.OffsetX)
	assert.Equal(t, 0.0, tr.OffsetY)
	assert.Equal(t, Vec{200, 0}, tr.ToDevice(Vec{}))
	assert.Equal(t, 2.0, tr.DeviceScale())

	// Out of surface points are valid and unclamped.
	assert.Equal(t, Vec{-100, -10}, tr.ToLogical(Pixel{0, -10}))
}

func TestStretchFillsSurface(t *testing.T) {
	tr := NewTransform(Size{400, 1200}, 1, Size{800, 600}, Stretch)
	assert.Equal(t, Pixel{400, 1200}, tr.ToPixel(Vec{800, 600}))
	assert.Equal(t, Pixel{0, 0}, tr.ToPixel(Vec{0, 0}))
}

func TestAspectModeText(t *testing.T) {
	var m AspectMode
	require.NoError(t, m.UnmarshalText([]byte("Stretch")))
	assert.Equal(t, Stretch, m)
	require.NoError(t, m.UnmarshalText([]byte("letterbox")))
	assert.Equal(t, Letterbox, m)
	assert.Error(t, m.UnmarshalText([]byte("zoom")))
	b, err := Stretch.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "stretch", string(b))
}

func TestRectOverlaps(t *testing.T) {
	a := BoundsOf(Vec{0, 0}, Vec{10, 10})
	assert.True(t, a.Overlaps(BoundsOf(Vec{10, 10}, Vec{20, 20})))
	assert.False(t, a.Overlaps(BoundsOf(Vec{11, 0}, Vec{20, 5})))
	assert.True(t, a.Inset(-2).Contains(Vec{-1, 11}))
	assert.Equal(t, BoundsOf(Vec{0, 0}, Vec{20, 10}), a.Union(BoundsOf(Vec{11, 0}, Vec{20, 5})))
}

func TestSegmentDist(t *testing.T) {
	assert.InDelta(t, 5.0, SegmentDist(Vec{5, 5}, Vec{0, 0}, Vec{10, 0}), 1e-12)
	assert.InDelta(t, math.Sqrt2, SegmentDist(Vec{11, 1}, Vec{0, 0}, Vec{10, 0}), 1e-12)
	assert.InDelta(t, 5.0, SegmentDist(Vec{3, 4}, Vec{0, 0}, Vec{0, 0}), 1e-12)
}

func TestCubicEndpoints(t *testing.T) {
	c := Cubic{Vec{0, 0}, Vec{1, 2}, Vec{3, 2}, Vec{4, 0}}
	assert.Equal(t, c.P0, c.At(0))
	assert.Equal(t, c.P3, c.At(1))
	pts := c.Flatten(nil, 4)
	require.Len(t, pts, 5)
	assert.Equal(t, c.P3, pts[4])
	assert.True(t, c.Bounds().Contains(c.At(0.37)))
}

func TestPathDot(t *testing.T) {
	p := Path{Knots: []Point{NewPoint(3, 4, 0)}}
	assert.True(t, p.IsDot())
	assert.InDelta(t, 5.0, p.Dist(Vec{}, 8), 1e-12)
	assert.True(t, Path{}.Empty())
	assert.True(t, math.IsInf(Path{}.Dist(Vec{}, 8), 1))
}
