package geom

import (
	"fmt"
	"strings"
)

// AspectMode selects how the logical drawing area is fitted to the surface.
type AspectMode int

const (
	// Letterbox keeps the aspect ratio and centres the drawing on the surface.
	Letterbox AspectMode = iota
	// Stretch scales each axis independently to fill the surface.
	Stretch
)

func (m AspectMode) String() string {
	switch m {
	case Letterbox:
		return "letterbox"
	case Stretch:
		return "stretch"
	}
	return fmt.Sprintf("AspectMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m AspectMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AspectMode) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "letterbox", "":
		*m = Letterbox
	case "stretch":
		*m = Stretch
	default:
		return fmt.Errorf("unknown aspect mode %q", string(b))
	}
	return nil
}

// Transform maps logical drawing coordinates to surface pixels:
//
//	px = x*ScaleX + OffsetX
//	py = y*ScaleY + OffsetY
//
// The scales are always positive, so the mapping is always invertible.
// PixelRatio is the device pixel ratio of the surface; the renderer
// multiplies by it to obtain device pixels.
type Transform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
	PixelRatio       float64

	Mode    AspectMode
	Surface Size
	Logical Size
}

// Identity returns a transform with unit scale and no offset.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, PixelRatio: 1}
}

// NewTransform builds the transform fitting logical into surface.
func NewTransform(surface Size, pixelRatio float64, logical Size, mode AspectMode) Transform {
	t := Transform{Mode: mode}
	t.Update(surface, pixelRatio, logical)
	return t
}

// Update recomputes the mapping for a new surface size, device pixel ratio or
// logical size. Degenerate sizes fall back to unit scale so the transform
// stays invertible.
func (t *Transform) Update(surface Size, pixelRatio float64, logical Size) {
	if !(pixelRatio > 0) {
		pixelRatio = 1
	}
	t.Surface, t.Logical, t.PixelRatio = surface, logical, pixelRatio
	t.ScaleX, t.ScaleY, t.OffsetX, t.OffsetY = 1, 1, 0, 0
	if surface.Empty() || logical.Empty() {
		return
	}
	sx := surface.W / logical.W
	sy := surface.H / logical.H
	if t.Mode == Stretch {
		t.ScaleX, t.ScaleY = sx, sy
		return
	}
	s := sx
	if sy < s {
		s = sy
	}
	t.ScaleX, t.ScaleY = s, s
	t.OffsetX = (surface.W - logical.W*s) / 2
	t.OffsetY = (surface.H - logical.H*s) / 2
}

// ToLogical maps a surface pixel to logical coordinates. Points outside the
// surface map outside the logical area; nothing is clamped.
func (t Transform) ToLogical(p Pixel) Vec {
	return Vec{(p.X - t.OffsetX) / t.ScaleX, (p.Y - t.OffsetY) / t.ScaleY}
}

// ToPixel maps a logical position to surface pixels.
func (t Transform) ToPixel(v Vec) Pixel {
	return Pixel{v.X*t.ScaleX + t.OffsetX, v.Y*t.ScaleY + t.OffsetY}
}

// ToDevice maps a logical position to device pixels.
func (t Transform) ToDevice(v Vec) Vec {
	p := t.ToPixel(v)
	return Vec{p.X * t.PixelRatio, p.Y * t.PixelRatio}
}

// DeviceScale is the average number of device pixels per logical unit,
// used to scale stroke widths.
func (t Transform) DeviceScale() float64 {
	return (t.ScaleX + t.ScaleY) / 2 * t.PixelRatio
}

// Viewport returns the logical rectangle covered by the drawing area.
func (t Transform) Viewport() Rect {
	return Rect{Max: Vec{t.Logical.W, t.Logical.H}}
}
