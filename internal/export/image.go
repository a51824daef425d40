package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Raster renders doc with scale device pixels per logical unit. A scale
// that is not positive renders at one pixel per unit.
func Raster(doc *state.Document, scale float64, opts render.Options) *image.RGBA {
	if !(scale > 0) {
		scale = 1
	}
	size := doc.Size()
	tr := geom.NewTransform(size, scale, size, geom.Letterbox)
	return render.New(opts).RenderImage(doc, tr, nil)
}

// PNG renders doc at the given scale and encodes it to w.
func PNG(w io.Writer, doc *state.Document, scale float64, opts render.Options) error {
	if err := png.Encode(w, Raster(doc, scale, opts)); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}

// Thumbnail renders doc so that its longer side is maxSide pixels.
func Thumbnail(doc *state.Document, maxSide int, opts render.Options) *image.RGBA {
	size := doc.Size()
	long := math.Max(size.W, size.H)
	if maxSide < 1 {
		maxSide = 1
	}
	scale := float64(maxSide) / long

	// Render at twice the target size and filter down.
	full := Raster(doc, 2*scale, opts)
	w := max(1, int(math.Round(size.W*scale)))
	h := max(1, int(math.Round(size.H*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), full, full.Bounds(), draw.Src, nil)
	return dst
}
