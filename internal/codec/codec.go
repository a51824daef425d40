// Package codec reads and writes sketch documents in the portable JSON format:
//
//	{"version": 1, "width": 800, "height": 600, "backgroundColor": "#ffffff",
//	 "strokes": [{"points": [{"x": 0, "y": 0, "t": 0, "pressure": 0.5}],
//	              "color": "#000000", "width": 2, "opacity": 1}]}
//
// Unknown fields are ignored. Bare JSON arrays are read as version 0 files of
// the earlier whiteboard format and migrated.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"time"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/smooth"
	"SketchBoard/internal/state"
)

// Codec converts documents to and from bytes.
type Codec struct {
	// Tolerance rebuilds paths of strokes that do not record their own
	// simplification tolerance.
	Tolerance float64
	// Indent pretty-prints the output.
	Indent bool
}

// Default uses the default smoothing tolerance and compact output.
var Default = Codec{Tolerance: smooth.DefaultOptions().Tolerance}

func Marshal(d *state.Document) ([]byte, error)      { return Default.Marshal(d) }
func Unmarshal(data []byte) (*state.Document, error) { return Default.Unmarshal(data) }

// Marshal serializes d.
func (c Codec) Marshal(d *state.Document) ([]byte, error) {
	w := encodeDocument(d)
	var (
		b   []byte
		err error
	)
	if c.Indent {
		b, err = json.MarshalIndent(w, "", "  ")
	} else {
		b, err = json.Marshal(w)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding sketch: %w", err)
	}
	return b, nil
}

// Encode writes d to w.
func (c Codec) Encode(w io.Writer, d *state.Document) error {
	b, err := c.Marshal(d)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing sketch: %w", err)
	}
	return nil
}

// Decode reads a whole document from r.
func (c Codec) Decode(r io.Reader) (*state.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading sketch: %w", err)
	}
	return c.Unmarshal(b)
}

// Unmarshal parses data. Malformed or incomplete input yields a *FormatError.
func (c Codec) Unmarshal(data []byte) (*state.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &FormatError{Reason: "empty input"}
	}
	if trimmed[0] == '[' {
		var paths []legacyPath
		if err := json.Unmarshal(trimmed, &paths); err != nil {
			return nil, &FormatError{Reason: "malformed legacy board file", Err: err}
		}
		return c.migrateLegacy(paths), nil
	}

	var w wireDocument
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, &FormatError{Reason: "malformed JSON", Err: err}
	}
	if w.Version != nil && *w.Version > Version {
		return nil, &FormatError{Field: "version", Reason: fmt.Sprintf("version %d", *w.Version), Err: ErrUnsupportedVersion}
	}
	return c.decodeDocument(&w)
}

func encodeDocument(d *state.Document) *wireDocument {
	v := Version
	size := d.Size()
	w := &wireDocument{
		Version:    &v,
		Width:      &size.W,
		Height:     &size.H,
		Background: state.FormatColor(d.Background()),
		Strokes:    make([]*wireStroke, 0, d.Len()),
	}
	for _, s := range d.Strokes() {
		pts := make([]wirePoint, len(s.Points))
		for i, p := range s.Points {
			pts[i] = wirePoint{X: ptr(p.X), Y: ptr(p.Y), T: millis(p.T)}
			if p.HasPressure {
				pts[i].Pressure = ptr(p.Pressure)
			}
		}
		w.Strokes = append(w.Strokes, &wireStroke{
			ID:       ptr(s.ID),
			Points:   &pts,
			Color:    state.FormatColor(s.Style.Color),
			Width:    ptr(s.Style.Width),
			Opacity:  ptr(s.Style.Opacity),
			Simplify: ptr(s.Tolerance),
		})
	}
	return w
}

func (c Codec) decodeDocument(w *wireDocument) (*state.Document, error) {
	if w.Width == nil {
		return nil, missing("width")
	}
	if w.Height == nil {
		return nil, missing("height")
	}
	size := geom.Size{W: *w.Width, H: *w.Height}
	if !positive(size.W) {
		return nil, invalid("width", "must be positive, got %g", size.W)
	}
	if !positive(size.H) {
		return nil, invalid("height", "must be positive, got %g", size.H)
	}
	bg := white
	if w.Background != "" {
		var err error
		if bg, err = state.ParseColor(w.Background); err != nil {
			return nil, &FormatError{Field: "backgroundColor", Reason: "bad color", Err: err}
		}
	}

	strokes := make([]state.Stroke, 0, len(w.Strokes))
	for i, ws := range w.Strokes {
		s, err := c.decodeStroke(fmt.Sprintf("strokes[%d]", i), ws)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, s)
	}
	return state.NewDocumentWith(size, bg, strokes), nil
}

func (c Codec) decodeStroke(field string, ws *wireStroke) (state.Stroke, error) {
	if ws == nil {
		return state.Stroke{}, invalid(field, "null stroke")
	}
	if ws.Points == nil {
		return state.Stroke{}, missing(field + ".points")
	}
	if len(*ws.Points) == 0 {
		return state.Stroke{}, invalid(field+".points", "no points")
	}

	style := state.DefaultStyle()
	if ws.Color != "" {
		col, err := state.ParseColor(ws.Color)
		if err != nil {
			return state.Stroke{}, &FormatError{Field: field + ".color", Reason: "bad color", Err: err}
		}
		style.Color = col
	}
	if ws.Width != nil {
		if !positive(*ws.Width) {
			return state.Stroke{}, invalid(field+".width", "must be positive, got %g", *ws.Width)
		}
		style.Width = *ws.Width
	}
	if ws.Opacity != nil {
		if !unit(*ws.Opacity) {
			return state.Stroke{}, invalid(field+".opacity", "must be within [0,1], got %g", *ws.Opacity)
		}
		style.Opacity = *ws.Opacity
	}
	tol := c.Tolerance
	if ws.Simplify != nil {
		if *ws.Simplify < 0 || math.IsNaN(*ws.Simplify) {
			return state.Stroke{}, invalid(field+".simplify", "must not be negative, got %g", *ws.Simplify)
		}
		tol = *ws.Simplify
	}

	pts := make([]geom.Point, len(*ws.Points))
	for i, wp := range *ws.Points {
		pf := fmt.Sprintf("%s.points[%d]", field, i)
		if wp.X == nil {
			return state.Stroke{}, missing(pf + ".x")
		}
		if wp.Y == nil {
			return state.Stroke{}, missing(pf + ".y")
		}
		p := geom.NewPoint(*wp.X, *wp.Y, duration(wp.T))
		if wp.Pressure != nil {
			if !unit(*wp.Pressure) {
				return state.Stroke{}, invalid(pf+".pressure", "must be within [0,1], got %g", *wp.Pressure)
			}
			p = p.WithPressure(*wp.Pressure)
		}
		pts[i] = p
	}

	// A missing id is named afresh; an explicit one, even "", is kept.
	id := state.NewStrokeID()
	if ws.ID != nil {
		id = *ws.ID
	}
	return state.Stroke{
		ID:        id,
		Points:    pts,
		Path:      smooth.Build(pts, tol),
		Style:     style,
		Tolerance: tol,
	}, nil
}

// legacyColors are the pen colors of version 0 boards, which painted any
// other name black.
var legacyColors = map[string]color.NRGBA{
	"red":   {R: 255, A: 255},
	"green": {G: 255, A: 255},
	"blue":  {B: 255, A: 255},
	"black": {A: 255},
}

// migrateLegacy converts a version 0 board file. Those files carry no size
// and their points may sit left of or above the origin after panning, so
// the strokes are shifted into the first quadrant and the canvas grows from
// the default size to fit every path.
func (c Codec) migrateLegacy(paths []legacyPath) *state.Document {
	var shift geom.Vec
	for _, lp := range paths {
		for _, p := range lp.Points {
			shift.X = math.Max(shift.X, -float64(p.X))
			shift.Y = math.Max(shift.Y, -float64(p.Y))
		}
	}

	size := state.DefaultSize
	strokes := make([]state.Stroke, 0, len(paths))
	for _, lp := range paths {
		if len(lp.Points) == 0 {
			continue
		}
		style := state.DefaultStyle()
		style.Color = legacyColor(lp.Color)
		if lp.Stroke > 0 {
			style.Width = float64(lp.Stroke)
		}
		pts := make([]geom.Point, len(lp.Points))
		for i, p := range lp.Points {
			x, y := float64(p.X)+shift.X, float64(p.Y)+shift.Y
			pts[i] = geom.NewPoint(x, y, time.Duration(i)*time.Millisecond)
			size.W = math.Max(size.W, x)
			size.H = math.Max(size.H, y)
		}
		id := lp.ID
		if !state.ValidStrokeID(id) {
			id = state.NewStrokeID()
		}
		strokes = append(strokes, state.Stroke{
			ID:        id,
			Points:    pts,
			Path:      smooth.Build(pts, c.Tolerance),
			Style:     style,
			Tolerance: c.Tolerance,
		})
	}
	return state.NewDocumentWith(size, white, strokes)
}

func legacyColor(name string) color.NRGBA {
	if c, ok := legacyColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	if c, err := state.ParseColor(name); err == nil {
		return c
	}
	return legacyColors["black"]
}
