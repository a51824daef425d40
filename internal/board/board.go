// Package board is the sketching engine a host widget drives. The host feeds
// pointer events and surface changes in, and is told through OnRender when
// the picture needs to be painted again. Everything runs on the caller's
// goroutine; a Board must not be used concurrently.
package board

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"golang.org/x/image/draw"

	"SketchBoard/internal/codec"
	"SketchBoard/internal/config"
	"SketchBoard/internal/geom"
	"SketchBoard/internal/history"
	"SketchBoard/internal/render"
	"SketchBoard/internal/smooth"
	"SketchBoard/internal/state"
)

// Board ties capture, history, rendering and persistence to one document.
type Board struct {
	cfg      config.Config
	smoother *smooth.Smoother
	history  *history.History
	renderer *render.Renderer
	codec    codec.Codec
	tr       geom.Transform
	style    state.Style
	dirty    bool

	// OnRender is called whenever the picture changed and should be painted.
	OnRender func()
	// OnChange is called after every change to the document.
	OnChange func(doc *state.Document)
}

// New returns a board with an empty document built from cfg, which must be valid.
func New(cfg config.Config) *Board {
	b := &Board{
		cfg: cfg,
		smoother: smooth.New(smooth.Options{
			Tolerance:   cfg.SimplifyTolerance,
			MinMovement: cfg.MinMovementThreshold,
		}),
		renderer: render.New(render.Options{PressureWidth: cfg.PressureWidth}),
		codec:    codec.Codec{Tolerance: cfg.SimplifyTolerance, Indent: true},
		style:    cfg.Style(),
		dirty:    true,
	}
	doc := state.NewDocument(cfg.Size(), cfg.BackgroundColor())
	b.history = history.New(doc, cfg.MaxHistoryDepth)
	b.history.OnChange = b.documentChanged
	b.tr = geom.NewTransform(geom.Size{}, 1, doc.Size(), cfg.AspectMode)
	return b
}

func (b *Board) Config() config.Config     { return b.cfg }
func (b *Board) Document() *state.Document { return b.history.Document() }
func (b *Board) History() *history.History { return b.history }
func (b *Board) Transform() geom.Transform { return b.tr }
func (b *Board) Style() state.Style        { return b.style }
func (b *Board) Capturing() bool           { return b.smoother.Capturing() }
func (b *Board) CanUndo() bool             { return b.history.CanUndo() }
func (b *Board) CanRedo() bool             { return b.history.CanRedo() }

// SetConfig applies the smoothing, rendering and fitting options of cfg.
// The document, the pen and the history depth are kept; a later Reset uses
// the new canvas size and background.
func (b *Board) SetConfig(cfg config.Config) {
	b.cfg = cfg
	b.smoother.SetOptions(smooth.Options{
		Tolerance:   cfg.SimplifyTolerance,
		MinMovement: cfg.MinMovementThreshold,
	})
	b.renderer = render.New(render.Options{PressureWidth: cfg.PressureWidth})
	b.codec.Tolerance = cfg.SimplifyTolerance
	b.tr.Mode = cfg.AspectMode
	b.tr.Update(b.tr.Surface, b.tr.PixelRatio, b.Document().Size())
	b.requestRender()
}

// SetStyle sets the pen for strokes begun from now on.
func (b *Board) SetStyle(s state.Style) { b.style = s }

// SetSurface records a new surface size, in surface pixels, and device
// pixel ratio. Strokes in progress are unaffected since their samples are
// kept in logical units.
func (b *Board) SetSurface(width, height, pixelRatio float64) {
	b.tr.Update(geom.Size{W: width, H: height}, pixelRatio, b.Document().Size())
	b.requestRender()
}

// HandlePointer feeds one pointer event to the engine.
func (b *Board) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerDown:
		if b.smoother.Capturing() {
			Logger().Warn("pointer down while capturing, committing pending stroke")
			b.commit()
		}
		b.smoother.Begin(ev.point(b.tr), b.style)
		b.requestRender()
	case PointerMove:
		if b.smoother.Capturing() && b.smoother.Add(ev.point(b.tr)) {
			b.requestRender()
		}
	case PointerUp:
		if !b.smoother.Capturing() {
			return
		}
		b.smoother.Add(ev.point(b.tr))
		b.commit()
	case PointerCancel:
		b.Cancel()
	default:
		state.Violate("HandlePointer", "unknown pointer kind %v", ev.Kind)
	}
}

// Cancel drops the stroke in progress without recording anything.
func (b *Board) Cancel() {
	if !b.smoother.Capturing() {
		return
	}
	b.smoother.Cancel()
	b.requestRender()
}

func (b *Board) commit() {
	s := b.smoother.End()
	Logger().Debug("stroke committed", slog.String("id", s.ID),
		slog.Int("points", len(s.Points)), slog.Int("segments", len(s.Path.Segments)))
	b.history.Push(state.NewAddStroke(b.Document(), s))
}

// Undo reverts the last change. It reports false if there was none.
func (b *Board) Undo() bool {
	b.Cancel()
	if !b.history.Undo() {
		return false
	}
	Logger().Debug("undo", slog.Int("undo", b.history.UndoLen()), slog.Int("redo", b.history.RedoLen()))
	return true
}

// Redo re-applies the last undone change. It reports false if there was none.
func (b *Board) Redo() bool {
	b.Cancel()
	if !b.history.Redo() {
		return false
	}
	Logger().Debug("redo", slog.Int("undo", b.history.UndoLen()), slog.Int("redo", b.history.RedoLen()))
	return true
}

// Clear removes every stroke as one undoable step. Clearing an empty
// document records nothing and reports false.
func (b *Board) Clear() bool {
	b.Cancel()
	if b.Document().Len() == 0 {
		return false
	}
	b.history.Push(state.NewClear(b.Document()))
	return true
}

// RemoveStroke removes the stroke at index i. An index out of range is a
// precondition violation.
func (b *Board) RemoveStroke(i int) {
	b.history.Push(state.NewRemoveStroke(b.Document(), i))
}

// EraseAt removes the topmost stroke under the surface pixel p. It reports
// whether a stroke was removed.
func (b *Board) EraseAt(p geom.Pixel) bool {
	v := b.tr.ToLogical(p)
	slop := 2 * b.tr.PixelRatio / b.tr.DeviceScale()
	i := b.Document().StrokeAt(v, slop)
	if i < 0 {
		return false
	}
	b.RemoveStroke(i)
	return true
}

// Resize changes the logical canvas size as an undoable step.
func (b *Board) Resize(size geom.Size) {
	if size.Empty() {
		state.Violate("Resize", "invalid size %gx%g", size.W, size.H)
	}
	if size == b.Document().Size() {
		return
	}
	b.history.Push(state.NewResize(b.Document(), size))
	Logger().Info("canvas resized", slog.Float64("width", size.W), slog.Float64("height", size.H))
}

// Render paints the document and the stroke in progress onto dst, which is
// addressed in device pixels.
func (b *Board) Render(dst draw.Image) {
	var live *state.Stroke
	if s, ok := b.smoother.Preview(); ok {
		live = &s
	}
	b.renderer.Render(dst, b.Document(), b.tr, live)
}

// Image renders into a new image sized for the current surface.
func (b *Board) Image() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: render.DeviceSize(b.tr, b.Document().Size())})
	b.Render(img)
	return img
}

// Dirty reports whether anything changed since the last ClearDirty.
func (b *Board) Dirty() bool { return b.dirty }

// ClearDirty marks the current picture as painted.
func (b *Board) ClearDirty() { b.dirty = false }

// Save writes the document in the portable format. History is not saved.
func (b *Board) Save(w io.Writer) error {
	if err := b.codec.Encode(w, b.Document()); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	Logger().Info("board saved", slog.Int("strokes", b.Document().Len()))
	return nil
}

// Snapshot returns the document in the portable format.
func (b *Board) Snapshot() ([]byte, error) {
	return b.codec.Marshal(b.Document())
}

// Load replaces the document with the one read from r and starts a new
// history. On error, which wraps a *codec.FormatError for bad input, the
// board is left unchanged.
func (b *Board) Load(r io.Reader) error {
	doc, err := b.codec.Decode(r)
	if err != nil {
		return fmt.Errorf("loading board: %w", err)
	}
	b.Replace(doc)
	Logger().Info("board loaded", slog.Int("strokes", doc.Len()))
	return nil
}

// Reset replaces the document with an empty one built from the configuration.
func (b *Board) Reset() {
	b.Replace(state.NewDocument(b.cfg.Size(), b.cfg.BackgroundColor()))
}

// Replace installs doc and forgets the history.
func (b *Board) Replace(doc *state.Document) {
	b.smoother.Cancel()
	b.history.Reset(doc)
	b.documentChanged(nil)
}

func (b *Board) documentChanged(state.Command) {
	doc := b.Document()
	if doc.Size() != b.tr.Logical {
		b.tr.Update(b.tr.Surface, b.tr.PixelRatio, doc.Size())
	}
	if b.OnChange != nil {
		b.OnChange(doc)
	}
	b.requestRender()
}

func (b *Board) requestRender() {
	b.dirty = true
	if b.OnRender != nil {
		b.OnRender()
	}
}
