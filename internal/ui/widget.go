package ui

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// BoardWidget shows a board and feeds it mouse input. All methods must run
// on the fyne main goroutine; use fyne.Do from elsewhere.
type BoardWidget struct {
	widget.BaseWidget
	board    *board.Board
	readOnly bool
	tool     Tool
	start    time.Time
	ratio    float64
	pressed  bool
	last     fyne.Position
	status   *widget.Label
	raster   *canvas.Raster

	listeners []func()
	// OnDocumentChange is called after every change to the document.
	OnDocumentChange func(doc *state.Document)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget wraps b. The widget takes over b's OnRender and OnChange.
func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{
		board:  b,
		tool:   ToolPen,
		start:  time.Now(),
		ratio:  1,
		status: widget.NewLabel("Ready"),
	}
	w.raster = canvas.NewRaster(w.draw)
	b.OnRender = w.Refresh
	b.OnChange = func(doc *state.Document) {
		if w.OnDocumentChange != nil {
			w.OnDocumentChange(doc)
		}
		w.notify()
	}
	w.ExtendBaseWidget(w)
	return w
}

// NewViewerWidget shows b without accepting input.
func NewViewerWidget(b *board.Board) *BoardWidget {
	w := NewBoardWidget(b)
	w.readOnly = true
	return w
}

func (w *BoardWidget) Board() *board.Board        { return w.board }
func (w *BoardWidget) Tool() Tool                 { return w.tool }
func (w *BoardWidget) StatusLabel() *widget.Label { return w.status }

// SetTool switches between drawing and erasing.
func (w *BoardWidget) SetTool(t Tool) {
	w.board.Cancel()
	w.tool = t
}

// SetStatus shows text in the status bar.
func (w *BoardWidget) SetStatus(text string) {
	w.status.SetText(text)
}

// ShowSnapshot replaces the document with a received snapshot.
func (w *BoardWidget) ShowSnapshot(data []byte) {
	if err := w.board.Load(bytes.NewReader(data)); err != nil {
		log.Printf("[VIEWER] dropping snapshot: %v", err)
		w.SetStatus("Received a bad update")
		return
	}
	w.SetStatus(fmt.Sprintf("Showing %d strokes", w.board.Document().Len()))
}

func (w *BoardWidget) onChange(f func()) {
	w.listeners = append(w.listeners, f)
}

func (w *BoardWidget) notify() {
	for _, f := range w.listeners {
		f()
	}
}

func (w *BoardWidget) event(kind board.PointerKind, pos fyne.Position) board.PointerEvent {
	return board.PointerEvent{
		Kind: kind,
		X:    float64(pos.X),
		Y:    float64(pos.Y),
		Time: time.Since(w.start),
	}
}

func (w *BoardWidget) erase(pos fyne.Position) {
	w.board.EraseAt(geom.Pixel{X: float64(pos.X), Y: float64(pos.Y)})
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if w.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.pressed = true
	if w.tool == ToolEraser {
		w.erase(e.Position)
		return
	}
	w.last = e.Position
	w.board.HandlePointer(w.event(board.PointerDown, e.Position))
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if w.readOnly || e.Button != desktop.MouseButtonPrimary || !w.pressed {
		return
	}
	w.pressed = false
	if w.tool == ToolPen {
		w.board.HandlePointer(w.event(board.PointerUp, e.Position))
	}
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	if w.readOnly || !w.pressed {
		return
	}
	if w.tool == ToolEraser {
		w.erase(e.Position)
		return
	}
	w.last = e.Position
	w.board.HandlePointer(w.event(board.PointerMove, e.Position))
}

// DragEnd can arrive before MouseUp; the stroke ends at the last drag position.
func (w *BoardWidget) DragEnd() {
	if !w.pressed {
		return
	}
	w.pressed = false
	if w.tool == ToolPen {
		w.board.HandlePointer(w.event(board.PointerUp, w.last))
	}
}

func (w *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
func (w *BoardWidget) MouseOut()                      {}

// draw is the raster generator. It learns the device pixel ratio from the
// pixel size fyne asks for.
func (w *BoardWidget) draw(pw, ph int) image.Image {
	size := w.Size()
	if size.Width > 0 {
		if ratio := float64(pw) / float64(size.Width); ratio != w.ratio {
			w.ratio = ratio
			w.board.SetSurface(float64(size.Width), float64(size.Height), ratio)
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, pw, ph))
	w.board.Render(img)
	w.board.ClearDirty()
	return img
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	frame := canvas.NewRectangle(color.Transparent)
	frame.StrokeColor = color.Gray{Y: 200}
	frame.StrokeWidth = 1
	return &boardRenderer{w: w, frame: frame}
}

type boardRenderer struct {
	w     *BoardWidget
	frame *canvas.Rectangle
}

func (r *boardRenderer) Layout(size fyne.Size) {
	r.w.raster.Resize(size)
	r.frame.Resize(size)
	r.w.board.SetSurface(float64(size.Width), float64(size.Height), r.w.ratio)
}

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }
func (r *boardRenderer) Refresh()           { canvas.Refresh(r.w.raster) }
func (r *boardRenderer) Destroy()           {}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.w.raster, r.frame}
}
