package ui

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/board"
	"SketchBoard/internal/config"
	"SketchBoard/internal/state"
)

func newWidget(t *testing.T) *BoardWidget {
	t.Helper()
	test.NewTempApp(t)
	bw := NewBoardWidget(board.New(config.Default()))
	bw.Resize(fyne.NewSize(800, 600))
	return bw
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestDrawAndErase(t *testing.T) {
	bw := newWidget(t)
	var changes int
	bw.OnDocumentChange = func(*state.Document) { changes++ }

	bw.MouseDown(mouse(100, 100))
	bw.Dragged(drag(200, 100))
	bw.Dragged(drag(300, 120))
	bw.MouseUp(mouse(300, 120))
	bw.DragEnd()

	doc := bw.Board().Document()
	require.Equal(t, 1, doc.Len())
	assert.Len(t, doc.Stroke(0).Points, 3)
	assert.Equal(t, 1, changes)

	bw.SetTool(ToolEraser)
	bw.MouseDown(mouse(150, 100))
	bw.MouseUp(mouse(150, 100))
	assert.Zero(t, bw.Board().Document().Len())
	assert.Equal(t, 2, changes)
}

func TestSecondaryButtonIgnored(t *testing.T) {
	bw := newWidget(t)
	e := mouse(10, 10)
	e.Button = desktop.MouseButtonSecondary
	bw.MouseDown(e)
	assert.False(t, bw.Board().Capturing())
}

func TestDragEndCommits(t *testing.T) {
	bw := newWidget(t)
	bw.MouseDown(mouse(10, 10))
	bw.Dragged(drag(60, 10))
	bw.DragEnd()
	bw.MouseUp(mouse(80, 10))
	assert.False(t, bw.Board().Capturing())
	require.Equal(t, 1, bw.Board().Document().Len())
	assert.Len(t, bw.Board().Document().Stroke(0).Points, 2)
}

func TestViewerIgnoresInput(t *testing.T) {
	test.NewTempApp(t)
	bw := NewViewerWidget(board.New(config.Default()))
	bw.Resize(fyne.NewSize(800, 600))
	bw.MouseDown(mouse(10, 10))
	assert.False(t, bw.Board().Capturing())

	src := board.New(config.Default())
	src.HandlePointer(board.PointerEvent{Kind: board.PointerDown, X: 1, Y: 1})
	src.HandlePointer(board.PointerEvent{Kind: board.PointerUp, X: 40, Y: 40})
	data, err := src.Snapshot()
	require.NoError(t, err)

	bw.ShowSnapshot(data)
	assert.True(t, src.Document().Equal(bw.Board().Document()))
	assert.Equal(t, "Showing 1 strokes", bw.StatusLabel().Text)

	bw.ShowSnapshot([]byte("{"))
	assert.Equal(t, 1, bw.Board().Document().Len())
	assert.Equal(t, "Received a bad update", bw.StatusLabel().Text)
}

func TestRasterFollowsPixelSize(t *testing.T) {
	bw := newWidget(t)
	img := bw.draw(1600, 1200)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 2.0, bw.Board().Transform().PixelRatio)
	assert.False(t, bw.Board().Dirty())
}

type memWriter struct {
	bytes.Buffer
	uri fyne.URI
}

func (m *memWriter) Close() error  { return nil }
func (m *memWriter) URI() fyne.URI { return m.uri }

func TestExportByExtension(t *testing.T) {
	bw := newWidget(t)
	bw.MouseDown(mouse(10, 10))
	bw.MouseUp(mouse(60, 60))
	doc := bw.Board().Document()

	png := &memWriter{uri: storage.NewFileURI("/tmp/sketch.png")}
	require.NoError(t, exportTo(png, doc, false))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	pdf := &memWriter{uri: storage.NewFileURI("/tmp/sketch.pdf")}
	require.NoError(t, exportTo(pdf, doc, false))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))
}
