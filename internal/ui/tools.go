package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/export"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// Tool is what a primary button drag does.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

var palette = []color.NRGBA{
	{A: 0xff},
	{R: 0xff, A: 0xff},
	{G: 0xa0, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xff, G: 0xd0, A: 0xff},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// NewToolbar builds the controls for an editable board.
func NewToolbar(bw *BoardWidget, win fyne.Window) fyne.CanvasObject {
	b := bw.Board()

	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			bw.SetTool(ToolPen)
			bw.SetStatus("Pen")
		}),
		widget.NewToolbarAction(theme.ContentRemoveIcon(), func() {
			bw.SetTool(ToolEraser)
			bw.SetStatus("Eraser")
		}),
	)

	onColorTapped := func(c color.NRGBA) {
		s := b.Style()
		s.Color = c
		b.SetStyle(s)
		bw.SetTool(ToolPen)
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	widthSlider := widget.NewSlider(1, 50)
	widthSlider.SetValue(b.Style().Width)
	widthSlider.OnChanged = func(v float64) {
		s := b.Style()
		s.Width = v
		b.SetStyle(s)
	}
	opacitySlider := widget.NewSlider(0.05, 1)
	opacitySlider.Step = 0.05
	opacitySlider.SetValue(b.Style().Opacity)
	opacitySlider.OnChanged = func(v float64) {
		s := b.Style()
		s.Opacity = v
		b.SetStyle(s)
	}
	sliders := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), widthSlider, opacitySlider)

	undo := widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { b.Undo() })
	redo := widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { b.Redo() })
	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if !b.Clear() {
			bw.SetStatus("Nothing to clear")
		}
	})
	refresh := func() {
		setEnabled(undo, b.CanUndo())
		setEnabled(redo, b.CanRedo())
	}
	bw.onChange(refresh)
	refresh()

	fileMenu := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { openSketch(bw, win) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { saveSketch(bw, win) }),
		widget.NewToolbarAction(theme.DownloadIcon(), func() { exportSketch(bw, win) }),
	)

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size / Opacity:"),
		sliders,
		widget.NewSeparator(),
		undo, redo, clearBtn,
		layout.NewSpacer(),
		fileMenu,
	)
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func saveSketch(bw *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if err := bw.Board().Save(w); err != nil {
			log.Printf("[UI] %v", err)
			dialog.ShowError(err, win)
			return
		}
		bw.SetStatus(fmt.Sprintf("Saved %d strokes", bw.Board().Document().Len()))
	}, win)
	d.SetFileName("sketch.json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func openSketch(bw *BoardWidget, win fyne.Window) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		defer r.Close()
		if err := bw.Board().Load(r); err != nil {
			log.Printf("[UI] %v", err)
			dialog.ShowError(err, win)
			return
		}
		bw.SetStatus(fmt.Sprintf("Loaded %d strokes", bw.Board().Document().Len()))
	}, win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// exportSketch writes a PDF or, for a .png name, a PNG at twice the
// logical resolution.
func exportSketch(bw *BoardWidget, win fyne.Window) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		if err := exportTo(w, bw.Board().Document(), bw.Board().Config().PressureWidth); err != nil {
			log.Printf("[UI] export failed: %v", err)
			dialog.ShowError(err, win)
			return
		}
		bw.SetStatus("Exported " + w.URI().Name())
	}, win)
	d.SetFileName("sketch.pdf")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf", ".png"}))
	d.Show()
}

func exportTo(w fyne.URIWriteCloser, doc *state.Document, pressure bool) error {
	if w.URI().Extension() == ".png" {
		return export.PNG(w, doc, 2, render.Options{PressureWidth: pressure})
	}
	return export.PDF(w, doc)
}
