package ui

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/board"
	"SketchBoard/internal/net"
)

// RunApp opens the editor window for bw and blocks until it closes. A
// non-empty shareLink is shown so others can follow along.
func RunApp(myApp fyne.App, bw *BoardWidget, shareLink string) {
	win := myApp.NewWindow("SketchBoard")
	win.Resize(fyne.NewSize(1024, 768))

	toolbar := NewToolbar(bw, win)
	status := []fyne.CanvasObject{bw.StatusLabel()}
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		status = append(status, widget.NewLabel("Share:"), link)
	}
	win.SetContent(container.NewBorder(toolbar, container.NewHBox(status...), nil, nil, bw))
	addShortcuts(bw, win.Canvas())

	win.ShowAndRun()
}

func addShortcuts(bw *BoardWidget, c fyne.Canvas) {
	b := bw.Board()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		b.Undo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}, func(fyne.Shortcut) {
		b.Redo()
	})
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		b.Redo()
	})
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyEscape {
			b.Cancel()
		}
	})
}

// RunViewer opens a read-only window following the mirror at url.
func RunViewer(myApp fyne.App, b *board.Board, url string) {
	win := myApp.NewWindow("SketchBoard (viewing)")
	win.Resize(fyne.NewSize(1024, 768))

	bw := NewViewerWidget(b)
	bw.SetStatus("Connecting to " + url)
	win.SetContent(container.NewBorder(nil, bw.StatusLabel(), nil, nil, bw))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := net.Follow(ctx, url, func(data []byte) {
			fyne.Do(func() { bw.ShowSnapshot(data) })
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("[VIEWER] %v", err)
		}
		msg := "Host closed the board"
		if err != nil {
			msg = "Disconnected: " + err.Error()
		}
		if ctx.Err() == nil {
			fyne.Do(func() { bw.SetStatus(msg) })
		}
	}()

	win.ShowAndRun()
}
