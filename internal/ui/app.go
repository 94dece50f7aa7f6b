package ui

import (
	"fmt"
	"log"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"Sketchpad/internal/export"
	"Sketchpad/internal/sketch"
)

const appID = "io.github.sketchpad"

// RunApp shows pad in a window and blocks until the window is closed.
// shareLink, when set, is shown in the status bar.
func RunApp(pad *sketch.Pad, shareLink string) {
	myApp := app.NewWithID(appID)
	prefs := myApp.Preferences()
	pad.Configure(LoadOptions(prefs)...)

	myWindow := myApp.NewWindow("Sketchpad")
	myWindow.Resize(fyne.NewSize(1024, 768))

	board := NewPadWidget(pad)
	tools, toolbar := NewToolbar(board, func() { showExport(myWindow, board) })
	board.OnChange = tools.Sync
	if shareLink != "" {
		board.SetStatus("Mirroring at " + shareLink)
	}
	addShortcuts(myWindow, pad)

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)
	myWindow.SetContent(content)
	myWindow.SetOnClosed(func() {
		SaveOptions(prefs, pad)
		// Don't remember the eraser as the pen color.
		prefs.SetString(prefStrokeColor, sketch.Hex(tools.lastColor))
	})
	myWindow.ShowAndRun()
}

func addShortcuts(win fyne.Window, pad *sketch.Pad) {
	c := win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { pad.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { pad.Redo() })
	c.SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyEscape {
			pad.PointerCancel(sketch.PointerID(desktop.MouseButtonPrimary))
		}
	})
}

func showExport(win fyne.Window, board *PadWidget) {
	dialog.ShowFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return // cancelled
		}
		defer w.Close()

		encode, err := export.ForExtension(w.URI().Extension())
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		scale := win.Canvas().Scale()
		size := board.Size()
		img, err := board.Snapshot(int(math.Ceil(float64(size.Width*scale))), int(math.Ceil(float64(size.Height*scale))))
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if err := encode(w, img); err != nil {
			dialog.ShowError(err, win)
			return
		}
		log.Printf("[UI] exported %s", w.URI())
		board.SetStatus(fmt.Sprintf("Saved %s", w.URI().Name()))
	}, win)
}
