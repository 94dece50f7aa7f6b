package ui

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/google/go-cmp/cmp"

	"Sketchpad/internal/sketch"
	"Sketchpad/internal/state"
)

func newBoard(t *testing.T, size fyne.Size) *PadWidget {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := NewPadWidget(sketch.NewPad(state.DefaultCapacity, nil))
	w.Resize(size)
	return w
}

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: b}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func stroke(w *PadWidget, x0, y0, x1, y1 float32) {
	w.MouseDown(mouse(x0, y0, desktop.MouseButtonPrimary))
	w.Dragged(drag(x1, y1))
	w.MouseUp(mouse(x1, y1, desktop.MouseButtonPrimary))
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

func TestPadWidgetDrawsStroke(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	stroke(w, 10, 50, 90, 50)

	if n := w.Pad().History().Len(); n != 1 {
		t.Fatalf("history has %d strokes, want 1", n)
	}
	img := w.draw(100, 100)
	if img.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if !isDark(img.At(50, 50)) {
		t.Errorf("pixel on the stroke = %v", img.At(50, 50))
	}
	if isDark(img.At(50, 20)) {
		t.Errorf("pixel off the stroke = %v", img.At(50, 20))
	}
	if got, want := w.StatusBar().Text, "1 strokes undoable, 0 to redo"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestPadWidgetScalesToPixels(t *testing.T) {
	w := newBoard(t, fyne.NewSize(50, 50))
	w.draw(100, 100) // device scale 2

	w.MouseDown(mouse(5, 25, desktop.MouseButtonPrimary))
	w.Dragged(drag(45, 25))
	got := w.Pad().InProgress()
	want := []state.Point{{X: 10, Y: 50}, {X: 90, Y: 50}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("in-progress points (-want +got):\n%s", d)
	}
}

func TestPadWidgetIgnoresSecondButton(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	w.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	w.MouseDown(mouse(20, 20, desktop.MouseButtonSecondary))
	w.MouseUp(mouse(20, 20, desktop.MouseButtonSecondary))
	if !w.Pad().Drawing() {
		t.Fatal("secondary button ended the primary stroke")
	}
	w.Dragged(drag(30, 10))
	w.MouseUp(mouse(30, 10, desktop.MouseButtonPrimary))
	if n := w.Pad().History().Len(); n != 1 {
		t.Errorf("history has %d strokes, want 1", n)
	}
}

func TestPadWidgetSnapshot(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	stroke(w, 0, 10, 100, 10)
	img, err := w.Snapshot(200, 200)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 200, 200) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if got := w.Pad().Layers().Baked().Bounds(); got != image.Rect(0, 0, 100, 100) {
		t.Errorf("layers created at %v, want the view size", got)
	}
	if !isDark(img.At(100, 20)) {
		t.Errorf("pixel on the stroke = %v", img.At(100, 20))
	}
	if _, err := w.Snapshot(0, 10); err == nil {
		t.Error("expected an error for an empty snapshot")
	}
}

func TestPadWidgetStrokeFollowsPointerAfterResize(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	w.draw(100, 100)

	w.Resize(fyne.NewSize(200, 200))
	stroke(w, 120, 150, 190, 150)
	stroke(w, 10, 40, 90, 40)
	img := w.draw(200, 200)

	for _, p := range []image.Point{{160, 150}, {50, 40}} {
		if !isDark(img.At(p.X, p.Y)) {
			t.Errorf("pixel under the pointer at %v = %v", p, img.At(p.X, p.Y))
		}
	}
	if isDark(img.At(50, 80)) {
		t.Errorf("stroke drawn away from the pointer at (50,80)")
	}
}

func TestToolbarPenAndEraser(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	tools, _ := NewToolbar(w, nil)
	pad := w.Pad()

	red := color.NRGBA{R: 255, A: 255}
	tools.pick(red)
	tools.Eraser()
	if a := pad.Attributes(); a.Color != pad.Background() || a.Width != eraserWidth {
		t.Errorf("eraser attributes = %v %v", a.Color, a.Width)
	}
	tools.Pen()
	if a := pad.Attributes(); a.Color != red || a.Width != penWidth {
		t.Errorf("pen attributes = %v %v", a.Color, a.Width)
	}
}

func TestToolbarFollowsHistory(t *testing.T) {
	w := newBoard(t, fyne.NewSize(100, 100))
	tools, _ := NewToolbar(w, nil)
	w.OnChange = tools.Sync

	if !tools.undo.Disabled() || !tools.redo.Disabled() {
		t.Fatal("history buttons enabled on an empty pad")
	}
	stroke(w, 10, 10, 50, 10)
	if tools.undo.Disabled() {
		t.Error("undo disabled after a stroke")
	}
	w.Pad().Undo()
	if !tools.undo.Disabled() || tools.redo.Disabled() {
		t.Error("buttons not updated after undo")
	}
}

func TestPreferences(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	prefs := a.Preferences()

	fresh := sketch.NewPad(1, nil)
	fresh.Configure(LoadOptions(prefs)...)
	if d := cmp.Diff(state.DefaultAttributes(), fresh.Attributes()); d != "" {
		t.Errorf("defaults (-want +got):\n%s", d)
	}

	pad := sketch.NewPad(1, nil)
	pad.Configure(
		sketch.BackgroundColor{Color: color.Black},
		sketch.StrokeColor{Color: color.NRGBA{G: 255, A: 255}},
		sketch.StrokeWidth(7.5),
		sketch.LineCap(state.CapSquare),
		sketch.LineJoin(state.JoinBevel),
		sketch.ShouldAntialias(false),
		sketch.InterpolationQuality(state.QualityHigh),
	)
	SaveOptions(prefs, pad)

	restored := sketch.NewPad(1, nil)
	restored.Configure(LoadOptions(prefs)...)
	if d := cmp.Diff(pad.Attributes(), restored.Attributes()); d != "" {
		t.Errorf("restored attributes (-want +got):\n%s", d)
	}
	if restored.Background() != pad.Background() {
		t.Errorf("background = %v, want %v", restored.Background(), pad.Background())
	}
}
