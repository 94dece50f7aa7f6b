package ui

import (
	"fmt"
	"image"
	"log"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"Sketchpad/internal/render"
	"Sketchpad/internal/sketch"
	"Sketchpad/internal/state"
)

// PadWidget hosts a sketch.Pad: it delivers mouse input to the pad and
// shows whatever the pad renders.
type PadWidget struct {
	widget.BaseWidget
	pad       *sketch.Pad
	raster    *canvas.Raster
	out       *render.Canvas
	scale     float64
	statusBar *widget.Label

	// OnChange is called after every repaint request, e.g. to update undo
	// and redo buttons.
	OnChange func()
}

var _ fyne.Widget = (*PadWidget)(nil)
var _ fyne.Draggable = (*PadWidget)(nil)
var _ desktop.Mouseable = (*PadWidget)(nil)

func NewPadWidget(pad *sketch.Pad) *PadWidget {
	w := &PadWidget{
		pad:       pad,
		scale:     1,
		statusBar: widget.NewLabel("Ready"),
	}
	w.raster = canvas.NewRaster(w.draw)
	w.raster.ScaleMode = canvas.ImageScalePixels
	w.raster.SetMinSize(fyne.NewSize(300, 300))
	pad.Invalidate = w.invalidate
	w.ExtendBaseWidget(w)
	return w
}

// Pad returns the pad shown by the widget.
func (w *PadWidget) Pad() *sketch.Pad { return w.pad }

// StatusBar returns the label the widget reports to.
func (w *PadWidget) StatusBar() *widget.Label { return w.statusBar }

func (w *PadWidget) SetStatus(text string) {
	w.statusBar.SetText(text)
}

func (w *PadWidget) invalidate(sketch.Repaint) {
	w.raster.Refresh()
	h := w.pad.History()
	w.SetStatus(fmt.Sprintf("%d strokes undoable, %d to redo", h.Cursor()+1, h.Len()-h.Cursor()-1))
	if w.OnChange != nil {
		w.OnChange()
	}
}

// draw is the raster generator. width and height are in device pixels.
func (w *PadWidget) draw(width, height int) image.Image {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if size := w.Size(); size.Width > 0 {
		w.scale = float64(width) / float64(size.Width)
	}
	if w.out == nil || w.out.Bounds().Size() != image.Pt(width, height) {
		out, err := render.NewCanvas(width, height)
		if err != nil {
			log.Printf("[UI] cannot create output surface: %v", err)
			return image.NewRGBA(image.Rect(0, 0, 1, 1))
		}
		w.out = out
	}
	if err := w.pad.Render(w.out); err != nil {
		log.Printf("[UI] render failed: %v", err)
	}
	return w.out.Image()
}

// Snapshot renders the pad at the given pixel size into a fresh image.
// The layers keep the size of the on-screen view and are scaled to fit.
func (w *PadWidget) Snapshot(width, height int) (image.Image, error) {
	out, err := render.NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	if layers := w.pad.Layers(); !layers.Prepared() {
		if err := layers.Prepare(w.pixelSize()); err != nil {
			return nil, err
		}
	}
	if err := w.pad.Render(out); err != nil {
		return nil, err
	}
	return out.Image(), nil
}

// pixelSize is the widget size in device pixels as of the last draw.
func (w *PadWidget) pixelSize() image.Point {
	size := w.Size()
	return image.Pt(int(math.Ceil(float64(size.Width)*w.scale)), int(math.Ceil(float64(size.Height)*w.scale)))
}

// toPoint maps a widget position into layer pixels. The layers keep the
// size they were created at, so after a resize the mapping follows the
// layers rather than the device scale.
func (w *PadWidget) toPoint(pos fyne.Position) state.Point {
	sx, sy := w.scale, w.scale
	if baked := w.pad.Layers().Baked(); baked != nil {
		if size := w.Size(); size.Width > 0 && size.Height > 0 {
			b := baked.Bounds().Size()
			sx = float64(b.X) / float64(size.Width)
			sy = float64(b.Y) / float64(size.Height)
		}
	}
	return state.Point{X: float64(pos.X) * sx, Y: float64(pos.Y) * sy}
}

func (w *PadWidget) MouseDown(e *desktop.MouseEvent) {
	w.pad.PointerDown(sketch.PointerID(e.Button), w.toPoint(e.Position))
}

func (w *PadWidget) MouseUp(e *desktop.MouseEvent) {
	w.pad.PointerUp(sketch.PointerID(e.Button))
}

// Dragged only ever extends the primary button's stroke; the pad ignores
// it when another button started the gesture.
func (w *PadWidget) Dragged(e *fyne.DragEvent) {
	w.pad.PointerMove(sketch.PointerID(desktop.MouseButtonPrimary), w.toPoint(e.Position))
}

func (w *PadWidget) DragEnd() {}

func (w *PadWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.raster)
}
