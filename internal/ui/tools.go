package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"Sketchpad/internal/sketch"
)

const (
	penWidth    = 2.0
	eraserWidth = 20.0
)

// palette is the set of stroke colors offered as swatches.
var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
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

// Tools holds the toolbar state: the pen color to restore after erasing
// and the history buttons that follow the pad.
type Tools struct {
	pad       *sketch.Pad
	lastColor color.Color
	slider    *widget.Slider
	undo      *widget.Button
	redo      *widget.Button
}

// Pen switches back to the last chosen color, shrinking an eraser-sized
// width to the default.
func (t *Tools) Pen() {
	t.pad.Configure(sketch.StrokeColor{Color: t.lastColor})
	if t.pad.Attributes().Width > 10 {
		t.slider.SetValue(penWidth)
	}
}

// Eraser paints with the background color.
func (t *Tools) Eraser() {
	t.pad.Configure(sketch.StrokeColor{Color: t.pad.Background()})
	t.slider.SetValue(eraserWidth)
}

func (t *Tools) pick(c color.Color) {
	t.lastColor = c
	t.pad.Configure(sketch.StrokeColor{Color: c})
}

// Sync enables the undo and redo actions according to the pad's history.
func (t *Tools) Sync() {
	h := t.pad.History()
	setEnabled(t.undo, h.CanUndo())
	setEnabled(t.redo, h.CanRedo())
}

func setEnabled(a *widget.Button, on bool) {
	if on {
		a.Enable()
	} else {
		a.Disable()
	}
}

// NewToolbar builds the tool row for a pad. onExport may be nil, in which
// case no export action is shown.
func NewToolbar(board *PadWidget, onExport func()) (*Tools, fyne.CanvasObject) {
	pad := board.Pad()
	t := &Tools{pad: pad, lastColor: pad.Attributes().Color}

	// toolbar with built-in tooltips
	items := []widget.ToolbarItem{
		widget.NewToolbarAction(theme.DocumentCreateIcon(), t.Pen),  // Pen
		widget.NewToolbarAction(theme.ContentClearIcon(), t.Eraser), // Eraser
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), pad.Clear),
	}
	if onExport != nil {
		items = append(items, widget.NewToolbarAction(theme.DocumentSaveIcon(), onExport))
	}
	tb := widget.NewToolbar(items...)

	t.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), pad.Undo)
	t.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), pad.Redo)

	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, t.pick))
	}

	t.slider = widget.NewSlider(1.0, 50.0)
	t.slider.Step = 0.5
	t.slider.SetValue(pad.Attributes().Width)
	t.slider.OnChanged = func(val float64) {
		pad.Configure(sketch.StrokeWidth(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)

	t.Sync()

	return t, container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		t.undo,
		t.redo,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}
