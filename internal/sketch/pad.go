// Package sketch is a freehand drawing surface: it turns pointer samples
// into strokes, keeps the last few of them undoable and bakes the rest.
package sketch

import (
	"image/color"

	"Sketchpad/internal/render"
	"Sketchpad/internal/state"
)

// Repaint says how much of the picture a change affected.
type Repaint int

const (
	// RepaintVolatile means only the volatile layer changed.
	RepaintVolatile Repaint = iota + 1
	// RepaintFull means the baked layer or the background changed too.
	RepaintFull
)

func (r Repaint) String() string {
	switch r {
	case RepaintVolatile:
		return "volatile"
	case RepaintFull:
		return "full"
	}
	return "none"
}

// Pad is the drawing state of one view. It is not safe for concurrent
// use; every call is expected on the UI thread.
type Pad struct {
	attrs      state.Attributes
	background color.NRGBA

	history *state.History
	layers  *render.Compositor
	journal *state.Journal

	drawing bool
	pointer PointerID
	points  []state.Point

	// Invalidate, if set, is called whenever the picture changes. It should
	// only schedule a redraw; the host then calls Render.
	Invalidate func(Repaint)
}

// NewPad returns an empty pad keeping capacity strokes undoable, with
// layers made by factory (nil for gg canvases).
func NewPad(capacity int, factory render.Factory) *Pad {
	return &Pad{
		attrs:      state.DefaultAttributes(),
		background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		history:    state.NewHistory(capacity),
		layers:     render.NewCompositor(factory),
		journal:    state.NewJournal(),
	}
}

// Configure applies options in order. Stroke options only affect strokes
// started afterwards and the one in progress; BackgroundColor applies
// immediately.
func (p *Pad) Configure(opts ...Option) {
	for _, o := range opts {
		logger().Debug("configure", "option", o.String())
		o.apply(p)
	}
	if p.drawing {
		p.invalidate(RepaintVolatile)
	}
}

// Attributes returns the style the next stroke will be drawn with.
func (p *Pad) Attributes() state.Attributes { return p.attrs }

// Background returns the background color.
func (p *Pad) Background() color.NRGBA { return p.background }

// History gives read access to the undo buffer.
func (p *Pad) History() *state.History { return p.history }

// Layers gives read access to the baked and volatile layers.
func (p *Pad) Layers() *render.Compositor { return p.layers }

// Journal returns the change journal, for subscribers.
func (p *Pad) Journal() *state.Journal { return p.journal }

// Undo hides the most recent active stroke. A stroke being drawn is
// abandoned. With nothing to undo it does nothing.
func (p *Pad) Undo() {
	if !p.history.Undo() {
		return
	}
	p.abandon()
	p.journal.Record(state.ChangeUndo, nil)
	p.invalidate(RepaintVolatile)
}

// Redo shows the most recently undone stroke again, if any.
func (p *Pad) Redo() {
	if !p.history.Redo() {
		return
	}
	p.journal.Record(state.ChangeRedo, nil)
	p.invalidate(RepaintVolatile)
}

// Clear forgets all history, the stroke in progress and both layers.
func (p *Pad) Clear() {
	p.history.Clear()
	p.layers.Reset()
	p.abandon()
	logger().Debug("pad cleared")
	p.journal.Record(state.ChangeClear, nil)
	p.invalidate(RepaintFull)
}

// Render draws the background, the baked layer and the volatile layer
// into out. The layers are created at out's size on the first call. The
// result depends only on the pad state, not on how often it is called.
func (p *Pad) Render(out render.Surface) error {
	if err := p.layers.Prepare(out.Bounds().Size()); err != nil {
		return err
	}
	if err := p.layers.RepaintVolatile(p.history.Active(), p.points, p.attrs); err != nil {
		return err
	}

	out.Save()
	defer out.Restore()
	out.Fill(p.background)
	out.SetInterpolationQuality(p.attrs.Quality)
	return p.layers.Present(out)
}

func (p *Pad) invalidate(r Repaint) {
	if p.Invalidate != nil {
		p.Invalidate(r)
	}
}
