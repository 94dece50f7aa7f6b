package render

import (
	"fmt"
	"image"
	"iter"

	"Sketchpad/internal/state"
)

// Compositor owns the two layers of a sketch.
//
// The baked layer only ever gains strokes: whatever falls out of the undo
// window is drawn there once and never replayed. The volatile layer is
// wiped and redrawn from the active strokes and the stroke in progress on
// every repaint, so its cost is bounded by the history capacity.
type Compositor struct {
	newSurface Factory

	baked    Surface
	volatile Surface

	// pending holds strokes baked before the layers existed.
	pending []state.Stroke
}

// NewCompositor returns a compositor creating its layers with f. A nil f
// uses gg canvases.
func NewCompositor(f Factory) *Compositor {
	if f == nil {
		f = NewCanvasSurface
	}
	return &Compositor{newSurface: f}
}

// Prepared reports whether the layers exist.
func (c *Compositor) Prepared() bool { return c.baked != nil }

// Prepare creates the layers at size if they do not exist yet and bakes
// any strokes queued before that.
func (c *Compositor) Prepare(size image.Point) error {
	if c.baked == nil {
		baked, err := c.newSurface(size.X, size.Y)
		if err != nil {
			return fmt.Errorf("create baked layer: %w", err)
		}
		volatile, err := c.newSurface(size.X, size.Y)
		if err != nil {
			return fmt.Errorf("create volatile layer: %w", err)
		}
		c.baked, c.volatile = baked, volatile
		Logger().Debug("layers created", "width", size.X, "height", size.Y)
	}

	pending := c.pending
	c.pending = nil
	for _, s := range pending {
		if err := c.bake(s); err != nil {
			return err
		}
	}
	return nil
}

// Bake draws s onto the baked layer. Each stroke must be baked once;
// baking it again draws it twice. Before the layers exist the stroke is
// queued for the next Prepare.
func (c *Compositor) Bake(s state.Stroke) error {
	if c.baked == nil {
		c.pending = append(c.pending, s)
		return nil
	}
	return c.bake(s)
}

func (c *Compositor) bake(s state.Stroke) error {
	Logger().Debug("baking stroke", "id", s.ID, "points", len(s.Points))
	if err := DrawStroke(c.baked, s); err != nil {
		return fmt.Errorf("bake %s: %w", s.ID, err)
	}
	return nil
}

// RepaintVolatile rebuilds the volatile layer: the active strokes in order,
// then the in-progress points with attrs on top.
func (c *Compositor) RepaintVolatile(active iter.Seq[state.Stroke], inProgress []state.Point, attrs state.Attributes) error {
	if c.volatile == nil {
		return ErrNotPrepared
	}
	c.volatile.Clear()
	for s := range active {
		if err := DrawStroke(c.volatile, s); err != nil {
			return fmt.Errorf("repaint %s: %w", s.ID, err)
		}
	}
	if err := StrokePoints(c.volatile, inProgress, attrs); err != nil {
		return fmt.Errorf("repaint in-progress stroke: %w", err)
	}
	return nil
}

// Present draws the baked layer and then the volatile layer over the
// whole of out, creating the layers at out's size first if needed.
func (c *Compositor) Present(out Surface) error {
	r := out.Bounds()
	if err := c.Prepare(r.Size()); err != nil {
		return err
	}
	out.DrawSurface(c.baked, r)
	out.DrawSurface(c.volatile, r)
	return nil
}

// Reset drops both layers and anything queued for baking. The layers are
// created again by the next Prepare.
func (c *Compositor) Reset() {
	c.baked = nil
	c.volatile = nil
	c.pending = nil
}

// Baked returns the baked layer, or nil before Prepare.
func (c *Compositor) Baked() Surface { return c.baked }

// Volatile returns the volatile layer, or nil before Prepare.
func (c *Compositor) Volatile() Surface { return c.volatile }
