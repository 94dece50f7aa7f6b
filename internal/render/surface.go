// Package render draws strokes onto raster surfaces and composites the
// baked and volatile layers of a sketch.
package render

import (
	"errors"
	"image"
	"image/color"

	"Sketchpad/internal/state"
)

var (
	// ErrEmptyRegion is returned when a surface of zero or negative area is
	// requested. The drawing region must be sized before anything is drawn.
	ErrEmptyRegion = errors.New("render: drawing region has no area")

	// ErrNotPrepared is returned by a repaint issued before the layers were
	// created by Prepare or Present.
	ErrNotPrepared = errors.New("render: layers not prepared")
)

// Surface is a raster drawing target with a paint state and a single
// current path.
type Surface interface {
	Bounds() image.Rectangle

	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c state.LineCap)
	SetLineJoin(j state.LineJoin)
	SetAntialias(should, allows bool)
	SetInterpolationQuality(q state.Quality)

	BeginPath()
	MoveTo(p state.Point)
	LineTo(p state.Point)
	StrokePath() error

	// DrawSurface draws the contents of src scaled into r, over what is
	// already there.
	DrawSurface(src Surface, r image.Rectangle)

	// Fill replaces every pixel with c.
	Fill(c color.Color)
	Clear()

	Save()
	Restore()

	// Image returns a snapshot of the surface pixels.
	Image() image.Image
}

// Factory creates a surface of the given size.
type Factory func(width, height int) (Surface, error)
