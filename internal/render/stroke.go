package render

import "Sketchpad/internal/state"

// ApplyAttributes loads a stroke style into the surface's paint state.
func ApplyAttributes(dst Surface, a state.Attributes) {
	dst.SetLineCap(a.Cap)
	dst.SetLineJoin(a.Join)
	dst.SetAntialias(a.ShouldAntialias, a.AllowsAntialiasing)
	dst.SetInterpolationQuality(a.Quality)
	dst.SetStrokeColor(a.Color)
	dst.SetLineWidth(a.Width)
}

// StrokePoints traces points as one connected path and strokes it once
// with attrs, so interior vertices get joins rather than overlapping caps.
// Fewer than two points draw nothing.
func StrokePoints(dst Surface, points []state.Point, attrs state.Attributes) error {
	if len(points) < 2 {
		return nil
	}
	dst.Save()
	defer dst.Restore()

	ApplyAttributes(dst, attrs)
	dst.BeginPath()
	dst.MoveTo(points[0])
	for _, p := range points[1:] {
		dst.LineTo(p)
	}
	return dst.StrokePath()
}

// DrawStroke draws a committed stroke with its own attributes.
func DrawStroke(dst Surface, s state.Stroke) error {
	return StrokePoints(dst, s.Points, s.Attributes)
}
