package render

import (
	"fmt"
	"image"
	"image/color"

	"Sketchpad/internal/state"
)

// recorder is a Surface that logs what is drawn on it.
type recorder struct {
	name   string
	bounds image.Rectangle
	log    *[]string

	color  color.NRGBA
	points int
}

func (r *recorder) logf(format string, args ...any) {
	*r.log = append(*r.log, r.name+":"+fmt.Sprintf(format, args...))
}

func (r *recorder) Bounds() image.Rectangle               { return r.bounds }
func (r *recorder) SetStrokeColor(c color.Color)          { r.color = state.ToNRGBA(c) }
func (r *recorder) SetLineWidth(float64)                  {}
func (r *recorder) SetLineCap(state.LineCap)              {}
func (r *recorder) SetLineJoin(state.LineJoin)            {}
func (r *recorder) SetAntialias(bool, bool)               {}
func (r *recorder) SetInterpolationQuality(state.Quality) {}
func (r *recorder) BeginPath()                            { r.points = 0 }
func (r *recorder) MoveTo(state.Point)                    { r.points++ }
func (r *recorder) LineTo(state.Point)                    { r.points++ }
func (r *recorder) Fill(color.Color)                      { r.logf("fill") }
func (r *recorder) Clear()                                { r.logf("clear") }
func (r *recorder) Save()                                 {}
func (r *recorder) Restore()                              {}
func (r *recorder) Image() image.Image                    { return image.NewRGBA(r.bounds) }

func (r *recorder) StrokePath() error {
	r.logf("stroke %d %d", r.color.R, r.points)
	r.points = 0
	return nil
}

func (r *recorder) DrawSurface(src Surface, dst image.Rectangle) {
	r.logf("draw %s", src.(*recorder).name)
}

// recorderFactory names the surfaces it creates baked, volatile, and so on
// in creation order, and logs all of them into log.
func recorderFactory(log *[]string) Factory {
	names := []string{"baked", "volatile"}
	n := 0
	return func(w, h int) (Surface, error) {
		if w <= 0 || h <= 0 {
			return nil, ErrEmptyRegion
		}
		name := fmt.Sprintf("surface%d", n)
		if n < len(names) {
			name = names[n]
		}
		n++
		return &recorder{name: name, bounds: image.Rect(0, 0, w, h), log: log}, nil
	}
}
