package sketch

import (
	"fmt"
	"image/color"
	"strconv"

	"Sketchpad/internal/state"
)

// Option is one configuration entry accepted by Pad.Configure.
type Option interface {
	fmt.Stringer
	apply(p *Pad)
}

// BackgroundColor is painted under both layers. It takes effect at once.
type BackgroundColor struct{ color.Color }

// StrokeColor is the color of strokes started from now on.
type StrokeColor struct{ color.Color }

type (
	StrokeWidth          float64
	LineCap              state.LineCap
	LineJoin             state.LineJoin
	ShouldAntialias      bool
	AllowsAntialiasing   bool
	InterpolationQuality state.Quality
)

func (o BackgroundColor) apply(p *Pad) {
	p.background = state.ToNRGBA(o.Color)
	p.invalidate(RepaintFull)
}

func (o StrokeColor) apply(p *Pad)          { p.attrs.Color = state.ToNRGBA(o.Color) }
func (o StrokeWidth) apply(p *Pad)          { p.attrs.Width = float64(o) }
func (o LineCap) apply(p *Pad)              { p.attrs.Cap = state.LineCap(o) }
func (o LineJoin) apply(p *Pad)             { p.attrs.Join = state.LineJoin(o) }
func (o ShouldAntialias) apply(p *Pad)      { p.attrs.ShouldAntialias = bool(o) }
func (o AllowsAntialiasing) apply(p *Pad)   { p.attrs.AllowsAntialiasing = bool(o) }
func (o InterpolationQuality) apply(p *Pad) { p.attrs.Quality = state.Quality(o) }

func (o BackgroundColor) String() string      { return "background " + Hex(o.Color) }
func (o StrokeColor) String() string          { return "stroke color " + Hex(o.Color) }
func (o StrokeWidth) String() string          { return "stroke width " + strconv.FormatFloat(float64(o), 'g', -1, 64) }
func (o LineCap) String() string              { return "line cap " + state.LineCap(o).String() }
func (o LineJoin) String() string             { return "line join " + state.LineJoin(o).String() }
func (o ShouldAntialias) String() string      { return "should antialias " + strconv.FormatBool(bool(o)) }
func (o AllowsAntialiasing) String() string   { return "allows antialiasing " + strconv.FormatBool(bool(o)) }
func (o InterpolationQuality) String() string { return "interpolation quality " + state.Quality(o).String() }

// Hex formats c as #rrggbbaa in straight alpha.
func Hex(c color.Color) string {
	n := state.ToNRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
