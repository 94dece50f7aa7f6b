package ui

import (
	"fyne.io/fyne/v2"
	"github.com/gogpu/gg"

	"Sketchpad/internal/sketch"
	"Sketchpad/internal/state"
)

// Preference keys. Colors are stored as #rrggbbaa strings.
const (
	prefBackground    = "background"
	prefStrokeColor   = "stroke.color"
	prefStrokeWidth   = "stroke.width"
	prefLineCap       = "stroke.cap"
	prefLineJoin      = "stroke.join"
	prefAntialias     = "stroke.antialias"
	prefInterpolation = "interpolation"
)

// LoadOptions reads the pad configuration from p, falling back to the
// pad defaults for anything never saved.
func LoadOptions(p fyne.Preferences) []sketch.Option {
	def := state.DefaultAttributes()
	return []sketch.Option{
		sketch.BackgroundColor{Color: gg.Hex(p.StringWithFallback(prefBackground, "#ffffffff")).Color()},
		sketch.StrokeColor{Color: gg.Hex(p.StringWithFallback(prefStrokeColor, sketch.Hex(def.Color))).Color()},
		sketch.StrokeWidth(p.FloatWithFallback(prefStrokeWidth, def.Width)),
		sketch.LineCap(p.IntWithFallback(prefLineCap, int(def.Cap))),
		sketch.LineJoin(p.IntWithFallback(prefLineJoin, int(def.Join))),
		sketch.ShouldAntialias(p.BoolWithFallback(prefAntialias, def.ShouldAntialias)),
		sketch.InterpolationQuality(p.IntWithFallback(prefInterpolation, int(def.Quality))),
	}
}

// SaveOptions stores the pad's current configuration in p.
func SaveOptions(p fyne.Preferences, pad *sketch.Pad) {
	a := pad.Attributes()
	p.SetString(prefBackground, sketch.Hex(pad.Background()))
	p.SetString(prefStrokeColor, sketch.Hex(a.Color))
	p.SetFloat(prefStrokeWidth, a.Width)
	p.SetInt(prefLineCap, int(a.Cap))
	p.SetInt(prefLineJoin, int(a.Join))
	p.SetBool(prefAntialias, a.ShouldAntialias)
	p.SetInt(prefInterpolation, int(a.Quality))
}
