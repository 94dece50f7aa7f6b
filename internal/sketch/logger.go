package sketch

import (
	"log/slog"

	"github.com/gogpu/gg"

	"Sketchpad/internal/render"
)

// SetLogger routes the debug output of the sketch, render and gg packages
// to l. Nothing is logged until it is called; nil silences them again.
func SetLogger(l *slog.Logger) {
	render.SetLogger(l)
	gg.SetLogger(l)
}

func logger() *slog.Logger {
	return render.Logger()
}
