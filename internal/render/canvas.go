package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"Sketchpad/internal/state"
)

// miterLimit matches the gg default and bounds how far a join can reach
// past the stroke centre line.
const miterLimit = 10

// paint is the subset of the paint state that Save and Restore track.
type paint struct {
	color     color.NRGBA
	width     float64
	cap       state.LineCap
	join      state.LineJoin
	antialias bool
	quality   state.Quality
}

// Canvas is a Surface backed by a gg software context.
type Canvas struct {
	ctx   *gg.Context
	paint paint
	saved []paint

	// path holds the subpaths since BeginPath. They are replayed on the
	// context (or the scratch context) when the path is stroked.
	path [][]state.Point

	// scratch receives aliased strokes before their coverage is thresholded.
	scratch *gg.Context
}

var _ Surface = (*Canvas)(nil)

// NewCanvas returns a transparent canvas of the given size.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyRegion, width, height)
	}
	c := &Canvas{ctx: gg.NewContext(width, height)}
	c.setPaint(paint{
		color:     color.NRGBA{A: 255},
		width:     1,
		cap:       state.CapButt,
		join:      state.JoinMiter,
		antialias: true,
	})
	return c, nil
}

// NewCanvasSurface is a Factory producing canvases.
func NewCanvasSurface(width, height int) (Surface, error) {
	c, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.ctx.Width(), c.ctx.Height())
}

func (c *Canvas) setPaint(p paint) {
	c.paint = p
	c.ctx.SetColor(p.color)
	c.ctx.SetLineWidth(p.width)
	c.ctx.SetLineCap(ggCap(p.cap))
	c.ctx.SetLineJoin(ggJoin(p.join))
}

func (c *Canvas) SetStrokeColor(col color.Color) {
	c.paint.color = state.ToNRGBA(col)
	c.ctx.SetColor(c.paint.color)
}

func (c *Canvas) SetLineWidth(w float64) {
	c.paint.width = w
	c.ctx.SetLineWidth(w)
}

func (c *Canvas) SetLineCap(lc state.LineCap) {
	c.paint.cap = lc
	c.ctx.SetLineCap(ggCap(lc))
}

func (c *Canvas) SetLineJoin(lj state.LineJoin) {
	c.paint.join = lj
	c.ctx.SetLineJoin(ggJoin(lj))
}

func (c *Canvas) SetAntialias(should, allows bool) {
	c.paint.antialias = should && allows
}

func (c *Canvas) SetInterpolationQuality(q state.Quality) {
	c.paint.quality = q
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
	c.ctx.ClearPath()
}

func (c *Canvas) MoveTo(p state.Point) {
	c.path = append(c.path, []state.Point{p})
}

func (c *Canvas) LineTo(p state.Point) {
	if len(c.path) == 0 {
		c.MoveTo(p)
		return
	}
	last := len(c.path) - 1
	c.path[last] = append(c.path[last], p)
}

// StrokePath strokes the current path with the current paint and clears it.
func (c *Canvas) StrokePath() error {
	defer c.BeginPath()
	if !c.paint.antialias {
		return c.strokeAliased()
	}
	trace(c.ctx, c.path)
	return c.ctx.Stroke()
}

// strokeAliased renders the path on the scratch context and then paints
// every pixel whose coverage reaches one half with the full stroke color.
func (c *Canvas) strokeAliased() error {
	if c.scratch == nil {
		c.scratch = gg.NewContext(c.ctx.Width(), c.ctx.Height())
	}
	sc := c.scratch
	sc.Clear()
	opaque := c.paint.color
	opaque.A = 255
	sc.SetColor(opaque)
	sc.SetLineWidth(c.paint.width)
	sc.SetLineCap(ggCap(c.paint.cap))
	sc.SetLineJoin(ggJoin(c.paint.join))
	trace(sc, c.path)
	if err := sc.Stroke(); err != nil {
		return fmt.Errorf("aliased stroke: %w", err)
	}

	r := c.pathBounds()
	cov := sc.ResizeTarget()
	dst := c.ctx.ResizeTarget()
	src := gg.FromColor(color.NRGBA{R: opaque.R, G: opaque.G, B: opaque.B, A: 255})
	alpha := float64(c.paint.color.A) / 255
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if cov.GetPixel(x, y).A < 0.5 {
				continue
			}
			dst.SetPixel(x, y, over(src, alpha, dst.GetPixel(x, y)))
		}
	}
	return nil
}

// pathBounds is the pixel rectangle the current path can touch once
// stroked, clipped to the canvas.
func (c *Canvas) pathBounds() image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sub := range c.path {
		for _, p := range sub {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return image.Rectangle{}
	}
	pad := c.paint.width*miterLimit/2 + 2
	r := image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
	return r.Intersect(c.Bounds())
}

// over composites an opaque src color with the given alpha over dst, in
// straight (non-premultiplied) alpha.
func over(src gg.RGBA, alpha float64, dst gg.RGBA) gg.RGBA {
	outA := alpha + dst.A*(1-alpha)
	if outA == 0 {
		return gg.RGBA{}
	}
	mix := func(s, d float64) float64 {
		return (s*alpha + d*dst.A*(1-alpha)) / outA
	}
	return gg.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: outA}
}

func trace(ctx *gg.Context, path [][]state.Point) {
	ctx.ClearPath()
	for _, sub := range path {
		ctx.MoveTo(sub[0].X, sub[0].Y)
		for _, p := range sub[1:] {
			ctx.LineTo(p.X, p.Y)
		}
	}
}

// DrawSurface scales src into r using the current interpolation quality
// and blends it over the canvas.
func (c *Canvas) DrawSurface(src Surface, r image.Rectangle) {
	if r.Empty() {
		return
	}
	img := src.Image()
	if img.Bounds().Size() != r.Size() {
		scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		interpolator(c.paint.quality).Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}
	c.ctx.DrawImage(gg.ImageBufFromImage(img), float64(r.Min.X), float64(r.Min.Y))
}

func (c *Canvas) Fill(col color.Color) {
	c.ctx.ClearWithColor(gg.FromColor(col))
}

func (c *Canvas) Clear() {
	c.ctx.Clear()
}

func (c *Canvas) Save() {
	c.saved = append(c.saved, c.paint)
	c.ctx.Push()
}

func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	p := c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	c.ctx.Pop()
	c.setPaint(p)
}

func (c *Canvas) Image() image.Image {
	return c.ctx.Image()
}

// At returns the color of a single pixel.
func (c *Canvas) At(x, y int) color.Color {
	return c.ctx.ResizeTarget().GetPixel(x, y).Color()
}

func ggCap(lc state.LineCap) gg.LineCap {
	switch lc {
	case state.CapRound:
		return gg.LineCapRound
	case state.CapSquare:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func ggJoin(lj state.LineJoin) gg.LineJoin {
	switch lj {
	case state.JoinRound:
		return gg.LineJoinRound
	case state.JoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

func interpolator(q state.Quality) draw.Interpolator {
	switch q {
	case state.QualityNone:
		return draw.NearestNeighbor
	case state.QualityMedium:
		return draw.BiLinear
	case state.QualityHigh:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}
