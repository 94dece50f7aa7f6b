package state

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/google/uuid"
)

// Point is a sample location in view coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineCap is the shape drawn at the open ends of a stroke.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return fmt.Sprintf("LineCap(%d)", int(c))
}

// LineJoin is the shape drawn at interior vertices of a stroke.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

func (j LineJoin) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return fmt.Sprintf("LineJoin(%d)", int(j))
}

// Quality selects how a layer is resampled when it is drawn into a region
// of a different size.
type Quality int

const (
	QualityDefault Quality = iota
	QualityNone
	QualityLow
	QualityMedium
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityDefault:
		return "default"
	case QualityNone:
		return "none"
	case QualityLow:
		return "low"
	case QualityMedium:
		return "medium"
	case QualityHigh:
		return "high"
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// Attributes is the drawing style a stroke was made with. It is a plain
// value: copying it is the snapshot.
type Attributes struct {
	Color              color.NRGBA `json:"color"`
	Width              float64     `json:"width"`
	Cap                LineCap     `json:"cap"`
	Join               LineJoin    `json:"join"`
	ShouldAntialias    bool        `json:"should_antialias"`
	AllowsAntialiasing bool        `json:"allows_antialiasing"`
	Quality            Quality     `json:"quality"`
}

// DefaultAttributes returns the style a new pad starts with.
func DefaultAttributes() Attributes {
	return Attributes{
		Color:              color.NRGBA{A: 255},
		Width:              2,
		Cap:                CapRound,
		Join:               JoinRound,
		ShouldAntialias:    true,
		AllowsAntialiasing: true,
		Quality:            QualityDefault,
	}
}

// Antialias reports whether strokes with these attributes are smoothed.
// Both flags must be set.
func (a Attributes) Antialias() bool {
	return a.ShouldAntialias && a.AllowsAntialiasing
}

// ToNRGBA converts any color to the value form stored in Attributes.
func ToNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// Stroke is one pointer-down to pointer-up gesture.
type Stroke struct {
	ID         string     `json:"id"`
	Points     []Point    `json:"points"`
	Attributes Attributes `json:"attributes"`
}

// NewStroke freezes points and attrs into a stroke. The points are copied,
// so the caller may keep reusing its buffer.
func NewStroke(points []Point, attrs Attributes) Stroke {
	return Stroke{
		ID:         uuid.NewString(),
		Points:     slices.Clone(points),
		Attributes: attrs,
	}
}

func (s Stroke) String() string {
	return fmt.Sprintf("stroke %s (%d points, %s %.1f)", s.ID, len(s.Points), s.Attributes.Cap, s.Attributes.Width)
}
