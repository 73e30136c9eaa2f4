package state

import (
	"image/color"
	"time"
)

type Point struct{ X, Y float32 }

// Stroke is one continuous pointer drag: the chain of segments joining Points.
type Stroke struct {
	ID     string
	Points []Point
	Color  color.NRGBA
	Width  float64
	Time   time.Time
}

// Segments reports how many line segments the stroke is made of.
func (s Stroke) Segments() int {
	if len(s.Points) < 2 {
		return 0
	}
	return len(s.Points) - 1
}

// Bounds returns the bounding box of the stroke's points, grown by half the
// brush width so round caps are included.
func (s Stroke) Bounds() (min, max Point) {
	if len(s.Points) == 0 {
		return Point{}, Point{}
	}
	min, max = s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	pad := float32(s.Width / 2)
	min.X -= pad
	min.Y -= pad
	max.X += pad
	max.Y += pad
	return min, max
}

var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.NRGBA{A: 255}
)

// Opaque converts c to an RGB value; alpha is dropped.
func Opaque(c color.Color) color.NRGBA {
	if c == nil {
		return Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}
