package ui

import (
	"image/color"

	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// surface is the visible side of the canvas: a white background with one
// canvas.Line per segment and a circle at each end for round caps. Segments
// are clipped to the canvas grown by the brush radius; the widget's clip
// container trims what is left outside the background.
type surface struct {
	background *canvas.Rectangle
	strokes    []fyne.CanvasObject
	size       fyne.Size
	lastEnd    state.Point
	hasEnd     bool
}

func newSurface() *surface {
	return &surface{background: canvas.NewRectangle(color.White)}
}

func (s *surface) DrawSegment(from, to state.Point, c color.Color, width float64) {
	r := float32(width / 2)
	from, to, ok := clipSegment(from, to, -r, -r, s.size.Width+r, s.size.Height+r)
	if !ok {
		s.hasEnd = false
		return
	}
	c = state.Opaque(c)
	if !s.hasEnd || s.lastEnd != from {
		s.strokes = append(s.strokes, roundCap(from, c, width))
	}

	line := canvas.NewLine(c)
	line.StrokeWidth = float32(width)
	line.Position1 = fyne.NewPos(from.X, from.Y)
	line.Position2 = fyne.NewPos(to.X, to.Y)
	s.strokes = append(s.strokes, line, roundCap(to, c, width))

	s.lastEnd, s.hasEnd = to, true
}

func (s *surface) Reset(width, height int) {
	s.size = fyne.NewSize(float32(width), float32(height))
	s.background.Resize(s.size)
	s.strokes = nil
	s.hasEnd = false
}

func (s *surface) objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(s.strokes)+1)
	objects = append(objects, s.background)
	return append(objects, s.strokes...)
}

func roundCap(p state.Point, c color.Color, width float64) *canvas.Circle {
	r := float32(width / 2)
	dot := canvas.NewCircle(c)
	dot.Position1 = fyne.NewPos(p.X-r, p.Y-r)
	dot.Position2 = fyne.NewPos(p.X+r, p.Y+r)
	return dot
}

// clipSegment clips a→b to the rectangle [minX,maxX]×[minY,maxY]
// (Liang-Barsky). ok is false when nothing of the segment is inside.
func clipSegment(a, b state.Point, minX, minY, maxX, maxY float32) (state.Point, state.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return a, b, false
			}
			if t < t1 {
				t1 = t
			}
		}
	}
	from, to := a, b
	if t0 > 0 {
		from = state.Point{X: a.X + t0*dx, Y: a.Y + t0*dy}
	}
	if t1 < 1 {
		to = state.Point{X: a.X + t1*dx, Y: a.Y + t1*dy}
	}
	return from, to, true
}
