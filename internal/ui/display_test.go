package ui

import (
	"testing"

	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceSegments(t *testing.T) {
	s := newSurface()
	s.Reset(200, 100)
	assert.Equal(t, fyne.NewSize(200, 100), s.background.Size())

	s.DrawSegment(state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 10}, state.Black, 4)
	s.DrawSegment(state.Point{X: 20, Y: 10}, state.Point{X: 30, Y: 20}, state.Black, 4)
	objs := s.objects()
	// background, cap, line, cap, line, cap
	require.Len(t, objs, 6)

	line, ok := objs[2].(*canvas.Line)
	require.True(t, ok)
	assert.Equal(t, float32(4), line.StrokeWidth)
	assert.Equal(t, fyne.NewPos(10, 10), line.Position1)
	assert.Equal(t, fyne.NewPos(20, 10), line.Position2)

	dot, ok := objs[3].(*canvas.Circle)
	require.True(t, ok)
	assert.Equal(t, fyne.NewPos(18, 8), dot.Position1)
	assert.Equal(t, fyne.NewPos(22, 12), dot.Position2)

	s.Reset(50, 50)
	assert.Len(t, s.objects(), 1)
	assert.Equal(t, fyne.NewSize(50, 50), s.size)
}

func TestSurfaceClipsToCanvas(t *testing.T) {
	s := newSurface()
	s.Reset(600, 400)

	s.DrawSegment(state.Point{X: 590, Y: 200}, state.Point{X: 700, Y: 200}, state.Black, 2)
	objs := s.objects()
	require.Len(t, objs, 4)
	line, ok := objs[2].(*canvas.Line)
	require.True(t, ok)
	assertNear(t, state.Point{X: 590, Y: 200}, toPoint(line.Position1))
	assertNear(t, state.Point{X: 601, Y: 200}, toPoint(line.Position2))

	// entirely outside: nothing is added and the next segment starts a new cap
	s.DrawSegment(state.Point{X: 700, Y: 200}, state.Point{X: 800, Y: 250}, state.Black, 2)
	assert.Len(t, s.objects(), 4)
	s.DrawSegment(state.Point{X: 800, Y: 250}, state.Point{X: 500, Y: 250}, state.Black, 2)
	objs = s.objects()
	require.Len(t, objs, 7)
	line = objs[5].(*canvas.Line)
	assertNear(t, state.Point{X: 601, Y: 250}, toPoint(line.Position1))
	assertNear(t, state.Point{X: 500, Y: 250}, toPoint(line.Position2))
}

func TestClipSegment(t *testing.T) {
	a, b, ok := clipSegment(state.Point{X: -10, Y: 5}, state.Point{X: 20, Y: 5}, 0, 0, 10, 10)
	require.True(t, ok)
	assertNear(t, state.Point{X: 0, Y: 5}, a)
	assertNear(t, state.Point{X: 10, Y: 5}, b)

	a, b, ok = clipSegment(state.Point{X: 2, Y: 2}, state.Point{X: 8, Y: 8}, 0, 0, 10, 10)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 2, Y: 2}, a)
	assert.Equal(t, state.Point{X: 8, Y: 8}, b)

	_, _, ok = clipSegment(state.Point{X: 11, Y: 0}, state.Point{X: 20, Y: 10}, 0, 0, 10, 10)
	assert.False(t, ok)
}

func TestDragOutsideCanvasStaysInside(t *testing.T) {
	p := newTestPainter(t)
	drag(p.board, fyne.NewPos(590, 200), fyne.NewPos(700, 200))

	for _, o := range p.board.display.objects()[1:] {
		if l, ok := o.(*canvas.Line); ok {
			assert.LessOrEqual(t, l.Position2.X, float32(600.5))
		}
	}
	c, err := p.session.Raster().At(599, 200)
	require.NoError(t, err)
	assert.Equal(t, state.Black, c)
}

func TestMouseUpEndsStroke(t *testing.T) {
	p := newTestPainter(t)
	p.board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(5, 5)}})
	p.board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(25, 5)}})
	p.board.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
	assert.Len(t, p.session.Strokes(), 1)

	p.board.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(40, 40)}})
	assert.Len(t, p.board.display.objects(), 4)
}

func assertNear(t *testing.T, want, got state.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3)
	assert.InDelta(t, want.Y, got.Y, 1e-3)
}
