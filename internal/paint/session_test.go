package paint

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"LocalPaint/internal/config"
	"LocalPaint/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type segment struct {
	from, to state.Point
	color    color.NRGBA
	width    float64
}

// recorder is a surface that remembers what it was asked to draw.
type recorder struct {
	width, height int
	resets        int
	segments      []segment
}

func (r *recorder) DrawSegment(from, to state.Point, c color.Color, width float64) {
	r.segments = append(r.segments, segment{from, to, state.Opaque(c), width})
}

func (r *recorder) Reset(width, height int) {
	r.width, r.height = width, height
	r.resets++
	r.segments = nil
}

func newSession(t *testing.T, w, h int) (*Session, *recorder) {
	t.Helper()
	s := config.Defaults()
	s.CanvasWidth, s.CanvasHeight = w, h
	rec := &recorder{}
	sess, err := NewSession(s, rec)
	require.NoError(t, err)
	return sess, rec
}

func pixel(t *testing.T, s *Session, x, y int) color.NRGBA {
	t.Helper()
	c, err := s.Raster().At(x, y)
	require.NoError(t, err)
	return c
}

func line(s *Session, pts ...state.Point) {
	for _, p := range pts {
		s.Drag(p)
	}
	s.Release()
}

func TestNewSessionRejectsBadSize(t *testing.T) {
	s := config.Defaults()
	s.CanvasWidth = 0
	_, err := NewSession(s)
	assert.ErrorIs(t, err, config.ErrInvalidSize)
}

func TestAttachResetsSurface(t *testing.T) {
	_, rec := newSession(t, 120, 80)
	assert.Equal(t, 120, rec.width)
	assert.Equal(t, 80, rec.height)
	assert.Equal(t, 1, rec.resets)
}

func TestFirstDragOnlySetsCursor(t *testing.T) {
	sess, rec := newSession(t, 100, 100)
	sess.Drag(state.Point{X: 10, Y: 10})
	assert.Empty(t, rec.segments)
	assert.Empty(t, sess.Strokes())

	sess.Drag(state.Point{X: 20, Y: 10})
	require.Len(t, rec.segments, 1)
	assert.Equal(t, state.Point{X: 10, Y: 10}, rec.segments[0].from)
	assert.Equal(t, state.Point{X: 20, Y: 10}, rec.segments[0].to)
}

func TestReleaseEndsChain(t *testing.T) {
	sess, rec := newSession(t, 100, 100)
	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 10})
	sess.Drag(state.Point{X: 50, Y: 50})
	sess.Drag(state.Point{X: 60, Y: 50})
	sess.Release()

	require.Len(t, rec.segments, 2)
	assert.Equal(t, state.Point{X: 50, Y: 50}, rec.segments[1].from)
	assert.Len(t, sess.Strokes(), 2)
}

func TestSurfacesReceiveIdenticalSegments(t *testing.T) {
	sess, rec := newSession(t, 100, 100)
	sess.SetBrushWidth(5)
	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 40, Y: 40}, state.Point{X: 80, Y: 20})
	sess.ToggleEraser()
	line(sess, state.Point{X: 10, Y: 90}, state.Point{X: 90, Y: 90})

	require.Len(t, rec.segments, 3)
	for _, seg := range rec.segments {
		assert.Equal(t, 5.0, seg.width)
		// every endpoint is painted on the raster in the color sent to the surface
		assert.Equal(t, seg.color, pixel(t, sess, int(seg.to.X), int(seg.to.Y)))
		assert.Equal(t, seg.color, pixel(t, sess, int(seg.from.X), int(seg.from.Y)))
	}
	assert.Equal(t, state.White, rec.segments[2].color)
}

func TestEraserScenario(t *testing.T) {
	sess, _ := newSession(t, 100, 40)
	sess.SetBrushWidth(3)

	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 10})
	assert.Equal(t, state.Black, pixel(t, sess, 30, 10))

	sess.ToggleEraser()
	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 10})
	assert.Equal(t, state.White, pixel(t, sess, 30, 10))

	sess.ToggleEraser()
	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 10})
	assert.Equal(t, state.Black, pixel(t, sess, 30, 10))
}

func TestEyedropperAdoptsPaintedColor(t *testing.T) {
	sess, _ := newSession(t, 100, 100)
	teal := color.NRGBA{R: 12, G: 140, B: 133, A: 255}
	sess.ChooseColor(teal)
	sess.SetBrushWidth(6)
	line(sess, state.Point{X: 20, Y: 50}, state.Point{X: 80, Y: 50})

	sess.ChooseColor(state.Black)
	got, err := sess.PickColor(50, 50)
	require.NoError(t, err)
	assert.Equal(t, teal, got)
	assert.Equal(t, teal, sess.Tools().Color())
}

func TestEyedropperExactAtDefaultWidth(t *testing.T) {
	sess, _ := newSession(t, 100, 40)
	red := color.NRGBA{R: 255, A: 255}
	sess.ChooseColor(red)
	require.Equal(t, 1.0, sess.Tools().Width())
	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 50, Y: 10})

	assert.Equal(t, state.White, pixel(t, sess, 30, 9))
	sess.ChooseColor(state.Black)
	got, err := sess.PickColor(30, 10)
	require.NoError(t, err)
	assert.Equal(t, red, got)

	// odd width on a diagonal still yields the exact color at its endpoints
	sess.SetBrushWidth(3)
	sess.ChooseColor(red)
	line(sess, state.Point{X: 60, Y: 5}, state.Point{X: 90, Y: 35})
	sess.ChooseColor(state.Black)
	got, err = sess.PickColor(75, 20)
	require.NoError(t, err)
	assert.Equal(t, red, got)
}

func TestEyedropperOutsideIsNoop(t *testing.T) {
	sess, _ := newSession(t, 10, 10)
	var notified int
	sess.OnToolChange = func(*state.Tools) { notified++ }

	_, err := sess.PickColor(10, 3)
	assert.Error(t, err)
	assert.Equal(t, state.Black, sess.Tools().Color())
	assert.Zero(t, notified)
}

func TestEyedropperKeepsEraserMode(t *testing.T) {
	sess, _ := newSession(t, 10, 10)
	sess.ToggleEraser()
	_, err := sess.PickColor(1, 1)
	require.NoError(t, err)
	assert.True(t, sess.Tools().Erasing())
}

func TestClear(t *testing.T) {
	sess, rec := newSession(t, 60, 60)
	var changed [][2]int
	sess.OnCanvasChange = func(w, h int) { changed = append(changed, [2]int{w, h}) }
	sess.SetBrushWidth(10)
	line(sess, state.Point{X: 10, Y: 30}, state.Point{X: 50, Y: 30})
	require.Equal(t, state.Black, pixel(t, sess, 30, 30))

	sess.Clear()
	assert.Equal(t, state.White, pixel(t, sess, 30, 30))
	assert.Empty(t, rec.segments)
	assert.Empty(t, sess.Strokes())
	assert.Equal(t, [][2]int{{60, 60}}, changed)
	// tool state survives a clear
	assert.Equal(t, 10.0, sess.Tools().Width())
}

func TestResize(t *testing.T) {
	sess, rec := newSession(t, 60, 60)
	line(sess, state.Point{X: 10, Y: 30}, state.Point{X: 50, Y: 30})

	require.NoError(t, sess.Resize(33, 21))
	w, h := sess.Size()
	assert.Equal(t, 33, w)
	assert.Equal(t, 21, h)
	assert.Equal(t, 33, sess.Raster().Width())
	assert.Equal(t, 21, sess.Raster().Height())
	assert.Equal(t, 33, rec.width)
	assert.Equal(t, 21, rec.height)
	for y := 0; y < 21; y++ {
		for x := 0; x < 33; x++ {
			require.Equal(t, state.White, pixel(t, sess, x, y))
		}
	}
}

func TestResizeRejectsInvalid(t *testing.T) {
	sess, rec := newSession(t, 60, 60)
	line(sess, state.Point{X: 10, Y: 30}, state.Point{X: 50, Y: 30})
	resets := rec.resets

	for _, sz := range [][2]int{{0, 10}, {10, -4}, {config.MaxDimension + 1, 10}} {
		assert.ErrorIs(t, sess.Resize(sz[0], sz[1]), config.ErrInvalidSize)
	}
	w, h := sess.Size()
	assert.Equal(t, 60, w)
	assert.Equal(t, 60, h)
	assert.Equal(t, resets, rec.resets)
	assert.Len(t, sess.Strokes(), 1)
}

func TestResizeMidDragStartsFresh(t *testing.T) {
	sess, rec := newSession(t, 60, 60)
	sess.Drag(state.Point{X: 5, Y: 5})
	require.NoError(t, sess.Resize(40, 40))
	sess.Drag(state.Point{X: 20, Y: 20})
	assert.Empty(t, rec.segments)
}

func TestBrushWidthNotifies(t *testing.T) {
	sess, _ := newSession(t, 10, 10)
	var widths []float64
	sess.OnToolChange = func(tl *state.Tools) { widths = append(widths, tl.Width()) }

	assert.Equal(t, 5.0, sess.SetBrushWidth(5))
	sess.SetBrushWidth(5)
	assert.Equal(t, 10.0, sess.SetBrushWidth(25))
	assert.Equal(t, []float64{5, 10}, widths)
}

func TestSaveRoundTrip(t *testing.T) {
	sess, _ := newSession(t, 50, 30)
	sess.ChooseColor(color.NRGBA{R: 255, G: 100, A: 255})
	sess.SetBrushWidth(2)
	line(sess, state.Point{X: 3, Y: 3}, state.Point{X: 47, Y: 27})

	var buf bytes.Buffer
	require.NoError(t, sess.Save(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	for y := 0; y < 30; y++ {
		for x := 0; x < 50; x++ {
			require.Equal(t, pixel(t, sess, x, y), state.Opaque(decoded.At(x, y)))
		}
	}
}

func TestSaveFile(t *testing.T) {
	sess, _ := newSession(t, 10, 10)
	path, err := sess.SaveFile(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))

	_, err = sess.SaveFile("")
	assert.Error(t, err)
}

func TestOnStroke(t *testing.T) {
	sess, _ := newSession(t, 100, 100)
	var totals []int
	sess.OnStroke = func(st state.Stroke, total int) {
		assert.Equal(t, 1, st.Segments())
		totals = append(totals, total)
	}

	line(sess, state.Point{X: 10, Y: 10}, state.Point{X: 20, Y: 10})
	line(sess, state.Point{X: 30, Y: 30})
	sess.Release()
	line(sess, state.Point{X: 10, Y: 50}, state.Point{X: 20, Y: 50})
	assert.Equal(t, []int{1, 2}, totals)
}
