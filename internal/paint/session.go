// Package paint implements the drawing session: tool state, the stroke
// cursor, and the surfaces every segment is rendered onto.
package paint

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"LocalPaint/internal/config"
	"LocalPaint/internal/raster"
	"LocalPaint/internal/state"

	log "github.com/sirupsen/logrus"
)

// Renderer is a surface that strokes are drawn onto. The session drives the
// raster and the visible surface through the same calls so they never diverge.
type Renderer interface {
	DrawSegment(from, to state.Point, c color.Color, width float64)
	Reset(width, height int)
}

var _ Renderer = (*raster.Image)(nil)

// Session is a single drawing session. All methods are expected to be called
// from the UI event thread.
type Session struct {
	width, height int

	raster   *raster.Image
	surfaces []Renderer
	tools    *state.Tools
	strokes  *state.StrokeLog

	cursor    state.Point
	hasCursor bool

	// OnToolChange is called after color, width or eraser mode change.
	OnToolChange func(*state.Tools)
	// OnStroke is called when a drag ends with at least one segment drawn,
	// with the number of strokes on the canvas.
	OnStroke func(st state.Stroke, total int)
	// OnCanvasChange is called after clear or resize with the new size.
	OnCanvasChange func(width, height int)
}

// NewSession creates a session sized and tooled from s. Extra surfaces are
// reset to the canvas size immediately.
func NewSession(s config.Settings, surfaces ...Renderer) (*Session, error) {
	if err := config.ValidateSize(s.CanvasWidth, s.CanvasHeight); err != nil {
		return nil, err
	}
	sess := &Session{
		width:   s.CanvasWidth,
		height:  s.CanvasHeight,
		raster:  raster.New(s.CanvasWidth, s.CanvasHeight),
		tools:   state.NewTools(s.Color, s.BrushWidth),
		strokes: state.NewStrokeLog(),
	}
	for _, r := range surfaces {
		sess.Attach(r)
	}
	return sess, nil
}

// Attach adds a surface that mirrors the raster from now on.
func (s *Session) Attach(r Renderer) {
	r.Reset(s.width, s.height)
	s.surfaces = append(s.surfaces, r)
}

func (s *Session) Size() (width, height int) { return s.width, s.height }
func (s *Session) Raster() *raster.Image      { return s.raster }
func (s *Session) Tools() *state.Tools        { return s.tools }
func (s *Session) Strokes() []state.Stroke    { return s.strokes.Strokes() }

// Drag handles pointer motion with the primary button held. The first event
// of a drag only sets the cursor; later ones draw a segment from it.
func (s *Session) Drag(p state.Point) {
	if s.hasCursor {
		c, w := s.tools.Color(), s.tools.Width()
		s.raster.DrawSegment(s.cursor, p, c, w)
		for _, r := range s.surfaces {
			r.DrawSegment(s.cursor, p, c, w)
		}
		s.strokes.Extend(s.cursor, p, c, w)
	}
	s.cursor = p
	s.hasCursor = true
}

// Release ends the current stroke.
func (s *Session) Release() {
	s.hasCursor = false
	st, ok := s.strokes.End()
	if !ok {
		return
	}
	log.WithFields(log.Fields{"id": st.ID, "segments": st.Segments(), "color": st.Color}).Debug("stroke finished")
	if s.OnStroke != nil {
		s.OnStroke(st, s.strokes.Len())
	}
}

// Clear wipes every surface and starts a fresh white raster.
func (s *Session) Clear() {
	s.reset(s.width, s.height)
	log.WithFields(log.Fields{"width": s.width, "height": s.height}).Info("canvas cleared")
}

// Resize recreates the canvas at the new size. The drawing is discarded.
// Invalid sizes leave the canvas unchanged.
func (s *Session) Resize(width, height int) error {
	if err := config.ValidateSize(width, height); err != nil {
		log.WithError(err).Warn("resize rejected")
		return err
	}
	s.reset(width, height)
	log.WithFields(log.Fields{"width": width, "height": height}).Info("canvas resized")
	return nil
}

func (s *Session) reset(width, height int) {
	s.width, s.height = width, height
	s.raster.Reset(width, height)
	for _, r := range s.surfaces {
		r.Reset(width, height)
	}
	s.strokes.Reset()
	s.hasCursor = false
	if s.OnCanvasChange != nil {
		s.OnCanvasChange(width, height)
	}
}

// ChooseColor applies a color picked from the color dialog.
func (s *Session) ChooseColor(c color.Color) {
	s.tools.Choose(c)
	log.WithField("color", s.tools.Color()).Debug("color chosen")
	s.toolsChanged()
}

// ToggleEraser switches between drawing and erasing.
func (s *Session) ToggleEraser() state.Mode {
	m := s.tools.ToggleEraser()
	s.toolsChanged()
	return m
}

// PickColor adopts the raster color at (x, y).
func (s *Session) PickColor(x, y int) (color.NRGBA, error) {
	c, err := s.raster.At(x, y)
	if err != nil {
		log.WithError(err).Debug("eyedropper ignored")
		return color.NRGBA{}, err
	}
	s.tools.Pick(c)
	log.WithFields(log.Fields{"x": x, "y": y, "color": c}).Debug("color picked")
	s.toolsChanged()
	return c, nil
}

// SetBrushWidth sets the width used by subsequent segments and returns the
// clamped value.
func (s *Session) SetBrushWidth(w float64) float64 {
	prev := s.tools.Width()
	w = s.tools.SetWidth(w)
	if w != prev {
		log.WithField("width", w).Debug("brush width changed")
		s.toolsChanged()
	}
	return w
}

// Save encodes the raster as PNG to w.
func (s *Session) Save(w io.Writer) error {
	if err := s.raster.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveFile writes the raster to path, adding ".png" when missing.
func (s *Session) SaveFile(path string) (string, error) {
	if path == "" {
		return "", errors.New("save: empty path")
	}
	return s.raster.SavePNG(path)
}

func (s *Session) toolsChanged() {
	if s.OnToolChange != nil {
		s.OnToolChange(s.tools)
	}
}
