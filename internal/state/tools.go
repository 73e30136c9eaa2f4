package state

import (
	"image/color"

	log "github.com/sirupsen/logrus"
)

const (
	MinWidth = 1.0
	MaxWidth = 10.0
)

// Mode is the eraser state machine: a session is either drawing or erasing.
type Mode int

const (
	ModeDraw Mode = iota
	ModeErase
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "draw"
}

// Tools is the active tool state of a drawing session.
//
// Erasing paints white: switching to ModeErase remembers the current color
// and substitutes White, switching back restores it.
type Tools struct {
	color color.NRGBA
	saved color.NRGBA
	width float64
	mode  Mode
}

func NewTools(c color.Color, width float64) *Tools {
	t := &Tools{color: Opaque(c)}
	t.saved = t.color
	t.SetWidth(width)
	return t
}

func (t *Tools) Color() color.NRGBA { return t.color }
func (t *Tools) Width() float64     { return t.width }
func (t *Tools) Mode() Mode         { return t.mode }
func (t *Tools) Erasing() bool      { return t.mode == ModeErase }

// SetWidth sets the brush width, clamped to [MinWidth, MaxWidth], and returns
// the value actually applied.
func (t *Tools) SetWidth(w float64) float64 {
	switch {
	case w < MinWidth:
		w = MinWidth
	case w > MaxWidth:
		w = MaxWidth
	}
	t.width = w
	return w
}

// Choose applies a color picked from the color dialog. Any color other than
// white leaves eraser mode; picking white keeps the current mode.
func (t *Tools) Choose(c color.Color) {
	t.color = Opaque(c)
	if t.color != White && t.mode == ModeErase {
		t.mode = ModeDraw
		log.WithField("color", t.color).Debug("eraser deactivated by color choice")
	}
}

// Pick adopts a sampled color without touching the eraser state.
func (t *Tools) Pick(c color.Color) {
	t.color = Opaque(c)
}

// ToggleEraser flips between drawing and erasing and returns the new mode.
func (t *Tools) ToggleEraser() Mode {
	if t.mode == ModeDraw {
		t.saved = t.color
		t.color = White
		t.mode = ModeErase
	} else {
		t.color = t.saved
		t.mode = ModeDraw
	}
	log.WithFields(log.Fields{"mode": t.mode, "color": t.color}).Debug("eraser toggled")
	return t.mode
}
