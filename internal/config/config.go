// Package config holds the application settings. Values persist through the
// fyne preferences store; there is no config file.
package config

import (
	"errors"
	"fmt"
	"image/color"

	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	log "github.com/sirupsen/logrus"
)

const (
	AppID = "io.localpaint.app"
	Title = "Paint"

	DefaultWidth  = 600
	DefaultHeight = 400
	MaxDimension  = 10000

	keyCanvasWidth  = "canvas.width"
	keyCanvasHeight = "canvas.height"
	keyBrushWidth   = "brush.width"
	keyLogLevel     = "log_level"
)

var ErrInvalidSize = errors.New("invalid canvas size")

// BrushPresets are the widths offered by the preset selector.
var BrushPresets = []int{1, 2, 5, 10}

type Settings struct {
	CanvasWidth  int
	CanvasHeight int
	BrushWidth   float64
	Color        color.NRGBA
	LogLevel     log.Level
}

func Defaults() Settings {
	return Settings{
		CanvasWidth:  DefaultWidth,
		CanvasHeight: DefaultHeight,
		BrushWidth:   state.MinWidth,
		Color:        state.Black,
		LogLevel:     log.InfoLevel,
	}
}

// ValidateSize rejects canvas dimensions outside [1, MaxDimension].
func ValidateSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d, dimensions must be positive", ErrInvalidSize, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrInvalidSize, width, height, MaxDimension)
	}
	return nil
}

// Load reads persisted settings, falling back to the defaults for anything
// missing or invalid.
func Load(prefs fyne.Preferences) Settings {
	s := Defaults()
	if prefs == nil {
		return s
	}

	w := prefs.IntWithFallback(keyCanvasWidth, s.CanvasWidth)
	h := prefs.IntWithFallback(keyCanvasHeight, s.CanvasHeight)
	if err := ValidateSize(w, h); err != nil {
		log.WithError(err).Warn("ignoring stored canvas size")
	} else {
		s.CanvasWidth, s.CanvasHeight = w, h
	}

	bw := prefs.FloatWithFallback(keyBrushWidth, s.BrushWidth)
	if bw >= state.MinWidth && bw <= state.MaxWidth {
		s.BrushWidth = bw
	} else {
		log.WithField("width", bw).Warn("ignoring stored brush width")
	}

	if lvl, err := log.ParseLevel(prefs.StringWithFallback(keyLogLevel, s.LogLevel.String())); err == nil {
		s.LogLevel = lvl
	} else {
		log.WithError(err).Warn("ignoring stored log level")
	}
	return s
}

// Store persists the canvas size and brush width.
func (s Settings) Store(prefs fyne.Preferences) {
	if prefs == nil {
		return
	}
	prefs.SetInt(keyCanvasWidth, s.CanvasWidth)
	prefs.SetInt(keyCanvasHeight, s.CanvasHeight)
	prefs.SetFloat(keyBrushWidth, s.BrushWidth)
}
