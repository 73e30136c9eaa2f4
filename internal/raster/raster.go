// Package raster holds the in-memory RGB copy of the canvas. It is what gets
// sampled by the eyedropper and written out as PNG.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"LocalPaint/internal/state"

	"github.com/fogleman/gg"
	log "github.com/sirupsen/logrus"
)

var ErrOutOfBounds = errors.New("raster: point outside image")

// Image is a white-initialised RGB raster. Segments are drawn aliased with
// round caps, so every painted pixel holds exactly the brush color.
type Image struct {
	dc *gg.Context
}

// New returns a width×height raster filled white. Dimensions must be positive.
func New(width, height int) *Image {
	im := &Image{}
	im.Reset(width, height)
	return im
}

// Reset replaces the raster with a blank white one of the given size.
func (im *Image) Reset(width, height int) {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	im.dc = dc
}

// DrawSegment paints every pixel whose integer coordinate lies within
// width/2 of the segment from→to.
func (im *Image) DrawSegment(from, to state.Point, c color.Color, width float64) {
	im.dc.SetColor(state.Opaque(c))
	r := width / 2
	x0, y0 := float64(from.X), float64(from.Y)
	x1, y1 := float64(to.X), float64(to.Y)

	minX := max(int(math.Floor(math.Min(x0, x1)-r)), 0)
	minY := max(int(math.Floor(math.Min(y0, y1)-r)), 0)
	maxX := min(int(math.Ceil(math.Max(x0, x1)+r)), im.Width()-1)
	maxY := min(int(math.Ceil(math.Max(y0, y1)+r)), im.Height()-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if segmentDistance(float64(x), float64(y), x0, y0, x1, y1) <= r+1e-9 {
				im.dc.SetPixel(x, y)
			}
		}
	}
}

// segmentDistance is the distance from (px, py) to the segment (x0,y0)-(x1,y1).
func segmentDistance(px, py, x0, y0, x1, y1 float64) float64 {
	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x0, py-y0)
	}
	t := ((px-x0)*dx + (py-y0)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x0+t*dx), py-(y0+t*dy))
}

func (im *Image) Width() int  { return im.dc.Width() }
func (im *Image) Height() int { return im.dc.Height() }

// At samples the pixel at (x, y).
func (im *Image) At(x, y int) (color.NRGBA, error) {
	if x < 0 || y < 0 || x >= im.Width() || y >= im.Height() {
		return color.NRGBA{}, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfBounds, x, y, im.Width(), im.Height())
	}
	return state.Opaque(im.dc.Image().At(x, y)), nil
}

// Image exposes the backing pixels. Callers must not modify them.
func (im *Image) Image() image.Image {
	return im.dc.Image()
}

// EncodePNG writes the raster to w in PNG format.
func (im *Image) EncodePNG(w io.Writer) error {
	return im.dc.EncodePNG(w)
}

// SavePNG writes the raster to path, adding a ".png" suffix when it is
// missing, and returns the path actually written.
func (im *Image) SavePNG(path string) (string, error) {
	path = PNGPath(path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := im.EncodePNG(f); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "width": im.Width(), "height": im.Height()}).Info("raster saved")
	return path, nil
}

// PNGPath appends ".png" to path unless it already ends with it.
func PNGPath(path string) string {
	return WithSuffix(path, ".png")
}

// WithSuffix appends ext to path unless it already ends with it, ignoring case.
func WithSuffix(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), ext) {
		return path
	}
	return path + ext
}
