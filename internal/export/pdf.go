// Package export renders the stroke log to formats other than the raster.
package export

import (
	"fmt"
	"io"
	"os"

	"LocalPaint/internal/raster"
	"LocalPaint/internal/state"

	"github.com/jung-kurt/gofpdf"
	log "github.com/sirupsen/logrus"
)

// WritePDF draws strokes as vector lines on a single page the size of the
// canvas, one point per pixel.
func WritePDF(w io.Writer, width, height int, strokes []state.Stroke) error {
	p := newPDF(width, height, strokes)
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the PDF to path, adding ".pdf" when missing, and returns the
// path actually written.
func SavePDF(path string, width, height int, strokes []state.Stroke) (string, error) {
	path = raster.WithSuffix(path, ".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(f, width, height, strokes); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	log.WithFields(log.Fields{"path": path, "strokes": len(strokes)}).Info("pdf exported")
	return path, nil
}

func newPDF(width, height int, strokes []state.Stroke) *gofpdf.Fpdf {
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range Visible(strokes, width, height) {
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		p.SetLineWidth(st.Width)
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				float64(st.Points[i-1].X), float64(st.Points[i-1].Y),
				float64(st.Points[i].X), float64(st.Points[i].Y),
			)
		}
	}
	return p
}

// Visible returns the strokes that have at least one segment and touch the
// width×height page.
func Visible(strokes []state.Stroke, width, height int) []state.Stroke {
	out := make([]state.Stroke, 0, len(strokes))
	for _, st := range strokes {
		if st.Segments() == 0 {
			continue
		}
		min, max := st.Bounds()
		if max.X < 0 || max.Y < 0 || min.X > float32(width) || min.Y > float32(height) {
			continue
		}
		out = append(out, st)
	}
	return out
}
