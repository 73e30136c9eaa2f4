package ui

import (
	"fmt"

	"LocalPaint/internal/export"
	"LocalPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	log "github.com/sirupsen/logrus"
)

// ExportPDF asks for a destination and writes the strokes as a vector PDF.
func (p *Painter) ExportPDF() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			p.fail("Export failed", err)
			return
		}
		if writer == nil {
			return
		}
		p.confirmRedirect(writer, ".pdf", func() {
			path, err := exportTo(p.session, writer)
			if err != nil {
				p.fail("Export failed", err)
				return
			}
			p.SetStatus(fmt.Sprintf("Exported %d strokes to %s", len(p.session.Strokes()), path))
		})
	}, p.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	d.SetFileName("drawing.pdf")
	d.Show()
}

func exportTo(session *paint.Session, writer fyne.URIWriteCloser) (string, error) {
	w, h := session.Size()
	strokes := session.Strokes()
	uri := writer.URI()
	if uri.Scheme() == "file" {
		if err := writer.Close(); err != nil {
			log.WithError(err).Warn("closing export target")
		}
		removeEmpty(uri.Path())
		return export.SavePDF(uri.Path(), w, h, strokes)
	}

	if err := export.WritePDF(writer, w, h, strokes); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", uri, err)
	}
	return uri.Path(), nil
}
