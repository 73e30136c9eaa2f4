package ui

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"LocalPaint/internal/config"
	"LocalPaint/internal/paint"
	"LocalPaint/internal/raster"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

// ChooseColor opens the color picker. Cancelling leaves the tools untouched.
func (p *Painter) ChooseColor() {
	d := dialog.NewColorPicker("Choose color", "Brush color", func(c color.Color) {
		p.session.ChooseColor(c)
	}, p.window)
	d.Advanced = true
	d.SetColor(p.session.Tools().Color())
	d.Show()
}

// Save asks for a PNG destination and writes the raster there.
func (p *Painter) Save() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			p.fail("Save failed", err)
			return
		}
		if writer == nil {
			log.Debug("save cancelled")
			return
		}
		p.saveChosen(writer)
	}, p.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	d.SetFileName("drawing.png")
	d.Show()
}

func (p *Painter) saveChosen(writer fyne.URIWriteCloser) {
	p.confirmRedirect(writer, ".png", func() {
		path, err := saveTo(p.session, writer)
		if err != nil {
			p.fail("Save failed", err)
			return
		}
		p.SetStatus("Saved " + path)
		dialog.ShowInformation("Information", "Image saved successfully!", p.window)
	})
}

// confirmRedirect runs write once it is safe to. When the chosen file lacks
// ext and the suffixed file already exists, the user is asked first since the
// save dialog only confirmed the name as typed.
func (p *Painter) confirmRedirect(writer fyne.URIWriteCloser, ext string, write func()) {
	target, redirect := redirectTarget(writer.URI(), ext)
	if !redirect {
		write()
		return
	}
	if _, err := os.Stat(target); err != nil {
		write()
		return
	}
	msg := fmt.Sprintf("%s already exists. Replace it?", filepath.Base(target))
	dialog.ShowConfirm("Replace file?", msg, func(replace bool) {
		if replace {
			write()
			return
		}
		p.abandon(writer)
	}, p.window)
}

// abandon drops a save the user declined to complete.
func (p *Painter) abandon(writer fyne.URIWriteCloser) {
	if err := writer.Close(); err != nil {
		log.WithError(err).Debug("closing abandoned save target")
	}
	removeEmpty(writer.URI().Path())
	log.WithField("uri", writer.URI().String()).Debug("save abandoned")
	p.SetStatus("Save cancelled")
}

// redirectTarget reports the suffixed path a local file chosen without ext
// is written to instead.
func redirectTarget(uri fyne.URI, ext string) (string, bool) {
	if uri.Scheme() != "file" {
		return "", false
	}
	path := uri.Path()
	target := raster.WithSuffix(path, ext)
	return target, target != path
}

// saveTo writes the session raster through writer. Local files chosen
// without a ".png" suffix are written under the suffixed name instead.
func saveTo(session *paint.Session, writer fyne.URIWriteCloser) (string, error) {
	uri := writer.URI()
	if _, redirect := redirectTarget(uri, ".png"); redirect {
		if err := writer.Close(); err != nil {
			log.WithError(err).Warn("closing unsuffixed save target")
		}
		removeEmpty(uri.Path())
		return session.SaveFile(uri.Path())
	}

	if err := session.Save(writer); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", uri, err)
	}
	log.WithField("uri", uri.String()).Info("raster saved")
	return uri.Path(), nil
}

// removeEmpty deletes the placeholder file the save dialog created before we
// redirected the write.
func removeEmpty(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() != 0 {
		return
	}
	if err := os.Remove(path); err != nil {
		log.WithError(err).WithField("path", path).Debug("could not remove placeholder")
	}
}

// PromptSize asks for the canvas height then width and resizes on confirm.
// The confirm button stays disabled until both values are valid.
func (p *Painter) PromptSize() {
	w, h := p.session.Size()
	height := widget.NewEntry()
	height.SetText(strconv.Itoa(h))
	height.Validator = validDimension
	width := widget.NewEntry()
	width.SetText(strconv.Itoa(w))
	width.Validator = validDimension

	items := []*widget.FormItem{
		widget.NewFormItem("Height", height),
		widget.NewFormItem("Width", width),
	}
	dialog.ShowForm("Canvas size", "Resize", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		p.resize(height.Text, width.Text)
	}, p.window)
}

func (p *Painter) resize(heightText, widthText string) {
	w, h, err := parseSize(heightText, widthText)
	if err != nil {
		log.WithError(err).Warn("canvas size rejected")
		p.SetStatus("Invalid canvas size")
		return
	}
	if err := p.session.Resize(w, h); err != nil {
		p.SetStatus("Invalid canvas size")
		return
	}
	p.SetStatus(fmt.Sprintf("Canvas %dx%d", w, h))
}

func validDimension(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if v < 1 || v > config.MaxDimension {
		return fmt.Errorf("must be between 1 and %d", config.MaxDimension)
	}
	return nil
}

// parseSize reads the height and width entries.
func parseSize(heightText, widthText string) (width, height int, err error) {
	height, err = strconv.Atoi(strings.TrimSpace(heightText))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: height %q", config.ErrInvalidSize, heightText)
	}
	width, err = strconv.Atoi(strings.TrimSpace(widthText))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: width %q", config.ErrInvalidSize, widthText)
	}
	if err := config.ValidateSize(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func (p *Painter) fail(status string, err error) {
	log.WithError(err).Error(status)
	p.SetStatus(status)
	dialog.ShowError(err, p.window)
}
