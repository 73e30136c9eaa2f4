package ui

import (
	"fmt"

	"LocalPaint/internal/config"
	"LocalPaint/internal/paint"
	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

// Painter is the main window: toolbar, canvas and status bar around one
// drawing session.
type Painter struct {
	window   fyne.Window
	prefs    fyne.Preferences
	settings config.Settings
	session  *paint.Session

	board     *CanvasWidget
	clip      *container.Scroll
	center    *fyne.Container
	scroll    *container.Scroll
	swatch    *colorSwatch
	eraser    *widget.Button
	brush     *brushControls
	statusBar *widget.Label
}

// NewPainter builds the UI for window. prefs may be nil.
func NewPainter(window fyne.Window, settings config.Settings, prefs fyne.Preferences) (*Painter, error) {
	session, err := paint.NewSession(settings)
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	p := &Painter{
		window:    window,
		prefs:     prefs,
		settings:  settings,
		session:   session,
		statusBar: widget.NewLabel("Ready"),
	}
	p.board = NewCanvasWidget(session)
	p.clip = container.NewScroll(p.board)
	p.clip.Direction = container.ScrollNone
	p.center = container.NewCenter(p.clip)
	p.scroll = container.NewScroll(p.center)
	p.fitCanvas()

	toolbar := p.newToolbar()
	session.OnToolChange = func(t *state.Tools) {
		p.syncTools(t)
		p.settings.BrushWidth = t.Width()
		p.settings.Store(p.prefs)
	}
	session.OnStroke = func(_ state.Stroke, total int) {
		p.SetStatus(fmt.Sprintf("Strokes: %d", total))
	}
	session.OnCanvasChange = func(w, h int) {
		p.fitCanvas()
		p.settings.CanvasWidth, p.settings.CanvasHeight = w, h
		p.settings.Store(p.prefs)
	}

	window.SetContent(container.NewBorder(toolbar, p.statusBar, nil, nil, p.scroll))
	p.addShortcuts()
	return p, nil
}

func (p *Painter) Session() *paint.Session { return p.session }

// fitCanvas sizes the clip area to the canvas and lays the center out again;
// its own size does not change when the canvas shrinks.
func (p *Painter) fitCanvas() {
	w, h := p.session.Size()
	size := fyne.NewSize(float32(w), float32(h))
	p.clip.SetMinSize(size)
	p.clip.Resize(size)
	p.board.Resize(size)
	p.board.Refresh()
	p.center.Layout.Layout(p.center.Objects, p.center.Size())
	p.center.Refresh()
	p.scroll.Refresh()
}

func (p *Painter) SetStatus(text string) {
	p.statusBar.SetText(text)
}

func (p *Painter) addShortcuts() {
	mod := fyne.KeyModifierShortcutDefault
	bind := func(key fyne.KeyName, action func()) {
		p.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) {
			action()
		})
	}
	bind(fyne.KeyS, p.Save)
	bind(fyne.KeyP, p.ChooseColor)
	bind(fyne.KeyE, p.ToggleEraser)
	bind(fyne.KeyL, p.Clear)
}

// Clear wipes the drawing.
func (p *Painter) Clear() {
	p.session.Clear()
	p.SetStatus("Canvas cleared")
}

// ToggleEraser switches between brush and eraser.
func (p *Painter) ToggleEraser() {
	if p.session.ToggleEraser() == state.ModeErase {
		p.SetStatus("Eraser on")
	} else {
		p.SetStatus("Brush on")
	}
}

// RunApp opens the main window and blocks until it is closed.
func RunApp() {
	myApp := app.NewWithID(config.AppID)
	settings := config.Load(myApp.Preferences())
	log.SetLevel(settings.LogLevel)

	myWindow := myApp.NewWindow(config.Title)
	if _, err := NewPainter(myWindow, settings, myApp.Preferences()); err != nil {
		log.WithError(err).Fatal("could not create painter")
	}
	myWindow.Resize(fyne.NewSize(float32(settings.CanvasWidth)+200, float32(settings.CanvasHeight)+120))
	log.WithFields(log.Fields{"width": settings.CanvasWidth, "height": settings.CanvasHeight}).Info("starting")
	myWindow.ShowAndRun()
}
