package ui

import (
	"image/color"
	"strconv"

	"LocalPaint/internal/config"
	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

const (
	labelEraser = "Eraser"
	labelBrush  = "Brush"
)

// --- Custom Widget for the current color ---
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) SetColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) Color() color.Color {
	return s.rect.FillColor
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// brushControls keeps the preset selector and the slider showing the same
// width as the session.
type brushControls struct {
	presets *widget.Select
	slider  *widget.Slider
	apply   func(float64) float64
	syncing bool
}

func newBrushControls(width float64, apply func(float64) float64) *brushControls {
	options := make([]string, 0, len(config.BrushPresets))
	for _, p := range config.BrushPresets {
		options = append(options, strconv.Itoa(p))
	}

	b := &brushControls{apply: apply}
	b.slider = widget.NewSlider(state.MinWidth, state.MaxWidth)
	b.slider.Step = 1
	b.slider.OnChanged = b.set
	b.presets = widget.NewSelect(options, func(s string) {
		w, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		b.set(float64(w))
	})
	b.set(width)
	return b
}

func (b *brushControls) set(w float64) {
	if b.syncing {
		return
	}
	b.syncing = true
	defer func() { b.syncing = false }()

	w = b.apply(w)
	if b.slider.Value != w {
		b.slider.SetValue(w)
	}
	label := strconv.Itoa(int(w))
	if isPreset(w) {
		if b.presets.Selected != label {
			b.presets.SetSelected(label)
		}
	} else if b.presets.Selected != "" {
		b.presets.ClearSelected()
	}
}

func isPreset(w float64) bool {
	for _, p := range config.BrushPresets {
		if float64(p) == w {
			return true
		}
	}
	return false
}

// --- The Main Toolbar ---
func (p *Painter) newToolbar() fyne.CanvasObject {
	tools := p.session.Tools()

	p.swatch = newColorSwatch(tools.Color(), p.ChooseColor)
	p.eraser = widget.NewButton(labelEraser, p.ToggleEraser)
	p.brush = newBrushControls(tools.Width(), p.session.SetBrushWidth)

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), p.brush.slider)

	return container.NewHBox(
		widget.NewButton("Clear", p.Clear),
		widget.NewButton("Choose color", p.ChooseColor),
		widget.NewButton("Save", p.Save),
		widget.NewButton("Export PDF", p.ExportPDF),
		widget.NewButton("Canvas size", p.PromptSize),
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		p.brush.presets,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		p.swatch,
		layout.NewSpacer(),
		p.eraser,
	)
}

// syncTools mirrors the session's tool state into the toolbar.
func (p *Painter) syncTools(t *state.Tools) {
	p.swatch.SetColor(t.Color())
	if t.Erasing() {
		p.eraser.SetText(labelBrush)
	} else {
		p.eraser.SetText(labelEraser)
	}
	if p.brush.slider.Value != t.Width() {
		p.brush.set(t.Width())
	}
	log.WithFields(log.Fields{"color": t.Color(), "width": t.Width(), "mode": t.Mode()}).Debug("toolbar synced")
}
