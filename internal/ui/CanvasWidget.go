package ui

import (
	"LocalPaint/internal/paint"
	"LocalPaint/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"
)

// CanvasWidget shows the drawing and turns pointer input into session calls:
// primary drag paints, release ends the stroke, secondary tap samples a color.
type CanvasWidget struct {
	widget.BaseWidget
	session *paint.Session
	display *surface
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ fyne.SecondaryTappable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)

// NewCanvasWidget attaches a display surface to session and returns the
// widget showing it.
func NewCanvasWidget(session *paint.Session) *CanvasWidget {
	c := &CanvasWidget{
		session: session,
		display: newSurface(),
	}
	session.Attach(c.display)
	c.ExtendBaseWidget(c)
	return c
}

func toPoint(pos fyne.Position) state.Point {
	return state.Point{X: pos.X, Y: pos.Y}
}

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) {
	c.session.Drag(toPoint(e.Position))
	c.Refresh()
}

func (c *CanvasWidget) DragEnd() {
	c.session.Release()
}

func (c *CanvasWidget) MouseDown(*desktop.MouseEvent) {}

func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.session.Release()
	}
}

// TappedSecondary is the eyedropper.
func (c *CanvasWidget) TappedSecondary(e *fyne.PointEvent) {
	x, y := int(e.Position.X), int(e.Position.Y)
	if _, err := c.session.PickColor(x, y); err != nil {
		log.WithFields(log.Fields{"x": x, "y": y}).Debug("eyedropper outside canvas")
	}
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	return &canvasWidgetRenderer{canvas: c}
}

type canvasWidgetRenderer struct {
	canvas *CanvasWidget
}

func (r *canvasWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.canvas.display.objects()
}

func (r *canvasWidgetRenderer) Refresh() {
	canvas.Refresh(r.canvas)
}

func (r *canvasWidgetRenderer) Layout(fyne.Size) {
	r.canvas.display.background.Resize(r.canvas.display.size)
}

func (r *canvasWidgetRenderer) MinSize() fyne.Size {
	return r.canvas.display.size
}

func (r *canvasWidgetRenderer) Destroy() {}
