package state

import (
	"image/color"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// StrokeLog records the strokes drawn since the canvas was last cleared.
type StrokeLog struct {
	strokes []Stroke
	current *Stroke
	mu      sync.RWMutex
}

func NewStrokeLog() *StrokeLog {
	return &StrokeLog{strokes: make([]Stroke, 0)}
}

// Extend appends the segment from→to to the open stroke, opening one at from
// if needed. A color or width change mid-drag starts a new stroke.
func (l *StrokeLog) Extend(from, to Point, c color.NRGBA, width float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current != nil && (l.current.Color != c || l.current.Width != width) {
		l.closeLocked()
	}
	if l.current == nil {
		l.current = &Stroke{
			ID:     uuid.NewString(),
			Points: []Point{from},
			Color:  c,
			Width:  width,
			Time:   time.Now(),
		}
	}
	l.current.Points = append(l.current.Points, to)
}

// End closes the open stroke. Strokes without a segment are dropped.
func (l *StrokeLog) End() (Stroke, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closeLocked()
}

func (l *StrokeLog) closeLocked() (Stroke, bool) {
	s := l.current
	l.current = nil
	if s == nil || s.Segments() == 0 {
		return Stroke{}, false
	}
	l.strokes = append(l.strokes, *s)
	log.WithFields(log.Fields{"id": s.ID, "segments": s.Segments()}).Debug("stroke recorded")
	return *s, true
}

// Strokes returns a copy of the finished strokes in drawing order.
func (l *StrokeLog) Strokes() []Stroke {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Stroke, len(l.strokes))
	copy(out, l.strokes)
	return out
}

func (l *StrokeLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.strokes)
}

// Reset forgets every stroke, including one still being drawn.
func (l *StrokeLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.strokes = make([]Stroke, 0)
	l.current = nil
}
