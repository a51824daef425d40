package board

import (
	"fmt"
	"time"

	"SketchBoard/internal/geom"
)

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	// PointerCancel aborts the stroke in progress without committing it.
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return fmt.Sprintf("PointerKind(%d)", int(k))
}

// PointerEvent is one input sample from the host, in surface pixels.
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
	Time time.Duration

	Pressure    float64
	HasPressure bool
}

// point converts the event to a logical sample.
func (e PointerEvent) point(tr geom.Transform) geom.Point {
	v := tr.ToLogical(geom.Pixel{X: e.X, Y: e.Y})
	p := geom.Point{Vec: v, T: e.Time}
	if e.HasPressure {
		p = p.WithPressure(e.Pressure)
	}
	return p
}
