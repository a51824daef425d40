// Package smooth turns raw pointer samples into smoothed stroke geometry.
package smooth

import (
	"slices"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Options tune the capture filter and the simplification pass.
type Options struct {
	// Tolerance is the Douglas-Peucker tolerance in logical units.
	Tolerance float64
	// MinMovement is the smallest distance from the previous sample that a
	// new sample must move to be recorded.
	MinMovement float64
}

// DefaultOptions returns a tolerance of 1.5 and a minimum movement of 1 unit.
func DefaultOptions() Options {
	return Options{Tolerance: 1.5, MinMovement: 1}
}

// capture is the Capturing state: the raw buffer of the stroke being drawn.
type capture struct {
	raw   []geom.Point
	style state.Style
}

// Smoother is the capture state machine: Idle until Begin, Capturing until
// End or Cancel. A nil capture is the Idle state.
//
// A Smoother is owned by a single event loop and is not safe for concurrent use.
type Smoother struct {
	opts Options
	cur  *capture

	// NewID names finished strokes. Defaults to state.NewStrokeID.
	NewID func() string
}

// New returns an idle smoother.
func New(opts Options) *Smoother {
	return &Smoother{opts: opts, NewID: state.NewStrokeID}
}

func (s *Smoother) Options() Options { return s.opts }

// SetOptions changes the options for the next samples and strokes.
func (s *Smoother) SetOptions(opts Options) { s.opts = opts }

// Capturing reports whether a stroke is in progress.
func (s *Smoother) Capturing() bool { return s.cur != nil }

// Begin starts a new stroke at p drawn with style.
func (s *Smoother) Begin(p geom.Point, style state.Style) {
	if s.cur != nil {
		state.Violate("Smoother.Begin", "a stroke is already being captured")
	}
	s.cur = &capture{raw: []geom.Point{p}, style: style}
}

// Add records p. Samples older than the previous one, or closer to it than
// the minimum movement, are dropped and Add returns false.
func (s *Smoother) Add(p geom.Point) bool {
	if s.cur == nil {
		state.Violate("Smoother.Add", "no stroke is being captured")
	}
	last := s.cur.raw[len(s.cur.raw)-1]
	if p.T < last.T {
		return false
	}
	if p.Dist(last.Vec) < s.opts.MinMovement {
		return false
	}
	s.cur.raw = append(s.cur.raw, p)
	return true
}

// Points returns a copy of the raw samples of the stroke in progress.
func (s *Smoother) Points() []geom.Point {
	if s.cur == nil {
		return nil
	}
	return slices.Clone(s.cur.raw)
}

// Preview returns the stroke in progress as it would be finished right now.
// The result has no ID.
func (s *Smoother) Preview() (state.Stroke, bool) {
	if s.cur == nil {
		return state.Stroke{}, false
	}
	return s.stroke(""), true
}

// End finishes the stroke and returns to Idle.
func (s *Smoother) End() state.Stroke {
	if s.cur == nil {
		state.Violate("Smoother.End", "no stroke is being captured")
	}
	st := s.stroke(s.NewID())
	s.cur = nil
	return st
}

// Cancel drops the stroke in progress, if any, and returns to Idle.
func (s *Smoother) Cancel() {
	s.cur = nil
}

func (s *Smoother) stroke(id string) state.Stroke {
	raw := slices.Clone(s.cur.raw)
	return state.Stroke{
		ID:        id,
		Points:    raw,
		Path:      Build(raw, s.opts.Tolerance),
		Style:     s.cur.style,
		Tolerance: s.opts.Tolerance,
	}
}
