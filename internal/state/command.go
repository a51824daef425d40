package state

import (
	"fmt"
	"slices"

	"SketchBoard/internal/geom"
)

// Command is a discrete, invertible change to a Document. Every command
// carries the state it needs to be inverted, captured when it is built,
// so Invert never looks at the document.
type Command interface {
	fmt.Stringer
	// Invert returns the command that undoes this one.
	Invert() Command

	apply(d *Document)
}

// AddStroke inserts Stroke at Index.
type AddStroke struct {
	Index  int
	Stroke Stroke
}

// NewAddStroke appends s on top of the current strokes of d.
func NewAddStroke(d *Document, s Stroke) AddStroke {
	return AddStroke{Index: d.Len(), Stroke: s}
}

func (c AddStroke) String() string  { return fmt.Sprintf("add stroke %s at %d", c.Stroke.ID, c.Index) }
func (c AddStroke) Invert() Command { return RemoveStroke(c) }

func (c AddStroke) apply(d *Document) {
	d.checkIndex("AddStroke", c.Index, len(d.strokes))
	d.strokes = slices.Insert(d.strokes, c.Index, c.Stroke)
}

// RemoveStroke deletes the stroke at Index. Stroke is the removed stroke,
// kept for the inverse.
type RemoveStroke struct {
	Index  int
	Stroke Stroke
}

// NewRemoveStroke captures the stroke at index i of d. An out of range
// index is a precondition violation.
func NewRemoveStroke(d *Document, i int) RemoveStroke {
	return RemoveStroke{Index: i, Stroke: d.Stroke(i)}
}

func (c RemoveStroke) String() string  { return fmt.Sprintf("remove stroke %s at %d", c.Stroke.ID, c.Index) }
func (c RemoveStroke) Invert() Command { return AddStroke(c) }

func (c RemoveStroke) apply(d *Document) {
	d.checkIndex("RemoveStroke", c.Index, len(d.strokes)-1)
	if got := d.strokes[c.Index].ID; got != c.Stroke.ID {
		violate("RemoveStroke", "index %d holds stroke %s, want %s", c.Index, got, c.Stroke.ID)
	}
	d.strokes = slices.Delete(d.strokes, c.Index, c.Index+1)
}

// Clear removes every stroke. Previous holds the strokes present when the
// command was built.
type Clear struct {
	Previous []Stroke
}

// NewClear captures the current strokes of d.
func NewClear(d *Document) Clear {
	return Clear{Previous: d.Strokes()}
}

func (c Clear) String() string  { return fmt.Sprintf("clear %d strokes", len(c.Previous)) }
func (c Clear) Invert() Command { return restore(c) }

func (c Clear) apply(d *Document) {
	d.strokes = nil
}

// restore is the inverse of Clear.
type restore struct {
	Previous []Stroke
}

func (c restore) String() string  { return fmt.Sprintf("restore %d strokes", len(c.Previous)) }
func (c restore) Invert() Command { return Clear(c) }

func (c restore) apply(d *Document) {
	if len(d.strokes) != 0 {
		violate("Restore", "document holds %d strokes", len(d.strokes))
	}
	d.strokes = slices.Clone(c.Previous)
}

// Resize changes the logical canvas size. Strokes are kept as they are.
type Resize struct {
	Old, New geom.Size
}

// NewResize captures the current size of d.
func NewResize(d *Document, size geom.Size) Resize {
	return Resize{Old: d.Size(), New: size}
}

func (c Resize) String() string {
	return fmt.Sprintf("resize %gx%g to %gx%g", c.Old.W, c.Old.H, c.New.W, c.New.H)
}

func (c Resize) Invert() Command { return Resize{Old: c.New, New: c.Old} }

func (c Resize) apply(d *Document) {
	if c.New.Empty() {
		violate("Resize", "invalid size %gx%g", c.New.W, c.New.H)
	}
	d.size = c.New
}
