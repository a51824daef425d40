package history

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

func stroke(id string, x float64) state.Stroke {
	k := []geom.Point{geom.NewPoint(x, 0, 0), geom.NewPoint(x+10, 5, 1)}
	return state.Stroke{
		ID:     id,
		Points: k,
		Path:   geom.Path{Knots: k, Segments: []geom.Cubic{{P0: k[0].Vec, C1: k[0].Vec, C2: k[1].Vec, P3: k[1].Vec}}},
		Style:  state.DefaultStyle(),
	}
}

func newDoc() *state.Document {
	return state.NewDocument(state.DefaultSize, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
}

func ids(d *state.Document) []string {
	var out []string
	for _, s := range d.Strokes() {
		out = append(out, s.ID)
	}
	return out
}

func TestUndoRedoScenario(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	h.Push(state.NewAddStroke(d, stroke("s1", 0)))
	h.Push(state.NewAddStroke(d, stroke("s2", 20)))

	require.True(t, h.Undo())
	assert.Equal(t, []string{"s1"}, ids(d))
	require.True(t, h.Redo())
	assert.Equal(t, []string{"s1", "s2"}, ids(d))
}

func TestEmptyUndoIsNoop(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	rev := d.Revision()
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	assert.Equal(t, rev, d.Revision())
	assert.Zero(t, h.UndoLen())
	assert.Zero(t, h.RedoLen())
}

func TestPushClearsRedo(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	h.Push(state.NewAddStroke(d, stroke("a", 0)))
	h.Push(state.NewAddStroke(d, stroke("b", 10)))
	h.Undo()
	h.Push(state.NewAddStroke(d, stroke("c", 20)))

	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo())
	assert.Equal(t, []string{"a", "c"}, ids(d))
}

func TestBoundedDepth(t *testing.T) {
	d := newDoc()
	h := New(d, 2)
	h.Push(state.NewAddStroke(d, stroke("a", 0)))
	h.Push(state.NewAddStroke(d, stroke("b", 10)))
	h.Push(state.NewAddStroke(d, stroke("c", 20)))

	assert.Equal(t, 2, h.UndoLen())
	assert.True(t, h.Undo())
	assert.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.Equal(t, []string{"a"}, ids(d))
	assert.True(t, h.Replay().Equal(d))
}

func TestClearAndResizeInvert(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	h.Push(state.NewAddStroke(d, stroke("a", 0)))
	h.Push(state.NewAddStroke(d, stroke("b", 10)))
	h.Push(state.NewClear(d))
	assert.Zero(t, d.Len())
	h.Push(state.NewResize(d, geom.Size{W: 100, H: 50}))
	assert.Equal(t, geom.Size{W: 100, H: 50}, d.Size())

	h.Undo()
	assert.Equal(t, state.DefaultSize, d.Size())
	h.Undo()
	assert.Equal(t, []string{"a", "b"}, ids(d))
	h.Redo()
	assert.Zero(t, d.Len())
}

func TestRemoveStrokeInvert(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	for i, id := range []string{"a", "b", "c"} {
		h.Push(state.NewAddStroke(d, stroke(id, float64(i*10))))
	}
	h.Push(state.NewRemoveStroke(d, 1))
	assert.Equal(t, []string{"a", "c"}, ids(d))
	h.Undo()
	assert.Equal(t, []string{"a", "b", "c"}, ids(d))
}

// TestReplayInvariant runs a fixed pseudo random mix of operations and
// checks after each step that replaying the undo stack gives the document.
func TestReplayInvariant(t *testing.T) {
	for _, depth := range []int{0, 1, 3} {
		t.Run(fmt.Sprint("depth ", depth), func(t *testing.T) {
			d := newDoc()
			h := New(d, depth)
			var calls int
			h.OnChange = func(state.Command) { calls++ }
			seed := uint32(7)
			next := func(n int) int {
				seed = seed*1664525 + 1013904223
				return int(seed>>16) % n
			}
			for step := 0; step < 300; step++ {
				switch next(6) {
				case 0, 1:
					h.Push(state.NewAddStroke(d, stroke(fmt.Sprint("s", step), float64(step))))
				case 2:
					if d.Len() > 0 {
						h.Push(state.NewRemoveStroke(d, next(d.Len())))
					}
				case 3:
					h.Undo()
				case 4:
					h.Redo()
				case 5:
					if next(4) == 0 {
						h.Push(state.NewClear(d))
					} else {
						h.Push(state.NewResize(d, geom.Size{W: float64(100 + step), H: 80}))
					}
				}
				require.True(t, h.Replay().Equal(d), "step %d", step)
				if depth > 0 {
					require.LessOrEqual(t, h.UndoLen(), depth)
				}
			}
			assert.Positive(t, calls)
		})
	}
}

func TestReset(t *testing.T) {
	d := newDoc()
	h := New(d, 0)
	h.Push(state.NewAddStroke(d, stroke("a", 0)))
	other := newDoc()
	h.Reset(other)
	assert.Same(t, other, h.Document())
	assert.False(t, h.CanUndo())
	assert.True(t, h.Replay().Equal(other))
}
