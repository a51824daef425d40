// Package history implements undo and redo over document commands.
package history

import (
	"SketchBoard/internal/state"
)

// History owns the undo and redo stacks of one document. Every change to
// the document goes through Push, Undo or Redo.
//
// Applying the undo stack, oldest first, to Base reproduces the document.
// Base starts as a copy of the document handed to New and absorbs commands
// that fall off a bounded stack.
type History struct {
	doc      *state.Document
	base     *state.Document
	undo     []state.Command
	redo     []state.Command
	maxDepth int

	// OnChange, if set, is called after every change to the document.
	OnChange func(state.Command)
}

// New returns an empty history for doc. A maxDepth of zero or less keeps
// every command.
func New(doc *state.Document, maxDepth int) *History {
	return &History{doc: doc, base: doc.Clone(), maxDepth: maxDepth}
}

func (h *History) Document() *state.Document { return h.doc }

// Base is the document state the undo stack starts from.
func (h *History) Base() *state.Document { return h.base.Clone() }

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int  { return len(h.undo) }
func (h *History) RedoLen() int  { return len(h.redo) }
func (h *History) MaxDepth() int { return h.maxDepth }

// Push applies cmd, records it for undo and forgets every redo entry.
// When the undo stack is full the oldest command is dropped for good.
func (h *History) Push(cmd state.Command) {
	h.doc.Apply(cmd)
	h.undo = append(h.undo, cmd)
	clear(h.redo)
	h.redo = h.redo[:0]
	if h.maxDepth > 0 && len(h.undo) > h.maxDepth {
		n := len(h.undo) - h.maxDepth
		for _, old := range h.undo[:n] {
			h.base.Apply(old)
		}
		h.undo = append(h.undo[:0], h.undo[n:]...)
	}
	h.changed(cmd)
}

// Undo reverts the most recent command. It returns false, changing
// nothing, when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.undo) == 0 {
		return false
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	inv := cmd.Invert()
	h.doc.Apply(inv)
	h.redo = append(h.redo, cmd)
	h.changed(inv)
	return true
}

// Redo re-applies the most recently undone command. It returns false,
// changing nothing, when there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.doc.Apply(cmd)
	h.undo = append(h.undo, cmd)
	h.changed(cmd)
	return true
}

// Reset forgets both stacks and starts a new history at doc.
func (h *History) Reset(doc *state.Document) {
	h.doc = doc
	h.base = doc.Clone()
	h.undo = nil
	h.redo = nil
}

// Replay rebuilds the current document from Base and the undo stack.
func (h *History) Replay() *state.Document {
	d := h.base.Clone()
	for _, cmd := range h.undo {
		d.Apply(cmd)
	}
	return d
}

func (h *History) changed(cmd state.Command) {
	if h.OnChange != nil {
		h.OnChange(cmd)
	}
}
