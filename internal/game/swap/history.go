package swap

import "github.com/google/uuid"

// Entry is one undoable action.
type Entry struct {
	ID   string
	Diff Diff
}

// RestoreFunc re-applies the before values of a Diff and returns the inverse
// Diff produced by doing so.
type RestoreFunc func(Diff) Diff

// History holds the undo and redo stacks.
//
// A History is not safe for concurrent use; the Manager serialises access.
type History struct {
	undo    []Entry
	redo    []Entry
	restore RestoreFunc
	notify  func(undoDepth, redoDepth int)
}

// NewHistory creates an empty History. notify may be nil.
//
// Precondition: restore must be non-nil.
func NewHistory(restore RestoreFunc, notify func(undoDepth, redoDepth int)) *History {
	return &History{restore: restore, notify: notify}
}

// AppendToUndo records d as a new action and discards the redo stack.
//
// Postcondition: a blank d is ignored and returns ""; otherwise the new
// entry's id is returned and listeners are notified.
func (h *History) AppendToUndo(d Diff) string {
	if d.IsBlank() {
		return ""
	}
	e := Entry{ID: uuid.NewString(), Diff: d}
	h.undo = append(h.undo, e)
	h.redo = nil
	h.changed()
	return e.ID
}

// UndoLast restores the most recent action and moves its inverse to the redo
// stack. It returns the undone entry's id, or "" when there is nothing to undo.
func (h *History) UndoLast() string {
	e, ok := pop(&h.undo)
	if !ok {
		return ""
	}
	if inverse := h.restore(e.Diff); !inverse.IsBlank() {
		h.redo = append(h.redo, Entry{ID: e.ID, Diff: inverse})
	}
	h.changed()
	return e.ID
}

// RedoLast restores the most recently undone action and moves its inverse back
// to the undo stack without discarding the rest of the redo stack.
func (h *History) RedoLast() string {
	e, ok := pop(&h.redo)
	if !ok {
		return ""
	}
	if inverse := h.restore(e.Diff); !inverse.IsBlank() {
		h.undo = append(h.undo, Entry{ID: e.ID, Diff: inverse})
	}
	h.changed()
	return e.ID
}

// UndoDepth returns the number of undoable actions.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redoable actions.
func (h *History) RedoDepth() int { return len(h.redo) }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.changed()
}

func (h *History) changed() {
	if h.notify != nil {
		h.notify(len(h.undo), len(h.redo))
	}
}

func pop(stack *[]Entry) (Entry, bool) {
	s := *stack
	if len(s) == 0 {
		return Entry{}, false
	}
	e := s[len(s)-1]
	*stack = s[:len(s)-1]
	return e, true
}
