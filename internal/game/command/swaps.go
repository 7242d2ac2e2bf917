package command

import (
	"fmt"

	"github.com/cory-johannsen/fashionscape/internal/game/swap"
)

// HandleSelect processes "item", "kit", "color", and "select": the target is
// committed as one undoable action, folding in any active preview.
//
// Precondition: m must not be nil.
// Postcondition: Returns a message describing what was selected or why not.
func HandleSelect(m *swap.Manager, t target) string {
	before := m.UndoDepth()
	switch t.kind {
	case kindItem:
		m.HoverSelectItem(t.slot, t.id)
	case kindKit:
		m.HoverSelectKit(t.slot, t.id)
	default:
		m.HoverSelectColor(t.color, t.id)
	}
	if m.UndoDepth() == before {
		return "Nothing changed."
	}
	return fmt.Sprintf("Selected %s.", describe(t))
}

// HandleHover previews the target without touching history.
func HandleHover(m *swap.Manager, t target) string {
	switch t.kind {
	case kindItem:
		m.HoverOverItem(t.slot, t.id)
	case kindKit:
		m.HoverOverKit(t.slot, t.id)
	default:
		m.HoverOverColor(t.color, t.id)
	}
	return fmt.Sprintf("Previewing %s.", describe(t))
}

// HandleLock toggles the lock named by t.
func HandleLock(m *swap.Manager, t target) string {
	var on bool
	switch t.kind {
	case kindItem:
		on = m.ToggleItemLock(t.slot)
	case kindKit:
		on = m.ToggleKitLock(t.slot)
	default:
		on = m.ToggleColorLock(t.color)
	}
	state := "unlocked"
	if on {
		state = "locked"
	}
	if t.kind == kindColor {
		return fmt.Sprintf("%s color %s.", t.color, state)
	}
	return fmt.Sprintf("%s %s %s.", t.slot, t.kind, state)
}

// HandleRevert processes "revert <slot>", "revert color <type>",
// "revert all", and "revert force".
func HandleRevert(m *swap.Manager, args []string) string {
	const usage = "Usage: revert <slot> | color <type> | all | force"
	if len(args) == 0 {
		return usage
	}
	switch args[0] {
	case "all":
		m.RevertSwaps(false)
		return "Reverted every unlocked slot."
	case "force":
		m.RevertSwaps(true)
		return "Reverted everything and cleared all locks."
	case kindColor:
		t, msg := parseTarget(kindColor, args[1:], false)
		if msg != "" {
			return msg
		}
		m.RevertColor(t.color)
		return fmt.Sprintf("Reverted %s color.", t.color)
	}
	if len(args) != 1 {
		return usage
	}
	t, msg := parseTarget(kindItem, args, false)
	if msg != "" {
		return msg
	}
	m.Revert(t.slot)
	return fmt.Sprintf("Reverted %s.", t.slot)
}

// HandleUndo undoes the last action.
func HandleUndo(m *swap.Manager) string {
	if !m.CanUndo() {
		return "Nothing to undo."
	}
	m.UndoLastSwap()
	return fmt.Sprintf("Undone. (%d undo, %d redo)", m.UndoDepth(), m.RedoDepth())
}

// HandleRedo redoes the last undone action.
func HandleRedo(m *swap.Manager) string {
	if !m.CanRedo() {
		return "Nothing to redo."
	}
	m.RedoLastSwap()
	return fmt.Sprintf("Redone. (%d undo, %d redo)", m.UndoDepth(), m.RedoDepth())
}

// HandleShuffle randomizes the outfit.
func HandleShuffle(m *swap.Manager) string {
	before := m.UndoDepth()
	m.Shuffle()
	if m.UndoDepth() == before {
		return "Nothing to shuffle."
	}
	return "Shuffled."
}

func describe(t target) string {
	if t.kind == kindColor {
		return fmt.Sprintf("%s color %d", t.color, t.id)
	}
	return fmt.Sprintf("%s %s %d", t.slot, t.kind, t.id)
}
